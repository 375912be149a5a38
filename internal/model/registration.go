package model

import "time"

// AttendingAs distinguishes the two attendance roles.  Presenters submit a
// paper or abstract; participants only attend sessions.
const (
	AttendingPresenter   = "PRESENTER"   // registrations.attending_as
	AttendingParticipant = "PARTICIPANT" // registrations.attending_as
)

// SessionType describes how the attendee joins the conference.
const (
	SessionOnline  = "ONLINE"  // registrations.session_type
	SessionOffline = "OFFLINE" // registrations.session_type
)

// Payment statuses form a flat set; admins may move a registration between
// any two of them directly, there is no forced progression.
const (
	PaymentPending   = "PENDING"
	PaymentConfirmed = "CONFIRMED"
	PaymentRejected  = "REJECTED"
)

// PaymentStatuses lists every valid payment status.  Used for membership
// checks on the admin update endpoint.
var PaymentStatuses = []string{PaymentPending, PaymentConfirmed, PaymentRejected}

// Registration represents a row in the `registrations` table.  It is the
// aggregate root for a single conference sign-up.  RegistrationType and
// IsEarlyBird are snapshots fixed at submission time: later edits to the fee
// table or the early-bird periods never alter an existing registration.
//
// Fields:
//  ID                   – primary key identifier.
//  AttendingAs          – PRESENTER or PARTICIPANT.
//  SessionType          – ONLINE or OFFLINE.
//  RegistrationType     – pricing category resolved at submission.
//  PresentationCategory – ORAL or POSTER (presenters only; empty otherwise).
//  PaymentStatus        – PENDING, CONFIRMED or REJECTED.
//  IsEarlyBird          – whether an active early-bird period applied.
//  PeriodID             – period honored at submission, kept for audit.
//  ProofOfPayment       – uploaded payment-proof URL; empty for free fees.
//  CreatedAt            – creation timestamp.
//  UpdatedAt            – last update timestamp.
type Registration struct {
	ID                   uint64    // registrations.id
	AttendingAs          string    // registrations.attending_as
	SessionType          string    // registrations.session_type
	RegistrationType     string    // registrations.registration_type
	PresentationCategory string    // registrations.presentation_category
	PaymentStatus        string    // registrations.payment_status
	IsEarlyBird          bool      // registrations.is_early_bird
	PeriodID             *uint64   // registrations.period_id (nullable)
	ProofOfPayment       string    // registrations.proof_of_payment
	CreatedAt            time.Time // registrations.created_at
	UpdatedAt            time.Time // registrations.updated_at
}

// ValidStatus reports whether v is a member of the given flat status set.
func ValidStatus(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
