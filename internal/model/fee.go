package model

import "time"

// Registration types are the eight pricing categories the fee table knows
// about.  Participant categories distinguish day count even though pricing is
// currently day-count-invariant; presenter categories distinguish nationality
// tier and session mode.  The public form only produces presenter types, but
// the fee table and the admin tooling operate on the full set.
const (
	TypeOnlineParticipantOneDay          = "ONLINE_PARTICIPANT_ONE_DAY"
	TypeOnlineParticipantTwoDays         = "ONLINE_PARTICIPANT_TWO_DAYS"
	TypeOfflineParticipantOneDay         = "OFFLINE_PARTICIPANT_ONE_DAY"
	TypeOfflineParticipantTwoDays        = "OFFLINE_PARTICIPANT_TWO_DAYS"
	TypePresenterIndonesiaStudentOnline  = "PRESENTER_INDONESIA_STUDENT_ONLINE"
	TypePresenterIndonesiaStudentOffline = "PRESENTER_INDONESIA_STUDENT_OFFLINE"
	TypePresenterForeignerOnline         = "PRESENTER_FOREIGNER_ONLINE"
	TypePresenterForeignerOffline        = "PRESENTER_FOREIGNER_OFFLINE"
)

// RegistrationTypes enumerates every category in the fee table.
var RegistrationTypes = []string{
	TypeOnlineParticipantOneDay,
	TypeOnlineParticipantTwoDays,
	TypeOfflineParticipantOneDay,
	TypeOfflineParticipantTwoDays,
	TypePresenterIndonesiaStudentOnline,
	TypePresenterIndonesiaStudentOffline,
	TypePresenterForeignerOnline,
	TypePresenterForeignerOffline,
}

// RegistrationFee maps one registration type to its regular and early-bird
// price.  Amounts are whole KRW.  earlyBirdFee <= regularFee is expected but
// deliberately not enforced; admins may store any non-negative pair and
// callers must not assume monotonicity.
//
// Fields:
//  ID               – primary key identifier.
//  RegistrationType – unique pricing category key.
//  RegularFee       – price outside an early-bird window.
//  EarlyBirdFee     – price inside an active early-bird window.
//  UpdatedAt        – last admin edit.
type RegistrationFee struct {
	ID               uint64    // registration_fees.id
	RegistrationType string    // registration_fees.registration_type
	RegularFee       int64     // registration_fees.regular_fee
	EarlyBirdFee     int64     // registration_fees.early_bird_fee
	UpdatedAt        time.Time // registration_fees.updated_at
}
