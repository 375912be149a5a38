// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// RegistrationSubmittedEvent is published after a registration has been
// persisted.  It carries enough information for downstream consumers to log
// or trigger follow-up processing without querying the primary database.
type RegistrationSubmittedEvent struct {
	RegistrationID   uint64   `json:"registration_id"`
	AttendingAs      string   `json:"attending_as"`
	SessionType      string   `json:"session_type"`
	RegistrationType string   `json:"registration_type"`
	IsEarlyBird      bool     `json:"is_early_bird"`
	Fee              int64    `json:"fee"`
	Email            string   `json:"email"`
	Presenters       []string `json:"presenters"`
	Title            string   `json:"title"`
	SubmittedAt      string   `json:"submitted_at"`
}

// PaymentStatusChangedEvent is published when an admin updates the payment
// status of a registration.
type PaymentStatusChangedEvent struct {
	RegistrationID uint64 `json:"registration_id"`
	NewStatus      string `json:"new_status"`
	ChangedAt      string `json:"changed_at"`
}

// Queue names.  The publisher and the consumer both declare them durable so
// either side may start first.
const (
	RegistrationSubmittedQueue = "registration.submitted"
	PaymentStatusChangedQueue  = "payment.status.changed"
)
