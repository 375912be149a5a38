// Package service orchestrates the registration submission flow and the
// outbound event stream.  Handlers stay thin: they bind and translate, the
// service owns ordering, pricing and atomicity.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/conference-registration/internal/model"
	"github.com/iliyamo/conference-registration/internal/pricing"
	q "github.com/iliyamo/conference-registration/internal/queue"
	"github.com/iliyamo/conference-registration/internal/repository"
	"github.com/iliyamo/conference-registration/internal/validation"
)

// SubmitPresenter is one author entry on the registration form.
type SubmitPresenter struct {
	Name        string `json:"name" validate:"required"`
	Nationality string `json:"nationality" validate:"required"`
}

// SubmitRequest is the submission payload of the public registration form.
// The live form only produces presenter payloads; participant
// self-registration exists in the data model but is not reachable here,
// which the eq=PRESENTER rule enforces.
type SubmitRequest struct {
	AttendingAs          string            `json:"attending_as" validate:"required,eq=PRESENTER"`
	SessionType          string            `json:"session_type" validate:"required,oneof=ONLINE OFFLINE"`
	PresentationCategory string            `json:"presentation_category" validate:"required,oneof=ORAL POSTER"`
	Presenters           []SubmitPresenter `json:"presenters" validate:"required,min=1,max=3,dive"`
	Email                string            `json:"email" validate:"required,email"`
	Password             string            `json:"password" validate:"required,min=6"`
	CurrentStatus        string            `json:"current_status" validate:"required"`
	Affiliation          string            `json:"affiliation" validate:"required"`
	TopicPreference      string            `json:"topic_preference" validate:"required"`
	PresentationTitle    string            `json:"presentation_title" validate:"required"`
	PaperSubmission      string            `json:"paper_submission" validate:"required,startswith=http"`
	AbstractSubmission   string            `json:"abstract_submission" validate:"omitempty,startswith=http"`
	ProofOfPayment       string            `json:"proof_of_payment" validate:"omitempty,startswith=http"`
	AgreeToTerms         bool              `json:"agree_to_terms" validate:"eq=true"`
}

// SubmitResult reports a successful submission back to the caller.
type SubmitResult struct {
	RegistrationID uint64        `json:"id"`
	Quote          pricing.Quote `json:"quote"`
}

// SubmissionStore persists one submission atomically.
type SubmissionStore interface {
	CreateSubmission(ctx context.Context, sub *repository.Submission) (uint64, error)
}

// EventPublisher sends domain events after a successful write.
type EventPublisher interface {
	RegistrationSubmitted(ctx context.Context, ev q.RegistrationSubmittedEvent) error
}

// RegistrationService validates, prices and persists submissions.
type RegistrationService struct {
	store    SubmissionStore
	resolver *pricing.Resolver
	events   EventPublisher // nil disables event publishing
	log      zerolog.Logger
	now      func() time.Time
}

// NewRegistrationService wires the submission flow.
func NewRegistrationService(store SubmissionStore, resolver *pricing.Resolver, events EventPublisher, log zerolog.Logger) *RegistrationService {
	return &RegistrationService{
		store:    store,
		resolver: resolver,
		events:   events,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit runs the full submission sequence: schema validation, period
// resolution, classification, fee quote, proof-of-payment rule, then one
// atomic write.  The quoted fee and early-bird flag are snapshotted onto the
// persisted registration; later fee-table or period edits never touch it.
//
// Errors are typed: validation.FieldErrors for rejected payloads,
// pricing.ErrFeeNotConfigured when the category has no fee row, anything
// else is a persistence failure that left no partial record behind.
func (s *RegistrationService) Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	if fe := validation.Validate(ctx, req); fe != nil {
		return SubmitResult{}, fe
	}
	// The closed sets live in model so the admin tooling and this schema
	// cannot drift apart; membership is checked against the slices directly.
	if !model.ValidStatus(model.CurrentStatuses, req.CurrentStatus) {
		return SubmitResult{}, validation.FieldErrors{"current_status": "must be one of: " + strings.Join(model.CurrentStatuses, ", ")}
	}
	if !model.ValidStatus(model.TopicPreferences, req.TopicPreference) {
		return SubmitResult{}, validation.FieldErrors{"topic_preference": "must be one of: " + strings.Join(model.TopicPreferences, ", ")}
	}

	now := s.now()
	quote, err := s.resolver.QuoteFor(ctx, req.AttendingAs, req.Presenters[0].Nationality, req.SessionType, now)
	if err != nil {
		return SubmitResult{}, err
	}

	// Proof of payment is mandatory unless the resolved fee is exactly zero.
	if quote.Fee != 0 && req.ProofOfPayment == "" {
		return SubmitResult{}, validation.FieldErrors{"proof_of_payment": "payment proof must be uploaded"}
	}

	sub := &repository.Submission{
		Registration: model.Registration{
			AttendingAs:          req.AttendingAs,
			SessionType:          req.SessionType,
			RegistrationType:     quote.RegistrationType,
			PresentationCategory: req.PresentationCategory,
			PaymentStatus:        model.PaymentPending,
			IsEarlyBird:          quote.IsEarlyBird,
			PeriodID:             quote.PeriodID,
			ProofOfPayment:       req.ProofOfPayment,
		},
		PresenterRegistration: model.PresenterRegistration{
			Email:             req.Email,
			CurrentStatus:     req.CurrentStatus,
			Affiliation:       req.Affiliation,
			TopicPreference:   req.TopicPreference,
			PresentationTitle: req.PresentationTitle,
			PaperSubmission:   req.PaperSubmission,
			ReviewStatus:      model.ReviewPending,
			PaperStatus:       model.PaperPending,
		},
		AccountEmail:    req.Email,
		AccountPassword: req.Password,
		AccountName:     req.Presenters[0].Name,
	}
	if req.AbstractSubmission != "" {
		a := req.AbstractSubmission
		sub.PresenterRegistration.AbstractSubmission = &a
	}
	for _, p := range req.Presenters {
		sub.Presenters = append(sub.Presenters, model.Presenter{Name: p.Name, Nationality: p.Nationality})
	}

	id, err := s.store.CreateSubmission(ctx, sub)
	if err != nil {
		if err == repository.ErrEmailExists {
			return SubmitResult{}, validation.FieldErrors{"email": "email already registered"}
		}
		return SubmitResult{}, err
	}

	s.log.Info().
		Uint64("registration_id", id).
		Str("registration_type", quote.RegistrationType).
		Bool("early_bird", quote.IsEarlyBird).
		Int64("fee", quote.Fee).
		Msg("registration submitted")

	if s.events != nil {
		names := make([]string, 0, len(req.Presenters))
		for _, p := range req.Presenters {
			names = append(names, p.Name)
		}
		ev := q.RegistrationSubmittedEvent{
			RegistrationID:   id,
			AttendingAs:      req.AttendingAs,
			SessionType:      req.SessionType,
			RegistrationType: quote.RegistrationType,
			IsEarlyBird:      quote.IsEarlyBird,
			Fee:              quote.Fee,
			Email:            req.Email,
			Presenters:       names,
			Title:            req.PresentationTitle,
			SubmittedAt:      now.Format(time.RFC3339),
		}
		// Best-effort; the registration is already durable.
		if err := s.events.RegistrationSubmitted(ctx, ev); err != nil {
			s.log.Warn().Err(err).Uint64("registration_id", id).Msg("publish registration.submitted failed")
		}
	}

	return SubmitResult{RegistrationID: id, Quote: quote}, nil
}
