package pricing

import (
	"context"
	"errors"

	"time"

	"github.com/iliyamo/conference-registration/internal/model"
)

// ErrFeeNotConfigured is returned when the fee table has no row for the
// resolved registration type.  It is a distinct outcome from a zero fee:
// zero means "free registration", while this error means the admin has not
// priced the category yet and the caller must surface an explicit
// "pricing not configured" state instead of defaulting to anything.
var ErrFeeNotConfigured = errors.New("registration fee not configured for this type")

// PeriodStore reads early-bird periods.
type PeriodStore interface {
	// ActivePeriod returns the active period whose window contains now,
	// preferring the latest end date when several overlap, or nil when no
	// period matches.
	ActivePeriod(ctx context.Context, now time.Time) (*model.EarlyBirdPeriod, error)
}

// FeeStore reads the fee table.
type FeeStore interface {
	// GetByType returns the fee row for a registration type, or
	// sql.ErrNoRows-style absence mapped to (nil, nil).
	GetByType(ctx context.Context, registrationType string) (*model.RegistrationFee, error)
}

// Quote is the outcome of a fee resolution.  Fee is the amount the attendee
// must pay in whole KRW; IsEarlyBird and PeriodID record which window, if
// any, was honored so the submission can snapshot them.
type Quote struct {
	RegistrationType string  `json:"registration_type"`
	Fee              int64   `json:"fee"`
	IsEarlyBird      bool    `json:"is_early_bird"`
	PeriodID         *uint64 `json:"period_id,omitempty"`
}

// Resolver composes the period store and the fee table into fee quotes.  It
// holds no state of its own and is safe for concurrent use; both stores are
// queried afresh on every call.
type Resolver struct {
	periods PeriodStore
	fees    FeeStore
}

// NewResolver returns a Resolver backed by the given stores.
func NewResolver(periods PeriodStore, fees FeeStore) *Resolver {
	return &Resolver{periods: periods, fees: fees}
}

// QuoteForType resolves the fee for an already-classified registration type
// at the given instant.  It returns ErrFeeNotConfigured when the fee table
// has no row for the type, regardless of whether an early-bird window is
// open.  Calling it repeatedly with no intervening admin edit yields
// identical results; it has no side effects.
func (r *Resolver) QuoteForType(ctx context.Context, registrationType string, now time.Time) (Quote, error) {
	period, err := r.periods.ActivePeriod(ctx, now)
	if err != nil {
		return Quote{}, err
	}

	fee, err := r.fees.GetByType(ctx, registrationType)
	if err != nil {
		return Quote{}, err
	}
	if fee == nil {
		return Quote{}, ErrFeeNotConfigured
	}

	q := Quote{RegistrationType: registrationType, Fee: fee.RegularFee}
	if period != nil {
		q.Fee = fee.EarlyBirdFee
		q.IsEarlyBird = true
		id := period.ID
		q.PeriodID = &id
	}
	return q, nil
}

// QuoteFor classifies the submitted attributes and resolves their fee in one
// step.  The public preview endpoint and the submission handler both go
// through this method so the price shown before submitting and the price
// persisted afterwards cannot disagree.
func (r *Resolver) QuoteFor(ctx context.Context, attendingAs, nationality, sessionType string, now time.Time) (Quote, error) {
	return r.QuoteForType(ctx, Classify(attendingAs, nationality, sessionType), now)
}
