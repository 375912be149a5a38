package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/conference-registration/internal/model"
)

// fakePeriods mimics the repository contract: it applies the active-window
// predicate and prefers the latest end date, returning nil when nothing
// matches.
type fakePeriods struct {
	periods []model.EarlyBirdPeriod
}

func (f *fakePeriods) ActivePeriod(ctx context.Context, now time.Time) (*model.EarlyBirdPeriod, error) {
	var best *model.EarlyBirdPeriod
	for i := range f.periods {
		p := &f.periods[i]
		if !p.IsActive || !p.Contains(now) {
			continue
		}
		if best == nil || p.EndDate.After(best.EndDate) {
			best = p
		}
	}
	return best, nil
}

type fakeFees struct {
	rows map[string]model.RegistrationFee
}

func (f *fakeFees) GetByType(ctx context.Context, registrationType string) (*model.RegistrationFee, error) {
	row, ok := f.rows[registrationType]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 12, 0, 0, 0, time.UTC)
}

func feeTable() *fakeFees {
	return &fakeFees{rows: map[string]model.RegistrationFee{
		model.TypePresenterIndonesiaStudentOffline: {ID: 1, RegistrationType: model.TypePresenterIndonesiaStudentOffline, RegularFee: 50000, EarlyBirdFee: 40000},
		model.TypePresenterForeignerOffline:        {ID: 2, RegistrationType: model.TypePresenterForeignerOffline, RegularFee: 40000, EarlyBirdFee: 30000},
		model.TypeOnlineParticipantOneDay:          {ID: 3, RegistrationType: model.TypeOnlineParticipantOneDay, RegularFee: 0, EarlyBirdFee: 0},
	}}
}

func TestQuoteForTypeRegularVsEarlyBird(t *testing.T) {
	periods := &fakePeriods{periods: []model.EarlyBirdPeriod{
		{ID: 7, StartDate: day(1), EndDate: day(10), IsActive: true},
	}}
	r := NewResolver(periods, feeTable())

	t.Run("inside the window", func(t *testing.T) {
		q, err := r.QuoteForType(context.Background(), model.TypePresenterIndonesiaStudentOffline, day(5))
		require.NoError(t, err)
		assert.Equal(t, int64(40000), q.Fee)
		assert.True(t, q.IsEarlyBird)
		require.NotNil(t, q.PeriodID)
		assert.Equal(t, uint64(7), *q.PeriodID)
	})

	t.Run("after the window", func(t *testing.T) {
		q, err := r.QuoteForType(context.Background(), model.TypePresenterIndonesiaStudentOffline, day(15))
		require.NoError(t, err)
		assert.Equal(t, int64(50000), q.Fee)
		assert.False(t, q.IsEarlyBird)
		assert.Nil(t, q.PeriodID)
	})
}

func TestQuoteForTypeRespectsActiveFlag(t *testing.T) {
	periods := &fakePeriods{periods: []model.EarlyBirdPeriod{
		{ID: 1, StartDate: day(1), EndDate: day(10), IsActive: false},
	}}
	r := NewResolver(periods, feeTable())

	q, err := r.QuoteForType(context.Background(), model.TypePresenterForeignerOffline, day(5))
	require.NoError(t, err)
	assert.Equal(t, int64(40000), q.Fee)
	assert.False(t, q.IsEarlyBird)
}

func TestQuoteForTypeOverlappingPeriodsLatestEndWins(t *testing.T) {
	periods := &fakePeriods{periods: []model.EarlyBirdPeriod{
		{ID: 1, StartDate: day(1), EndDate: day(8), IsActive: true},
		{ID: 2, StartDate: day(2), EndDate: day(20), IsActive: true},
		{ID: 3, StartDate: day(3), EndDate: day(12), IsActive: true},
	}}
	r := NewResolver(periods, feeTable())

	q, err := r.QuoteForType(context.Background(), model.TypePresenterIndonesiaStudentOffline, day(5))
	require.NoError(t, err)
	require.NotNil(t, q.PeriodID)
	assert.Equal(t, uint64(2), *q.PeriodID)
}

func TestQuoteForTypeUnconfigured(t *testing.T) {
	r := NewResolver(&fakePeriods{}, feeTable())

	_, err := r.QuoteForType(context.Background(), model.TypePresenterForeignerOnline, day(5))
	assert.ErrorIs(t, err, ErrFeeNotConfigured)

	// Same error whether or not an early-bird window is open.
	r = NewResolver(&fakePeriods{periods: []model.EarlyBirdPeriod{
		{ID: 1, StartDate: day(1), EndDate: day(10), IsActive: true},
	}}, feeTable())
	_, err = r.QuoteForType(context.Background(), model.TypePresenterForeignerOnline, day(5))
	assert.ErrorIs(t, err, ErrFeeNotConfigured)
}

func TestQuoteForTypeZeroFeeIsNotUnconfigured(t *testing.T) {
	r := NewResolver(&fakePeriods{}, feeTable())

	q, err := r.QuoteForType(context.Background(), model.TypeOnlineParticipantOneDay, day(5))
	require.NoError(t, err)
	assert.Equal(t, int64(0), q.Fee)
}

func TestQuoteForTypeIsRepeatable(t *testing.T) {
	periods := &fakePeriods{periods: []model.EarlyBirdPeriod{
		{ID: 4, StartDate: day(1), EndDate: day(10), IsActive: true},
	}}
	r := NewResolver(periods, feeTable())

	first, err := r.QuoteForType(context.Background(), model.TypePresenterForeignerOffline, day(6))
	require.NoError(t, err)
	second, err := r.QuoteForType(context.Background(), model.TypePresenterForeignerOffline, day(6))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestQuoteForClassifiesFirst(t *testing.T) {
	r := NewResolver(&fakePeriods{}, feeTable())

	q, err := r.QuoteFor(context.Background(), model.AttendingPresenter, "Indonesia", model.SessionOffline, day(20))
	require.NoError(t, err)
	assert.Equal(t, model.TypePresenterIndonesiaStudentOffline, q.RegistrationType)
	assert.Equal(t, int64(50000), q.Fee)
}
