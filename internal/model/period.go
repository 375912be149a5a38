package model

import "time"

// EarlyBirdPeriod is one row in the `early_bird_periods` table.  Several
// periods may coexist; creating a new one never deactivates older ones.  The
// period honored at any instant is the active one with the latest end date
// whose [StartDate, EndDate] window contains that instant.  Whether a period
// applies is evaluated fresh on every fee request, never cached.
//
// Fields:
//  ID        – primary key identifier.
//  StartDate – first instant of the discounted window (inclusive).
//  EndDate   – last instant of the discounted window (inclusive).
//  IsActive  – admin kill switch for the period.
//  CreatedAt – creation timestamp.
type EarlyBirdPeriod struct {
	ID        uint64    // early_bird_periods.id
	StartDate time.Time // early_bird_periods.start_date
	EndDate   time.Time // early_bird_periods.end_date
	IsActive  bool      // early_bird_periods.is_active
	CreatedAt time.Time // early_bird_periods.created_at
}

// Contains reports whether t falls inside the period's inclusive window.
func (p EarlyBirdPeriod) Contains(t time.Time) bool {
	return !t.Before(p.StartDate) && !t.After(p.EndDate)
}
