// Package pricing resolves the registration type and fee for a submission.
// Classification is a pure function over the submitted attributes; the fee
// quote additionally consults the early-bird periods and the fee table, both
// read fresh on every call so that admin edits take effect immediately.
package pricing

import (
	"strings"

	"github.com/iliyamo/conference-registration/internal/model"
)

// domesticNationality is the one nationality priced on the domestic student
// tier.  Matching is case-insensitive on the trimmed value.
const domesticNationality = "indonesia"

// Classify maps the submitted attributes onto one of the eight registration
// types.  For participants only the session mode matters; nationality is
// ignored entirely.  For presenters the first presenter's nationality picks
// the tier: exactly "indonesia" (any casing) or an empty value selects the
// domestic student tier, any other value the foreigner tier.  The empty-value
// default mirrors the public form, which prices as domestic until a
// nationality has been typed.
//
// Classify is total for valid attendingAs/sessionType pairs; callers must not
// invoke it before a session type has been chosen.
func Classify(attendingAs, nationality, sessionType string) string {
	if attendingAs == model.AttendingParticipant {
		if sessionType == model.SessionOnline {
			return model.TypeOnlineParticipantOneDay
		}
		return model.TypeOfflineParticipantOneDay
	}

	domestic := isDomestic(nationality)
	if sessionType == model.SessionOnline {
		if domestic {
			return model.TypePresenterIndonesiaStudentOnline
		}
		return model.TypePresenterForeignerOnline
	}
	if domestic {
		return model.TypePresenterIndonesiaStudentOffline
	}
	return model.TypePresenterForeignerOffline
}

func isDomestic(nationality string) bool {
	n := strings.ToLower(strings.TrimSpace(nationality))
	return n == "" || n == domesticNationality
}
