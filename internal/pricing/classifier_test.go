package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/conference-registration/internal/model"
)

func TestClassifyPresenterTiers(t *testing.T) {
	cases := []struct {
		name        string
		nationality string
		session     string
		want        string
	}{
		{"indonesian online", "Indonesia", model.SessionOnline, model.TypePresenterIndonesiaStudentOnline},
		{"indonesian offline", "Indonesia", model.SessionOffline, model.TypePresenterIndonesiaStudentOffline},
		{"lowercase indonesia", "indonesia", model.SessionOffline, model.TypePresenterIndonesiaStudentOffline},
		{"uppercase indonesia", "INDONESIA", model.SessionOnline, model.TypePresenterIndonesiaStudentOnline},
		{"surrounding whitespace", "  Indonesia  ", model.SessionOffline, model.TypePresenterIndonesiaStudentOffline},
		{"empty nationality defaults domestic", "", model.SessionOnline, model.TypePresenterIndonesiaStudentOnline},
		{"foreigner online", "South Korea", model.SessionOnline, model.TypePresenterForeignerOnline},
		{"foreigner offline", "Japan", model.SessionOffline, model.TypePresenterForeignerOffline},
		{"substring is not a match", "Indonesian", model.SessionOffline, model.TypePresenterForeignerOffline},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(model.AttendingPresenter, tc.nationality, tc.session)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyParticipantIgnoresNationality(t *testing.T) {
	for _, nat := range []string{"", "Indonesia", "Germany"} {
		assert.Equal(t, model.TypeOnlineParticipantOneDay,
			Classify(model.AttendingParticipant, nat, model.SessionOnline))
		assert.Equal(t, model.TypeOfflineParticipantOneDay,
			Classify(model.AttendingParticipant, nat, model.SessionOffline))
	}
}
