package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/conference-registration/internal/model"
)

func sampleSubmission() *Submission {
	return &Submission{
		Registration: model.Registration{
			AttendingAs:          model.AttendingPresenter,
			SessionType:          model.SessionOffline,
			RegistrationType:     model.TypePresenterIndonesiaStudentOffline,
			PresentationCategory: model.CategoryOral,
			PaymentStatus:        model.PaymentPending,
		},
		PresenterRegistration: model.PresenterRegistration{
			Email:             "siti@example.ac.id",
			CurrentStatus:     "MASTER_STUDENT",
			Affiliation:       "Universitas Gadjah Mada",
			TopicPreference:   "ENGINEERING",
			PresentationTitle: "Sensor Networks",
			PaperSubmission:   "https://drive.example.org/paper.pdf",
			ReviewStatus:      model.ReviewPending,
			PaperStatus:       model.PaperPending,
		},
		Presenters: []model.Presenter{
			{Name: "Siti Rahma", Nationality: "Indonesia"},
			{Name: "Budi Santoso", Nationality: "Indonesia"},
		},
		AccountEmail:    "siti@example.ac.id",
		AccountPassword: "hunter22",
		AccountName:     "Siti Rahma",
	}
}

func TestCreateSubmissionCommitsInOrder(t *testing.T) {
	conn := &stubConn{}
	db := openStubDB(t, conn)
	store := NewSubmissionStore(NewRegistrationRepo(db), NewUserRepo(db), 4)

	sub := sampleSubmission()
	id, err := store.CreateSubmission(context.Background(), sub)
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, sub.Registration.ID, id)

	assert.Equal(t, 1, conn.begun)
	assert.Equal(t, 1, conn.commits)
	assert.Zero(t, conn.rollbacks)

	require.Len(t, conn.execLog, 4)
	assert.Contains(t, conn.execLog[0], "INSERT INTO users")
	assert.Contains(t, conn.execLog[1], "INSERT INTO registrations")
	assert.Contains(t, conn.execLog[2], "INSERT INTO presenter_registrations")
	assert.Contains(t, conn.execLog[3], "INSERT INTO presenters")
	// both presenter rows travel in one statement, preserving order
	assert.Equal(t, 2, strings.Count(conn.execLog[3], "(?, ?, ?, ?)"))
	assert.Equal(t, 1, sub.Presenters[0].Order)
	assert.Equal(t, 2, sub.Presenters[1].Order)
}

func TestCreateSubmissionRollsBackOnPresenterInsertFailure(t *testing.T) {
	conn := &stubConn{failOn: "INSERT INTO presenters"}
	db := openStubDB(t, conn)
	store := NewSubmissionStore(NewRegistrationRepo(db), NewUserRepo(db), 4)

	_, err := store.CreateSubmission(context.Background(), sampleSubmission())
	require.Error(t, err)

	// the user, registration and sub-record inserts all ran inside the
	// transaction, and the failure rolled every one of them back
	assert.Equal(t, 1, conn.begun)
	assert.Equal(t, 1, conn.rollbacks)
	assert.Zero(t, conn.commits)
	require.Len(t, conn.execLog, 4)
	assert.Contains(t, conn.execLog[3], "INSERT INTO presenters")
}

func TestCreateSubmissionRollsBackOnSubRecordFailure(t *testing.T) {
	conn := &stubConn{failOn: "INSERT INTO presenter_registrations"}
	db := openStubDB(t, conn)
	store := NewSubmissionStore(NewRegistrationRepo(db), NewUserRepo(db), 4)

	_, err := store.CreateSubmission(context.Background(), sampleSubmission())
	require.Error(t, err)

	assert.Equal(t, 1, conn.rollbacks)
	assert.Zero(t, conn.commits)
}
