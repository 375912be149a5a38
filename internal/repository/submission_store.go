package repository

import (
	"context"

	"github.com/iliyamo/conference-registration/internal/model"
)

// Submission bundles everything one presenter sign-up writes: the
// registration root, its presenter sub-record, the ordered presenter list
// and the login account to provision.
type Submission struct {
	Registration          model.Registration
	PresenterRegistration model.PresenterRegistration
	Presenters            []model.Presenter
	AccountEmail          string
	AccountPassword       string
	AccountName           string
}

// SubmissionStore performs the four-table submission write as one
// transaction.  Partial writes are never observable: any failure mid
// sequence rolls the whole submission back.
type SubmissionStore struct {
	regs       *RegistrationRepo
	users      *UserRepo
	bcryptCost int
}

// NewSubmissionStore returns a SubmissionStore over the given repositories.
func NewSubmissionStore(regs *RegistrationRepo, users *UserRepo, bcryptCost int) *SubmissionStore {
	return &SubmissionStore{regs: regs, users: users, bcryptCost: bcryptCost}
}

// CreateSubmission writes the registration aggregate atomically and returns
// the new registration ID.  The insert order is user → registration →
// sub-record → presenters so that the foreign keys resolve; the transaction
// is rolled back on the first failure.
func (s *SubmissionStore) CreateSubmission(ctx context.Context, sub *Submission) (uint64, error) {
	tx, err := s.regs.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	userID, err := s.users.CreateTx(ctx, tx, sub.AccountEmail, sub.AccountPassword, sub.AccountName, model.RolePresenter, s.bcryptCost)
	if err != nil {
		return 0, err
	}

	if err := s.regs.CreateTx(ctx, tx, &sub.Registration); err != nil {
		return 0, err
	}

	sub.PresenterRegistration.RegistrationID = sub.Registration.ID
	sub.PresenterRegistration.UserID = userID
	if err := s.regs.CreatePresenterRegistrationTx(ctx, tx, &sub.PresenterRegistration); err != nil {
		return 0, err
	}

	for i := range sub.Presenters {
		sub.Presenters[i].PresenterRegistrationID = sub.PresenterRegistration.ID
		sub.Presenters[i].Order = i + 1
	}
	if err := s.regs.CreatePresentersBulkTx(ctx, tx, sub.Presenters); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return sub.Registration.ID, nil
}
