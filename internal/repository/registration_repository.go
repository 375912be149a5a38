package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/conference-registration/internal/model"
)

// RegistrationRepo provides CRUD operations for registrations and their
// presenter sub-records.  A presenter submission writes four tables
// (registrations, presenter_registrations, presenters, users) which must
// land atomically, so all insert methods operate on a caller-owned
// transaction.  All timestamp fields are stored in UTC.
type RegistrationRepo struct {
	db *sql.DB
}

// NewRegistrationRepo returns a new RegistrationRepo bound to the given database.
func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

// DB exposes the underlying handle so callers can begin transactions that
// span this repository and UserRepo.
func (r *RegistrationRepo) DB() *sql.DB { return r.db }

// CreateTx inserts the registration root row within an existing transaction
// and populates the generated ID on the provided record.  The caller must
// commit or rollback.
func (r *RegistrationRepo) CreateTx(ctx context.Context, tx *sql.Tx, reg *model.Registration) error {
	const q = `INSERT INTO registrations
			   (attending_as, session_type, registration_type, presentation_category,
				payment_status, is_early_bird, period_id, proof_of_payment)
			   VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		reg.AttendingAs, reg.SessionType, reg.RegistrationType, reg.PresentationCategory,
		reg.PaymentStatus, reg.IsEarlyBird, reg.PeriodID, reg.ProofOfPayment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	reg.ID = uint64(id)
	return nil
}

// CreatePresenterRegistrationTx inserts the presenter sub-record within an
// existing transaction and populates its generated ID.
func (r *RegistrationRepo) CreatePresenterRegistrationTx(ctx context.Context, tx *sql.Tx, pr *model.PresenterRegistration) error {
	const q = `INSERT INTO presenter_registrations
			   (registration_id, email, current_status, affiliation, topic_preference,
				presentation_title, paper_submission, abstract_submission,
				review_status, paper_status, user_id)
			   VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		pr.RegistrationID, pr.Email, pr.CurrentStatus, pr.Affiliation, pr.TopicPreference,
		pr.PresentationTitle, pr.PaperSubmission, pr.AbstractSubmission,
		pr.ReviewStatus, pr.PaperStatus, pr.UserID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	pr.ID = uint64(id)
	return nil
}

// CreatePresentersBulkTx inserts all presenter rows of one registration in a
// single statement, preserving submission order.  Passing an empty slice has
// no effect and returns nil.
func (r *RegistrationRepo) CreatePresentersBulkTx(ctx context.Context, tx *sql.Tx, presenters []model.Presenter) error {
	if len(presenters) == 0 {
		return nil
	}
	query := `INSERT INTO presenters (presenter_registration_id, name, nationality, display_order) VALUES `
	args := make([]interface{}, 0, len(presenters)*4)
	for i, p := range presenters {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, p.PresenterRegistrationID, p.Name, p.Nationality, p.Order)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// Detail is a registration joined with its presenter sub-record for the
// admin dashboard.  Presenter fields are nil for participant rows.
type Detail struct {
	ID                   uint64    `json:"id"`
	AttendingAs          string    `json:"attending_as"`
	SessionType          string    `json:"session_type"`
	RegistrationType     string    `json:"registration_type"`
	PresentationCategory string    `json:"presentation_category,omitempty"`
	PaymentStatus        string    `json:"payment_status"`
	IsEarlyBird          bool      `json:"is_early_bird"`
	PeriodID             *uint64   `json:"period_id,omitempty"`
	ProofOfPayment       string    `json:"proof_of_payment,omitempty"`
	CreatedAt            time.Time `json:"created_at"`

	Presenter *PresenterDetail `json:"presenter_registration,omitempty"`
}

// PresenterDetail carries the presenter sub-record plus its ordered
// presenter list.
type PresenterDetail struct {
	Email              string   `json:"email"`
	CurrentStatus      string   `json:"current_status"`
	Affiliation        string   `json:"affiliation"`
	TopicPreference    string   `json:"topic_preference"`
	PresentationTitle  string   `json:"presentation_title"`
	PaperSubmission    string   `json:"paper_submission"`
	AbstractSubmission *string  `json:"abstract_submission,omitempty"`
	ReviewStatus       string   `json:"review_status"`
	PaperStatus        string   `json:"paper_status"`
	Comment            string   `json:"comment,omitempty"`
	Presenters         []PresenterRow `json:"presenters"`
}

// PresenterRow is one author in a PresenterDetail.
type PresenterRow struct {
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
	Order       int    `json:"order"`
}

// List returns all registrations newest first, with presenter sub-records
// attached where present.
func (r *RegistrationRepo) List(ctx context.Context) ([]Detail, error) {
	const q = `SELECT r.id, r.attending_as, r.session_type, r.registration_type,
					  r.presentation_category, r.payment_status, r.is_early_bird,
					  r.period_id, r.proof_of_payment, r.created_at,
					  pr.id, pr.email, pr.current_status, pr.affiliation,
					  pr.topic_preference, pr.presentation_title, pr.paper_submission,
					  pr.abstract_submission, pr.review_status, pr.paper_status, pr.comment
			   FROM registrations r
			   LEFT JOIN presenter_registrations pr ON pr.registration_id = r.id
			   ORDER BY r.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []Detail
	prIDs := map[uint64]int{} // presenter_registration id -> index in details
	for rows.Next() {
		var d Detail
		var periodID sql.NullInt64
		var prID sql.NullInt64
		var email, curStatus, affiliation, topic, title, paper sql.NullString
		var abstract sql.NullString
		var review, paperStatus, comment sql.NullString
		if err := rows.Scan(
			&d.ID, &d.AttendingAs, &d.SessionType, &d.RegistrationType,
			&d.PresentationCategory, &d.PaymentStatus, &d.IsEarlyBird,
			&periodID, &d.ProofOfPayment, &d.CreatedAt,
			&prID, &email, &curStatus, &affiliation,
			&topic, &title, &paper, &abstract, &review, &paperStatus, &comment,
		); err != nil {
			return nil, err
		}
		if periodID.Valid {
			pid := uint64(periodID.Int64)
			d.PeriodID = &pid
		}
		if prID.Valid {
			pd := &PresenterDetail{
				Email:             email.String,
				CurrentStatus:     curStatus.String,
				Affiliation:       affiliation.String,
				TopicPreference:   topic.String,
				PresentationTitle: title.String,
				PaperSubmission:   paper.String,
				ReviewStatus:      review.String,
				PaperStatus:       paperStatus.String,
				Comment:           comment.String,
				Presenters:        []PresenterRow{},
			}
			if abstract.Valid {
				a := abstract.String
				pd.AbstractSubmission = &a
			}
			d.Presenter = pd
			prIDs[uint64(prID.Int64)] = len(details)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(prIDs) == 0 {
		return details, nil
	}

	// Attach presenters in a second query; one round trip for all rows.
	const pq = `SELECT p.presenter_registration_id, p.name, p.nationality, p.display_order
				FROM presenters p
				ORDER BY p.presenter_registration_id, p.display_order`
	prows, err := r.db.QueryContext(ctx, pq)
	if err != nil {
		return nil, err
	}
	defer prows.Close()
	for prows.Next() {
		var prRegID uint64
		var row PresenterRow
		if err := prows.Scan(&prRegID, &row.Name, &row.Nationality, &row.Order); err != nil {
			return nil, err
		}
		if idx, ok := prIDs[prRegID]; ok {
			details[idx].Presenter.Presenters = append(details[idx].Presenter.Presenters, row)
		}
	}
	return details, prows.Err()
}

// UpdatePaymentStatus sets the payment status of one registration.  The
// caller has already checked set membership.
func (r *RegistrationRepo) UpdatePaymentStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE registrations SET payment_status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	return mapMissing(ctx, r.db, "registrations", id, res)
}

// UpdatePaperStatus sets the paper status and reviewer comment on the
// presenter sub-record of the given registration.
func (r *RegistrationRepo) UpdatePaperStatus(ctx context.Context, registrationID uint64, status, comment string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE presenter_registrations SET paper_status=?, comment=? WHERE registration_id=?",
		status, comment, registrationID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists uint64
		err := r.db.QueryRowContext(ctx,
			"SELECT id FROM presenter_registrations WHERE registration_id=? LIMIT 1",
			registrationID).Scan(&exists)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// UpdateReviewStatus sets the abstract review status on the presenter
// sub-record of the given registration.
func (r *RegistrationRepo) UpdateReviewStatus(ctx context.Context, registrationID uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE presenter_registrations SET review_status=? WHERE registration_id=?",
		status, registrationID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists uint64
		err := r.db.QueryRowContext(ctx,
			"SELECT id FROM presenter_registrations WHERE registration_id=? LIMIT 1",
			registrationID).Scan(&exists)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Delete removes a registration and everything it owns.  The sub-record and
// presenter rows have no independent lifecycle, so they are removed in the
// same transaction; the provisioned user account is kept so the presenter
// can still log in and be told what happened.
func (r *RegistrationRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`DELETE p FROM presenters p
		 JOIN presenter_registrations pr ON pr.id = p.presenter_registration_id
		 WHERE pr.registration_id = ?`, id)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		"DELETE FROM presenter_registrations WHERE registration_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM registrations WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// PaperExportRow is one line of the presenter CSV export.
type PaperExportRow struct {
	RegistrationID    uint64
	Presenters        string // comma-joined names in display order
	Email             string
	PresentationTitle string
	PaperSubmission   string
	PaperStatus       string
	Comment           string
}

// PaperExport returns the presenter registrations as flat export rows,
// oldest first.  Presenter names are concatenated in display order inside
// the query so the projection stays a single round trip.
func (r *RegistrationRepo) PaperExport(ctx context.Context) ([]PaperExportRow, error) {
	const q = `SELECT r.id, COALESCE(GROUP_CONCAT(p.name ORDER BY p.display_order SEPARATOR ', '), ''),
					  pr.email, pr.presentation_title, pr.paper_submission, pr.paper_status, pr.comment
			   FROM registrations r
			   JOIN presenter_registrations pr ON pr.registration_id = r.id
			   LEFT JOIN presenters p ON p.presenter_registration_id = pr.id
			   WHERE r.attending_as = 'PRESENTER'
			   GROUP BY r.id, pr.email, pr.presentation_title, pr.paper_submission, pr.paper_status, pr.comment
			   ORDER BY r.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PaperExportRow
	for rows.Next() {
		var row PaperExportRow
		if err := rows.Scan(&row.RegistrationID, &row.Presenters, &row.Email,
			&row.PresentationTitle, &row.PaperSubmission, &row.PaperStatus, &row.Comment); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// mapMissing turns a zero-row UPDATE into ErrNotFound when the target row
// does not exist (as opposed to the update being a no-op).
func mapMissing(ctx context.Context, db *sql.DB, table string, id uint64, res sql.Result) error {
	if n, err := res.RowsAffected(); err != nil || n > 0 {
		return err
	}
	var exists uint64
	err := db.QueryRowContext(ctx, "SELECT id FROM "+table+" WHERE id=? LIMIT 1", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}
