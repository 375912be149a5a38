package model

import "time"

// Paper review statuses.  Flat set: the admin picks any value directly from
// a selection control and each change is persisted independently.
const (
	PaperPending           = "PENDING"
	PaperUnderReview       = "UNDER_REVIEW"
	PaperAccepted          = "ACCEPTED"
	PaperRevisionRequested = "REVISION_REQUESTED"
	PaperRejected          = "REJECTED"
)

// PaperStatuses lists every valid paper status.
var PaperStatuses = []string{
	PaperPending, PaperUnderReview, PaperAccepted, PaperRevisionRequested, PaperRejected,
}

// Abstract review statuses, independent of the paper workflow.
const (
	ReviewPending           = "PENDING"
	ReviewAccepted          = "ACCEPTED"
	ReviewRevisionRequested = "REVISION_REQUESTED"
	ReviewRejected          = "REJECTED"
)

// ReviewStatuses lists every valid abstract review status.
var ReviewStatuses = []string{
	ReviewPending, ReviewAccepted, ReviewRevisionRequested, ReviewRejected,
}

// PresentationCategory values for presenter submissions.
const (
	CategoryOral   = "ORAL"
	CategoryPoster = "POSTER"
)

// CurrentStatus values describe the lead presenter's academic standing.
var CurrentStatuses = []string{
	"BACHELOR_STUDENT",
	"MASTER_STUDENT",
	"PHD_STUDENT",
	"RESEARCHER_PROFESSIONAL",
	"OTHER",
}

// TopicPreferences is the closed set of conference tracks a presenter may
// submit under.
var TopicPreferences = []string{
	"ENGINEERING",
	"HEALTH_SCIENCE",
	"LIFE_SCIENCE",
	"EARTH_SCIENCE",
	"MATERIAL_SCIENCE",
	"SOCIAL_LAW_POLITICAL_SCIENCE",
	"HUMANITIES",
	"SPORTS_AND_ARTS",
	"BUSINESS_PUBLIC_ADMINISTRATION",
	"EDUCATION",
}

// PresenterRegistration holds the presenter-specific half of a registration.
// Exactly one exists per registration with attending_as = PRESENTER, and it
// has no lifecycle of its own: deleting the registration removes it together
// with its presenters.
//
// Fields:
//  ID                 – primary key identifier.
//  RegistrationID     – owning registration (unique).
//  Email              – contact address; also the provisioned login email.
//  CurrentStatus      – academic standing of the lead presenter.
//  Affiliation        – university or institution.
//  TopicPreference    – chosen conference track.
//  PresentationTitle  – title of the submitted work.
//  PaperSubmission    – URL of the uploaded paper file.
//  AbstractSubmission – URL of the uploaded abstract, if any.
//  ReviewStatus       – abstract review state.
//  PaperStatus        – paper review state.
//  Comment            – reviewer comment shown back to the presenter.
//  UserID             – login account provisioned at submission.
//  CreatedAt          – creation timestamp.
type PresenterRegistration struct {
	ID                 uint64    // presenter_registrations.id
	RegistrationID     uint64    // presenter_registrations.registration_id
	Email              string    // presenter_registrations.email
	CurrentStatus      string    // presenter_registrations.current_status
	Affiliation        string    // presenter_registrations.affiliation
	TopicPreference    string    // presenter_registrations.topic_preference
	PresentationTitle  string    // presenter_registrations.presentation_title
	PaperSubmission    string    // presenter_registrations.paper_submission
	AbstractSubmission *string   // presenter_registrations.abstract_submission (nullable)
	ReviewStatus       string    // presenter_registrations.review_status
	PaperStatus        string    // presenter_registrations.paper_status
	Comment            string    // presenter_registrations.comment
	UserID             uint64    // presenter_registrations.user_id
	CreatedAt          time.Time // presenter_registrations.created_at
}

// Presenter is one named author on a presenter registration.  A registration
// carries between one and three presenters, kept in submission order.
type Presenter struct {
	ID                      uint64 // presenters.id
	PresenterRegistrationID uint64 // presenters.presenter_registration_id
	Name                    string // presenters.name
	Nationality             string // presenters.nationality
	Order                   int    // presenters.display_order (1-based)
}
