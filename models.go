package jobboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the account's role
type UserRole string

const (
	// RoleApplicant is a regular account that can apply to jobs
	RoleApplicant UserRole = "applicant"
	// RoleEmployer is a privileged account that can post jobs and
	// review the applications they receive
	RoleEmployer UserRole = "employer"
)

// User is the account model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone         string     `bun:"phone_number" json:"phone_number,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	IsActive      bool       `bun:"is_active" json:"is_active"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// EmploymentType categorizes job postings
type EmploymentType string

const (
	EmploymentFullTime  EmploymentType = "full_time"
	EmploymentPartTime  EmploymentType = "part_time"
	EmploymentContract  EmploymentType = "contract"
	EmploymentTemporary EmploymentType = "temporary"
	EmploymentIntern    EmploymentType = "intern"
)

// ValidEmploymentType reports whether t names a known employment type
func ValidEmploymentType(t EmploymentType) bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract,
		EmploymentTemporary, EmploymentIntern:
		return true
	default:
		return false
	}
}

// Job is the job posting model. EmployerID references the employer
// account that owns the posting.
type Job struct {
	bun.BaseModel  `bun:"table:jobs,alias:job"`
	ID             uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title          string         `bun:"title,notnull" json:"title,omitempty"`
	Description    string         `bun:"description,notnull" json:"description,omitempty"`
	EmploymentType EmploymentType `bun:"employment_type,notnull" json:"employment_type,omitempty"`
	Location       string         `bun:"location,notnull" json:"location,omitempty"`
	IsActive       bool           `bun:"is_active" json:"is_active"`
	EmployerID     uuid.UUID      `bun:"employer_id,notnull,type:uuid" json:"employer_id,omitempty"`
	Employer       *User          `bun:"rel:belongs-to,join:employer_id=id" json:"employer,omitempty"`
	CreatedAt      *time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time     `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// ApplicationStatus tracks an application through review
type ApplicationStatus string

const (
	ApplicationSubmitted ApplicationStatus = "submitted"
	ApplicationReviewing ApplicationStatus = "reviewing"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
)

// ValidApplicationStatus reports whether s names a known status
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationSubmitted, ApplicationReviewing,
		ApplicationAccepted, ApplicationRejected:
		return true
	default:
		return false
	}
}

// Application links an applicant account to a job posting
type Application struct {
	bun.BaseModel `bun:"table:applications,alias:apl"`
	ID            uuid.UUID         `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	CoverLetter   string            `bun:"cover_letter" json:"cover_letter,omitempty"`
	Status        ApplicationStatus `bun:"status,notnull" json:"status,omitempty"`
	JobID         uuid.UUID         `bun:"job_id,notnull,type:uuid" json:"job_id,omitempty"`
	Job           *Job              `bun:"rel:belongs-to,join:job_id=id" json:"job,omitempty"`
	ApplicantID   uuid.UUID         `bun:"applicant_id,notnull,type:uuid" json:"applicant_id,omitempty"`
	Applicant     *User             `bun:"rel:belongs-to,join:applicant_id=id" json:"applicant,omitempty"`
	AppliedAt     *time.Time        `bun:"applied_at,nullzero,default:current_timestamp" json:"applied_at,omitempty"`
	UpdatedAt     *time.Time        `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
