package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Question types ---
type QuestionType string

const (
	ShortAnswer    QuestionType = "short"
	Paragraph      QuestionType = "paragraph"
	MultipleChoice QuestionType = "mcq"
	Checkbox       QuestionType = "checkbox"
	Dropdown       QuestionType = "dropdown"
	StarRating     QuestionType = "star_rating"
	YesNo          QuestionType = "yes_no"
)

const (
	AnswerYes = "Yes"
	AnswerNo  = "No"

	DefaultMaxStars = 10
	// LowerFeedbackThreshold ratings strictly below this are treated as negative feedback.
	LowerFeedbackThreshold = 8
)

// --- Approval status ---
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

const DefaultRejectionReason = "Rejected by admin"

// --- Form ---
type Form struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title           string              `bson:"title" json:"title"`
	Description     string              `bson:"description" json:"description"`
	Questions       []Question          `bson:"questions" json:"questions"`
	CreatedBy       primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	AssignedTo      *primitive.ObjectID `bson:"assignedTo" json:"assignedTo"`
	AllowedBatches  []string            `bson:"allowedBatches" json:"allowedBatches"`
	IsActive        bool                `bson:"isActive" json:"isActive"`
	ApprovalStatus  ApprovalStatus      `bson:"approvalStatus" json:"approvalStatus"`
	CreatedByRole   Role                `bson:"createdByRole" json:"createdByRole"`
	ApprovedBy      *primitive.ObjectID `bson:"approvedBy" json:"approvedBy"`
	ApprovedAt      *time.Time          `bson:"approvedAt" json:"approvedAt"`
	RejectionReason *string             `bson:"rejectionReason" json:"rejectionReason"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// --- Question ---
type Question struct {
	ID           string       `bson:"id" json:"id"`
	QuestionText string       `bson:"questionText" json:"questionText"`
	Type         QuestionType `bson:"type" json:"type"`
	Options      []string     `bson:"options,omitempty" json:"options,omitempty"`
	MaxStars     int          `bson:"maxStars,omitempty" json:"maxStars,omitempty"`
	Required     bool         `bson:"required" json:"required"`
}

// IsFillable reports whether students may submit to the form through its public link.
func (f *Form) IsFillable() bool {
	return f.IsActive && f.ApprovalStatus == ApprovalApproved && len(f.Questions) > 0
}

// AllowsBatch is true when the batch list is unrestricted or contains batch.
func (f *Form) AllowsBatch(batch string) bool {
	if len(f.AllowedBatches) == 0 {
		return true
	}
	for _, b := range f.AllowedBatches {
		if b == batch {
			return true
		}
	}
	return false
}

// QuestionByID returns nil when the form has no question with that id.
func (f *Form) QuestionByID(id string) *Question {
	for i := range f.Questions {
		if f.Questions[i].ID == id {
			return &f.Questions[i]
		}
	}
	return nil
}

// IsAssignedTo reports whether the account is the form's assigned teacher.
func (f *Form) IsAssignedTo(accountID primitive.ObjectID) bool {
	return f.AssignedTo != nil && *f.AssignedTo == accountID
}

// PublicForm is what the fill page sees: no ownership or review metadata.
type PublicForm struct {
	ID             primitive.ObjectID `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Questions      []Question         `json:"questions"`
	AllowedBatches []string           `json:"allowedBatches"`
}

func (f *Form) Public() PublicForm {
	return PublicForm{
		ID:             f.ID,
		Title:          f.Title,
		Description:    f.Description,
		Questions:      f.Questions,
		AllowedBatches: f.AllowedBatches,
	}
}

// FormFilter scopes list and count queries. Zero value matches every form.
type FormFilter struct {
	AssignedTo *primitive.ObjectID
	// VisibleTo matches forms assigned to OR created by the account.
	VisibleTo      *primitive.ObjectID
	ActiveOnly     bool
	ApprovalStatus ApprovalStatus
}

// --- DTOs ---

type QuestionDto struct {
	ID           string       `json:"id"`
	QuestionText string       `json:"questionText" validate:"required"`
	Type         QuestionType `json:"type" validate:"required,oneof=short paragraph mcq checkbox dropdown star_rating yes_no"`
	Options      []string     `json:"options"`
	MaxStars     int          `json:"maxStars" validate:"gte=0,lte=10"`
	Required     bool         `json:"required"`
}

type FormDto struct {
	Title          string        `json:"title" validate:"required"`
	Description    string        `json:"description"`
	Questions      []QuestionDto `json:"questions" validate:"required,min=1,dive"`
	AssignedTo     string        `json:"assignedTo"`
	AllowedBatches []string      `json:"allowedBatches"`
}

type RejectFormDto struct {
	Reason string `json:"reason"`
}
