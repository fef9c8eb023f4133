package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Answer struct {
	QuestionID string      `bson:"questionId" json:"questionId"`
	Answer     AnswerValue `bson:"answer" json:"answer"`
}

// Response is one student submission. Re-feedback corrections are stored as responses too.
type Response struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FormID      primitive.ObjectID `bson:"form" json:"form"`
	StudentName string             `bson:"studentName" json:"studentName"`
	Batch       string             `bson:"batch" json:"batch"`
	Answers     []Answer           `bson:"answers" json:"answers"`
	SubmittedAt time.Time          `bson:"submittedAt" json:"submittedAt"`
	// SubmissionDay is the calendar day (2006-01-02) of SubmittedAt in the server timezone.
	SubmissionDay string `bson:"submissionDay" json:"submissionDay"`

	IsReFeedback       bool                `bson:"isReFeedback" json:"isReFeedback"`
	OriginalResponseID *primitive.ObjectID `bson:"originalResponseId,omitempty" json:"originalResponseId,omitempty"`
	PreviousAnswers    []Answer            `bson:"previousAnswers,omitempty" json:"previousAnswers,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AnswerFor returns the answer to questionID, if any.
func (r *Response) AnswerFor(questionID string) (AnswerValue, bool) {
	for _, a := range r.Answers {
		if a.QuestionID == questionID {
			return a.Answer, true
		}
	}
	return AnswerValue{}, false
}

type ResponseFilter struct {
	FormID  primitive.ObjectID
	Batches []string
}

// DailyKey identifies the one-submission-per-day slot.
type DailyKey struct {
	FormID      primitive.ObjectID
	StudentName string
	Batch       string
	Day         string
}

// --- DTOs ---

type SubmitResponseDto struct {
	StudentName string   `json:"studentName" validate:"required"`
	Batch       string   `json:"batch" validate:"required"`
	Answers     []Answer `json:"answers"`
}

type ResponseListResult struct {
	Responses []Response `json:"responses"`
	Batches   []string   `json:"batches"`
}

// --- Lower feedback ---

type FlaggedAnswer struct {
	QuestionID   string       `json:"questionId"`
	QuestionText string       `json:"questionText"`
	Type         QuestionType `json:"type"`
	Answer       AnswerValue  `json:"answer"`
}

type FlaggedResponse struct {
	ResponseID    primitive.ObjectID  `json:"responseId"`
	SubmittedAt   time.Time           `json:"submittedAt"`
	Answers       []FlaggedAnswer     `json:"answers"`
	HasReFeedback bool                `json:"hasReFeedback"`
	ReFeedbackID  *primitive.ObjectID `json:"reFeedbackId,omitempty"`
}

type LowerFeedbackGroup struct {
	StudentName string            `json:"studentName"`
	Batch       string            `json:"batch"`
	Responses   []FlaggedResponse `json:"responses"`
}

// --- Re-feedback ---

type ReFeedbackData struct {
	ResponseID         primitive.ObjectID `json:"responseId"`
	Form               PublicForm         `json:"form"`
	StudentName        string             `json:"studentName"`
	Batch              string             `json:"batch"`
	Answers            []Answer           `json:"answers"`
	FlaggedQuestionIDs []string           `json:"flaggedQuestionIds"`
	AlreadySubmitted   bool               `json:"alreadySubmitted"`
}

type AnswerChange struct {
	QuestionID   string       `json:"questionId"`
	QuestionText string       `json:"questionText"`
	Previous     *AnswerValue `json:"previous"`
	Current      *AnswerValue `json:"current"`
	Changed      bool         `json:"changed"`
}

type ReFeedbackComparison struct {
	ReFeedbackID       primitive.ObjectID `json:"reFeedbackId"`
	OriginalResponseID primitive.ObjectID `json:"originalResponseId"`
	StudentName        string             `json:"studentName"`
	Batch              string             `json:"batch"`
	SubmittedAt        time.Time          `json:"submittedAt"`
	Changes            []AnswerChange     `json:"changes"`
}

// --- Dashboard ---

type DashboardStats struct {
	TotalForms       int64 `json:"totalForms"`
	ActiveForms      int64 `json:"activeForms"`
	TotalResponses   int64 `json:"totalResponses"`
	PendingApprovals int64 `json:"pendingApprovals"`
}
