package responses

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"Backend-Feedback/src/models"
	"Backend-Feedback/src/services/forms"
	"Backend-Feedback/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dayLayout = "2006-01-02"

const duplicateSubmissionMessage = "You have already submitted feedback for this form today"

type Store interface {
	FindFormByID(ctx context.Context, id primitive.ObjectID) (*models.Form, error)
	InsertResponse(ctx context.Context, r *models.Response) error
	FindResponseByID(ctx context.Context, id primitive.ObjectID) (*models.Response, error)
	ListResponses(ctx context.Context, filter models.ResponseFilter) ([]models.Response, error)
	DistinctBatches(ctx context.Context, formID primitive.ObjectID) ([]string, error)
	HasSubmissionBetween(ctx context.Context, key models.DailyKey, start, end time.Time) (bool, error)
	FindReFeedbackFor(ctx context.Context, originalID primitive.ObjectID) (*models.Response, error)
}

type Service struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

// NewService builds the response service; loc decides where a calendar day starts.
func NewService(store Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: store, loc: loc, now: time.Now}
}

// WithClock replaces the time source, used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// dayBounds returns the local calendar day containing t as [start, end) plus its label.
func (s *Service) dayBounds(t time.Time) (time.Time, time.Time, string) {
	local := t.In(s.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	return start, start.AddDate(0, 0, 1), start.Format(dayLayout)
}

func (s *Service) loadForm(ctx context.Context, id primitive.ObjectID) (*models.Form, error) {
	form, err := s.store.FindFormByID(ctx, id)
	if errors.Is(err, models.ErrFormNotFound) {
		return nil, utils.NotFound("Form not found")
	}
	return form, err
}

// viewableForm loads the form for staff endpoints.
func (s *Service) viewableForm(ctx context.Context, user *models.CurrentUser, id primitive.ObjectID) (*models.Form, error) {
	form, err := s.loadForm(ctx, id)
	if err != nil {
		return nil, err
	}
	if !forms.CanView(user, form) {
		return nil, utils.Forbidden("You do not have access to this form's responses")
	}
	return form, nil
}

func (s *Service) loadResponse(ctx context.Context, id primitive.ObjectID) (*models.Response, error) {
	r, err := s.store.FindResponseByID(ctx, id)
	if errors.Is(err, models.ErrResponseNotFound) {
		return nil, utils.NotFound("Response not found")
	}
	return r, err
}

// SubmitResponse stores a student's answers. One original submission per
// (form, student, batch) per calendar day.
func (s *Service) SubmitResponse(ctx context.Context, formID primitive.ObjectID, dto *models.SubmitResponseDto) (*models.Response, error) {
	form, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	if !form.IsFillable() {
		return nil, utils.Forbidden("This form is not accepting responses")
	}

	studentName := strings.TrimSpace(dto.StudentName)
	batch := strings.TrimSpace(dto.Batch)
	if studentName == "" || batch == "" {
		return nil, utils.BadRequest("Student name and batch are required")
	}
	if !form.AllowsBatch(batch) {
		return nil, utils.BadRequest("Batch %s is not allowed for this form", batch)
	}

	answers, err := ValidateAnswers(form, dto.Answers)
	if err != nil {
		return nil, utils.BadRequest("%s", err.Error())
	}

	now := s.now()
	start, end, day := s.dayBounds(now)
	key := models.DailyKey{FormID: form.ID, StudentName: studentName, Batch: batch, Day: day}
	exists, err := s.store.HasSubmissionBetween(ctx, key, start, end)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.BadRequest(duplicateSubmissionMessage)
	}

	response := &models.Response{
		ID:            primitive.NewObjectID(),
		FormID:        form.ID,
		StudentName:   studentName,
		Batch:         batch,
		Answers:       answers,
		SubmittedAt:   now,
		SubmissionDay: day,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.InsertResponse(ctx, response); err != nil {
		if errors.Is(err, models.ErrDuplicateSubmission) {
			return nil, utils.BadRequest(duplicateSubmissionMessage)
		}
		return nil, err
	}

	log.Printf("✅ Response %s submitted to form %s (batch %s)", response.ID.Hex(), form.ID.Hex(), batch)
	return response, nil
}

// ListResponses returns the form's responses, newest first, with every batch seen so far.
func (s *Service) ListResponses(ctx context.Context, user *models.CurrentUser, formID primitive.ObjectID, batches []string) (*models.ResponseListResult, error) {
	form, err := s.viewableForm(ctx, user, formID)
	if err != nil {
		return nil, err
	}

	list, err := s.store.ListResponses(ctx, models.ResponseFilter{FormID: form.ID, Batches: CleanBatches(batches)})
	if err != nil {
		return nil, err
	}
	allBatches, err := s.store.DistinctBatches(ctx, form.ID)
	if err != nil {
		return nil, err
	}
	return &models.ResponseListResult{Responses: list, Batches: allBatches}, nil
}

// CleanBatches trims a batch filter and drops blanks.
func CleanBatches(in []string) []string {
	out := make([]string, 0, len(in))
	for _, b := range in {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
