package responses

import (
	"context"
	"errors"
	"log"
	"strings"

	"Backend-Feedback/src/models"
	"Backend-Feedback/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// loadOriginal fetches a response that can be corrected: it must exist and not be a correction itself.
func (s *Service) loadOriginal(ctx context.Context, responseID primitive.ObjectID) (*models.Response, error) {
	original, err := s.loadResponse(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if original.IsReFeedback {
		return nil, utils.BadRequest("A re-feedback response cannot be revised again")
	}
	return original, nil
}

func (s *Service) hasReFeedback(ctx context.Context, originalID primitive.ObjectID) (bool, error) {
	_, err := s.store.FindReFeedbackFor(ctx, originalID)
	if errors.Is(err, models.ErrResponseNotFound) {
		return false, nil
	}
	return err == nil, err
}

// GetReFeedbackData prepares the correction page for a flagged response.
func (s *Service) GetReFeedbackData(ctx context.Context, responseID primitive.ObjectID) (*models.ReFeedbackData, error) {
	original, err := s.loadOriginal(ctx, responseID)
	if err != nil {
		return nil, err
	}
	form, err := s.loadForm(ctx, original.FormID)
	if err != nil {
		return nil, err
	}
	if form.ApprovalStatus != models.ApprovalApproved {
		return nil, utils.NotFound("Form not found")
	}

	flagged := flaggedAnswers(form, original)
	ids := make([]string, 0, len(flagged))
	for _, f := range flagged {
		ids = append(ids, f.QuestionID)
	}

	submitted, err := s.hasReFeedback(ctx, original.ID)
	if err != nil {
		return nil, err
	}

	return &models.ReFeedbackData{
		ResponseID:         original.ID,
		Form:               form.Public(),
		StudentName:        original.StudentName,
		Batch:              original.Batch,
		Answers:            original.Answers,
		FlaggedQuestionIDs: ids,
		AlreadySubmitted:   submitted,
	}, nil
}

// SubmitReFeedback stores the single allowed correction of a flagged response.
// The original stays untouched; its answers are snapshotted into PreviousAnswers.
func (s *Service) SubmitReFeedback(ctx context.Context, formID, responseID primitive.ObjectID, dto *models.SubmitResponseDto) (*models.Response, error) {
	form, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.ApprovalStatus != models.ApprovalApproved {
		return nil, utils.Forbidden("This form is not accepting responses")
	}

	original, err := s.loadOriginal(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if original.FormID != form.ID {
		return nil, utils.BadRequest("Response does not belong to this form")
	}
	if len(flaggedAnswers(form, original)) == 0 {
		return nil, utils.BadRequest("This response has no lower feedback to revise")
	}

	submitted, err := s.hasReFeedback(ctx, original.ID)
	if err != nil {
		return nil, err
	}
	if submitted {
		return nil, utils.BadRequest("Re-feedback has already been submitted for this response")
	}

	if strings.TrimSpace(dto.StudentName) != original.StudentName || strings.TrimSpace(dto.Batch) != original.Batch {
		return nil, utils.BadRequest("Student name and batch must match the original response")
	}

	answers, err := ValidateAnswers(form, dto.Answers)
	if err != nil {
		return nil, utils.BadRequest("%s", err.Error())
	}
	if err := checkCorrection(form, original, answers); err != nil {
		return nil, utils.BadRequest("%s", err.Error())
	}

	now := s.now()
	_, _, day := s.dayBounds(now)
	originalID := original.ID
	correction := &models.Response{
		ID:                 primitive.NewObjectID(),
		FormID:             form.ID,
		StudentName:        original.StudentName,
		Batch:              original.Batch,
		Answers:            answers,
		SubmittedAt:        now,
		SubmissionDay:      day,
		IsReFeedback:       true,
		OriginalResponseID: &originalID,
		PreviousAnswers:    append([]models.Answer(nil), original.Answers...),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.store.InsertResponse(ctx, correction); err != nil {
		if errors.Is(err, models.ErrDuplicateReFeedback) {
			return nil, utils.BadRequest("Re-feedback has already been submitted for this response")
		}
		return nil, err
	}

	log.Printf("✅ Re-feedback %s stored for response %s", correction.ID.Hex(), original.ID.Hex())
	return correction, nil
}

// checkCorrection: an original "Yes" is locked (it may be neither changed nor left out),
// and low ratings must say why.
func checkCorrection(form *models.Form, original *models.Response, answers []models.Answer) error {
	for i := range form.Questions {
		q := &form.Questions[i]
		if q.Type != models.YesNo {
			continue
		}
		prev, ok := original.AnswerFor(q.ID)
		if !ok {
			continue
		}
		if before, _ := prev.StringValue(); before != models.AnswerYes {
			continue
		}
		current := lookup(answers, q.ID)
		if current == nil {
			return errors.New(q.QuestionText + ": a Yes answer cannot be removed")
		}
		if after, _ := current.StringValue(); after != models.AnswerYes {
			return errors.New(q.QuestionText + ": a Yes answer cannot be changed to No")
		}
	}

	for _, a := range answers {
		q := form.QuestionByID(a.QuestionID)
		if q.Type == models.StarRating && IsLowerFeedback(q, a.Answer) && strings.TrimSpace(a.Answer.Reason) == "" {
			return errors.New(q.QuestionText + ": a reason is required for ratings below 8")
		}
	}
	return nil
}

// ReFeedbackComparisons lines each correction up against the answers it replaced.
func (s *Service) ReFeedbackComparisons(ctx context.Context, user *models.CurrentUser, formID primitive.ObjectID) ([]models.ReFeedbackComparison, error) {
	form, err := s.viewableForm(ctx, user, formID)
	if err != nil {
		return nil, err
	}
	list, err := s.store.ListResponses(ctx, models.ResponseFilter{FormID: form.ID})
	if err != nil {
		return nil, err
	}

	out := make([]models.ReFeedbackComparison, 0)
	for i := range list {
		r := &list[i]
		if !r.IsReFeedback || r.OriginalResponseID == nil {
			continue
		}
		out = append(out, models.ReFeedbackComparison{
			ReFeedbackID:       r.ID,
			OriginalResponseID: *r.OriginalResponseID,
			StudentName:        r.StudentName,
			Batch:              r.Batch,
			SubmittedAt:        r.SubmittedAt,
			Changes:            diffAnswers(form, r.PreviousAnswers, r.Answers),
		})
	}
	return out, nil
}

func lookup(answers []models.Answer, questionID string) *models.AnswerValue {
	for i := range answers {
		if answers[i].QuestionID == questionID {
			v := answers[i].Answer
			return &v
		}
	}
	return nil
}

func diffAnswers(form *models.Form, previous, current []models.Answer) []models.AnswerChange {
	changes := make([]models.AnswerChange, 0, len(form.Questions))
	for _, q := range form.Questions {
		before := lookup(previous, q.ID)
		after := lookup(current, q.ID)
		if before == nil && after == nil {
			continue
		}
		changed := before == nil || after == nil || !before.Equal(*after)
		changes = append(changes, models.AnswerChange{
			QuestionID:   q.ID,
			QuestionText: q.QuestionText,
			Previous:     before,
			Current:      after,
			Changed:      changed,
		})
	}
	return changes
}
