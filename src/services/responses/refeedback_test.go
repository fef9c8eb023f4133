package responses

import (
	"context"
	"net/http"
	"testing"
	"time"

	"Backend-Feedback/src/models"
	"Backend-Feedback/src/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratingWithReason(recommend string, rating float64, reason string) []models.Answer {
	return []models.Answer{
		{QuestionID: "q-recommend", Answer: models.TextAnswer(recommend)},
		{QuestionID: "q-rating", Answer: models.RatingAnswer(rating, reason)},
	}
}

func TestLowerFeedback(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	form := f.approvedForm(t)

	flaggedNo, err := f.svc.SubmitResponse(ctx, form.ID, submission("Jane", "2024", "No", 9))
	require.NoError(t, err)
	_, err = f.svc.SubmitResponse(ctx, form.ID, submission("Ken", "2024", "Yes", 9))
	require.NoError(t, err)
	flaggedStars, err := f.svc.SubmitResponse(ctx, form.ID, submission("Lia", "2025", "Yes", 5))
	require.NoError(t, err)

	groups, err := f.svc.LowerFeedback(ctx, f.teacher, form.ID, nil)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "Jane", groups[0].StudentName)
	require.Len(t, groups[0].Responses, 1)
	assert.Equal(t, flaggedNo.ID, groups[0].Responses[0].ResponseID)
	require.Len(t, groups[0].Responses[0].Answers, 1)
	assert.Equal(t, "q-recommend", groups[0].Responses[0].Answers[0].QuestionID)
	assert.False(t, groups[0].Responses[0].HasReFeedback)

	assert.Equal(t, "Lia", groups[1].StudentName)
	assert.Equal(t, "2025", groups[1].Batch)
	assert.Equal(t, flaggedStars.ID, groups[1].Responses[0].ResponseID)
	assert.Equal(t, "q-rating", groups[1].Responses[0].Answers[0].QuestionID)

	// correcting Jane's response marks it and the correction itself is not scanned
	correction, err := f.svc.SubmitReFeedback(ctx, form.ID, flaggedNo.ID, &models.SubmitResponseDto{
		StudentName: "Jane", Batch: "2024", Answers: ratingWithReason("Yes", 5, "Labs were rushed"),
	})
	require.NoError(t, err)

	groups, err = f.svc.LowerFeedback(ctx, f.teacher, form.ID, []string{"2024"})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Responses, 1)
	assert.True(t, groups[0].Responses[0].HasReFeedback)
	require.NotNil(t, groups[0].Responses[0].ReFeedbackID)
	assert.Equal(t, correction.ID, *groups[0].Responses[0].ReFeedbackID)
}

func TestReFeedback(t *testing.T) {
	suiteResult := testutil.NewTestSuiteResult("Re-feedback Tests")
	defer suiteResult.PrintSummary()
	ctx := context.Background()

	setup := func(t *testing.T, recommend string, rating float64) (*fixture, *models.Form, *models.Response) {
		f := newFixture(t)
		form := f.approvedForm(t)
		original, err := f.svc.SubmitResponse(ctx, form.ID, submission("Jane", "2024", recommend, rating))
		require.NoError(t, err)
		f.clock.Advance(time.Hour)
		return f, form, original
	}

	t.Run("TestReFeedbackData", func(t *testing.T) {
		defer suiteResult.Track(t, "Re-feedback Data")()
		f, form, original := setup(t, "No", 5)

		data, err := f.svc.GetReFeedbackData(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, form.ID, data.Form.ID)
		assert.Equal(t, "Jane", data.StudentName)
		assert.Equal(t, []string{"q-recommend", "q-rating"}, data.FlaggedQuestionIDs)
		assert.False(t, data.AlreadySubmitted)
	})

	t.Run("TestNoToYesAllowed", func(t *testing.T) {
		defer suiteResult.Track(t, "No To Yes Allowed")()
		f, form, original := setup(t, "No", 9)

		r, err := f.svc.SubmitReFeedback(ctx, form.ID, original.ID, submission(" Jane ", "2024", "Yes", 9))
		require.NoError(t, err)
		assert.True(t, r.IsReFeedback)
		require.NotNil(t, r.OriginalResponseID)
		assert.Equal(t, original.ID, *r.OriginalResponseID)
		assert.Equal(t, original.Answers, r.PreviousAnswers)

		stored, err := f.db.FindResponseByID(ctx, original.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsReFeedback)
		assert.Equal(t, original.Answers, stored.Answers, "original untouched")

		data, err := f.svc.GetReFeedbackData(ctx, original.ID)
		require.NoError(t, err)
		assert.True(t, data.AlreadySubmitted)
	})

	t.Run("TestYesToNoRejected", func(t *testing.T) {
		defer suiteResult.Track(t, "Yes To No Rejected")()
		f, form, original := setup(t, "Yes", 5)

		_, err := f.svc.SubmitReFeedback(ctx, form.ID, original.ID, &models.SubmitResponseDto{
			StudentName: "Jane", Batch: "2024", Answers: ratingWithReason("No", 9, ""),
		})
		assert.Equal(t, http.StatusBadRequest, appErr(t, err).Status)
	})

	t.Run("TestYesCannotBeCleared", func(t *testing.T) {
		defer suiteResult.Track(t, "Yes Cannot Be Cleared")()
		f := newFixture(t)
		form, err := f.forms.CreateForm(ctx, f.admin, &models.FormDto{
			Title: "Lab feedback",
			Questions: []models.QuestionDto{
				{ID: "q-lab", QuestionText: "Were the labs useful?", Type: models.YesNo},
				{ID: "q-rating", QuestionText: "Rate the instructor", Type: models.StarRating, MaxStars: 10, Required: true},
			},
			AssignedTo:     f.teacher.ID.Hex(),
			AllowedBatches: []string{"2024"},
		})
		require.NoError(t, err)

		original, err := f.svc.SubmitResponse(ctx, form.ID, &models.SubmitResponseDto{
			StudentName: "Jane",
			Batch:       "2024",
			Answers: []models.Answer{
				{QuestionID: "q-lab", Answer: models.TextAnswer("Yes")},
				{QuestionID: "q-rating", Answer: models.NumberAnswer(5)},
			},
		})
		require.NoError(t, err)

		onlyRating := []models.Answer{{QuestionID: "q-rating", Answer: models.NumberAnswer(9)}}
		_, err = f.svc.SubmitReFeedback(ctx, form.ID, original.ID, &models.SubmitResponseDto{
			StudentName: "Jane", Batch: "2024", Answers: onlyRating,
		})
		assert.Equal(t, http.StatusBadRequest, appErr(t, err).Status, "omitted")

		blank := append([]models.Answer{{QuestionID: "q-lab", Answer: models.TextAnswer("  ")}}, onlyRating...)
		_, err = f.svc.SubmitReFeedback(ctx, form.ID, original.ID, &models.SubmitResponseDto{
			StudentName: "Jane", Batch: "2024", Answers: blank,
		})
		assert.Equal(t, http.StatusBadRequest, appErr(t, err).Status, "blank")

		_, err = f.db.FindReFeedbackFor(ctx, original.ID)
		assert.ErrorIs(t, err, models.ErrResponseNotFound)

		kept := append([]models.Answer{{QuestionID: "q-lab", Answer: models.TextAnswer("yes")}}, onlyRating...)
		r, err := f.svc.SubmitReFeedback(ctx, form.ID, original.ID, &models.SubmitResponseDto{
			StudentName: "Jane", Batch: "2024", Answers: kept,
		})
		require.NoError(t, err)
		v, ok := r.AnswerFor("q-lab")
		require.True(t, ok)
		assert.Equal(t, models.TextAnswer("Yes"), v)
	})

	t.Run("TestLowRatingNeedsReason", func(t *testing.T) {
		defer suiteResult.Track(t, "Low Rating Needs Reason")()
		f, form, original := setup(t, "Yes", 5)

		_, err := f.svc.SubmitReFeedback(ctx, form.ID, original.ID, submission("Jane", "2024", "Yes", 6))
		assert.Equal(t, http.StatusBadRequest, appErr(t, err).Status)

		r, err := f.svc.SubmitReFeedback(ctx, form.ID, original.ID, &models.SubmitResponseDto{
			StudentName: "Jane", Batch: "2024", Answers: ratingWithReason("Yes", 6, "Too much homework"),
		})
		require.NoError(t, err)
		v, ok := r.AnswerFor("q-rating")
		require.True(t, ok)
		assert.Equal(t, "Too much homework", v.Reason)
	})

	t.Run("TestOnlyOneCorrection", func(t *testing.T) {
		defer suiteResult.Track(t, "Only One Correction")()
		f, form, original := setup(t, "No", 9)

		_, err := f.svc.SubmitReFeedback(ctx, form.ID, original.ID, submission("Jane", "2024", "Yes", 9))
		require.NoError(t, err)
		_, err = f.svc.SubmitReFeedback(ctx, form.ID, original.ID, submission("Jane", "2024", "Yes", 10))
		assert.Equal(t, http.StatusBadRequest, appErr(t, err).Status)
	})

	t.Run("TestCorrectionOfCorrectionRejected", func(t *testing.T) {
		defer suiteResult.Track(t, "Correction Of Correction Rejected")()
		f, form, original := setup(t, "No", 9)

		r, err := f.svc.SubmitReFeedback(ctx, form.ID, original.ID, submission("Jane", "2024", "No", 9))
		require.NoError(t, err)
		_, err = f.svc.SubmitReFeedback(ctx, form.ID, r.ID, submission("Jane", "2024", "Yes", 9))
		assert.Equal(t, http.StatusBadRequest, appErr(t, err).Status)
		_, err = f.svc.GetReFeedbackData(ctx, r.ID)
		assert.Equal(t, http.StatusBadRequest, appErr(t, err).Status)
	})

	t.Run("TestPolicyChecks", func(t *testing.T) {
		defer suiteResult.Track(t, "Policy Checks")()
		f, form, original := setup(t, "No", 9)

		_, err := f.svc.SubmitReFeedback(ctx, form.ID, original.ID, submission("Janet", "2024", "Yes", 9))
		assert.Equal(t, http.StatusBadRequest, appErr(t, err).Status, "name must match")

		_, err = f.svc.SubmitReFeedback(ctx, form.ID, original.ID, submission("Jane", "2025", "Yes", 9))
		assert.Equal(t, http.StatusBadRequest, appErr(t, err).Status, "batch must match")

		otherForm := f.approvedForm(t)
		_, err = f.svc.SubmitReFeedback(ctx, otherForm.ID, original.ID, submission("Jane", "2024", "Yes", 9))
		assert.Equal(t, http.StatusBadRequest, appErr(t, err).Status, "wrong form")

		happy, err := f.svc.SubmitResponse(ctx, form.ID, submission("Ken", "2024", "Yes", 9))
		require.NoError(t, err)
		_, err = f.svc.SubmitReFeedback(ctx, form.ID, happy.ID, submission("Ken", "2024", "Yes", 10))
		assert.Equal(t, http.StatusBadRequest, appErr(t, err).Status, "nothing flagged")
	})

	t.Run("TestCorrectionDoesNotUseDailySlot", func(t *testing.T) {
		defer suiteResult.Track(t, "Correction Does Not Use Daily Slot")()
		f, form, original := setup(t, "No", 9)

		// the correction lands on the next day and the student still gets that day's submission
		f.clock.Advance(24 * time.Hour)
		_, err := f.svc.SubmitReFeedback(ctx, form.ID, original.ID, submission("Jane", "2024", "Yes", 9))
		require.NoError(t, err)
		_, err = f.svc.SubmitResponse(ctx, form.ID, submission("Jane", "2024", "Yes", 9))
		assert.NoError(t, err)
	})
}

func TestReFeedbackComparisons(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	form := f.approvedForm(t)

	original, err := f.svc.SubmitResponse(ctx, form.ID, &models.SubmitResponseDto{
		StudentName: "Jane",
		Batch:       "2024",
		Answers: append(answers("No", 5), models.Answer{
			QuestionID: "q-comment", Answer: models.TextAnswer("Fine"),
		}),
	})
	require.NoError(t, err)

	_, err = f.svc.SubmitReFeedback(ctx, form.ID, original.ID, &models.SubmitResponseDto{
		StudentName: "Jane",
		Batch:       "2024",
		Answers: append(answers("Yes", 9), models.Answer{
			QuestionID: "q-comment", Answer: models.TextAnswer("Fine"),
		}),
	})
	require.NoError(t, err)

	list, err := f.svc.ReFeedbackComparisons(ctx, f.teacher, form.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, original.ID, list[0].OriginalResponseID)

	changes := list[0].Changes
	require.Len(t, changes, 3)
	assert.Equal(t, "q-recommend", changes[0].QuestionID)
	assert.True(t, changes[0].Changed)
	assert.Equal(t, "No", changes[0].Previous.Text)
	assert.Equal(t, "Yes", changes[0].Current.Text)
	assert.True(t, changes[1].Changed)
	assert.False(t, changes[2].Changed)

	_, err = f.svc.ReFeedbackComparisons(ctx, f.other, form.ID)
	assert.Equal(t, http.StatusForbidden, appErr(t, err).Status)
}
