package inmem

import (
	"context"
	"testing"
	"time"

	"Backend-Feedback/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func response(formID primitive.ObjectID, name, day string) *models.Response {
	return &models.Response{
		FormID:        formID,
		StudentName:   name,
		Batch:         "2024",
		SubmissionDay: day,
		SubmittedAt:   time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Answers:       []models.Answer{{QuestionID: "q1", Answer: models.ChoicesAnswer("A")}},
	}
}

func TestDailyUniqueness(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	formID := primitive.NewObjectID()

	first := response(formID, "Jane", "2025-03-01")
	require.NoError(t, db.InsertResponse(ctx, first))
	assert.False(t, first.ID.IsZero())

	assert.ErrorIs(t, db.InsertResponse(ctx, response(formID, "Jane", "2025-03-01")), models.ErrDuplicateSubmission)
	assert.NoError(t, db.InsertResponse(ctx, response(formID, "Jane", "2025-03-02")))
	assert.NoError(t, db.InsertResponse(ctx, response(formID, "Ken", "2025-03-01")))
	assert.NoError(t, db.InsertResponse(ctx, response(primitive.NewObjectID(), "Jane", "2025-03-01")))

	originalID := first.ID
	correction := response(formID, "Jane", "2025-03-01")
	correction.IsReFeedback = true
	correction.OriginalResponseID = &originalID
	require.NoError(t, db.InsertResponse(ctx, correction), "corrections are outside the daily rule")

	again := response(formID, "Jane", "2025-03-05")
	again.IsReFeedback = true
	again.OriginalResponseID = &originalID
	assert.ErrorIs(t, db.InsertResponse(ctx, again), models.ErrDuplicateReFeedback)

	found, err := db.FindReFeedbackFor(ctx, originalID)
	require.NoError(t, err)
	assert.Equal(t, correction.ID, found.ID)
}

func TestHasSubmissionBetween(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	formID := primitive.NewObjectID()
	require.NoError(t, db.InsertResponse(ctx, response(formID, "Jane", "2025-03-01")))

	key := models.DailyKey{FormID: formID, StudentName: "Jane", Batch: "2024"}
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	found, err := db.HasSubmissionBetween(ctx, key, start, start.Add(24*time.Hour))
	require.NoError(t, err)
	assert.True(t, found)

	found, err = db.HasSubmissionBetween(ctx, key, start.Add(9*time.Hour+time.Second), start.Add(24*time.Hour))
	require.NoError(t, err)
	assert.False(t, found, "start is inclusive, earlier submissions are out")

	key.Batch = "2025"
	found, err = db.HasSubmissionBetween(ctx, key, start, start.Add(24*time.Hour))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCascadeDeleteAndIsolation(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	form := &models.Form{Title: "Form", AllowedBatches: []string{"2024"}}
	require.NoError(t, db.InsertForm(ctx, form))
	other := primitive.NewObjectID()

	require.NoError(t, db.InsertResponse(ctx, response(form.ID, "Jane", "2025-03-01")))
	require.NoError(t, db.InsertResponse(ctx, response(form.ID, "Ken", "2025-03-01")))
	require.NoError(t, db.InsertResponse(ctx, response(other, "Jane", "2025-03-01")))

	// callers get copies
	loaded, err := db.FindFormByID(ctx, form.ID)
	require.NoError(t, err)
	loaded.AllowedBatches[0] = "changed"
	again, _ := db.FindFormByID(ctx, form.ID)
	assert.Equal(t, "2024", again.AllowedBatches[0])

	deleted, err := db.DeleteFormCascade(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = db.FindFormByID(ctx, form.ID)
	assert.ErrorIs(t, err, models.ErrFormNotFound)
	_, err = db.DeleteFormCascade(ctx, form.ID)
	assert.ErrorIs(t, err, models.ErrFormNotFound)

	n, err := db.CountResponses(ctx, []primitive.ObjectID{form.ID, other})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestListAccountsSortAndPage(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"Cid", "Ada", "Ben"} {
		require.NoError(t, db.InsertAccount(ctx, &models.Account{
			FullName:  name,
			Email:     name + "@example.edu",
			Role:      models.RoleTeacher,
			IsActive:  true,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	assert.ErrorIs(t, db.InsertAccount(ctx, &models.Account{Email: "Ada@example.edu"}), models.ErrEmailTaken)

	byName, total, err := db.ListAccounts(ctx, models.AccountFilter{}, models.PaginationParams{SortBy: "fullName", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, "Ada", byName[0].FullName)
	assert.Equal(t, "Cid", byName[2].FullName)

	page, total, err := db.ListAccounts(ctx, models.AccountFilter{Search: "b"}, models.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Ben", page[0].FullName)

	newest, _, err := db.ListAccounts(ctx, models.AccountFilter{}, models.PaginationParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, newest, 1)
	assert.Equal(t, "Cid", newest[0].FullName, "default order is newest first")
}
