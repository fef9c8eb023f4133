package mongostore

import (
	"context"
	"errors"
	"testing"

	"Backend-Feedback/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func duplicateKey(index string) bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{
		Index:   0,
		Code:    11000,
		Message: "E11000 duplicate key error collection: FeedbackDB.responses index: " + index + " dup key: { }",
	})
}

func TestInsertResponseErrors(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	original := primitive.NewObjectID()
	newResponse := func() *models.Response {
		return &models.Response{FormID: primitive.NewObjectID(), StudentName: "Jane", Batch: "2024", SubmissionDay: "2025-03-01"}
	}

	mt.Run("inserted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		r := newResponse()
		require.NoError(mt, New(mt.DB, false).InsertResponse(ctx, r))
		assert.False(mt, r.ID.IsZero())
	})

	mt.Run("same day submission", func(mt *mtest.T) {
		mt.AddMockResponses(duplicateKey("uniq_daily_submission"))
		err := New(mt.DB, false).InsertResponse(ctx, newResponse())
		assert.ErrorIs(mt, err, models.ErrDuplicateSubmission)
	})

	mt.Run("second correction", func(mt *mtest.T) {
		mt.AddMockResponses(duplicateKey("uniq_refeedback_original"))
		r := newResponse()
		r.IsReFeedback = true
		r.OriginalResponseID = &original
		err := New(mt.DB, false).InsertResponse(ctx, r)
		assert.ErrorIs(mt, err, models.ErrDuplicateReFeedback)
	})

	mt.Run("other write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 121, Message: "Document failed validation"}))
		err := New(mt.DB, false).InsertResponse(ctx, newResponse())
		require.Error(mt, err)
		assert.False(mt, errors.Is(err, models.ErrDuplicateSubmission))
		assert.False(mt, errors.Is(err, models.ErrDuplicateReFeedback))
	})
}

func TestAccountErrors(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("email taken", func(mt *mtest.T) {
		mt.AddMockResponses(duplicateKey("uniq_email"))
		err := New(mt.DB, false).InsertAccount(ctx, &models.Account{Email: "tom@example.edu"})
		assert.ErrorIs(mt, err, models.ErrEmailTaken)
	})

	mt.Run("unknown account", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "FeedbackDB.accounts", mtest.FirstBatch))
		_, err := New(mt.DB, false).FindAccountByEmail(ctx, "nobody@example.edu")
		assert.ErrorIs(mt, err, models.ErrAccountNotFound)
	})
}

func TestDeleteFormCascadeOrdered(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	id := primitive.NewObjectID()
	found := mtest.CreateCursorResponse(0, "FeedbackDB.forms", mtest.FirstBatch,
		bson.D{{Key: "_id", Value: id}, {Key: "title", Value: "Week 1"}})

	mt.Run("responses then form", func(mt *mtest.T) {
		mt.AddMockResponses(
			found,
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)
		deleted, err := New(mt.DB, false).DeleteFormCascade(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), deleted)

		// find, delete responses, delete form
		started := []string{}
		for e := mt.GetStartedEvent(); e != nil; e = mt.GetStartedEvent() {
			started = append(started, e.CommandName)
		}
		assert.Equal(mt, []string{"find", "delete", "delete"}, started)
	})

	mt.Run("missing form deletes nothing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "FeedbackDB.forms", mtest.FirstBatch))
		_, err := New(mt.DB, false).DeleteFormCascade(ctx, id)
		assert.ErrorIs(mt, err, models.ErrFormNotFound)

		e := mt.GetStartedEvent()
		require.NotNil(mt, e)
		assert.Equal(mt, "find", e.CommandName)
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("form vanished mid delete", func(mt *mtest.T) {
		mt.AddMockResponses(
			found,
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)
		deleted, err := New(mt.DB, false).DeleteFormCascade(ctx, id)
		assert.ErrorIs(mt, err, models.ErrFormNotFound)
		assert.Equal(mt, int64(2), deleted)
	})
}
