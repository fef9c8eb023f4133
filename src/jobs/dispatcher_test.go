package jobs

import (
	"context"
	"encoding/json"
	"testing"

	"Backend-Feedback/src/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(task.Type(), string(task.Payload()), len(opts))
	return &asynq.TaskInfo{}, args.Error(0)
}

func payloadFor(id primitive.ObjectID) string {
	b, _ := json.Marshal(FormPayload{FormID: id.Hex()})
	return string(b)
}

func TestDispatcher(t *testing.T) {
	ctx := context.Background()

	t.Run("review decision enqueues a mail task", func(t *testing.T) {
		form := &models.Form{ID: primitive.NewObjectID(), ApprovalStatus: models.ApprovalApproved}
		enq := new(mockEnqueuer)
		enq.On("Enqueue", TypeReviewNotify, payloadFor(form.ID), 1).Return(nil).Once()

		NewDispatcher(nil).WithEnqueuer(enq).FormReviewed(ctx, form)
		enq.AssertExpectations(t)
	})

	t.Run("delete schedules a delayed purge with a stable id", func(t *testing.T) {
		id := primitive.NewObjectID()
		enq := new(mockEnqueuer)
		enq.On("Enqueue", TypePurgeResponses, payloadFor(id), 2).Return(nil).Once()

		NewDispatcher(nil).WithEnqueuer(enq).FormDeleted(ctx, id)
		enq.AssertExpectations(t)
	})

	t.Run("enqueue failure is swallowed", func(t *testing.T) {
		id := primitive.NewObjectID()
		enq := new(mockEnqueuer)
		enq.On("Enqueue", TypePurgeResponses, payloadFor(id), 2).Return(asynq.ErrTaskIDConflict).Once()

		assert.NotPanics(t, func() { NewDispatcher(nil).WithEnqueuer(enq).FormDeleted(ctx, id) })
		enq.AssertExpectations(t)
	})

	t.Run("no client drops events", func(t *testing.T) {
		d := NewDispatcher(nil)
		assert.NotPanics(t, func() {
			d.FormReviewed(ctx, &models.Form{ID: primitive.NewObjectID()})
			d.FormDeleted(ctx, primitive.NewObjectID())
		})
	})
}

func TestTaskPayloads(t *testing.T) {
	task, err := NewPurgeResponsesTask("  65f0c0ffee0000000000abcd ")
	require.NoError(t, err)
	assert.Equal(t, TypePurgeResponses, task.Type())
	assert.JSONEq(t, `{"formId":"65f0c0ffee0000000000abcd"}`, string(task.Payload()))
	assert.Equal(t, "purge-responses-65f0c0ffee0000000000abcd", PurgeTaskID(" 65f0c0ffee0000000000abcd"))

	task, err = NewReviewNotifyTask("65f0c0ffee0000000000abcd")
	require.NoError(t, err)
	assert.Equal(t, TypeReviewNotify, task.Type())
}
