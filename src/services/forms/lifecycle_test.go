package forms

import (
	"testing"
	"time"

	"Backend-Feedback/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, models.ApprovalApproved, InitialStatus(models.RoleAdmin))
	assert.Equal(t, models.ApprovalPending, InitialStatus(models.RoleTeacher))
}

func TestNextStatusCoversEveryPair(t *testing.T) {
	cases := []struct {
		from    models.ApprovalStatus
		action  ReviewAction
		want    models.ApprovalStatus
		wantErr bool
	}{
		{models.ApprovalPending, ActionApprove, models.ApprovalApproved, false},
		{models.ApprovalPending, ActionReject, models.ApprovalRejected, false},
		{models.ApprovalApproved, ActionApprove, "", true},
		{models.ApprovalApproved, ActionReject, "", true},
		{models.ApprovalRejected, ActionApprove, "", true},
		{models.ApprovalRejected, ActionReject, "", true},
		{"archived", ActionApprove, "", true},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"/"+string(tc.action), func(t *testing.T) {
			got, err := NextStatus(tc.from, tc.action)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func pendingForm() *models.Form {
	return &models.Form{
		ID:             primitive.NewObjectID(),
		CreatedBy:      primitive.NewObjectID(),
		ApprovalStatus: models.ApprovalPending,
		CreatedByRole:  models.RoleTeacher,
	}
}

func TestApplyReviewApproveAssignsCreator(t *testing.T) {
	form := pendingForm()
	reviewer := primitive.NewObjectID()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, applyReview(form, ActionApprove, reviewer, "", now))

	assert.Equal(t, models.ApprovalApproved, form.ApprovalStatus)
	require.NotNil(t, form.AssignedTo)
	assert.Equal(t, form.CreatedBy, *form.AssignedTo)
	require.NotNil(t, form.ApprovedBy)
	assert.Equal(t, reviewer, *form.ApprovedBy)
	require.NotNil(t, form.ApprovedAt)
	assert.True(t, form.ApprovedAt.Equal(now))
	assert.Nil(t, form.RejectionReason)
}

func TestApplyReviewApproveKeepsExistingAssignment(t *testing.T) {
	form := pendingForm()
	teacher := primitive.NewObjectID()
	form.AssignedTo = &teacher

	require.NoError(t, applyReview(form, ActionApprove, primitive.NewObjectID(), "", time.Now()))
	assert.Equal(t, teacher, *form.AssignedTo)
}

func TestApplyReviewRejectReason(t *testing.T) {
	t.Run("default reason", func(t *testing.T) {
		form := pendingForm()
		require.NoError(t, applyReview(form, ActionReject, primitive.NewObjectID(), "   ", time.Now()))
		assert.Equal(t, models.ApprovalRejected, form.ApprovalStatus)
		require.NotNil(t, form.RejectionReason)
		assert.Equal(t, models.DefaultRejectionReason, *form.RejectionReason)
	})

	t.Run("explicit reason is trimmed", func(t *testing.T) {
		form := pendingForm()
		require.NoError(t, applyReview(form, ActionReject, primitive.NewObjectID(), "  Too many questions ", time.Now()))
		assert.Equal(t, "Too many questions", *form.RejectionReason)
		assert.Nil(t, form.AssignedTo)
	})
}

func TestApplyReviewRejectedIsDeadEnd(t *testing.T) {
	form := pendingForm()
	require.NoError(t, applyReview(form, ActionReject, primitive.NewObjectID(), "", time.Now()))

	err := applyReview(form, ActionApprove, primitive.NewObjectID(), "", time.Now())
	assert.Error(t, err)
	assert.Equal(t, models.ApprovalRejected, form.ApprovalStatus)
	assert.Nil(t, form.ApprovedBy)
}
