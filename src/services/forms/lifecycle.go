package forms

import (
	"fmt"
	"strings"
	"time"

	"Backend-Feedback/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
)

// transitions is the complete approval state machine. A missing entry is an invalid move;
// approved and rejected accept no review action.
var transitions = map[models.ApprovalStatus]map[ReviewAction]models.ApprovalStatus{
	models.ApprovalPending: {
		ActionApprove: models.ApprovalApproved,
		ActionReject:  models.ApprovalRejected,
	},
	models.ApprovalApproved: {},
	models.ApprovalRejected: {},
}

// InitialStatus: admin forms are published immediately, teacher forms wait for review.
func InitialStatus(role models.Role) models.ApprovalStatus {
	if role == models.RoleAdmin {
		return models.ApprovalApproved
	}
	return models.ApprovalPending
}

// NextStatus returns the state reached by applying action in from.
func NextStatus(from models.ApprovalStatus, action ReviewAction) (models.ApprovalStatus, error) {
	moves, known := transitions[from]
	if !known {
		return "", fmt.Errorf("unknown approval status %q", from)
	}
	to, ok := moves[action]
	if !ok {
		return "", fmt.Errorf("cannot %s a form that is %s", action, from)
	}
	return to, nil
}

// applyReview moves form to its next state and stamps the review metadata.
func applyReview(form *models.Form, action ReviewAction, reviewer primitive.ObjectID, reason string, now time.Time) error {
	to, err := NextStatus(form.ApprovalStatus, action)
	if err != nil {
		return err
	}

	switch to {
	case models.ApprovalApproved:
		form.ApprovedBy = &reviewer
		form.ApprovedAt = &now
		form.RejectionReason = nil
		// approval completes the assignment to the submitting teacher
		if form.AssignedTo == nil {
			createdBy := form.CreatedBy
			form.AssignedTo = &createdBy
		}
	case models.ApprovalRejected:
		reason = strings.TrimSpace(reason)
		if reason == "" {
			reason = models.DefaultRejectionReason
		}
		form.RejectionReason = &reason
	default:
		return fmt.Errorf("no review effect defined for %q", to)
	}

	form.ApprovalStatus = to
	form.UpdatedAt = now
	return nil
}
