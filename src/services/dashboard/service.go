package dashboard

import (
	"context"

	"Backend-Feedback/src/models"
	"Backend-Feedback/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store interface {
	CountForms(ctx context.Context, filter models.FormFilter) (int64, error)
	ListFormIDs(ctx context.Context, filter models.FormFilter) ([]primitive.ObjectID, error)
	CountResponses(ctx context.Context, formIDs []primitive.ObjectID) (int64, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Stats counts forms and responses in the caller's scope: every form for admins,
// forms assigned to the caller for teachers.
func (s *Service) Stats(ctx context.Context, user *models.CurrentUser) (*models.DashboardStats, error) {
	if user == nil {
		return nil, utils.Unauthorized("Not authenticated")
	}

	scope := models.FormFilter{}
	if !user.IsAdmin() {
		scope.AssignedTo = &user.ID
	}

	ids, err := s.store.ListFormIDs(ctx, scope)
	if err != nil {
		return nil, err
	}

	active := scope
	active.ActiveOnly = true
	activeForms, err := s.store.CountForms(ctx, active)
	if err != nil {
		return nil, err
	}

	totalResponses, err := s.store.CountResponses(ctx, ids)
	if err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{
		TotalForms:     int64(len(ids)),
		ActiveForms:    activeForms,
		TotalResponses: totalResponses,
	}

	if user.IsAdmin() {
		pending, err := s.store.CountForms(ctx, models.FormFilter{ApprovalStatus: models.ApprovalPending})
		if err != nil {
			return nil, err
		}
		stats.PendingApprovals = pending
	}
	return stats, nil
}
