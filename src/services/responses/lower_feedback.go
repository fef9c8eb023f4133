package responses

import (
	"context"
	"sort"

	"Backend-Feedback/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type studentKey struct {
	name  string
	batch string
}

// LowerFeedback groups the flagged original responses of a form by student.
func (s *Service) LowerFeedback(ctx context.Context, user *models.CurrentUser, formID primitive.ObjectID, batches []string) ([]models.LowerFeedbackGroup, error) {
	form, err := s.viewableForm(ctx, user, formID)
	if err != nil {
		return nil, err
	}
	list, err := s.store.ListResponses(ctx, models.ResponseFilter{FormID: form.ID, Batches: CleanBatches(batches)})
	if err != nil {
		return nil, err
	}

	corrections := make(map[primitive.ObjectID]primitive.ObjectID)
	for _, r := range list {
		if r.IsReFeedback && r.OriginalResponseID != nil {
			corrections[*r.OriginalResponseID] = r.ID
		}
	}

	groups := make(map[studentKey]*models.LowerFeedbackGroup)
	for i := range list {
		r := &list[i]
		if r.IsReFeedback {
			continue
		}
		flagged := flaggedAnswers(form, r)
		if len(flagged) == 0 {
			continue
		}

		entry := models.FlaggedResponse{
			ResponseID:  r.ID,
			SubmittedAt: r.SubmittedAt,
			Answers:     flagged,
		}
		if id, ok := corrections[r.ID]; ok {
			id := id
			entry.HasReFeedback = true
			entry.ReFeedbackID = &id
		}

		key := studentKey{name: r.StudentName, batch: r.Batch}
		group, ok := groups[key]
		if !ok {
			group = &models.LowerFeedbackGroup{StudentName: r.StudentName, Batch: r.Batch}
			groups[key] = group
		}
		group.Responses = append(group.Responses, entry)
	}

	out := make([]models.LowerFeedbackGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Batch != out[j].Batch {
			return out[i].Batch < out[j].Batch
		}
		return out[i].StudentName < out[j].StudentName
	})
	return out, nil
}
