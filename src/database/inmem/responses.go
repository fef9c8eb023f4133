package inmem

import (
	"context"
	"sort"
	"time"

	"Backend-Feedback/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InsertResponse enforces the daily and re-feedback uniqueness rules of the mongo indexes.
func (db *DB) InsertResponse(_ context.Context, r *models.Response) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	for _, existing := range db.responses {
		if !r.IsReFeedback && !existing.IsReFeedback &&
			existing.FormID == r.FormID &&
			existing.StudentName == r.StudentName &&
			existing.Batch == r.Batch &&
			existing.SubmissionDay == r.SubmissionDay {
			return models.ErrDuplicateSubmission
		}
		if r.IsReFeedback && existing.IsReFeedback &&
			existing.OriginalResponseID != nil && r.OriginalResponseID != nil &&
			*existing.OriginalResponseID == *r.OriginalResponseID {
			return models.ErrDuplicateReFeedback
		}
	}

	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	db.responses[r.ID] = cloneResponse(r)
	return nil
}

func (db *DB) FindResponseByID(_ context.Context, id primitive.ObjectID) (*models.Response, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	if r, ok := db.responses[id]; ok {
		return cloneResponse(r), nil
	}
	return nil, models.ErrResponseNotFound
}

func batchIn(batch string, batches []string) bool {
	if len(batches) == 0 {
		return true
	}
	for _, b := range batches {
		if b == batch {
			return true
		}
	}
	return false
}

func (db *DB) ListResponses(_ context.Context, filter models.ResponseFilter) ([]models.Response, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	out := make([]models.Response, 0)
	for _, r := range db.responses {
		if r.FormID == filter.FormID && batchIn(r.Batch, filter.Batches) {
			out = append(out, *cloneResponse(r))
		}
	}
	sortResponsesNewestFirst(out)
	return out, nil
}

func (db *DB) DistinctBatches(_ context.Context, formID primitive.ObjectID) ([]string, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, r := range db.responses {
		if r.FormID == formID && !seen[r.Batch] {
			seen[r.Batch] = true
			out = append(out, r.Batch)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (db *DB) HasSubmissionBetween(_ context.Context, key models.DailyKey, start, end time.Time) (bool, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	for _, r := range db.responses {
		if r.IsReFeedback || r.FormID != key.FormID || r.StudentName != key.StudentName || r.Batch != key.Batch {
			continue
		}
		if !r.SubmittedAt.Before(start) && r.SubmittedAt.Before(end) {
			return true, nil
		}
	}
	return false, nil
}

func (db *DB) FindReFeedbackFor(_ context.Context, originalID primitive.ObjectID) (*models.Response, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	for _, r := range db.responses {
		if r.IsReFeedback && r.OriginalResponseID != nil && *r.OriginalResponseID == originalID {
			return cloneResponse(r), nil
		}
	}
	return nil, models.ErrResponseNotFound
}

func (db *DB) CountResponses(_ context.Context, formIDs []primitive.ObjectID) (int64, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	wanted := make(map[primitive.ObjectID]bool, len(formIDs))
	for _, id := range formIDs {
		wanted[id] = true
	}
	var n int64
	for _, r := range db.responses {
		if wanted[r.FormID] {
			n++
		}
	}
	return n, nil
}

func (db *DB) DeleteResponsesByForm(_ context.Context, formID primitive.ObjectID) (int64, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	return db.deleteResponsesLocked(formID), nil
}

func (db *DB) deleteResponsesLocked(formID primitive.ObjectID) int64 {
	var n int64
	for id, r := range db.responses {
		if r.FormID == formID {
			delete(db.responses, id)
			n++
		}
	}
	return n
}
