package inmem

import (
	"context"

	"Backend-Feedback/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func matchForm(f *models.Form, filter models.FormFilter) bool {
	if filter.AssignedTo != nil && !f.IsAssignedTo(*filter.AssignedTo) {
		return false
	}
	if filter.VisibleTo != nil && !f.IsAssignedTo(*filter.VisibleTo) && f.CreatedBy != *filter.VisibleTo {
		return false
	}
	if filter.ActiveOnly && !f.IsActive {
		return false
	}
	if filter.ApprovalStatus != "" && f.ApprovalStatus != filter.ApprovalStatus {
		return false
	}
	return true
}

func (db *DB) InsertForm(_ context.Context, form *models.Form) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if form.ID.IsZero() {
		form.ID = primitive.NewObjectID()
	}
	db.forms[form.ID] = cloneForm(form)
	return nil
}

func (db *DB) FindFormByID(_ context.Context, id primitive.ObjectID) (*models.Form, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	if f, ok := db.forms[id]; ok {
		return cloneForm(f), nil
	}
	return nil, models.ErrFormNotFound
}

func (db *DB) ListForms(_ context.Context, filter models.FormFilter) ([]models.Form, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	forms := make([]models.Form, 0)
	for _, f := range db.forms {
		if matchForm(f, filter) {
			forms = append(forms, *cloneForm(f))
		}
	}
	sortFormsNewestFirst(forms)
	return forms, nil
}

func (db *DB) CountForms(_ context.Context, filter models.FormFilter) (int64, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	var n int64
	for _, f := range db.forms {
		if matchForm(f, filter) {
			n++
		}
	}
	return n, nil
}

func (db *DB) ListFormIDs(_ context.Context, filter models.FormFilter) ([]primitive.ObjectID, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	ids := make([]primitive.ObjectID, 0)
	for id, f := range db.forms {
		if matchForm(f, filter) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (db *DB) UpdateForm(_ context.Context, form *models.Form) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, ok := db.forms[form.ID]; !ok {
		return models.ErrFormNotFound
	}
	db.forms[form.ID] = cloneForm(form)
	return nil
}

// DeleteFormCascade is atomic here: both maps change under one lock.
func (db *DB) DeleteFormCascade(_ context.Context, id primitive.ObjectID) (int64, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, ok := db.forms[id]; !ok {
		return 0, models.ErrFormNotFound
	}
	delete(db.forms, id)
	return db.deleteResponsesLocked(id), nil
}
