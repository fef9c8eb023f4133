// Package inmem is a mutex-guarded store used by tests and by STORAGE=memory.
// It honours the same uniqueness rules as the MongoDB indexes.
package inmem

import (
	"sort"
	"sync"

	"Backend-Feedback/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DB struct {
	mutex     sync.RWMutex
	accounts  map[primitive.ObjectID]*models.Account
	forms     map[primitive.ObjectID]*models.Form
	responses map[primitive.ObjectID]*models.Response
}

func NewDB() *DB {
	return &DB{
		accounts:  make(map[primitive.ObjectID]*models.Account),
		forms:     make(map[primitive.ObjectID]*models.Form),
		responses: make(map[primitive.ObjectID]*models.Response),
	}
}

func cloneForm(f *models.Form) *models.Form {
	c := *f
	c.Questions = make([]models.Question, len(f.Questions))
	for i, q := range f.Questions {
		q.Options = append([]string(nil), q.Options...)
		c.Questions[i] = q
	}
	c.AllowedBatches = append([]string(nil), f.AllowedBatches...)
	return &c
}

func cloneAnswers(in []models.Answer) []models.Answer {
	if in == nil {
		return nil
	}
	out := make([]models.Answer, len(in))
	for i, a := range in {
		a.Answer.Choices = append([]string(nil), a.Answer.Choices...)
		out[i] = a
	}
	return out
}

func cloneResponse(r *models.Response) *models.Response {
	c := *r
	c.Answers = cloneAnswers(r.Answers)
	c.PreviousAnswers = cloneAnswers(r.PreviousAnswers)
	return &c
}

// newest first, like the mongo store default sort
func sortFormsNewestFirst(forms []models.Form) {
	sort.SliceStable(forms, func(i, j int) bool {
		return forms[i].CreatedAt.After(forms[j].CreatedAt)
	})
}

func sortResponsesNewestFirst(rs []models.Response) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].SubmittedAt.After(rs[j].SubmittedAt)
	})
}
