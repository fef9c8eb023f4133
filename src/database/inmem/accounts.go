package inmem

import (
	"context"
	"sort"
	"strings"

	"Backend-Feedback/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (db *DB) InsertAccount(_ context.Context, account *models.Account) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	for _, a := range db.accounts {
		if a.Email == account.Email {
			return models.ErrEmailTaken
		}
	}
	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}
	c := *account
	db.accounts[account.ID] = &c
	return nil
}

func (db *DB) FindAccountByID(_ context.Context, id primitive.ObjectID) (*models.Account, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	if a, ok := db.accounts[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, models.ErrAccountNotFound
}

func (db *DB) FindAccountByEmail(_ context.Context, email string) (*models.Account, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	for _, a := range db.accounts {
		if a.Email == email {
			c := *a
			return &c, nil
		}
	}
	return nil, models.ErrAccountNotFound
}

func (db *DB) UpdateAccount(_ context.Context, account *models.Account) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, ok := db.accounts[account.ID]; !ok {
		return models.ErrAccountNotFound
	}
	for id, a := range db.accounts {
		if id != account.ID && a.Email == account.Email {
			return models.ErrEmailTaken
		}
	}
	c := *account
	db.accounts[account.ID] = &c
	return nil
}

func (db *DB) ListAccounts(_ context.Context, filter models.AccountFilter, params models.PaginationParams) ([]models.Account, int64, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	search := strings.ToLower(filter.Search)
	matched := make([]models.Account, 0, len(db.accounts))
	for _, a := range db.accounts {
		if filter.Role != "" && a.Role != filter.Role {
			continue
		}
		if filter.ActiveOnly && !a.IsActive {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(a.FullName), search) && !strings.Contains(a.Email, search) {
			continue
		}
		matched = append(matched, *a)
	}
	asc := params.GetSortOrder() == 1
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !asc {
			a, b = b, a
		}
		switch params.SortBy {
		case "fullName":
			return a.FullName < b.FullName
		case "email":
			return a.Email < b.Email
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})

	total := int64(len(matched))
	if params.Limit <= 0 {
		return matched, total, nil
	}
	start := int(params.GetSkip())
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}
