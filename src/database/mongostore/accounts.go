package mongostore

import (
	"context"
	"regexp"

	"Backend-Feedback/src/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) InsertAccount(ctx context.Context, account *models.Account) error {
	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}
	if _, err := s.accounts.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrEmailTaken
		}
		return errors.Wrap(err, "accounts.InsertOne")
	}
	return nil
}

func (s *Store) findAccount(ctx context.Context, filter bson.M) (*models.Account, error) {
	var account models.Account
	err := s.accounts.FindOne(ctx, filter).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "accounts.FindOne")
	}
	return &account, nil
}

func (s *Store) FindAccountByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	return s.findAccount(ctx, bson.M{"_id": id})
}

func (s *Store) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.findAccount(ctx, bson.M{"email": email})
}

func (s *Store) UpdateAccount(ctx context.Context, account *models.Account) error {
	res, err := s.accounts.ReplaceOne(ctx, bson.M{"_id": account.ID}, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrEmailTaken
		}
		return errors.Wrap(err, "accounts.ReplaceOne")
	}
	if res.MatchedCount == 0 {
		return models.ErrAccountNotFound
	}
	return nil
}

func (s *Store) ListAccounts(ctx context.Context, filter models.AccountFilter, params models.PaginationParams) ([]models.Account, int64, error) {
	query := bson.M{}
	if filter.Role != "" {
		query["role"] = filter.Role
	}
	if filter.ActiveOnly {
		query["isActive"] = true
	}
	if filter.Search != "" {
		pattern := regexp.QuoteMeta(filter.Search)
		query["$or"] = []bson.M{
			{"fullName": bson.M{"$regex": pattern, "$options": "i"}},
			{"email": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	total, err := s.accounts.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "accounts.CountDocuments")
	}

	findOptions := options.Find().SetSort(bson.D{{Key: params.SortBy, Value: params.GetSortOrder()}})
	if params.Limit > 0 {
		findOptions.SetSkip(params.GetSkip()).SetLimit(int64(params.Limit))
	}

	cursor, err := s.accounts.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, errors.Wrap(err, "accounts.Find")
	}
	defer cursor.Close(ctx)

	accounts := make([]models.Account, 0)
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, 0, errors.Wrap(err, "accounts.cursor")
	}
	return accounts, total, nil
}
