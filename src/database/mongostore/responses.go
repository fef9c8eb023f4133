package mongostore

import (
	"context"
	"sort"
	"strings"
	"time"

	"Backend-Feedback/src/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) InsertResponse(ctx context.Context, r *models.Response) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	_, err := s.responses.InsertOne(ctx, r)
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		if strings.Contains(err.Error(), "uniq_refeedback_original") {
			return models.ErrDuplicateReFeedback
		}
		return models.ErrDuplicateSubmission
	}
	return errors.Wrap(err, "responses.InsertOne")
}

func (s *Store) findResponse(ctx context.Context, filter bson.M) (*models.Response, error) {
	var r models.Response
	err := s.responses.FindOne(ctx, filter).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrResponseNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "responses.FindOne")
	}
	return &r, nil
}

func (s *Store) FindResponseByID(ctx context.Context, id primitive.ObjectID) (*models.Response, error) {
	return s.findResponse(ctx, bson.M{"_id": id})
}

func (s *Store) FindReFeedbackFor(ctx context.Context, originalID primitive.ObjectID) (*models.Response, error) {
	return s.findResponse(ctx, bson.M{"originalResponseId": originalID, "isReFeedback": true})
}

func (s *Store) ListResponses(ctx context.Context, filter models.ResponseFilter) ([]models.Response, error) {
	query := bson.M{"form": filter.FormID}
	if len(filter.Batches) > 0 {
		query["batch"] = bson.M{"$in": filter.Batches}
	}

	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cursor, err := s.responses.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "responses.Find")
	}
	defer cursor.Close(ctx)

	out := make([]models.Response, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "responses.cursor")
	}
	return out, nil
}

func (s *Store) DistinctBatches(ctx context.Context, formID primitive.ObjectID) ([]string, error) {
	values, err := s.responses.Distinct(ctx, "batch", bson.M{"form": formID})
	if err != nil {
		return nil, errors.Wrap(err, "responses.Distinct")
	}
	batches := make([]string, 0, len(values))
	for _, v := range values {
		if b, ok := v.(string); ok {
			batches = append(batches, b)
		}
	}
	sort.Strings(batches)
	return batches, nil
}

// HasSubmissionBetween looks for an original submission in [start, end).
func (s *Store) HasSubmissionBetween(ctx context.Context, key models.DailyKey, start, end time.Time) (bool, error) {
	n, err := s.responses.CountDocuments(ctx, bson.M{
		"form":         key.FormID,
		"studentName":  key.StudentName,
		"batch":        key.Batch,
		"isReFeedback": false,
		"submittedAt":  bson.M{"$gte": start, "$lt": end},
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrap(err, "responses.CountDocuments")
	}
	return n > 0, nil
}

func (s *Store) CountResponses(ctx context.Context, formIDs []primitive.ObjectID) (int64, error) {
	if len(formIDs) == 0 {
		return 0, nil
	}
	n, err := s.responses.CountDocuments(ctx, bson.M{"form": bson.M{"$in": formIDs}})
	return n, errors.Wrap(err, "responses.CountDocuments")
}

func (s *Store) DeleteResponsesByForm(ctx context.Context, formID primitive.ObjectID) (int64, error) {
	res, err := s.responses.DeleteMany(ctx, bson.M{"form": formID})
	if err != nil {
		return 0, errors.Wrap(err, "responses.DeleteMany")
	}
	return res.DeletedCount, nil
}
