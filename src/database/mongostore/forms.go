package mongostore

import (
	"context"
	"log"

	"Backend-Feedback/src/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func formQuery(filter models.FormFilter) bson.M {
	query := bson.M{}
	if filter.AssignedTo != nil {
		query["assignedTo"] = *filter.AssignedTo
	}
	if filter.VisibleTo != nil {
		query["$or"] = []bson.M{
			{"assignedTo": *filter.VisibleTo},
			{"createdBy": *filter.VisibleTo},
		}
	}
	if filter.ActiveOnly {
		query["isActive"] = true
	}
	if filter.ApprovalStatus != "" {
		query["approvalStatus"] = filter.ApprovalStatus
	}
	return query
}

func (s *Store) InsertForm(ctx context.Context, form *models.Form) error {
	if form.ID.IsZero() {
		form.ID = primitive.NewObjectID()
	}
	_, err := s.forms.InsertOne(ctx, form)
	return errors.Wrap(err, "forms.InsertOne")
}

func (s *Store) FindFormByID(ctx context.Context, id primitive.ObjectID) (*models.Form, error) {
	var form models.Form
	err := s.forms.FindOne(ctx, bson.M{"_id": id}).Decode(&form)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrFormNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "forms.FindOne")
	}
	return &form, nil
}

func (s *Store) ListForms(ctx context.Context, filter models.FormFilter) ([]models.Form, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.forms.Find(ctx, formQuery(filter), opts)
	if err != nil {
		return nil, errors.Wrap(err, "forms.Find")
	}
	defer cursor.Close(ctx)

	forms := make([]models.Form, 0)
	if err := cursor.All(ctx, &forms); err != nil {
		return nil, errors.Wrap(err, "forms.cursor")
	}
	return forms, nil
}

func (s *Store) CountForms(ctx context.Context, filter models.FormFilter) (int64, error) {
	n, err := s.forms.CountDocuments(ctx, formQuery(filter))
	return n, errors.Wrap(err, "forms.CountDocuments")
}

func (s *Store) ListFormIDs(ctx context.Context, filter models.FormFilter) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := s.forms.Find(ctx, formQuery(filter), opts)
	if err != nil {
		return nil, errors.Wrap(err, "forms.Find")
	}
	defer cursor.Close(ctx)

	ids := make([]primitive.ObjectID, 0)
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "forms.Decode")
		}
		ids = append(ids, doc.ID)
	}
	return ids, errors.Wrap(cursor.Err(), "forms.cursor")
}

func (s *Store) UpdateForm(ctx context.Context, form *models.Form) error {
	res, err := s.forms.ReplaceOne(ctx, bson.M{"_id": form.ID}, form)
	if err != nil {
		return errors.Wrap(err, "forms.ReplaceOne")
	}
	if res.MatchedCount == 0 {
		return models.ErrFormNotFound
	}
	return nil
}

// DeleteFormCascade deletes the form and its responses inside a transaction when enabled.
// Without transactions responses go first, so an interrupted delete never leaves orphans.
func (s *Store) DeleteFormCascade(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if s.transactions {
		return s.deleteFormInTransaction(ctx, id)
	}

	if _, err := s.FindFormByID(ctx, id); err != nil {
		return 0, err
	}
	deleted, err := s.DeleteResponsesByForm(ctx, id)
	if err != nil {
		return 0, err
	}
	res, err := s.forms.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Printf("❌ Form %s lost %d responses but the form delete failed: %v", id.Hex(), deleted, err)
		return deleted, errors.Wrap(err, "forms.DeleteOne")
	}
	if res.DeletedCount == 0 {
		return deleted, models.ErrFormNotFound
	}
	return deleted, nil
}

func (s *Store) deleteFormInTransaction(ctx context.Context, id primitive.ObjectID) (int64, error) {
	session, err := s.db.Client().StartSession()
	if err != nil {
		return 0, errors.Wrap(err, "StartSession")
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := s.forms.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return int64(0), err
		}
		if res.DeletedCount == 0 {
			return int64(0), models.ErrFormNotFound
		}
		many, err := s.responses.DeleteMany(sc, bson.M{"form": id})
		if err != nil {
			return int64(0), err
		}
		return many.DeletedCount, nil
	})
	if err != nil {
		if errors.Is(err, models.ErrFormNotFound) {
			return 0, models.ErrFormNotFound
		}
		return 0, errors.Wrap(err, "delete form transaction")
	}
	return result.(int64), nil
}
