package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/hongminglow/staffly-be/internal/models"
)

type taskStore struct{ coll *mongo.Collection }

func (s *taskStore) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	doc := newTaskDoc(t)
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return models.Task{}, err
	}
	return doc.model(), nil
}

func (s *taskStore) FindTask(ctx context.Context, id string) (models.Task, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Task{}, err
	}
	var doc taskDoc
	if err := s.coll.FindOne(ctx, byID(oid)).Decode(&doc); err != nil {
		return models.Task{}, notFound(err)
	}
	return doc.model(), nil
}

func (s *taskStore) ListTasks(ctx context.Context, userEmail string) ([]models.Task, error) {
	filter := bson.D{}
	if userEmail != "" {
		filter = bson.D{{Key: "user_email", Value: userEmail}}
	}
	cur, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[taskDoc](ctx, cur)
	if err != nil {
		return nil, err
	}
	out := make([]models.Task, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (s *taskStore) UpdateTask(ctx context.Context, id string, changes models.TaskChanges) (models.UpdateResult, error) {
	return setFields(ctx, s.coll, id, bson.D{
		{Key: "task", Value: changes.Task},
		{Key: "hour", Value: changes.Hour},
		{Key: "date", Value: changes.Date},
	})
}

func (s *taskStore) DeleteTask(ctx context.Context, id string) (models.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	res, err := s.coll.DeleteOne(ctx, byID(oid))
	if err != nil {
		return models.DeleteResult{}, err
	}
	return models.DeleteResult{DeletedCount: res.DeletedCount}, nil
}
