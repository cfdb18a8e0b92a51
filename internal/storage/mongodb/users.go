package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/hongminglow/staffly-be/internal/models"
)

type userStore struct{ coll *mongo.Collection }

func (s *userStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	doc := newUserDoc(user)
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return models.User{}, insertErr(err)
	}
	return doc.model(), nil
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *userStore) FindByID(ctx context.Context, id string) (models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.User{}, err
	}
	return s.findOne(ctx, byID(oid))
}

func (s *userStore) findOne(ctx context.Context, filter bson.D) (models.User, error) {
	var doc userDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return models.User{}, notFound(err)
	}
	return doc.model(), nil
}

func (s *userStore) ListUsers(ctx context.Context, roles ...models.Role) ([]models.User, error) {
	filter := bson.D{}
	if len(roles) > 0 {
		names := make([]string, len(roles))
		for i, r := range roles {
			names[i] = string(r)
		}
		filter = bson.D{{Key: "role", Value: bson.D{{Key: "$in", Value: names}}}}
	}
	cur, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[userDoc](ctx, cur)
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (s *userStore) SetRole(ctx context.Context, id string, role models.Role) (models.UpdateResult, error) {
	return s.set(ctx, id, bson.D{{Key: "role", Value: string(role)}})
}

func (s *userStore) SetVerified(ctx context.Context, id string, verified bool) (models.UpdateResult, error) {
	return s.set(ctx, id, bson.D{{Key: "isVerified", Value: verified}})
}

func (s *userStore) SetWorkStatus(ctx context.Context, id string, status models.WorkStatus) (models.UpdateResult, error) {
	return s.set(ctx, id, bson.D{{Key: "workStatus", Value: string(status)}})
}

func (s *userStore) set(ctx context.Context, id string, fields bson.D) (models.UpdateResult, error) {
	return setFields(ctx, s.coll, id, fields)
}

func setFields(ctx context.Context, coll *mongo.Collection, id string, fields bson.D) (models.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	res, err := coll.UpdateOne(ctx, byID(oid), bson.D{{Key: "$set", Value: fields}})
	if err != nil {
		return models.UpdateResult{}, err
	}
	return models.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}
