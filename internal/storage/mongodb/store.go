package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hongminglow/staffly-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

const (
	usersCollection    = "users"
	payrollsCollection = "payrolls"
	tasksCollection    = "tasks"
)

// Store keeps users, payrolls, and tasks as documents in one Mongo database.
type Store struct {
	client   *mongo.Client
	users    *mongo.Collection
	payrolls *mongo.Collection
	tasks    *mongo.Collection
}

// NewStore connects to uri and verifies the deployment answers a ping.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	return &Store{
		client:   client,
		users:    db.Collection(usersCollection),
		payrolls: db.Collection(payrollsCollection),
		tasks:    db.Collection(tasksCollection),
	}, nil
}

func (s *Store) Users() storage.UserStore       { return &userStore{coll: s.users} }
func (s *Store) Payrolls() storage.PayrollStore { return &payrollStore{coll: s.payrolls} }
func (s *Store) Tasks() storage.TaskStore       { return &taskStore{coll: s.tasks} }

// Migrate creates the indexes that back the uniqueness rules.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := []struct {
		coll  *mongo.Collection
		model mongo.IndexModel
	}{
		{s.users, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("users_email_unique"),
		}},
		{s.users, mongo.IndexModel{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index().SetName("users_role"),
		}},
		{s.payrolls, mongo.IndexModel{
			Keys: bson.D{
				{Key: "employee.email", Value: 1},
				{Key: "month", Value: 1},
				{Key: "year", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("payrolls_period_key_unique"),
		}},
		{s.tasks, mongo.IndexModel{
			Keys:    bson.D{{Key: "user_email", Value: 1}},
			Options: options.Index().SetName("tasks_user_email"),
		}},
	}
	for _, idx := range indexes {
		if _, err := idx.coll.Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.coll.Name(), err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func objectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, storage.ErrInvalidID
	}
	return oid, nil
}

func byID(oid bson.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: oid}}
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.ErrNotFound
	}
	return err
}

func insertErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return storage.ErrAlreadyExists
	}
	return err
}

// decodeAll drains cur into a slice of T and closes it.
func decodeAll[T any](ctx context.Context, cur *mongo.Cursor) ([]T, error) {
	defer cur.Close(ctx)
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
