package auditlog

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	mongoEntriesCollection  = "access_log"
	mongoPoliciesCollection = "access_policies"
)

// MongoStorage persists entries in MongoDB collections, for deployments
// whose reporting stack reads audit data from a document store.
type MongoStorage struct {
	db *mongo.Database
}

// NewMongoStorage creates a Storage backed by the given database.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	if db == nil {
		panic("auditlog: database cannot be nil")
	}
	return &MongoStorage{db: db}
}

func (s *MongoStorage) Store(ctx context.Context, entry Entry) error {
	if _, err := s.db.Collection(mongoEntriesCollection).InsertOne(ctx, entry); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *MongoStorage) EnsurePolicy(ctx context.Context, levelName string, priority int) error {
	_, err := s.db.Collection(mongoPoliciesCollection).UpdateOne(ctx,
		bson.M{"level_name": levelName},
		bson.M{"$setOnInsert": bson.M{
			"level_name":        levelName,
			"priority":          priority,
			"authorized_groups": bson.A{},
			"active":            true,
		}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return errors.Join(ErrPolicyEnsureFailed, err)
	}
	return nil
}

func (s *MongoStorage) StatsSince(ctx context.Context, since time.Time) (int64, int64, int64, error) {
	coll := s.db.Collection(mongoEntriesCollection)
	filter := bson.M{"created_at": bson.M{"$gte": since}}

	entries, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, 0, 0, errors.Join(ErrStatsQueryFailed, err)
	}

	dataTypes, err := coll.Distinct(ctx, "data_type", filter).Raw()
	if err != nil {
		return 0, 0, 0, errors.Join(ErrStatsQueryFailed, err)
	}
	dtValues, err := dataTypes.Values()
	if err != nil {
		return 0, 0, 0, errors.Join(ErrStatsQueryFailed, err)
	}

	users, err := coll.Distinct(ctx, "user", filter).Raw()
	if err != nil {
		return 0, 0, 0, errors.Join(ErrStatsQueryFailed, err)
	}
	userValues, err := users.Values()
	if err != nil {
		return 0, 0, 0, errors.Join(ErrStatsQueryFailed, err)
	}

	return entries, int64(len(dtValues)), int64(len(userValues)), nil
}
