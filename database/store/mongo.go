package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollectionName = "collections"

type mongoBlob struct {
	Name      string    `bson:"_id"`
	Blob      string    `bson:"blob"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoStore keeps one document per collection. SetMany runs inside a
// session transaction, which needs a replica set deployment.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	owned  bool
}

func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(mongoCollectionName),
	}
}

func (s *MongoStore) Get(ctx context.Context, collection string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc mongoBlob
	err := s.coll.FindOne(ctx, bson.M{"_id": collection}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find collection %s: %w", collection, err)
	}
	return []byte(doc.Blob), nil
}

func (s *MongoStore) Set(ctx context.Context, collection string, blob []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.upsert(ctx, collection, blob)
}

func (s *MongoStore) upsert(ctx context.Context, collection string, blob []byte) error {
	doc := mongoBlob{Name: collection, Blob: string(blob), UpdatedAt: time.Now()}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": collection}, doc, opts); err != nil {
		return fmt.Errorf("replace collection %s: %w", collection, err)
	}
	return nil
}

func (s *MongoStore) SetMany(ctx context.Context, blobs map[string][]byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		for name, blob := range blobs {
			if err := s.upsert(sc, name, blob); err != nil {
				_ = sc.AbortTransaction(sc)
				return err
			}
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("store transaction failed: %w", err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	if !s.owned {
		return nil
	}
	return s.client.Disconnect(ctx)
}
