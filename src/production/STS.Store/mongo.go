package store

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore implements Store on top of a MongoDB database, one
// collection per entity type, ObjectID hex strings as document ids.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, bson.M(doc))
	if err != nil {
		return "", err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *MongoStore) GetByID(ctx context.Context, collection, id string) (Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc bson.M
	err = s.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	delete(doc, "_id")
	return Document(doc), nil
}

func (s *MongoStore) QueryEquals(ctx context.Context, collection string, filter Document) ([]Stored, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M(filter))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []Stored
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}

		oid, ok := doc["_id"].(primitive.ObjectID)
		if !ok {
			return nil, fmt.Errorf("unexpected _id type %T", doc["_id"])
		}
		delete(doc, "_id")

		results = append(results, Stored{ID: oid.Hex(), Doc: Document(doc)})
	}

	return results, cursor.Err()
}

func (s *MongoStore) UpdateByID(ctx context.Context, collection, id string, partial Document) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.db.Collection(collection).UpdateByID(ctx, oid, bson.M{"$set": bson.M(partial)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID is idempotent: deleting an absent document is an ack, not
// an error, matching the store contract.
func (s *MongoStore) DeleteByID(ctx context.Context, collection, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	_, err = s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

// ConnectMongo dials MongoDB and verifies the connection with a ping.
func ConnectMongo(uri string, timeout time.Duration) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongodb uri is empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	if strings.HasPrefix(uri, "mongodb+srv://") {
		clientOptions.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	clientOptions.SetServerSelectionTimeout(30 * time.Second)
	clientOptions.SetConnectTimeout(30 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("unable to ping MongoDB: %w", err)
	}

	return client, nil
}
