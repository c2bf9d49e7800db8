package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/archmap-dev/archmap/pkg/layout"
)

// Mongo collection naming.
const (
	defaultMongoDatabase = "archmap"
	positionsCollection  = "positions"
)

// MongoConfig configures the MongoDB-backed position store.
type MongoConfig struct {
	URI      string
	Database string // defaults to "archmap"
}

// MongoStore persists one document per project in a positions collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// positionsDoc is the stored document shape.
type positionsDoc struct {
	Project   string             `bson:"_id"`
	Positions map[string]pointBS `bson:"positions"`
}

// pointBS is the BSON shape of a position.
type pointBS struct {
	X float64 `bson:"x"`
	Y float64 `bson:"y"`
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	db := cfg.Database
	if db == "" {
		db = defaultMongoDatabase
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(db).Collection(positionsCollection),
	}, nil
}

// Get loads the saved positions of a project.
func (s *MongoStore) Get(ctx context.Context, project string) (layout.PositionMap, error) {
	var doc positionsDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": project}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo get positions: %w", err)
	}

	positions := make(layout.PositionMap, len(doc.Positions))
	for id, p := range doc.Positions {
		positions[id] = layout.Point{X: p.X, Y: p.Y}
	}
	return positions, nil
}

// Set replaces the saved positions of a project via upsert.
func (s *MongoStore) Set(ctx context.Context, project string, positions layout.PositionMap) error {
	stored := make(map[string]pointBS, len(positions))
	for id, p := range positions {
		stored[id] = pointBS{X: p.X, Y: p.Y}
	}

	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": project},
		positionsDoc{Project: project, Positions: stored},
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo set positions: %w", err)
	}
	return nil
}

// Clear discards the saved positions of a project.
func (s *MongoStore) Clear(ctx context.Context, project string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": project}); err != nil {
		return fmt.Errorf("mongo clear positions: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ PositionStore = (*MongoStore)(nil)
