package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	streamsCollection   = "Streams"
	snapshotsCollection = "Snapshots"
)

// Mongo keeps streams and snapshots as documents: one document per key,
// streams as an ordered array of lines. Snapshot payloads are stored as the
// JSON encoding produced for the other backends so all three stay
// interchangeable.
type Mongo struct {
	streams      *mongo.Collection
	snapshots    *mongo.Collection
	readTimeout  time.Duration
	writeTimeout time.Duration
}

type streamDoc struct {
	ID    string   `bson:"_id"`
	Lines []string `bson:"lines"`
}

type snapshotDoc struct {
	ID   string `bson:"_id"`
	Data []byte `bson:"data"`
}

func NewMongo(client *mongo.Client, dbName string, readTimeout, writeTimeout time.Duration) *Mongo {
	db := client.Database(dbName)
	return &Mongo{
		streams:      db.Collection(streamsCollection),
		snapshots:    db.Collection(snapshotsCollection),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (m *Mongo) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (m *Mongo) Exists(ctx context.Context, key string) (bool, error) {
	ctx, cancel := m.withTimeout(ctx, m.readTimeout)
	defer cancel()

	filter := bson.M{"_id": key}
	for _, coll := range []*mongo.Collection{m.streams, m.snapshots} {
		count, err := coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return false, fmt.Errorf("failed to check key existence: %w", err)
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (m *Mongo) ReadLines(ctx context.Context, key string) ([]string, error) {
	ctx, cancel := m.withTimeout(ctx, m.readTimeout)
	defer cancel()

	var doc streamDoc
	err := m.streams.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read stream %s: %w", key, err)
	}
	return doc.Lines, nil
}

func (m *Mongo) AppendLine(ctx context.Context, key, text string) error {
	ctx, cancel := m.withTimeout(ctx, m.writeTimeout)
	defer cancel()

	_, err := m.streams.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$push": bson.M{"lines": text}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to append to stream %s: %w", key, err)
	}
	return nil
}

func (m *Mongo) Overwrite(ctx context.Context, key, text string) error {
	ctx, cancel := m.withTimeout(ctx, m.writeTimeout)
	defer cancel()

	_, err := m.streams.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"lines": []string{text}}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to overwrite stream %s: %w", key, err)
	}
	return nil
}

func (m *Mongo) SaveSnapshot(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	ctx, cancel := m.withTimeout(ctx, m.writeTimeout)
	defer cancel()

	_, err = m.snapshots.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"data": data}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

func (m *Mongo) LoadSnapshot(ctx context.Context, key string, v any) error {
	ctx, cancel := m.withTimeout(ctx, m.readTimeout)
	defer cancel()

	var doc snapshotDoc
	err := m.snapshots.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return json.Unmarshal(doc.Data, v)
}
