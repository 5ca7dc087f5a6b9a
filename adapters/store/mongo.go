package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/satriahrh/gerch/domain"
)

const (
	chatLogCollection = "chat_events"
	mongoCloseTimeout = 5 * time.Second
)

// MongoChatLog appends chat events to the chat_events collection.
type MongoChatLog struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoChatLog(ctx context.Context, uri, database string) (*MongoChatLog, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is required")
	}
	if database == "" {
		return nil, errors.New("mongo database name is required")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}
	return &MongoChatLog{
		client:     client,
		collection: client.Database(database).Collection(chatLogCollection),
	}, nil
}

func (m *MongoChatLog) Write(ctx context.Context, event domain.ChatEvent) error {
	if _, err := m.collection.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("inserting chat event: %w", err)
	}
	return nil
}

func (m *MongoChatLog) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoCloseTimeout)
	defer cancel()
	return m.client.Disconnect(ctx)
}
