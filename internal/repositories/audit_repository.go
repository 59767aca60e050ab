package repositories

import (
	"context"
	"fmt"
	"time"

	"canvas_shop_backend/internal/config"
	"canvas_shop_backend/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditRepository stores the order audit trail.
type AuditRepository interface {
	Record(ctx context.Context, entry *models.AuditEntry) error
	ListForOrder(ctx context.Context, orderID string, limit int64) ([]models.AuditEntry, error)
	Close(ctx context.Context) error
}

type mongoAuditRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoAuditRepository connects to MongoDB and verifies the connection.
func NewMongoAuditRepository(ctx context.Context, cfg *config.MongoDBConfig) (AuditRepository, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return &mongoAuditRepository{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (m *mongoAuditRepository) Record(ctx context.Context, entry *models.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if _, err := m.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("%w: inserting audit entry: %v", ErrDatabaseError, err)
	}
	return nil
}

func (m *mongoAuditRepository) ListForOrder(ctx context.Context, orderID string, limit int64) ([]models.AuditEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := m.collection.Find(ctx, bson.M{"order_id": orderID}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: querying audit entries: %v", ErrDatabaseError, err)
	}
	defer cursor.Close(ctx)

	entries := []models.AuditEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("%w: decoding audit entries: %v", ErrDatabaseError, err)
	}
	return entries, nil
}

func (m *mongoAuditRepository) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// NoopAuditRepository is used when no MongoDB URI is configured.
type NoopAuditRepository struct{}

func (NoopAuditRepository) Record(context.Context, *models.AuditEntry) error { return nil }

func (NoopAuditRepository) ListForOrder(context.Context, string, int64) ([]models.AuditEntry, error) {
	return []models.AuditEntry{}, nil
}

func (NoopAuditRepository) Close(context.Context) error { return nil }
