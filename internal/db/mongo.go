package db

import (
	"context"
	"fmt"
	"time"

	"news_digest/internal/config"
	"news_digest/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	client   *mongo.Client
	articles *mongo.Collection
}

func NewMongoDB(uri string, cfg config.DBConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("can't ping MongoDB: %w", err)
	}

	return &MongoDB{
		client:   client,
		articles: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// SaveArticle upserts the record under its URL-derived id. Writes merge:
// fields absent from this record are left untouched, and the timestamp is
// assigned by the server.
func (d *MongoDB) SaveArticle(ctx context.Context, id string, rec *models.EnrichedRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update, err := buildArticleUpdate(rec)
	if err != nil {
		return err
	}

	opts := options.Update().SetUpsert(true)
	_, err = d.articles.UpdateByID(ctx, id, update, opts)
	return err
}

func buildArticleUpdate(rec *models.EnrichedRecord) (bson.M, error) {
	data, err := bson.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	var fields bson.M
	if err := bson.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to rebuild record fields: %w", err)
	}

	return bson.M{
		"$set":         fields,
		"$currentDate": bson.M{"timestamp": true},
	}, nil
}

func (d *MongoDB) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return d.client.Disconnect(ctx)
}
