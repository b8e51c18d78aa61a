package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unclebandit/customer-segmentation/internal/model"
)

// MongoCustomerRepository reads training rows from a MongoDB collection
// whose documents use the JSON field names of model.CustomerRecord.
type MongoCustomerRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoCustomerRepository(ctx context.Context, uri, database, collection string) (*MongoCustomerRepository, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoCustomerRepository{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

func (r *MongoCustomerRepository) ListAll(ctx context.Context) ([]model.CustomerRecord, error) {
	projection := bson.D{{Key: "_id", Value: 0}}
	for _, name := range model.FeatureNames {
		projection = append(projection, bson.E{Key: name, Value: 1})
	}

	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	customers := []model.CustomerRecord{}
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *MongoCustomerRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

var _ CustomerRepositoryInterface = (*MongoCustomerRepository)(nil)
