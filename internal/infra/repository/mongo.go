package repository

import (
	"context"
	"errors"

	"chat-connector/internal/domain/entities"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const contextCollection = "contexts"

// MongoContextStore keeps conversational contexts in a MongoDB collection
// keyed by user_id.
type MongoContextStore struct {
	db *mongo.Database
}

func NewMongoContextStore(db *mongo.Database) *MongoContextStore {
	return &MongoContextStore{db: db}
}

func (r *MongoContextStore) Get(ctx context.Context, userID string) (entities.Context, bool, error) {
	var entity entities.Context
	collection := r.db.Collection(contextCollection)
	err := collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&entity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entities.Context{}, false, nil
	}
	if err != nil {
		return entities.Context{}, false, err
	}
	return entity, true, nil
}

func (r *MongoContextStore) Put(ctx context.Context, userID string, entity entities.Context) error {
	collection := r.db.Collection(contextCollection)
	update := bson.M{"$set": entity}
	_, err := collection.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	return err
}

func (r *MongoContextStore) Delete(ctx context.Context, userID string) error {
	collection := r.db.Collection(contextCollection)
	_, err := collection.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}
