package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. The unique
// constraints on email and username are what close the duplicate-registration
// race; googleId is sparse so password-only accounts don't collide on the
// missing field.
func EnsureIndexes(ctx context.Context, db *mongo.Database, usersCollection, postsCollection string) error {
	users := db.Collection(usersCollection)
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "googleId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	posts := db.Collection(postsCollection)
	_, err = posts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "username", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create post indexes: %w", err)
	}
	return nil
}
