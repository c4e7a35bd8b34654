package migrations

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func init() {
	AddMigration(2, "initial_indexes", upInitialIndexes, downInitialIndexes)
}

func upInitialIndexes(ctx context.Context, database *mongo.Database) error {
	admins := database.Collection("admins")
	users := database.Collection("users")

	// create an index for the 'adminName' field on admins (must be unique)
	if _, err := admins.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "adminName", Value: 1}}, // 1 for ascending order
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create index on adminName for admins: %w", err)
	}

	// create the unique indexes for the 'name' and 'code' fields on users
	if _, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}}, // 1 for ascending order
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "code", Value: 1}}, // 1 for ascending order
			Options: options.Index().SetUnique(true),
		},
	}); err != nil {
		return fmt.Errorf("failed to create unique indexes for users: %w", err)
	}

	return nil
}

func downInitialIndexes(ctx context.Context, database *mongo.Database) error {
	if _, err := database.Collection("admins").Indexes().DropAll(ctx); err != nil {
		return fmt.Errorf("failed to drop indexes for admins: %w", err)
	}
	if _, err := database.Collection("users").Indexes().DropAll(ctx); err != nil {
		return fmt.Errorf("failed to drop indexes for users: %w", err)
	}
	return nil
}
