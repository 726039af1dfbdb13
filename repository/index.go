package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	notesCollection := db.Collection("notes")
	todosCollection := db.Collection("todos")

	noteIndexes := []mongo.IndexModel{
		// Pair listing: multikey participants index with creation order
		{
			Keys: bson.D{
				{Key: "participants", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().
				SetName("participants_created").
				SetUnique(false),
		},
		// Creator lookups
		{
			Keys: bson.D{{Key: "created_by", Value: 1}},
			Options: options.Index().
				SetName("created_by_index"),
		},
	}

	todoIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_todos_date").
				SetUnique(false),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "completed", Value: 1},
			},
			Options: options.Index().
				SetName("user_todos_completed"),
		},
	}

	if _, err := notesCollection.Indexes().CreateMany(ctx, noteIndexes); err != nil {
		return fmt.Errorf("failed to create note indexes: %w", err)
	}

	if _, err := todosCollection.Indexes().CreateMany(ctx, todoIndexes); err != nil {
		return fmt.Errorf("failed to create todo indexes: %w", err)
	}

	log.Println("Database indexes created successfully")
	return nil
}
