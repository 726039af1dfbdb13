package repository

import (
	"context"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(client *mongo.Client) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("notes"),
	}
}

// CreateNote inserts a new note. The ID and timestamps are assigned here.
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	if note.ID == "" {
		note.ID = utils.GenerateID()
	}
	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := r.MongoCollection.InsertOne(ctx, note)
	return err
}

// GetNote retrieves a note by id regardless of participants; access control
// happens in the service layer where the caller identity is known.
func (r *NotesRepo) GetNote(ctx context.Context, noteID string) (*model.Note, error) {
	var note model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": noteID}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// GetPairNotes retrieves every note shared by the two users, oldest first.
func (r *NotesRepo) GetPairNotes(ctx context.Context, userA, userB string) ([]*model.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"participants": bson.M{"$all": []string{userA, userB}}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notes := make([]*model.Note, 0)
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNoteText replaces the note text and returns the updated document.
func (r *NotesRepo) UpdateNoteText(ctx context.Context, noteID, text string) (*model.Note, error) {
	update := bson.M{
		"$set": bson.M{
			"text":       text,
			"updated_at": time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var note model.Note
	err := r.MongoCollection.FindOneAndUpdate(ctx, bson.M{"_id": noteID}, update, opts).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// DeleteNote removes a note permanently.
func (r *NotesRepo) DeleteNote(ctx context.Context, noteID string) error {
	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": noteID})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return model.ErrNoteNotFound
	}

	return nil
}

// CountPairNotes counts the notes shared by the two users.
func (r *NotesRepo) CountPairNotes(ctx context.Context, userA, userB string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx,
		bson.M{"participants": bson.M{"$all": []string{userA, userB}}})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
