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

type TodosRepo struct {
	MongoCollection *mongo.Collection
}

func GetTodosRepo(client *mongo.Client) *TodosRepo {
	return &TodosRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("todos"),
	}
}

// CreateTodo inserts a new todo for its owner.
func (r *TodosRepo) CreateTodo(ctx context.Context, todo *model.Todo) error {
	if todo.ID == "" {
		todo.ID = utils.GenerateID()
	}
	now := time.Now()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	_, err := r.MongoCollection.InsertOne(ctx, todo)
	return err
}

// GetTodo retrieves a todo owned by userID.
func (r *TodosRepo) GetTodo(ctx context.Context, todoID, userID string) (*model.Todo, error) {
	var todo model.Todo
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": todoID, "user_id": userID}).Decode(&todo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrTodoNotFound
		}
		return nil, err
	}
	return &todo, nil
}

// GetUserTodos retrieves all todos for a user, newest first.
func (r *TodosRepo) GetUserTodos(ctx context.Context, userID string) ([]*model.Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	todos := make([]*model.Todo, 0)
	if err = cursor.All(ctx, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// UpdateTodo replaces the mutable fields of a todo and returns the updated
// document. The user filter keeps one user from touching another's todos.
func (r *TodosRepo) UpdateTodo(ctx context.Context, todoID, userID string, updates *model.Todo) (*model.Todo, error) {
	set := bson.M{
		"text":       updates.Text,
		"completed":  updates.Completed,
		"updated_at": time.Now(),
	}
	if !updates.CompleteBy.IsZero() {
		set["complete_by"] = updates.CompleteBy
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var todo model.Todo
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": todoID, "user_id": userID}, bson.M{"$set": set}, opts).Decode(&todo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrTodoNotFound
		}
		return nil, err
	}
	return &todo, nil
}

// ToggleTodoComplete flips the completed flag and returns the updated
// document.
func (r *TodosRepo) ToggleTodoComplete(ctx context.Context, todoID, userID string) (*model.Todo, error) {
	filter := bson.M{"_id": todoID, "user_id": userID}

	var todo model.Todo
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&todo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrTodoNotFound
		}
		return nil, err
	}

	update := bson.M{
		"$set": bson.M{
			"completed":  !todo.Completed,
			"updated_at": time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Todo
	err = r.MongoCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrTodoNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// DeleteTodo removes a todo owned by userID.
func (r *TodosRepo) DeleteTodo(ctx context.Context, todoID, userID string) error {
	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"_id": todoID, "user_id": userID})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return model.ErrTodoNotFound
	}

	return nil
}

// CountUserTodos counts the todos for a user.
func (r *TodosRepo) CountUserTodos(ctx context.Context, userID string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
