package mongo

import (
	"context"
	"errors"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoPerformedExerciseRepository implements repository.PerformedExerciseRepository.
// Records of every assignment share one collection and are scoped by assignmentId.
type mongoPerformedExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoPerformedExerciseRepository creates a new performed-exercise repository backed by MongoDB.
func NewMongoPerformedExerciseRepository(db *mongo.Database) repository.PerformedExerciseRepository {
	return &mongoPerformedExerciseRepository{
		collection: db.Collection(repository.PerformedExercisesCollection),
	}
}

func (r *mongoPerformedExerciseRepository) Create(ctx context.Context, performed *domain.PerformedExercise) (string, error) {
	if performed.AssignmentID == "" || performed.StudentID == "" {
		return "", errors.New("performed exercise requires assignmentId and uid")
	}
	performed.ID = newID()
	if performed.PerformedAt.IsZero() {
		performed.PerformedAt = time.Now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, performed); err != nil {
		return "", err
	}
	return performed.ID, nil
}

func (r *mongoPerformedExerciseRepository) ListByAssignment(ctx context.Context, assignmentID string) ([]domain.PerformedExercise, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "time_and_date", Value: -1}})
	return findAll[domain.PerformedExercise](ctx, r.collection, bson.M{"assignmentId": assignmentID}, findOptions)
}

func (r *mongoPerformedExerciseRepository) ListByAssignments(ctx context.Context, assignmentIDs []string) ([]domain.PerformedExercise, error) {
	if len(assignmentIDs) == 0 {
		return []domain.PerformedExercise{}, nil
	}
	return findAll[domain.PerformedExercise](ctx, r.collection, bson.M{"assignmentId": bson.M{"$in": assignmentIDs}})
}

// CountByAssignment counts the live records of one assignment. Nothing caches this value.
func (r *mongoPerformedExerciseRepository) CountByAssignment(ctx context.Context, assignmentID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"assignmentId": assignmentID})
}

func (r *mongoPerformedExerciseRepository) SetAccomplished(ctx context.Context, assignmentID, id string, accomplished bool) error {
	filter := bson.M{"_id": id, "assignmentId": assignmentID}
	update := bson.M{"$set": bson.M{"accomplished": accomplished}}
	return matchedOne(r.collection.UpdateOne(ctx, filter, update))
}

func (r *mongoPerformedExerciseRepository) Delete(ctx context.Context, assignmentID, id string) error {
	return deletedOne(r.collection.DeleteOne(ctx, bson.M{"_id": id, "assignmentId": assignmentID}))
}

// EnsurePerformedExerciseIndexes creates necessary indexes for the performedExercises collection.
func EnsurePerformedExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "assignmentId", Value: 1}, {Key: "time_and_date", Value: -1}}},
		{Keys: bson.D{{Key: "uid", Value: 1}}},
	})
}
