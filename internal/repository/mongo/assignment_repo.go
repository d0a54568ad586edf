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

// mongoAssignmentRepository implements repository.AssignmentRepository
type mongoAssignmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAssignmentRepository creates a new Assignment repository backed by MongoDB.
func NewMongoAssignmentRepository(db *mongo.Database) repository.AssignmentRepository {
	return &mongoAssignmentRepository{
		collection: db.Collection(repository.AssignmentsCollection),
	}
}

// Create inserts a new assignment into the database.
func (r *mongoAssignmentRepository) Create(ctx context.Context, assignment *domain.ExerciseAssignment) (string, error) {
	if assignment.InstructorID == "" || assignment.ExerciseName == "" {
		return "", errors.New("assignment requires instructorId and exerciseName")
	}

	assignment.ID = newID()
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, assignment); err != nil {
		return "", err
	}
	return assignment.ID, nil
}

// GetByID retrieves an assignment by its ID.
func (r *mongoAssignmentRepository) GetByID(ctx context.Context, id string) (*domain.ExerciseAssignment, error) {
	var assignment domain.ExerciseAssignment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// ListByInstructors retrieves all assignments owned by the given instructors, newest first.
func (r *mongoAssignmentRepository) ListByInstructors(ctx context.Context, instructorIDs ...string) ([]domain.ExerciseAssignment, error) {
	if len(instructorIDs) == 0 {
		return []domain.ExerciseAssignment{}, nil
	}
	filter := bson.M{"instructorId": bson.M{"$in": instructorIDs}}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[domain.ExerciseAssignment](ctx, r.collection, filter, findOptions)
}

func (r *mongoAssignmentRepository) CountByInstructor(ctx context.Context, instructorID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"instructorId": instructorID})
}

// UpdateSchedule modifies the target and due date of an assignment. The
// exercise name, owner and creation time are never part of the update document.
func (r *mongoAssignmentRepository) UpdateSchedule(ctx context.Context, id string, repetitions *int, isUnlimited bool, dueDate time.Time) error {
	update := bson.M{"$set": bson.M{
		"repetitions": repetitions,
		"isUnlimited": isUnlimited,
		"dueDate":     dueDate,
	}}
	return matchedOne(r.collection.UpdateOne(ctx, bson.M{"_id": id}, update))
}

// Delete removes the assignment document only. Performed records stored
// under it are left in place.
func (r *mongoAssignmentRepository) Delete(ctx context.Context, id string) error {
	return deletedOne(r.collection.DeleteOne(ctx, bson.M{"_id": id}))
}

// EnsureAssignmentIndexes creates necessary indexes for the exerciseAssignments collection.
func EnsureAssignmentIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "instructorId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
}
