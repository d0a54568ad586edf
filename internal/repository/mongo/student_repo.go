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

// mongoStudentRepository implements repository.StudentRepository
type mongoStudentRepository struct {
	collection *mongo.Collection
}

// NewMongoStudentRepository creates a new student profile repository backed by MongoDB.
func NewMongoStudentRepository(db *mongo.Database) repository.StudentRepository {
	return &mongoStudentRepository{
		collection: db.Collection(repository.StudentsCollection),
	}
}

// Save writes the whole student document, creating it when absent.
func (r *mongoStudentRepository) Save(ctx context.Context, student *domain.StudentProfile) error {
	if student.ID == "" || student.Email == "" {
		return errors.New("student id and email are required")
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	if student.LastActive.IsZero() {
		student.LastActive = now
	}

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": student.ID}, student, options.Replace().SetUpsert(true))
	return err
}

// GetByID retrieves a student by account id.
func (r *mongoStudentRepository) GetByID(ctx context.Context, id string) (*domain.StudentProfile, error) {
	var student domain.StudentProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// GetByIDs retrieves every existing student among ids with a single $in query.
func (r *mongoStudentRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.StudentProfile, error) {
	if len(ids) == 0 {
		return []domain.StudentProfile{}, nil
	}
	return findAll[domain.StudentProfile](ctx, r.collection, bson.M{"_id": bson.M{"$in": ids}})
}

// List retrieves all students, newest first.
func (r *mongoStudentRepository) List(ctx context.Context) ([]domain.StudentProfile, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[domain.StudentProfile](ctx, r.collection, bson.M{}, findOptions)
}

func (r *mongoStudentRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *mongoStudentRepository) CountByStatus(ctx context.Context, status domain.StudentStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

// UpdateStatus sets the status and stamps lastActive in the same write.
func (r *mongoStudentRepository) UpdateStatus(ctx context.Context, id string, status domain.StudentStatus, lastActive time.Time) error {
	update := bson.M{"$set": bson.M{
		"status":     status,
		"lastActive": lastActive,
	}}
	return matchedOne(r.collection.UpdateOne(ctx, bson.M{"_id": id}, update))
}

func (r *mongoStudentRepository) TouchLastActive(ctx context.Context, id string, at time.Time) error {
	update := bson.M{"$set": bson.M{"lastActive": at}}
	return matchedOne(r.collection.UpdateOne(ctx, bson.M{"_id": id}, update))
}

// EnsureStudentIndexes creates necessary indexes for the users collection.
func EnsureStudentIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "searchTerms", Value: 1}}},
	})
}
