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

// mongoInstructorRepository implements repository.InstructorRepository
type mongoInstructorRepository struct {
	collection *mongo.Collection
}

// NewMongoInstructorRepository creates a new instructor profile repository backed by MongoDB.
func NewMongoInstructorRepository(db *mongo.Database) repository.InstructorRepository {
	return &mongoInstructorRepository{
		collection: db.Collection(repository.InstructorsCollection),
	}
}

// Save writes the whole instructor document, creating it when absent.
func (r *mongoInstructorRepository) Save(ctx context.Context, instructor *domain.InstructorProfile) error {
	if instructor.ID == "" {
		return errors.New("instructor id is required")
	}
	now := time.Now().UTC()
	if instructor.CreatedAt.IsZero() {
		instructor.CreatedAt = now
	}
	if instructor.LastActive.IsZero() {
		instructor.LastActive = now
	}
	if instructor.Role == "" {
		instructor.Role = domain.InstructorRole
	}

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": instructor.ID}, instructor, options.Replace().SetUpsert(true))
	return err
}

func (r *mongoInstructorRepository) GetByID(ctx context.Context, id string) (*domain.InstructorProfile, error) {
	var instructor domain.InstructorProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&instructor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &instructor, nil
}

// UpdateProfile writes only the editable profile fields.
func (r *mongoInstructorRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate, updatedAt time.Time) error {
	set := bson.M{"$set": bson.M{
		"fullName":   update.FullName,
		"department": update.Department,
		"expertise":  update.Expertise,
		"updatedAt":  updatedAt,
	}}
	return matchedOne(r.collection.UpdateOne(ctx, bson.M{"_id": id}, set))
}

func (r *mongoInstructorRepository) TouchLastActive(ctx context.Context, id string, at time.Time) error {
	update := bson.M{"$set": bson.M{"lastActive": at}}
	return matchedOne(r.collection.UpdateOne(ctx, bson.M{"_id": id}, update))
}
