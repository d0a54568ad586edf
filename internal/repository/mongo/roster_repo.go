package mongo

import (
	"context"
	"errors"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// rosterDocument is the stored shape; the instructor id doubles as the document id.
type rosterDocument struct {
	ID                 string `bson:"_id"`
	domain.ClassRoster `bson:",inline"`
}

// mongoRosterRepository implements repository.RosterRepository
type mongoRosterRepository struct {
	collection *mongo.Collection
}

// NewMongoRosterRepository creates a new class roster repository backed by MongoDB.
func NewMongoRosterRepository(db *mongo.Database) repository.RosterRepository {
	return &mongoRosterRepository{
		collection: db.Collection(repository.RostersCollection),
	}
}

func (r *mongoRosterRepository) GetByInstructorID(ctx context.Context, instructorID string) (*domain.ClassRoster, error) {
	var doc rosterDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": instructorID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if doc.Students == nil {
		doc.Students = []string{}
	}
	return &doc.ClassRoster, nil
}

// Replace overwrites the roster with a single upsert. There is no version
// check; concurrent writers race and the last one wins.
func (r *mongoRosterRepository) Replace(ctx context.Context, roster *domain.ClassRoster) error {
	if roster.InstructorID == "" {
		return errors.New("roster requires instructorId")
	}
	if roster.Students == nil {
		roster.Students = []string{}
	}
	doc := rosterDocument{ID: roster.InstructorID, ClassRoster: *roster}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *mongoRosterRepository) ListContainingStudent(ctx context.Context, studentID string) ([]domain.ClassRoster, error) {
	docs, err := findAll[rosterDocument](ctx, r.collection, bson.M{"students": studentID})
	if err != nil {
		return nil, err
	}
	rosters := make([]domain.ClassRoster, len(docs))
	for i, d := range docs {
		rosters[i] = d.ClassRoster
	}
	return rosters, nil
}

// EnsureRosterIndexes creates necessary indexes for the classRosters collection.
func EnsureRosterIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		// Multikey index for the student-side lookup
		{Keys: bson.D{{Key: "students", Value: 1}}},
	})
}
