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

// mongoAnnouncementRepository implements repository.AnnouncementRepository
type mongoAnnouncementRepository struct {
	collection *mongo.Collection
}

// NewMongoAnnouncementRepository creates a new announcement repository backed by MongoDB.
func NewMongoAnnouncementRepository(db *mongo.Database) repository.AnnouncementRepository {
	return &mongoAnnouncementRepository{
		collection: db.Collection(repository.AnnouncementsCollection),
	}
}

// Create inserts the announcement together with its recipient snapshot in one document.
func (r *mongoAnnouncementRepository) Create(ctx context.Context, announcement *domain.Announcement) (string, error) {
	if announcement.InstructorID == "" || announcement.ClassRosterID == "" {
		return "", errors.New("announcement requires instructorId and classRosterId")
	}
	announcement.ID = newID()
	if announcement.Timestamp.IsZero() {
		announcement.Timestamp = time.Now().UTC()
	}
	if announcement.Students == nil {
		announcement.Students = []string{}
	}
	if _, err := r.collection.InsertOne(ctx, announcement); err != nil {
		return "", err
	}
	return announcement.ID, nil
}

func (r *mongoAnnouncementRepository) ListByOwner(ctx context.Context, instructorID, rosterID string) ([]domain.Announcement, error) {
	filter := bson.M{"instructorId": instructorID, "classRosterId": rosterID}
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	return findAll[domain.Announcement](ctx, r.collection, filter, findOptions)
}

func (r *mongoAnnouncementRepository) ListByRecipient(ctx context.Context, studentID string) ([]domain.Announcement, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	return findAll[domain.Announcement](ctx, r.collection, bson.M{"students": studentID}, findOptions)
}

func (r *mongoAnnouncementRepository) Delete(ctx context.Context, instructorID, id string) error {
	return deletedOne(r.collection.DeleteOne(ctx, bson.M{"_id": id, "instructorId": instructorID}))
}

// EnsureAnnouncementIndexes creates necessary indexes for the announcements collection.
func EnsureAnnouncementIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "instructorId", Value: 1}, {Key: "classRosterId", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "students", Value: 1}}},
	})
}
