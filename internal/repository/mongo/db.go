package mongo

import (
	"context"
	"fitu/dashboard/internal/repository"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI.
// It returns the mongo.Client which can be used to access databases and collections.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping the primary separately; Connect succeeds even when the server is unreachable.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// NewStore wires every repository to collections of db.
func NewStore(db *mongo.Database) repository.Store {
	return repository.Store{
		Students:           NewMongoStudentRepository(db),
		Instructors:        NewMongoInstructorRepository(db),
		Rosters:            NewMongoRosterRepository(db),
		Assignments:        NewMongoAssignmentRepository(db),
		PerformedExercises: NewMongoPerformedExerciseRepository(db),
		Announcements:      NewMongoAnnouncementRepository(db),
	}
}

// EnsureIndexes creates the indexes of every collection. Failures are logged, not fatal.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	EnsureStudentIndexes(ctx, db.Collection(repository.StudentsCollection))
	EnsureRosterIndexes(ctx, db.Collection(repository.RostersCollection))
	EnsureAssignmentIndexes(ctx, db.Collection(repository.AssignmentsCollection))
	EnsurePerformedExerciseIndexes(ctx, db.Collection(repository.PerformedExercisesCollection))
	EnsureAnnouncementIndexes(ctx, db.Collection(repository.AnnouncementsCollection))
}

func createIndexes(ctx context.Context, collection *mongo.Collection, indexes []mongo.IndexModel) {
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}

// newID returns a generated document id.
func newID() string {
	return primitive.NewObjectID().Hex()
}

// findAll runs filter against collection and decodes every document. Never returns a nil slice.
func findAll[T any](ctx context.Context, collection *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// matchedOne converts an update result into ErrNotFound when nothing matched.
func matchedOne(result *mongo.UpdateResult, err error) error {
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// deletedOne converts a delete result into ErrNotFound when nothing was removed.
func deletedOne(result *mongo.DeleteResult, err error) error {
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
