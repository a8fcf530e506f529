package mongo

import (
	"context"
	"strings"
	"time"

	"interntrack/intern-track/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB and pings the primary.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

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

// EnsureIndexes creates the unique indexes every collection relies on.
// Uniqueness of register numbers and emails is enforced only here, so the
// server must not start when this fails.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := EnsureStudentIndexes(ctx, db.Collection(studentCollectionName)); err != nil {
		return err
	}
	if err := EnsureCoordinatorIndexes(ctx, db.Collection(coordinatorCollectionName)); err != nil {
		return err
	}
	return EnsureInternshipIndexes(ctx, db.Collection(internshipCollectionName))
}

// uniqueIndexName is the name given to the unique index on field. Duplicate
// key messages carry it, which is how the offending field is recovered.
func uniqueIndexName(field string) string {
	return field + "_unique"
}

// duplicateKeyError converts a driver duplicate-key error into a
// repository.DuplicateKeyError naming the first matching field.
func duplicateKeyError(err error, fields ...string) error {
	msg := err.Error()
	for _, f := range fields {
		if strings.Contains(msg, uniqueIndexName(f)) {
			return &repository.DuplicateKeyError{Field: f}
		}
	}
	return &repository.DuplicateKeyError{}
}
