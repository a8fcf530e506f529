package mongo

import (
	"context"
	"errors"
	"time"

	"interntrack/intern-track/internal/domain"
	"interntrack/intern-track/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const coordinatorCollectionName = "coordinators"

type mongoCoordinatorRepository struct {
	collection *mongo.Collection
}

func NewMongoCoordinatorRepository(db *mongo.Database) repository.CoordinatorRepository {
	return &mongoCoordinatorRepository{
		collection: db.Collection(coordinatorCollectionName),
	}
}

func (r *mongoCoordinatorRepository) Create(ctx context.Context, coordinator *domain.Coordinator) (primitive.ObjectID, error) {
	if coordinator.Email == "" || coordinator.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("coordinator email and password hash are required")
	}

	coordinator.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	coordinator.CreatedAt = now
	coordinator.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, coordinator); err != nil {
		coordinator.ID = primitive.NilObjectID
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, duplicateKeyError(err, "email")
		}
		return primitive.NilObjectID, err
	}
	return coordinator.ID, nil
}

func (r *mongoCoordinatorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Coordinator, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoCoordinatorRepository) GetByEmail(ctx context.Context, email string) (*domain.Coordinator, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoCoordinatorRepository) findOne(ctx context.Context, filter bson.M) (*domain.Coordinator, error) {
	var coordinator domain.Coordinator
	err := r.collection.FindOne(ctx, filter).Decode(&coordinator)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &coordinator, nil
}

func EnsureCoordinatorIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(uniqueIndexName("email")),
	})
	return err
}
