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

const internshipCollectionName = "internships"

type mongoInternshipRepository struct {
	collection *mongo.Collection
}

func NewMongoInternshipRepository(db *mongo.Database) repository.InternshipRepository {
	return &mongoInternshipRepository{
		collection: db.Collection(internshipCollectionName),
	}
}

// Create inserts a record. A second record for the same register number
// fails with a DuplicateKeyError on the unique index; it is never merged.
func (r *mongoInternshipRepository) Create(ctx context.Context, internship *domain.Internship) (primitive.ObjectID, error) {
	if internship.StudentID == primitive.NilObjectID ||
		internship.RegisterNumber == "" ||
		internship.DocumentPath == "" {
		return primitive.NilObjectID, errors.New("internship requires studentId, registerNumber and documentPath")
	}

	internship.ID = primitive.NewObjectID()
	internship.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, internship); err != nil {
		internship.ID = primitive.NilObjectID
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, duplicateKeyError(err, "registerNumber")
		}
		return primitive.NilObjectID, err
	}
	return internship.ID, nil
}

func (r *mongoInternshipRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Internship, error) {
	var internship domain.Internship
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&internship)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &internship, nil
}

func (r *mongoInternshipRepository) List(ctx context.Context, filter repository.InternshipFilter) ([]domain.Internship, error) {
	query := bson.M{}
	if filter.StudentID != primitive.NilObjectID {
		query["studentId"] = filter.StudentID
	}
	if filter.Batch != "" {
		query["batch"] = filter.Batch
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	internships := []domain.Internship{}
	if err = cursor.All(ctx, &internships); err != nil {
		return nil, err
	}
	return internships, nil
}

func EnsureInternshipIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "registerNumber", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(uniqueIndexName("registerNumber")),
		},
		{
			Keys: bson.D{{Key: "batch", Value: 1}, {Key: "registerNumber", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "studentId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
