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

const studentCollectionName = "students"

// mongoStudentRepository implements repository.StudentRepository using MongoDB.
type mongoStudentRepository struct {
	collection *mongo.Collection
}

func NewMongoStudentRepository(db *mongo.Database) repository.StudentRepository {
	return &mongoStudentRepository{
		collection: db.Collection(studentCollectionName),
	}
}

// Create inserts a new student. The password hash must already be set.
func (r *mongoStudentRepository) Create(ctx context.Context, student *domain.Student) (primitive.ObjectID, error) {
	if student.RegisterNumber == "" || student.Email == "" || student.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("student register number, email and password hash are required")
	}

	student.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, student); err != nil {
		student.ID = primitive.NilObjectID
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, duplicateKeyError(err, "registerNumber", "email")
		}
		return primitive.NilObjectID, err
	}
	return student.ID, nil
}

func (r *mongoStudentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Student, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoStudentRepository) GetByRegisterNumber(ctx context.Context, registerNumber string) (*domain.Student, error) {
	return r.findOne(ctx, bson.M{"registerNumber": registerNumber})
}

// UpdateProfile sets name, email and batch and returns the updated student.
func (r *mongoStudentRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.StudentProfile) (*domain.Student, error) {
	update := bson.M{
		"$set": bson.M{
			"name":      profile.Name,
			"email":     profile.Email,
			"batch":     profile.Batch,
			"updatedAt": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var student domain.Student
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKeyError(err, "email")
		}
		return nil, err
	}
	return &student, nil
}

func (r *mongoStudentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Student, error) {
	var student domain.Student
	err := r.collection.FindOne(ctx, filter).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// EnsureStudentIndexes creates the unique indexes for the students collection.
func EnsureStudentIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "registerNumber", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(uniqueIndexName("registerNumber")),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(uniqueIndexName("email")),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
