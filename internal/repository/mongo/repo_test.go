package mongo

import (
	"context"
	"errors"
	"testing"

	"interntrack/intern-track/internal/domain"
	"interntrack/intern-track/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func duplicateResponse(index string) bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{
		Index:   0,
		Code:    11000,
		Message: "E11000 duplicate key error collection: intern_track.x index: " + index + " dup key: { : \"X\" }",
	})
}

func TestStudentRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := NewMongoStudentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		s := &domain.Student{RegisterNumber: "CS2021001", Email: "a@x.com", PasswordHash: "$2a$hash"}
		id, err := repo.Create(context.Background(), s)
		if err != nil {
			mt.Fatalf("Create: %v", err)
		}
		if id == primitive.NilObjectID || s.ID != id {
			mt.Errorf("id = %v, student.ID = %v", id, s.ID)
		}
		if s.CreatedAt.IsZero() {
			mt.Error("CreatedAt not set")
		}
	})

	mt.Run("duplicate register number", func(mt *mtest.T) {
		repo := NewMongoStudentRepository(mt.DB)
		mt.AddMockResponses(duplicateResponse("registerNumber_unique"))

		_, err := repo.Create(context.Background(), &domain.Student{RegisterNumber: "CS2021001", Email: "a@x.com", PasswordHash: "h"})
		if !errors.Is(err, repository.ErrDuplicateKey) {
			mt.Fatalf("err = %v, want ErrDuplicateKey", err)
		}
		if got := repository.DuplicateField(err); got != "registerNumber" {
			mt.Errorf("DuplicateField = %q, want registerNumber", got)
		}
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		repo := NewMongoStudentRepository(mt.DB)
		mt.AddMockResponses(duplicateResponse("email_unique"))

		_, err := repo.Create(context.Background(), &domain.Student{RegisterNumber: "CS2021002", Email: "a@x.com", PasswordHash: "h"})
		if got := repository.DuplicateField(err); got != "email" {
			mt.Errorf("DuplicateField = %q, want email (err %v)", got, err)
		}
	})

	mt.Run("get by register number", func(mt *mtest.T) {
		repo := NewMongoStudentRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "intern_track.students", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "registerNumber", Value: "CS2021001"},
			{Key: "name", Value: "A"},
			{Key: "passwordHash", Value: "h"},
		}))

		s, err := repo.GetByRegisterNumber(context.Background(), "CS2021001")
		if err != nil {
			mt.Fatalf("GetByRegisterNumber: %v", err)
		}
		if s.ID != id || s.Name != "A" || s.PasswordHash != "h" {
			mt.Errorf("student = %+v", s)
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewMongoStudentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "intern_track.students", mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID())
		if !errors.Is(err, repository.ErrNotFound) {
			mt.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	mt.Run("update profile keeps hash", func(mt *mtest.T) {
		repo := NewMongoStudentRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "registerNumber", Value: "CS2021001"},
			{Key: "name", Value: "B"},
			{Key: "email", Value: "b@x.com"},
			{Key: "batch", Value: "2022"},
			{Key: "passwordHash", Value: "original-hash"},
		}}))

		s, err := repo.UpdateProfile(context.Background(), id, domain.StudentProfile{Name: "B", Email: "b@x.com", Batch: "2022"})
		if err != nil {
			mt.Fatalf("UpdateProfile: %v", err)
		}
		if s.Name != "B" || s.PasswordHash != "original-hash" {
			mt.Errorf("student = %+v", s)
		}
	})
}

func TestCoordinatorRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate email", func(mt *mtest.T) {
		repo := NewMongoCoordinatorRepository(mt.DB)
		mt.AddMockResponses(duplicateResponse("email_unique"))

		_, err := repo.Create(context.Background(), &domain.Coordinator{Email: "c@x.com", PasswordHash: "h"})
		if !errors.Is(err, repository.ErrDuplicateKey) {
			mt.Fatalf("err = %v, want ErrDuplicateKey", err)
		}
	})

	mt.Run("get by email", func(mt *mtest.T) {
		repo := NewMongoCoordinatorRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "intern_track.coordinators", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "c@x.com"},
			{Key: "department", Value: "CSE"},
		}))

		c, err := repo.GetByEmail(context.Background(), "c@x.com")
		if err != nil {
			mt.Fatalf("GetByEmail: %v", err)
		}
		if c.Department != "CSE" {
			mt.Errorf("Department = %q, want CSE", c.Department)
		}
	})
}

func TestInternshipRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("rejects incomplete record", func(mt *mtest.T) {
		repo := NewMongoInternshipRepository(mt.DB)
		_, err := repo.Create(context.Background(), &domain.Internship{RegisterNumber: "CS2021001"})
		if err == nil {
			mt.Fatal("Create accepted a record without owner and document")
		}
	})

	mt.Run("second record for register number", func(mt *mtest.T) {
		repo := NewMongoInternshipRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(), duplicateResponse("registerNumber_unique"))

		rec := func() *domain.Internship {
			return &domain.Internship{
				StudentID:      primitive.NewObjectID(),
				RegisterNumber: "CS2021001",
				DocumentPath:   "2021/CS2021001/CS2021001-Document.pdf",
			}
		}
		if _, err := repo.Create(context.Background(), rec()); err != nil {
			mt.Fatalf("first Create: %v", err)
		}
		second := rec()
		_, err := repo.Create(context.Background(), second)
		if !errors.Is(err, repository.ErrDuplicateKey) {
			mt.Fatalf("second Create err = %v, want ErrDuplicateKey", err)
		}
		if second.ID != primitive.NilObjectID {
			mt.Errorf("failed record kept id %v", second.ID)
		}
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewMongoInternshipRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "intern_track.internships", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "registerNumber", Value: "B0000002"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "registerNumber", Value: "A0000001"}},
		))

		list, err := repo.List(context.Background(), repository.InternshipFilter{Batch: "2021"})
		if err != nil {
			mt.Fatalf("List: %v", err)
		}
		if len(list) != 2 || list[0].RegisterNumber != "B0000002" {
			mt.Errorf("list = %+v", list)
		}
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		if err := EnsureIndexes(context.Background(), mt.DB); err != nil {
			mt.Fatalf("EnsureIndexes: %v", err)
		}
	})
}
