package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"interntrack/intern-track/internal/apperrors"
	"interntrack/intern-track/internal/domain"
	"interntrack/intern-track/internal/logger"
	"interntrack/intern-track/internal/repository"
	"interntrack/intern-track/internal/storage"
	"interntrack/intern-track/internal/validation"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// sniffLen is how much of a document is read up front for content detection.
const sniffLen = 3072

var durationPattern = regexp.MustCompile(`(?i)^([0-9]+)(\s*weeks?)?$`)

// DocumentStore is the part of the local store the ingestion pipeline needs.
type DocumentStore interface {
	Plan(batch, registerNumber string, kind domain.DocumentKind, originalName string) (storage.Placement, error)
	Prepare(pl storage.Placement) error
	Write(ctx context.Context, pl storage.Placement, r io.Reader) (storage.WriteResult, error)
	MaxSize() int64
}

// DocumentUpload is one file from a multipart submission.
type DocumentUpload struct {
	Kind        domain.DocumentKind
	FileName    string
	ContentType string // as declared by the client
	Size        int64  // as declared by the client, -1 when unknown
	Content     io.Reader
}

// SubmitInternshipInput carries the raw form fields. Name and Email default
// to the student's own; RegisterNumber, when given, must be the student's.
type SubmitInternshipInput struct {
	Batch              string
	RegisterNumber     string
	Name               string
	Email              string
	MobileNumber       string
	CompanyName        string
	Duration           string
	Stipend            string
	ObtainedThroughCDC bool
	InternshipAbroad   bool
	Document           *DocumentUpload
}

// DocumentLink is where a coordinator can fetch a submitted document.
type DocumentLink struct {
	DocumentPath string `json:"documentPath"`
	URL          string `json:"url"`
}

// InternshipService ingests student submissions and serves them back.
type InternshipService interface {
	Submit(ctx context.Context, actor domain.Principal, in SubmitInternshipInput) (*domain.Internship, error)
	ListForStudent(ctx context.Context, studentID primitive.ObjectID) ([]domain.Internship, error)
	ListAll(ctx context.Context, batch string) ([]domain.Internship, error)
	DocumentLink(ctx context.Context, id primitive.ObjectID) (DocumentLink, error)
}

// InternshipOptions configures how document links are built.
type InternshipOptions struct {
	URLPrefix     string
	PresignExpiry time.Duration
}

type internshipService struct {
	internships repository.InternshipRepository
	store       DocumentStore
	mirror      storage.Mirror // nil when no object storage is configured
	validate    *validator.Validate
	opts        InternshipOptions
}

func NewInternshipService(internships repository.InternshipRepository, store DocumentStore, mirror storage.Mirror, opts InternshipOptions) InternshipService {
	if opts.URLPrefix == "" {
		opts.URLPrefix = "/documents"
	}
	return &internshipService{
		internships: internships,
		store:       store,
		mirror:      mirror,
		validate:    validation.New(),
		opts:        opts,
	}
}

// internshipFields is the validated shape of a submission.
type internshipFields struct {
	Batch          string   `validate:"required"`
	RegisterNumber string   `validate:"required,regnum"`
	Name           string   `validate:"required"`
	Email          string   `validate:"required,email"`
	MobileNumber   string   `validate:"required,mobile"`
	CompanyName    string   `validate:"required"`
	DurationWeeks  int      `validate:"min=1"`
	Stipend        *float64 `validate:"omitempty,gte=0"`
}

// Submit runs one submission through its stages in order: role check,
// validation, file storage, then record creation. Nothing is written before
// validation passes. If record creation fails the stored file stays where it
// is and a warning is logged; it is not deleted because on a duplicate it is
// the same path the existing record points at.
func (s *internshipService) Submit(ctx context.Context, actor domain.Principal, in SubmitInternshipInput) (*domain.Internship, error) {
	if err := Authorize(actor, domain.KindStudent); err != nil {
		return nil, err
	}
	owner := actor.Student
	log := logger.WithField("studentId", owner.ID.Hex())
	log.Debug().Str("stage", "role_checked").Msg("Submission received")

	doc := in.Document
	if doc == nil || doc.Content == nil {
		return nil, apperrors.Validation("Document file is required")
	}
	content, sniffed, err := s.checkDocument(doc)
	if err != nil {
		return nil, err
	}

	fields, err := s.checkFields(owner, in)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("stage", "validated").Str("type", sniffed).Msg("Submission validated")

	pl, err := s.store.Plan(fields.Batch, fields.RegisterNumber, doc.Kind, doc.FileName)
	if err != nil {
		return nil, err
	}
	if err := s.store.Prepare(pl); err != nil {
		log.Error().Err(errors.Unwrap(err)).Msg("Failed to prepare document directory")
		return nil, err
	}
	written, err := s.store.Write(ctx, pl, content)
	if err != nil {
		if errors.Is(err, apperrors.ErrStorageUnavailable) {
			log.Error().Err(errors.Unwrap(err)).Str("path", pl.RelPath).Msg("Failed to store document")
		}
		return nil, err
	}
	log.Debug().Str("stage", "stored").Str("path", pl.RelPath).Int64("size", written.Size).Msg("Document stored")

	record := &domain.Internship{
		StudentID:          owner.ID,
		Batch:              fields.Batch,
		RegisterNumber:     fields.RegisterNumber,
		Name:               fields.Name,
		Email:              fields.Email,
		MobileNumber:       fields.MobileNumber,
		CompanyName:        fields.CompanyName,
		DurationWeeks:      fields.DurationWeeks,
		Stipend:            fields.Stipend,
		ObtainedThroughCDC: in.ObtainedThroughCDC,
		InternshipAbroad:   in.InternshipAbroad,
		DocumentPath:       pl.RelPath,
		DocumentSize:       written.Size,
		DocumentType:       sniffed,
		DocumentDigest:     written.Digest,
	}
	if _, err := s.internships.Create(ctx, record); err != nil {
		log.Warn().Err(err).Str("path", pl.RelPath).Msg("Record creation failed, orphaned document left in place")
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.Duplicate("registerNumber", "Internship already submitted for this register number")
		}
		return nil, err
	}
	log.Info().Str("stage", "recorded").Str("internshipId", record.ID.Hex()).Str("path", pl.RelPath).Msg("Internship recorded")

	s.mirrorDocument(ctx, pl, written, sniffed)
	return record, nil
}

// checkDocument validates the declared type and size, then sniffs the first
// bytes to confirm the content agrees. It returns a reader that yields the
// whole document again, sniffed prefix included.
func (s *internshipService) checkDocument(doc *DocumentUpload) (io.Reader, string, error) {
	declared := strings.ToLower(strings.TrimSpace(doc.ContentType))
	declared, _, _ = strings.Cut(declared, ";")
	declared = strings.TrimSpace(declared)

	isPDF := declared == "application/pdf"
	isImage := strings.HasPrefix(declared, "image/")
	if !isPDF && !isImage {
		return nil, "", apperrors.Validation("Only PDF and image files are allowed")
	}
	if limit := s.store.MaxSize(); limit > 0 && doc.Size > limit {
		return nil, "", apperrors.Validation(fmt.Sprintf("File too large (max %d bytes)", limit))
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(doc.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", apperrors.Validation("Could not read document")
	}
	if n == 0 {
		return nil, "", apperrors.Validation("Document is empty")
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	switch {
	case isPDF && !detected.Is("application/pdf"):
		return nil, "", apperrors.Validation("Document content does not match its declared type")
	case isImage && !strings.HasPrefix(detected.String(), "image/"):
		return nil, "", apperrors.Validation("Document content does not match its declared type")
	}

	return io.MultiReader(bytes.NewReader(head), doc.Content), detected.String(), nil
}

func (s *internshipService) checkFields(owner *domain.Student, in SubmitInternshipInput) (internshipFields, error) {
	fields := internshipFields{
		Batch:          normalizeBatch(in.Batch),
		RegisterNumber: owner.RegisterNumber,
		Name:           strings.TrimSpace(in.Name),
		Email:          normalizeEmail(in.Email),
		MobileNumber:   strings.TrimSpace(in.MobileNumber),
		CompanyName:    strings.TrimSpace(in.CompanyName),
	}
	if claimed := normalizeRegisterNumber(in.RegisterNumber); claimed != "" && claimed != owner.RegisterNumber {
		return fields, apperrors.Validation("Register number does not match the authenticated student")
	}
	if fields.Name == "" {
		fields.Name = owner.Name
	}
	if fields.Email == "" {
		fields.Email = owner.Email
	}

	weeks, err := parseDurationWeeks(in.Duration)
	if err != nil {
		return fields, err
	}
	fields.DurationWeeks = weeks

	if raw := strings.TrimSpace(in.Stipend); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fields, apperrors.Validation("Stipend must be a number")
		}
		fields.Stipend = &v
	}

	if err := s.validate.Struct(fields); err != nil {
		return fields, apperrors.Validation(validation.Message(err))
	}
	return fields, nil
}

// parseDurationWeeks accepts "8", "8 weeks" or "1 week".
func parseDurationWeeks(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperrors.Validation("Duration is required")
	}
	m := durationPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, apperrors.Validation("Duration should be in weeks")
	}
	weeks, err := strconv.Atoi(m[1])
	if err != nil || weeks < 1 {
		return 0, apperrors.Validation("Duration must be at least 1 week")
	}
	return weeks, nil
}

// mirrorDocument copies a stored document to object storage. Failures are
// logged and never fail the submission.
func (s *internshipService) mirrorDocument(ctx context.Context, pl storage.Placement, written storage.WriteResult, contentType string) {
	if s.mirror == nil {
		return
	}
	f, err := os.Open(pl.Path())
	if err != nil {
		logger.Warn().Err(err).Str("path", pl.RelPath).Msg("Could not reopen document for mirroring")
		return
	}
	defer f.Close()

	if err := s.mirror.PutObject(ctx, pl.RelPath, f, written.Size, contentType); err != nil {
		logger.Warn().Err(err).Str("path", pl.RelPath).Msg("Failed to mirror document to object storage")
		return
	}
	logger.Debug().Str("path", pl.RelPath).Msg("Document mirrored")
}

func (s *internshipService) ListForStudent(ctx context.Context, studentID primitive.ObjectID) ([]domain.Internship, error) {
	return s.internships.List(ctx, repository.InternshipFilter{StudentID: studentID})
}

// ListAll lists every record, optionally narrowed to one batch.
func (s *internshipService) ListAll(ctx context.Context, batch string) ([]domain.Internship, error) {
	return s.internships.List(ctx, repository.InternshipFilter{Batch: normalizeBatch(batch)})
}

// DocumentLink prefers a presigned object storage URL and falls back to the
// locally served path.
func (s *internshipService) DocumentLink(ctx context.Context, id primitive.ObjectID) (DocumentLink, error) {
	record, err := s.internships.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return DocumentLink{}, apperrors.NotFound("Internship not found")
		}
		return DocumentLink{}, err
	}

	link := DocumentLink{
		DocumentPath: record.DocumentPath,
		URL:          strings.TrimSuffix(s.opts.URLPrefix, "/") + "/" + record.DocumentPath,
	}
	if s.mirror != nil {
		url, err := s.mirror.GeneratePresignedDownloadURL(ctx, record.DocumentPath, s.opts.PresignExpiry)
		if err != nil {
			logger.Warn().Err(err).Str("path", record.DocumentPath).Msg("Presign failed, falling back to local URL")
			return link, nil
		}
		link.URL = url
	}
	return link, nil
}
