package api

import (
	"mime/multipart"
	"net/http"
	"sort"
	"strings"

	"interntrack/intern-track/internal/domain"
	"interntrack/intern-track/internal/service"

	"github.com/gin-gonic/gin"
)

// multipartOverhead is allowed on top of the document limit for the other
// form fields and part headers.
const multipartOverhead = 1 << 20

// InternshipHandler accepts submissions and lists them.
type InternshipHandler struct {
	internshipService service.InternshipService
	maxUploadSize     int64
}

func NewInternshipHandler(internshipService service.InternshipService, maxUploadSize int64) *InternshipHandler {
	return &InternshipHandler{internshipService: internshipService, maxUploadSize: maxUploadSize}
}

// SubmitInternshipForm holds the scalar multipart fields. Checks here only
// reject obviously bad input early; the service validates everything again.
type SubmitInternshipForm struct {
	Batch              string `form:"batch"`
	RegisterNumber     string `form:"registerNumber"`
	Name               string `form:"name"`
	Email              string `form:"email"`
	MobileNumber       string `form:"mobileNumber" binding:"omitempty,mobile"`
	CompanyName        string `form:"companyName"`
	Duration           string `form:"duration"`
	Stipend            string `form:"stipend"`
	ObtainedThroughCDC string `form:"obtainedThroughCDC"`
	InternshipAbroad   string `form:"internshipAbroad"`
}

type SubmitInternshipResponse struct {
	Message      string             `json:"message"`
	Data         *domain.Internship `json:"data"`
	DocumentPath string             `json:"documentPath"`
}

// Submit godoc
// @Summary Submit an internship with its document
// @Description multipart/form-data with the document in the "document" field.
// @Tags Internships
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} SubmitInternshipResponse
// @Failure 400 {object} gin.H "Invalid input or file"
// @Failure 401 {object} gin.H "Please authenticate"
// @Failure 403 {object} gin.H "Not a student"
// @Failure 409 {object} gin.H "Internship already submitted"
// @Router /internships [post]
func (h *InternshipHandler) Submit(c *gin.Context) {
	principal, _ := principalFromContext(c)

	if h.maxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+multipartOverhead)
	}

	var form SubmitInternshipForm
	if err := c.ShouldBind(&form); err != nil {
		writeBindError(c, err)
		return
	}

	field, header := documentPart(c.Request.MultipartForm)
	if header == nil {
		abortWithError(c, http.StatusBadRequest, "Document is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Close()

	record, err := h.internshipService.Submit(c.Request.Context(), principal, service.SubmitInternshipInput{
		Batch:              form.Batch,
		RegisterNumber:     form.RegisterNumber,
		Name:               form.Name,
		Email:              form.Email,
		MobileNumber:       form.MobileNumber,
		CompanyName:        form.CompanyName,
		Duration:           form.Duration,
		Stipend:            form.Stipend,
		ObtainedThroughCDC: formBool(form.ObtainedThroughCDC),
		InternshipAbroad:   formBool(form.InternshipAbroad),
		Document: &service.DocumentUpload{
			Kind:        domain.DocumentKindForField(field),
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     file,
		},
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SubmitInternshipResponse{
		Message:      "Internship added successfully",
		Data:         record,
		DocumentPath: record.DocumentPath,
	})
}

// ListMine godoc
// @Summary List the authenticated student's internships, newest first
// @Tags Internships
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Internship
// @Router /internships [get]
func (h *InternshipHandler) ListMine(c *gin.Context) {
	principal, _ := principalFromContext(c)

	list, err := h.internshipService.ListForStudent(c.Request.Context(), principal.ID())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// documentPart picks the uploaded file. The document field wins; otherwise
// the first file field by name is used and stored under the Other kind.
func documentPart(form *multipart.Form) (string, *multipart.FileHeader) {
	if form == nil || len(form.File) == 0 {
		return "", nil
	}
	if files := form.File[domain.DocumentFieldName]; len(files) > 0 {
		return domain.DocumentFieldName, files[0]
	}

	names := make([]string, 0, len(form.File))
	for name := range form.File {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if files := form.File[name]; len(files) > 0 {
			return name, files[0]
		}
	}
	return "", nil
}

// formBool reads an HTML checkbox or a JSON-ish boolean.
func formBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}
