package api

import (
	"net/http"

	"interntrack/intern-track/internal/service"

	"github.com/gin-gonic/gin"
)

// StudentHandler serves a student's own account details.
type StudentHandler struct {
	studentService service.StudentService
}

func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

type UpdateStudentRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Batch string `json:"batch" binding:"required"`
}

type StudentDetailsResponse struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	RegisterNumber string `json:"registerNumber"`
	Batch          string `json:"batch"`
}

// GetDetails godoc
// @Summary Get the authenticated student's details
// @Tags Student
// @Security BearerAuth
// @Produce json
// @Success 200 {object} StudentDetailsResponse
// @Failure 401 {object} gin.H "Please authenticate"
// @Router /student/details [get]
func (h *StudentHandler) GetDetails(c *gin.Context) {
	principal, _ := principalFromContext(c)

	student, err := h.studentService.GetDetails(c.Request.Context(), principal.ID())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, StudentDetailsResponse{
		Name:           student.Name,
		Email:          student.Email,
		RegisterNumber: student.RegisterNumber,
		Batch:          student.Batch,
	})
}

// UpdateDetails godoc
// @Summary Update the authenticated student's name, email and batch
// @Description The register number cannot be changed.
// @Tags Student
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param details body UpdateStudentRequest true "New details"
// @Success 200 {object} StudentDetailsResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 409 {object} gin.H "Email already exists"
// @Router /student/details [put]
func (h *StudentHandler) UpdateDetails(c *gin.Context) {
	var req UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	principal, _ := principalFromContext(c)

	student, err := h.studentService.UpdateDetails(c.Request.Context(), principal.ID(), service.UpdateStudentInput{
		Name:  req.Name,
		Email: req.Email,
		Batch: req.Batch,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, StudentDetailsResponse{
		Name:           student.Name,
		Email:          student.Email,
		RegisterNumber: student.RegisterNumber,
		Batch:          student.Batch,
	})
}
