package api

import (
	"net/http"

	"interntrack/intern-track/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoordinatorHandler serves the cohort-wide review endpoints.
type CoordinatorHandler struct {
	internshipService service.InternshipService
}

func NewCoordinatorHandler(internshipService service.InternshipService) *CoordinatorHandler {
	return &CoordinatorHandler{internshipService: internshipService}
}

// ListInternships godoc
// @Summary List all internships, newest first
// @Tags Coordinator
// @Security BearerAuth
// @Produce json
// @Param batch query string false "Only this batch"
// @Success 200 {array} domain.Internship
// @Failure 403 {object} gin.H "Not a coordinator"
// @Router /coordinator/internships [get]
func (h *CoordinatorHandler) ListInternships(c *gin.Context) {
	list, err := h.internshipService.ListAll(c.Request.Context(), c.Query("batch"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetDocumentLink godoc
// @Summary Get a download link for an internship's document
// @Tags Coordinator
// @Security BearerAuth
// @Produce json
// @Param id path string true "Internship ID"
// @Success 200 {object} service.DocumentLink
// @Failure 400 {object} gin.H "Invalid ID"
// @Failure 404 {object} gin.H "Internship not found"
// @Router /coordinator/internships/{id}/document [get]
func (h *CoordinatorHandler) GetDocumentLink(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid internship ID format")
		return
	}

	link, err := h.internshipService.DocumentLink(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}
