package api

import (
	"net/http"
	"time"

	"interntrack/intern-track/internal/domain"
	"interntrack/intern-track/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterStudentRequest struct {
	RegisterNumber string `json:"registerNumber" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Password       string `json:"password" binding:"required"`
	Batch          string `json:"batch" binding:"required"`
}

type RegisterCoordinatorRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Department string `json:"department" binding:"required"`
}

type StudentLoginRequest struct {
	RegisterNumber string `json:"registerNumber" binding:"required"`
	Password       string `json:"password" binding:"required"`
}

type CoordinatorLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// StudentResponse excludes sensitive info like password hash
type StudentResponse struct {
	ID             string    `json:"id"`
	RegisterNumber string    `json:"registerNumber"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Batch          string    `json:"batch"`
	CreatedAt      time.Time `json:"createdAt"`
}

type CoordinatorResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"createdAt"`
}

type StudentAuthResponse struct {
	Kind    domain.Kind     `json:"kind"`
	Student StudentResponse `json:"student"`
	Token   string          `json:"token"`
}

type CoordinatorAuthResponse struct {
	Kind        domain.Kind         `json:"kind"`
	Coordinator CoordinatorResponse `json:"coordinator"`
	Token       string              `json:"token"`
}

// --- Handler Methods ---

// RegisterStudent godoc
// @Summary Register a new student
// @Tags Auth
// @Accept json
// @Produce json
// @Param student body RegisterStudentRequest true "Registration details"
// @Success 201 {object} StudentAuthResponse
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 409 {object} gin.H "Conflict (register number or email already exists)"
// @Router /register/student [post]
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	var req RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	student, token, err := h.authService.RegisterStudent(c.Request.Context(), service.RegisterStudentInput{
		RegisterNumber: req.RegisterNumber,
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Batch:          req.Batch,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StudentAuthResponse{Kind: domain.KindStudent, Student: MapStudentToResponse(student), Token: token})
}

// RegisterCoordinator godoc
// @Summary Register a new coordinator
// @Tags Auth
// @Accept json
// @Produce json
// @Param coordinator body RegisterCoordinatorRequest true "Registration details"
// @Success 201 {object} CoordinatorAuthResponse
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 409 {object} gin.H "Conflict (email already exists)"
// @Router /register/coordinator [post]
func (h *AuthHandler) RegisterCoordinator(c *gin.Context) {
	var req RegisterCoordinatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	coordinator, token, err := h.authService.RegisterCoordinator(c.Request.Context(), service.RegisterCoordinatorInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		Department: req.Department,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CoordinatorAuthResponse{Kind: domain.KindCoordinator, Coordinator: MapCoordinatorToResponse(coordinator), Token: token})
}

// LoginStudent godoc
// @Summary Log in a student by register number
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body StudentLoginRequest true "Login credentials"
// @Success 200 {object} StudentAuthResponse
// @Failure 401 {object} gin.H "Invalid credentials"
// @Router /login/student [post]
func (h *AuthHandler) LoginStudent(c *gin.Context) {
	var req StudentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	student, token, err := h.authService.LoginStudent(c.Request.Context(), req.RegisterNumber, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, StudentAuthResponse{Kind: domain.KindStudent, Student: MapStudentToResponse(student), Token: token})
}

// LoginCoordinator godoc
// @Summary Log in a coordinator by email
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body CoordinatorLoginRequest true "Login credentials"
// @Success 200 {object} CoordinatorAuthResponse
// @Failure 401 {object} gin.H "Invalid credentials"
// @Router /login/coordinator [post]
func (h *AuthHandler) LoginCoordinator(c *gin.Context) {
	var req CoordinatorLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	coordinator, token, err := h.authService.LoginCoordinator(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, CoordinatorAuthResponse{Kind: domain.KindCoordinator, Coordinator: MapCoordinatorToResponse(coordinator), Token: token})
}

// Me godoc
// @Summary Describe the authenticated principal
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} gin.H "{id, kind, name}"
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Please authenticate")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":   principal.ID().Hex(),
		"kind": principal.Kind,
		"name": principal.Name(),
	})
}

// MapStudentToResponse converts a domain Student to a StudentResponse DTO.
func MapStudentToResponse(s *domain.Student) StudentResponse {
	return StudentResponse{
		ID:             s.ID.Hex(),
		RegisterNumber: s.RegisterNumber,
		Name:           s.Name,
		Email:          s.Email,
		Batch:          s.Batch,
		CreatedAt:      s.CreatedAt,
	}
}

func MapCoordinatorToResponse(c *domain.Coordinator) CoordinatorResponse {
	return CoordinatorResponse{
		ID:         c.ID.Hex(),
		Email:      c.Email,
		Name:       c.Name,
		Department: c.Department,
		CreatedAt:  c.CreatedAt,
	}
}
