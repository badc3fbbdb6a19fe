package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/alumnet/internal/logging"
	"github.com/dmitrijs2005/alumnet/internal/server/models"
	"github.com/dmitrijs2005/alumnet/internal/server/services"
	"github.com/gin-gonic/gin"
)

type UserService interface {
	Register(ctx context.Context, r services.Registration) (string, error)
	VerifyOTP(ctx context.Context, email, code string) error
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Authenticate(token string) (string, error)
	Me(ctx context.Context, userID string) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Directory(ctx context.Context, q models.DirectoryQuery) ([]models.User, error)
	UpdateProfile(ctx context.Context, userID string, c models.ProfileChanges) (*models.User, error)
}

type JobService interface {
	List(ctx context.Context) ([]models.Job, error)
	Create(ctx context.Context, userID string, job *models.Job) (*models.Job, error)
}

// Handler wires HTTP routes to the user and job services.
type Handler struct {
	users   UserService
	jobs    JobService
	metrics *Metrics
	logger  logging.Logger
}

func NewHandler(users UserService, jobs JobService, metrics *Metrics, l logging.Logger) *Handler {
	return &Handler{users: users, jobs: jobs, metrics: metrics, logger: l}
}

// Router builds a gin engine with every route registered.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	h.RegisterRoutes(router)
	return router
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), h.loggingMiddleware())
	if h.metrics != nil {
		router.Use(h.metrics.middleware())
		router.GET("/metrics", h.metrics.handler())
	}

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		authGroup := api.Group("/auth")
		authGroup.POST("/register", h.register)
		authGroup.POST("/verify-otp", h.verifyOTP)
		authGroup.POST("/resend-otp", h.resendOTP)
		authGroup.POST("/login", h.login)
		authGroup.GET("/me", h.authMiddleware(), h.me)

		users := api.Group("/users", h.authMiddleware())
		users.GET("/directory", h.directory)
		users.PUT("/profile", h.updateProfile)
		users.GET("/:id", h.getUser)

		jobs := api.Group("/jobs", h.authMiddleware())
		jobs.GET("", h.listJobs)
		jobs.POST("", h.createJob)
	}
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	email, err := h.users.Register(c.Request.Context(), services.Registration{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PassoutYear: req.PassoutYear,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logger.Info(c.Request.Context(), "Registered", "email", email)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Please check your email for the verification code.",
		"email":   email,
	})
}

func (h *Handler) verifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if err := h.users.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully. You can now log in."})
}

func (h *Handler) resendOTP(c *gin.Context) {
	var req resendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if err := h.users.ResendOTP(c.Request.Context(), req.Email); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "A new verification code has been sent"})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	token, user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": userToResponse(*user)})
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.users.Me(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userToResponse(*user)})
}

func (h *Handler) directory(c *gin.Context) {
	q := models.DirectoryQuery{Search: c.Query("search")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid limit"})
			return
		}
		q.Limit = limit
	}

	list, err := h.users.Directory(c.Request.Context(), q)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]UserResponse, len(list))
	for i := range list {
		resp[i] = userToResponse(list[i])
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userToResponse(*user)})
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), currentUserID(c), req.changes())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": userToResponse(*user)})
}

func (h *Handler) listJobs(c *gin.Context) {
	list, err := h.jobs.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]JobResponse, len(list))
	for i := range list {
		resp[i] = jobToResponse(list[i])
	}
	c.JSON(http.StatusOK, gin.H{"jobs": resp})
}

func (h *Handler) createJob(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), currentUserID(c), &models.Job{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: req.Description,
		ApplyURL:    req.ApplyURL,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Job posted successfully", "job": jobToResponse(*job)})
}
