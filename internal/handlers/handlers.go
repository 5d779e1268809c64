// Package handlers implements the gin handlers of the City Insight API.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	infraerrors "github.com/Arhamsiaf65/CityInsights/infrastructure/errors"
	infrajwt "github.com/Arhamsiaf65/CityInsights/infrastructure/jwt"
	"github.com/Arhamsiaf65/CityInsights/infrastructure/logger"
	"github.com/Arhamsiaf65/CityInsights/internal/chatbot"
	"github.com/Arhamsiaf65/CityInsights/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *domain.ProfileUpdateRequest) (*domain.User, error)
	UpdateUserRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error)
}

// PostStore persists posts and their counters.
type PostStore interface {
	ListPosts(ctx context.Context, filter domain.PostFilter) ([]domain.Post, error)
	PopularPosts(ctx context.Context, limit int) ([]domain.Post, error)
	SearchPostsPage(ctx context.Context, q string, limit, offset int) ([]domain.Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	CreatePost(ctx context.Context, authorID uuid.UUID, req *domain.PostCreateRequest) (*domain.Post, error)
	UpdatePost(ctx context.Context, id uuid.UUID, req *domain.PostUpdateRequest) (*domain.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) (int64, error)
	IncrementShares(ctx context.Context, id uuid.UUID) (int64, error)
	ToggleLike(ctx context.Context, postID, userID uuid.UUID) (*domain.LikeResult, error)
}

// CategoryStore persists categories.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string, description *string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *domain.CategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// CommentStore persists comments.
type CommentStore interface {
	ListComments(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error)
	GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	CreateComment(ctx context.Context, postID, userID uuid.UUID, content string) (*domain.Comment, error)
	UpdateComment(ctx context.Context, id uuid.UUID, content string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

// PromoStore persists ads, live streams and publisher applications.
type PromoStore interface {
	ListActiveAds(ctx context.Context) ([]domain.Ad, error)
	ListAds(ctx context.Context) ([]domain.Ad, error)
	CreateAd(ctx context.Context, createdBy uuid.UUID, req *domain.AdRequest) (*domain.Ad, error)
	UpdateAdStatus(ctx context.Context, id uuid.UUID, status domain.ReviewStatus) (*domain.Ad, error)
	RefreshLiveStreams(ctx context.Context) ([]domain.LiveStream, error)
	CreateLiveStream(ctx context.Context, req *domain.LiveStreamRequest, embedURL string) (*domain.LiveStream, error)
	DeleteLiveStream(ctx context.Context, id uuid.UUID) error
	CreateApplication(ctx context.Context, userID uuid.UUID, req *domain.ApplicationRequest) (*domain.PublisherApplication, error)
	ListApplications(ctx context.Context, status domain.ReviewStatus) ([]domain.PublisherApplication, error)
	ReviewApplication(ctx context.Context, id uuid.UUID, req *domain.ReviewRequest) (*domain.PublisherApplication, error)
}

// Store is everything the handlers read and write.
type Store interface {
	UserStore
	PostStore
	CategoryStore
	CommentStore
	PromoStore
}

// Replier answers chat messages. *chatbot.Router implements it.
type Replier interface {
	Reply(ctx context.Context, req chatbot.Request) (chatbot.Reply, error)
}

// Sessions keeps conversation turns. *session.Store implements it.
type Sessions interface {
	Load(ctx context.Context, id string) ([]chatbot.Turn, error)
	Append(ctx context.Context, id string, turns ...chatbot.Turn) error
	Clear(ctx context.Context, id string) error
}

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	store    Store
	chat     Replier
	sessions Sessions
	tokens   *infrajwt.Manager
	logger   logger.Logger
}

// New creates the handlers. sessions may be nil.
func New(store Store, chat Replier, sessions Sessions, tokens *infrajwt.Manager, log logger.Logger) *Handlers {
	return &Handlers{
		store:    store,
		chat:     chat,
		sessions: sessions,
		tokens:   tokens,
		logger:   log,
	}
}

// parseUUID parses a UUID route parameter, answering 400 on failure.
func parseUUID(c *gin.Context, paramName, entityType string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(paramName))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + entityType + " ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// caller returns the authenticated account id and role.
func caller(c *gin.Context) (uuid.UUID, domain.Role, bool) {
	claims, ok := infrajwt.GetClaims(c)
	if !ok {
		return uuid.Nil, "", false
	}
	id, err := uuid.Parse(claims.Sub)
	if err != nil {
		return uuid.Nil, "", false
	}
	return id, domain.Role(claims.Role), true
}

// requireCaller answers 401 when no account is attached to the request.
func requireCaller(c *gin.Context) (uuid.UUID, domain.Role, bool) {
	id, role, ok := caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
	return id, role, ok
}

// handleError maps store and domain errors to responses.
func (h *Handlers) handleError(c *gin.Context, err error, entityType, operation string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": entityType + " not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": entityType + " already exists"})
	case errors.Is(err, domain.ErrNoFieldsToUpdate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one field must be provided for update"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case infraerrors.IsAny(err, domain.ErrInvalidRole, domain.ErrInvalidStatus, domain.ErrOwnRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Request failed",
			logger.Error(err),
			logger.String("operation", operation),
			logger.String("path", c.Request.URL.Path),
			logger.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + operation + " " + entityType})
	}
}

// bindJSON binds the request body, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return false
	}
	return true
}

// queryInt reads a positive integer query parameter.
func queryInt(c *gin.Context, name string, fallback int) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
