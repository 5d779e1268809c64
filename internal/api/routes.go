// Package api wires the HTTP routes of the City Insight API.
package api

import (
	"time"

	infrajwt "github.com/Arhamsiaf65/CityInsights/infrastructure/jwt"
	"github.com/Arhamsiaf65/CityInsights/internal/domain"
	"github.com/Arhamsiaf65/CityInsights/internal/handlers"
	"github.com/Arhamsiaf65/CityInsights/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RouteConfig carries what the route table needs besides the handlers.
type RouteConfig struct {
	Tokens         *infrajwt.Manager
	ChatRateLimit  int
	ChatRateWindow time.Duration
	Done           <-chan struct{}
}

// SetupRoutes registers the /api/v1 routes.
func SetupRoutes(router *gin.Engine, h *handlers.Handlers, cfg RouteConfig) {
	authRequired := infrajwt.Middleware(cfg.Tokens)
	adminOnly := infrajwt.RequireRole(string(domain.RoleAdmin))
	publishers := infrajwt.RequireRole(
		string(domain.RoleAdmin), string(domain.RoleEditor), string(domain.RolePublisher),
	)

	v1 := router.Group("/api/v1")

	// Chat
	chat := v1.Group("/chat")
	chat.POST("",
		middleware.RateLimiter(cfg.ChatRateLimit, cfg.ChatRateWindow, cfg.Done),
		infrajwt.OptionalMiddleware(cfg.Tokens),
		h.Chat,
	)
	chat.DELETE("/sessions/:id", h.ClearChatSession)

	// Users
	users := v1.Group("/users")
	users.POST("/register", h.Register)
	users.POST("/login", h.Login)
	users.POST("/logout", authRequired, h.Logout)
	users.GET("/profile", authRequired, h.Profile)
	users.PATCH("/profile", authRequired, h.UpdateProfile)

	// Posts (specific paths before :id)
	posts := v1.Group("/posts")
	posts.GET("", h.ListPosts)
	posts.GET("/popular", h.PopularPosts)
	posts.GET("/search", h.SearchPosts)
	posts.GET("/:id", h.GetPost)
	posts.POST("", authRequired, publishers, h.CreatePost)
	posts.PATCH("/:id", authRequired, h.UpdatePost)
	posts.DELETE("/:id", authRequired, h.DeletePost)
	posts.POST("/:id/view", h.ViewPost)
	posts.POST("/:id/share", h.SharePost)
	posts.POST("/:id/like", authRequired, h.LikePost)
	posts.GET("/:id/comments", h.ListComments)
	posts.POST("/:id/comments", authRequired, h.CreateComment)

	// Comments
	comments := v1.Group("/comments", authRequired)
	comments.PATCH("/:id", h.UpdateComment)
	comments.DELETE("/:id", h.DeleteComment)

	// Categories
	categories := v1.Group("/categories")
	categories.GET("", h.ListCategories)
	categories.POST("", authRequired, adminOnly, h.CreateCategory)
	categories.PATCH("/:id", authRequired, adminOnly, h.UpdateCategory)
	categories.DELETE("/:id", authRequired, adminOnly, h.DeleteCategory)

	// Live streams
	streams := v1.Group("/livestreams")
	streams.GET("", h.ListLiveStreams)
	streams.POST("", authRequired, adminOnly, h.CreateLiveStream)
	streams.DELETE("/:id", authRequired, adminOnly, h.DeleteLiveStream)

	// Ads
	ads := v1.Group("/ads")
	ads.GET("", h.ListActiveAds)
	ads.POST("", authRequired, h.CreateAd)

	// Publisher applications
	v1.POST("/applications", authRequired, h.Apply)

	// Admin
	admin := v1.Group("/admin", authRequired, adminOnly)
	admin.PATCH("/users/:id/role", h.UpdateUserRole)
	admin.GET("/ads", h.ListAds)
	admin.PATCH("/ads/:id", h.ReviewAd)
	admin.GET("/applications", h.ListApplications)
	admin.PATCH("/applications/:id", h.ReviewApplication)
}
