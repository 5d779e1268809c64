package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/Arhamsiaf65/CityInsights/infrastructure/logger"
	"github.com/Arhamsiaf65/CityInsights/internal/domain"
	"github.com/gin-gonic/gin"
)

// ErrNotYouTube is returned for stream links without a YouTube video id.
var ErrNotYouTube = errors.New("a valid YouTube URL is required")

var youTubeID = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|live/|shorts/|embed/)|youtu\.be/)([A-Za-z0-9_-]+)`)

// EmbedURL converts a YouTube watch, live, shorts or short link into its
// embed URL.
func EmbedURL(raw string) (string, error) {
	m := youTubeID.FindStringSubmatch(raw)
	if m == nil {
		return "", ErrNotYouTube
	}
	return "https://www.youtube.com/embed/" + m[1], nil
}

// ====================
// Ads
// ====================

// ListActiveAds returns approved ads running now.
// GET /api/v1/ads
func (h *Handlers) ListActiveAds(c *gin.Context) {
	ads, err := h.store.ListActiveAds(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "ads", "list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ads": ads, "count": len(ads)})
}

// ListAds returns every ad for review.
// GET /api/v1/admin/ads
func (h *Handlers) ListAds(c *gin.Context) {
	ads, err := h.store.ListAds(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "ads", "list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ads": ads, "count": len(ads)})
}

// CreateAd submits an ad for review.
// POST /api/v1/ads
func (h *Handlers) CreateAd(c *gin.Context) {
	userID, _, ok := requireCaller(c)
	if !ok {
		return
	}
	var req domain.AdRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.EndDate.After(req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must be after startDate"})
		return
	}
	ad, err := h.store.CreateAd(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err, "ad", "create")
		return
	}
	c.JSON(http.StatusCreated, ad)
}

// ReviewAd approves or rejects an ad.
// PATCH /api/v1/admin/ads/:id
func (h *Handlers) ReviewAd(c *gin.Context) {
	id, ok := parseUUID(c, "id", "ad")
	if !ok {
		return
	}
	var req domain.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.Status.Decided() {
		h.handleError(c, domain.ErrInvalidStatus, "ad", "review")
		return
	}
	ad, err := h.store.UpdateAdStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.handleError(c, err, "ad", "review")
		return
	}
	c.JSON(http.StatusOK, ad)
}

// ====================
// Live streams
// ====================

// ListLiveStreams drops ended streams, flags live ones and lists the rest.
// GET /api/v1/livestreams
func (h *Handlers) ListLiveStreams(c *gin.Context) {
	streams, err := h.store.RefreshLiveStreams(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "live streams", "list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"streams": streams, "count": len(streams)})
}

// CreateLiveStream schedules a YouTube stream.
// POST /api/v1/livestreams
func (h *Handlers) CreateLiveStream(c *gin.Context) {
	var req domain.LiveStreamRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.EndTime.After(req.StartTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endTime must be after startTime"})
		return
	}
	embed, err := EmbedURL(req.URL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stream, err := h.store.CreateLiveStream(c.Request.Context(), &req, embed)
	if err != nil {
		h.handleError(c, err, "live stream", "create")
		return
	}
	c.JSON(http.StatusCreated, stream)
}

// DeleteLiveStream removes a stream.
// DELETE /api/v1/livestreams/:id
func (h *Handlers) DeleteLiveStream(c *gin.Context) {
	id, ok := parseUUID(c, "id", "live stream")
	if !ok {
		return
	}
	if err := h.store.DeleteLiveStream(c.Request.Context(), id); err != nil {
		h.handleError(c, err, "live stream", "delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Live stream deleted"})
}

// ====================
// Publisher applications
// ====================

// Apply submits the caller's publisher application.
// POST /api/v1/applications
func (h *Handlers) Apply(c *gin.Context) {
	userID, _, ok := requireCaller(c)
	if !ok {
		return
	}
	var req domain.ApplicationRequest
	if !bindJSON(c, &req) {
		return
	}
	app, err := h.store.CreateApplication(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err, "application", "submit")
		return
	}
	h.logger.Info("Publisher application submitted", logger.String("user_id", userID.String()))
	c.JSON(http.StatusCreated, app)
}

// ListApplications lists applications, optionally by ?status=.
// GET /api/v1/admin/applications
func (h *Handlers) ListApplications(c *gin.Context) {
	status := domain.ReviewStatus(c.Query("status"))
	if status != "" && status != domain.StatusPending && !status.Decided() {
		h.handleError(c, domain.ErrInvalidStatus, "applications", "list")
		return
	}
	apps, err := h.store.ListApplications(c.Request.Context(), status)
	if err != nil {
		h.handleError(c, err, "applications", "list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps, "count": len(apps)})
}

// ReviewApplication approves or rejects an application.
// PATCH /api/v1/admin/applications/:id
func (h *Handlers) ReviewApplication(c *gin.Context) {
	id, ok := parseUUID(c, "id", "application")
	if !ok {
		return
	}
	var req domain.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	app, err := h.store.ReviewApplication(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err, "application", "review")
		return
	}
	h.logger.Info("Publisher application reviewed",
		logger.String("application_id", id.String()),
		logger.String("status", string(app.Status)),
	)
	c.JSON(http.StatusOK, app)
}
