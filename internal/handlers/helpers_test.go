package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	infrajwt "github.com/Arhamsiaf65/CityInsights/infrastructure/jwt"
	"github.com/Arhamsiaf65/CityInsights/infrastructure/logger"
	"github.com/Arhamsiaf65/CityInsights/internal/chatbot"
	"github.com/Arhamsiaf65/CityInsights/internal/domain"
	"github.com/Arhamsiaf65/CityInsights/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "handlers-test-secret-0123"

// fakeStore implements the handlers' store with in-memory maps. Methods not
// overridden panic through the nil embedded interface.
type fakeStore struct {
	handlers.Store

	mu          sync.Mutex
	usersByMail map[string]*domain.User
	posts       map[uuid.UUID]*domain.Post
	lastFilter  domain.PostFilter
	roleChanges map[uuid.UUID]domain.Role
	deleted     []uuid.UUID
	embedURL    string

	comments        map[uuid.UUID]*domain.Comment
	deletedComments []uuid.UUID
	ads             []domain.Ad
	applicants      map[uuid.UUID]bool
	applications    map[uuid.UUID]*domain.PublisherApplication
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		usersByMail: map[string]*domain.User{},
		posts:       map[uuid.UUID]*domain.Post{},
		roleChanges: map[uuid.UUID]domain.Role{},

		comments:     map[uuid.UUID]*domain.Comment{},
		applicants:   map[uuid.UUID]bool{},
		applications: map[uuid.UUID]*domain.PublisherApplication{},
	}
}

func (f *fakeStore) CreateUser(_ context.Context, name, email, hash string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.usersByMail[email]; exists {
		return nil, domain.ErrAlreadyExists
	}
	u := &domain.User{ID: uuid.New(), Name: name, Email: email, PasswordHash: hash, Role: domain.RoleUser}
	f.usersByMail[email] = u
	return u, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.usersByMail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) UpdateUserRole(_ context.Context, id uuid.UUID, role domain.Role) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roleChanges[id] = role
	return &domain.User{ID: id, Role: role}, nil
}

func (f *fakeStore) ListPosts(_ context.Context, filter domain.PostFilter) ([]domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	return []domain.Post{}, nil
}

func (f *fakeStore) GetPost(_ context.Context, id uuid.UUID) (*domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) DeletePost(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeStore) CreateLiveStream(_ context.Context, req *domain.LiveStreamRequest, embedURL string) (*domain.LiveStream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embedURL = embedURL
	return &domain.LiveStream{ID: uuid.New(), Title: req.Title, EmbedURL: embedURL}, nil
}

func (f *fakeStore) GetComment(_ context.Context, id uuid.UUID) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cm, ok := f.comments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cm, nil
}

func (f *fakeStore) UpdateComment(_ context.Context, id uuid.UUID, content string) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cm, ok := f.comments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	updated := *cm
	updated.Content = content
	f.comments[id] = &updated
	return &updated, nil
}

func (f *fakeStore) DeleteComment(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedComments = append(f.deletedComments, id)
	delete(f.comments, id)
	return nil
}

func (f *fakeStore) CreateAd(_ context.Context, createdBy uuid.UUID, req *domain.AdRequest) (*domain.Ad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ad := domain.Ad{
		ID:           uuid.New(),
		BusinessName: req.BusinessName,
		Title:        req.Title,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		CreatedBy:    createdBy,
		Status:       domain.StatusPending,
	}
	f.ads = append(f.ads, ad)
	return &ad, nil
}

func (f *fakeStore) UpdateAdStatus(_ context.Context, id uuid.UUID, status domain.ReviewStatus) (*domain.Ad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.ads {
		if f.ads[i].ID == id {
			f.ads[i].Status = status
			ad := f.ads[i]
			return &ad, nil
		}
	}
	return nil, domain.ErrNotFound
}

// CreateApplication allows one application per user, like the unique
// user_id column.
func (f *fakeStore) CreateApplication(_ context.Context, userID uuid.UUID, req *domain.ApplicationRequest) (*domain.PublisherApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applicants[userID] {
		return nil, domain.ErrAlreadyExists
	}
	f.applicants[userID] = true
	app := &domain.PublisherApplication{
		ID:        uuid.New(),
		UserID:    userID,
		CNICFront: req.CNICFront,
		CNICBack:  req.CNICBack,
		FacePhoto: req.FacePhoto,
		Status:    domain.StatusPending,
	}
	f.applications[app.ID] = app
	return app, nil
}

// ReviewApplication promotes approved applicants to publisher.
func (f *fakeStore) ReviewApplication(_ context.Context, id uuid.UUID, req *domain.ReviewRequest) (*domain.PublisherApplication, error) {
	if !req.Status.Decided() {
		return nil, domain.ErrInvalidStatus
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.applications[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	app.Status = req.Status
	app.AdminNote = req.AdminNote
	if req.Status == domain.StatusApproved {
		f.roleChanges[app.UserID] = domain.RolePublisher
	}
	return app, nil
}

// fakeReplier records chat requests.
type fakeReplier struct {
	mu       sync.Mutex
	reply    chatbot.Reply
	err      error
	requests []chatbot.Request
}

func (f *fakeReplier) Reply(_ context.Context, req chatbot.Request) (chatbot.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return chatbot.Reply{Text: chatbot.ApologyText, Intent: chatbot.IntentError}, f.err
	}
	return f.reply, nil
}

type testServer struct {
	router *gin.Engine
	tokens *infrajwt.Manager
}

func newTestServer(t *testing.T, store handlers.Store, replier handlers.Replier, sessions handlers.Sessions) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := infrajwt.NewManager(testSecret, time.Hour)
	h := handlers.New(store, replier, sessions, tokens, logger.NewNop())

	r := gin.New()
	r.POST("/chat", infrajwt.OptionalMiddleware(tokens), h.Chat)
	r.DELETE("/chat/sessions/:id", h.ClearChatSession)
	r.POST("/users/register", h.Register)
	r.POST("/users/login", h.Login)
	r.GET("/posts", h.ListPosts)

	auth := r.Group("", infrajwt.Middleware(tokens))
	auth.DELETE("/posts/:id", h.DeletePost)
	auth.PATCH("/admin/users/:id/role", infrajwt.RequireRole("admin"), h.UpdateUserRole)
	auth.POST("/livestreams", infrajwt.RequireRole("admin"), h.CreateLiveStream)
	auth.PATCH("/comments/:id", h.UpdateComment)
	auth.DELETE("/comments/:id", h.DeleteComment)
	auth.POST("/ads", h.CreateAd)
	auth.PATCH("/admin/ads/:id", infrajwt.RequireRole("admin"), h.ReviewAd)
	auth.POST("/applications", h.Apply)
	auth.PATCH("/admin/applications/:id", infrajwt.RequireRole("admin"), h.ReviewApplication)

	return &testServer{router: r, tokens: tokens}
}

func (s *testServer) token(t *testing.T, id uuid.UUID, role domain.Role) string {
	t.Helper()
	tok, err := s.tokens.GenerateToken(id.String(), string(role))
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, code int) {
	t.Helper()
	require.Equal(t, code, w.Code, w.Body.String())
}
