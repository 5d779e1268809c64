package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/Arhamsiaf65/CityInsights/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adBody(start, end time.Time) map[string]any {
	return map[string]any{
		"businessName": "Sahiwal Sweets",
		"title":        "Eid discount",
		"description":  "20% off all week",
		"address":      "Main Bazaar",
		"startDate":    start,
		"endDate":      end,
	}
}

func TestCreateAd(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	srv := newTestServer(t, store, &fakeReplier{}, nil)
	userID := uuid.New()
	tok := srv.token(t, userID, domain.RoleUser)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	w := srv.do(t, http.MethodPost, "/ads", tok, adBody(start, start.Add(7*24*time.Hour)))
	expectStatus(t, w, http.StatusCreated)
	assert.Equal(t, string(domain.StatusPending), decode(t, w)["status"])
	require.Len(t, store.ads, 1)
	assert.Equal(t, userID, store.ads[0].CreatedBy)

	w = srv.do(t, http.MethodPost, "/ads", tok, adBody(start, start))
	expectStatus(t, w, http.StatusBadRequest)
	assert.Len(t, store.ads, 1)

	expectStatus(t, srv.do(t, http.MethodPost, "/ads", "", adBody(start, start.Add(time.Hour))), http.StatusUnauthorized)
}

func TestReviewAd(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	adID := uuid.New()
	store.ads = []domain.Ad{{ID: adID, Status: domain.StatusPending}}
	srv := newTestServer(t, store, &fakeReplier{}, nil)
	admin := srv.token(t, uuid.New(), domain.RoleAdmin)
	path := "/admin/ads/" + adID.String()

	expectStatus(t, srv.do(t, http.MethodPatch, path, srv.token(t, uuid.New(), domain.RoleUser),
		map[string]string{"status": "approved"}), http.StatusForbidden)

	expectStatus(t, srv.do(t, http.MethodPatch, path, admin, map[string]string{"status": "pending"}), http.StatusBadRequest)
	assert.Equal(t, domain.StatusPending, store.ads[0].Status)

	w := srv.do(t, http.MethodPatch, path, admin, map[string]string{"status": "approved"})
	expectStatus(t, w, http.StatusOK)
	assert.Equal(t, domain.StatusApproved, store.ads[0].Status)

	expectStatus(t, srv.do(t, http.MethodPatch, "/admin/ads/"+uuid.NewString(), admin,
		map[string]string{"status": "rejected"}), http.StatusNotFound)
}

func TestPublisherApplication(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	srv := newTestServer(t, store, &fakeReplier{}, nil)
	applicantID := uuid.New()
	applicant := srv.token(t, applicantID, domain.RoleUser)
	admin := srv.token(t, uuid.New(), domain.RoleAdmin)
	docs := map[string]string{
		"cnicFront": "https://img.example/front.jpg",
		"cnicBack":  "https://img.example/back.jpg",
		"facePhoto": "https://img.example/face.jpg",
	}

	w := srv.do(t, http.MethodPost, "/applications", applicant, docs)
	expectStatus(t, w, http.StatusCreated)
	appID, ok := decode(t, w)["id"].(string)
	require.True(t, ok)

	expectStatus(t, srv.do(t, http.MethodPost, "/applications", applicant, docs), http.StatusConflict)
	expectStatus(t, srv.do(t, http.MethodPost, "/applications", srv.token(t, uuid.New(), domain.RoleUser),
		map[string]string{"cnicFront": "not a url"}), http.StatusBadRequest)

	path := "/admin/applications/" + appID
	expectStatus(t, srv.do(t, http.MethodPatch, path, applicant, map[string]string{"status": "approved"}), http.StatusForbidden)
	expectStatus(t, srv.do(t, http.MethodPatch, path, admin, map[string]string{"status": "pending"}), http.StatusBadRequest)
	assert.Empty(t, store.roleChanges)

	w = srv.do(t, http.MethodPatch, path, admin, map[string]string{"status": "approved"})
	expectStatus(t, w, http.StatusOK)
	assert.Equal(t, string(domain.StatusApproved), decode(t, w)["status"])
	assert.Equal(t, domain.RolePublisher, store.roleChanges[applicantID])
}
