package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"vsol_site/internal/middleware"
	"vsol_site/internal/model"
	"vsol_site/internal/service"
	"vsol_site/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memReferralRepo is an in-memory stand-in for the SQLite store.
type memReferralRepo struct {
	mu        sync.Mutex
	referrals []*model.Referral
}

func (m *memReferralRepo) CreateReferral(ctx context.Context, referral *model.Referral) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	referral.ID = int64(len(m.referrals) + 1)
	m.referrals = append(m.referrals, referral)
	return nil
}

func (m *memReferralRepo) GetReferrals(ctx context.Context) ([]*model.Referral, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Referral, len(m.referrals))
	copy(out, m.referrals)
	return out, nil
}

func (m *memReferralRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.referrals)
}

// stubNotifier records attempts without sending anything.
type stubNotifier struct {
	mu       sync.Mutex
	attempts int
	notified chan struct{}
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{notified: make(chan struct{}, 16)}
}

func (n *stubNotifier) NotifyAdmin(ctx context.Context, referral *model.Referral) bool {
	n.mu.Lock()
	n.attempts++
	n.mu.Unlock()
	n.notified <- struct{}{}
	return false
}

func (n *stubNotifier) NotifyReferrer(ctx context.Context, referral *model.Referral) bool {
	return false
}

func (n *stubNotifier) attemptCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.attempts
}

func newReferralRouter(t *testing.T, limiter service.Limiter, repo service.ReferralRepository, notifier service.Notifier) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	rs := service.NewReferralService(repo, limiter, notifier)
	NewReferralRoutes(router.Group("/api"), rs, middleware.AdminKey("test-key"))
	return router
}

func submitReferral(router *gin.Engine, body map[string]string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/referral/submit", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "9.9.9.9:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validBody() map[string]string {
	return map[string]string{
		"referrerFirstName": "Jane",
		"referrerLastName":  "Doe",
		"linkedinUrl":       "https://linkedin.com/in/janedoe",
		"email":             "jane@example.com",
	}
}

func TestSubmitReferral_Success(t *testing.T) {
	repo := &memReferralRepo{}
	notifier := newStubNotifier()
	limiter := ratelimit.New(15*time.Minute, 5)
	defer limiter.Stop()

	router := newReferralRouter(t, limiter, repo, notifier)

	w := submitReferral(router, validBody())

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Message)

	assert.Equal(t, 1, repo.count(), "exactly one referral should be persisted")

	select {
	case <-notifier.notified:
	case <-time.After(time.Second):
		t.Fatal("expected one notification attempt")
	}
	assert.Equal(t, 1, notifier.attemptCount())
}

func TestSubmitReferral_Honeypot(t *testing.T) {
	repo := &memReferralRepo{}
	limiter := ratelimit.New(15*time.Minute, 5)
	defer limiter.Stop()

	router := newReferralRouter(t, limiter, repo, newStubNotifier())

	body := validBody()
	body["website"] = "https://bot.example.com"

	w := submitReferral(router, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid submission")
	assert.NotContains(t, w.Body.String(), "honeypot", "detection mechanism must not leak")
	assert.Equal(t, 0, repo.count(), "bot submissions are never persisted")
}

func TestSubmitReferral_ValidationError(t *testing.T) {
	repo := &memReferralRepo{}
	limiter := ratelimit.New(15*time.Minute, 5)
	defer limiter.Stop()

	router := newReferralRouter(t, limiter, repo, newStubNotifier())

	body := validBody()
	body["email"] = "not-an-email"

	w := submitReferral(router, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email address")
	assert.Equal(t, 0, repo.count())
}

func TestSubmitReferral_RateLimitSequence(t *testing.T) {
	repo := &memReferralRepo{}
	limiter := ratelimit.New(15*time.Minute, 5)
	defer limiter.Stop()

	router := newReferralRouter(t, limiter, repo, newStubNotifier())

	for i := 0; i < 5; i++ {
		w := submitReferral(router, validBody())
		assert.Equal(t, http.StatusCreated, w.Code, "submission %d should be accepted", i+1)
	}

	for i := 0; i < 2; i++ {
		w := submitReferral(router, validBody())
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "Too many referral submissions")
	}

	assert.Equal(t, 5, repo.count())
}

func TestListReferrals_AdminGuard(t *testing.T) {
	repo := &memReferralRepo{}
	limiter := ratelimit.New(15*time.Minute, 5)
	defer limiter.Stop()

	router := newReferralRouter(t, limiter, repo, newStubNotifier())

	req := httptest.NewRequest(http.MethodGet, "/api/referrals", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "missing admin key must be rejected")

	req = httptest.NewRequest(http.MethodGet, "/api/referrals", nil)
	req.Header.Set("X-Admin-Key", "wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/referrals", nil)
	req.Header.Set("X-Admin-Key", "test-key")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
