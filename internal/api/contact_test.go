package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"vsol_site/internal/middleware"
	"vsol_site/internal/model"
	"vsol_site/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memContactRepo is an in-memory stand-in for the SQLite store.
type memContactRepo struct {
	mu          sync.Mutex
	submissions []*model.ContactSubmission
}

func (m *memContactRepo) CreateContactSubmission(ctx context.Context, submission *model.ContactSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	submission.ID = int64(len(m.submissions) + 1)
	m.submissions = append(m.submissions, submission)
	return nil
}

func (m *memContactRepo) GetContactSubmissions(ctx context.Context) ([]*model.ContactSubmission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.ContactSubmission, len(m.submissions))
	copy(out, m.submissions)
	return out, nil
}

func (m *memContactRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.submissions)
}

func newContactRouter(t *testing.T, repo service.ContactRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	NewContactRoutes(router.Group("/api"), service.NewContactService(repo), middleware.AdminKey("test-key"))
	return router
}

func postContact(router *gin.Engine, body map[string]string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateContact(t *testing.T) {
	valid := func() map[string]string {
		return map[string]string{
			"name":    "Jane Doe",
			"email":   "jane@example.com",
			"subject": "Project inquiry",
			"message": "We'd like to talk about a spreadsheet migration.",
		}
	}

	tests := []struct {
		name     string
		mutate   func(map[string]string)
		wantCode int
	}{
		{
			name:     "valid submission",
			mutate:   func(body map[string]string) {},
			wantCode: http.StatusCreated,
		},
		{
			name:     "missing name",
			mutate:   func(body map[string]string) { body["name"] = " " },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing email",
			mutate:   func(body map[string]string) { delete(body, "email") },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid email",
			mutate:   func(body map[string]string) { body["email"] = "not-an-email" },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing message",
			mutate:   func(body map[string]string) { delete(body, "message") },
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memContactRepo{}
			router := newContactRouter(t, repo)

			body := valid()
			tt.mutate(body)

			w := postContact(router, body)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode != http.StatusCreated {
				assert.Equal(t, 0, repo.count(), "rejected submissions must not be persisted")
				return
			}

			var resp struct {
				Success bool `json:"success"`
				Data    struct {
					Status string `json:"status"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, resp.Success)
			assert.Equal(t, "new", resp.Data.Status)
			assert.Equal(t, 1, repo.count())
		})
	}
}

func TestListContact_AdminGuard(t *testing.T) {
	router := newContactRouter(t, &memContactRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	req.Header.Set("X-Admin-Key", "test-key")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
