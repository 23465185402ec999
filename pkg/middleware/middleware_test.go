package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cowork-booking/internal/data/entity"
	"cowork-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

// whoami echoes the resolved user id, or "anonymous".
var whoami = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		w.Write([]byte(id.String()))
		return
	}
	w.Write([]byte("anonymous"))
})

func TestSession(t *testing.T) {
	token := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name   string
		header string
		setup  func(m *mockSessionRepository)
		code   int
		body   string
	}{
		{
			name:   "valid session",
			header: "Bearer " + token.String(),
			setup: func(m *mockSessionRepository) {
				m.On("FindValidSession", mock.Anything, token).Return(&entity.Session{UserID: userID}, nil)
			},
			code: http.StatusOK,
			body: userID.String(),
		},
		{
			name:   "expired session",
			header: "bearer " + token.String(),
			setup: func(m *mockSessionRepository) {
				m.On("FindValidSession", mock.Anything, token).Return(nil, nil)
			},
			code: http.StatusOK,
			body: "anonymous",
		},
		{
			name:   "no header",
			header: "",
			setup:  func(*mockSessionRepository) {},
			code:   http.StatusOK,
			body:   "anonymous",
		},
		{
			name:   "malformed token",
			header: "Bearer not-a-token",
			setup:  func(*mockSessionRepository) {},
			code:   http.StatusOK,
			body:   "anonymous",
		},
		{
			name:   "lookup fails",
			header: "Bearer " + token.String(),
			setup: func(m *mockSessionRepository) {
				m.On("FindValidSession", mock.Anything, token).Return(nil, errors.New("db down"))
			},
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockSessionRepository{}
			tt.setup(repo)

			req := httptest.NewRequest(http.MethodPost, "/api/wizards/x/confirm", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			Session(repo, zap.NewNop())(whoami).ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestRecover(t *testing.T) {
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	Recover(zap.NewNop())(panicky).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := RateLimit(1, 2, zap.NewNop())(ok)

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/wizards", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5002"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:5000"), "limits are per client")
}

func TestRateLimit_Disabled(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := RateLimit(0, 0, zap.NewNop())(ok)

	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
