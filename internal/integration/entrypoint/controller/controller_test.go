package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/application/usecase/transaction"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
	"github.com/ecooy/backend/internal/integration/entrypoint/dto"
)

type chanSubscription struct {
	events chan *entity.ChangeEvent
}

func (s *chanSubscription) Events() <-chan *entity.ChangeEvent { return s.events }
func (s *chanSubscription) Close() error                       { return nil }

type chanSubscriber struct {
	sub *chanSubscription
}

func (f *chanSubscriber) Subscribe(context.Context, entity.Collection, uuid.UUID) (adapter.Subscription, error) {
	return f.sub, nil
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestStreamSnapshots_EndsAfterSignOut(t *testing.T) {
	sub := &chanSubscription{events: make(chan *entity.ChangeEvent, 1)}
	subscriber := &chanSubscriber{sub: sub}
	userID := uuid.New()

	var signedOut atomic.Bool
	r := gin.New()
	r.GET("/stream", func(c *gin.Context) {
		handle, err := livequery.Open(c.Request.Context(), subscriber, livequery.Query[*entity.Session]{
			Collection: entity.CollectionSessions,
			OwnerID:    userID,
			Load: func(context.Context, *entity.ChangeEvent) (*entity.Session, error) {
				if signedOut.Load() {
					return nil, nil
				}
				return &entity.Session{UserID: userID, Email: "ana@example.com", DisplayName: "Ana"}, nil
			},
		})
		require.NoError(t, err)

		streamSnapshots(c, handle, time.Hour,
			func(s *entity.Session) dto.SessionResponse { return dto.SessionResponse{Session: s} },
			func(s *entity.Session) bool { return s == nil },
		)
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	go func() {
		time.Sleep(100 * time.Millisecond)
		signedOut.Store(true)
		sub.events <- entity.NewChangeEvent(entity.CollectionSessions, entity.OperationDeleted, userID.String(), userID)
	}()

	resp, err := http.Get(srv.URL + "/stream")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(string(body), "event:snapshot"))
	assert.Contains(t, string(body), `"display_name":"Ana"`)
	assert.Contains(t, string(body), `{"session":null}`)
}

func TestLedgerController(t *testing.T) {
	c := NewLedgerController(transaction.NewSummarizeRecordsUseCase())
	r := gin.New()
	r.GET("/money/format", c.Format)
	r.GET("/money/parse", c.Parse)
	r.POST("/ledger/summary", c.Summarize)

	t.Run("format", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/money/format?digits=123456", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"display":"1.234,56"}`, w.Body.String())
	})

	t.Run("parse", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/money/parse?display=1.234%2C56", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"amount":1234.56}`, w.Body.String())
	})

	t.Run("summary", func(t *testing.T) {
		body := `[{"amount":100,"type":"income"},{"amount":"40","type":"expense"}]`
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ledger/summary", strings.NewReader(body)))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"balance":"60.00","income":"100.00","expenses":"40.00"}`, w.Body.String())
	})

	t.Run("summary counts malformed kinds as expenses", func(t *testing.T) {
		body := `[{"amount":100,"type":"income"},{"amount":30,"type":5},{"amount":10,"type":true},{"amount":5,"type":{"k":"income"}},{"amount":1,"type":null},7]`
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ledger/summary", strings.NewReader(body)))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"balance":"54.00","income":"100.00","expenses":"46.00"}`, w.Body.String())
	})

	t.Run("summary rejects non array", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ledger/summary", strings.NewReader(`{"amount":1}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthController(t *testing.T) {
	up := func(context.Context) bool { return true }
	down := func(context.Context) bool { return false }

	tests := []struct {
		name     string
		db       HealthChecker
		redis    HealthChecker
		status   string
		database string
		redisStr string
	}{
		{"all up", up, up, "ok", "connected", "connected"},
		{"redis down", up, down, "ok", "connected", "disconnected"},
		{"db down", down, up, "degraded", "disconnected", "connected"},
		{"no checkers", nil, nil, "degraded", "disconnected", "disconnected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", NewHealthController(tt.db, tt.redis).Check)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.database, resp.Database)
			assert.Equal(t, tt.redisStr, resp.Redis)
		})
	}
}

func TestHandleCommonError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "subscription unavailable",
			err:    domainerror.NewAuthError(domainerror.ErrCodeSubscriptionUnavailable, "unavailable", errors.New("redis down")),
			status: http.StatusServiceUnavailable,
			code:   "AUTH-060001",
		},
		{
			name:   "malformed document",
			err:    domainerror.NewMalformedDocumentError("profiles", "1", "salary day 40"),
			status: http.StatusInternalServerError,
			code:   "DOC-010001",
		},
		{
			name:   "unknown",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			handleCommonError(ctx, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.NotContains(t, resp.Error, "boom")
		})
	}
}

func TestStatusCodeMappings(t *testing.T) {
	assert.Equal(t, http.StatusConflict, getStatusCodeForAuthError(domainerror.ErrCodeEmailExists))
	assert.Equal(t, http.StatusUnauthorized, getStatusCodeForAuthError(domainerror.ErrCodeInvalidIdentityToken))
	assert.Equal(t, http.StatusServiceUnavailable, getStatusCodeForAuthError(domainerror.ErrCodeFederatedNotAvailable))
	assert.Equal(t, http.StatusBadRequest, getStatusCodeForTransactionError(domainerror.ErrCodeInvalidTransactionType))
	assert.Equal(t, http.StatusForbidden, getStatusCodeForTransactionError(domainerror.ErrCodeNotAuthorizedTransaction))
	assert.Equal(t, http.StatusNotFound, getStatusCodeForGoalError(domainerror.ErrCodeGoalNotFound))
	assert.Equal(t, http.StatusBadRequest, getStatusCodeForProfileError(domainerror.ErrCodeInvalidSalaryDay))
}
