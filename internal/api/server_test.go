// Copyright (c) 2026 marsAI. All rights reserved.

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marsai/festival/internal/admin"
	"github.com/marsai/festival/internal/api"
	"github.com/marsai/festival/internal/event"
	"github.com/marsai/festival/internal/festival"
	"github.com/marsai/festival/internal/gallery"
	"github.com/marsai/festival/internal/jury"
	"github.com/marsai/festival/internal/platform/config"
	"github.com/marsai/festival/internal/platform/sec"
	"github.com/marsai/festival/internal/reference"
	"github.com/marsai/festival/internal/submission"
	"github.com/marsai/festival/internal/users/account"
	"github.com/marsai/festival/internal/users/auth"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// roleVerifier accepts tokens named after a role.
type roleVerifier struct{}

func (roleVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	switch sec.UserRole(token) {
	case sec.RoleVisitor, sec.RoleJury, sec.RoleAdmin, sec.RoleSuperAdmin:
		return &sec.AuthClaims{UserID: "user-" + token, Username: token, Role: token}, nil
	}
	return nil, errors.New("unknown token")
}

func newServer(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	liveness, readiness := api.NewHealthHandlers(deps, discard)
	cfg := &config.Config{ServerPort: "0", Environment: "test", DefaultLocale: "fr"}

	// Services are never reached by the routes exercised here.
	server := api.NewServer(ctx, cfg, discard, roleVerifier{}, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(nil, false),
		Account:    account.NewHandler(nil),
		Festival:   festival.NewHandler(nil),
		Submission: submission.NewHandler(nil),
		Gallery:    gallery.NewHandler(nil),
		Jury:       jury.NewHandler(nil),
		Admin:      admin.NewHandler(nil),
		Event:      event.NewHandler(nil),
		Reference:  reference.NewHandler(),
	})
	return server.Handler()
}

func TestHealth(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, recorder.Body.String())
}

func TestReady(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		deps       api.HealthDependencies
		wantStatus int
		wantBody   string
	}{
		{
			name:       "all healthy",
			deps:       api.HealthDependencies{CheckDatabase: ok, CheckCache: ok, CheckStorage: ok},
			wantStatus: http.StatusOK,
			wantBody:   "ready",
		},
		{
			name:       "cache down",
			deps:       api.HealthDependencies{CheckDatabase: ok, CheckCache: down, CheckStorage: ok},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newServer(t, tt.deps)

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			require.Equal(t, tt.wantStatus, recorder.Code)

			var body struct {
				Data struct {
					Status string `json:"status"`
					Checks []struct {
						Name string `json:"name"`
						OK   bool   `json:"ok"`
					} `json:"checks"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Data.Status)
			assert.Len(t, body.Data.Checks, 3)
		})
	}
}

func TestRoutes_RoleGuards(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{"jury workspace anonymous", http.MethodGet, "/api/v1/jury/films", "", http.StatusUnauthorized},
		{"jury workspace visitor", http.MethodGet, "/api/v1/jury/films", "visitor", http.StatusForbidden},
		{"dashboard jury", http.MethodGet, "/api/v1/admin/stats", "jury", http.StatusForbidden},
		{"staff accounts jury", http.MethodGet, "/api/v1/admin/accounts", "jury", http.StatusForbidden},
		{"festival cms admin", http.MethodGet, "/api/v1/admin/festivals", "admin", http.StatusForbidden},
		{"festival cms anonymous", http.MethodPost, "/api/v1/admin/festivals", "", http.StatusUnauthorized},
		{"account anonymous", http.MethodGet, "/api/v1/account/me/sessions", "", http.StatusUnauthorized},
		{"invalid token", http.MethodGet, "/api/v1/reference", "forged", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				request.Header.Set("Authorization", "Bearer "+tt.token)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestRoutes_Reference(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/reference/countries?lang=en", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []reference.Option `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data)
	assert.Equal(t, reference.Option{Value: "FR", Label: "France"}, body.Data[0])
}
