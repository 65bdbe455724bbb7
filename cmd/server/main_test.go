package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/inamate/vecdraw/internal/auth"
	"github.com/inamate/vecdraw/internal/collab"
	"github.com/inamate/vecdraw/internal/config"
	"github.com/inamate/vecdraw/internal/store"
	"github.com/inamate/vecdraw/internal/typeid"
)

func newTestRouter(t *testing.T) (http.Handler, *auth.Service) {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	scenes, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	authService := auth.NewService("test-secret")
	hub := collab.NewHub(collab.Options{Store: scenes})
	t.Cleanup(hub.Stop)
	return newRouter(cfg, scenes, authService, hub), authService
}

func TestRoutes(t *testing.T) {
	router, authService := newTestRouter(t)
	token, err := authService.IssueToken("dana", auth.AnySession, 0)
	if err != nil {
		t.Fatal(err)
	}
	scene := `[{"name":"Line","content":"","points":[{"x":0,"y":0},{"x":10,"y":10}],"polyPoints":0,` +
		`"midPoint":{"x":5,"y":5},"referencePoint":{"x":0,"y":0},"rotation":0,"radius":0,` +
		`"color":{"r":1,"g":1,"b":1,"a":1},"width":2}]`

	tests := []struct {
		name   string
		method string
		target string
		body   string
		token  string
		want   int
	}{
		{"health", http.MethodGet, "/health", "", "", http.StatusOK},
		{"list", http.MethodGet, "/api/scenes", "", "", http.StatusOK},
		{"put without token", http.MethodPut, "/api/scenes/first", scene, "", http.StatusUnauthorized},
		{"put", http.MethodPut, "/api/scenes/first", scene, token, http.StatusNoContent},
		{"get", http.MethodGet, "/api/scenes/first", "", "", http.StatusOK},
		{"png", http.MethodGet, "/api/scenes/first/png?width=32&height=32", "", "", http.StatusOK},
		{"missing png", http.MethodGet, "/api/scenes/nothing/png", "", "", http.StatusNotFound},
		{"delete without token", http.MethodDelete, "/api/scenes/first", "", "", http.StatusUnauthorized},
		{"delete", http.MethodDelete, "/api/scenes/first", "", token, http.StatusNoContent},
		{"bad session id", http.MethodGet, "/ws/session/lobby", "", "", http.StatusBadRequest},
		{"session without token", http.MethodGet, "/ws/session/" + typeid.NewSessionID(), "", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("%s %s = %d, want %d (%s)", tt.method, tt.target, rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}
