package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernandomartin18/UbicAir/backend"
	"github.com/fernandomartin18/UbicAir/session"
)

func setupAuthBackend(t *testing.T, handler http.HandlerFunc) *session.Store {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	s, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	Init(backend.NewClient(
		backend.WithBaseURL(server.URL),
		backend.WithTokenSource(s),
	), s)
	return s
}

func TestLoginStoresSession(t *testing.T) {
	s := setupAuthBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"token":"tok-9","userId":"user-9"}}`))
	})

	body := `{"email":"ana@example.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handleLogin(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, s.Authenticated())
	assert.Equal(t, "tok-9", s.Token())
}

func TestLoginFailureLeavesSessionEmpty(t *testing.T) {
	s := setupAuthBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"Invalid credentials"}`))
	})

	body := `{"email":"ana@example.com","password":"wrongpw"}`
	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handleLogin(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
	assert.False(t, s.Authenticated())
}

func TestLoginValidationShortCircuitsBackend(t *testing.T) {
	called := false
	setupAuthBackend(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	body := `{"email":"not-an-email","password":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handleLogin(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "email")
	assert.Contains(t, resp.Errors, "password")
}

func TestRegisterStoresSession(t *testing.T) {
	s := setupAuthBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/register", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"token":"tok-2","userId":"user-2"}}`))
	})

	body := `{"nombre":"Ana","email":"ana@example.com","password":"secret1","confirmPassword":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handleRegister(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, s.Authenticated())
}

func TestLogoutClearsSession(t *testing.T) {
	s := setupAuthBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	})
	require.NoError(t, s.Set("tok-3", "user-3"))

	req := httptest.NewRequest(http.MethodPost, "/users/logout", nil)
	rec := httptest.NewRecorder()
	handleLogout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, s.Authenticated())
}

func TestProfileRequiresSession(t *testing.T) {
	setupAuthBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("backend must not be called without a session")
	})

	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	rec := httptest.NewRecorder()
	handleProfile(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileUpdateSendsOnlyChanges(t *testing.T) {
	var gotUpdate map[string]interface{}
	s := setupAuthBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"success":true,"data":{"nombre":"Ana","email":"ana@example.com"}}`))
		case http.MethodPut:
			json.NewDecoder(r.Body).Decode(&gotUpdate)
			w.Write([]byte(`{"success":true}`))
		}
	})
	require.NoError(t, s.Set("tok-4", "user-4"))

	body := `{"nombre":"Ana María","email":"ana@example.com","password":"","foto":""}`
	req := httptest.NewRequest(http.MethodPost, "/users/profile", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handleProfile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"nombre": "Ana María"}, gotUpdate)
}
