package users

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/fernandomartin18/UbicAir/backend"
	"github.com/fernandomartin18/UbicAir/events"
	"github.com/fernandomartin18/UbicAir/favorites"
	"github.com/fernandomartin18/UbicAir/session"
)

var (
	client *backend.Client
	store  *session.Store
)

func Init(c *backend.Client, s *session.Store) {
	client = c
	store = s
}

func SetupHandlers() {
	http.HandleFunc("/users/register", handleRegister)
	http.HandleFunc("/users/login", handleLogin)
	http.HandleFunc("/users/logout", handleLogout)
	http.HandleFunc("/users/profile", handleProfile)
	http.HandleFunc("/users/session", handleSession)
}

type registerRequest struct {
	Name            string `json:"nombre"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Photo    string `json:"foto"`
}

func handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "invalid request body",
		})
		return
	}

	if errs := ValidateRegistration(req.Name, req.Email, req.Password, req.ConfirmPassword); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"errors":  errs,
		})
		return
	}

	auth, err := client.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeBackendError(w, err)
		return
	}

	if err := store.Set(auth.Token, auth.UserID); err != nil {
		log.Printf("Failed to persist session after registration: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "failed to store session",
		})
		return
	}

	events.LogEvent(events.Event{Type: events.TypeRegister, Source: "users", Detail: req.Email, Timestamp: time.Now()})
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "invalid request body",
		})
		return
	}

	if errs := ValidateLogin(req.Email, req.Password); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"errors":  errs,
		})
		return
	}

	auth, err := client.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeBackendError(w, err)
		return
	}

	if err := store.Set(auth.Token, auth.UserID); err != nil {
		log.Printf("Failed to persist session after login: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "failed to store session",
		})
		return
	}

	events.LogEvent(events.Event{Type: events.TypeLogin, Source: "users", Detail: req.Email, Timestamp: time.Now()})
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := store.UserID()
	if err := store.Clear(); err != nil {
		log.Printf("Failed to clear session: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "failed to clear session",
		})
		return
	}
	favorites.Reset()

	events.LogEvent(events.Event{Type: events.TypeLogout, Source: "users", Detail: userID, Timestamp: time.Now()})
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		handleProfileGet(w, r)
	case http.MethodPost:
		handleProfileUpdate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func handleProfileGet(w http.ResponseWriter, r *http.Request) {
	if !store.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"error":   "not signed in",
		})
		return
	}

	user, err := client.GetUser(r.Context())
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    user,
	})
}

func handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	if !store.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"error":   "not signed in",
		})
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "invalid request body",
		})
		return
	}

	if req.Email != "" && !emailPattern.MatchString(req.Email) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"errors":  map[string]string{"email": "El email no es válido"},
		})
		return
	}
	if req.Password != "" && len(req.Password) < minPasswordLength {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"errors":  map[string]string{"password": "La contraseña debe tener al menos 6 caracteres"},
		})
		return
	}
	if err := ValidatePhoto(req.Photo); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"errors":  map[string]string{"foto": err.Error()},
		})
		return
	}

	current, err := client.GetUser(r.Context())
	if err != nil {
		writeBackendError(w, err)
		return
	}

	update := DiffProfile(current, req.Name, req.Email, req.Password, req.Photo)
	if IsEmptyUpdate(update) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"changed": false,
		})
		return
	}

	if err := client.UpdateUser(r.Context(), update); err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"changed": true,
	})
}

func handleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": store.Authenticated(),
		"userId":        store.UserID(),
	})
}

// writeBackendError forwards a backend rejection using the server's own
// status and message, so "Invalid credentials" reaches the browser intact.
func writeBackendError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	if apiErr, ok := err.(*backend.APIError); ok && apiErr.Status >= 400 {
		status = apiErr.Status
	}
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
