package handlers

import (
	"net/http"
	"strings"

	"platerental/auth"
	"platerental/models"
	"platerental/repository"
)

type UserHandler struct {
	Repo     repository.UserRepository
	Verifier auth.CredentialVerifier
}

// Signup handler
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var user models.AppUser
	if !decodeJSON(w, r, &user) {
		return
	}
	user.Username = strings.TrimSpace(user.Username)
	if user.Name == "" || user.Username == "" || user.Role == "" || user.Password == "" {
		writeFail(w, http.StatusBadRequest, "Name, username, role and password are required")
		return
	}

	if err := h.Repo.CreateUser(r.Context(), &user); err != nil {
		writeError(w, err)
		return
	}

	user.Password = "" // hide password hash
	writeOK(w, http.StatusCreated, "User signed up successfully", user)
}

// Login handler
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &creds) {
		return
	}

	user, err := h.Verifier.Verify(r.Context(), strings.TrimSpace(creds.Username), creds.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, http.StatusOK, "Login successful", user)
}
