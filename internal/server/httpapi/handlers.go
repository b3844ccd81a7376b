package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/saschasalles/LabPlatformAPI/internal/server/services"
)

const minPasswordLength = 8

type signupRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	UseBiometrics bool   `json:"useBiometrics"`
}

func (r signupRequest) validate() string {
	if !strings.Contains(r.Email, "@") {
		return "invalid email"
	}
	if len(r.Password) < minPasswordLength {
		return "password too short"
	}
	return ""
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// newSession is the wire shape of a fresh session: the opaque token value
// plus the public view of its owner.
type newSession struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	session, err := s.accounts.Signup(r.Context(), services.SignupRequest{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Password:      req.Password,
		UseBiometrics: req.UseBiometrics,
	})
	if err != nil {
		s.logger.Warn(r.Context(), "signup failed", "error", err.Error())
		respondDomainError(w, err)
		return
	}

	s.logger.Info(r.Context(), "user signed up", "id", session.User.ID)
	respondJSON(w, http.StatusCreated, newSession{Token: session.Token.Value, User: session.User})
}

func (s *Server) handleAdminSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	session, err := s.accounts.BootstrapAdmin(r.Context(), services.SignupRequest{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Password:      req.Password,
		UseBiometrics: req.UseBiometrics,
	})
	if err != nil {
		s.logger.Warn(r.Context(), "admin bootstrap failed", "error", err.Error())
		respondDomainError(w, err)
		return
	}

	s.logger.Info(r.Context(), "administrator bootstrapped", "id", session.User.ID)
	respondJSON(w, http.StatusCreated, newSession{Token: session.Token.Value, User: session.User})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := s.accounts.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		// no distinction between unknown email and wrong password
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newSession{Token: session.Token.Value, User: session.User})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "missing authentication")
		return
	}

	if err := s.accounts.SignOut(r.Context(), user); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "missing authentication")
		return
	}

	respondJSON(w, http.StatusOK, s.accounts.GetProfile(r.Context(), user))
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "missing authentication")
		return
	}

	if err := s.accounts.DeleteAccount(r.Context(), user); err != nil {
		respondDomainError(w, err)
		return
	}

	s.logger.Info(r.Context(), "account deleted", "id", user.ID)
	w.WriteHeader(http.StatusNoContent)
}

type setEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleSetEnabled(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "missing authentication")
		return
	}

	var req setEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	targetID := chi.URLParam(r, "userID")
	if err := s.accounts.SetAccountEnabled(r.Context(), caller, targetID, req.Enabled); err != nil {
		respondDomainError(w, err)
		return
	}

	s.logger.Info(r.Context(), "account enablement changed", "target", targetID, "enabled", req.Enabled)
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "missing authentication")
		return
	}

	all, err := s.accounts.ListAllUsers(r.Context(), caller)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, all)
}

type confirmPictureRequest struct {
	Key string `json:"key"`
}

func (s *Server) handlePictureUploadURL(w http.ResponseWriter, r *http.Request) {
	if _, ok := userFromContext(r.Context()); !ok {
		respondError(w, http.StatusBadRequest, "missing authentication")
		return
	}

	key, url, err := s.pictures.RequestUploadURL(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "presign upload failed", "error", err.Error())
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"key": key, "uploadUrl": url})
}

func (s *Server) handlePictureConfirm(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "missing authentication")
		return
	}

	var req confirmPictureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	public, err := s.pictures.ConfirmUpload(r.Context(), user, req.Key)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, public)
}

func (s *Server) handlePictureView(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusBadRequest, "missing authentication")
		return
	}

	url, err := s.pictures.ViewURL(r.Context(), user)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}
