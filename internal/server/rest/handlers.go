package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/dmitrijs2005/gophsocial/internal/server/validation"
	"github.com/go-chi/chi/v5"
)

func (s *RESTServer) test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"msg": "User Works"})
}

func (s *RESTServer) healthz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Warn(r.Context(), "store ping failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *RESTServer) register(w http.ResponseWriter, r *http.Request) {
	var in validation.RegisterInput
	if !s.bindAndValidate(w, r, &in) {
		return
	}

	user, err := s.users.Register(r.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", user.ID)
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (s *RESTServer) login(w http.ResponseWriter, r *http.Request) {
	var in validation.LoginInput
	if !s.bindAndValidate(w, r, &in) {
		return
	}

	token, err := s.users.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"email": "User not found"})
		case errors.Is(err, common.ErrorUnauthorized):
			writeJSON(w, http.StatusBadRequest, map[string]string{"password": "Password incorrect"})
		default:
			s.writeError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Success: true, Token: token})
}

func (s *RESTServer) current(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	user, err := s.users.Current(r.Context(), claims.ID)
	if err != nil {
		// token outlived its user
		if errors.Is(err, common.ErrorNotFound) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, currentResponse{ID: user.ID, Name: user.Name, Email: user.Email})
}

func (s *RESTServer) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (s *RESTServer) userNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, common.ErrorNotFound)
}

func (s *RESTServer) follow(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	targetID := chi.URLParam(r, "id")

	user, err := s.follows.Follow(r.Context(), claims.ID, targetID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Followed", "actor", claims.ID, "target", targetID)
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (s *RESTServer) unfollow(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	targetID := chi.URLParam(r, "id")

	user, err := s.follows.Unfollow(r.Context(), claims.ID, targetID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Unfollowed", "actor", claims.ID, "target", targetID)
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

type normalizer interface {
	Normalize()
}

// bindAndValidate decodes and validates the body, writing the 400 response
// itself when either step fails.
func (s *RESTServer) bindAndValidate(w http.ResponseWriter, r *http.Request, in normalizer) bool {
	if err := decodeBody(w, r, in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return false
	}
	in.Normalize()

	if err := s.validator.Struct(in); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusBadRequest, verrs)
			return false
		}
		s.writeError(w, r, err)
		return false
	}
	return true
}
