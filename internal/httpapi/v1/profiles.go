package v1

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/finmentor/internal/finmentor"
	base "github.com/tinoosan/finmentor/internal/httpapi"
	"github.com/tinoosan/finmentor/internal/service/profile"
)

func (s *Server) listProfiles(w http.ResponseWriter, r *http.Request) {
	list, err := s.profiles.List(r.Context())
	if err != nil {
		base.WriteError(w, r, s.log, "profiles.list", err)
		return
	}
	writeList(w, r, list)
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		base.WriteError(w, r, s.log, "profiles.get", err)
		return
	}
	base.WriteOK(w, http.StatusOK, p, "")
}

func (s *Server) getProfileByUser(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.GetByUserID(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		base.WriteError(w, r, s.log, "profiles.by_user", err)
		return
	}
	base.WriteOK(w, http.StatusOK, p, "")
}

func (s *Server) createProfile(w http.ResponseWriter, r *http.Request) {
	in, ok := r.Context().Value(ctxKeyCreateProfile).(finmentor.UserProfile)
	if !ok {
		base.BadRequest(w, "validation context missing")
		return
	}
	p, err := s.profiles.Create(r.Context(), in)
	if err != nil {
		base.WriteError(w, r, s.log, "profiles.create", err)
		return
	}
	createdTotal.WithLabelValues("profile").Inc()
	base.WriteOK(w, http.StatusCreated, p, "User profile created successfully")
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	patch, ok := r.Context().Value(ctxKeyUpdateProfile).(profile.Patch)
	if !ok {
		base.BadRequest(w, "validation context missing")
		return
	}
	p, err := s.profiles.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		base.WriteError(w, r, s.log, "profiles.update", err)
		return
	}
	base.WriteOK(w, http.StatusOK, p, "User profile updated successfully")
}
