package v1

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/finmentor/internal/finmentor"
	base "github.com/tinoosan/finmentor/internal/httpapi"
)

func (s *Server) listModules(w http.ResponseWriter, r *http.Request) {
	list, err := s.content.ListModules(r.Context())
	if err != nil {
		base.WriteError(w, r, s.log, "modules.list", err)
		return
	}
	writeList(w, r, list)
}

func (s *Server) getModule(w http.ResponseWriter, r *http.Request) {
	m, err := s.content.GetModule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		base.WriteError(w, r, s.log, "modules.get", err)
		return
	}
	base.WriteOK(w, http.StatusOK, m, "")
}

func (s *Server) modulesByCategory(w http.ResponseWriter, r *http.Request) {
	list, err := s.content.ModulesByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		base.WriteError(w, r, s.log, "modules.by_category", err)
		return
	}
	writeList(w, r, list)
}

func (s *Server) modulesByWebType(w http.ResponseWriter, r *http.Request) {
	list, err := s.content.ModulesByWebType(r.Context(), finmentor.WebType(chi.URLParam(r, "webType")))
	if err != nil {
		base.WriteError(w, r, s.log, "modules.by_web_type", err)
		return
	}
	writeList(w, r, list)
}

func (s *Server) modulesByDifficulty(w http.ResponseWriter, r *http.Request) {
	d, _ := r.Context().Value(ctxKeyDifficulty).(int)
	list, err := s.content.ModulesByDifficulty(r.Context(), d)
	if err != nil {
		base.WriteError(w, r, s.log, "modules.by_difficulty", err)
		return
	}
	writeList(w, r, list)
}

func (s *Server) createModule(w http.ResponseWriter, r *http.Request) {
	in, ok := r.Context().Value(ctxKeyCreateModule).(finmentor.Module)
	if !ok {
		base.BadRequest(w, "validation context missing")
		return
	}
	m, err := s.content.CreateModule(r.Context(), in)
	if err != nil {
		base.WriteError(w, r, s.log, "modules.create", err)
		return
	}
	createdTotal.WithLabelValues("module").Inc()
	base.WriteOK(w, http.StatusCreated, m, "Educational module created successfully")
}
