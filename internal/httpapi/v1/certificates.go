package v1

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/finmentor/internal/finmentor"
	base "github.com/tinoosan/finmentor/internal/httpapi"
)

func (s *Server) listCertificates(w http.ResponseWriter, r *http.Request) {
	list, err := s.certificates.List(r.Context())
	if err != nil {
		base.WriteError(w, r, s.log, "certificates.list", err)
		return
	}
	writeList(w, r, list)
}

func (s *Server) getCertificate(w http.ResponseWriter, r *http.Request) {
	c, err := s.certificates.Get(r.Context(), chi.URLParam(r, "tokenId"))
	if err != nil {
		base.WriteError(w, r, s.log, "certificates.get", err)
		return
	}
	base.WriteOK(w, http.StatusOK, c, "")
}

func (s *Server) certificatesByWallet(w http.ResponseWriter, r *http.Request) {
	list, err := s.certificates.ByWallet(r.Context(), chi.URLParam(r, "walletAddress"))
	if err != nil {
		base.WriteError(w, r, s.log, "certificates.by_wallet", err)
		return
	}
	writeList(w, r, list)
}

func (s *Server) certificatesByUser(w http.ResponseWriter, r *http.Request) {
	list, err := s.certificates.ByUserID(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		base.WriteError(w, r, s.log, "certificates.by_user", err)
		return
	}
	writeList(w, r, list)
}

func (s *Server) certificatesByModule(w http.ResponseWriter, r *http.Request) {
	list, err := s.certificates.ByModuleID(r.Context(), chi.URLParam(r, "moduleId"))
	if err != nil {
		base.WriteError(w, r, s.log, "certificates.by_module", err)
		return
	}
	writeList(w, r, list)
}

func (s *Server) createCertificate(w http.ResponseWriter, r *http.Request) {
	in, ok := r.Context().Value(ctxKeyIssueCert).(finmentor.Certificate)
	if !ok {
		base.BadRequest(w, "validation context missing")
		return
	}
	c, err := s.certificates.Issue(r.Context(), in)
	if err != nil {
		base.WriteError(w, r, s.log, "certificates.issue", err)
		return
	}
	createdTotal.WithLabelValues("certificate").Inc()
	base.WriteOK(w, http.StatusCreated, c, "NFT certificate created successfully")
}
