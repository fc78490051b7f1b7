package v1

import (
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tinoosan/finmentor/internal/finmentor"
	base "github.com/tinoosan/finmentor/internal/httpapi"
	"github.com/tinoosan/finmentor/internal/service/content"
)

func (s *Server) listTerms(w http.ResponseWriter, r *http.Request) {
	list, err := s.content.ListTerms(r.Context())
	if err != nil {
		base.WriteError(w, r, s.log, "terms.list", err)
		return
	}
	writeList(w, r, list)
}

func (s *Server) getTerm(w http.ResponseWriter, r *http.Request) {
	t, err := s.content.GetTerm(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		base.WriteError(w, r, s.log, "terms.get", err)
		return
	}
	base.WriteOK(w, http.StatusOK, t, "")
}

func (s *Server) termsByCategory(w http.ResponseWriter, r *http.Request) {
	list, err := s.content.TermsByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		base.WriteError(w, r, s.log, "terms.by_category", err)
		return
	}
	writeList(w, r, list)
}

func (s *Server) termsByWebType(w http.ResponseWriter, r *http.Request) {
	list, err := s.content.TermsByWebType(r.Context(), finmentor.WebType(chi.URLParam(r, "webType")))
	if err != nil {
		base.WriteError(w, r, s.log, "terms.by_web_type", err)
		return
	}
	writeList(w, r, list)
}

// createTerm accepts a term object or a dictation transcript; see postTermRequest.
func (s *Server) createTerm(w http.ResponseWriter, r *http.Request) {
	var req postTermRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Segments) > 0 {
		s.createTermsFromTranscript(w, r, req)
		return
	}
	in := finmentor.Term{
		Term:             req.Term,
		Image:            req.Image,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		Category:         req.Category,
		TermType:         req.TermType,
		RelatedTerms:     req.RelatedTerms,
		Examples:         req.Examples,
	}
	if err := s.content.ValidateTerm(in); err != nil {
		base.BadRequest(w, err.Error())
		return
	}
	t, err := s.content.CreateTerm(r.Context(), in)
	if err != nil {
		base.WriteError(w, r, s.log, "terms.create", err)
		return
	}
	createdTotal.WithLabelValues("term").Inc()
	base.WriteOK(w, http.StatusCreated, t, "Financial term created successfully")
}

func (s *Server) createTermsFromTranscript(w http.ResponseWriter, r *http.Request, req postTermRequest) {
	s.log.Info("terms from transcript",
		"req_id", chimw.GetReqID(r.Context()),
		"session_id", req.SessionID,
		"segments", len(req.Segments),
	)
	res, err := s.content.CreateTermsFromTranscript(r.Context(), content.TranscriptInput{
		Segments:  req.Segments,
		SessionID: req.SessionID,
		Category:  req.Category,
		TermType:  req.TermType,
	})
	if err != nil {
		base.WriteError(w, r, s.log, "terms.from_transcript", err)
		return
	}
	createdTotal.WithLabelValues("term").Add(float64(len(res.Terms)))
	msg := fmt.Sprintf("%d financial terms created successfully", len(res.Terms))
	if len(res.Skipped) > 0 {
		msg += fmt.Sprintf(" (%d notes skipped)", len(res.Skipped))
	}
	base.WriteOK(w, http.StatusCreated, res.Terms, msg)
}
