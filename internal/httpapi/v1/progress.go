package v1

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/finmentor/internal/finmentor"
	base "github.com/tinoosan/finmentor/internal/httpapi"
	"github.com/tinoosan/finmentor/internal/service/progress"
)

func (s *Server) listProgress(w http.ResponseWriter, r *http.Request) {
	list, err := s.progress.List(r.Context())
	if err != nil {
		base.WriteError(w, r, s.log, "progress.list", err)
		return
	}
	writeList(w, r, list)
}

func (s *Server) getProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.progress.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		base.WriteError(w, r, s.log, "progress.get", err)
		return
	}
	base.WriteOK(w, http.StatusOK, p, "")
}

func (s *Server) progressByUser(w http.ResponseWriter, r *http.Request) {
	list, err := s.progress.ByUserID(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		base.WriteError(w, r, s.log, "progress.by_user", err)
		return
	}
	writeList(w, r, list)
}

func (s *Server) progressByUserAndModule(w http.ResponseWriter, r *http.Request) {
	p, err := s.progress.ByUserAndModule(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "moduleId"))
	if err != nil {
		base.WriteError(w, r, s.log, "progress.by_user_module", err)
		return
	}
	base.WriteOK(w, http.StatusOK, p, "")
}

func (s *Server) createProgress(w http.ResponseWriter, r *http.Request) {
	in, ok := r.Context().Value(ctxKeyCreateProgress).(finmentor.Progress)
	if !ok {
		base.BadRequest(w, "validation context missing")
		return
	}
	p, err := s.progress.Create(r.Context(), in)
	if err != nil {
		base.WriteError(w, r, s.log, "progress.create", err)
		return
	}
	createdTotal.WithLabelValues("progress").Inc()
	base.WriteOK(w, http.StatusCreated, p, "Progress record created successfully")
}

func (s *Server) updateProgress(w http.ResponseWriter, r *http.Request) {
	patch, ok := r.Context().Value(ctxKeyUpdateProgress).(progress.Patch)
	if !ok {
		base.BadRequest(w, "validation context missing")
		return
	}
	p, err := s.progress.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		base.WriteError(w, r, s.log, "progress.update", err)
		return
	}
	base.WriteOK(w, http.StatusOK, p, "Progress record updated successfully")
}

func (s *Server) completeLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, _ := r.Context().Value(ctxKeyCompleteLesson).(string)
	p, err := s.progress.CompleteLesson(r.Context(), chi.URLParam(r, "id"), lessonID)
	if err != nil {
		base.WriteError(w, r, s.log, "progress.complete_lesson", err)
		return
	}
	lessonsCompletedTotal.Inc()
	base.WriteOK(w, http.StatusOK, p, "Lesson completed successfully")
}

func (s *Server) completeQuiz(w http.ResponseWriter, r *http.Request) {
	in, ok := r.Context().Value(ctxKeyCompleteQuiz).(validatedQuiz)
	if !ok {
		base.BadRequest(w, "validation context missing")
		return
	}
	p, err := s.progress.CompleteQuiz(r.Context(), chi.URLParam(r, "id"), in.QuizID, in.Score)
	if err != nil {
		base.WriteError(w, r, s.log, "progress.complete_quiz", err)
		return
	}
	quizzesCompletedTotal.Inc()
	base.WriteOK(w, http.StatusOK, p, "Quiz completed successfully")
}
