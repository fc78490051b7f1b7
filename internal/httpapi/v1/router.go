// Package v1 serves the FinMentor REST API under /api/v1.
// Handlers stay thin: they parse and validate input, call one service
// operation and write the envelope.
package v1

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/finmentor/internal/mint"
	"github.com/tinoosan/finmentor/internal/service/certificate"
	"github.com/tinoosan/finmentor/internal/service/content"
	"github.com/tinoosan/finmentor/internal/service/profile"
	"github.com/tinoosan/finmentor/internal/service/progress"
)

// Server wires FinMentor handlers using Chi.
type Server struct {
	profiles     profile.Service
	content      content.Service
	progress     progress.Service
	certificates certificate.Service
	log          *slog.Logger
	rt           *chi.Mux
}

// New constructs the v1 router over store. The minter backs certificate issuance.
func New(store Store, minter mint.Minter, logger *slog.Logger) *Server {
	s := &Server{
		profiles:     profile.New(store, store),
		content:      content.New(store, store),
		progress:     progress.New(store, store),
		certificates: certificate.New(store, store, minter),
		log:          logger,
		rt:           chi.NewRouter(),
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
	s.rt.Route("/finmentor", func(r chi.Router) {
		// Profiles
		r.With(paginate).Get("/profiles", s.listProfiles)
		r.Get("/profiles/{id}", s.getProfile)
		r.Get("/profiles/user/{userId}", s.getProfileByUser)
		r.With(s.validateCreateProfile()).Post("/profiles", s.createProfile)
		r.With(s.validateUpdateProfile()).Put("/profiles/{id}", s.updateProfile)

		// Modules
		r.With(paginate).Get("/modules", s.listModules)
		r.Get("/modules/{id}", s.getModule)
		r.With(paginate).Get("/modules/category/{category}", s.modulesByCategory)
		r.With(paginate, validWebType).Get("/modules/web-type/{webType}", s.modulesByWebType)
		r.With(paginate, validDifficulty).Get("/modules/difficulty/{difficulty}", s.modulesByDifficulty)
		r.With(s.validateCreateModule()).Post("/modules", s.createModule)

		// Terms
		r.With(paginate).Get("/terms", s.listTerms)
		r.Get("/terms/{id}", s.getTerm)
		r.With(paginate).Get("/terms/category/{category}", s.termsByCategory)
		r.With(paginate, validWebType).Get("/terms/web-type/{webType}", s.termsByWebType)
		r.Post("/terms", s.createTerm)

		// Progress
		r.With(paginate).Get("/progress", s.listProgress)
		r.Get("/progress/{id}", s.getProgress)
		r.With(paginate).Get("/progress/user/{userId}", s.progressByUser)
		r.Get("/progress/user/{userId}/module/{moduleId}", s.progressByUserAndModule)
		r.With(s.validateCreateProgress()).Post("/progress", s.createProgress)
		r.With(s.validateUpdateProgress()).Put("/progress/{id}", s.updateProgress)
		r.With(s.validateCompleteLesson()).Post("/progress/{id}/complete-lesson", s.completeLesson)
		r.With(s.validateCompleteQuiz()).Post("/progress/{id}/complete-quiz", s.completeQuiz)

		// Certificates
		r.With(paginate).Get("/certificates", s.listCertificates)
		r.Get("/certificates/{tokenId}", s.getCertificate)
		r.With(paginate).Get("/certificates/wallet/{walletAddress}", s.certificatesByWallet)
		r.With(paginate).Get("/certificates/user/{userId}", s.certificatesByUser)
		r.With(paginate).Get("/certificates/module/{moduleId}", s.certificatesByModule)
		r.With(s.validateIssueCertificate()).Post("/certificates", s.createCertificate)

		// Dictionary
		r.Get("/dictionary/categories", s.getCategoriesDictionary)
	})
}
