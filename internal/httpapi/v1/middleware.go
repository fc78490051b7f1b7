package v1

import (
	"context"
	"math"
	"net/http"
	"strconv"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/finmentor/internal/finmentor"
	base "github.com/tinoosan/finmentor/internal/httpapi"
	"github.com/tinoosan/finmentor/internal/service/content"
	"github.com/tinoosan/finmentor/internal/service/profile"
	"github.com/tinoosan/finmentor/internal/service/progress"
)

type ctxKey string

const (
	ctxKeyCreateProfile  ctxKey = "validatedCreateProfile"
	ctxKeyUpdateProfile  ctxKey = "validatedUpdateProfile"
	ctxKeyCreateModule   ctxKey = "validatedCreateModule"
	ctxKeyCreateProgress ctxKey = "validatedCreateProgress"
	ctxKeyUpdateProgress ctxKey = "validatedUpdateProgress"
	ctxKeyCompleteLesson ctxKey = "validatedCompleteLesson"
	ctxKeyCompleteQuiz   ctxKey = "validatedCompleteQuiz"
	ctxKeyIssueCert      ctxKey = "validatedIssueCertificate"
	ctxKeyPage           ctxKey = "validatedPage"
	ctxKeyDifficulty     ctxKey = "validatedDifficulty"
)

func withValue(r *http.Request, k ctxKey, v any) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), k, v))
}

// validateCreateProfile decodes POST /profiles and stores the domain profile.
func (s *Server) validateCreateProfile() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req postProfileRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			p := finmentor.UserProfile{
				UserID:      req.UserID,
				LevelWeb2:   req.LevelWeb2,
				LevelWeb3:   req.LevelWeb3,
				Interests:   req.Interests,
				TermHistory: req.TermHistory,
			}
			if err := s.profiles.ValidateCreate(p); err != nil {
				base.BadRequest(w, err.Error())
				return
			}
			next.ServeHTTP(w, withValue(r, ctxKeyCreateProfile, p))
		})
	}
}

func (s *Server) validateUpdateProfile() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req putProfileRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			next.ServeHTTP(w, withValue(r, ctxKeyUpdateProfile, profile.Patch{
				UserID:      req.UserID,
				LevelWeb2:   req.LevelWeb2,
				LevelWeb3:   req.LevelWeb3,
				Interests:   req.Interests,
				TermHistory: req.TermHistory,
			}))
		})
	}
}

func (s *Server) validateCreateModule() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req postModuleRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			m := finmentor.Module{
				Title:         req.Title,
				Description:   req.Description,
				Category:      req.Category,
				WebType:       req.WebType,
				Difficulty:    req.Difficulty,
				Prerequisites: req.Prerequisites,
				Lessons:       req.Lessons,
				Quizzes:       req.Quizzes,
			}
			if err := s.content.ValidateModule(m); err != nil {
				base.BadRequest(w, err.Error())
				return
			}
			next.ServeHTTP(w, withValue(r, ctxKeyCreateModule, m))
		})
	}
}

func (s *Server) validateCreateProgress() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req postProgressRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			p := finmentor.Progress{
				UserID:           req.UserID,
				ModuleID:         req.ModuleID,
				PercentComplete:  req.PercentComplete,
				CompletedLessons: req.CompletedLessons,
				CompletedQuizzes: req.CompletedQuizzes,
				TotalPoints:      req.TotalPoints,
			}
			if req.LastAccess != nil {
				p.LastAccess = req.LastAccess.UTC()
			}
			if err := s.progress.ValidateCreate(p); err != nil {
				base.BadRequest(w, err.Error())
				return
			}
			next.ServeHTTP(w, withValue(r, ctxKeyCreateProgress, p))
		})
	}
}

func (s *Server) validateUpdateProgress() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req putProgressRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			next.ServeHTTP(w, withValue(r, ctxKeyUpdateProgress, progress.Patch{
				PercentComplete:  req.PercentComplete,
				CompletedLessons: req.CompletedLessons,
				CompletedQuizzes: req.CompletedQuizzes,
				TotalPoints:      req.TotalPoints,
			}))
		})
	}
}

func (s *Server) validateCompleteLesson() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req completeLessonRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			if req.LessonID == "" {
				base.BadRequest(w, "Missing lessonId in request body")
				return
			}
			next.ServeHTTP(w, withValue(r, ctxKeyCompleteLesson, req.LessonID))
		})
	}
}

// validateCompleteQuiz rejects a missing, negative or fractional score before the service runs.
func (s *Server) validateCompleteQuiz() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req completeQuizRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			if req.QuizID == "" {
				base.BadRequest(w, "Missing quizId in request body")
				return
			}
			if req.Score == nil || *req.Score < 0 || *req.Score != math.Trunc(*req.Score) || *req.Score > math.MaxInt32 {
				base.BadRequest(w, "Invalid score in request body. Must be a non-negative number")
				return
			}
			next.ServeHTTP(w, withValue(r, ctxKeyCompleteQuiz, validatedQuiz{QuizID: req.QuizID, Score: int(*req.Score)}))
		})
	}
}

// validateIssueCertificate ignores any client fechaEmision; issuance time is server-assigned.
func (s *Server) validateIssueCertificate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req postCertificateRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			c := finmentor.Certificate{
				WalletAddress:   req.WalletAddress,
				ModuleID:        req.ModuleID,
				UserID:          req.UserID,
				MetadataURI:     req.MetadataURI,
				TransactionHash: req.TransactionHash,
				Level:           req.Level,
				Attributes:      req.Attributes,
			}
			if err := s.certificates.ValidateIssue(c); err != nil {
				base.BadRequest(w, err.Error())
				return
			}
			next.ServeHTTP(w, withValue(r, ctxKeyIssueCert, c))
		})
	}
}

// validWebType rejects anything but web2/web3 in the {webType} segment.
func validWebType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !finmentor.WebType(chi.URLParam(r, "webType")).Valid() {
			base.BadRequest(w, `Invalid web type. Must be "web2" or "web3"`)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// validDifficulty parses the {difficulty} segment as an integer in 1..5.
func validDifficulty(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, err := strconv.Atoi(chi.URLParam(r, "difficulty"))
		if err != nil || !content.ValidDifficulty(d) {
			base.BadRequest(w, "Invalid difficulty level. Must be a number between 1 and 5")
			return
		}
		next.ServeHTTP(w, withValue(r, ctxKeyDifficulty, d))
	})
}
