// Package progress tracks per-user, per-module completion.
package progress

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tinoosan/finmentor/internal/errs"
	"github.com/tinoosan/finmentor/internal/finmentor"
	"github.com/tinoosan/finmentor/internal/tags"
)

type Repo interface {
	ListProgress(ctx context.Context) ([]finmentor.Progress, error)
	ProgressByID(ctx context.Context, id string) (finmentor.Progress, error)
	ProgressByUserID(ctx context.Context, userID string) ([]finmentor.Progress, error)
	ProgressByUserAndModule(ctx context.Context, userID, moduleID string) (finmentor.Progress, error)
}

type Writer interface {
	CreateProgress(ctx context.Context, p finmentor.Progress) (finmentor.Progress, error)
	UpdateProgress(ctx context.Context, p finmentor.Progress) (finmentor.Progress, error)
	CompleteLesson(ctx context.Context, id, lessonID string, at time.Time) (finmentor.Progress, error)
	CompleteQuiz(ctx context.Context, id, quizID string, score int, at time.Time) (finmentor.Progress, error)
}

// Patch carries the editable fields of a progress record; nil means unchanged.
// The owning user and module are fixed at creation.
type Patch struct {
	PercentComplete  *int
	CompletedLessons []string
	CompletedQuizzes []string
	TotalPoints      *int
}

type Service interface {
	ValidateCreate(p finmentor.Progress) error
	List(ctx context.Context) ([]finmentor.Progress, error)
	Get(ctx context.Context, id string) (finmentor.Progress, error)
	ByUserID(ctx context.Context, userID string) ([]finmentor.Progress, error)
	ByUserAndModule(ctx context.Context, userID, moduleID string) (finmentor.Progress, error)
	Create(ctx context.Context, p finmentor.Progress) (finmentor.Progress, error)
	Update(ctx context.Context, id string, patch Patch) (finmentor.Progress, error)
	CompleteLesson(ctx context.Context, id, lessonID string) (finmentor.Progress, error)
	CompleteQuiz(ctx context.Context, id, quizID string, score int) (finmentor.Progress, error)
}

type service struct {
	repo   Repo
	writer Writer
	now    func() time.Time
}

func New(repo Repo, writer Writer) Service {
	return &service{repo: repo, writer: writer, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) ValidateCreate(p finmentor.Progress) error {
	if strings.TrimSpace(p.UserID) == "" || strings.TrimSpace(p.ModuleID) == "" {
		return errs.Invalidf("Missing required fields: userId and moduleId are required")
	}
	if err := validatePercent(p.PercentComplete); err != nil {
		return err
	}
	return validatePoints(p.TotalPoints)
}

func validatePercent(v int) error {
	if v < 0 || v > 100 {
		return errs.Invalidf("Invalid porcentajeCompletado. Must be a number between 0 and 100")
	}
	return nil
}

func validatePoints(v int) error {
	if v < 0 {
		return errs.Invalidf("Invalid puntosTotales. Must be a non-negative number")
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]finmentor.Progress, error) {
	return s.repo.ListProgress(ctx)
}

func (s *service) Get(ctx context.Context, id string) (finmentor.Progress, error) {
	p, err := s.repo.ProgressByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		return finmentor.Progress{}, notFound(id)
	}
	return p, err
}

func (s *service) ByUserID(ctx context.Context, userID string) ([]finmentor.Progress, error) {
	return s.repo.ProgressByUserID(ctx, userID)
}

func (s *service) ByUserAndModule(ctx context.Context, userID, moduleID string) (finmentor.Progress, error) {
	p, err := s.repo.ProgressByUserAndModule(ctx, userID, moduleID)
	if errors.Is(err, errs.ErrNotFound) {
		return finmentor.Progress{}, errs.NotFoundf("Progress record for user %s and module %s not found", userID, moduleID)
	}
	return p, err
}

// Create defaults empty lists and stamps ultimoAcceso when the client left it zero.
func (s *service) Create(ctx context.Context, p finmentor.Progress) (finmentor.Progress, error) {
	p.UserID = strings.TrimSpace(p.UserID)
	p.ModuleID = strings.TrimSpace(p.ModuleID)
	if err := s.ValidateCreate(p); err != nil {
		return finmentor.Progress{}, err
	}
	if _, err := s.repo.ProgressByUserAndModule(ctx, p.UserID, p.ModuleID); err == nil {
		return finmentor.Progress{}, alreadyExists(p.UserID, p.ModuleID)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return finmentor.Progress{}, err
	}
	p.ID = ""
	p.CompletedLessons = tags.New(p.CompletedLessons).Strings()
	p.CompletedQuizzes = tags.New(p.CompletedQuizzes).Strings()
	if p.LastAccess.IsZero() {
		p.LastAccess = s.now()
	}
	created, err := s.writer.CreateProgress(ctx, p)
	if errors.Is(err, errs.ErrConflict) {
		return finmentor.Progress{}, alreadyExists(p.UserID, p.ModuleID)
	}
	return created, err
}

func (s *service) Update(ctx context.Context, id string, patch Patch) (finmentor.Progress, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return finmentor.Progress{}, err
	}
	if patch.PercentComplete != nil {
		if err := validatePercent(*patch.PercentComplete); err != nil {
			return finmentor.Progress{}, err
		}
		current.PercentComplete = *patch.PercentComplete
	}
	if patch.TotalPoints != nil {
		if err := validatePoints(*patch.TotalPoints); err != nil {
			return finmentor.Progress{}, err
		}
		current.TotalPoints = *patch.TotalPoints
	}
	if patch.CompletedLessons != nil {
		current.CompletedLessons = tags.New(patch.CompletedLessons).Strings()
	}
	if patch.CompletedQuizzes != nil {
		current.CompletedQuizzes = tags.New(patch.CompletedQuizzes).Strings()
	}
	current.LastAccess = s.now()
	updated, err := s.writer.UpdateProgress(ctx, current)
	if errors.Is(err, errs.ErrNotFound) {
		return finmentor.Progress{}, notFound(id)
	}
	return updated, err
}

func (s *service) CompleteLesson(ctx context.Context, id, lessonID string) (finmentor.Progress, error) {
	lessonID = strings.TrimSpace(lessonID)
	if lessonID == "" {
		return finmentor.Progress{}, errs.Invalidf("Missing lessonId in request body")
	}
	p, err := s.writer.CompleteLesson(ctx, id, lessonID, s.now())
	if errors.Is(err, errs.ErrNotFound) {
		return finmentor.Progress{}, notFound(id)
	}
	return p, err
}

func (s *service) CompleteQuiz(ctx context.Context, id, quizID string, score int) (finmentor.Progress, error) {
	quizID = strings.TrimSpace(quizID)
	if quizID == "" {
		return finmentor.Progress{}, errs.Invalidf("Missing quizId in request body")
	}
	if score < 0 {
		return finmentor.Progress{}, errs.Invalidf("Invalid score in request body. Must be a non-negative number")
	}
	p, err := s.writer.CompleteQuiz(ctx, id, quizID, score, s.now())
	if errors.Is(err, errs.ErrNotFound) {
		return finmentor.Progress{}, notFound(id)
	}
	return p, err
}

func notFound(id string) error {
	return errs.NotFoundf("Progress record with ID %s not found", id)
}

func alreadyExists(userID, moduleID string) error {
	return errs.Conflictf("Progress record already exists for user %s and module %s", userID, moduleID)
}
