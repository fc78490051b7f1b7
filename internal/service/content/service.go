// Package content serves educational modules and the financial glossary.
package content

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tinoosan/finmentor/internal/errs"
	"github.com/tinoosan/finmentor/internal/finmentor"
	"github.com/tinoosan/finmentor/internal/slug"
	"github.com/tinoosan/finmentor/internal/tags"
)

type Repo interface {
	ListModules(ctx context.Context) ([]finmentor.Module, error)
	ModuleByID(ctx context.Context, id string) (finmentor.Module, error)
	ModulesByCategory(ctx context.Context, category string) ([]finmentor.Module, error)
	ModulesByWebType(ctx context.Context, t finmentor.WebType) ([]finmentor.Module, error)
	ModulesByDifficulty(ctx context.Context, difficulty int) ([]finmentor.Module, error)

	ListTerms(ctx context.Context) ([]finmentor.Term, error)
	TermByID(ctx context.Context, id string) (finmentor.Term, error)
	TermsByCategory(ctx context.Context, category string) ([]finmentor.Term, error)
	TermsByWebType(ctx context.Context, t finmentor.WebType) ([]finmentor.Term, error)
}

type Writer interface {
	CreateModule(ctx context.Context, m finmentor.Module) (finmentor.Module, error)
	CreateTerm(ctx context.Context, t finmentor.Term) (finmentor.Term, error)
}

type Service interface {
	ValidateModule(m finmentor.Module) error
	ListModules(ctx context.Context) ([]finmentor.Module, error)
	GetModule(ctx context.Context, id string) (finmentor.Module, error)
	ModulesByCategory(ctx context.Context, category string) ([]finmentor.Module, error)
	ModulesByWebType(ctx context.Context, t finmentor.WebType) ([]finmentor.Module, error)
	ModulesByDifficulty(ctx context.Context, difficulty int) ([]finmentor.Module, error)
	CreateModule(ctx context.Context, m finmentor.Module) (finmentor.Module, error)

	ValidateTerm(t finmentor.Term) error
	ListTerms(ctx context.Context) ([]finmentor.Term, error)
	GetTerm(ctx context.Context, id string) (finmentor.Term, error)
	TermsByCategory(ctx context.Context, category string) ([]finmentor.Term, error)
	TermsByWebType(ctx context.Context, t finmentor.WebType) ([]finmentor.Term, error)
	CreateTerm(ctx context.Context, t finmentor.Term) (finmentor.Term, error)
	CreateTermsFromTranscript(ctx context.Context, in TranscriptInput) (TranscriptResult, error)
}

type service struct {
	repo   Repo
	writer Writer
	now    func() time.Time
}

func New(repo Repo, writer Writer) Service {
	return &service{repo: repo, writer: writer, now: func() time.Time { return time.Now().UTC() }}
}

// --- Modules ---

func (s *service) ValidateModule(m finmentor.Module) error {
	if strings.TrimSpace(m.Title) == "" {
		return errs.Invalidf("Missing required field: title")
	}
	if slug.Slugify(m.Category) == "" {
		return errs.Invalidf("Missing required field: category")
	}
	if !m.WebType.Valid() {
		return errs.Invalidf(`Invalid web type. Must be "web2" or "web3"`)
	}
	if !ValidDifficulty(m.Difficulty) {
		return errs.Invalidf("Invalid difficulty level. Must be a number between 1 and 5")
	}
	return nil
}

// ValidDifficulty reports whether d is within the 1..5 scale.
func ValidDifficulty(d int) bool {
	return d >= finmentor.MinDifficulty && d <= finmentor.MaxDifficulty
}

func (s *service) ListModules(ctx context.Context) ([]finmentor.Module, error) {
	return s.repo.ListModules(ctx)
}

func (s *service) GetModule(ctx context.Context, id string) (finmentor.Module, error) {
	m, err := s.repo.ModuleByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		return finmentor.Module{}, errs.NotFoundf("Educational module with ID %s not found", id)
	}
	return m, err
}

func (s *service) ModulesByCategory(ctx context.Context, category string) ([]finmentor.Module, error) {
	return s.repo.ModulesByCategory(ctx, slug.Slugify(category))
}

func (s *service) ModulesByWebType(ctx context.Context, t finmentor.WebType) ([]finmentor.Module, error) {
	if !t.Valid() {
		return nil, errs.Invalidf(`Invalid web type. Must be "web2" or "web3"`)
	}
	return s.repo.ModulesByWebType(ctx, t)
}

func (s *service) ModulesByDifficulty(ctx context.Context, difficulty int) ([]finmentor.Module, error) {
	if !ValidDifficulty(difficulty) {
		return nil, errs.Invalidf("Invalid difficulty level. Must be a number between 1 and 5")
	}
	return s.repo.ModulesByDifficulty(ctx, difficulty)
}

// CreateModule stamps fechaCreacion/ultimaActualizacion; client-sent values are ignored.
func (s *service) CreateModule(ctx context.Context, m finmentor.Module) (finmentor.Module, error) {
	if err := s.ValidateModule(m); err != nil {
		return finmentor.Module{}, err
	}
	m.ID = ""
	m.Title = strings.TrimSpace(m.Title)
	m.Category = slug.Slugify(m.Category)
	var err error
	if m.Prerequisites, err = tags.Normalize(m.Prerequisites); err != nil {
		return finmentor.Module{}, errs.Invalidf("prerequisitos: %v", err)
	}
	if m.Lessons == nil {
		m.Lessons = []finmentor.Lesson{}
	}
	if m.Quizzes == nil {
		m.Quizzes = []finmentor.Quiz{}
	}
	now := s.now()
	m.CreatedAt = now
	m.UpdatedAt = now
	return s.writer.CreateModule(ctx, m)
}

// --- Terms ---

func (s *service) ValidateTerm(t finmentor.Term) error {
	if strings.TrimSpace(t.Term) == "" {
		return errs.Invalidf("Missing required field: term")
	}
	if !t.TermType.Valid() {
		return errs.Invalidf(`Invalid web type. Must be "web2" or "web3"`)
	}
	return nil
}

func (s *service) ListTerms(ctx context.Context) ([]finmentor.Term, error) {
	return s.repo.ListTerms(ctx)
}

func (s *service) GetTerm(ctx context.Context, id string) (finmentor.Term, error) {
	t, err := s.repo.TermByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		return finmentor.Term{}, errs.NotFoundf("Financial term with ID %s not found", id)
	}
	return t, err
}

func (s *service) TermsByCategory(ctx context.Context, category string) ([]finmentor.Term, error) {
	return s.repo.TermsByCategory(ctx, slug.Slugify(category))
}

func (s *service) TermsByWebType(ctx context.Context, t finmentor.WebType) ([]finmentor.Term, error) {
	if !t.Valid() {
		return nil, errs.Invalidf(`Invalid web type. Must be "web2" or "web3"`)
	}
	return s.repo.TermsByWebType(ctx, t)
}

func (s *service) CreateTerm(ctx context.Context, t finmentor.Term) (finmentor.Term, error) {
	if err := s.ValidateTerm(t); err != nil {
		return finmentor.Term{}, err
	}
	t.ID = ""
	t.Term = strings.TrimSpace(t.Term)
	t.Category = slug.Slugify(t.Category)
	if t.Category == "" {
		t.Category = DefaultTermCategory
	}
	var err error
	if t.RelatedTerms, err = tags.Normalize(t.RelatedTerms); err != nil {
		return finmentor.Term{}, errs.Invalidf("relationsBetweenTerms: %v", err)
	}
	if t.Examples, err = tags.Normalize(t.Examples); err != nil {
		return finmentor.Term{}, errs.Invalidf("examples: %v", err)
	}
	return s.writer.CreateTerm(ctx, t)
}
