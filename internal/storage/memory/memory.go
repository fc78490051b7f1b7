// Package memory holds every FinMentor collection in process memory.
// Nothing survives a restart; Seed loads the demo data the mobile client expects.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tinoosan/finmentor/internal/errs"
	"github.com/tinoosan/finmentor/internal/finmentor"
)

// Store implements the repositories and writers of every service package.
// It is guarded by an RWMutex; all reads return deep copies so callers can
// never reach stored slices.
type Store struct {
	mu           sync.RWMutex
	profiles     []finmentor.UserProfile
	modules      []finmentor.Module
	terms        []finmentor.Term
	progress     []finmentor.Progress
	certificates []finmentor.Certificate
}

// New constructs an empty store.
func New() *Store { return &Store{} }

// Reset drops every record.
func (s *Store) Reset() {
	s.mu.Lock()
	s.profiles = nil
	s.modules = nil
	s.terms = nil
	s.progress = nil
	s.certificates = nil
	s.mu.Unlock()
}

// Ready reports whether the store can serve requests. An in-memory store always can.
func (s *Store) Ready(ctx context.Context) error { return ctx.Err() }

// nextID follows the length-plus-one scheme ("1", "mod-3", "nft-4"...).
func nextID(prefix string, n int) string {
	if prefix == "" {
		return fmt.Sprint(n + 1)
	}
	return fmt.Sprintf("%s-%d", prefix, n+1)
}

// --- Profiles ---

func (s *Store) ListProfiles(_ context.Context) ([]finmentor.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]finmentor.UserProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (s *Store) ProfileByID(_ context.Context, id string) (finmentor.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.profileIndexLocked(func(p finmentor.UserProfile) bool { return p.ID == id }); i >= 0 {
		return s.profiles[i].Clone(), nil
	}
	return finmentor.UserProfile{}, errs.ErrNotFound
}

func (s *Store) ProfileByUserID(_ context.Context, userID string) (finmentor.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.profileIndexLocked(func(p finmentor.UserProfile) bool { return p.UserID == userID }); i >= 0 {
		return s.profiles[i].Clone(), nil
	}
	return finmentor.UserProfile{}, errs.ErrNotFound
}

// CreateProfile assigns the next id. A taken userId yields errs.ErrConflict.
func (s *Store) CreateProfile(_ context.Context, p finmentor.UserProfile) (finmentor.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profileIndexLocked(func(e finmentor.UserProfile) bool { return e.UserID == p.UserID }) >= 0 {
		return finmentor.UserProfile{}, errs.ErrConflict
	}
	p = p.Clone()
	p.ID = nextID("", len(s.profiles))
	s.profiles = append(s.profiles, p)
	return p.Clone(), nil
}

// UpdateProfile replaces the record with the same id.
func (s *Store) UpdateProfile(_ context.Context, p finmentor.UserProfile) (finmentor.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.profileIndexLocked(func(e finmentor.UserProfile) bool { return e.ID == p.ID })
	if i < 0 {
		return finmentor.UserProfile{}, errs.ErrNotFound
	}
	if j := s.profileIndexLocked(func(e finmentor.UserProfile) bool { return e.UserID == p.UserID }); j >= 0 && j != i {
		return finmentor.UserProfile{}, errs.ErrConflict
	}
	s.profiles[i] = p.Clone()
	return p.Clone(), nil
}

// Caller must hold s.mu.
func (s *Store) profileIndexLocked(match func(finmentor.UserProfile) bool) int {
	for i, p := range s.profiles {
		if match(p) {
			return i
		}
	}
	return -1
}

// --- Modules ---

func (s *Store) ListModules(_ context.Context) ([]finmentor.Module, error) {
	return s.filterModules(func(finmentor.Module) bool { return true }), nil
}

func (s *Store) ModuleByID(_ context.Context, id string) (finmentor.Module, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.modules {
		if m.ID == id {
			return m.Clone(), nil
		}
	}
	return finmentor.Module{}, errs.ErrNotFound
}

func (s *Store) ModulesByCategory(_ context.Context, category string) ([]finmentor.Module, error) {
	return s.filterModules(func(m finmentor.Module) bool { return m.Category == category }), nil
}

func (s *Store) ModulesByWebType(_ context.Context, t finmentor.WebType) ([]finmentor.Module, error) {
	return s.filterModules(func(m finmentor.Module) bool { return m.WebType == t }), nil
}

func (s *Store) ModulesByDifficulty(_ context.Context, difficulty int) ([]finmentor.Module, error) {
	return s.filterModules(func(m finmentor.Module) bool { return m.Difficulty == difficulty }), nil
}

func (s *Store) CreateModule(_ context.Context, m finmentor.Module) (finmentor.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m = m.Clone()
	m.ID = nextID("mod", len(s.modules))
	s.modules = append(s.modules, m)
	return m.Clone(), nil
}

func (s *Store) filterModules(keep func(finmentor.Module) bool) []finmentor.Module {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]finmentor.Module, 0)
	for _, m := range s.modules {
		if keep(m) {
			out = append(out, m.Clone())
		}
	}
	return out
}

// --- Terms ---

func (s *Store) ListTerms(_ context.Context) ([]finmentor.Term, error) {
	return s.filterTerms(func(finmentor.Term) bool { return true }), nil
}

func (s *Store) TermByID(_ context.Context, id string) (finmentor.Term, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.terms {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return finmentor.Term{}, errs.ErrNotFound
}

func (s *Store) TermsByCategory(_ context.Context, category string) ([]finmentor.Term, error) {
	return s.filterTerms(func(t finmentor.Term) bool { return t.Category == category }), nil
}

func (s *Store) TermsByWebType(_ context.Context, wt finmentor.WebType) ([]finmentor.Term, error) {
	return s.filterTerms(func(t finmentor.Term) bool { return t.TermType == wt }), nil
}

func (s *Store) CreateTerm(_ context.Context, t finmentor.Term) (finmentor.Term, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t = t.Clone()
	t.ID = nextID("term", len(s.terms))
	s.terms = append(s.terms, t)
	return t.Clone(), nil
}

func (s *Store) filterTerms(keep func(finmentor.Term) bool) []finmentor.Term {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]finmentor.Term, 0)
	for _, t := range s.terms {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// --- Progress ---

func (s *Store) ListProgress(_ context.Context) ([]finmentor.Progress, error) {
	return s.filterProgress(func(finmentor.Progress) bool { return true }), nil
}

func (s *Store) ProgressByID(_ context.Context, id string) (finmentor.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.progressIndexLocked(id); i >= 0 {
		return s.progress[i].Clone(), nil
	}
	return finmentor.Progress{}, errs.ErrNotFound
}

func (s *Store) ProgressByUserID(_ context.Context, userID string) ([]finmentor.Progress, error) {
	return s.filterProgress(func(p finmentor.Progress) bool { return p.UserID == userID }), nil
}

func (s *Store) ProgressByUserAndModule(_ context.Context, userID, moduleID string) (finmentor.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.progress {
		if p.UserID == userID && p.ModuleID == moduleID {
			return p.Clone(), nil
		}
	}
	return finmentor.Progress{}, errs.ErrNotFound
}

// CreateProgress assigns the next id. A second record for the same
// (userId, moduleId) pair yields errs.ErrConflict.
func (s *Store) CreateProgress(_ context.Context, p finmentor.Progress) (finmentor.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.progress {
		if e.UserID == p.UserID && e.ModuleID == p.ModuleID {
			return finmentor.Progress{}, errs.ErrConflict
		}
	}
	p = p.Clone()
	p.ID = nextID("prog", len(s.progress))
	s.progress = append(s.progress, p)
	return p.Clone(), nil
}

// UpdateProgress replaces the record with the same id.
func (s *Store) UpdateProgress(_ context.Context, p finmentor.Progress) (finmentor.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.progressIndexLocked(p.ID)
	if i < 0 {
		return finmentor.Progress{}, errs.ErrNotFound
	}
	s.progress[i] = p.Clone()
	return p.Clone(), nil
}

// CompleteLesson marks lessonID done and recomputes the completion percentage
// against the fixed lessons-per-module count. Completing a lesson twice is a no-op.
func (s *Store) CompleteLesson(_ context.Context, id, lessonID string, at time.Time) (finmentor.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.progressIndexLocked(id)
	if i < 0 {
		return finmentor.Progress{}, errs.ErrNotFound
	}
	p := s.progress[i].Clone()
	if contains(p.CompletedLessons, lessonID) {
		return p, nil
	}
	p.CompletedLessons = append(p.CompletedLessons, lessonID)
	p.LastAccess = at
	p.PercentComplete = lessonPercent(len(p.CompletedLessons))
	s.progress[i] = p
	return p.Clone(), nil
}

// CompleteQuiz marks quizID done and adds score to the running total.
// Completing a quiz twice is a no-op.
func (s *Store) CompleteQuiz(_ context.Context, id, quizID string, score int, at time.Time) (finmentor.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.progressIndexLocked(id)
	if i < 0 {
		return finmentor.Progress{}, errs.ErrNotFound
	}
	p := s.progress[i].Clone()
	if contains(p.CompletedQuizzes, quizID) {
		return p, nil
	}
	p.CompletedQuizzes = append(p.CompletedQuizzes, quizID)
	p.TotalPoints += score
	p.LastAccess = at
	if len(p.CompletedLessons) == finmentor.LessonsPerModule && len(p.CompletedQuizzes) == finmentor.QuizzesPerModule {
		p.PercentComplete = 100
	}
	s.progress[i] = p
	return p.Clone(), nil
}

// lessonPercent is min(round(done/LessonsPerModule*100), 100) in integer arithmetic.
func lessonPercent(done int) int {
	pct := (done*200 + finmentor.LessonsPerModule) / (2 * finmentor.LessonsPerModule)
	return min(pct, 100)
}

// Caller must hold s.mu.
func (s *Store) progressIndexLocked(id string) int {
	for i, p := range s.progress {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) filterProgress(keep func(finmentor.Progress) bool) []finmentor.Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]finmentor.Progress, 0)
	for _, p := range s.progress {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// --- Certificates ---

func (s *Store) ListCertificates(_ context.Context) ([]finmentor.Certificate, error) {
	return s.filterCertificates(func(finmentor.Certificate) bool { return true }), nil
}

func (s *Store) CertificateByTokenID(_ context.Context, tokenID string) (finmentor.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.certificates {
		if c.TokenID == tokenID {
			return c.Clone(), nil
		}
	}
	return finmentor.Certificate{}, errs.ErrNotFound
}

// CertificatesByWallet matches addresses case-insensitively.
func (s *Store) CertificatesByWallet(_ context.Context, wallet string) ([]finmentor.Certificate, error) {
	return s.filterCertificates(func(c finmentor.Certificate) bool { return strings.EqualFold(c.WalletAddress, wallet) }), nil
}

func (s *Store) CertificatesByUserID(_ context.Context, userID string) ([]finmentor.Certificate, error) {
	return s.filterCertificates(func(c finmentor.Certificate) bool { return c.UserID == userID }), nil
}

func (s *Store) CertificatesByModuleID(_ context.Context, moduleID string) ([]finmentor.Certificate, error) {
	return s.filterCertificates(func(c finmentor.Certificate) bool { return c.ModuleID == moduleID }), nil
}

func (s *Store) CreateCertificate(_ context.Context, c finmentor.Certificate) (finmentor.Certificate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c = c.Clone()
	c.TokenID = nextID("nft", len(s.certificates))
	s.certificates = append(s.certificates, c)
	return c.Clone(), nil
}

func (s *Store) filterCertificates(keep func(finmentor.Certificate) bool) []finmentor.Certificate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]finmentor.Certificate, 0)
	for _, c := range s.certificates {
		if keep(c) {
			out = append(out, c.Clone())
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, it := range list {
		if it == v {
			return true
		}
	}
	return false
}
