package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tinoosan/finmentor/internal/errs"
	"github.com/tinoosan/finmentor/internal/finmentor"
)

func setup(t *testing.T) *Store {
	t.Helper()
	s := New()
	s.Seed()
	return s
}

func TestSeed_Counts(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	profiles, _ := s.ListProfiles(ctx)
	modules, _ := s.ListModules(ctx)
	terms, _ := s.ListTerms(ctx)
	progress, _ := s.ListProgress(ctx)
	certs, _ := s.ListCertificates(ctx)
	if len(profiles) != 2 || len(modules) != 2 || len(terms) != 3 || len(progress) != 3 || len(certs) != 2 {
		t.Fatalf("unexpected seed sizes: %d %d %d %d %d", len(profiles), len(modules), len(terms), len(progress), len(certs))
	}
	m, err := s.ModuleByID(ctx, "mod-1")
	if err != nil {
		t.Fatalf("mod-1: %v", err)
	}
	if m.Title != "Fundamentos de Finanzas Personales" || len(m.Lessons) != 2 || len(m.Quizzes) != 1 {
		t.Fatalf("unexpected mod-1: %+v", m)
	}
}

func TestReset_Empties(t *testing.T) {
	s := setup(t)
	s.Reset()
	list, _ := s.ListModules(context.Background())
	if len(list) != 0 {
		t.Fatalf("expected empty store, got %d modules", len(list))
	}
}

func TestReads_ReturnCopies(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	m, _ := s.ModuleByID(ctx, "mod-1")
	m.Title = "changed"
	m.Lessons[0].Title = "changed"
	m.Quizzes[0].Questions[0].Options[0] = "changed"
	again, _ := s.ModuleByID(ctx, "mod-1")
	if again.Title == "changed" || again.Lessons[0].Title == "changed" || again.Quizzes[0].Questions[0].Options[0] == "changed" {
		t.Fatalf("store state leaked through a read: %+v", again)
	}

	p, _ := s.ProgressByID(ctx, "prog-1")
	p.CompletedLessons[0] = "mutated"
	again2, _ := s.ProgressByID(ctx, "prog-1")
	if again2.CompletedLessons[0] != "lec-1-1" {
		t.Fatalf("progress slice leaked: %v", again2.CompletedLessons)
	}
}

func TestCreate_SequentialIDs(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	m, _ := s.CreateModule(ctx, finmentor.Module{Title: "x", Category: "ahorro", WebType: finmentor.WebTypeWeb2, Difficulty: 1})
	if m.ID != "mod-3" {
		t.Fatalf("expected mod-3, got %s", m.ID)
	}
	term, _ := s.CreateTerm(ctx, finmentor.Term{Term: "APY", TermType: finmentor.WebTypeWeb3})
	if term.ID != "term-4" {
		t.Fatalf("expected term-4, got %s", term.ID)
	}
	p, _ := s.CreateProfile(ctx, finmentor.UserProfile{UserID: "user-999"})
	if p.ID != "3" {
		t.Fatalf("expected profile 3, got %s", p.ID)
	}
	pr, _ := s.CreateProgress(ctx, finmentor.Progress{UserID: "user-999", ModuleID: "mod-1"})
	if pr.ID != "prog-4" {
		t.Fatalf("expected prog-4, got %s", pr.ID)
	}
	c, _ := s.CreateCertificate(ctx, finmentor.Certificate{WalletAddress: "0xabc", ModuleID: "mod-1", UserID: "user-999"})
	if c.TokenID != "nft-3" {
		t.Fatalf("expected nft-3, got %s", c.TokenID)
	}
}

func TestCreateProfile_DuplicateUserID(t *testing.T) {
	s := setup(t)
	_, err := s.CreateProfile(context.Background(), finmentor.UserProfile{UserID: "user-123"})
	if !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateProfile_NotFoundAndConflict(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	if _, err := s.UpdateProfile(ctx, finmentor.UserProfile{ID: "42", UserID: "x"}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := s.UpdateProfile(ctx, finmentor.UserProfile{ID: "1", UserID: "user-456"}); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateProgress_DuplicatePair(t *testing.T) {
	s := setup(t)
	_, err := s.CreateProgress(context.Background(), finmentor.Progress{UserID: "user-123", ModuleID: "mod-1"})
	if !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCompleteLesson_PercentAndIdempotent(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p, err := s.CompleteLesson(ctx, "prog-1", "lec-1-2", at)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(p.CompletedLessons) != 2 || p.PercentComplete != 100 || !p.LastAccess.Equal(at) {
		t.Fatalf("unexpected progress: %+v", p)
	}
	later := at.Add(time.Hour)
	again, _ := s.CompleteLesson(ctx, "prog-1", "lec-1-2", later)
	if len(again.CompletedLessons) != 2 || !again.LastAccess.Equal(at) {
		t.Fatalf("second completion should be a no-op: %+v", again)
	}
	if _, err := s.CompleteLesson(ctx, "prog-99", "lec-1-1", at); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLessonPercent(t *testing.T) {
	cases := map[int]int{0: 0, 1: 50, 2: 100, 3: 100}
	for done, want := range cases {
		if got := lessonPercent(done); got != want {
			t.Fatalf("lessonPercent(%d) = %d, want %d", done, got, want)
		}
	}
}

func TestCompleteQuiz_PointsAndFullCompletion(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	now := time.Now().UTC()
	if _, err := s.CompleteLesson(ctx, "prog-1", "lec-1-2", now); err != nil {
		t.Fatalf("lesson: %v", err)
	}
	p, err := s.CompleteQuiz(ctx, "prog-1", "quiz-1", 80, now)
	if err != nil {
		t.Fatalf("quiz: %v", err)
	}
	if p.TotalPoints != 80 || p.PercentComplete != 100 || len(p.CompletedQuizzes) != 1 {
		t.Fatalf("unexpected progress: %+v", p)
	}
	again, _ := s.CompleteQuiz(ctx, "prog-1", "quiz-1", 80, now)
	if again.TotalPoints != 80 {
		t.Fatalf("repeat quiz must not add points, got %d", again.TotalPoints)
	}
}

func TestCertificatesByWallet_CaseInsensitive(t *testing.T) {
	s := setup(t)
	list, _ := s.CertificatesByWallet(context.Background(), "0X1234567890ABCDEF1234567890ABCDEF12345678")
	if len(list) != 1 || list[0].TokenID != "nft-1" {
		t.Fatalf("unexpected certificates: %+v", list)
	}
}

func TestFilters_EmptyNotNil(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	mods, _ := s.ModulesByCategory(ctx, "nope")
	certs, _ := s.CertificatesByUserID(ctx, "nobody")
	if mods == nil || certs == nil || len(mods) != 0 || len(certs) != 0 {
		t.Fatalf("filters must return empty slices: %v %v", mods, certs)
	}
}

func TestConcurrentCreates_UniqueIDs(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	var wg sync.WaitGroup
	ids := make(chan string, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			term, err := s.CreateTerm(ctx, finmentor.Term{Term: "t", TermType: finmentor.WebTypeWeb2})
			if err == nil {
				ids <- term.ID
			}
		}()
	}
	wg.Wait()
	close(ids)
	seen := map[string]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
	if len(seen) != 50 {
		t.Fatalf("expected 50 ids, got %d", len(seen))
	}
}
