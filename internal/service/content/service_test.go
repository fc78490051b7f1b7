package content_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tinoosan/finmentor/internal/errs"
	"github.com/tinoosan/finmentor/internal/finmentor"
	"github.com/tinoosan/finmentor/internal/service/content"
	"github.com/tinoosan/finmentor/internal/storage/memory"
)

func setup(t *testing.T) content.Service {
	t.Helper()
	store := memory.New()
	store.Seed()
	return content.New(store, store)
}

func TestGetModule(t *testing.T) {
	svc := setup(t)
	m, err := svc.GetModule(context.Background(), "mod-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if m.Title != "Fundamentos de Finanzas Personales" || len(m.Lessons) != 2 || len(m.Quizzes) != 1 {
		t.Fatalf("unexpected module: %+v", m)
	}
	_, err = svc.GetModule(context.Background(), "mod-9")
	if !errors.Is(err, errs.ErrNotFound) || err.Error() != "Educational module with ID mod-9 not found" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateModule_StampsAndSlugs(t *testing.T) {
	svc := setup(t)
	m, err := svc.CreateModule(context.Background(), finmentor.Module{
		Title:      " Impuestos Básicos ",
		Category:   "Impuestos Básicos",
		WebType:    finmentor.WebTypeWeb2,
		Difficulty: 2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if m.ID != "mod-3" || m.Category != "impuestos-basicos" || m.Title != "Impuestos Básicos" {
		t.Fatalf("unexpected module: %+v", m)
	}
	if m.CreatedAt.IsZero() || !m.CreatedAt.Equal(m.UpdatedAt) {
		t.Fatalf("timestamps not stamped: %+v", m)
	}
	if m.Lessons == nil || m.Quizzes == nil || m.Prerequisites == nil {
		t.Fatalf("lists must be non-nil: %+v", m)
	}
}

func TestCreateModule_Validation(t *testing.T) {
	svc := setup(t)
	cases := []finmentor.Module{
		{Category: "x", WebType: "web2", Difficulty: 1},
		{Title: "t", WebType: "web2", Difficulty: 1},
		{Title: "t", Category: "x", WebType: "web4", Difficulty: 1},
		{Title: "t", Category: "x", WebType: "web2", Difficulty: 6},
		{Title: "t", Category: "x", WebType: "web2", Difficulty: 0},
	}
	for _, c := range cases {
		if _, err := svc.CreateModule(context.Background(), c); !errors.Is(err, errs.ErrInvalid) {
			t.Fatalf("expected invalid for %+v, got %v", c, err)
		}
	}
}

func TestModuleFilters(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	web3, err := svc.ModulesByWebType(ctx, finmentor.WebTypeWeb3)
	if err != nil || len(web3) != 1 || web3[0].ID != "mod-2" {
		t.Fatalf("web3 filter: %v %v", web3, err)
	}
	if _, err := svc.ModulesByWebType(ctx, "web5"); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected invalid web type, got %v", err)
	}
	if _, err := svc.ModulesByDifficulty(ctx, 9); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected invalid difficulty, got %v", err)
	}
	byCat, _ := svc.ModulesByCategory(ctx, "Finanzas Personales")
	if len(byCat) != 1 || byCat[0].ID != "mod-1" {
		t.Fatalf("category filter: %v", byCat)
	}
}

func TestTerms(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	crypto, _ := svc.TermsByCategory(ctx, "crypto")
	if len(crypto) != 2 {
		t.Fatalf("expected 2 crypto terms, got %d", len(crypto))
	}
	web2, _ := svc.TermsByWebType(ctx, finmentor.WebTypeWeb2)
	if len(web2) != 1 || web2[0].Term != "ETF" {
		t.Fatalf("unexpected web2 terms: %v", web2)
	}
	_, err := svc.GetTerm(ctx, "term-9")
	if !errors.Is(err, errs.ErrNotFound) || err.Error() != "Financial term with ID term-9 not found" {
		t.Fatalf("unexpected error: %v", err)
	}
	term, err := svc.CreateTerm(ctx, finmentor.Term{Term: "APY", TermType: finmentor.WebTypeWeb3})
	if err != nil {
		t.Fatalf("create term: %v", err)
	}
	if term.ID != "term-4" || term.Category != content.DefaultTermCategory {
		t.Fatalf("unexpected term: %+v", term)
	}
	if _, err := svc.CreateTerm(ctx, finmentor.Term{Term: "x", TermType: "web9"}); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
}
