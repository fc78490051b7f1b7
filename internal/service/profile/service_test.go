package profile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tinoosan/finmentor/internal/errs"
	"github.com/tinoosan/finmentor/internal/finmentor"
	"github.com/tinoosan/finmentor/internal/service/profile"
	"github.com/tinoosan/finmentor/internal/storage/memory"
)

func setup(t *testing.T) profile.Service {
	t.Helper()
	store := memory.New()
	store.Seed()
	return profile.New(store, store)
}

func TestCreate_AssignsIDAndStamps(t *testing.T) {
	svc := setup(t)
	p, err := svc.Create(context.Background(), finmentor.UserProfile{
		UserID:    " user-789 ",
		LevelWeb2: 2,
		Interests: []string{"ahorro", "ahorro", " "},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID != "3" || p.UserID != "user-789" || p.LastUpdated.IsZero() {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if len(p.Interests) != 1 || p.TermHistory == nil {
		t.Fatalf("lists not normalized: %+v", p)
	}
}

func TestCreate_DuplicateUser(t *testing.T) {
	svc := setup(t)
	_, err := svc.Create(context.Background(), finmentor.UserProfile{UserID: "user-123"})
	if !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err.Error() != "User profile already exists for user user-123" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	p, _ := svc.GetByUserID(context.Background(), "user-123")
	if p.ID != "1" || p.LevelWeb2 != 3 {
		t.Fatalf("original profile changed: %+v", p)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := setup(t)
	cases := []finmentor.UserProfile{
		{},
		{UserID: "u", LevelWeb2: -1},
		{UserID: "u", LevelWeb3: 6},
	}
	for _, c := range cases {
		if _, err := svc.Create(context.Background(), c); !errors.Is(err, errs.ErrInvalid) {
			t.Fatalf("expected invalid for %+v, got %v", c, err)
		}
	}
}

func TestGet_NotFoundMessages(t *testing.T) {
	svc := setup(t)
	_, err := svc.Get(context.Background(), "99")
	if !errors.Is(err, errs.ErrNotFound) || err.Error() != "User profile with ID 99 not found" {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = svc.GetByUserID(context.Background(), "ghost")
	if !errors.Is(err, errs.ErrNotFound) || err.Error() != "User profile for user ghost not found" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdate_MergesPatch(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	before, _ := svc.Get(ctx, "1")
	level := 5
	got, err := svc.Update(ctx, "1", profile.Patch{LevelWeb3: &level, Interests: []string{"defi"}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.LevelWeb3 != 5 || got.LevelWeb2 != before.LevelWeb2 || len(got.Interests) != 1 || got.Interests[0] != "defi" {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if len(got.TermHistory) != len(before.TermHistory) {
		t.Fatalf("untouched list changed: %v", got.TermHistory)
	}
	if got.LastUpdated.Before(before.LastUpdated) {
		t.Fatalf("lastUpdated went backwards")
	}
}

func TestUpdate_UserIDConflict(t *testing.T) {
	svc := setup(t)
	uid := "user-456"
	_, err := svc.Update(context.Background(), "1", profile.Patch{UserID: &uid})
	if !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	same := "user-123"
	if _, err := svc.Update(context.Background(), "1", profile.Patch{UserID: &same}); err != nil {
		t.Fatalf("keeping own userId must succeed: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := setup(t)
	if _, err := svc.Update(context.Background(), "404", profile.Patch{}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
