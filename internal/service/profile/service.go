// Package profile implements the user-profile rules: one profile per userId,
// server-stamped lastUpdated, bounded proficiency levels.
package profile

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
	ListProfiles(ctx context.Context) ([]finmentor.UserProfile, error)
	ProfileByID(ctx context.Context, id string) (finmentor.UserProfile, error)
	ProfileByUserID(ctx context.Context, userID string) (finmentor.UserProfile, error)
}

type Writer interface {
	CreateProfile(ctx context.Context, p finmentor.UserProfile) (finmentor.UserProfile, error)
	UpdateProfile(ctx context.Context, p finmentor.UserProfile) (finmentor.UserProfile, error)
}

// Patch carries the client-editable fields of a profile; nil means unchanged.
type Patch struct {
	UserID      *string
	LevelWeb2   *int
	LevelWeb3   *int
	Interests   []string
	TermHistory []string
}

type Service interface {
	ValidateCreate(p finmentor.UserProfile) error
	List(ctx context.Context) ([]finmentor.UserProfile, error)
	Get(ctx context.Context, id string) (finmentor.UserProfile, error)
	GetByUserID(ctx context.Context, userID string) (finmentor.UserProfile, error)
	Create(ctx context.Context, p finmentor.UserProfile) (finmentor.UserProfile, error)
	Update(ctx context.Context, id string, patch Patch) (finmentor.UserProfile, error)
}

type service struct {
	repo   Repo
	writer Writer
	now    func() time.Time
}

func New(repo Repo, writer Writer) Service {
	return &service{repo: repo, writer: writer, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) ValidateCreate(p finmentor.UserProfile) error {
	if strings.TrimSpace(p.UserID) == "" {
		return errs.Invalidf("Missing required field: userId")
	}
	return validateLevels(p.LevelWeb2, p.LevelWeb3)
}

func validateLevels(levels ...int) error {
	for _, l := range levels {
		if l < 0 || l > finmentor.MaxLevel {
			return errs.Invalidf("Invalid level. Must be a number between 0 and 5")
		}
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]finmentor.UserProfile, error) {
	return s.repo.ListProfiles(ctx)
}

func (s *service) Get(ctx context.Context, id string) (finmentor.UserProfile, error) {
	p, err := s.repo.ProfileByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		return finmentor.UserProfile{}, errs.NotFoundf("User profile with ID %s not found", id)
	}
	return p, err
}

func (s *service) GetByUserID(ctx context.Context, userID string) (finmentor.UserProfile, error) {
	p, err := s.repo.ProfileByUserID(ctx, userID)
	if errors.Is(err, errs.ErrNotFound) {
		return finmentor.UserProfile{}, errs.NotFoundf("User profile for user %s not found", userID)
	}
	return p, err
}

func (s *service) Create(ctx context.Context, p finmentor.UserProfile) (finmentor.UserProfile, error) {
	p.UserID = strings.TrimSpace(p.UserID)
	if err := s.ValidateCreate(p); err != nil {
		return finmentor.UserProfile{}, err
	}
	if err := s.ensureUserFree(ctx, p.UserID, ""); err != nil {
		return finmentor.UserProfile{}, err
	}
	var err error
	if p.Interests, err = tags.Normalize(p.Interests); err != nil {
		return finmentor.UserProfile{}, errs.Invalidf("areasInteres: %v", err)
	}
	if p.TermHistory, err = tags.Normalize(p.TermHistory); err != nil {
		return finmentor.UserProfile{}, errs.Invalidf("historialTerminos: %v", err)
	}
	p.ID = ""
	p.LastUpdated = s.now()
	created, err := s.writer.CreateProfile(ctx, p)
	if errors.Is(err, errs.ErrConflict) {
		return finmentor.UserProfile{}, alreadyExists(p.UserID)
	}
	return created, err
}

func (s *service) Update(ctx context.Context, id string, patch Patch) (finmentor.UserProfile, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return finmentor.UserProfile{}, err
	}
	if patch.UserID != nil {
		uid := strings.TrimSpace(*patch.UserID)
		if uid == "" {
			return finmentor.UserProfile{}, errs.Invalidf("Missing required field: userId")
		}
		if uid != current.UserID {
			if err := s.ensureUserFree(ctx, uid, current.ID); err != nil {
				return finmentor.UserProfile{}, err
			}
		}
		current.UserID = uid
	}
	if patch.LevelWeb2 != nil {
		current.LevelWeb2 = *patch.LevelWeb2
	}
	if patch.LevelWeb3 != nil {
		current.LevelWeb3 = *patch.LevelWeb3
	}
	if err := validateLevels(current.LevelWeb2, current.LevelWeb3); err != nil {
		return finmentor.UserProfile{}, err
	}
	if patch.Interests != nil {
		if current.Interests, err = tags.Normalize(patch.Interests); err != nil {
			return finmentor.UserProfile{}, errs.Invalidf("areasInteres: %v", err)
		}
	}
	if patch.TermHistory != nil {
		if current.TermHistory, err = tags.Normalize(patch.TermHistory); err != nil {
			return finmentor.UserProfile{}, errs.Invalidf("historialTerminos: %v", err)
		}
	}
	current.LastUpdated = s.now()
	updated, err := s.writer.UpdateProfile(ctx, current)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return finmentor.UserProfile{}, errs.NotFoundf("User profile with ID %s not found", id)
	case errors.Is(err, errs.ErrConflict):
		return finmentor.UserProfile{}, alreadyExists(current.UserID)
	}
	return updated, err
}

// ensureUserFree fails with a conflict when userID already owns a profile other than selfID.
func (s *service) ensureUserFree(ctx context.Context, userID, selfID string) error {
	existing, err := s.repo.ProfileByUserID(ctx, userID)
	if err == nil && existing.ID != selfID {
		return alreadyExists(userID)
	}
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	return nil
}

func alreadyExists(userID string) error {
	return errs.Conflictf("User profile already exists for user %s", userID)
}
