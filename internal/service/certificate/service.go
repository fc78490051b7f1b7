// Package certificate issues and looks up NFT course certificates.
package certificate

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tinoosan/finmentor/internal/errs"
	"github.com/tinoosan/finmentor/internal/finmentor"
	"github.com/tinoosan/finmentor/internal/mint"
	"github.com/tinoosan/finmentor/internal/tags"
)

// DefaultIssuer is stamped into atributos.issuer when the request leaves it blank.
const DefaultIssuer = "FinMentor AI"

type Repo interface {
	ListCertificates(ctx context.Context) ([]finmentor.Certificate, error)
	CertificateByTokenID(ctx context.Context, tokenID string) (finmentor.Certificate, error)
	CertificatesByWallet(ctx context.Context, wallet string) ([]finmentor.Certificate, error)
	CertificatesByUserID(ctx context.Context, userID string) ([]finmentor.Certificate, error)
	CertificatesByModuleID(ctx context.Context, moduleID string) ([]finmentor.Certificate, error)
}

type Writer interface {
	CreateCertificate(ctx context.Context, c finmentor.Certificate) (finmentor.Certificate, error)
}

type Service interface {
	ValidateIssue(c finmentor.Certificate) error
	List(ctx context.Context) ([]finmentor.Certificate, error)
	Get(ctx context.Context, tokenID string) (finmentor.Certificate, error)
	ByWallet(ctx context.Context, wallet string) ([]finmentor.Certificate, error)
	ByUserID(ctx context.Context, userID string) ([]finmentor.Certificate, error)
	ByModuleID(ctx context.Context, moduleID string) ([]finmentor.Certificate, error)
	Issue(ctx context.Context, c finmentor.Certificate) (finmentor.Certificate, error)
}

type service struct {
	repo   Repo
	writer Writer
	minter mint.Minter
	now    func() time.Time
}

func New(repo Repo, writer Writer, minter mint.Minter) Service {
	return &service{repo: repo, writer: writer, minter: minter, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) ValidateIssue(c finmentor.Certificate) error {
	if strings.TrimSpace(c.WalletAddress) == "" || strings.TrimSpace(c.ModuleID) == "" || strings.TrimSpace(c.UserID) == "" {
		return errs.Invalidf("Missing required fields: walletAddress, moduleId, and userId are required")
	}
	if c.Level < 0 || c.Level > finmentor.MaxLevel {
		return errs.Invalidf("Invalid level. Must be a number between 0 and 5")
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]finmentor.Certificate, error) {
	return s.repo.ListCertificates(ctx)
}

func (s *service) Get(ctx context.Context, tokenID string) (finmentor.Certificate, error) {
	c, err := s.repo.CertificateByTokenID(ctx, tokenID)
	if errors.Is(err, errs.ErrNotFound) {
		return finmentor.Certificate{}, errs.NotFoundf("NFT certificate with token ID %s not found", tokenID)
	}
	return c, err
}

func (s *service) ByWallet(ctx context.Context, wallet string) ([]finmentor.Certificate, error) {
	return s.repo.CertificatesByWallet(ctx, strings.TrimSpace(wallet))
}

func (s *service) ByUserID(ctx context.Context, userID string) ([]finmentor.Certificate, error) {
	return s.repo.CertificatesByUserID(ctx, userID)
}

func (s *service) ByModuleID(ctx context.Context, moduleID string) ([]finmentor.Certificate, error) {
	return s.repo.CertificatesByModuleID(ctx, moduleID)
}

// Issue records a certificate. Missing chain identifiers come from the minter.
func (s *service) Issue(ctx context.Context, c finmentor.Certificate) (finmentor.Certificate, error) {
	c.WalletAddress = strings.TrimSpace(c.WalletAddress)
	c.ModuleID = strings.TrimSpace(c.ModuleID)
	c.UserID = strings.TrimSpace(c.UserID)
	if err := s.ValidateIssue(c); err != nil {
		return finmentor.Certificate{}, err
	}
	c.TokenID = ""
	if c.TransactionHash == "" || c.MetadataURI == "" {
		r := s.minter.Mint(c.WalletAddress, c.ModuleID)
		if c.TransactionHash == "" {
			c.TransactionHash = r.TransactionHash
		}
		if c.MetadataURI == "" {
			c.MetadataURI = r.MetadataURI
		}
	}
	if c.IssuedAt.IsZero() {
		c.IssuedAt = s.now()
	}
	if strings.TrimSpace(c.Attributes.Issuer) == "" {
		c.Attributes.Issuer = DefaultIssuer
	}
	var err error
	if c.Attributes.Skills, err = tags.Normalize(c.Attributes.Skills); err != nil {
		return finmentor.Certificate{}, errs.Invalidf("atributos.skills: %v", err)
	}
	return s.writer.CreateCertificate(ctx, c)
}
