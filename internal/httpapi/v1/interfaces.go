package v1

import (
	"github.com/tinoosan/finmentor/internal/service/certificate"
	"github.com/tinoosan/finmentor/internal/service/content"
	"github.com/tinoosan/finmentor/internal/service/profile"
	"github.com/tinoosan/finmentor/internal/service/progress"
)

// Store composes every repository and writer the v1 services need.
// It is a convenience union satisfied by the in-memory store.
type Store interface {
	profile.Repo
	profile.Writer
	content.Repo
	content.Writer
	progress.Repo
	progress.Writer
	certificate.Repo
	certificate.Writer
}
