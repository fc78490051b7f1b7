package memory

import (
	"github.com/tinoosan/finmentor/internal/service/certificate"
	"github.com/tinoosan/finmentor/internal/service/content"
	"github.com/tinoosan/finmentor/internal/service/profile"
	"github.com/tinoosan/finmentor/internal/service/progress"
)

// Compile-time interface assertions documenting which interfaces Store satisfies.
var (
	_ profile.Repo       = (*Store)(nil)
	_ profile.Writer     = (*Store)(nil)
	_ content.Repo       = (*Store)(nil)
	_ content.Writer     = (*Store)(nil)
	_ progress.Repo      = (*Store)(nil)
	_ progress.Writer    = (*Store)(nil)
	_ certificate.Repo   = (*Store)(nil)
	_ certificate.Writer = (*Store)(nil)
)
