package v1

import "github.com/tinoosan/finmentor/internal/storage/memory"

// Compile-time interface assertion for the in-memory Store against the v1 API.
var _ Store = (*memory.Store)(nil)
