package registry

import (
	"fmt"

	"go.uber.org/zap"

	"backend/internal/artifact"
	"backend/internal/models"
)

// Registry holds the scoring artifacts loaded at process startup, keyed
// by model kind. Entries are written only during startup and read-only
// afterwards, so concurrent lookups need no locking.
type Registry struct {
	entries map[models.ModelKind]*entry
	logger  *zap.Logger
}

type entry struct {
	art artifact.Artifact
	err error
}

// New creates an empty Registry.
func New(logger *zap.Logger) *Registry {
	return &Registry{
		entries: make(map[models.ModelKind]*entry),
		logger:  logger,
	}
}

// Load reads the artifact for one kind from path. A failure is recorded
// for that kind only and never prevents other kinds from loading; the
// kind simply stays unavailable for the process lifetime.
func (r *Registry) Load(kind models.ModelKind, path string) error {
	art, err := artifact.Load(path)
	if err != nil {
		r.entries[kind] = &entry{err: err}
		r.logger.Error("Failed to load model artifact",
			zap.String("model_kind", string(kind)),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("failed to load %s artifact: %w", kind, err)
	}

	r.entries[kind] = &entry{art: art}
	r.logger.Info("Model artifact loaded",
		zap.String("model_kind", string(kind)),
		zap.String("path", path),
		zap.Int("features", len(art.Features())))
	return nil
}

// Get returns the artifact for kind. The second return value is false
// when the kind was never loaded or its load failed.
func (r *Registry) Get(kind models.ModelKind) (artifact.Artifact, bool) {
	e, ok := r.entries[kind]
	if !ok || e.art == nil {
		return nil, false
	}
	return e.art, true
}

// Status reports per-kind availability, for health reporting.
func (r *Registry) Status() map[models.ModelKind]bool {
	status := make(map[models.ModelKind]bool, len(r.entries))
	for kind, e := range r.entries {
		status[kind] = e.art != nil
	}
	return status
}
