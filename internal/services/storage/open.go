package storage

import (
	"fmt"

	"spotui/internal/catalog"
	"spotui/internal/domain"
	"spotui/internal/logger"
	"spotui/internal/ports"
	"spotui/internal/services/importer"
)

// OpenCatalog picks the track source for a session. With a database path the bbolt
// store is used, reseeded from the import file when one is given and filled with the
// sample tracks when empty. Without one, the import file or the samples are served
// from memory.
func OpenCatalog(cfg domain.CatalogConfig) (ports.CatalogService, error) {
	var imported []domain.Track
	if cfg.Import != "" {
		tracks, err := importer.ReadFile(cfg.Import)
		if err != nil {
			return nil, err
		}
		imported = tracks
		logger.Log.Info().Str("file", cfg.Import).Int("tracks", len(tracks)).Msg("Catalog imported")
	}

	if cfg.Path == "" {
		if imported != nil {
			return catalog.NewStaticSource(imported), nil
		}
		return catalog.NewStaticSource(catalog.SampleTracks()), nil
	}

	store, err := NewBboltCatalog(cfg.Path)
	if err != nil {
		return nil, err
	}

	seed := imported
	if seed == nil {
		count, err := store.Count()
		if err != nil {
			store.Close()
			return nil, err
		}
		if count == 0 {
			seed = catalog.SampleTracks()
		}
	}
	if seed != nil {
		if err := store.Seed(seed); err != nil {
			store.Close()
			return nil, fmt.Errorf("could not seed catalog: %w", err)
		}
	}
	return store, nil
}
