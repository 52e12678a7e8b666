package catalog

import "spotui/internal/domain"

// StaticSource serves a fixed track sequence held in memory.
type StaticSource struct {
	tracks []domain.Track
}

func NewStaticSource(tracks []domain.Track) *StaticSource {
	return &StaticSource{tracks: append([]domain.Track(nil), tracks...)}
}

func (s *StaticSource) Tracks() ([]domain.Track, error) {
	return append([]domain.Track(nil), s.tracks...), nil
}

func (s *StaticSource) Close() error { return nil }
