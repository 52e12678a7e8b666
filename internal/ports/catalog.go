package ports

import "spotui/internal/domain"

type CatalogService interface {
	Tracks() ([]domain.Track, error)
	Close() error
}
