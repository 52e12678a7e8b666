package ports

import "spotui/internal/domain"

type ConfigService interface {
	Load() (domain.Config, error)
}
