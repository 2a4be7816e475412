package usecase

import (
	"github.com/Qctopus/contingento-engine/pkg/domain/interfaces"
	"github.com/Qctopus/contingento-engine/pkg/service/refdata"
	"github.com/Qctopus/contingento-engine/pkg/service/strategy"
)

type UseCases struct {
	repo          interfaces.Repository
	refData       *refdata.Service
	strategyLimit int
}

type Option func(*UseCases)

// WithStrategyLimit overrides the ranked strategy cutoff. Zero disables the
// cutoff entirely.
func WithStrategyLimit(limit int) Option {
	return func(uc *UseCases) {
		uc.strategyLimit = limit
	}
}

func New(repo interfaces.Repository, opts ...Option) (*UseCases, error) {
	refData, err := refdata.New(repo)
	if err != nil {
		return nil, err
	}

	uc := &UseCases{
		repo:          repo,
		refData:       refData,
		strategyLimit: strategy.DefaultLimit,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc, nil
}

// RefData exposes the reference data service, mainly so admin surfaces can
// invalidate caches after writes.
func (uc *UseCases) RefData() *refdata.Service {
	return uc.refData
}
