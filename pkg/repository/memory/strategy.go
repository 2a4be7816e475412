package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/interfaces"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
)

type strategyRepository struct {
	mu         sync.RWMutex
	strategies map[types.StrategyID]*model.Strategy
}

func newStrategyRepository() *strategyRepository {
	return &strategyRepository{
		strategies: make(map[types.StrategyID]*model.Strategy),
	}
}

func copyStrategy(s *model.Strategy) *model.Strategy {
	copied := *s
	copied.ApplicableHazards = append([]types.HazardID(nil), s.ApplicableHazards...)
	copied.ApplicableBusinessTypes = append([]types.BusinessTypeID(nil), s.ApplicableBusinessTypes...)
	copied.Steps = append([]model.ActionStep(nil), s.Steps...)
	return &copied
}

func (r *strategyRepository) Put(ctx context.Context, strategy *model.Strategy) error {
	if err := strategy.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store strategy")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.strategies[strategy.ID] = copyStrategy(strategy)
	return nil
}

func (r *strategyRepository) Get(ctx context.Context, id types.StrategyID) (*model.Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	strategy, exists := r.strategies[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "strategy not found", goerr.V("id", id))
	}

	return copyStrategy(strategy), nil
}

func (r *strategyRepository) ListActive(ctx context.Context) ([]*model.Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var strategies []*model.Strategy
	for _, strategy := range r.strategies {
		if !strategy.Active {
			continue
		}
		strategies = append(strategies, copyStrategy(strategy))
	}

	sort.Slice(strategies, func(i, j int) bool {
		return strategies[i].ID < strategies[j].ID
	})
	return strategies, nil
}
