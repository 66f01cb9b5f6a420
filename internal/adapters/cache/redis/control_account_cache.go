package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	goredislib "github.com/redis/go-redis/v9"
)

// ControlAccountRepository caches exact-key lookups, including misses: the
// resolver probes several fallback keys per call and most of them do not exist.
type ControlAccountRepository struct {
	portsrepo.ControlAccountRepositoryFacade
	cache cache
}

func NewControlAccountRepository(next portsrepo.ControlAccountRepositoryFacade, client goredislib.UniversalClient, ttl time.Duration) *ControlAccountRepository {
	return &ControlAccountRepository{ControlAccountRepositoryFacade: next, cache: cache{client: client, ttl: ttl}}
}

var _ portsrepo.ControlAccountRepositoryFacade = (*ControlAccountRepository)(nil)

func controlAccountKey(k domain.ControlAccountKey) string {
	return keyPrefix + "control-account:" + strings.Join([]string{
		k.TenantID, k.CompanyCodeID, string(k.SubLedger), string(k.Category), k.DimensionKey, k.Currency,
	}, ":")
}

func (r *ControlAccountRepository) FindControlAccount(ctx context.Context, key domain.ControlAccountKey) (*domain.ControlAccountConfig, error) {
	cacheKey := controlAccountKey(key)

	var cached domain.ControlAccountConfig
	if hit, miss := r.cache.get(ctx, cacheKey, &cached); hit {
		if miss {
			return nil, apperrors.NewNotFoundError("control account " + key.DimensionKey + "/" + key.Currency)
		}
		return &cached, nil
	}

	config, err := r.ControlAccountRepositoryFacade.FindControlAccount(ctx, key)
	switch {
	case err == nil:
		r.cache.set(ctx, cacheKey, config)
	case errors.Is(err, apperrors.ErrNotFound):
		r.cache.setRaw(ctx, cacheKey, missMarker)
	}
	return config, err
}

func (r *ControlAccountRepository) SaveControlAccount(ctx context.Context, config domain.ControlAccountConfig) (*domain.ControlAccountConfig, error) {
	saved, err := r.ControlAccountRepositoryFacade.SaveControlAccount(ctx, config)
	if err != nil {
		return nil, err
	}
	r.cache.del(ctx, controlAccountKey(saved.Key()))
	return saved, nil
}
