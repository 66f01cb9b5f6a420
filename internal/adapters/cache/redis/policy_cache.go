package redis

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	goredislib "github.com/redis/go-redis/v9"
)

// PolicyRepository caches a tenant's policy matrix. Writes drop the tenant's entry.
type PolicyRepository struct {
	portsrepo.PolicyRepositoryFacade
	cache cache
}

// NewPolicyRepository wraps next with a read-through cache.
func NewPolicyRepository(next portsrepo.PolicyRepositoryFacade, client goredislib.UniversalClient, ttl time.Duration) *PolicyRepository {
	return &PolicyRepository{PolicyRepositoryFacade: next, cache: cache{client: client, ttl: ttl}}
}

var (
	_ portsrepo.PolicyRepositoryFacade = (*PolicyRepository)(nil)
	_ portsrepo.PolicyCacheInvalidator = (*PolicyRepository)(nil)
)

func policyKey(tenantID string) string {
	return keyPrefix + "policies:" + tenantID
}

func (r *PolicyRepository) FindPoliciesByTenant(ctx context.Context, tenantID string) ([]domain.AccountDimensionPolicy, error) {
	var cached []domain.AccountDimensionPolicy
	if hit, _ := r.cache.get(ctx, policyKey(tenantID), &cached); hit {
		return cached, nil
	}

	policies, err := r.PolicyRepositoryFacade.FindPoliciesByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	// An empty matrix is about to be seeded; caching it would hide the seed.
	if len(policies) > 0 {
		r.cache.set(ctx, policyKey(tenantID), policies)
	}
	return policies, nil
}

func (r *PolicyRepository) SavePolicies(ctx context.Context, policies []domain.AccountDimensionPolicy) error {
	if err := r.PolicyRepositoryFacade.SavePolicies(ctx, policies); err != nil {
		return err
	}
	seen := make(map[string]bool)
	var keys []string
	for _, p := range policies {
		if !seen[p.TenantID] {
			seen[p.TenantID] = true
			keys = append(keys, policyKey(p.TenantID))
		}
	}
	r.cache.del(ctx, keys...)
	return nil
}

// InvalidatePolicies drops the cached matrix of tenantID.
func (r *PolicyRepository) InvalidatePolicies(ctx context.Context, tenantID string) {
	r.cache.del(ctx, policyKey(tenantID))
}

func (r *PolicyRepository) DeletePolicy(ctx context.Context, tenantID string, dimensionType domain.DimensionType, accountType domain.AccountType) error {
	if err := r.PolicyRepositoryFacade.DeletePolicy(ctx, tenantID, dimensionType, accountType); err != nil {
		return err
	}
	r.cache.del(ctx, policyKey(tenantID))
	return nil
}
