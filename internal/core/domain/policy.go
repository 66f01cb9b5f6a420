package domain

// DimensionRequirement says whether a dimension must be present on a line.
type DimensionRequirement string

const (
	Mandatory DimensionRequirement = "MANDATORY"
	Optional  DimensionRequirement = "OPTIONAL"
)

func (r DimensionRequirement) Valid() bool {
	return r == Mandatory || r == Optional
}

// AccountDimensionPolicy is one cell of a tenant's (account type x dimension type) matrix.
type AccountDimensionPolicy struct {
	PolicyID      string               `json:"policyID"`
	TenantID      string               `json:"tenantID"`
	AccountType   AccountType          `json:"accountType"`
	DimensionType DimensionType        `json:"dimensionType"`
	Requirement   DimensionRequirement `json:"requirement"`
}

// DefaultRequirement is the requirement seeded for a tenant with no policies:
// COST_CENTER is mandatory on EXPENSE and REVENUE accounts, everything else optional.
func DefaultRequirement(accountType AccountType, dimensionType DimensionType) DimensionRequirement {
	if dimensionType != CostCenter {
		return Optional
	}
	switch accountType {
	case Expense, Revenue:
		return Mandatory
	case Asset, Liability, Equity:
		return Optional
	}
	return Optional
}

// DefaultDimensionPolicies builds the full default matrix for a tenant.
// newID supplies the policy ids.
func DefaultDimensionPolicies(tenantID string, newID func() string) []AccountDimensionPolicy {
	policies := make([]AccountDimensionPolicy, 0, len(AccountTypes())*len(DimensionTypes()))
	for _, at := range AccountTypes() {
		for _, dt := range DimensionTypes() {
			policies = append(policies, AccountDimensionPolicy{
				PolicyID:      newID(),
				TenantID:      tenantID,
				AccountType:   at,
				DimensionType: dt,
				Requirement:   DefaultRequirement(at, dt),
			})
		}
	}
	return policies
}

// PolicyMatrix indexes policies by account type then dimension type.
type PolicyMatrix map[AccountType]map[DimensionType]DimensionRequirement

func NewPolicyMatrix(policies []AccountDimensionPolicy) PolicyMatrix {
	m := make(PolicyMatrix)
	for _, p := range policies {
		row, ok := m[p.AccountType]
		if !ok {
			row = make(map[DimensionType]DimensionRequirement)
			m[p.AccountType] = row
		}
		row[p.DimensionType] = p.Requirement
	}
	return m
}

// MandatoryFor lists the mandatory dimension types for an account type in fixed order.
func (m PolicyMatrix) MandatoryFor(accountType AccountType) []DimensionType {
	row := m[accountType]
	var out []DimensionType
	for _, dt := range DimensionTypes() {
		if row[dt] == Mandatory {
			out = append(out, dt)
		}
	}
	return out
}
