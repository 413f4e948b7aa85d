package query

// ValidatorInfo contains information about a single validator
type ValidatorInfo struct {
	OperatorAddress   string
	Moniker           string
	Status            string // BOND_STATUS_BONDED, _UNBONDING, _UNBONDED
	Tokens            string // Raw bonded token amount in base units
	CommissionRate    string // Current rate as an 18-decimal ratio, e.g. "0.100000000000000000"
	MinSelfDelegation string
	Jailed            bool
}

// ValidatorList contains a list of validators
type ValidatorList struct {
	Validators []ValidatorInfo
	Total      int
}

// Delegation is a delegator's bonded position on one validator.
type Delegation struct {
	DelegatorAddress string
	ValidatorAddress string
	Balance          string // base units
	Denom            string
}
