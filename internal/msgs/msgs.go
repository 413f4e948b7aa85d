// Package msgs defines the closed set of chain messages the console can
// submit, plus the pure builders that turn validated form input into them.
// The set is a sum type: the wire encoder switches exhaustively over the
// concrete kinds, so a new message cannot be added without teaching the
// encoder about it.
package msgs

// Msg is the sealed union over the six message kinds.
type Msg interface {
	TypeURL() string
	isMsg()
}

// Type URLs are the chain's canonical message identifiers; they travel
// inside the Any wrapper and are not negotiable.
const (
	TypeURLCreateValidator          = "/cosmos.staking.v1beta1.MsgCreateValidator"
	TypeURLEditValidator            = "/cosmos.staking.v1beta1.MsgEditValidator"
	TypeURLDelegate                 = "/cosmos.staking.v1beta1.MsgDelegate"
	TypeURLUndelegate               = "/cosmos.staking.v1beta1.MsgUndelegate"
	TypeURLUnjail                   = "/cosmos.slashing.v1beta1.MsgUnjail"
	TypeURLSetOrchestratorAddresses = "/injective.peggy.v1.MsgSetOrchestratorAddresses"
)

// Coin is a denom plus a base-unit integer amount string.
type Coin struct {
	Denom  string
	Amount string
}

// Fee is the transaction fee: flat coin amounts plus a gas limit string.
// Gas starts as a placeholder and is replaced by the estimator before
// signing.
type Fee struct {
	Amount []Coin
	Gas    string
}

// Description is validator metadata. Empty fields are valid and encode as
// empty strings on chain (they clear the corresponding field on edit).
type Description struct {
	Moniker         string
	Identity        string
	Website         string
	SecurityContact string
	Details         string
}

// CommissionRates holds 18-decimal ratio strings in [0,1].
type CommissionRates struct {
	Rate          string
	MaxRate       string
	MaxChangeRate string
}

// CreateValidator registers a new validator with an initial self-delegation.
type CreateValidator struct {
	Description       Description
	Commission        CommissionRates
	MinSelfDelegation string // base units
	DelegatorAddress  string
	ValidatorAddress  string
	Pubkey            []byte // 32-byte ed25519 consensus key
	Value             Coin   // initial self-delegation
}

// EditValidator updates validator metadata and, optionally, the commission
// rate. A nil CommissionRate means "unchanged" and is omitted from the wire
// output entirely; it is distinct from a zero rate.
type EditValidator struct {
	Description      Description
	ValidatorAddress string
	CommissionRate   *string // 18-decimal ratio, nil when unchanged
}

// SetOrchestratorAddresses registers the immutable orchestrator/bridge
// address mapping for a validator.
type SetOrchestratorAddresses struct {
	Sender       string
	Orchestrator string
	EthAddress   string
}

// Delegate bonds stake to a validator.
type Delegate struct {
	DelegatorAddress string
	ValidatorAddress string
	Amount           Coin
}

// Undelegate unbonds stake from a validator.
type Undelegate struct {
	DelegatorAddress string
	ValidatorAddress string
	Amount           Coin
}

// Unjail restores a jailed validator to the active set.
type Unjail struct {
	ValidatorAddress string
}

func (CreateValidator) TypeURL() string          { return TypeURLCreateValidator }
func (EditValidator) TypeURL() string            { return TypeURLEditValidator }
func (SetOrchestratorAddresses) TypeURL() string { return TypeURLSetOrchestratorAddresses }
func (Delegate) TypeURL() string                 { return TypeURLDelegate }
func (Undelegate) TypeURL() string               { return TypeURLUndelegate }
func (Unjail) TypeURL() string                   { return TypeURLUnjail }

func (CreateValidator) isMsg()          {}
func (EditValidator) isMsg()            {}
func (SetOrchestratorAddresses) isMsg() {}
func (Delegate) isMsg()                 {}
func (Undelegate) isMsg()               {}
func (Unjail) isMsg()                   {}
