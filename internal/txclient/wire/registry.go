package wire

import (
	"fmt"

	"github.com/injective-ops/validator-console/internal/msgs"
	"github.com/injective-ops/validator-console/internal/numeric"
)

// Registry maps each message kind to its wire encoder. It is installed on
// the signing client at construction and covers exactly the six kinds the
// console submits; the match over the sealed msgs.Msg union is exhaustive,
// so an unregistered kind cannot compile its way into a transaction.
type Registry struct{}

// NewRegistry returns the console's encoder registry.
func NewRegistry() *Registry { return &Registry{} }

// Encode serializes a message to its wire bytes plus type URL.
func (r *Registry) Encode(m msgs.Msg) (typeURL string, value []byte, err error) {
	switch v := m.(type) {
	case msgs.CreateValidator:
		value, err = encodeCreateValidator(v)
	case msgs.EditValidator:
		value, err = encodeEditValidator(v)
	case msgs.SetOrchestratorAddresses:
		value = encodeSetOrchestratorAddresses(v)
	case msgs.Delegate:
		value = encodeDelegate(v)
	case msgs.Undelegate:
		value = encodeUndelegate(v)
	case msgs.Unjail:
		value = encodeUnjail(v)
	default:
		return "", nil, fmt.Errorf("no encoder registered for %T", m)
	}
	if err != nil {
		return "", nil, err
	}
	return m.TypeURL(), value, nil
}

// EncodeAny serializes a message wrapped in its Any envelope, ready for a
// TxBody messages slot.
func (r *Registry) EncodeAny(m msgs.Msg) ([]byte, error) {
	typeURL, value, err := r.Encode(m)
	if err != nil {
		return nil, err
	}
	return EncodeAny(typeURL, value), nil
}

// encodeDescription encodes staking Description: moniker=1, identity=2,
// website=3, security_contact=4, details=5.
func encodeDescription(d msgs.Description) []byte {
	var b []byte
	b = appendString(b, 1, d.Moniker)
	b = appendString(b, 2, d.Identity)
	b = appendString(b, 3, d.Website)
	b = appendString(b, 4, d.SecurityContact)
	b = appendString(b, 5, d.Details)
	return b
}

// encodeCommissionRates encodes CommissionRates: rate=1, max_rate=2,
// max_change_rate=3. Dec fields travel as bare scaled integer strings.
func encodeCommissionRates(c msgs.CommissionRates) ([]byte, error) {
	rate, err := numeric.RatioToWire(c.Rate)
	if err != nil {
		return nil, fmt.Errorf("commission rate: %w", err)
	}
	maxRate, err := numeric.RatioToWire(c.MaxRate)
	if err != nil {
		return nil, fmt.Errorf("commission max rate: %w", err)
	}
	maxChange, err := numeric.RatioToWire(c.MaxChangeRate)
	if err != nil {
		return nil, fmt.Errorf("commission max change rate: %w", err)
	}
	var b []byte
	b = appendString(b, 1, rate)
	b = appendString(b, 2, maxRate)
	b = appendString(b, 3, maxChange)
	return b, nil
}

// encodeCreateValidator encodes MsgCreateValidator: description=1,
// commission=2, min_self_delegation=3, delegator_address=4,
// validator_address=5, pubkey=6 (Any), value=7 (Coin). The nested
// description/commission/value messages are non-nullable in the schema and
// always emitted.
func encodeCreateValidator(m msgs.CreateValidator) ([]byte, error) {
	commission, err := encodeCommissionRates(m.Commission)
	if err != nil {
		return nil, err
	}
	var b []byte
	b = appendMessage(b, 1, encodeDescription(m.Description))
	b = appendMessage(b, 2, commission)
	b = appendString(b, 3, m.MinSelfDelegation)
	b = appendString(b, 4, m.DelegatorAddress)
	b = appendString(b, 5, m.ValidatorAddress)
	b = appendMessage(b, 6, EncodeAny(TypeURLEd25519PubKey, EncodeEd25519PubKey(m.Pubkey)))
	b = appendMessage(b, 7, EncodeCoin(m.Value))
	return b, nil
}

// encodeEditValidator encodes MsgEditValidator: description=1,
// validator_address=2, commission_rate=3, min_self_delegation=4. The
// optional commission_rate is omitted from the wire entirely when absent,
// never encoded as an empty or zero value.
func encodeEditValidator(m msgs.EditValidator) ([]byte, error) {
	var b []byte
	b = appendMessage(b, 1, encodeDescription(m.Description))
	b = appendString(b, 2, m.ValidatorAddress)
	if m.CommissionRate != nil {
		rate, err := numeric.RatioToWire(*m.CommissionRate)
		if err != nil {
			return nil, fmt.Errorf("commission rate: %w", err)
		}
		b = appendString(b, 3, rate)
	}
	return b, nil
}

// encodeSetOrchestratorAddresses encodes MsgSetOrchestratorAddresses:
// sender=1, orchestrator=2, eth_address=3.
func encodeSetOrchestratorAddresses(m msgs.SetOrchestratorAddresses) []byte {
	var b []byte
	b = appendString(b, 1, m.Sender)
	b = appendString(b, 2, m.Orchestrator)
	b = appendString(b, 3, m.EthAddress)
	return b
}

// encodeDelegate encodes MsgDelegate: delegator_address=1,
// validator_address=2, amount=3.
func encodeDelegate(m msgs.Delegate) []byte {
	var b []byte
	b = appendString(b, 1, m.DelegatorAddress)
	b = appendString(b, 2, m.ValidatorAddress)
	b = appendMessage(b, 3, EncodeCoin(m.Amount))
	return b
}

// encodeUndelegate encodes MsgUndelegate with MsgDelegate's field layout.
func encodeUndelegate(m msgs.Undelegate) []byte {
	var b []byte
	b = appendString(b, 1, m.DelegatorAddress)
	b = appendString(b, 2, m.ValidatorAddress)
	b = appendMessage(b, 3, EncodeCoin(m.Amount))
	return b
}

// encodeUnjail encodes MsgUnjail: validator_addr=1.
func encodeUnjail(m msgs.Unjail) []byte {
	return appendString(nil, 1, m.ValidatorAddress)
}
