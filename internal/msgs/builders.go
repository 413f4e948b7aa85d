package msgs

import (
	"encoding/base64"
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/injective-ops/validator-console/internal/address"
	"github.com/injective-ops/validator-console/internal/config"
	"github.com/injective-ops/validator-console/internal/numeric"
	"github.com/injective-ops/validator-console/internal/txerrors"
)

const (
	// flatFeeAmount is the fixed fee in base units attached to every
	// console transaction (0.0005 of the native token).
	flatFeeAmount = "500000000000000"

	// placeholderGas is the gas value carried by a freshly built fee.
	// The estimator replaces it before signing.
	placeholderGas = "400000"
)

// StdFee returns the console's flat fee with the placeholder gas limit.
func StdFee(denom string) Fee {
	return Fee{
		Amount: []Coin{{Denom: denom, Amount: flatFeeAmount}},
		Gas:    placeholderGas,
	}
}

// CreateValidatorForm is the validated registration form. Amounts are
// display-unit strings; commission fields are human percentages.
type CreateValidatorForm struct {
	Moniker         string
	Identity        string
	Website         string
	SecurityContact string
	Details         string

	CommissionRate          string // percent, e.g. "10.5"
	CommissionMaxRate       string
	CommissionMaxChangeRate string

	MinSelfDelegation string // display units
	SelfDelegation    string // display units
	PubkeyBase64      string // base64 ed25519 consensus key
}

// BuildCreateValidator constructs a MsgCreateValidator and its fee. The
// operator address is always derived from signer by bech32 re-encode.
func BuildCreateValidator(cfg config.Config, signer string, f CreateValidatorForm) (CreateValidator, Fee, error) {
	var zero CreateValidator

	pubkey, err := base64.StdEncoding.DecodeString(f.PubkeyBase64)
	if err != nil {
		return zero, Fee{}, fmt.Errorf("%w: not valid base64: %v", txerrors.ErrInvalidPubkey, err)
	}
	if len(pubkey) != 32 {
		return zero, Fee{}, fmt.Errorf("%w: got %d bytes, want 32", txerrors.ErrInvalidPubkey, len(pubkey))
	}

	selfDel, err := positiveBaseUnits(f.SelfDelegation)
	if err != nil {
		return zero, Fee{}, fmt.Errorf("self delegation: %w", err)
	}
	minSelfDel, err := positiveBaseUnits(f.MinSelfDelegation)
	if err != nil {
		return zero, Fee{}, fmt.Errorf("min self delegation: %w", err)
	}
	if selfDel.LT(minSelfDel) {
		return zero, Fee{}, fmt.Errorf("%w: self delegation %s below minimum %s",
			txerrors.ErrConstraint, f.SelfDelegation, f.MinSelfDelegation)
	}

	commission, err := commissionRates(f.CommissionRate, f.CommissionMaxRate, f.CommissionMaxChangeRate)
	if err != nil {
		return zero, Fee{}, err
	}

	if err := address.Validate(signer, cfg.Bech32Prefix); err != nil {
		return zero, Fee{}, fmt.Errorf("%w: %v", txerrors.ErrSignerUnavailable, err)
	}
	valoper, err := address.Reencode(signer, cfg.ValoperPrefix)
	if err != nil {
		return zero, Fee{}, err
	}

	msg := CreateValidator{
		Description: Description{
			Moniker:         f.Moniker,
			Identity:        f.Identity,
			Website:         f.Website,
			SecurityContact: f.SecurityContact,
			Details:         f.Details,
		},
		Commission:        commission,
		MinSelfDelegation: minSelfDel.String(),
		DelegatorAddress:  signer,
		ValidatorAddress:  valoper,
		Pubkey:            pubkey,
		Value:             Coin{Denom: cfg.Denom, Amount: selfDel.String()},
	}
	return msg, StdFee(cfg.Denom), nil
}

// EditValidatorForm carries updated metadata plus an optional commission
// change. CurrentRate is the validator's on-chain rate (18-decimal ratio)
// used to suppress no-op commission edits.
type EditValidatorForm struct {
	Moniker         string
	Identity        string
	Website         string
	SecurityContact string
	Details         string

	CommissionRate string // percent; empty means "leave unchanged"
	CurrentRate    string // on-chain 18-decimal ratio
}

// BuildEditValidator constructs a MsgEditValidator. The commission field is
// omitted when no rate was given or when the normalized new rate equals the
// normalized current rate, so a no-op edit never trips the chain's
// max-change-rate constraint.
func BuildEditValidator(cfg config.Config, signer string, f EditValidatorForm) (EditValidator, Fee, error) {
	var zero EditValidator

	if err := address.Validate(signer, cfg.Bech32Prefix); err != nil {
		return zero, Fee{}, fmt.Errorf("%w: %v", txerrors.ErrSignerUnavailable, err)
	}
	valoper, err := address.Reencode(signer, cfg.ValoperPrefix)
	if err != nil {
		return zero, Fee{}, err
	}

	msg := EditValidator{
		Description: Description{
			Moniker:         f.Moniker,
			Identity:        f.Identity,
			Website:         f.Website,
			SecurityContact: f.SecurityContact,
			Details:         f.Details,
		},
		ValidatorAddress: valoper,
	}

	if f.CommissionRate != "" {
		ratio, err := boundedRatio(f.CommissionRate)
		if err != nil {
			return zero, Fee{}, err
		}
		changed := true
		if f.CurrentRate != "" {
			newV, err := numeric.ParseScaled(ratio, numeric.RateDecimals)
			if err != nil {
				return zero, Fee{}, err
			}
			curV, err := numeric.ParseScaled(f.CurrentRate, numeric.RateDecimals)
			if err != nil {
				return zero, Fee{}, fmt.Errorf("current commission rate: %w", err)
			}
			changed = !newV.Equal(curV)
		}
		if changed {
			msg.CommissionRate = &ratio
		}
	}
	return msg, StdFee(cfg.Denom), nil
}

// OrchestratorForm carries the orchestrator/bridge address pair. The
// mapping is immutable on chain; the UI confirms before submitting, the
// builder only validates shape.
type OrchestratorForm struct {
	Orchestrator string // bech32 account address
	EthAddress   string // 0x-prefixed 20-byte hex
}

// BuildSetOrchestratorAddresses constructs a MsgSetOrchestratorAddresses.
func BuildSetOrchestratorAddresses(cfg config.Config, signer string, f OrchestratorForm) (SetOrchestratorAddresses, Fee, error) {
	var zero SetOrchestratorAddresses

	if err := address.Validate(signer, cfg.Bech32Prefix); err != nil {
		return zero, Fee{}, fmt.Errorf("%w: %v", txerrors.ErrSignerUnavailable, err)
	}
	if err := address.Validate(f.Orchestrator, cfg.Bech32Prefix); err != nil {
		return zero, Fee{}, fmt.Errorf("orchestrator address: %w", err)
	}
	if !address.ValidEthereum(f.EthAddress) {
		return zero, Fee{}, fmt.Errorf("ethereum address %q is not a 0x-prefixed 20-byte hex address", f.EthAddress)
	}

	msg := SetOrchestratorAddresses{
		Sender:       signer,
		Orchestrator: f.Orchestrator,
		EthAddress:   f.EthAddress,
	}
	return msg, StdFee(cfg.Denom), nil
}

// BuildDelegate constructs a MsgDelegate for a display-unit amount.
func BuildDelegate(cfg config.Config, signer, validatorAddr, amount string) (Delegate, Fee, error) {
	var zero Delegate
	base, err := positiveBaseUnits(amount)
	if err != nil {
		return zero, Fee{}, err
	}
	if err := address.Validate(validatorAddr, cfg.ValoperPrefix); err != nil {
		return zero, Fee{}, err
	}
	msg := Delegate{
		DelegatorAddress: signer,
		ValidatorAddress: validatorAddr,
		Amount:           Coin{Denom: cfg.Denom, Amount: base.String()},
	}
	return msg, StdFee(cfg.Denom), nil
}

// BuildUndelegate constructs a MsgUndelegate for a display-unit amount.
func BuildUndelegate(cfg config.Config, signer, validatorAddr, amount string) (Undelegate, Fee, error) {
	var zero Undelegate
	base, err := positiveBaseUnits(amount)
	if err != nil {
		return zero, Fee{}, err
	}
	if err := address.Validate(validatorAddr, cfg.ValoperPrefix); err != nil {
		return zero, Fee{}, err
	}
	msg := Undelegate{
		DelegatorAddress: signer,
		ValidatorAddress: validatorAddr,
		Amount:           Coin{Denom: cfg.Denom, Amount: base.String()},
	}
	return msg, StdFee(cfg.Denom), nil
}

// BuildUnjail constructs a MsgUnjail for the signer's own validator.
func BuildUnjail(cfg config.Config, signer string) (Unjail, Fee, error) {
	if err := address.Validate(signer, cfg.Bech32Prefix); err != nil {
		return Unjail{}, Fee{}, fmt.Errorf("%w: %v", txerrors.ErrSignerUnavailable, err)
	}
	valoper, err := address.Reencode(signer, cfg.ValoperPrefix)
	if err != nil {
		return Unjail{}, Fee{}, err
	}
	return Unjail{ValidatorAddress: valoper}, StdFee(cfg.Denom), nil
}

// positiveBaseUnits converts a display amount to base units, truncating
// excess precision, and requires the result to be strictly positive.
func positiveBaseUnits(display string) (sdkmath.Int, error) {
	base, err := numeric.ToBaseUnits(display, numeric.TokenDecimals)
	if err != nil {
		return sdkmath.Int{}, fmt.Errorf("%w: %v", txerrors.ErrInvalidAmount, err)
	}
	v, ok := sdkmath.NewIntFromString(base)
	if !ok || !v.IsPositive() {
		return sdkmath.Int{}, fmt.Errorf("%w: %q must be positive", txerrors.ErrInvalidAmount, display)
	}
	return v, nil
}

// boundedRatio converts a percentage to an 18-decimal ratio and enforces
// the [0,1] bound.
func boundedRatio(percent string) (string, error) {
	ratio, err := numeric.PercentToRatio(percent)
	if err != nil {
		return "", err
	}
	v, err := numeric.ParseScaled(ratio, numeric.RateDecimals)
	if err != nil {
		return "", err
	}
	one := sdkmath.NewIntWithDecimal(1, numeric.RateDecimals)
	if v.IsNegative() || v.GT(one) {
		return "", fmt.Errorf("%w: commission %s%% outside [0,100]", txerrors.ErrConstraint, percent)
	}
	return ratio, nil
}

// commissionRates converts the three percentage fields and checks their
// mutual constraints.
func commissionRates(rate, maxRate, maxChange string) (CommissionRates, error) {
	r, err := boundedRatio(rate)
	if err != nil {
		return CommissionRates{}, fmt.Errorf("commission rate: %w", err)
	}
	mr, err := boundedRatio(maxRate)
	if err != nil {
		return CommissionRates{}, fmt.Errorf("commission max rate: %w", err)
	}
	mc, err := boundedRatio(maxChange)
	if err != nil {
		return CommissionRates{}, fmt.Errorf("commission max change rate: %w", err)
	}

	rv, _ := numeric.ParseScaled(r, numeric.RateDecimals)
	mrv, _ := numeric.ParseScaled(mr, numeric.RateDecimals)
	if rv.GT(mrv) {
		return CommissionRates{}, fmt.Errorf("%w: commission rate %s%% exceeds max rate %s%%",
			txerrors.ErrConstraint, rate, maxRate)
	}
	return CommissionRates{Rate: r, MaxRate: mr, MaxChangeRate: mc}, nil
}
