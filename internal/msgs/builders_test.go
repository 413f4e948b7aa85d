package msgs

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/injective-ops/validator-console/internal/address"
	"github.com/injective-ops/validator-console/internal/config"
	"github.com/injective-ops/validator-console/internal/txerrors"
)

var testCfg = config.ForNetwork(config.Testnet)

func testSigner(t *testing.T) string {
	t.Helper()
	raw := make([]byte, 20)
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	addr, err := address.FromBytes(testCfg.Bech32Prefix, raw)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	return addr
}

func pubkeyB64(n int) string {
	return base64.StdEncoding.EncodeToString(make([]byte, n))
}

func validCreateForm() CreateValidatorForm {
	return CreateValidatorForm{
		Moniker:                 "my-validator",
		CommissionRate:          "10.5",
		CommissionMaxRate:       "20",
		CommissionMaxChangeRate: "1",
		MinSelfDelegation:       "1",
		SelfDelegation:          "1.5",
		PubkeyBase64:            pubkeyB64(32),
	}
}

func TestBuildCreateValidator(t *testing.T) {
	signer := testSigner(t)
	msg, fee, err := BuildCreateValidator(testCfg, signer, validCreateForm())
	if err != nil {
		t.Fatalf("BuildCreateValidator: %v", err)
	}
	if msg.DelegatorAddress != signer {
		t.Errorf("delegator = %q, want signer", msg.DelegatorAddress)
	}
	if !strings.HasPrefix(msg.ValidatorAddress, testCfg.ValoperPrefix+"1") {
		t.Errorf("validator address %q lacks valoper prefix", msg.ValidatorAddress)
	}
	if msg.Commission.Rate != "0.105000000000000000" {
		t.Errorf("rate = %q", msg.Commission.Rate)
	}
	if msg.Commission.MaxRate != "0.200000000000000000" {
		t.Errorf("max rate = %q", msg.Commission.MaxRate)
	}
	if msg.Value.Amount != "1500000000000000000" || msg.Value.Denom != "inj" {
		t.Errorf("value = %+v", msg.Value)
	}
	if msg.MinSelfDelegation != "1000000000000000000" {
		t.Errorf("min self delegation = %q", msg.MinSelfDelegation)
	}
	if len(msg.Pubkey) != 32 {
		t.Errorf("pubkey length = %d", len(msg.Pubkey))
	}
	if fee.Gas == "" || len(fee.Amount) != 1 || fee.Amount[0].Denom != "inj" {
		t.Errorf("fee = %+v", fee)
	}
}

func TestBuildCreateValidatorPubkeyBoundary(t *testing.T) {
	signer := testSigner(t)
	for _, n := range []int{31, 33} {
		f := validCreateForm()
		f.PubkeyBase64 = pubkeyB64(n)
		_, _, err := BuildCreateValidator(testCfg, signer, f)
		if !errors.Is(err, txerrors.ErrInvalidPubkey) {
			t.Errorf("%d-byte pubkey: expected ErrInvalidPubkey, got %v", n, err)
		}
	}
	f := validCreateForm()
	f.PubkeyBase64 = "not base64!!"
	if _, _, err := BuildCreateValidator(testCfg, signer, f); !errors.Is(err, txerrors.ErrInvalidPubkey) {
		t.Errorf("malformed base64: expected ErrInvalidPubkey, got %v", err)
	}
}

func TestBuildCreateValidatorSelfDelegationFloor(t *testing.T) {
	f := validCreateForm()
	f.SelfDelegation = "0.999"
	f.MinSelfDelegation = "1"
	_, _, err := BuildCreateValidator(testCfg, testSigner(t), f)
	if !errors.Is(err, txerrors.ErrConstraint) {
		t.Errorf("expected ErrConstraint, got %v", err)
	}
}

func TestBuildCreateValidatorAmountValidation(t *testing.T) {
	cases := []func(*CreateValidatorForm){
		func(f *CreateValidatorForm) { f.SelfDelegation = "0" },
		func(f *CreateValidatorForm) { f.MinSelfDelegation = "0" },
		func(f *CreateValidatorForm) { f.SelfDelegation = "abc" },
	}
	for i, mutate := range cases {
		f := validCreateForm()
		mutate(&f)
		if _, _, err := BuildCreateValidator(testCfg, testSigner(t), f); !errors.Is(err, txerrors.ErrInvalidAmount) {
			t.Errorf("case %d: expected ErrInvalidAmount, got %v", i, err)
		}
	}
}

func TestBuildCreateValidatorCommissionAboveMax(t *testing.T) {
	f := validCreateForm()
	f.CommissionRate = "25"
	f.CommissionMaxRate = "20"
	if _, _, err := BuildCreateValidator(testCfg, testSigner(t), f); !errors.Is(err, txerrors.ErrConstraint) {
		t.Errorf("expected ErrConstraint, got %v", err)
	}
}

func TestBuildEditValidatorOmitsUnchangedRate(t *testing.T) {
	f := EditValidatorForm{
		Moniker:        "edited",
		CommissionRate: "10",
		CurrentRate:    "0.100000000000000000",
	}
	msg, _, err := BuildEditValidator(testCfg, testSigner(t), f)
	if err != nil {
		t.Fatalf("BuildEditValidator: %v", err)
	}
	if msg.CommissionRate != nil {
		t.Errorf("expected nil commission rate for no-op edit, got %q", *msg.CommissionRate)
	}
}

func TestBuildEditValidatorSetsChangedRate(t *testing.T) {
	f := EditValidatorForm{
		Moniker:        "edited",
		CommissionRate: "12.5",
		CurrentRate:    "0.100000000000000000",
	}
	msg, _, err := BuildEditValidator(testCfg, testSigner(t), f)
	if err != nil {
		t.Fatalf("BuildEditValidator: %v", err)
	}
	if msg.CommissionRate == nil || *msg.CommissionRate != "0.125000000000000000" {
		t.Errorf("commission rate = %v", msg.CommissionRate)
	}
}

func TestBuildEditValidatorNoRateGiven(t *testing.T) {
	msg, _, err := BuildEditValidator(testCfg, testSigner(t), EditValidatorForm{Moniker: "edited"})
	if err != nil {
		t.Fatalf("BuildEditValidator: %v", err)
	}
	if msg.CommissionRate != nil {
		t.Error("expected nil commission rate when none was given")
	}
}

func TestBuildSetOrchestratorAddresses(t *testing.T) {
	signer := testSigner(t)
	orch, err := address.FromBytes(testCfg.Bech32Prefix, make([]byte, 20))
	if err != nil {
		t.Fatal(err)
	}
	msg, _, err := BuildSetOrchestratorAddresses(testCfg, signer, OrchestratorForm{
		Orchestrator: orch,
		EthAddress:   "0x6ad36cee0123456789abcdef1032547698badcfe",
	})
	if err != nil {
		t.Fatalf("BuildSetOrchestratorAddresses: %v", err)
	}
	if msg.Sender != signer || msg.Orchestrator != orch {
		t.Errorf("msg = %+v", msg)
	}

	_, _, err = BuildSetOrchestratorAddresses(testCfg, signer, OrchestratorForm{
		Orchestrator: orch,
		EthAddress:   "0x123",
	})
	if err == nil {
		t.Error("expected error for malformed ethereum address")
	}
}

func TestBuildDelegate(t *testing.T) {
	signer := testSigner(t)
	valoper, err := address.Reencode(signer, testCfg.ValoperPrefix)
	if err != nil {
		t.Fatal(err)
	}
	msg, _, err := BuildDelegate(testCfg, signer, valoper, "2.5")
	if err != nil {
		t.Fatalf("BuildDelegate: %v", err)
	}
	if msg.Amount.Amount != "2500000000000000000" {
		t.Errorf("amount = %q, want 2500000000000000000", msg.Amount.Amount)
	}

	if _, _, err := BuildDelegate(testCfg, signer, valoper, "0"); !errors.Is(err, txerrors.ErrInvalidAmount) {
		t.Errorf("zero amount: expected ErrInvalidAmount, got %v", err)
	}
	if _, _, err := BuildDelegate(testCfg, signer, valoper, "-1"); !errors.Is(err, txerrors.ErrInvalidAmount) {
		t.Errorf("negative amount: expected ErrInvalidAmount, got %v", err)
	}
}

func TestBuildUndelegate(t *testing.T) {
	signer := testSigner(t)
	valoper, err := address.Reencode(signer, testCfg.ValoperPrefix)
	if err != nil {
		t.Fatal(err)
	}
	msg, _, err := BuildUndelegate(testCfg, signer, valoper, "0.25")
	if err != nil {
		t.Fatalf("BuildUndelegate: %v", err)
	}
	if msg.Amount.Amount != "250000000000000000" {
		t.Errorf("amount = %q", msg.Amount.Amount)
	}
}

func TestBuildUnjail(t *testing.T) {
	signer := testSigner(t)
	msg, _, err := BuildUnjail(testCfg, signer)
	if err != nil {
		t.Fatalf("BuildUnjail: %v", err)
	}
	want, _ := address.Reencode(signer, testCfg.ValoperPrefix)
	if msg.ValidatorAddress != want {
		t.Errorf("validator address = %q, want %q", msg.ValidatorAddress, want)
	}
}
