package txerrors

import (
	"errors"
	"strings"
	"testing"
)

func TestClassify_UserRejection(t *testing.T) {
	err := errors.New("Request rejected by user")
	got := Classify(ActionDelegate, err, "")
	if !strings.Contains(got, "Approve the request") {
		t.Errorf("Classify() = %q, want approval guidance", got)
	}
}

func TestClassify_InsufficientFunds(t *testing.T) {
	err := &ChainRejected{Code: 5, RawLog: "10inj is smaller than 20inj: insufficient funds"}
	got := Classify(ActionDelegate, err, "")
	if !strings.Contains(got, "Insufficient funds") {
		t.Errorf("Classify() = %q, want insufficient-funds message", got)
	}
}

func TestClassify_ActionSpecificRules(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		raw    string
		want   string
	}{
		{
			name:   "duplicate validator on register",
			action: ActionRegister,
			raw:    "validator already exist for this operator address",
			want:   "already exists",
		},
		{
			name:   "commission rate limit on edit",
			action: ActionEdit,
			raw:    "commission cannot be changed more than once in 24h",
			want:   "once per 24 hours",
		},
		{
			name:   "orchestrator mapping already set",
			action: ActionOrchestrator,
			raw:    "failed to execute message; message index: 0: orchestrator address is already set for this validator",
			want:   "cannot be changed",
		},
		{
			name:   "not jailed on unjail",
			action: ActionUnjail,
			raw:    "validator not jailed; cannot be unjailed",
			want:   "not jailed",
		},
		{
			name:   "still jailed on unjail",
			action: ActionUnjail,
			raw:    "validator still jailed; cannot be unjailed until 2026-09-02T10:00:00Z",
			want:   "has not elapsed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ChainRejected{Code: 1, RawLog: tt.raw}
			got := Classify(tt.action, err, "")
			if !strings.Contains(got, tt.want) {
				t.Errorf("Classify(%q) = %q, want substring %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClassify_ActionRuleDoesNotLeakAcrossActions(t *testing.T) {
	// A duplicate-validator log during delegate must not produce the
	// register-specific message.
	err := &ChainRejected{Code: 1, RawLog: "validator already exist for this operator address"}
	got := Classify(ActionDelegate, err, "")
	if strings.Contains(got, "already exists for this operator key") {
		t.Errorf("Classify() = %q, register-only rule applied to delegate", got)
	}
}

func TestClassify_Ambiguous(t *testing.T) {
	err := &Ambiguous{Hash: "ABCD1234", Cause: ErrTimeout}
	got := Classify(ActionDelegate, err, "https://explorer.injective.network/tx/ABCD1234")
	if !strings.Contains(got, "Do not retry blindly") {
		t.Errorf("Classify() = %q, want retry warning", got)
	}
	if !strings.Contains(got, "explorer.injective.network/tx/ABCD1234") {
		t.Errorf("Classify() = %q, want explorer link", got)
	}
}

func TestClassify_AmbiguousWithoutHash(t *testing.T) {
	err := &Ambiguous{Cause: errors.New("connection reset")}
	got := Classify(ActionDelegate, err, "https://explorer.injective.network/tx/")
	if strings.Contains(got, "explorer.injective.network") {
		t.Errorf("Classify() = %q, no explorer link expected without a hash", got)
	}
}

func TestClassify_PassThrough(t *testing.T) {
	err := errors.New("something completely novel happened")
	got := Classify(ActionDelegate, err, "")
	if got != err.Error() {
		t.Errorf("Classify() = %q, want pass-through %q", got, err.Error())
	}
}

func TestClassify_OrderMatters(t *testing.T) {
	// Unauthorized phrasing inside a rejection log must hit the
	// unauthorized rule, not pass through.
	err := &ChainRejected{Code: 4, RawLog: "signature verification failed; please verify account number"}
	got := Classify(ActionEdit, err, "")
	if !strings.Contains(got, "Unauthorized") {
		t.Errorf("Classify() = %q, want unauthorized message", got)
	}
}

func TestClassify_Nil(t *testing.T) {
	if got := Classify(ActionDelegate, nil, ""); got != "" {
		t.Errorf("Classify(nil) = %q, want empty", got)
	}
}
