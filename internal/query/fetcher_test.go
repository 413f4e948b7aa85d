package query

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func skipIfNoBind(t *testing.T) {
	t.Helper()
	if ln, err := net.Listen("tcp", "127.0.0.1:0"); err != nil {
		t.Skip("skipping due to sandbox")
	} else {
		ln.Close()
	}
}

func TestFetcher_Balance(t *testing.T) {
	skipIfNoBind(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/cosmos/bank/v1beta1/balances/inj1abc/by_denom", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("denom"); got != "inj" {
			t.Errorf("denom = %q, want %q", got, "inj")
		}
		w.Write([]byte(`{"balance":{"denom":"inj","amount":"2500000000000000000"}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(srv.URL)
	got, err := f.Balance(context.Background(), "inj1abc", "inj")
	if err != nil {
		t.Fatalf("Balance() error: %v", err)
	}
	if got != "2500000000000000000" {
		t.Errorf("Balance() = %q, want %q", got, "2500000000000000000")
	}
}

func TestFetcher_Balance_MissingReadsAsZero(t *testing.T) {
	skipIfNoBind(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(srv.URL)
	got, err := f.Balance(context.Background(), "inj1new", "inj")
	if err != nil {
		t.Fatalf("Balance() error: %v", err)
	}
	if got != "0" {
		t.Errorf("Balance() = %q, want %q", got, "0")
	}
}

func TestFetcher_Validator(t *testing.T) {
	skipIfNoBind(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/cosmos/staking/v1beta1/validators/injvaloper1test", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"validator":{
			"operator_address":"injvaloper1test",
			"description":{"moniker":"atlas"},
			"status":"BOND_STATUS_BONDED",
			"tokens":"5000000000000000000000",
			"jailed":false,
			"commission":{"commission_rates":{"rate":"0.105000000000000000"}},
			"min_self_delegation":"1000000000000000000"
		}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(srv.URL)
	v, found, err := f.Validator(context.Background(), "injvaloper1test")
	if err != nil {
		t.Fatalf("Validator() error: %v", err)
	}
	if !found {
		t.Fatal("found = false, want true")
	}
	if v.Moniker != "atlas" {
		t.Errorf("Moniker = %q, want %q", v.Moniker, "atlas")
	}
	if v.CommissionRate != "0.105000000000000000" {
		t.Errorf("CommissionRate = %q, want current rate", v.CommissionRate)
	}
	if v.Jailed {
		t.Error("Jailed = true, want false")
	}
}

func TestFetcher_Validator_NotRegistered(t *testing.T) {
	skipIfNoBind(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(srv.URL)
	_, found, err := f.Validator(context.Background(), "injvaloper1missing")
	if err != nil {
		t.Fatalf("Validator() error: %v", err)
	}
	if found {
		t.Fatal("found = true, want false for unregistered operator")
	}
}

func TestFetcher_Delegation(t *testing.T) {
	skipIfNoBind(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/cosmos/staking/v1beta1/validators/injvaloper1test/delegations/inj1abc", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"delegation_response":{
			"delegation":{"delegator_address":"inj1abc","validator_address":"injvaloper1test","shares":"1000.0"},
			"balance":{"denom":"inj","amount":"1000000000000000000"}
		}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(srv.URL)
	d, found, err := f.Delegation(context.Background(), "inj1abc", "injvaloper1test")
	if err != nil {
		t.Fatalf("Delegation() error: %v", err)
	}
	if !found {
		t.Fatal("found = false, want true")
	}
	if d.Balance != "1000000000000000000" {
		t.Errorf("Balance = %q, want %q", d.Balance, "1000000000000000000")
	}
	if d.Denom != "inj" {
		t.Errorf("Denom = %q, want %q", d.Denom, "inj")
	}
}

func TestFetcher_Validators_Cached(t *testing.T) {
	skipIfNoBind(t)

	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/cosmos/staking/v1beta1/validators", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"validators":[
			{"operator_address":"injvaloper1a","description":{"moniker":"a"},"status":"BOND_STATUS_BONDED","tokens":"1","commission":{"commission_rates":{"rate":"0.1"}}},
			{"operator_address":"injvaloper1b","description":{},"status":"BOND_STATUS_BONDED","tokens":"2","commission":{"commission_rates":{"rate":"0.2"}}}
		]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	first, err := f.Validators(ctx)
	if err != nil {
		t.Fatalf("Validators() error: %v", err)
	}
	if first.Total != 2 {
		t.Fatalf("Total = %d, want 2", first.Total)
	}
	if first.Validators[1].Moniker != "unknown" {
		t.Errorf("empty moniker = %q, want %q", first.Validators[1].Moniker, "unknown")
	}

	if _, err := f.Validators(ctx); err != nil {
		t.Fatalf("Validators() second call error: %v", err)
	}
	if calls != 1 {
		t.Errorf("REST calls = %d, want 1 (cached)", calls)
	}
}

func TestFetcher_Validators_StaleCacheOnError(t *testing.T) {
	skipIfNoBind(t)

	healthy := true
	mux := http.NewServeMux()
	mux.HandleFunc("/cosmos/staking/v1beta1/validators", func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"validators":[{"operator_address":"injvaloper1a","description":{"moniker":"a"},"status":"BOND_STATUS_BONDED","tokens":"1","commission":{"commission_rates":{"rate":"0.1"}}}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(srv.URL)
	f.cacheTTL = 0 // force refetch on every call

	ctx := context.Background()
	if _, err := f.Validators(ctx); err != nil {
		t.Fatalf("Validators() error: %v", err)
	}

	healthy = false
	list, err := f.Validators(ctx)
	if err != nil {
		t.Fatalf("Validators() with stale cache error: %v", err)
	}
	if list.Total != 1 {
		t.Errorf("Total = %d, want stale 1", list.Total)
	}
}
