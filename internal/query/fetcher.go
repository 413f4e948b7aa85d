// Package query reads chain state the console displays around the signing
// flow: balances, validator records, and delegations. Everything goes over
// the REST endpoint; the transaction pipeline never depends on this package.
package query

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Fetcher handles chain state fetching with caching for the list queries.
type Fetcher struct {
	http *http.Client
	base string // REST endpoint, e.g. https://sentry.lcd.injective.network:443

	mu             sync.Mutex
	validators     ValidatorList
	validatorsTime time.Time
	cacheTTL       time.Duration
}

// NewFetcher creates a fetcher against a REST endpoint with a 30s list cache.
func NewFetcher(restURL string) *Fetcher {
	return &Fetcher{
		http:     &http.Client{Timeout: 10 * time.Second},
		base:     restURL,
		cacheTTL: 30 * time.Second,
	}
}

// get decodes a REST response into out. The bool reports whether the
// resource exists; Cosmos REST signals missing records with 404.
func (f *Fetcher) get(ctx context.Context, path string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.base+path, nil)
	if err != nil {
		return false, err
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("parse %s failed: %w", path, err)
	}
	return true, nil
}

// Balance returns the account's balance of denom in base units. A missing
// balance reads as "0".
func (f *Fetcher) Balance(ctx context.Context, addr, denom string) (string, error) {
	var result struct {
		Balance struct {
			Denom  string `json:"denom"`
			Amount string `json:"amount"`
		} `json:"balance"`
	}
	path := fmt.Sprintf("/cosmos/bank/v1beta1/balances/%s/by_denom?denom=%s", addr, url.QueryEscape(denom))
	found, err := f.get(ctx, path, &result)
	if err != nil {
		return "", fmt.Errorf("query balance failed: %w", err)
	}
	if !found || result.Balance.Amount == "" {
		return "0", nil
	}
	return result.Balance.Amount, nil
}

// restValidator is the REST shape of a staking validator record.
type restValidator struct {
	OperatorAddress string `json:"operator_address"`
	Description     struct {
		Moniker string `json:"moniker"`
	} `json:"description"`
	Status     string `json:"status"`
	Tokens     string `json:"tokens"`
	Jailed     bool   `json:"jailed"`
	Commission struct {
		CommissionRates struct {
			Rate string `json:"rate"`
		} `json:"commission_rates"`
	} `json:"commission"`
	MinSelfDelegation string `json:"min_self_delegation"`
}

func (v restValidator) info() ValidatorInfo {
	moniker := v.Description.Moniker
	if moniker == "" {
		moniker = "unknown"
	}
	return ValidatorInfo{
		OperatorAddress:   v.OperatorAddress,
		Moniker:           moniker,
		Status:            v.Status,
		Tokens:            v.Tokens,
		CommissionRate:    v.Commission.CommissionRates.Rate,
		MinSelfDelegation: v.MinSelfDelegation,
		Jailed:            v.Jailed,
	}
}

// Validator fetches one validator record. The bool reports whether the
// operator address is registered at all.
func (f *Fetcher) Validator(ctx context.Context, valoper string) (ValidatorInfo, bool, error) {
	var result struct {
		Validator restValidator `json:"validator"`
	}
	found, err := f.get(ctx, "/cosmos/staking/v1beta1/validators/"+valoper, &result)
	if err != nil {
		return ValidatorInfo{}, false, fmt.Errorf("query validator failed: %w", err)
	}
	if !found {
		return ValidatorInfo{}, false, nil
	}
	return result.Validator.info(), true, nil
}

// Delegation fetches the delegator's position on one validator. The bool
// reports whether any delegation exists.
func (f *Fetcher) Delegation(ctx context.Context, delegator, valoper string) (Delegation, bool, error) {
	var result struct {
		DelegationResponse struct {
			Delegation struct {
				DelegatorAddress string `json:"delegator_address"`
				ValidatorAddress string `json:"validator_address"`
			} `json:"delegation"`
			Balance struct {
				Denom  string `json:"denom"`
				Amount string `json:"amount"`
			} `json:"balance"`
		} `json:"delegation_response"`
	}
	path := fmt.Sprintf("/cosmos/staking/v1beta1/validators/%s/delegations/%s", valoper, delegator)
	found, err := f.get(ctx, path, &result)
	if err != nil {
		return Delegation{}, false, fmt.Errorf("query delegation failed: %w", err)
	}
	if !found {
		return Delegation{}, false, nil
	}
	return Delegation{
		DelegatorAddress: result.DelegationResponse.Delegation.DelegatorAddress,
		ValidatorAddress: result.DelegationResponse.Delegation.ValidatorAddress,
		Balance:          result.DelegationResponse.Balance.Amount,
		Denom:            result.DelegationResponse.Balance.Denom,
	}, true, nil
}

// Validators fetches the full validator set with 30s caching.
func (f *Fetcher) Validators(ctx context.Context) (ValidatorList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Return cached if still valid
	if !f.validatorsTime.IsZero() && time.Since(f.validatorsTime) < f.cacheTTL && f.validators.Total > 0 {
		return f.validators, nil
	}

	list, err := f.fetchValidators(ctx)
	if err != nil {
		// Return stale cache if available
		if f.validators.Total > 0 {
			return f.validators, nil
		}
		return ValidatorList{}, err
	}

	f.validators = list
	f.validatorsTime = time.Now()
	return list, nil
}

func (f *Fetcher) fetchValidators(ctx context.Context) (ValidatorList, error) {
	var result struct {
		Validators []restValidator `json:"validators"`
	}
	found, err := f.get(ctx, "/cosmos/staking/v1beta1/validators?pagination.limit=500", &result)
	if err != nil {
		return ValidatorList{}, fmt.Errorf("query validators failed: %w", err)
	}
	if !found {
		return ValidatorList{}, fmt.Errorf("validator set endpoint missing")
	}
	validators := make([]ValidatorInfo, 0, len(result.Validators))
	for _, v := range result.Validators {
		validators = append(validators, v.info())
	}
	return ValidatorList{Validators: validators, Total: len(validators)}, nil
}
