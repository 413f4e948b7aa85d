package wire

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/encoding/protowire"
)

// AccountInfo is the subset of the on-chain account record the signing
// client needs.
type AccountInfo struct {
	Address       string
	AccountNumber uint64
	Sequence      uint64
}

// ParseSimulateResponse extracts gas_used from a
// cosmos.tx.v1beta1.SimulateResponse (gas_info=1{gas_wanted=1, gas_used=2}).
func ParseSimulateResponse(b []byte) (uint64, error) {
	var gasInfo []byte
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, raw []byte) error {
		if num == 1 && typ == protowire.BytesType {
			gasInfo = raw
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("malformed simulate response: %w", err)
	}
	if gasInfo == nil {
		return 0, fmt.Errorf("simulate response carries no gas info")
	}

	var gasUsed uint64
	err = walkFields(gasInfo, func(num protowire.Number, typ protowire.Type, raw []byte) error {
		if num == 2 && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(raw)
			if n < 0 {
				return protowire.ParseError(n)
			}
			gasUsed = v
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("malformed gas info: %w", err)
	}
	if gasUsed == 0 {
		return 0, fmt.Errorf("simulate response reports zero gas used")
	}
	return gasUsed, nil
}

// ParseQueryAccountResponse extracts the account number and sequence from a
// cosmos.auth.v1beta1.QueryAccountResponse. The account Any may hold either
// a BaseAccount or the chain's EthAccount wrapping one.
func ParseQueryAccountResponse(b []byte) (AccountInfo, error) {
	var anyBytes []byte
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, raw []byte) error {
		if num == 1 && typ == protowire.BytesType {
			anyBytes = raw
		}
		return nil
	})
	if err != nil {
		return AccountInfo{}, fmt.Errorf("malformed account response: %w", err)
	}
	if anyBytes == nil {
		return AccountInfo{}, fmt.Errorf("account response carries no account")
	}

	typeURL, value, err := parseAny(anyBytes)
	if err != nil {
		return AccountInfo{}, err
	}

	base := value
	if strings.HasSuffix(typeURL, "EthAccount") {
		// EthAccount: base_account=1, code_hash=2.
		base = nil
		err := walkFields(value, func(num protowire.Number, typ protowire.Type, raw []byte) error {
			if num == 1 && typ == protowire.BytesType {
				base = raw
			}
			return nil
		})
		if err != nil {
			return AccountInfo{}, fmt.Errorf("malformed eth account: %w", err)
		}
		if base == nil {
			return AccountInfo{}, fmt.Errorf("eth account carries no base account")
		}
	}

	// BaseAccount: address=1, pub_key=2, account_number=3, sequence=4.
	var info AccountInfo
	err = walkFields(base, func(num protowire.Number, typ protowire.Type, raw []byte) error {
		switch {
		case num == 1 && typ == protowire.BytesType:
			info.Address = string(raw)
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(raw)
			if n < 0 {
				return protowire.ParseError(n)
			}
			info.AccountNumber = v
		case num == 4 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(raw)
			if n < 0 {
				return protowire.ParseError(n)
			}
			info.Sequence = v
		}
		return nil
	})
	if err != nil {
		return AccountInfo{}, fmt.Errorf("malformed base account: %w", err)
	}
	return info, nil
}

func parseAny(b []byte) (typeURL string, value []byte, err error) {
	err = walkFields(b, func(num protowire.Number, typ protowire.Type, raw []byte) error {
		switch {
		case num == 1 && typ == protowire.BytesType:
			typeURL = string(raw)
		case num == 2 && typ == protowire.BytesType:
			value = raw
		}
		return nil
	})
	if err != nil {
		return "", nil, fmt.Errorf("malformed Any: %w", err)
	}
	return typeURL, value, nil
}

// walkFields iterates a message's top-level fields. For length-delimited
// fields the callback receives the payload; for varint fields it receives
// the raw remainder so the caller can consume the value itself.
func walkFields(b []byte, fn func(num protowire.Number, typ protowire.Type, raw []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch typ {
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			if err := fn(num, typ, v); err != nil {
				return err
			}
			b = b[n:]
		case protowire.VarintType:
			_, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			if err := fn(num, typ, b); err != nil {
				return err
			}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}
