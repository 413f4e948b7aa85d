// Package address handles bech32 account/operator address checks and the
// prefix re-encode used to derive a validator operator address from the
// signer's account address (same payload bytes, different prefix).
package address

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
)

var ethAddrRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// Validate checks that addr is well-formed bech32 carrying the expected
// prefix and a 20-byte payload.
func Validate(addr, prefix string) error {
	hrp, data, err := bech32.Decode(addr)
	if err != nil {
		return fmt.Errorf("invalid bech32 address %q: %w", addr, err)
	}
	if hrp != prefix {
		return fmt.Errorf("address %q has prefix %q, expected %q", addr, hrp, prefix)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return fmt.Errorf("invalid bech32 payload in %q: %w", addr, err)
	}
	if len(raw) != 20 {
		return fmt.Errorf("address %q has %d-byte payload, expected 20", addr, len(raw))
	}
	return nil
}

// Reencode re-encodes a bech32 address under a new prefix, keeping the
// payload bytes. This is the account->valoper derivation rule: the console
// never accepts a typed operator address.
func Reencode(addr, newPrefix string) (string, error) {
	_, data, err := bech32.Decode(addr)
	if err != nil {
		return "", fmt.Errorf("invalid bech32 address %q: %w", addr, err)
	}
	out, err := bech32.Encode(newPrefix, data)
	if err != nil {
		return "", err
	}
	return out, nil
}

// FromBytes encodes a 20-byte payload as a bech32 address with the given prefix.
func FromBytes(prefix string, raw []byte) (string, error) {
	data, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(prefix, data)
}

// Bytes decodes a bech32 address to its raw payload.
func Bytes(addr string) ([]byte, error) {
	_, data, err := bech32.Decode(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid bech32 address %q: %w", addr, err)
	}
	return bech32.ConvertBits(data, 5, 8, false)
}

// ToHex renders a bech32 address in EVM hex form.
func ToHex(addr string) (string, error) {
	raw, err := Bytes(addr)
	if err != nil {
		return "", err
	}
	return "0x" + strings.ToLower(hex.EncodeToString(raw)), nil
}

// ValidEthereum reports whether s is a 0x-prefixed 20-byte hex address.
func ValidEthereum(s string) bool { return ethAddrRe.MatchString(s) }
