package wallet

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"

	"github.com/injective-ops/validator-console/internal/address"
)

// The chain derives accounts on the ethereum coin type, not the cosmos one.
const (
	bip44Purpose  = 44
	bip44CoinType = 60
)

// keySigner signs with an in-memory secp256k1 key using the chain's
// eth-flavoured scheme: keccak-256 digest, 64-byte r||s signature,
// keccak-derived 20-byte address.
type keySigner struct {
	priv    *ecdsa.PrivateKey
	account Account
}

// NewMnemonicSigner derives the account at m/44'/60'/0'/0/index from a
// BIP-39 mnemonic.
func NewMnemonicSigner(mnemonic, bech32Prefix string, index uint32) (Signer, error) {
	mnemonic = strings.Join(strings.Fields(strings.TrimSpace(mnemonic)), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("invalid mnemonic phrase: checksum verification failed")
	}
	seed := bip39.NewSeed(mnemonic, "")

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("derive master key: %w", err)
	}
	path := []uint32{
		hdkeychain.HardenedKeyStart + bip44Purpose,
		hdkeychain.HardenedKeyStart + bip44CoinType,
		hdkeychain.HardenedKeyStart + 0,
		0,
		index,
	}
	key := master
	for _, step := range path {
		if key, err = key.Derive(step); err != nil {
			return nil, fmt.Errorf("derive child key: %w", err)
		}
	}
	btcPriv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("extract private key: %w", err)
	}
	return newKeySigner(btcPriv.ToECDSA(), bech32Prefix)
}

// NewPrivateKeySigner wraps a raw hex-encoded secp256k1 private key.
func NewPrivateKeySigner(hexKey, bech32Prefix string) (Signer, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("private key is not valid hex: %w", err)
	}
	priv, err := ethcrypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return newKeySigner(priv, bech32Prefix)
}

func newKeySigner(priv *ecdsa.PrivateKey, bech32Prefix string) (Signer, error) {
	raw := ethcrypto.PubkeyToAddress(priv.PublicKey)
	addr, err := address.FromBytes(bech32Prefix, raw.Bytes())
	if err != nil {
		return nil, fmt.Errorf("encode account address: %w", err)
	}
	return &keySigner{
		priv: priv,
		account: Account{
			Address: addr,
			PubKey:  ethcrypto.CompressPubkey(&priv.PublicKey),
		},
	}, nil
}

func (s *keySigner) Account() (Account, error) { return s.account, nil }

// SignDirect signs the sign-doc bytes: keccak-256 digest, then a 64-byte
// r||s secp256k1 signature (the recovery byte is dropped; the chain
// recovers against the declared pubkey).
func (s *keySigner) SignDirect(signDoc []byte) ([]byte, error) {
	digest := ethcrypto.Keccak256(signDoc)
	sig, err := ethcrypto.Sign(digest, s.priv)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return sig[:64], nil
}
