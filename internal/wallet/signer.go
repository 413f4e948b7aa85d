// Package wallet defines the offline signer capability the transaction
// client consumes, plus concrete in-memory implementations backed by a
// BIP-39 mnemonic or a raw private key. The client never inspects a signer
// beyond this contract.
package wallet

// Account is the signer's identity: a bech32 account address and the
// 33-byte compressed secp256k1 public key.
type Account struct {
	Address string
	PubKey  []byte
}

// Signer can report its account and produce a DIRECT-mode signature over
// raw sign-doc bytes.
type Signer interface {
	Account() (Account, error)
	SignDirect(signDoc []byte) ([]byte, error)
}
