// Package wire hand-encodes the chain's protobuf wire format for the six
// console messages and the transaction envelope. Field numbers and ordering
// follow the published chain schema exactly; fields are always emitted in
// ascending field-number order and proto3 zero values are omitted.
package wire

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/injective-ops/validator-console/internal/msgs"
)

// Pubkey type URLs. Accounts sign with the chain's eth-flavoured secp256k1
// key; validators run an ed25519 consensus key.
const (
	TypeURLEd25519PubKey      = "/cosmos.crypto.ed25519.PubKey"
	TypeURLEthSecp256k1PubKey = "/injective.crypto.v1beta1.ethsecp256k1.PubKey"
)

// signModeDirect is SIGN_MODE_DIRECT from cosmos.tx.signing.v1beta1.
const signModeDirect = 1

func appendString(b []byte, field protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, field, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytes(b []byte, field protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, field, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// appendMessage emits a length-delimited nested message even when empty:
// callers decide whether an empty submessage is meaningful.
func appendMessage(b []byte, field protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, field, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendUvarint(b []byte, field protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, field, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// EncodeAny encodes google.protobuf.Any: type_url=1, value=2.
func EncodeAny(typeURL string, value []byte) []byte {
	var b []byte
	b = appendString(b, 1, typeURL)
	b = appendBytes(b, 2, value)
	return b
}

// EncodeCoin encodes cosmos.base.v1beta1.Coin: denom=1, amount=2.
func EncodeCoin(c msgs.Coin) []byte {
	var b []byte
	b = appendString(b, 1, c.Denom)
	b = appendString(b, 2, c.Amount)
	return b
}

// EncodeEd25519PubKey encodes cosmos.crypto.ed25519.PubKey: key=1.
func EncodeEd25519PubKey(key []byte) []byte {
	return appendBytes(nil, 1, key)
}

// EncodeEthSecp256k1PubKey encodes the eth-secp256k1 PubKey: key=1
// (33-byte compressed).
func EncodeEthSecp256k1PubKey(key []byte) []byte {
	return appendBytes(nil, 1, key)
}

// EncodeTxBody encodes cosmos.tx.v1beta1.TxBody: messages=1 (repeated Any),
// memo=2, timeout_height=3.
func EncodeTxBody(anys [][]byte, memo string, timeoutHeight uint64) []byte {
	var b []byte
	for _, a := range anys {
		b = appendMessage(b, 1, a)
	}
	b = appendString(b, 2, memo)
	b = appendUvarint(b, 3, timeoutHeight)
	return b
}

// EncodeFee encodes cosmos.tx.v1beta1.Fee: amount=1 (repeated Coin),
// gas_limit=2.
func EncodeFee(fee msgs.Fee, gasLimit uint64) []byte {
	var b []byte
	for _, c := range fee.Amount {
		b = appendMessage(b, 1, EncodeCoin(c))
	}
	b = appendUvarint(b, 2, gasLimit)
	return b
}

// EncodeAuthInfo encodes cosmos.tx.v1beta1.AuthInfo for a single DIRECT
// signer: signer_infos=1, fee=2.
func EncodeAuthInfo(pubkeyAny []byte, sequence uint64, fee msgs.Fee, gasLimit uint64) []byte {
	// ModeInfo.Single: mode=1.
	single := appendUvarint(nil, 1, signModeDirect)
	// ModeInfo: single=1.
	modeInfo := appendMessage(nil, 1, single)

	// SignerInfo: public_key=1, mode_info=2, sequence=3.
	var signerInfo []byte
	signerInfo = appendMessage(signerInfo, 1, pubkeyAny)
	signerInfo = appendMessage(signerInfo, 2, modeInfo)
	signerInfo = appendUvarint(signerInfo, 3, sequence)

	var b []byte
	b = appendMessage(b, 1, signerInfo)
	b = appendMessage(b, 2, EncodeFee(fee, gasLimit))
	return b
}

// EncodeSignDoc encodes cosmos.tx.v1beta1.SignDoc: body_bytes=1,
// auth_info_bytes=2, chain_id=3, account_number=4.
func EncodeSignDoc(bodyBytes, authInfoBytes []byte, chainID string, accountNumber uint64) []byte {
	var b []byte
	b = appendBytes(b, 1, bodyBytes)
	b = appendBytes(b, 2, authInfoBytes)
	b = appendString(b, 3, chainID)
	b = appendUvarint(b, 4, accountNumber)
	return b
}

// EncodeTxRaw encodes cosmos.tx.v1beta1.TxRaw: body_bytes=1,
// auth_info_bytes=2, signatures=3.
func EncodeTxRaw(bodyBytes, authInfoBytes, signature []byte) []byte {
	var b []byte
	b = appendBytes(b, 1, bodyBytes)
	b = appendBytes(b, 2, authInfoBytes)
	b = appendBytes(b, 3, signature)
	return b
}

// EncodeSimulateRequest encodes cosmos.tx.v1beta1.SimulateRequest with the
// raw tx bytes (tx_bytes=2; field 1 is the deprecated Tx form).
func EncodeSimulateRequest(txBytes []byte) []byte {
	return appendBytes(nil, 2, txBytes)
}

// EncodeQueryAccountRequest encodes cosmos.auth.v1beta1.QueryAccountRequest:
// address=1.
func EncodeQueryAccountRequest(addr string) []byte {
	return appendString(nil, 1, addr)
}
