// Copyright 2025 The txcore Authors
// This file is part of the txcore library.
//
// The txcore library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The txcore library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the txcore library. If not, see <http://www.gnu.org/licenses/>.

package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/sunyihoo/txcore/crypto"
)

var (
	signMeter       = metrics.NewRegisteredMeter("txcore/sign", nil)
	verifyOkMeter   = metrics.NewRegisteredMeter("txcore/verify/ok", nil)
	verifyFailMeter = metrics.NewRegisteredMeter("txcore/verify/fail", nil)
)

// Sign signs the envelope with the given key using the default secp256k1
// backend. A nil chainID produces an unprotected (homestead style) signature,
// otherwise the signature is bound to the chain per EIP-155.
//
// Errors are only returned for unusable keys; callers should treat them as a
// fatal configuration problem.
func Sign(tx TypedTransaction, key *crypto.PrivateKey, chainID *uint64) (*UnverifiedTransaction, error) {
	return SignWith(crypto.Secp256k1, tx, key, chainID)
}

// SignWith is Sign with an explicit signing primitive.
func SignWith(backend crypto.Backend, tx TypedTransaction, key *crypto.PrivateKey, chainID *uint64) (*UnverifiedTransaction, error) {
	if tx.inner == nil {
		return nil, fmt.Errorf("%w: empty envelope", ErrTxTypeNotSupported)
	}
	h := tx.SignatureHash(chainID)
	sig, err := backend.Sign(h[:], key)
	if err != nil {
		return nil, err
	}
	signMeter.Mark(1)
	return tx.WithSignature(sig, chainID)
}

// MustSign is Sign for the node's own key.
// This panics if the transaction cannot be signed.
func MustSign(tx TypedTransaction, key *crypto.PrivateKey, chainID *uint64) *UnverifiedTransaction {
	utx, err := Sign(tx, key, chainID)
	if err != nil {
		panic(fmt.Sprintf("transaction signing failed: %v", err))
	}
	return utx
}

// Verify recovers the sender of utx and returns the verified transaction.
//
// ErrInvalidSignature is returned for unsigned transactions and for recovery
// ids that do not fit the declared chain id. ErrRecoveryFailed is returned when
// the curve rejects the signature.
func Verify(utx *UnverifiedTransaction) (*SignedTransaction, error) {
	return VerifyWith(crypto.Secp256k1, utx)
}

// VerifyWith is Verify with an explicit recovery primitive.
func VerifyWith(backend crypto.Backend, utx *UnverifiedTransaction) (*SignedTransaction, error) {
	stx, err := verify(backend, utx)
	if err != nil {
		verifyFailMeter.Mark(1)
		return nil, err
	}
	verifyOkMeter.Mark(1)
	return stx, nil
}

func verify(backend crypto.Backend, utx *UnverifiedTransaction) (*SignedTransaction, error) {
	if utx.IsUnsigned() {
		return nil, fmt.Errorf("%w: r and s are zero", ErrInvalidSignature)
	}
	sighash := utx.SignatureHash()

	// Fold and unfold the recovery id so that the value on the wire and the
	// declared chain id are checked against each other. The primitive only
	// ever sees the raw 0/1 indicator.
	combined, _, _ := utx.RawSignatureValues()
	v, err := InvertReplayProtection(combined, utx.chainID)
	if err != nil {
		return nil, err
	}
	sig := utx.signature
	sig.V = v
	if !crypto.ValidateSignatureValues(sig.V, &sig.R, &sig.S, false) {
		return nil, fmt.Errorf("%w: r or s out of range", ErrRecoveryFailed)
	}
	pub, err := backend.Recover(sighash[:], sig.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecoveryFailed, err)
	}
	return &SignedTransaction{
		tx:     utx,
		sender: crypto.PubkeyToAddress(pub),
		public: pub,
	}, nil
}

// Sender verifies utx and returns only the derived sender address.
func Sender(utx *UnverifiedTransaction) (common.Address, error) {
	stx, err := Verify(utx)
	if err != nil {
		return common.Address{}, err
	}
	return stx.Sender(), nil
}
