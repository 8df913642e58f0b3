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
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// UnverifiedTransaction is a transaction that claims a signature which has not
// been proven to recover yet. It is created by signing or by decoding wire
// bytes and is immutable afterwards; the content hash is computed once at
// construction.
type UnverifiedTransaction struct {
	unsigned  TypedTransaction
	signature SignatureComponents
	chainID   *uint64 // nil means no replay protection

	hash common.Hash // keccak256 of the signed encoding
}

// WithSignature attaches a [R || S || V] signature, where V is 0 or 1, to the
// envelope and memoizes the content hash.
func (tx TypedTransaction) WithSignature(sig []byte, chainID *uint64) (*UnverifiedTransaction, error) {
	sc, err := signatureFromBytes(sig)
	if err != nil {
		return nil, err
	}
	return newUnverified(tx, sc, chainID), nil
}

func newUnverified(tx TypedTransaction, sig SignatureComponents, chainID *uint64) *UnverifiedTransaction {
	utx := &UnverifiedTransaction{
		unsigned:  tx,
		signature: sig,
		chainID:   copyChainID(chainID),
	}
	utx.hash = utx.ComputeHash()
	return utx
}

// Unsigned returns the transaction envelope.
func (utx *UnverifiedTransaction) Unsigned() TypedTransaction { return utx.unsigned }

// Signature returns the signature components.
func (utx *UnverifiedTransaction) Signature() SignatureComponents { return utx.signature }

// StandardV returns the raw recovery id.
func (utx *UnverifiedTransaction) StandardV() uint8 { return utx.signature.V }

// ChainID returns the chain id the signature is bound to, or nil for
// transactions without replay protection.
func (utx *UnverifiedTransaction) ChainID() *uint64 { return copyChainID(utx.chainID) }

// Protected says whether the transaction is replay-protected.
func (utx *UnverifiedTransaction) Protected() bool { return utx.chainID != nil }

// IsUnsigned reports whether both r and s are zero.
func (utx *UnverifiedTransaction) IsUnsigned() bool { return utx.signature.IsZero() }

// RawSignatureValues returns the V, R, S signature values of the transaction
// as they appear on the wire, with replay protection folded into V.
func (utx *UnverifiedTransaction) RawSignatureValues() (v uint64, r, s *uint256.Int) {
	return ReplayProtection(utx.signature.V, utx.chainID),
		new(uint256.Int).Set(&utx.signature.R),
		new(uint256.Int).Set(&utx.signature.S)
}

// SignatureHash returns the digest the sender signed.
func (utx *UnverifiedTransaction) SignatureHash() common.Hash {
	return utx.unsigned.SignatureHash(utx.chainID)
}

// Encode returns the canonical wire form of the transaction.
func (utx *UnverifiedTransaction) Encode() []byte {
	return utx.unsigned.encode(utx.chainID, &utx.signature)
}

// Hash returns the memoized content hash.
func (utx *UnverifiedTransaction) Hash() common.Hash { return utx.hash }

// ComputeHash hashes the signed encoding from scratch. The result always
// equals Hash.
func (utx *UnverifiedTransaction) ComputeHash() common.Hash {
	return keccak(utx.Encode())
}

// Size returns the encoded size of the transaction.
func (utx *UnverifiedTransaction) Size() uint64 {
	return uint64(len(utx.Encode()))
}

func copyChainID(id *uint64) *uint64 {
	if id == nil {
		return nil
	}
	cpy := *id
	return &cpy
}

// UnverifiedTransactions implements DerivableList for transactions.
type UnverifiedTransactions []*UnverifiedTransaction

// Len returns the length of s.
func (s UnverifiedTransactions) Len() int { return len(s) }

// EncodeIndex encodes the i'th transaction to w.
func (s UnverifiedTransactions) EncodeIndex(i int, w *bytes.Buffer) {
	s[i].EncodeRLP(w)
}
