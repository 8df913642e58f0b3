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
	"math"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/txcore/crypto"
)

// EIP-155 offsets: v = recid + 27 for unprotected signatures,
// v = recid + 35 + 2*chainID for replay-protected ones.
const (
	unprotectedVOffset = 27
	protectedVOffset   = 35
)

// SignatureComponents holds the three scalar parts of a transaction signature.
type SignatureComponents struct {
	V    uint8       // raw recovery id, 0 or 1, before replay protection is folded in
	R, S uint256.Int // curve-native signature values
}

// signatureFromBytes splits a [R || S || V] signature.
func signatureFromBytes(sig []byte) (SignatureComponents, error) {
	if len(sig) != crypto.SignatureLength {
		return SignatureComponents{}, fmt.Errorf("%w: wrong size for signature: got %d, want %d", ErrInvalidSignature, len(sig), crypto.SignatureLength)
	}
	var sc SignatureComponents
	sc.R.SetBytes(sig[:32])
	sc.S.SetBytes(sig[32:64])
	sc.V = sig[crypto.RecoveryIDOffset]
	return sc, nil
}

// Bytes returns the signature in the [R || S || V] format expected by the
// crypto backend.
func (sc *SignatureComponents) Bytes() []byte {
	sig := make([]byte, crypto.SignatureLength)
	r, s := sc.R.Bytes32(), sc.S.Bytes32()
	copy(sig[:32], r[:])
	copy(sig[32:64], s[:])
	sig[crypto.RecoveryIDOffset] = sc.V
	return sig
}

// IsZero reports whether both r and s are zero.
func (sc *SignatureComponents) IsZero() bool {
	return sc.R.IsZero() && sc.S.IsZero()
}

// ReplayProtection folds the chain id into the recovery id (EIP-155).
// Without a chain id the Homestead offset of 27 is applied.
func ReplayProtection(v uint8, chainID *uint64) uint64 {
	if chainID == nil {
		return uint64(v) + unprotectedVOffset
	}
	return uint64(v) + protectedVOffset + *chainID*2
}

// InvertReplayProtection recovers the raw recovery id from a combined v value,
// given the chain id the transaction declares. A value that does not fit the
// branch selected by chainID is rejected.
func InvertReplayProtection(combined uint64, chainID *uint64) (uint8, error) {
	var base uint64
	if chainID == nil {
		base = unprotectedVOffset
	} else {
		if *chainID > (math.MaxUint64-protectedVOffset)/2 {
			return 0, fmt.Errorf("%w: chain id %d out of range", ErrInvalidSignature, *chainID)
		}
		base = protectedVOffset + *chainID*2
	}
	if combined < base || combined-base > 1 {
		if chainID == nil {
			return 0, fmt.Errorf("%w: v %d is not replay-unprotected", ErrInvalidSignature, combined)
		}
		return 0, fmt.Errorf("%w: v %d does not match chain id %d", ErrInvalidSignature, combined, *chainID)
	}
	return uint8(combined - base), nil
}

// DeriveReplayProtection splits a combined v value read off the wire into the
// raw recovery id and the chain id it carries, if any.
//
// 27/28 表示无重放保护；>= 35 时 chainID = (v-35)/2，recid = (v-35)%2。
func DeriveReplayProtection(combined uint64) (uint8, *uint64, error) {
	switch {
	case combined == 27 || combined == 28:
		return uint8(combined - unprotectedVOffset), nil, nil
	case combined >= protectedVOffset:
		chainID := (combined - protectedVOffset) / 2
		return uint8((combined - protectedVOffset) % 2), &chainID, nil
	default:
		return 0, nil, fmt.Errorf("%w: v %d is neither EIP-155 nor homestead", ErrInvalidSignature, combined)
	}
}
