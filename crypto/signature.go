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

package crypto

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	decred_ecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Backend is the narrow signing primitive used by the transaction core.
// Signatures are in the [R || S || V] format where V is the raw recovery
// id (0 or 1), never a chain-folded value.
type Backend interface {
	// Sign produces a recoverable signature of a 32 byte digest.
	Sign(digest []byte, key *PrivateKey) ([]byte, error)

	// Recover returns the public key that created the given signature.
	Recover(digest, sig []byte) (*PublicKey, error)
}

// Secp256k1 is the default Backend, built on the decred secp256k1 package.
var Secp256k1 Backend = secp256k1Backend{}

type secp256k1Backend struct{}

// Sign calculates an ECDSA signature using RFC6979 deterministic nonces.
//
// The produced signature is in the [R || S || V] format where V is 0 or 1.
// The backend works on its own copy of the secret scalar and wipes it before
// returning, the caller's key is left untouched.
func (secp256k1Backend) Sign(digest []byte, key *PrivateKey) ([]byte, error) {
	if len(digest) != DigestLength {
		return nil, errInvalidDigest
	}
	if key == nil || key.Key.IsZero() {
		return nil, ErrInvalidKey
	}
	priv := secp256k1.PrivateKey{Key: key.Key}
	defer priv.Zero()

	sig := decred_ecdsa.SignCompact(&priv, digest, false) // ref uncompressed pubkey
	// Convert to Ethereum signature format with 'recovery id' v at the end.
	v := sig[0] - 27
	copy(sig, sig[1:])
	sig[RecoveryIDOffset] = v
	return sig, nil
}

// Recover returns the public key that created the given signature.
func (secp256k1Backend) Recover(digest, sig []byte) (*PublicKey, error) {
	if len(digest) != DigestLength {
		return nil, errInvalidDigest
	}
	if len(sig) != SignatureLength {
		return nil, errInvalidSigLen
	}
	if sig[RecoveryIDOffset] > 1 {
		return nil, errInvalidRecID
	}
	// Convert to secp256k1 input format with 'recovery id' v at the beginning.
	// decred 期望 v = 27 + recid（未压缩公钥）
	btcsig := make([]byte, SignatureLength)
	btcsig[0] = sig[RecoveryIDOffset] + 27
	copy(btcsig[1:], sig)

	pub, _, err := decred_ecdsa.RecoverCompact(btcsig, digest)
	return pub, err
}

// Sign signs digest with the default backend.
func Sign(digest []byte, key *PrivateKey) ([]byte, error) {
	return Secp256k1.Sign(digest, key)
}

// Ecrecover returns the uncompressed public key that created the given signature.
func Ecrecover(digest, sig []byte) ([]byte, error) {
	pub, err := Secp256k1.Recover(digest, sig)
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}
