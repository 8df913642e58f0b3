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
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
)

// SignatureLength indicates the byte length required to carry a signature with recovery id.
const SignatureLength = 64 + 1 // 64 bytes ECDSA signature + 1 byte recovery id

// RecoveryIDOffset points to the byte offset within the signature that contains the recovery id.
const RecoveryIDOffset = 64

// DigestLength sets the signature digest exact length
const DigestLength = 32

// PrivateKeyLength is the byte length of a serialized secp256k1 secret scalar.
const PrivateKeyLength = 32

// PrivateKey is a secp256k1 secret scalar.
type PrivateKey = secp256k1.PrivateKey

// PublicKey is a point on the secp256k1 curve.
type PublicKey = secp256k1.PublicKey

var (
	// secp256k1 曲线的阶 N
	secp256k1N     = uint256.MustFromHex("0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	secp256k1halfN = new(uint256.Int).Rsh(secp256k1N, 1)
)

var (
	ErrInvalidKey     = errors.New("invalid secp256k1 private key")
	errInvalidPubkey  = errors.New("invalid secp256k1 public key")
	errInvalidKeyHex  = errors.New("invalid hex data for private key")
	errInvalidSigLen  = errors.New("invalid signature length")
	errInvalidRecID   = errors.New("invalid signature recovery id")
	errInvalidDigest  = fmt.Errorf("digest is required to be exactly %d bytes", DigestLength)
	errKeyFileTooLong = errors.New("key file too long, want 64 hex characters")
)

// KeccakState wraps sha3.state. In addition to the usual hash methods, it also supports
// Read to get a variable amount of data from the hash state. Read is faster than Sum
// because it doesn't copy the internal state, but also modifies the internal state.
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// NewKeccakState creates a new KeccakState
func NewKeccakState() KeccakState {
	return sha3.NewLegacyKeccak256().(KeccakState)
}

// HashData hashes the provided data using the KeccakState and returns a 32 byte hash
func HashData(kh KeccakState, data []byte) (h common.Hash) {
	kh.Reset()
	kh.Write(data)
	kh.Read(h[:])
	return h
}

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	b := make([]byte, 32)
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(b)
	return b
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input data,
// converting it to an internal Hash data structure.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(h[:])
	return h
}

// ToKey creates a private key with the given secret scalar. The input must be
// exactly 32 bytes and lie in [1, N).
func ToKey(d []byte) (*PrivateKey, error) {
	if len(d) != PrivateKeyLength {
		return nil, fmt.Errorf("invalid length, need %d bits", PrivateKeyLength*8)
	}
	var k secp256k1.ModNScalar
	if overflow := k.SetByteSlice(d); overflow {
		return nil, errors.New("invalid private key, >=N")
	}
	if k.IsZero() {
		return nil, errors.New("invalid private key, zero")
	}
	return secp256k1.NewPrivateKey(&k), nil
}

// FromKey exports a private key into its 32 byte big-endian form.
func FromKey(priv *PrivateKey) []byte {
	if priv == nil {
		return nil
	}
	return priv.Serialize()
}

// UnmarshalPubkey converts bytes to a secp256k1 public key.
func UnmarshalPubkey(pub []byte) (*PublicKey, error) {
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidPubkey, err)
	}
	return key, nil
}

// FromPubkey serializes a public key in the 65 byte uncompressed form.
func FromPubkey(pub *PublicKey) []byte {
	if pub == nil {
		return nil
	}
	return pub.SerializeUncompressed()
}

// HexToKey parses a secp256k1 private key.
func HexToKey(hexkey string) (*PrivateKey, error) {
	b, err := hex.DecodeString(hexkey)
	if byteErr, ok := err.(hex.InvalidByteError); ok {
		return nil, fmt.Errorf("invalid hex character %q in private key", byte(byteErr))
	} else if err != nil {
		return nil, errInvalidKeyHex
	}
	return ToKey(b)
}

// LoadKey loads a secp256k1 private key from the given file.
func LoadKey(file string) (*PrivateKey, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	r := bufio.NewReader(fd)
	buf := make([]byte, 64)
	n, err := readASCII(buf, r)
	if err != nil {
		return nil, err
	} else if n != len(buf) {
		return nil, errors.New("key file too short, want 64 hex characters")
	}
	if err := checkKeyFileEnd(r); err != nil {
		return nil, err
	}

	return HexToKey(string(buf))
}

// readASCII reads into 'buf', stopping when the buffer is full or
// when a non-printable control character is encountered.
func readASCII(buf []byte, r *bufio.Reader) (n int, err error) {
	for ; n < len(buf); n++ {
		buf[n], err = r.ReadByte()
		switch {
		case err == io.EOF || buf[n] < '!':
			return n, nil
		case err != nil:
			return n, err
		}
	}
	return n, nil
}

// checkKeyFileEnd skips over additional newlines at the end of a key file.
func checkKeyFileEnd(r *bufio.Reader) error {
	for i := 0; ; i++ {
		b, err := r.ReadByte()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		case b != '\n' && b != '\r':
			return fmt.Errorf("invalid character %q at end of key file", b)
		case i >= 2:
			return errKeyFileTooLong
		}
	}
}

// SaveKey saves a secp256k1 private key to the given file with
// restrictive permissions. The key data is saved hex-encoded.
func SaveKey(file string, key *PrivateKey) error {
	k := hex.EncodeToString(FromKey(key))
	return os.WriteFile(file, []byte(k), 0600)
}

// GenerateKey creates a new random private key.
func GenerateKey() (*PrivateKey, error) {
	return secp256k1.GeneratePrivateKey()
}

// ValidateSignatureValues verifies whether the signature values are valid with
// the given chain rules. The v value is assumed to be either 0 or 1.
func ValidateSignatureValues(v byte, r, s *uint256.Int, homestead bool) bool {
	if r.IsZero() || s.IsZero() {
		return false
	}
	// reject upper range of s values (ECDSA malleability)
	if homestead && s.Gt(secp256k1halfN) {
		return false
	}
	// Frontier: allow s to be in full N range
	return r.Lt(secp256k1N) && s.Lt(secp256k1N) && (v == 0 || v == 1)
}

// PubkeyToAddress derives the account address of a public key: the last 20
// bytes of the Keccak256 hash of its uncompressed X||Y coordinates.
func PubkeyToAddress(p *PublicKey) common.Address {
	pubBytes := FromPubkey(p)
	return common.BytesToAddress(Keccak256(pubBytes[1:])[12:])
}
