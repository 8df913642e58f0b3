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
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAddrHex = "970e8128ab834e8eac17ab8e3812f010678cf791"
var testPrivHex = "289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"

// These tests are sanity checks.
// They should ensure that we don't e.g. use Sha3-224 instead of Sha3-256
// and that the sha3 library uses keccak-f permutation.
func TestKeccak256Hash(t *testing.T) {
	msg := []byte("abc")
	exp, _ := hex.DecodeString("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45")
	assert.Equal(t, exp, Keccak256(msg))
	assert.Equal(t, common.BytesToHash(exp), Keccak256Hash(msg))
	assert.Equal(t, common.BytesToHash(exp), HashData(NewKeccakState(), msg))
}

func TestToKeyErrors(t *testing.T) {
	_, err := HexToKey("0000000000000000000000000000000000000000000000000000000000000000")
	assert.Error(t, err, "zero key")
	_, err = HexToKey("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	assert.Error(t, err, "key >= N")
	_, err = HexToKey("00")
	assert.Error(t, err, "short key")
	_, err = HexToKey("zz9c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032")
	assert.Error(t, err, "bad hex")
}

func TestPubkeyToAddress(t *testing.T) {
	key, err := HexToKey(testPrivHex)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddrHex), PubkeyToAddress(key.PubKey()))
	assert.Equal(t, testPrivHex, hex.EncodeToString(FromKey(key)))
}

func TestSignAndRecover(t *testing.T) {
	key, _ := HexToKey(testPrivHex)
	msg := Keccak256([]byte("foo"))

	sig, err := Sign(msg, key)
	require.NoError(t, err)
	require.Len(t, sig, SignatureLength)
	assert.LessOrEqual(t, sig[RecoveryIDOffset], byte(1))

	pub, err := Ecrecover(msg, sig)
	require.NoError(t, err)
	assert.Equal(t, FromPubkey(key.PubKey()), pub)

	recovered, err := Secp256k1.Recover(msg, sig)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddrHex), PubkeyToAddress(recovered))

	// deterministic nonces: same digest, same signature
	again, _ := Sign(msg, key)
	assert.Equal(t, sig, again)

	// the caller's key survives signing
	assert.Equal(t, testPrivHex, hex.EncodeToString(FromKey(key)))
}

func TestRecoverRejectsBadInput(t *testing.T) {
	key, _ := HexToKey(testPrivHex)
	msg := Keccak256([]byte("foo"))
	sig, _ := Sign(msg, key)

	_, err := Secp256k1.Recover(msg, sig[:64])
	assert.Error(t, err, "short signature")

	bad := bytes.Clone(sig)
	bad[RecoveryIDOffset] = 2
	_, err = Secp256k1.Recover(msg, bad)
	assert.Error(t, err, "recovery id out of range")

	zero := make([]byte, SignatureLength)
	_, err = Secp256k1.Recover(msg, zero)
	assert.Error(t, err, "zero r and s")

	_, err = Secp256k1.Recover(msg[:31], sig)
	assert.Error(t, err, "short digest")
}

func TestSignRejectsBadInput(t *testing.T) {
	key, _ := HexToKey(testPrivHex)
	_, err := Sign(make([]byte, 31), key)
	assert.Error(t, err)
	_, err = Sign(make([]byte, 32), nil)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestValidateSignatureValues(t *testing.T) {
	check := func(expected bool, v byte, r, s *uint256.Int) {
		t.Helper()
		assert.Equal(t, expected, ValidateSignatureValues(v, r, s, false))
	}
	minusOne := uint256.NewInt(0).Sub(secp256k1N, uint256.NewInt(1))
	one := uint256.NewInt(1)
	zero := uint256.NewInt(0)

	// correct v,r,s
	check(true, 0, one, one)
	check(true, 1, one, one)
	// incorrect v, correct r,s,
	check(false, 2, one, one)
	check(false, 3, one, one)

	// incorrect v, combinations of incorrect/correct r,s at lower limit
	check(false, 2, zero, zero)
	check(false, 2, zero, one)
	check(false, 2, one, zero)
	check(false, 2, one, one)

	// correct v for any combination of incorrect r,s
	check(false, 0, zero, zero)
	check(false, 0, zero, one)
	check(false, 0, one, zero)

	// correct sig with max r,s
	check(true, 0, minusOne, minusOne)
	// correct v, combinations of incorrect r,s at upper limit
	check(false, 0, secp256k1N, minusOne)
	check(false, 0, minusOne, secp256k1N)
	check(false, 0, secp256k1N, secp256k1N)

	// homestead rejects the upper half of s
	assert.False(t, ValidateSignatureValues(0, one, minusOne, true))
	assert.True(t, ValidateSignatureValues(0, one, secp256k1halfN, true))
}

func TestLoadKey(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		// good
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"},
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\n"},
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\n\r"},
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\r\n"},
		{input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\n\n"},
		// bad
		{
			input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcde",
			err:   "key file too short, want 64 hex characters",
		},
		{
			input: "\n0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcde",
			err:   "key file too short, want 64 hex characters",
		},
		{
			input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdeX",
			err:   "invalid hex character 'X' in private key",
		},
		{
			input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdefX",
			err:   "invalid character 'X' at end of key file",
		},
		{
			input: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef\n\n\n",
			err:   "key file too long, want 64 hex characters",
		},
	}

	for _, test := range tests {
		f := filepath.Join(t.TempDir(), "key")
		require.NoError(t, os.WriteFile(f, []byte(test.input), 0600))

		_, err := LoadKey(f)
		switch {
		case err != nil && test.err == "":
			t.Fatalf("unexpected error for input %q:\n  %v", test.input, err)
		case err != nil && err.Error() != test.err:
			t.Fatalf("wrong error for input %q:\n  %v", test.input, err)
		case err == nil && test.err != "":
			t.Fatalf("LoadKey did not return error for input %q", test.input)
		}
	}
}

func TestSaveKey(t *testing.T) {
	file := filepath.Join(t.TempDir(), "key")
	key, _ := HexToKey(testPrivHex)
	require.NoError(t, SaveKey(file, key))

	loaded, err := LoadKey(file)
	require.NoError(t, err)
	assert.Equal(t, FromKey(key), FromKey(loaded))
}

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	_, err = ToKey(FromKey(key))
	assert.NoError(t, err)
}
