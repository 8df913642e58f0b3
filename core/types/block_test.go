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
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHasher() TrieHasher { return trie.NewStackTrie(nil) }

func TestEmptyRoots(t *testing.T) {
	assert.Equal(t, common.HexToHash("1dcc4de8dec75d7aab85b567b6ccd41ad312451b948a7413f0a142fd40d49347"), EmptyUncleHash)
	assert.Equal(t, EmptyUncleHash, CalcUncleHash(nil))
}

func TestHeaderHashCache(t *testing.T) {
	h := NewHeader()
	h.SetNumber(100)
	h.SetTimestamp(1698771234)
	h.SetParentHash(common.HexToHash("0xd4fe7bc31cedb7bfb8a345f31e668033056b2728"))
	assert.False(t, h.Cached())

	first := h.Hash()
	assert.True(t, h.Cached())
	assert.Equal(t, first, h.Hash())

	// Setting a field to its current value keeps the cache.
	h.SetNumber(100)
	h.SetExtraData(nil)
	h.SetBaseFee(nil)
	h.SetGasLimit(new(uint256.Int))
	assert.True(t, h.Cached())

	setters := []func(*Header){
		func(h *Header) { h.SetNumber(101) },
		func(h *Header) { h.SetTimestamp(1) },
		func(h *Header) { h.SetAuthor(common.Address{1}) },
		func(h *Header) { h.SetExtraData([]byte("extra")) },
		func(h *Header) { h.SetStateRoot(common.Hash{1}) },
		func(h *Header) { h.SetReceiptsRoot(common.Hash{2}) },
		func(h *Header) { h.SetLogBloom(Bloom{1}) },
		func(h *Header) { h.SetGasUsed(uint256.NewInt(21000)) },
		func(h *Header) { h.SetGasLimit(uint256.NewInt(8000000)) },
		func(h *Header) { h.SetDifficulty(uint256.NewInt(131072)) },
		func(h *Header) { h.SetSeal([][]byte{{0x80}}) },
		func(h *Header) { h.SetBaseFee(uint256.NewInt(7)) },
		func(h *Header) { h.SetTransactionsRoot(common.Hash{3}) },
		func(h *Header) { h.SetUnclesHash(common.Hash{4}) },
	}
	prev := first
	for i, set := range setters {
		set(h)
		assert.False(t, h.Cached(), "setter %d", i)
		next := h.Hash()
		assert.NotEqual(t, prev, next, "setter %d", i)
		prev = next
	}
}

func TestHeaderCopy(t *testing.T) {
	h := NewHeader()
	h.SetExtraData([]byte{1, 2})
	h.SetBaseFee(uint256.NewInt(5))
	want := h.Hash()

	cpy := h.Copy()
	cpy.SetExtraData([]byte{3})
	cpy.SetBaseFee(nil)

	assert.Equal(t, want, h.Hash())
	assert.Equal(t, []byte{1, 2}, h.ExtraData())
	assert.Equal(t, uint64(5), h.BaseFee().Uint64())
	assert.NotEqual(t, want, cpy.Hash())
}

func TestNewBlock(t *testing.T) {
	txs := []*UnverifiedTransaction{
		MustSign(newTestTx(0), testKey, chainID(1)),
		MustSign(newTestTx(1), testKey, chainID(1)),
	}
	header := NewHeader()
	header.SetNumber(1)

	b := NewBlock(header, txs, nil, newHasher())
	assert.Equal(t, DeriveSha(UnverifiedTransactions(txs), newHasher()), b.TxHash())
	assert.NotEqual(t, EmptyTxsHash, b.TxHash())
	assert.Equal(t, EmptyUncleHash, b.Header().UnclesHash())
	assert.Equal(t, uint64(1), b.Number())
	assert.Same(t, txs[1], b.Transaction(txs[1].Hash()))
	assert.Nil(t, b.Transaction(common.Hash{}))

	// The block owns a copy of the header.
	header.SetNumber(2)
	assert.Equal(t, uint64(1), b.Number())

	empty := NewBlock(header, nil, nil, newHasher())
	assert.Equal(t, EmptyTxsHash, empty.TxHash())

	uncle := NewHeader()
	withUncle := NewBlock(header, nil, []*Header{uncle}, newHasher())
	assert.Equal(t, CalcUncleHash([]*Header{uncle}), withUncle.Header().UnclesHash())
	assert.NotEqual(t, EmptyUncleHash, withUncle.Header().UnclesHash())

	// Uncles hands out copies, the stored uncles keep matching the header.
	withUncle.Uncles()[0].SetNumber(42)
	assert.Equal(t, uint64(0), withUncle.Uncles()[0].Number())
	assert.Equal(t, withUncle.Header().UnclesHash(), CalcUncleHash(withUncle.Uncles()))
}

func TestDeriveShaOrder(t *testing.T) {
	// More than 128 entries exercises every branch of the insertion order.
	txs := make(UnverifiedTransactions, 130)
	for i := range txs {
		txs[i] = MustSign(newTestTx(uint64(i)), testKey, nil)
	}
	root := DeriveSha(txs, newHasher())
	assert.Equal(t, root, DeriveSha(txs, newHasher()))

	swapped := make(UnverifiedTransactions, len(txs))
	copy(swapped, txs)
	swapped[0], swapped[129] = swapped[129], swapped[0]
	assert.NotEqual(t, root, DeriveSha(swapped, newHasher()))
}

func TestTransactionJSON(t *testing.T) {
	for _, id := range []*uint64{nil, chainID(1)} {
		utx := MustSign(newTestTx(5), testKey, id)
		enc, err := json.Marshal(utx)
		require.NoError(t, err)

		var dec UnverifiedTransaction
		require.NoError(t, json.Unmarshal(enc, &dec))
		assert.Equal(t, utx.Hash(), dec.Hash())
		assert.Equal(t, utx.Encode(), dec.Encode())
		assert.Equal(t, utx.ChainID(), dec.ChainID())
	}
}

func TestTransactionJSONErrors(t *testing.T) {
	utx := MustSign(newTestTx(5), testKey, chainID(1))
	enc, err := json.Marshal(utx)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(enc, &fields))

	mutate := func(key string, value interface{}) []byte {
		m := make(map[string]interface{}, len(fields))
		for k, v := range fields {
			m[k] = v
		}
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
		out, err := json.Marshal(m)
		require.NoError(t, err)
		return out
	}
	tests := []struct {
		name  string
		input []byte
	}{
		{"hash mismatch", mutate("hash", common.Hash{1}.Hex())},
		{"chain id mismatch", mutate("chainId", "0x2")},
		{"missing nonce", mutate("nonce", nil)},
		{"missing v", mutate("v", nil)},
		{"bad v", mutate("v", "0x1d")},
		{"unknown type", mutate("type", "0x7")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dec UnverifiedTransaction
			assert.Error(t, json.Unmarshal(tt.input, &dec))
		})
	}
}
