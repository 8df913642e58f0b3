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

package core

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/txcore/core/types"
	"github.com/sunyihoo/txcore/crypto"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// The meter ticker runs for the lifetime of the process.
	goleak.VerifyTestMain(m, goleak.IgnoreAnyFunction("github.com/ethereum/go-ethereum/metrics.(*meterTicker).loop"))
}

var (
	testKey, _ = crypto.HexToKey("b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291")
	testAddr   = crypto.PubkeyToAddress(testKey.PubKey())
	testChain  = uint64(1337)
)

func makeTxs(t *testing.T, key *crypto.PrivateKey, start, n int) []*types.UnverifiedTransaction {
	t.Helper()
	txs := make([]*types.UnverifiedTransaction, n)
	for i := range txs {
		tx := types.NewTransaction(uint64(start+i), common.Address{0xaa}, uint256.NewInt(1), 21000, uint256.NewInt(1), nil)
		utx, err := types.Sign(tx, key, &testChain)
		require.NoError(t, err)
		txs[i] = utx
	}
	return txs
}

func unsignedTx(t *testing.T) *types.UnverifiedTransaction {
	t.Helper()
	tx := types.NewTransaction(0, common.Address{}, nil, 0, nil, nil)
	utx, err := tx.WithSignature(make([]byte, crypto.SignatureLength), nil)
	require.NoError(t, err)
	return utx
}

func TestVerifyAll(t *testing.T) {
	other, err := crypto.GenerateKey()
	require.NoError(t, err)

	txs := append(makeTxs(t, testKey, 0, 20), makeTxs(t, other, 0, 20)...)
	signed, err := VerifyAll(context.Background(), txs)
	require.NoError(t, err)
	require.Len(t, signed, len(txs))
	for i, stx := range signed {
		assert.Same(t, txs[i], stx.Transaction())
		if i < 20 {
			assert.Equal(t, testAddr, stx.Sender())
		} else {
			assert.Equal(t, crypto.PubkeyToAddress(other.PubKey()), stx.Sender())
		}
	}
}

func TestVerifyAllEmpty(t *testing.T) {
	signed, err := VerifyAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, signed)
}

func TestVerifyAllFailure(t *testing.T) {
	txs := makeTxs(t, testKey, 0, 16)
	txs[9] = unsignedTx(t)

	for _, threads := range []int{1, 4} {
		_, err := verifyAll(context.Background(), txs, threads)
		require.Error(t, err)

		var verr *TxVerifyError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, 9, verr.Index)
		assert.Equal(t, txs[9].Hash(), verr.Hash)
		assert.ErrorIs(t, err, types.ErrInvalidSignature)
	}
}

func TestVerifyAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := VerifyAll(ctx, makeTxs(t, testKey, 0, 8))
	assert.ErrorIs(t, err, context.Canceled)
}
