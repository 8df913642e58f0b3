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
	"fmt"
	"runtime"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/sunyihoo/txcore/core/types"
	"golang.org/x/sync/errgroup"
)

var batchVerifyTimer = metrics.NewRegisteredTimer("txcore/batch", nil)

// TxVerifyError reports the first transaction of a batch that failed
// verification.
type TxVerifyError struct {
	Index int
	Hash  common.Hash
	Err   error
}

func (e *TxVerifyError) Error() string {
	return fmt.Sprintf("transaction %d (%x): %v", e.Index, e.Hash, e.Err)
}

func (e *TxVerifyError) Unwrap() error { return e.Err }

// VerifyAll recovers the senders of a batch of transactions concurrently,
// using at most as many goroutines as there are CPUs. The result is in input
// order. The first failure cancels the remaining work and is returned as a
// *TxVerifyError.
// 并发恢复发送者；任意一笔失败即取消剩余任务。
func VerifyAll(ctx context.Context, txs []*types.UnverifiedTransaction) ([]*types.SignedTransaction, error) {
	return verifyAll(ctx, txs, runtime.NumCPU())
}

func verifyAll(ctx context.Context, txs []*types.UnverifiedTransaction, threads int) ([]*types.SignedTransaction, error) {
	start := time.Now()
	defer batchVerifyTimer.UpdateSince(start)

	signed := make([]*types.SignedTransaction, len(txs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for i, tx := range txs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stx, err := types.Verify(tx)
			if err != nil {
				return &TxVerifyError{Index: i, Hash: tx.Hash(), Err: err}
			}
			signed[i] = stx
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Debug("Batch verification failed", "txs", len(txs), "err", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Trace("Verified transaction batch", "txs", len(txs), "elapsed", common.PrettyDuration(time.Since(start)))
	return signed, nil
}
