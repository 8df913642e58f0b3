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
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/sunyihoo/txcore/core/types"
	"github.com/sunyihoo/txcore/params"
)

var (
	headBlockGauge = metrics.NewRegisteredGauge("txcore/chain/head", nil)
	blockTxsMeter  = metrics.NewRegisteredMeter("txcore/chain/txs", nil)
)

// BlockChain is an in-memory canonical chain of blocks whose transactions
// have all been verified.
//
// Blocks can only be appended on top of the current head. BlockChain is safe
// for concurrent use.
type BlockChain struct {
	mu      sync.RWMutex
	blocks  []*types.Block // indexed by number
	byHash  map[common.Hash]*types.Block
	senders map[common.Hash][]common.Address // per block, in transaction order
}

// NewBlockChain returns a chain holding only the given genesis block. The
// genesis must be block 0 and carry no transactions.
func NewBlockChain(genesis *types.Block) (*BlockChain, error) {
	if genesis == nil {
		return nil, fmt.Errorf("%w: nil block", ErrInvalidGenesis)
	}
	if genesis.Number() != 0 {
		return nil, fmt.Errorf("%w: number %d", ErrInvalidGenesis, genesis.Number())
	}
	if len(genesis.Transactions()) != 0 {
		return nil, fmt.Errorf("%w: carries %d transactions", ErrInvalidGenesis, len(genesis.Transactions()))
	}
	hash := genesis.Hash()
	bc := &BlockChain{
		blocks:  []*types.Block{genesis},
		byHash:  map[common.Hash]*types.Block{hash: genesis},
		senders: map[common.Hash][]common.Address{hash: {}},
	}
	headBlockGauge.Update(0)
	log.Debug("Initialised chain", "genesis", hash)
	return bc, nil
}

// Append validates block against the current head and adds it to the chain.
//
// The header must link to the head by parent hash and number and its roots
// must match the transactions and uncles it carries. Extra data is capped at
// params.MaximumExtraDataSize. Every transaction must recover to a sender.
func (bc *BlockChain) Append(ctx context.Context, block *types.Block) error {
	hash := block.Hash()
	if err := bc.checkLinkage(block); err != nil {
		return err
	}
	if extra := len(block.Header().ExtraData()); uint64(extra) > params.MaximumExtraDataSize {
		return fmt.Errorf("%w: %d > %d", ErrExtraTooLong, extra, params.MaximumExtraDataSize)
	}
	if root := types.DeriveSha(block.Transactions(), trie.NewStackTrie(nil)); root != block.TxHash() {
		return fmt.Errorf("%w: have %x, want %x", ErrInvalidTxRoot, block.TxHash(), root)
	}
	if uncles := types.CalcUncleHash(block.Uncles()); uncles != block.Header().UnclesHash() {
		return fmt.Errorf("%w: have %x, want %x", ErrInvalidUncleHash, block.Header().UnclesHash(), uncles)
	}

	// 签名恢复较慢，在锁外进行。
	signed, err := VerifyAll(ctx, block.Transactions())
	if err != nil {
		return fmt.Errorf("block %d: %w", block.Number(), err)
	}
	senders := make([]common.Address, len(signed))
	for i, stx := range signed {
		senders[i] = stx.Sender()
	}

	bc.mu.Lock()
	defer bc.mu.Unlock()

	// The head may have moved while the transactions were verified.
	if err := bc.checkLinkageLocked(block); err != nil {
		return err
	}
	bc.blocks = append(bc.blocks, block)
	bc.byHash[hash] = block
	bc.senders[hash] = senders

	headBlockGauge.Update(int64(block.Number()))
	blockTxsMeter.Mark(int64(len(senders)))
	log.Debug("Appended block", "number", block.Number(), "hash", hash, "txs", len(senders))
	return nil
}

func (bc *BlockChain) checkLinkage(block *types.Block) error {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.checkLinkageLocked(block)
}

func (bc *BlockChain) checkLinkageLocked(block *types.Block) error {
	if _, ok := bc.byHash[block.Hash()]; ok {
		return fmt.Errorf("%w: %x", ErrKnownBlock, block.Hash())
	}
	head := bc.blocks[len(bc.blocks)-1]
	if block.ParentHash() != head.Hash() {
		return fmt.Errorf("%w: %x, head is %x", ErrUnknownParent, block.ParentHash(), head.Hash())
	}
	if block.Number() != head.Number()+1 {
		return fmt.Errorf("%w: have %d, want %d", ErrInvalidNumber, block.Number(), head.Number()+1)
	}
	return nil
}

// CurrentBlock returns the head of the chain.
func (bc *BlockChain) CurrentBlock() *types.Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.blocks[len(bc.blocks)-1]
}

// Genesis returns the genesis block of the chain.
func (bc *BlockChain) Genesis() *types.Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.blocks[0]
}

// HasBlock checks if a block is fully present in the chain or not.
func (bc *BlockChain) HasBlock(hash common.Hash) bool {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	_, ok := bc.byHash[hash]
	return ok
}

// GetBlockByHash retrieves a block from the chain by hash, or nil if unknown.
func (bc *BlockChain) GetBlockByHash(hash common.Hash) *types.Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.byHash[hash]
}

// GetBlockByNumber retrieves a block from the chain by number, or nil if the
// chain is shorter.
func (bc *BlockChain) GetBlockByNumber(number uint64) *types.Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	if number >= uint64(len(bc.blocks)) {
		return nil
	}
	return bc.blocks[number]
}

// Senders returns the recovered senders of the block's transactions, in
// transaction order. The result is nil for unknown blocks.
func (bc *BlockChain) Senders(hash common.Hash) []common.Address {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	senders, ok := bc.senders[hash]
	if !ok {
		return nil
	}
	return append([]common.Address{}, senders...)
}
