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
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Block represents a block: a header, the transactions it carries and its
// uncle headers. Blocks are immutable.
type Block struct {
	header       *Header
	transactions UnverifiedTransactions
	uncles       []*Header
}

// NewBlock creates a new block. The input data is copied, and the
// transactions root and uncle hash of the header are derived from txs and
// uncles.
func NewBlock(header *Header, txs []*UnverifiedTransaction, uncles []*Header, hasher TrieHasher) *Block {
	b := &Block{header: header.Copy()}

	if len(txs) == 0 {
		b.header.SetTransactionsRoot(EmptyTxsHash)
	} else {
		b.transactions = make(UnverifiedTransactions, len(txs))
		copy(b.transactions, txs)
		b.header.SetTransactionsRoot(DeriveSha(b.transactions, hasher))
	}

	if len(uncles) == 0 {
		b.header.SetUnclesHash(EmptyUncleHash)
	} else {
		b.uncles = make([]*Header, len(uncles))
		for i := range uncles {
			b.uncles[i] = uncles[i].Copy()
		}
		b.header.SetUnclesHash(CalcUncleHash(b.uncles))
	}
	b.header.Hash() // memoize before the block is shared
	return b
}

// NewBlockWithHeader creates a block with the given header data. The
// header data is copied, changes to header and to the field values
// will not affect the block.
func NewBlockWithHeader(header *Header) *Block {
	b := &Block{header: header.Copy()}
	b.header.Hash()
	return b
}

// CalcUncleHash hashes the RLP list of uncle headers.
func CalcUncleHash(uncles []*Header) common.Hash {
	if len(uncles) == 0 {
		return EmptyUncleHash
	}
	return rlpHash(uncles)
}

// Header returns a deep-copy of the entire block header.
func (b *Block) Header() *Header { return b.header.Copy() }

// Transactions returns the transactions of the block.
func (b *Block) Transactions() UnverifiedTransactions { return b.transactions }

// Uncles returns copies of the uncle headers of the block.
func (b *Block) Uncles() []*Header {
	if len(b.uncles) == 0 {
		return nil
	}
	uncles := make([]*Header, len(b.uncles))
	for i, u := range b.uncles {
		uncles[i] = u.Copy()
	}
	return uncles
}

// Transaction returns the transaction with the given content hash, or nil.
func (b *Block) Transaction(hash common.Hash) *UnverifiedTransaction {
	for _, transaction := range b.transactions {
		if transaction.Hash() == hash {
			return transaction
		}
	}
	return nil
}

func (b *Block) Number() uint64          { return b.header.number }
func (b *Block) ParentHash() common.Hash { return b.header.parentHash }
func (b *Block) TxHash() common.Hash     { return b.header.transactionsRoot }
func (b *Block) Difficulty() *uint256.Int {
	return b.header.Difficulty()
}

// Hash returns the keccak256 hash of b's header.
func (b *Block) Hash() common.Hash { return b.header.Hash() }
