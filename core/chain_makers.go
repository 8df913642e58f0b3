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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/holiman/uint256"
	"github.com/sunyihoo/txcore/core/types"
	"github.com/sunyihoo/txcore/params"
)

// defaultDifficulty is the difficulty of generated blocks that do not set one.
const defaultDifficulty = 10

// BlockOptions describes the contents of a generated block. Zero fields take
// defaults: difficulty 10, timestamp parent + 1.
type BlockOptions struct {
	Author       common.Address
	Timestamp    uint64
	Difficulty   *uint256.Int
	Bloom        types.Bloom
	Extra        []byte
	Transactions []*types.UnverifiedTransaction
	Uncles       []*types.Header
}

// BlockBuilder generates linked chains of blocks for tests and demos.
//
// Each Add* call returns a new builder holding only the blocks it created; the
// receiver is left untouched, so a builder can be forked.
type BlockBuilder struct {
	parent *types.Block // block preceding blocks[0], nil for genesis builders
	blocks []*types.Block
}

// Genesis returns a builder holding a single genesis block.
func Genesis() *BlockBuilder {
	header := types.NewHeader()
	header.SetDifficulty(uint256.NewInt(defaultDifficulty))
	header.SetGasLimit(uint256.NewInt(params.GenesisGasLimit))
	return &BlockBuilder{
		blocks: []*types.Block{types.NewBlockWithHeader(header)},
	}
}

// AddBlock appends one empty block.
func (bb *BlockBuilder) AddBlock() *BlockBuilder {
	return bb.AddBlocks(1)
}

// AddBlocks appends n empty blocks.
func (bb *BlockBuilder) AddBlocks(n int) *BlockBuilder {
	return bb.AddBlocksWith(n, func(int) BlockOptions { return BlockOptions{} })
}

// AddBlockWith appends one block built from the options returned by get.
func (bb *BlockBuilder) AddBlockWith(get func() BlockOptions) *BlockBuilder {
	return bb.AddBlocksWith(1, func(int) BlockOptions { return get() })
}

// AddBlocksWith appends n blocks, the i'th one built from get(i). Every block
// links to the previous one through its parent hash and number.
func (bb *BlockBuilder) AddBlocksWith(n int, get func(i int) BlockOptions) *BlockBuilder {
	parent := bb.Last()
	if parent == nil {
		parent = bb.parent
	}
	out := &BlockBuilder{parent: parent, blocks: make([]*types.Block, 0, n)}
	for i := 0; i < n; i++ {
		block := makeBlock(parent, get(i))
		out.blocks = append(out.blocks, block)
		parent = block
	}
	return out
}

// Last returns the newest block of the builder, or nil if it holds none.
func (bb *BlockBuilder) Last() *types.Block {
	if len(bb.blocks) == 0 {
		return nil
	}
	return bb.blocks[len(bb.blocks)-1]
}

// Blocks returns the blocks held by the builder, oldest first.
func (bb *BlockBuilder) Blocks() []*types.Block {
	return bb.blocks
}

func makeBlock(parent *types.Block, opts BlockOptions) *types.Block {
	ph := parent.Header()

	header := types.NewHeader()
	header.SetParentHash(parent.Hash())
	header.SetNumber(ph.Number() + 1)
	header.SetAuthor(opts.Author)
	if opts.Timestamp != 0 {
		header.SetTimestamp(opts.Timestamp)
	} else {
		header.SetTimestamp(ph.Timestamp() + 1)
	}
	if opts.Difficulty != nil {
		header.SetDifficulty(opts.Difficulty)
	} else {
		header.SetDifficulty(uint256.NewInt(defaultDifficulty))
	}
	header.SetLogBloom(opts.Bloom)
	header.SetExtraData(opts.Extra)
	header.SetGasLimit(ph.GasLimit())

	return types.NewBlock(header, opts.Transactions, opts.Uncles, trie.NewStackTrie(nil))
}
