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

import "errors"

var (
	// ErrKnownBlock is returned when a block to import is already known locally.
	ErrKnownBlock = errors.New("block already known")

	// ErrInvalidGenesis is returned when the chain is created from a block
	// that cannot serve as genesis.
	ErrInvalidGenesis = errors.New("invalid genesis block")

	// ErrUnknownParent is returned when the parent of an appended block is not
	// the current head.
	ErrUnknownParent = errors.New("unknown parent")

	// ErrInvalidNumber is returned when a block number does not follow its
	// parent.
	// 区块号必须等于父区块号加一。
	ErrInvalidNumber = errors.New("invalid block number")

	// ErrExtraTooLong is returned if the extra data of a header exceeds
	// params.MaximumExtraDataSize.
	ErrExtraTooLong = errors.New("extra-data too long")

	// ErrInvalidTxRoot is returned when the transactions root in the header
	// does not match the transactions carried by the block.
	ErrInvalidTxRoot = errors.New("transaction root hash mismatch")

	// ErrInvalidUncleHash is returned when the uncles hash in the header does
	// not match the uncles carried by the block.
	ErrInvalidUncleHash = errors.New("uncle root hash mismatch")
)
