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
	"github.com/sunyihoo/txcore/crypto"
)

// SignedTransaction is a transaction whose signature has been proven to
// recover to a sender. It can only be obtained through Verify.
type SignedTransaction struct {
	tx     *UnverifiedTransaction
	sender common.Address
	public *crypto.PublicKey
}

// Transaction returns the wrapped unverified transaction.
func (stx *SignedTransaction) Transaction() *UnverifiedTransaction { return stx.tx }

// Sender returns the address derived from the signature.
func (stx *SignedTransaction) Sender() common.Address { return stx.sender }

// PublicKey returns the recovered public key, if it was retained.
func (stx *SignedTransaction) PublicKey() *crypto.PublicKey { return stx.public }

// Hash returns the content hash of the wrapped transaction.
func (stx *SignedTransaction) Hash() common.Hash { return stx.tx.Hash() }

// Encode returns the canonical wire form of the wrapped transaction.
func (stx *SignedTransaction) Encode() []byte { return stx.tx.Encode() }

// WithoutPublicKey drops the recovered public key, keeping only the sender.
func (stx *SignedTransaction) WithoutPublicKey() *SignedTransaction {
	return &SignedTransaction{tx: stx.tx, sender: stx.sender}
}

// UnverifiedSet unwraps a list of signed transactions.
func UnverifiedSet(txs []*SignedTransaction) UnverifiedTransactions {
	out := make(UnverifiedTransactions, len(txs))
	for i, tx := range txs {
		out[i] = tx.tx
	}
	return out
}
