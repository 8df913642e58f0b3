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

// LegacyTx is the transaction data of the original Ethereum transactions.
// Nil numeric fields read as zero.
type LegacyTx struct {
	Nonce    *uint256.Int // nonce of sender account
	GasPrice *uint256.Int // wei per gas
	Gas      *uint256.Int // gas limit
	Action   Action       // contract creation or message call
	Value    *uint256.Int // wei amount
	Data     []byte       // contract invocation input data
}

// NewTransaction creates an unsigned legacy message call.
func NewTransaction(nonce uint64, to common.Address, amount *uint256.Int, gasLimit uint64, gasPrice *uint256.Int, data []byte) TypedTransaction {
	return NewTx(&LegacyTx{
		Nonce:    uint256.NewInt(nonce),
		Action:   CallAction(to),
		Value:    amount,
		Gas:      uint256.NewInt(gasLimit),
		GasPrice: gasPrice,
		Data:     data,
	})
}

// NewContractCreation creates an unsigned legacy contract creation.
func NewContractCreation(nonce uint64, amount *uint256.Int, gasLimit uint64, gasPrice *uint256.Int, data []byte) TypedTransaction {
	return NewTx(&LegacyTx{
		Nonce:    uint256.NewInt(nonce),
		Action:   CreateAction(),
		Value:    amount,
		Gas:      uint256.NewInt(gasLimit),
		GasPrice: gasPrice,
		Data:     data,
	})
}

// copy creates a deep copy of the transaction data and initializes all fields.
func (tx *LegacyTx) copy() TxData {
	return &LegacyTx{
		Nonce:    u256Copy(tx.Nonce),
		GasPrice: u256Copy(tx.GasPrice),
		Gas:      u256Copy(tx.Gas),
		Action:   tx.Action.copy(),
		Value:    u256Copy(tx.Value),
		Data:     common.CopyBytes(tx.Data),
	}
}

// accessors for innerTx.
func (tx *LegacyTx) txType() byte           { return LegacyTxType }
func (tx *LegacyTx) nonce() *uint256.Int    { return tx.Nonce }
func (tx *LegacyTx) gasPrice() *uint256.Int { return tx.GasPrice }
func (tx *LegacyTx) gas() *uint256.Int      { return tx.Gas }
func (tx *LegacyTx) action() Action         { return tx.Action }
func (tx *LegacyTx) value() *uint256.Int    { return tx.Value }
func (tx *LegacyTx) data() []byte           { return tx.Data }
