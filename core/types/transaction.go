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
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	ErrInvalidSignature   = errors.New("invalid transaction signature")                    // r = s = 0，或 v 与链 ID 不一致
	ErrRecoveryFailed     = errors.New("public key recovery failed")                       // 曲线恢复公钥失败
	ErrTxTypeNotSupported = errors.New("transaction type not supported")                   // 未知的交易信封类型
	ErrMissingSignature   = errors.New("transaction encoding carries no signature fields") // 线上编码只有 6 个字段
	errInvalidAction      = errors.New("invalid action encoding")
)

// Transaction types.
const (
	LegacyTxType = 0x00
)

// TxData is the underlying data of a transaction envelope.
//
// This is implemented by LegacyTx. New envelope variants are added by
// implementing this interface and teaching the canonical encoder about them.
type TxData interface {
	txType() byte // returns the type ID
	copy() TxData // creates a deep copy and initializes all fields

	nonce() *uint256.Int
	gasPrice() *uint256.Int
	gas() *uint256.Int
	action() Action
	value() *uint256.Int
	data() []byte
}

// TypedTransaction is the unsigned transaction envelope: a tagged union over
// the supported TxData variants. It is immutable once constructed.
type TypedTransaction struct {
	inner TxData
}

// NewTx creates a new transaction envelope. The given data is deep-copied.
func NewTx(inner TxData) TypedTransaction {
	return TypedTransaction{inner: inner.copy()}
}

// Type returns the transaction type.
func (tx TypedTransaction) Type() uint8 {
	if tx.inner == nil {
		return LegacyTxType
	}
	return tx.inner.txType()
}

// Nonce returns the sender account nonce of the transaction.
func (tx TypedTransaction) Nonce() *uint256.Int { return u256Copy(tx.inner.nonce()) }

// GasPrice returns the gas price of the transaction.
func (tx TypedTransaction) GasPrice() *uint256.Int { return u256Copy(tx.inner.gasPrice()) }

// Gas returns the gas limit of the transaction.
func (tx TypedTransaction) Gas() *uint256.Int { return u256Copy(tx.inner.gas()) }

// Value returns the amount transferred by the transaction.
func (tx TypedTransaction) Value() *uint256.Int { return u256Copy(tx.inner.value()) }

// Action returns what the transaction does.
func (tx TypedTransaction) Action() Action { return tx.inner.action() }

// To returns the recipient address of the transaction.
// For contract-creation transactions, To returns nil.
func (tx TypedTransaction) To() *common.Address { return tx.inner.action().To() }

// Data returns the input data of the transaction.
func (tx TypedTransaction) Data() []byte { return common.CopyBytes(tx.inner.data()) }

// u256Copy returns a fresh copy of x, treating nil as zero.
func u256Copy(x *uint256.Int) *uint256.Int {
	if x == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(x)
}
