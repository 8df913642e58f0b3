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
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

var (
	errTxHashMismatch  = errors.New("transaction hash does not match contents")
	errChainIDMismatch = errors.New("'chainId' does not match the chain id folded into 'v'")
)

// txJSON is the JSON representation of transactions.
type txJSON struct {
	Type hexutil.Uint64 `json:"type"`

	ChainID  *hexutil.Uint64 `json:"chainId,omitempty"` // 仅在受 EIP-155 保护时出现
	Nonce    *hexutil.U256   `json:"nonce"`
	To       *common.Address `json:"to"`
	Gas      *hexutil.U256   `json:"gas"`
	GasPrice *hexutil.U256   `json:"gasPrice"`
	Value    *hexutil.U256   `json:"value"`
	Input    *hexutil.Bytes  `json:"input"`
	V        *hexutil.Uint64 `json:"v"`
	R        *hexutil.U256   `json:"r"`
	S        *hexutil.U256   `json:"s"`

	// Only used for encoding:
	Hash common.Hash `json:"hash"`
}

// MarshalJSON marshals as JSON with a hash.
func (utx *UnverifiedTransaction) MarshalJSON() ([]byte, error) {
	var enc txJSON
	enc.Hash = utx.Hash()
	enc.Type = hexutil.Uint64(utx.unsigned.Type())

	switch itx := utx.unsigned.inner.(type) {
	case *LegacyTx:
		enc.Nonce = (*hexutil.U256)(u256Copy(itx.Nonce))
		enc.To = itx.Action.To()
		enc.Gas = (*hexutil.U256)(u256Copy(itx.Gas))
		enc.GasPrice = (*hexutil.U256)(u256Copy(itx.GasPrice))
		enc.Value = (*hexutil.U256)(u256Copy(itx.Value))
		input := hexutil.Bytes(common.CopyBytes(itx.Data))
		enc.Input = &input

		v, r, s := utx.RawSignatureValues()
		enc.V = (*hexutil.Uint64)(&v)
		enc.R = (*hexutil.U256)(r)
		enc.S = (*hexutil.U256)(s)
		if utx.Protected() {
			id := hexutil.Uint64(*utx.chainID)
			enc.ChainID = &id
		}
	default:
		return nil, ErrTxTypeNotSupported
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON unmarshals from JSON. If a non-zero hash is present it must
// match the decoded contents.
func (utx *UnverifiedTransaction) UnmarshalJSON(input []byte) error {
	var dec txJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}

	switch dec.Type {
	case LegacyTxType:
		var itx LegacyTx
		if dec.Nonce == nil {
			return errors.New("missing required field 'nonce' in transaction")
		}
		itx.Nonce = (*uint256.Int)(dec.Nonce)
		if dec.To != nil {
			itx.Action = CallAction(*dec.To)
		}
		if dec.Gas == nil {
			return errors.New("missing required field 'gas' in transaction")
		}
		itx.Gas = (*uint256.Int)(dec.Gas)
		if dec.GasPrice == nil {
			return errors.New("missing required field 'gasPrice' in transaction")
		}
		itx.GasPrice = (*uint256.Int)(dec.GasPrice)
		if dec.Value == nil {
			return errors.New("missing required field 'value' in transaction")
		}
		itx.Value = (*uint256.Int)(dec.Value)
		if dec.Input == nil {
			return errors.New("missing required field 'input' in transaction")
		}
		itx.Data = *dec.Input

		if dec.V == nil {
			return errors.New("missing required field 'v' in transaction")
		}
		if dec.R == nil {
			return errors.New("missing required field 'r' in transaction")
		}
		if dec.S == nil {
			return errors.New("missing required field 's' in transaction")
		}
		v, chainID, err := DeriveReplayProtection(uint64(*dec.V))
		if err != nil {
			return err
		}
		if dec.ChainID != nil && (chainID == nil || *chainID != uint64(*dec.ChainID)) {
			return errChainIDMismatch
		}
		sig := SignatureComponents{V: v}
		sig.R.Set((*uint256.Int)(dec.R))
		sig.S.Set((*uint256.Int)(dec.S))

		decoded := newUnverified(TypedTransaction{inner: &itx}, sig, chainID)
		if dec.Hash != (common.Hash{}) && dec.Hash != decoded.hash {
			return fmt.Errorf("%w: have %x, computed %x", errTxHashMismatch, dec.Hash, decoded.hash)
		}
		*utx = *decoded
	default:
		return ErrTxTypeNotSupported
	}
	return nil
}
