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
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)


// encode produces the canonical RLP encoding of tx.
//
// Without chain id and signature, this is the 6 item legacy signing preimage.
// With a chain id but no signature the EIP-155 preimage is produced, which
// appends [chainID, 0, 0]. With a signature, the trailing triple is
// [v, r, s] where v has replay protection folded in.
func (tx TypedTransaction) encode(chainID *uint64, sig *SignatureComponents) []byte {
	var buf bytes.Buffer
	w := rlp.NewEncoderBuffer(&buf)
	tx.encodeTo(w, chainID, sig)
	w.Flush()
	return buf.Bytes()
}

func (tx TypedTransaction) encodeTo(w rlp.EncoderBuffer, chainID *uint64, sig *SignatureComponents) {
	switch inner := tx.inner.(type) {
	case *LegacyTx:
		// 列表头显式写出，长度为 6 或 9
		l := w.List()
		writeUint256(w, inner.Nonce)
		writeUint256(w, inner.GasPrice)
		writeUint256(w, inner.Gas)
		inner.Action.encode(w)
		writeUint256(w, inner.Value)
		w.WriteBytes(inner.Data)
		switch {
		case sig != nil:
			w.WriteUint64(ReplayProtection(sig.V, chainID))
			w.WriteUint256(&sig.R)
			w.WriteUint256(&sig.S)
		case chainID != nil:
			w.WriteUint64(*chainID)
			w.WriteUint64(0)
			w.WriteUint64(0)
		}
		w.ListEnd(l)
	default:
		// TxData has unexported methods, so only package variants get here.
		panic(fmt.Sprintf("%v: %T", ErrTxTypeNotSupported, tx.inner))
	}
}

func writeUint256(w rlp.EncoderBuffer, x *uint256.Int) {
	if x == nil {
		w.WriteUint64(0)
		return
	}
	w.WriteUint256(x)
}

// SignatureHash returns the digest that is signed by the sender: the
// Keccak256 hash of the encoding without signature, with the EIP-155 chain id
// placeholders if chainID is given. It does not uniquely identify the
// transaction.
func (tx TypedTransaction) SignatureHash(chainID *uint64) common.Hash {
	return keccak(tx.encode(chainID, nil))
}

// EncodeRLP implements rlp.Encoder.
func (utx *UnverifiedTransaction) EncodeRLP(w io.Writer) error {
	buf := rlp.NewEncoderBuffer(w)
	utx.unsigned.encodeTo(buf, utx.chainID, &utx.signature)
	return buf.Flush()
}

// DecodeRLP implements rlp.Decoder. Only the signed 9 item shape is accepted.
// The combined v value is split into recovery id and chain id, and the content
// hash is memoized.
func (utx *UnverifiedTransaction) DecodeRLP(s *rlp.Stream) error {
	if _, err := s.List(); err != nil {
		return err
	}
	var (
		inner LegacyTx
		err   error
	)
	if inner.Nonce, err = readUint256(s); err != nil {
		return fmt.Errorf("nonce: %w", err)
	}
	if inner.GasPrice, err = readUint256(s); err != nil {
		return fmt.Errorf("gasPrice: %w", err)
	}
	if inner.Gas, err = readUint256(s); err != nil {
		return fmt.Errorf("gas: %w", err)
	}
	if inner.Action, err = decodeAction(s); err != nil {
		return fmt.Errorf("action: %w", err)
	}
	if inner.Value, err = readUint256(s); err != nil {
		return fmt.Errorf("value: %w", err)
	}
	if inner.Data, err = s.Bytes(); err != nil {
		return fmt.Errorf("data: %w", err)
	}

	combined, err := s.Uint64()
	if errors.Is(err, rlp.EOL) {
		return ErrMissingSignature
	} else if err != nil {
		return fmt.Errorf("v: %w", err)
	}
	var sig SignatureComponents
	if err := s.ReadUint256(&sig.R); err != nil {
		return fmt.Errorf("r: %w", err)
	}
	if err := s.ReadUint256(&sig.S); err != nil {
		return fmt.Errorf("s: %w", err)
	}
	if err := s.ListEnd(); err != nil {
		return err
	}
	v, chainID, err := DeriveReplayProtection(combined)
	if err != nil {
		return err
	}
	sig.V = v

	*utx = UnverifiedTransaction{
		unsigned:  TypedTransaction{inner: &inner},
		signature: sig,
		chainID:   chainID,
	}
	utx.hash = utx.ComputeHash()
	return nil
}

func readUint256(s *rlp.Stream) (*uint256.Int, error) {
	x := new(uint256.Int)
	if err := s.ReadUint256(x); err != nil {
		return nil, err
	}
	return x, nil
}

// DecodeUnverified decodes the canonical wire form of a signed transaction.
func DecodeUnverified(b []byte) (*UnverifiedTransaction, error) {
	utx := new(UnverifiedTransaction)
	if err := rlp.DecodeBytes(b, utx); err != nil {
		return nil, err
	}
	return utx, nil
}
