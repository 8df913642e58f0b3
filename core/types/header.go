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
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// BloomByteLength represents the number of bytes used in a header log bloom.
const BloomByteLength = 256

// Bloom represents a 2048 bit bloom filter.
type Bloom [BloomByteLength]byte

// Bytes returns the backing byte slice of the bloom.
func (b Bloom) Bytes() []byte { return b[:] }

// MarshalText encodes b as a hex string with 0x prefix.
func (b Bloom) MarshalText() ([]byte, error) {
	return hexutil.Bytes(b[:]).MarshalText()
}

var (
	// EmptyUncleHash is the known hash of an empty uncle list.
	EmptyUncleHash = rlpHash([]*Header(nil))

	// EmptyTxsHash is the known hash of the empty transaction set.
	EmptyTxsHash = common.HexToHash("56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421")
)

// Header represents a block header.
//
// Header is a mutable entity: every setter clears the memoized hash when it
// actually changes a field, and Hash recomputes it lazily. A Header is not
// safe for concurrent mutation.
type Header struct {
	parentHash       common.Hash
	timestamp        uint64
	number           uint64
	author           common.Address
	transactionsRoot common.Hash
	unclesHash       common.Hash
	extraData        []byte
	stateRoot        common.Hash
	receiptsRoot     common.Hash
	logBloom         Bloom
	gasUsed          uint256.Int
	gasLimit         uint256.Int
	difficulty       uint256.Int
	seal             [][]byte     // post-RLP-encoded seal fields
	baseFee          *uint256.Int // EIP-1559, optional

	hash *common.Hash // memoized hash of the header and the seal
}

// NewHeader returns an empty header with empty transaction and uncle roots.
func NewHeader() *Header {
	return &Header{
		transactionsRoot: EmptyTxsHash,
		unclesHash:       EmptyUncleHash,
	}
}

// changeField sets *field to value and drops the cached hash if they differ.
func changeField[T comparable](hash **common.Hash, field *T, value T) {
	if *field != value {
		*field = value
		*hash = nil
	}
}

func changeBytes(hash **common.Hash, field *[]byte, value []byte) {
	if !bytes.Equal(*field, value) {
		*field = common.CopyBytes(value)
		*hash = nil
	}
}

func changeU256(hash **common.Hash, field *uint256.Int, value *uint256.Int) {
	changeField(hash, field, *u256Copy(value))
}

func (h *Header) SetParentHash(a common.Hash)       { changeField(&h.hash, &h.parentHash, a) }
func (h *Header) SetTimestamp(a uint64)             { changeField(&h.hash, &h.timestamp, a) }
func (h *Header) SetNumber(a uint64)                { changeField(&h.hash, &h.number, a) }
func (h *Header) SetAuthor(a common.Address)        { changeField(&h.hash, &h.author, a) }
func (h *Header) SetTransactionsRoot(a common.Hash) { changeField(&h.hash, &h.transactionsRoot, a) }
func (h *Header) SetUnclesHash(a common.Hash)       { changeField(&h.hash, &h.unclesHash, a) }
func (h *Header) SetExtraData(a []byte)             { changeBytes(&h.hash, &h.extraData, a) }
func (h *Header) SetStateRoot(a common.Hash)        { changeField(&h.hash, &h.stateRoot, a) }
func (h *Header) SetReceiptsRoot(a common.Hash)     { changeField(&h.hash, &h.receiptsRoot, a) }
func (h *Header) SetLogBloom(a Bloom)               { changeField(&h.hash, &h.logBloom, a) }
func (h *Header) SetGasUsed(a *uint256.Int)         { changeU256(&h.hash, &h.gasUsed, a) }
func (h *Header) SetGasLimit(a *uint256.Int)        { changeU256(&h.hash, &h.gasLimit, a) }
func (h *Header) SetDifficulty(a *uint256.Int)      { changeU256(&h.hash, &h.difficulty, a) }

// SetSeal replaces the seal fields. Each entry must already be RLP encoded.
func (h *Header) SetSeal(seal [][]byte) {
	if len(seal) == len(h.seal) {
		same := true
		for i := range seal {
			same = same && bytes.Equal(seal[i], h.seal[i])
		}
		if same {
			return
		}
	}
	h.seal = make([][]byte, len(seal))
	for i := range seal {
		h.seal[i] = common.CopyBytes(seal[i])
	}
	h.hash = nil
}

// SetBaseFee sets the EIP-1559 base fee; nil removes it.
func (h *Header) SetBaseFee(a *uint256.Int) {
	switch {
	case a == nil && h.baseFee == nil:
		return
	case a != nil && h.baseFee != nil && a.Eq(h.baseFee):
		return
	case a == nil:
		h.baseFee = nil
	default:
		h.baseFee = new(uint256.Int).Set(a)
	}
	h.hash = nil
}

func (h *Header) ParentHash() common.Hash       { return h.parentHash }
func (h *Header) Timestamp() uint64             { return h.timestamp }
func (h *Header) Number() uint64                { return h.number }
func (h *Header) Author() common.Address        { return h.author }
func (h *Header) TransactionsRoot() common.Hash { return h.transactionsRoot }
func (h *Header) UnclesHash() common.Hash       { return h.unclesHash }
func (h *Header) ExtraData() []byte             { return common.CopyBytes(h.extraData) }
func (h *Header) StateRoot() common.Hash        { return h.stateRoot }
func (h *Header) ReceiptsRoot() common.Hash     { return h.receiptsRoot }
func (h *Header) LogBloom() Bloom               { return h.logBloom }
func (h *Header) GasUsed() *uint256.Int         { return new(uint256.Int).Set(&h.gasUsed) }
func (h *Header) GasLimit() *uint256.Int        { return new(uint256.Int).Set(&h.gasLimit) }
func (h *Header) Difficulty() *uint256.Int      { return new(uint256.Int).Set(&h.difficulty) }

// BaseFee returns the EIP-1559 base fee, or nil if the header has none.
func (h *Header) BaseFee() *uint256.Int {
	if h.baseFee == nil {
		return nil
	}
	return new(uint256.Int).Set(h.baseFee)
}

// Seal returns a copy of the seal fields.
func (h *Header) Seal() [][]byte {
	cpy := make([][]byte, len(h.seal))
	for i := range h.seal {
		cpy[i] = common.CopyBytes(h.seal[i])
	}
	return cpy
}

// Hash returns the keccak256 hash of the header's RLP encoding, seal
// included. The value is memoized until the next field change.
func (h *Header) Hash() common.Hash {
	if h.hash != nil {
		return *h.hash
	}
	hash := rlpHash(h)
	h.hash = &hash
	return hash
}

// Cached reports whether the header currently holds a memoized hash.
func (h *Header) Cached() bool { return h.hash != nil }

// Copy creates a deep copy of the header, cache included.
func (h *Header) Copy() *Header {
	cpy := *h
	cpy.extraData = common.CopyBytes(h.extraData)
	cpy.seal = h.Seal()
	cpy.baseFee = h.BaseFee()
	if h.hash != nil {
		hash := *h.hash
		cpy.hash = &hash
	}
	return &cpy
}

// EncodeRLP implements rlp.Encoder.
func (h *Header) EncodeRLP(w io.Writer) error {
	buf := rlp.NewEncoderBuffer(w)
	l := buf.List()
	buf.WriteBytes(h.parentHash[:])
	buf.WriteBytes(h.unclesHash[:])
	buf.WriteBytes(h.author[:])
	buf.WriteBytes(h.stateRoot[:])
	buf.WriteBytes(h.transactionsRoot[:])
	buf.WriteBytes(h.receiptsRoot[:])
	buf.WriteBytes(h.logBloom[:])
	buf.WriteUint256(&h.difficulty)
	buf.WriteUint64(h.number)
	buf.WriteUint256(&h.gasLimit)
	buf.WriteUint256(&h.gasUsed)
	buf.WriteUint64(h.timestamp)
	buf.WriteBytes(h.extraData)
	for _, field := range h.seal {
		buf.Write(field)
	}
	if h.baseFee != nil {
		buf.WriteUint256(h.baseFee)
	}
	buf.ListEnd(l)
	return buf.Flush()
}

func (h *Header) String() string {
	return fmt.Sprintf("Header(#%d %x parent=%x txs=%x)", h.number, h.Hash(), h.parentHash, h.transactionsRoot)
}
