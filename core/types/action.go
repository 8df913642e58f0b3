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
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// Action is what a transaction does: create a contract or call an address.
// The zero value is Create.
type Action struct {
	to *common.Address // nil means contract creation
}

// CreateAction returns the contract creation action.
func CreateAction() Action { return Action{} }

// CallAction returns a message call to the given address.
func CallAction(to common.Address) Action { return Action{to: &to} }

// IsCreate reports whether the action creates a contract.
func (a Action) IsCreate() bool { return a.to == nil }

// To returns a copy of the call target, or nil for contract creation.
func (a Action) To() *common.Address {
	if a.to == nil {
		return nil
	}
	cpy := *a.to
	return &cpy
}

func (a Action) String() string {
	if a.to == nil {
		return "create"
	}
	return "call(" + a.to.Hex() + ")"
}

func (a Action) copy() Action { return Action{to: a.To()} }

// encode writes the action as an RLP string: empty for Create, the 20 address
// bytes for Call.
func (a Action) encode(w rlp.EncoderBuffer) {
	if a.to == nil {
		w.WriteBytes(nil)
		return
	}
	w.WriteBytes(a.to[:])
}

// decodeAction reads an action. Lists are rejected, like any non-data item.
func decodeAction(s *rlp.Stream) (Action, error) {
	b, err := s.Bytes()
	if err != nil {
		return Action{}, err
	}
	switch len(b) {
	case 0:
		return CreateAction(), nil
	case common.AddressLength:
		return CallAction(common.BytesToAddress(b)), nil
	default:
		return Action{}, fmt.Errorf("%w: %d bytes", errInvalidAction, len(b))
	}
}
