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

package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSigningChainID(t *testing.T) {
	tests := []struct {
		config *ChainConfig
		num    uint64
		want   *uint64
	}{
		{MainnetChainConfig, 0, nil},
		{MainnetChainConfig, 2_674_999, nil},
		{MainnetChainConfig, 2_675_000, newUint64(1)},
		{SepoliaChainConfig, 0, newUint64(11155111)},
		{DevChainConfig, 10, newUint64(1337)},
		{FrontierChainConfig, 10_000_000, nil},
		{&ChainConfig{ChainID: newUint64(5)}, 10, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.config.SigningChainID(tt.num), "%v at %d", tt.config, tt.num)
	}
	assert.Equal(t, newUint64(1), MainnetChainConfig.LatestSigningChainID())
	assert.Nil(t, FrontierChainConfig.LatestSigningChainID())
}

func TestSigningChainIDIsCopy(t *testing.T) {
	id := DevChainConfig.SigningChainID(0)
	*id = 5
	assert.Equal(t, uint64(1337), *DevChainConfig.ChainID)
}

func TestDescription(t *testing.T) {
	assert.Contains(t, MainnetChainConfig.Description(), "Chain ID:  1 (mainnet)")
	assert.Contains(t, FrontierChainConfig.Description(), "replay-unprotected")
	assert.Contains(t, (&ChainConfig{ChainID: newUint64(99)}).Description(), "unknown")
}

func TestChainConfigCopy(t *testing.T) {
	cpy := MainnetChainConfig.Copy()
	assert.Equal(t, MainnetChainConfig, cpy)
	*cpy.ChainID = 5
	*cpy.EIP155Block = 0
	assert.Equal(t, uint64(1), *MainnetChainConfig.ChainID)
	assert.Equal(t, uint64(2_675_000), *MainnetChainConfig.EIP155Block)

	empty := FrontierChainConfig.Copy()
	assert.Nil(t, empty.ChainID)
	assert.Nil(t, empty.EIP155Block)
}
