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
	"fmt"
	"strconv"
)

func newUint64(val uint64) *uint64 { return &val }

var (
	// MainnetChainConfig is the chain parameters of the main network.
	MainnetChainConfig = &ChainConfig{
		ChainID:     newUint64(1),
		EIP155Block: newUint64(2_675_000),
	}

	// SepoliaChainConfig contains the chain parameters of the Sepolia test network.
	SepoliaChainConfig = &ChainConfig{
		ChainID:     newUint64(11155111),
		EIP155Block: newUint64(0),
	}

	// HoleskyChainConfig contains the chain parameters of the Holesky test network.
	HoleskyChainConfig = &ChainConfig{
		ChainID:     newUint64(17000),
		EIP155Block: newUint64(0),
	}

	// DevChainConfig is the chain used by the generated demo chains. Replay
	// protection is active from genesis.
	DevChainConfig = &ChainConfig{
		ChainID:     newUint64(1337),
		EIP155Block: newUint64(0),
	}

	// FrontierChainConfig has no chain id: every signature is unprotected.
	// 无链 ID，签名不带重放保护（v = 27/28）。
	FrontierChainConfig = &ChainConfig{}
)

// NetworkNames are user friendly names to use in the chain spec banner.
var NetworkNames = map[uint64]string{
	1:        "mainnet",
	11155111: "sepolia",
	17000:    "holesky",
	1337:     "dev",
}

// Networks maps the --network flag values to their chain configs.
var Networks = map[string]*ChainConfig{
	"mainnet":  MainnetChainConfig,
	"sepolia":  SepoliaChainConfig,
	"holesky":  HoleskyChainConfig,
	"dev":      DevChainConfig,
	"frontier": FrontierChainConfig,
}

// ChainConfig is the core config which determines how transactions are bound
// to a chain.
type ChainConfig struct {
	ChainID *uint64 `toml:",omitempty"` // nil means the chain has no replay protection

	EIP155Block *uint64 `toml:",omitempty"` // EIP155 HF block, nil = never
}

// Copy returns a deep copy of the config. The presets are shared package
// values, callers that decode into or modify a config must work on a copy.
func (c *ChainConfig) Copy() *ChainConfig {
	cpy := new(ChainConfig)
	if c.ChainID != nil {
		cpy.ChainID = newUint64(*c.ChainID)
	}
	if c.EIP155Block != nil {
		cpy.EIP155Block = newUint64(*c.EIP155Block)
	}
	return cpy
}

// IsEIP155 returns whether num is either equal to the EIP155 fork block or greater.
func (c *ChainConfig) IsEIP155(num uint64) bool {
	return c.ChainID != nil && c.EIP155Block != nil && *c.EIP155Block <= num
}

// SigningChainID returns the chain id transactions included at block num are
// signed with, or nil if they carry no replay protection.
func (c *ChainConfig) SigningChainID(num uint64) *uint64 {
	if !c.IsEIP155(num) {
		return nil
	}
	return newUint64(*c.ChainID)
}

// LatestSigningChainID is SigningChainID for the head of a chain that has
// passed all configured forks.
func (c *ChainConfig) LatestSigningChainID() *uint64 {
	if c.ChainID == nil || c.EIP155Block == nil {
		return nil
	}
	return newUint64(*c.ChainID)
}

// Description returns a human-readable description of ChainConfig.
func (c *ChainConfig) Description() string {
	if c.ChainID == nil {
		return "Chain ID:  none (replay-unprotected)\n"
	}
	network := NetworkNames[*c.ChainID]
	if network == "" {
		network = "unknown"
	}
	banner := fmt.Sprintf("Chain ID:  %v (%s)\n", *c.ChainID, network)
	if c.EIP155Block != nil {
		banner += fmt.Sprintf(" - Spurious Dragon/1 (EIP 155): #%-8v\n", *c.EIP155Block)
	} else {
		banner += " - Spurious Dragon/1 (EIP 155): never\n"
	}
	return banner
}

func (c *ChainConfig) String() string {
	if c.ChainID == nil {
		return "{ChainID: <nil>}"
	}
	eip155 := "<nil>"
	if c.EIP155Block != nil {
		eip155 = strconv.FormatUint(*c.EIP155Block, 10)
	}
	return fmt.Sprintf("{ChainID: %d EIP155: %s}", *c.ChainID, eip155)
}
