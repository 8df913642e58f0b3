// Copyright 2025 The txcore Authors
// This file is part of txcore.
//
// txcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// txcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with txcore. If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/sunyihoo/txcore/crypto"
	"github.com/sunyihoo/txcore/internal/flags"
	"github.com/sunyihoo/txcore/params"
	"github.com/urfave/cli/v2"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	// Chain selection
	MainnetFlag = &cli.BoolFlag{
		Name:     "mainnet",
		Usage:    "Ethereum mainnet",
		Category: flags.ChainCategory,
	}
	SepoliaFlag = &cli.BoolFlag{
		Name:     "sepolia",
		Usage:    "Sepolia network: pre-configured proof-of-stake test network",
		Category: flags.ChainCategory,
	}
	HoleskyFlag = &cli.BoolFlag{
		Name:     "holesky",
		Usage:    "Holesky network: pre-configured proof-of-stake test network",
		Category: flags.ChainCategory,
	}
	DeveloperFlag = &cli.BoolFlag{
		Name:     "dev",
		Usage:    "Local developer chain (chain id 1337, replay protected from genesis)",
		Category: flags.ChainCategory,
	}
	FrontierFlag = &cli.BoolFlag{
		Name:     "frontier",
		Usage:    "Chain without a chain id: signatures carry no replay protection",
		Category: flags.ChainCategory,
	}
	ChainIDFlag = &cli.Uint64Flag{
		Name:     "chainid",
		Usage:    "Explicitly set the chain id transactions are signed for (overrides the network preset)",
		Category: flags.ChainCategory,
	}

	// Signer settings
	KeyFileFlag = &flags.PathFlag{
		Name:     "keyfile",
		Usage:    "File holding the hex encoded secp256k1 private key",
		Category: flags.SignerCategory,
	}
	KeyHexFlag = &cli.StringFlag{
		Name:     "key",
		Usage:    "Hex encoded private key (development only, prefer --keyfile)",
		Category: flags.SignerCategory,
	}

	// Transaction fields
	NonceFlag = &cli.Uint64Flag{
		Name:     "nonce",
		Usage:    "Sender account nonce",
		Category: flags.TxCategory,
	}
	GasFlag = &cli.Uint64Flag{
		Name:     "gas",
		Usage:    "Gas limit of the transaction",
		Value:    params.TxGas,
		Category: flags.TxCategory,
	}
	GasPriceFlag = &flags.Uint256Flag{
		Name:     "gasprice",
		Usage:    "Gas price in wei (decimal or 0x hex)",
		Value:    uint256.NewInt(params.GWei),
		Category: flags.TxCategory,
	}
	ValueFlag = &flags.Uint256Flag{
		Name:     "value",
		Usage:    "Amount of wei transferred (decimal or 0x hex)",
		Category: flags.TxCategory,
	}
	ToFlag = &cli.StringFlag{
		Name:     "to",
		Usage:    "Recipient address, omit to create a contract",
		Category: flags.TxCategory,
	}
	DataFlag = &cli.StringFlag{
		Name:     "data",
		Usage:    "Hex encoded call data or init code",
		Category: flags.TxCategory,
	}
)

var (
	// NetworkFlags is the flag group of all built-in supported networks.
	NetworkFlags = []cli.Flag{
		MainnetFlag,
		SepoliaFlag,
		HoleskyFlag,
		DeveloperFlag,
		FrontierFlag,
	}

	// ChainFlags selects the chain signatures are bound to.
	ChainFlags = append([]cli.Flag{ChainIDFlag}, NetworkFlags...)

	// SignerFlags selects the signing key.
	SignerFlags = []cli.Flag{
		KeyFileFlag,
		KeyHexFlag,
	}

	// TxFlags describe the fields of a legacy transaction.
	TxFlags = []cli.Flag{
		NonceFlag,
		GasFlag,
		GasPriceFlag,
		ValueFlag,
		ToFlag,
		DataFlag,
	}
)

// SetChainConfig applies the chain related command line flags to cfg. A
// network preset replaces the whole config, --chainid then overrides the id.
func SetChainConfig(ctx *cli.Context, cfg *params.ChainConfig) {
	if err := flags.CheckExclusive(ctx, MainnetFlag, SepoliaFlag, HoleskyFlag, DeveloperFlag, FrontierFlag); err != nil {
		Fatalf("%v", err)
	}
	switch {
	case ctx.Bool(MainnetFlag.Name):
		*cfg = *params.MainnetChainConfig.Copy()
	case ctx.Bool(SepoliaFlag.Name):
		*cfg = *params.SepoliaChainConfig.Copy()
	case ctx.Bool(HoleskyFlag.Name):
		*cfg = *params.HoleskyChainConfig.Copy()
	case ctx.Bool(DeveloperFlag.Name):
		*cfg = *params.DevChainConfig.Copy()
	case ctx.Bool(FrontierFlag.Name):
		*cfg = *params.FrontierChainConfig.Copy()
	}
	if ctx.IsSet(ChainIDFlag.Name) {
		id := ctx.Uint64(ChainIDFlag.Name)
		cfg.ChainID = &id
		if cfg.EIP155Block == nil {
			zero := uint64(0)
			cfg.EIP155Block = &zero
		}
	}
	log.Debug("Selected chain", "config", cfg)
}

// MakeSigningKey loads the private key selected by --keyfile or --key.
// fallback is used when neither flag is set; an empty fallback is fatal.
func MakeSigningKey(ctx *cli.Context, fallback string) *crypto.PrivateKey {
	if err := flags.CheckExclusive(ctx, KeyFileFlag, KeyHexFlag); err != nil {
		Fatalf("%v", err)
	}
	var (
		key *crypto.PrivateKey
		err error
	)
	switch {
	case ctx.IsSet(KeyHexFlag.Name):
		key, err = crypto.HexToKey(ctx.String(KeyHexFlag.Name))
	case ctx.IsSet(KeyFileFlag.Name):
		key, err = crypto.LoadKey(ctx.String(KeyFileFlag.Name))
	case fallback != "":
		key, err = crypto.LoadKey(fallback)
	default:
		Fatalf("No signing key given, use --%s or --%s", KeyFileFlag.Name, KeyHexFlag.Name)
	}
	if err != nil {
		Fatalf("Failed to load signing key: %v", err)
	}
	return key
}

// ParseAddress parses a hex encoded address, rejecting malformed input.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}
