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

package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/sunyihoo/txcore/cmd/utils"
	"github.com/sunyihoo/txcore/crypto"
	"github.com/urfave/cli/v2"
)

var (
	keygenCommand = &cli.Command{
		Action:    keygen,
		Name:      "keygen",
		Usage:     "Generate a new private key",
		ArgsUsage: "<keyfile>",
		Description: `
Generates a random secp256k1 private key and stores it hex encoded in the
given file. An existing file is never overwritten.`,
	}
	addressCommand = &cli.Command{
		Action: printAddress,
		Name:   "address",
		Usage:  "Print the address of a private key",
		Flags:  utils.SignerFlags,
	}
)

func keygen(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("need exactly one key file argument")
	}
	file := ctx.Args().First()
	if _, err := os.Stat(file); err == nil {
		return fmt.Errorf("key file %s already exists", file)
	}
	key, err := crypto.GenerateKey()
	if err != nil {
		return fmt.Errorf("failed to generate key: %v", err)
	}
	if err := crypto.SaveKey(file, key); err != nil {
		return fmt.Errorf("failed to save key: %v", err)
	}
	addr := crypto.PubkeyToAddress(key.PubKey())
	log.Info("Generated private key", "file", file, "address", addr)
	fmt.Fprintf(ctx.App.Writer, "Address: %s\n", addr.Hex())
	return nil
}

func printAddress(ctx *cli.Context) error {
	cfg := loadBaseConfig(ctx)
	key := utils.MakeSigningKey(ctx, cfg.Signer.KeyFile)
	fmt.Fprintf(ctx.App.Writer, "Address: %s\n", crypto.PubkeyToAddress(key.PubKey()).Hex())
	return nil
}
