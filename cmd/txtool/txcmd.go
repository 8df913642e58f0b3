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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/sunyihoo/txcore/cmd/utils"
	"github.com/sunyihoo/txcore/core/types"
	"github.com/sunyihoo/txcore/internal/flags"
	"github.com/sunyihoo/txcore/params"
	"github.com/urfave/cli/v2"
)

var (
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the transaction as JSON",
	}

	signCommand = &cli.Command{
		Action: signTx,
		Name:   "sign",
		Usage:  "Sign a legacy transaction",
		Flags:  flags.Merge(utils.ChainFlags, utils.SignerFlags, utils.TxFlags, []cli.Flag{jsonFlag}),
		Description: `
Builds a legacy transaction from the given fields and signs it for the
selected chain. Chains without a chain id produce replay-unprotected
signatures. The hex encoded transaction is printed together with its hash.`,
	}
	verifyCommand = &cli.Command{
		Action:    verifyTx,
		Name:      "verify",
		Usage:     "Verify the signature of an encoded transaction",
		ArgsUsage: "<hex tx>",
		Flags:     utils.ChainFlags,
		Description: `
Decodes the transaction and recovers its sender. If a chain is selected on the
command line, the transaction must also be signed for that chain.`,
	}
	hashCommand = &cli.Command{
		Action:    hashTx,
		Name:      "hash",
		Usage:     "Print the hashes of an encoded transaction",
		ArgsUsage: "<hex tx>",
	}
	decodeCommand = &cli.Command{
		Action:    decodeTx,
		Name:      "decode",
		Usage:     "Print an encoded transaction as JSON",
		ArgsUsage: "<hex tx>",
	}
)

var errChainMismatch = errors.New("transaction signed for a different chain")

func signTx(ctx *cli.Context) error {
	cfg := loadBaseConfig(ctx)
	key := utils.MakeSigningKey(ctx, cfg.Signer.KeyFile)
	tx, err := makeTx(ctx)
	if err != nil {
		return err
	}
	utx, err := types.Sign(tx, key, cfg.Chain.LatestSigningChainID())
	if err != nil {
		return err
	}
	log.Debug("Signed transaction", "hash", utx.Hash(), "chainid", chainString(utx.ChainID()))
	if ctx.Bool(jsonFlag.Name) {
		return printJSON(ctx.App.Writer, utx)
	}
	w := ctx.App.Writer
	fmt.Fprintf(w, "Hash:    %s\n", utx.Hash().Hex())
	fmt.Fprintf(w, "ChainID: %s\n", chainString(utx.ChainID()))
	fmt.Fprintf(w, "Raw:     %s\n", hexutil.Encode(utx.Encode()))
	return nil
}

// makeTx assembles the unsigned transaction from the transaction flags. A
// missing recipient makes a contract creation.
func makeTx(ctx *cli.Context) (types.TypedTransaction, error) {
	data, err := decodeHex(ctx.String(utils.DataFlag.Name))
	if err != nil {
		return types.TypedTransaction{}, fmt.Errorf("invalid --%s: %v", utils.DataFlag.Name, err)
	}
	var (
		nonce    = ctx.Uint64(utils.NonceFlag.Name)
		gas      = ctx.Uint64(utils.GasFlag.Name)
		gasPrice = flags.GlobalUint256(ctx, utils.GasPriceFlag.Name)
		value    = flags.GlobalUint256(ctx, utils.ValueFlag.Name)
	)
	if value == nil {
		value = new(uint256.Int)
	}
	if gasPrice == nil {
		gasPrice = new(uint256.Int)
	}
	if !ctx.IsSet(utils.ToFlag.Name) {
		if !ctx.IsSet(utils.GasFlag.Name) {
			gas = params.TxGasContractCreation
		}
		return types.NewContractCreation(nonce, value, gas, gasPrice, data), nil
	}
	to, err := utils.ParseAddress(ctx.String(utils.ToFlag.Name))
	if err != nil {
		return types.TypedTransaction{}, err
	}
	return types.NewTransaction(nonce, to, value, gas, gasPrice, data), nil
}

func verifyTx(ctx *cli.Context) error {
	utx, err := readTx(ctx)
	if err != nil {
		return err
	}
	stx, err := types.Verify(utx)
	if err != nil {
		return err
	}
	if chainSelected(ctx) {
		cfg := loadBaseConfig(ctx)
		want := cfg.Chain.LatestSigningChainID()
		if chainString(want) != chainString(utx.ChainID()) {
			return fmt.Errorf("%w: have %s, want %s", errChainMismatch, chainString(utx.ChainID()), chainString(want))
		}
	}
	w := ctx.App.Writer
	fmt.Fprintf(w, "Sender:  %s\n", stx.Sender().Hex())
	fmt.Fprintf(w, "Hash:    %s\n", stx.Hash().Hex())
	fmt.Fprintf(w, "ChainID: %s\n", chainString(utx.ChainID()))
	return nil
}

func hashTx(ctx *cli.Context) error {
	utx, err := readTx(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "Hash:          %s\n", utx.Hash().Hex())
	fmt.Fprintf(ctx.App.Writer, "SignatureHash: %s\n", utx.SignatureHash().Hex())
	return nil
}

func decodeTx(ctx *cli.Context) error {
	utx, err := readTx(ctx)
	if err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, utx)
}

func readTx(ctx *cli.Context) (*types.UnverifiedTransaction, error) {
	if ctx.NArg() != 1 {
		return nil, errors.New("need exactly one hex encoded transaction argument")
	}
	raw, err := decodeHex(ctx.Args().First())
	if err != nil {
		return nil, fmt.Errorf("invalid transaction hex: %v", err)
	}
	return types.DecodeUnverified(raw)
}

func chainSelected(ctx *cli.Context) bool {
	for _, f := range utils.ChainFlags {
		if ctx.IsSet(f.Names()[0]) {
			return true
		}
	}
	return false
}

func printJSON(w io.Writer, utx *types.UnverifiedTransaction) error {
	out, err := json.MarshalIndent(utx, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// decodeHex decodes hex input with or without the 0x prefix.
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

func chainString(id *uint64) string {
	if id == nil {
		return "none"
	}
	return strconv.FormatUint(*id, 10)
}
