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

	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/sunyihoo/txcore/cmd/utils"
	"github.com/sunyihoo/txcore/core"
	"github.com/sunyihoo/txcore/core/types"
	"github.com/sunyihoo/txcore/crypto"
	"github.com/sunyihoo/txcore/internal/flags"
	"github.com/sunyihoo/txcore/params"
	"github.com/urfave/cli/v2"
)

var (
	blocksFlag = &cli.IntFlag{
		Name:  "blocks",
		Usage: "Number of blocks to generate on top of genesis",
		Value: 3,
	}
	txsFlag = &cli.IntFlag{
		Name:  "txs",
		Usage: "Number of transactions per block",
		Value: 2,
	}

	chainCommand = &cli.Command{
		Action: makeChain,
		Name:   "chain",
		Usage:  "Generate, verify and import a chain of signed transactions",
		Flags:  flags.Merge(utils.ChainFlags, utils.SignerFlags, []cli.Flag{blocksFlag, txsFlag}),
		Description: `
Builds a chain of blocks filled with self transfers signed by the given key
(a throwaway key when none is given). Every block is appended to an in-memory
chain, which verifies all signatures, and a summary is printed per block.
Transactions are signed with the chain id active at their block number.`,
	}
)

func makeChain(ctx *cli.Context) error {
	cfg := loadBaseConfig(ctx)

	var key *crypto.PrivateKey
	if ctx.IsSet(utils.KeyFileFlag.Name) || ctx.IsSet(utils.KeyHexFlag.Name) || cfg.Signer.KeyFile != "" {
		key = utils.MakeSigningKey(ctx, cfg.Signer.KeyFile)
	} else {
		k, err := crypto.GenerateKey()
		if err != nil {
			return err
		}
		key = k
		log.Warn("No signing key given, using a throwaway key")
	}
	var (
		from    = crypto.PubkeyToAddress(key.PubKey())
		nblocks = ctx.Int(blocksFlag.Name)
		ntxs    = ctx.Int(txsFlag.Name)
	)
	if nblocks < 0 || ntxs < 0 {
		return fmt.Errorf("--%s and --%s must not be negative", blocksFlag.Name, txsFlag.Name)
	}

	genesis := core.Genesis()
	bc, err := core.NewBlockChain(genesis.Last())
	if err != nil {
		return err
	}

	var (
		nonce   uint64
		signErr error
	)
	blocks := genesis.AddBlocksWith(nblocks, func(i int) core.BlockOptions {
		chainID := cfg.Chain.SigningChainID(uint64(i + 1))
		txs := make([]*types.UnverifiedTransaction, 0, ntxs)
		for j := 0; j < ntxs; j++ {
			tx := types.NewTransaction(nonce, from, uint256.NewInt(1), params.TxGas, uint256.NewInt(params.GWei), nil)
			utx, err := types.Sign(tx, key, chainID)
			if err != nil && signErr == nil {
				signErr = err
			}
			if err == nil {
				txs = append(txs, utx)
			}
			nonce++
		}
		return core.BlockOptions{Author: from, Transactions: txs}
	})
	if signErr != nil {
		return signErr
	}

	w := ctx.App.Writer
	fmt.Fprint(w, cfg.Chain.Description())
	fmt.Fprintf(w, "Genesis: %s\n", bc.Genesis().Hash().Hex())
	for _, block := range blocks.Blocks() {
		if err := bc.Append(ctx.Context, block); err != nil {
			return err
		}
		fmt.Fprintf(w, "Block #%d %s txs=%d\n", block.Number(), block.Hash().Hex(), len(block.Transactions()))
		senders := bc.Senders(block.Hash())
		for i, tx := range block.Transactions() {
			fmt.Fprintf(w, "  %s from=%s chainid=%s\n", tx.Hash().Hex(), senders[i].Hex(), chainString(tx.ChainID()))
		}
	}
	head := bc.CurrentBlock()
	fmt.Fprintf(w, "Head: #%d %s\n", head.Number(), head.Hash().Hex())
	log.Info("Imported chain", "blocks", nblocks, "txs", nblocks*ntxs, "head", head.Hash(), "signer", from)
	return nil
}
