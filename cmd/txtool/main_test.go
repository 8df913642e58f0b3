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
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/txcore/core/types"
	"github.com/sunyihoo/txcore/crypto"
	"github.com/sunyihoo/txcore/params"
)

const testKeyHex = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

var testAddr = func() string {
	key, err := crypto.HexToKey(testKeyHex)
	if err != nil {
		panic(err)
	}
	return crypto.PubkeyToAddress(key.PubKey()).Hex()
}()

// runTxtool runs the app with the given arguments and returns what the
// command wrote to its output.
func runTxtool(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"txtool"}, args...))
	return out.String(), err
}

// field returns the value printed after "name:" in out.
func field(t *testing.T, out, name string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, name+":"); ok {
			return strings.TrimSpace(rest)
		}
	}
	t.Fatalf("no %q in output:\n%s", name, out)
	return ""
}

func TestSignAndVerify(t *testing.T) {
	out, err := runTxtool(t, "sign", "--dev", "--key", testKeyHex,
		"--nonce", "3", "--to", "0x3535353535353535353535353535353535353535", "--value", "1000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "1337", field(t, out, "ChainID"))
	raw := field(t, out, "Raw")
	hash := field(t, out, "Hash")

	out, err = runTxtool(t, "verify", "--dev", raw)
	require.NoError(t, err)
	assert.Equal(t, testAddr, field(t, out, "Sender"))
	assert.Equal(t, hash, field(t, out, "Hash"))

	// Without a chain on the command line any valid signature passes.
	_, err = runTxtool(t, "verify", raw)
	require.NoError(t, err)

	_, err = runTxtool(t, "verify", "--mainnet", raw)
	assert.ErrorIs(t, err, errChainMismatch)

	_, err = runTxtool(t, "verify", "--chainid", "1338", raw)
	assert.ErrorIs(t, err, errChainMismatch)
}

func TestSignUnprotected(t *testing.T) {
	out, err := runTxtool(t, "sign", "--frontier", "--key", testKeyHex, "--to", "0x3535353535353535353535353535353535353535")
	require.NoError(t, err)
	assert.Equal(t, "none", field(t, out, "ChainID"))

	raw, err := hexutil.Decode(field(t, out, "Raw"))
	require.NoError(t, err)
	utx, err := types.DecodeUnverified(raw)
	require.NoError(t, err)
	v, _, _ := utx.RawSignatureValues()
	assert.Contains(t, []uint64{27, 28}, v)
}

func TestSignContractCreation(t *testing.T) {
	out, err := runTxtool(t, "sign", "--chainid", "5", "--key", testKeyHex, "--data", "6000", "--json")
	require.NoError(t, err)

	var utx types.UnverifiedTransaction
	require.NoError(t, json.Unmarshal([]byte(out), &utx))
	assert.Nil(t, utx.Unsigned().To())
	assert.Equal(t, []byte{0x60, 0x00}, utx.Unsigned().Data())
	assert.Equal(t, uint64(53000), utx.Unsigned().Gas().Uint64())
	require.NotNil(t, utx.ChainID())
	assert.Equal(t, uint64(5), *utx.ChainID())
}

func TestHashAndDecode(t *testing.T) {
	out, err := runTxtool(t, "sign", "--dev", "--key", testKeyHex, "--to", "0x3535353535353535353535353535353535353535", "--nonce", "9")
	require.NoError(t, err)
	raw, hash := field(t, out, "Raw"), field(t, out, "Hash")

	out, err = runTxtool(t, "hash", strings.TrimPrefix(raw, "0x"))
	require.NoError(t, err)
	assert.Equal(t, hash, field(t, out, "Hash"))
	assert.NotEqual(t, hash, field(t, out, "SignatureHash"))

	out, err = runTxtool(t, "decode", raw)
	require.NoError(t, err)
	var utx types.UnverifiedTransaction
	require.NoError(t, json.Unmarshal([]byte(out), &utx))
	assert.Equal(t, hash, utx.Hash().Hex())
	assert.Equal(t, uint64(9), utx.Unsigned().Nonce().Uint64())

	_, err = runTxtool(t, "decode", "0xzz")
	assert.Error(t, err)
	_, err = runTxtool(t, "decode")
	assert.Error(t, err)
}

func TestKeygen(t *testing.T) {
	file := filepath.Join(t.TempDir(), "key")
	out, err := runTxtool(t, "keygen", file)
	require.NoError(t, err)
	addr := field(t, out, "Address")

	out, err = runTxtool(t, "address", "--keyfile", file)
	require.NoError(t, err)
	assert.Equal(t, addr, field(t, out, "Address"))

	_, err = runTxtool(t, "keygen", file)
	assert.Error(t, err, "existing key file must not be overwritten")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	keyfile := filepath.Join(dir, "key")
	key, err := crypto.HexToKey(testKeyHex)
	require.NoError(t, err)
	require.NoError(t, crypto.SaveKey(keyfile, key))

	config := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(config, []byte(`
[Chain]
ChainID = 5
EIP155Block = 0

[Signer]
KeyFile = "`+keyfile+`"

[Log]
Verbosity = 2
`), 0644))

	out, err := runTxtool(t, "--config", config, "sign", "--to", "0x3535353535353535353535353535353535353535")
	require.NoError(t, err)
	assert.Equal(t, "5", field(t, out, "ChainID"))

	// Flags override the file.
	out, err = runTxtool(t, "--config", config, "sign", "--dev", "--to", "0x3535353535353535353535353535353535353535")
	require.NoError(t, err)
	assert.Equal(t, "1337", field(t, out, "ChainID"))

	out, err = runTxtool(t, "--config", config, "address")
	require.NoError(t, err)
	assert.Equal(t, testAddr, field(t, out, "Address"))

	// Loading the file must leave the network presets untouched.
	assert.Equal(t, uint64(1), *params.MainnetChainConfig.ChainID)
	assert.Equal(t, uint64(2_675_000), *params.MainnetChainConfig.EIP155Block)
	out, err = runTxtool(t, "--config", config, "sign", "--mainnet", "--to", "0x3535353535353535353535353535353535353535")
	require.NoError(t, err)
	assert.Equal(t, "1", field(t, out, "ChainID"))
}

func TestLoadConfigKeepsPresets(t *testing.T) {
	file := filepath.Join(t.TempDir(), "chain.toml")
	require.NoError(t, os.WriteFile(file, []byte("[Chain]\nChainID = 5\nEIP155Block = 0\n"), 0644))

	cfg := defaultConfig()
	require.NoError(t, loadConfig(file, &cfg))
	assert.Equal(t, uint64(5), *cfg.Chain.ChainID)
	assert.Equal(t, uint64(1), *params.MainnetChainConfig.ChainID)
	assert.Equal(t, uint64(2_675_000), *params.MainnetChainConfig.EIP155Block)
}

func TestLoadConfigErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(file, []byte("[Chain]\nNetworkID = 1\n"), 0644))

	cfg := defaultConfig()
	err := loadConfig(file, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NetworkID")

	assert.Error(t, loadConfig(filepath.Join(t.TempDir(), "missing.toml"), &cfg))
}

func TestDumpConfig(t *testing.T) {
	out, err := runTxtool(t, "dumpconfig", "--dev")
	require.NoError(t, err)
	assert.Contains(t, out, "[Chain]")
	assert.Contains(t, out, "ChainID = 1337")

	// The dump loads back into the same config.
	file := filepath.Join(t.TempDir(), "dump.toml")
	require.NoError(t, os.WriteFile(file, []byte(out), 0644))
	cfg := defaultConfig()
	require.NoError(t, loadConfig(file, &cfg))
	require.NotNil(t, cfg.Chain.ChainID)
	assert.Equal(t, uint64(1337), *cfg.Chain.ChainID)
}

func TestChainCommand(t *testing.T) {
	out, err := runTxtool(t, "chain", "--dev", "--key", testKeyHex, "--blocks", "2", "--txs", "3")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(field(t, out, "Head"), "#2 "), out)
	assert.Equal(t, 6, strings.Count(out, "from="+testAddr+" chainid=1337"))

	// Mainnet activates replay protection long after genesis.
	out, err = runTxtool(t, "chain", "--mainnet", "--blocks", "1", "--txs", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "chainid=none"))
}
