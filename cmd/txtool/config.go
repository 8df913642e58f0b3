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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"unicode"

	"github.com/naoina/toml"
	"github.com/sunyihoo/txcore/cmd/utils"
	"github.com/sunyihoo/txcore/internal/flags"
	"github.com/sunyihoo/txcore/params"
	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.MiscCategory,
	}

	dumpConfigCommand = &cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Export configuration values in a TOML format",
		ArgsUsage:   "<dumpfile (optional)>",
		Flags:       flags.Merge(utils.ChainFlags, []cli.Flag{utils.KeyFileFlag}),
		Description: `Export configuration values in TOML format (to stdout by default).`,
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

type signerConfig struct {
	KeyFile string `toml:",omitempty"`
}

type logConfig struct {
	Verbosity *int `toml:",omitempty"`
}

type txtoolConfig struct {
	Chain  params.ChainConfig
	Signer signerConfig
	Log    logConfig
}

func defaultConfig() txtoolConfig {
	return txtoolConfig{Chain: *params.MainnetChainConfig.Copy()}
}

func loadConfig(file string, cfg *txtoolConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// loadBaseConfig loads the txtoolConfig based on the given command line
// parameters and config file.
func loadBaseConfig(ctx *cli.Context) txtoolConfig {
	// Load defaults
	cfg := defaultConfig()

	// Load config file.
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			utils.Fatalf("%v", err)
		}
	}

	// Apply flags.
	utils.SetChainConfig(ctx, &cfg.Chain)
	if ctx.IsSet(utils.KeyFileFlag.Name) {
		cfg.Signer.KeyFile = ctx.String(utils.KeyFileFlag.Name)
	}
	return cfg
}

// applyLogConfig carries the log verbosity of the config file over to the
// --verbosity flag, unless the flag was given explicitly.
func applyLogConfig(ctx *cli.Context) error {
	file := ctx.String(configFileFlag.Name)
	if file == "" || ctx.IsSet("verbosity") {
		return nil
	}
	cfg := defaultConfig()
	if err := loadConfig(file, &cfg); err != nil {
		return err
	}
	if cfg.Log.Verbosity == nil {
		return nil
	}
	return ctx.Set("verbosity", strconv.Itoa(*cfg.Log.Verbosity))
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg := loadBaseConfig(ctx)
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	var dump io.Writer = ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	dump.Write(out)
	return nil
}
