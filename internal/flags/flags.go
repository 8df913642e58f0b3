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

package flags

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"
)

// PathString is custom type which is registered in the flags library which cli
// uses for argument parsing. This allows us to expand Value to an absolute path
// when the argument is parsed.
// 解析参数时将值展开为绝对路径。
type PathString string

func (s *PathString) String() string {
	return string(*s)
}

func (s *PathString) Set(value string) error {
	*s = PathString(expandPath(value))
	return nil
}

var (
	_ cli.Flag              = (*PathFlag)(nil)
	_ cli.RequiredFlag      = (*PathFlag)(nil)
	_ cli.VisibleFlag       = (*PathFlag)(nil)
	_ cli.DocGenerationFlag = (*PathFlag)(nil)
	_ cli.CategorizableFlag = (*PathFlag)(nil)
)

// PathFlag is custom cli.Flag type which expand the received string to an
// absolute path, e.g. ~/.txcore/key -> /home/username/.txcore/key
type PathFlag struct {
	Name string

	Category    string
	DefaultText string
	Usage       string

	Required   bool
	Hidden     bool
	HasBeenSet bool

	Value PathString

	Aliases []string
	EnvVars []string
}

// For cli.Flag:

func (f *PathFlag) Names() []string { return append([]string{f.Name}, f.Aliases...) }
func (f *PathFlag) IsSet() bool     { return f.HasBeenSet }
func (f *PathFlag) String() string  { return cli.FlagStringer(f) }

// Apply called by cli library, grabs variable from environment (if in env)
// and adds variable to flag set for parsing.
func (f *PathFlag) Apply(set *flag.FlagSet) error {
	for _, envVar := range f.EnvVars {
		envVar = strings.TrimSpace(envVar)
		if value, found := syscall.Getenv(envVar); found {
			f.Value.Set(value)
			f.HasBeenSet = true
			break
		}
	}
	eachName(f, func(name string) {
		set.Var(&f.Value, name, f.Usage)
	})
	return nil
}

// For cli.RequiredFlag:

func (f *PathFlag) IsRequired() bool { return f.Required }

// For cli.VisibleFlag:

func (f *PathFlag) IsVisible() bool { return !f.Hidden }

// For cli.CategorizableFlag:

func (f *PathFlag) GetCategory() string { return f.Category }

// For cli.DocGenerationFlag:

func (f *PathFlag) TakesValue() bool     { return true }
func (f *PathFlag) GetUsage() string     { return f.Usage }
func (f *PathFlag) GetValue() string     { return f.Value.String() }
func (f *PathFlag) GetEnvVars() []string { return f.EnvVars }
func (f *PathFlag) GetDefaultText() string {
	if f.DefaultText != "" {
		return f.DefaultText
	}
	return f.GetValue()
}

var (
	_ cli.Flag              = (*Uint256Flag)(nil)
	_ cli.RequiredFlag      = (*Uint256Flag)(nil)
	_ cli.VisibleFlag       = (*Uint256Flag)(nil)
	_ cli.DocGenerationFlag = (*Uint256Flag)(nil)
	_ cli.CategorizableFlag = (*Uint256Flag)(nil)
)

// Uint256Flag is a command line flag that accepts 256 bit unsigned integers in
// decimal or 0x-prefixed hexadecimal syntax.
// 接受十进制或 0x 前缀十六进制的 256 位无符号整数。
type Uint256Flag struct {
	Name string

	Category    string
	DefaultText string
	Usage       string

	Required   bool
	Hidden     bool
	HasBeenSet bool

	Value        *uint256.Int
	defaultValue *uint256.Int

	Aliases []string
	EnvVars []string
}

// For cli.Flag:

func (f *Uint256Flag) Names() []string { return append([]string{f.Name}, f.Aliases...) }
func (f *Uint256Flag) IsSet() bool     { return f.HasBeenSet }
func (f *Uint256Flag) String() string  { return cli.FlagStringer(f) }

func (f *Uint256Flag) Apply(set *flag.FlagSet) error {
	// Set default value so that environment wont be able to overwrite it
	if f.defaultValue == nil {
		f.defaultValue = new(uint256.Int)
		if f.Value != nil {
			f.defaultValue.Set(f.Value)
		}
	}
	// 每次解析都从默认值开始，避免上一次运行的值残留。
	f.Value = new(uint256.Int).Set(f.defaultValue)
	for _, envVar := range f.EnvVars {
		envVar = strings.TrimSpace(envVar)
		if value, found := syscall.Getenv(envVar); found {
			if err := (*u256Value)(f.Value).Set(value); err != nil {
				return fmt.Errorf("could not parse %q from environment variable %q for flag %s", value, envVar, f.Name)
			}
			f.HasBeenSet = true
			break
		}
	}
	eachName(f, func(name string) {
		set.Var((*u256Value)(f.Value), name, f.Usage)
	})
	return nil
}

// For cli.RequiredFlag:

func (f *Uint256Flag) IsRequired() bool { return f.Required }

// For cli.VisibleFlag:

func (f *Uint256Flag) IsVisible() bool { return !f.Hidden }

// For cli.CategorizableFlag:

func (f *Uint256Flag) GetCategory() string { return f.Category }

// For cli.DocGenerationFlag:

func (f *Uint256Flag) TakesValue() bool     { return true }
func (f *Uint256Flag) GetUsage() string     { return f.Usage }
func (f *Uint256Flag) GetValue() string     { return f.Value.Dec() }
func (f *Uint256Flag) GetEnvVars() []string { return f.EnvVars }
func (f *Uint256Flag) GetDefaultText() string {
	if f.DefaultText != "" {
		return f.DefaultText
	}
	if f.defaultValue == nil {
		return "0"
	}
	return f.defaultValue.Dec()
}

// u256Value turns *uint256.Int into a flag.Value
type u256Value uint256.Int

func (u *u256Value) String() string {
	if u == nil {
		return ""
	}
	return (*uint256.Int)(u).Dec()
}

func (u *u256Value) Set(s string) error {
	v, err := ParseUint256(s)
	if err != nil {
		return err
	}
	*u = (u256Value)(*v)
	return nil
}

// ParseUint256 parses s as a decimal or 0x-prefixed hexadecimal integer.
func ParseUint256(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	var (
		v   *uint256.Int
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits := strings.TrimLeft(s[2:], "0")
		if digits == "" && len(s) > 2 {
			digits = "0"
		}
		v, err = uint256.FromHex("0x" + digits)
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return nil, errors.New("invalid integer syntax")
	}
	return v, nil
}

// GlobalUint256 returns the value of a Uint256Flag from the flag set.
func GlobalUint256(ctx *cli.Context, name string) *uint256.Int {
	val := ctx.Generic(name)
	if val == nil {
		return nil
	}
	return new(uint256.Int).Set((*uint256.Int)(val.(*u256Value)))
}

// Expands a file path
// 1. replace tilde with users home dir
// 2. expands embedded environment variables
// 3. cleans the path, e.g. /a/b/../c -> /a/c
// Note, it has limitations, e.g. ~someuser/tmp will not be expanded
func expandPath(p string) string {
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~\\") {
		if home := HomeDir(); home != "" {
			p = home + p[1:]
		}
	}
	return filepath.Clean(os.ExpandEnv(p))
}

func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func eachName(f cli.Flag, fn func(string)) {
	for _, name := range f.Names() {
		name = strings.Trim(name, " ")
		fn(name)
	}
}
