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
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathExpansion(t *testing.T) {
	home := HomeDir()
	tests := map[string]string{
		"/home/someuser/tmp": "/home/someuser/tmp",
		"~/tmp":              home + "/tmp",
		"$DDDXXX/a/b":        "/tmp/a/b",
		"/a/b/../c":          "/a/c",
	}
	os.Setenv("DDDXXX", "/tmp")
	defer os.Unsetenv("DDDXXX")
	for test, expected := range tests {
		assert.Equal(t, expected, expandPath(test), "input %s", test)
	}
}

func TestParseUint256(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"0", 0, true},
		{"1000000000", 1000000000, true},
		{"0x0", 0, true},
		{"0x00ff", 255, true},
		{"0X10", 16, true},
		{" 42 ", 42, true},
		{"0x", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"0xzz", 0, false},
	}
	for _, tt := range tests {
		v, err := ParseUint256(tt.in)
		if !tt.ok {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, v.Uint64(), "input %q", tt.in)
	}

	_, err := ParseUint256("115792089237316195423570985008687907853269984665640564039457584007913129639936") // 2^256
	assert.Error(t, err)
}

func TestUint256Flag(t *testing.T) {
	f := &Uint256Flag{Name: "value", Usage: "amount"}
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	require.NoError(t, f.Apply(set))
	require.NoError(t, set.Parse([]string{"--value", "0x2a"}))
	assert.Equal(t, uint64(42), f.Value.Uint64())
	assert.Equal(t, "0", f.GetDefaultText())
	assert.Error(t, set.Set("value", "nope"))
}
