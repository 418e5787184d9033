/*
Copyright 2025 Whatwgurl Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:testpackage // White-box tests for host parsing.
package parser

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asciiLowerIDNA is a stand-in for the injected IDNA collaborator: it
// lowercases ASCII and rejects non-ASCII bytes, which keeps these tests
// independent of any IDNA table.
func asciiLowerIDNA(domain []byte) (string, error) {
	for _, c := range domain {
		if c >= 0x80 {
			return "", errors.New("non-ASCII domain")
		}
	}
	return strings.ToLower(string(domain)), nil
}

func TestMain(m *testing.M) {
	InitSchemePorts()
	IDNAToASCII = asciiLowerIDNA

	code := m.Run()

	ClearSchemePorts()
	IDNAToASCII = nil
	os.Exit(code)
}

func TestParseHostDomain(t *testing.T) {
	host, ve, err := ParseHost("EXAMPLE.com", false)
	require.NoError(t, err)
	assert.False(t, ve)
	assert.Equal(t, HostDomain, host.Type())
	assert.Equal(t, "example.com", host.Domain())
	assert.Equal(t, "example.com", host.Serialize())
}

func TestParseHostPercentDecodesBeforeIDNA(t *testing.T) {
	host, _, err := ParseHost("ex%61mple.com", false)
	require.NoError(t, err)
	assert.Equal(t, "example.com", host.Domain())
}

func TestParseHostIPv4(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"127.0.0.1", "127.0.0.1"},
		{"0x7f.1", "127.0.0.1"},
		{"0300.0.0.1", "192.0.0.1"},
		{"2130706433", "127.0.0.1"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			host, _, err := ParseHost(tc.input, false)
			require.NoError(t, err)
			assert.Equal(t, HostIPv4, host.Type())
			assert.Equal(t, tc.expected, host.Serialize())
		})
	}
}

func TestParseHostInvalidIPv4(t *testing.T) {
	for _, input := range []string{"256.256.256.256", "1.2.3.4.5", "0x100.1.1.1"} {
		t.Run(input, func(t *testing.T) {
			_, ve, err := ParseHost(input, false)
			assert.Error(t, err)
			assert.True(t, ve)
		})
	}
}

func TestParseHostIPv6(t *testing.T) {
	host, _, err := ParseHost("[2001:db8::1]", false)
	require.NoError(t, err)
	assert.Equal(t, HostIPv6, host.Type())
	assert.Equal(t, [8]uint16{0x2001, 0xdb8, 0, 0, 0, 0, 0, 1}, host.IPv6())
	assert.Equal(t, "[2001:db8::1]", host.Serialize())

	_, ve, err := ParseHost("[::1", false)
	assert.Error(t, err)
	assert.True(t, ve)

	_, ve, err = ParseHost("[not-an-ip]", false)
	assert.Error(t, err)
	assert.True(t, ve)
}

func TestParseHostOpaque(t *testing.T) {
	host, ve, err := ParseHost("ho~st", true)
	require.NoError(t, err)
	assert.False(t, ve)
	assert.Equal(t, HostOpaque, host.Type())
	assert.Equal(t, "ho~st", host.Opaque())

	// C0 controls and high bytes are percent-encoded.
	host, _, err = ParseHost("h\x1Fst\xC3\xA9", true)
	require.NoError(t, err)
	assert.Equal(t, "h%1Fst%C3%A9", host.Opaque())

	// Existing escapes survive; a malformed escape is reported, not fatal.
	host, ve, err = ParseHost("a%2Fb", true)
	require.NoError(t, err)
	assert.False(t, ve)
	assert.Equal(t, "a%2Fb", host.Opaque())

	host, ve, err = ParseHost("a%zz", true)
	require.NoError(t, err)
	assert.True(t, ve)
	assert.Equal(t, "a%zz", host.Opaque())
}

func TestParseHostForbiddenCodePoints(t *testing.T) {
	for _, input := range []string{"a b", "a<b", "a>b", "a^b", "a|b", "a#b"} {
		t.Run(input, func(t *testing.T) {
			_, _, err := ParseHost(input, true)
			assert.Error(t, err)
		})
	}

	// The domain set additionally forbids "%" and DELETE after decoding.
	_, _, err := ParseHost("a%25b", false)
	assert.Error(t, err)
	_, _, err = ParseHost("a\x7Fb", false)
	assert.Error(t, err)
}

func TestParseHostIDNAFailure(t *testing.T) {
	_, ve, err := ParseHost("caf\xC3\xA9.fr", false)
	assert.Error(t, err)
	assert.True(t, ve)
}

func TestHostVariantAccessors(t *testing.T) {
	assert.True(t, Host{}.IsNull())
	assert.Equal(t, "", EmptyHost().Serialize())
	assert.Equal(t, HostEmpty, EmptyHost().Type())
	assert.Equal(t, uint32(0x7F000001), IPv4Host(0x7F000001).IPv4())
	assert.Panics(t, func() { Host{}.Serialize() })
	assert.Panics(t, func() { EmptyHost().Domain() })
}
