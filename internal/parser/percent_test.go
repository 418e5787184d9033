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

//nolint:testpackage // White-box tests for unexported set internals.
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeSetMembership(t *testing.T) {
	testCases := []struct {
		name     string
		set      *EncodeSet
		members  []byte
		excluded []byte
	}{
		{
			name:     "C0 control",
			set:      &C0ControlSet,
			members:  []byte{0x00, 0x1F, 0x7F, 0x80, 0xFF},
			excluded: []byte{' ', 'a', '~', '%', '#'},
		},
		{
			name:     "fragment",
			set:      &FragmentSet,
			members:  []byte{0x00, ' ', '"', '<', '>', '`'},
			excluded: []byte{'#', '?', '/', 'a'},
		},
		{
			name:     "query",
			set:      &QuerySet,
			members:  []byte{0x00, ' ', '"', '#', '<', '>'},
			excluded: []byte{'`', '\'', '?', 'a'},
		},
		{
			name:     "special query",
			set:      &SpecialQuerySet,
			members:  []byte{' ', '#', '\''},
			excluded: []byte{'?', '`', 'a'},
		},
		{
			name:     "path",
			set:      &PathSet,
			members:  []byte{' ', '#', '?', '`', '{', '}'},
			excluded: []byte{'\'', '/', ':', '@', '|'},
		},
		{
			name:     "userinfo",
			set:      &UserinfoSet,
			members:  []byte{'/', ':', ';', '=', '@', '[', '\\', ']', '^', '|', '{'},
			excluded: []byte{'$', '%', '&', '+', ',', 'a', '-', '_', '~'},
		},
		{
			name:     "component",
			set:      &ComponentSet,
			members:  []byte{'$', '%', '&', '+', ',', ':', '@'},
			excluded: []byte{'!', '\'', '(', ')', '~', 'a'},
		},
		{
			name:     "x-www-form-urlencoded",
			set:      &FormEncodeSet,
			members:  []byte{'!', '\'', '(', ')', '~', '+', '%', ' '},
			excluded: []byte{'*', '-', '.', '_', 'a', '0'},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, c := range tc.members {
				assert.Truef(t, tc.set.Contains(c), "0x%02X should be a member", c)
			}
			for _, c := range tc.excluded {
				assert.Falsef(t, tc.set.Contains(c), "0x%02X should not be a member", c)
			}
		})
	}
}

func TestPercentEncode(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		set         *EncodeSet
		spaceAsPlus bool
		expected    string
	}{
		{"passthrough", "abc", &C0ControlSet, false, "abc"},
		{"C0 byte", "a\x00b", &C0ControlSet, false, "a%00b"},
		{"high byte", "caf\xC3\xA9", &C0ControlSet, false, "caf%C3%A9"},
		{"uppercase hex", "\x1F", &C0ControlSet, false, "%1F"},
		{"space verbatim outside set", "a b", &C0ControlSet, false, "a b"},
		{"space encoded in fragment set", "a b", &FragmentSet, false, "a%20b"},
		{"space as plus", "a b", &FormEncodeSet, true, "a+b"},
		{"userinfo delimiters", "u:p@h", &UserinfoSet, false, "u%3Ap%40h"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PercentEncode(tc.input, tc.set, tc.spaceAsPlus))
		})
	}
}

func TestPercentDecode(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain", "abc", "abc"},
		{"simple escape", "a%20b", "a b"},
		{"lowercase hex", "%7e", "~"},
		{"non-hex left verbatim", "%zz", "%zz"},
		{"truncated escape", "abc%4", "abc%4"},
		{"lone percent", "%", "%"},
		{"consecutive escapes", "%41%42%43", "ABC"},
		{"no utf8 validation", "%FF%FE", "\xFF\xFE"},
		{"plus is not space", "a+b", "a+b"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PercentDecode(tc.input))
		})
	}
}

// Encoding with a set and decoding must be the identity on these inputs,
// none of which holds a "%" followed by two hex digits that the encoder
// would leave for the decoder to rewrite.
func TestPercentRoundTrip(t *testing.T) {
	inputs := []string{"", "plain", "a b c", "\x00\x1F\x7F\xFF", "100% sure", "ü=ü"}

	for _, input := range inputs {
		for _, set := range []*EncodeSet{&C0ControlSet, &FragmentSet, &QuerySet, &PathSet, &UserinfoSet, &ComponentSet} {
			assert.Equal(t, input, PercentDecode(PercentEncode(input, set, false)))
		}
	}
}
