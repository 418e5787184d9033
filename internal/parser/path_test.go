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

//nolint:testpackage // White-box tests for the path internals.
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowsDriveLetters(t *testing.T) {
	testCases := []struct {
		input      string
		drive      bool
		normalized bool
		startsWith bool
	}{
		{"C:", true, true, true},
		{"c:", true, true, true},
		{"C|", true, false, true},
		{"C", false, false, false},
		{"CC:", false, false, false},
		{"1:", false, false, false},
		{"C:/x", false, false, true},
		{"C|\\x", false, false, true},
		{"C:?q", false, false, true},
		{"C:#f", false, false, true},
		{"C:x", false, false, false},
		{"", false, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.drive, IsWindowsDriveLetter(tc.input))
			assert.Equal(t, tc.normalized, IsNormalizedWindowsDriveLetter(tc.input))
			assert.Equal(t, tc.startsWith, StartsWithWindowsDriveLetter(tc.input))
		})
	}
}

func TestDotSegments(t *testing.T) {
	testCases := []struct {
		input     string
		singleDot bool
		doubleDot bool
	}{
		{".", true, false},
		{"%2e", true, false},
		{"%2E", true, false},
		{"..", false, true},
		{".%2e", false, true},
		{".%2E", false, true},
		{"%2e.", false, true},
		{"%2e%2e", false, true},
		{"%2E%2e", false, true},
		{"...", false, false},
		{"%2f", false, false},
		{"x", false, false},
		{"", false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.singleDot, IsSingleDotSegment(tc.input))
			assert.Equal(t, tc.doubleDot, IsDoubleDotSegment(tc.input))
		})
	}
}

func TestPathShorten(t *testing.T) {
	var p Path
	p.Push("a")
	p.Push("b")

	p.Shorten("http")
	assert.Equal(t, []string{"a"}, p.Segments())

	p.Shorten("http")
	assert.Empty(t, p.Segments())

	// Shortening an empty path is a no-op.
	p.Shorten("http")
	assert.Empty(t, p.Segments())

	// The sole normalized drive letter of a file URL is kept.
	var file Path
	file.Push("C:")
	file.Shorten("file")
	assert.Equal(t, []string{"C:"}, file.Segments())

	file.Push("tmp")
	file.Shorten("file")
	assert.Equal(t, []string{"C:"}, file.Segments())

	// A non-file scheme shortens drive letters like any other segment.
	var web Path
	web.Push("C:")
	web.Shorten("http")
	assert.Empty(t, web.Segments())
}

func TestPathSerialize(t *testing.T) {
	var p Path
	assert.Equal(t, "", p.Serialize())

	p.Push("a")
	p.Push("")
	p.Push("b")
	assert.Equal(t, "/a//b", p.Serialize())

	opaque := OpaquePath("foo@bar.com")
	assert.Equal(t, "foo@bar.com", opaque.Serialize())
}

func TestPathClone(t *testing.T) {
	var p Path
	p.Push("a")

	clone := p.Clone()
	clone.Push("b")

	assert.Equal(t, []string{"a"}, p.Segments())
	assert.Equal(t, []string{"a", "b"}, clone.Segments())
}
