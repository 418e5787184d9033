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

package whatwgurl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplu/whatwgurl"
)

func TestOrigin(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"http", "http://example.com/a?b#c", "http://example.com"},
		{"credentials are dropped", "http://u:p@example.com/", "http://example.com"},
		{"explicit port", "https://example.com:8443/x", "https://example.com:8443"},
		{"default port elided", "https://example.com:443/x", "https://example.com"},
		{"ipv4", "http://127.0.0.1/x", "http://127.0.0.1"},
		{"ipv6", "ws://[2001:db8::1]/x", "ws://[2001:db8::1]"},
		{"ftp", "ftp://example.com/f", "ftp://example.com"},

		{"file is opaque", "file:///etc/hosts", "null"},
		{"non-special is opaque", "git://example.com/r", "null"},
		{"opaque path is opaque", "mailto:x@y", "null"},

		{"blob recurses", "blob:https://example.com/uuid-here", "https://example.com"},
		{"blob with port", "blob:http://example.com:8080/id", "http://example.com:8080"},
		{"invalid blob path is opaque", "blob:not-a-url", "null"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u := whatwgurl.New(tc.input)
			require.False(t, u.Failed())
			assert.Equal(t, tc.expected, u.Origin())
		})
	}
}
