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

package whatwgurl

import (
	"strings"

	"github.com/jplu/whatwgurl/internal/parser"
)

// serialize implements the URL serializer.
func (u *URL) serialize(excludeFragment bool) string {
	record := u.record

	var b strings.Builder
	b.WriteString(record.Scheme)
	b.WriteByte(':')

	if !record.Host.IsNull() {
		b.WriteString("//")

		if record.IncludesCredentials() {
			b.WriteString(record.Username)
			if record.Password != "" {
				b.WriteByte(':')
				b.WriteString(record.Password)
			}
			b.WriteByte('@')
		}

		b.WriteString(record.Host.Serialize())

		if port, set := record.Port.Get(); set {
			b.WriteByte(':')
			b.WriteString(parser.SerializePort(port))
		}
	}

	// A null host with a path starting with an empty segment would be
	// ambiguous with a scheme-less authority; "/." disambiguates, so that
	// web+demo:/.//not-a-host/ does not round-trip to
	// web+demo://not-a-host/.
	if record.Host.IsNull() && !record.HasOpaquePath() &&
		record.Path.Size() > 1 && record.Path.Segments()[0] == "" {
		b.WriteString("/.")
	}

	b.WriteString(record.Path.Serialize())

	if query, set := record.Query.Get(); set {
		b.WriteByte('?')
		b.WriteString(query)
	}

	if fragment, set := record.Fragment.Get(); !excludeFragment && set {
		b.WriteByte('#')
		b.WriteString(fragment)
	}

	return b.String()
}
