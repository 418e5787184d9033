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

import "github.com/jplu/whatwgurl/internal/parser"

// tupleOrigin is the (scheme, host, port, domain) tuple of a non-opaque
// origin. A nil *tupleOrigin is an opaque origin.
type tupleOrigin struct {
	scheme string
	host   parser.Host
	port   parser.Maybe[uint16]
	domain parser.Maybe[string]
}

// serialize returns scheme "://" host (":" port)?, or "null" for an opaque
// origin.
func (t *tupleOrigin) serialize() string {
	if t == nil {
		return "null"
	}

	out := t.scheme + "://" + t.host.Serialize()
	if port, set := t.port.Get(); set {
		out += ":" + parser.SerializePort(port)
	}
	return out
}

// Origin returns the serialization of the URL's origin, computed on
// demand.
func (u *URL) Origin() string {
	u.mustBeUsable()
	return u.origin().serialize()
}

func (u *URL) origin() *tupleOrigin {
	record := u.record

	// For "blob:", recurse on the URL obtained by parsing the blob's path.
	if record.Scheme == "blob" {
		if !record.HasOpaquePath() {
			return nil
		}
		inner := New(record.Path.String())
		if inner.Failed() {
			return nil
		}
		return inner.origin()
	}

	// The origin of "file:" URLs is left as an exercise to the reader;
	// when in doubt, return an opaque origin.
	if record.Scheme == "file" {
		return nil
	}

	if record.IsSpecial() {
		if record.Host.IsNull() {
			panic("whatwgurl: special URL with a null host")
		}

		origin := &tupleOrigin{
			scheme: record.Scheme,
			host:   record.Host,
			port:   record.Port,
		}
		if record.Host.Type() == parser.HostDomain {
			origin.domain = parser.Some(record.Host.Domain())
		}
		return origin
	}

	return nil
}
