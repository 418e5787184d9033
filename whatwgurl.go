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

// Package whatwgurl provides a WHATWG-conformant URL parser and
// manipulation library.
//
// Given a string (and optionally a base URL), New parses it into a
// structured representation with normalized components — scheme,
// credentials, host, port, path, query, fragment — and exposes a mutable
// API whose setters honor the parser's contextual rules.
//
// The package offers two main types:
//   - URL: the parsed URL with getters and setters mirroring the browser
//     URL interface (Href, Protocol, Hostname, Search, ...).
//   - SearchParams: the companion ordered multimap over the query
//     component, kept bidirectionally synchronized with its owning URL.
//
// Before parsing any URL the process-wide environment must be installed
// with Init, which wires the IDNA-to-ASCII collaborator (by default backed
// by golang.org/x/net/idna) and the scheme default-port table.
package whatwgurl

import (
	"encoding/json"

	"github.com/jplu/whatwgurl/internal/parser"
)

// URL is a parsed URL. It is created by New and its variants; when
// parsing failed, Failed reports true and every getter and setter panics.
type URL struct {
	record          *parser.Record
	searchParams    *SearchParams
	validationError bool
	failed          bool

	onPassivelyUpdate func()
}

// New parses input as an absolute URL. On failure it returns a URL whose
// Failed predicate is true.
func New(input string) *URL {
	u := &URL{}
	record, validationError, err := parser.Run(input, nil, nil, parser.NoState)
	u.validationError = validationError
	if err != nil {
		u.failed = true
		return u
	}
	u.record = record
	return u
}

// NewWithBaseString parses input against a base URL string.
func NewWithBaseString(input, base string) *URL {
	u := &URL{}
	baseRecord, validationError, err := parser.Run(base, nil, nil, parser.NoState)
	u.validationError = validationError
	if err != nil {
		u.failed = true
		return u
	}
	return u.parseAgainst(input, baseRecord)
}

// NewWithBase parses input against an already parsed base URL.
func NewWithBase(input string, base *URL) *URL {
	u := &URL{}
	if base.failed {
		u.failed = true
		return u
	}
	return u.parseAgainst(input, base.record)
}

func (u *URL) parseAgainst(input string, base *parser.Record) *URL {
	record, validationError, err := parser.Run(input, base, nil, parser.NoState)
	u.validationError = validationError
	if err != nil {
		u.failed = true
		return u
	}
	u.record = record
	return u
}

// Failed reports whether parsing failed. Getters and setters must not be
// called on a failed URL.
func (u *URL) Failed() bool {
	return u.failed || u.record == nil
}

// ValidationError reports whether the parser observed a tolerated
// syntactic anomaly.
func (u *URL) ValidationError() bool {
	return u.validationError
}

func (u *URL) mustBeUsable() {
	if u.Failed() {
		panic("whatwgurl: operation on a failed URL")
	}
}

// Href returns the URL serialization.
func (u *URL) Href() string {
	u.mustBeUsable()
	return u.serialize(false)
}

// HrefWithoutFragment returns the URL serialization with the fragment
// excluded.
func (u *URL) HrefWithoutFragment() string {
	u.mustBeUsable()
	return u.serialize(true)
}

// SetHref reparses the whole URL from the given value. On failure the URL
// is left unchanged and false is returned.
func (u *URL) SetHref(href string) bool {
	u.mustBeUsable()

	record, validationError, err := parser.Run(href, nil, nil, parser.NoState)
	if err != nil {
		return false
	}
	u.validationError = validationError
	u.record = record

	// Rebuild the query object's list from the new query.
	if u.searchParams != nil {
		u.searchParams.list = nil
		if query, set := u.record.Query.Get(); set {
			u.searchParams.initialize(query)
		}
		u.searchParams.emitPassivelyUpdate()
	}

	return true
}

// String returns the URL serialization.
func (u *URL) String() string {
	return u.Href()
}

// Protocol returns the URL's scheme, followed by U+003A (:).
func (u *URL) Protocol() string {
	u.mustBeUsable()
	return u.record.Scheme + ":"
}

// SetProtocol parses the given value followed by U+003A (:) with scheme
// start state as state override.
func (u *URL) SetProtocol(protocol string) bool {
	u.mustBeUsable()
	return u.reparse(protocol+":", parser.StateSchemeStart)
}

// Username returns the URL's username.
func (u *URL) Username() string {
	u.mustBeUsable()
	return u.record.Username
}

// SetUsername percent-encodes the given value with the userinfo set. It
// refuses when the URL cannot have credentials.
func (u *URL) SetUsername(username string) bool {
	u.mustBeUsable()
	if u.record.CannotHaveCredentialsOrPort() {
		return false
	}
	u.record.Username = parser.PercentEncode(username, &parser.UserinfoSet, false)
	return true
}

// Password returns the URL's password.
func (u *URL) Password() string {
	u.mustBeUsable()
	return u.record.Password
}

// SetPassword percent-encodes the given value with the userinfo set. It
// refuses when the URL cannot have credentials.
func (u *URL) SetPassword(password string) bool {
	u.mustBeUsable()
	if u.record.CannotHaveCredentialsOrPort() {
		return false
	}
	u.record.Password = parser.PercentEncode(password, &parser.UserinfoSet, false)
	return true
}

// Host returns the URL's host, serialized, followed by U+003A (:) and the
// port when the port is non-null.
func (u *URL) Host() string {
	u.mustBeUsable()

	if u.record.Host.IsNull() {
		return ""
	}
	if port, set := u.record.Port.Get(); set {
		return u.record.Host.Serialize() + ":" + parser.SerializePort(port)
	}
	return u.record.Host.Serialize()
}

// SetHost parses the given value with host state as state override. It is
// a no-op on a URL with an opaque path.
func (u *URL) SetHost(host string) bool {
	u.mustBeUsable()
	if u.record.HasOpaquePath() {
		return false
	}
	return u.reparse(host, parser.StateHost)
}

// Hostname returns the URL's host, serialized.
func (u *URL) Hostname() string {
	u.mustBeUsable()

	if u.record.Host.IsNull() {
		return ""
	}
	return u.record.Host.Serialize()
}

// SetHostname parses the given value with hostname state as state
// override. It is a no-op on a URL with an opaque path.
func (u *URL) SetHostname(hostname string) bool {
	u.mustBeUsable()
	if u.record.HasOpaquePath() {
		return false
	}
	return u.reparse(hostname, parser.StateHostname)
}

// Port returns the URL's port, serialized, or the empty string when null.
func (u *URL) Port() string {
	u.mustBeUsable()

	if port, set := u.record.Port.Get(); set {
		return parser.SerializePort(port)
	}
	return ""
}

// SetPort parses the given value with port state as state override. The
// empty string clears the port. It refuses when the URL cannot have a
// port.
func (u *URL) SetPort(port string) bool {
	u.mustBeUsable()
	if u.record.CannotHaveCredentialsOrPort() {
		return false
	}
	if port == "" {
		u.record.Port.Clear()
		return true
	}
	return u.reparse(port, parser.StatePort)
}

// Pathname returns the URL-path serialization.
func (u *URL) Pathname() string {
	u.mustBeUsable()
	return u.record.Path.Serialize()
}

// SetPathname empties the path and parses the given value with path start
// state as state override. It is a no-op on a URL with an opaque path.
func (u *URL) SetPathname(pathname string) bool {
	u.mustBeUsable()
	if u.record.HasOpaquePath() {
		return false
	}

	clone := u.record.Clone()
	clone.Path.Clear()
	record, validationError, err := parser.Run(pathname, nil, clone, parser.StatePathStart)
	if err != nil {
		return false
	}
	u.validationError = u.validationError || validationError
	u.record = record
	return true
}

// Search returns U+003F (?) followed by the URL's query, or the empty
// string when the query is null or empty.
func (u *URL) Search() string {
	u.mustBeUsable()

	if query, set := u.record.Query.Get(); set && query != "" {
		return "?" + query
	}
	return ""
}

// SetSearch parses the given value, with one leading U+003F (?) stripped,
// with query state as state override. The empty string clears the query.
func (u *URL) SetSearch(search string) bool {
	u.mustBeUsable()

	if search == "" {
		u.record.Query.Clear()
		if u.searchParams != nil {
			u.searchParams.list = nil
			u.searchParams.emitPassivelyUpdate()
		}
		return true
	}

	input := search
	if input[0] == '?' {
		input = input[1:]
	}

	clone := u.record.Clone()
	clone.Query.Set("")
	record, validationError, err := parser.Run(input, nil, clone, parser.StateQuery)
	if err != nil {
		return false
	}
	u.validationError = u.validationError || validationError
	u.record = record

	if u.searchParams != nil {
		u.searchParams.list = nil
		if query, set := u.record.Query.Get(); set {
			u.searchParams.initialize(query)
		}
		u.searchParams.emitPassivelyUpdate()
	}

	return true
}

// Hash returns U+0023 (#) followed by the URL's fragment, or the empty
// string when the fragment is null or empty.
func (u *URL) Hash() string {
	u.mustBeUsable()

	if fragment, set := u.record.Fragment.Get(); set && fragment != "" {
		return "#" + fragment
	}
	return ""
}

// SetHash parses the given value, with one leading U+0023 (#) stripped,
// with fragment state as state override. The empty string clears the
// fragment.
func (u *URL) SetHash(hash string) bool {
	u.mustBeUsable()

	if hash == "" {
		u.record.Fragment.Clear()
		return true
	}

	input := hash
	if input[0] == '#' {
		input = input[1:]
	}

	clone := u.record.Clone()
	clone.Fragment.Set("")
	return u.swapOnSuccess(parser.Run(input, nil, clone, parser.StateFragment))
}

// SearchParams returns the URL's query object, lazily constructing it from
// the query on first access. Mutations on either side propagate to the
// other.
func (u *URL) SearchParams() *SearchParams {
	u.mustBeUsable()

	if u.searchParams != nil {
		return u.searchParams
	}

	u.searchParams = &SearchParams{url: u}
	u.searchParams.initialize(u.record.Query.Value())
	return u.searchParams
}

// SetOnPassivelyUpdate installs a callback fired when the URL's query is
// rewritten by its query object, so embedders can refresh caches.
func (u *URL) SetOnPassivelyUpdate(fn func()) {
	u.onPassivelyUpdate = fn
}

func (u *URL) emitPassivelyUpdate() {
	if u.onPassivelyUpdate != nil {
		u.onPassivelyUpdate()
	}
}

// reparse runs the state machine over a clone of the record with the given
// state override, swapping the clone in on success.
func (u *URL) reparse(input string, override parser.State) bool {
	return u.swapOnSuccess(parser.Run(input, nil, u.record.Clone(), override))
}

func (u *URL) swapOnSuccess(record *parser.Record, validationError bool, err error) bool {
	if err != nil {
		return false
	}
	u.validationError = u.validationError || validationError
	u.record = record
	return true
}

// MarshalJSON implements the json.Marshaler interface, encoding the URL as
// its serialization.
func (u *URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Href())
}

// UnmarshalJSON implements the json.Unmarshaler interface. It decodes a
// JSON string into a URL, performing a full parse in the process.
func (u *URL) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed := New(s)
	if parsed.Failed() {
		return &ParseError{Message: "invalid URL: " + s}
	}
	*u = *parsed
	return nil
}
