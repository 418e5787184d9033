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

// Package parser implements the WHATWG basic URL parser: a byte-driven
// state machine over a normalized input, together with the record types it
// populates, host parsing, percent-encoding and the
// application/x-www-form-urlencoded codec.
//
// The main entry point is Run, which parses an input string against an
// optional base record. Setters on the public facade reenter the machine
// at a specific state by passing a state override; on defined transitions
// the machine then returns early instead of falling through.
package parser

import "strings"

// State identifies one of the machine's states. The zero State means no
// override: parsing starts at StateSchemeStart.
type State int

const (
	// NoState is the absence of a state override.
	NoState State = iota
	StateSchemeStart
	StateScheme
	StateNoScheme
	StateSpecialRelativeOrAuthority
	StatePathOrAuthority
	StateRelative
	StateRelativeSlash
	StateSpecialAuthoritySlashes
	StateSpecialAuthorityIgnoreSlashes
	StateAuthority
	StateHost
	StateHostname
	StatePort
	StateFile
	StateFileSlash
	StateFileHost
	StatePathStart
	StatePath
	StateOpaquePath
	StateQuery
	StateFragment
)

// eof is the virtual sentinel emitted once after the final byte. Input
// bytes are widened to int so the sentinel cannot collide with a real byte
// value.
const eof = -1

// Run drives the state machine over input. When url is nil a fresh record
// is created and the input is trimmed of leading and trailing C0 controls
// or spaces; otherwise the given record is mutated in place, which is how
// setters reuse the parser with a state override. base supplies the
// components a relative input inherits.
//
// Run either succeeds (err is nil, the record is populated) or fails (the
// record is unusable). validationError reports tolerated syntactic
// anomalies and may be true in both cases.
func Run(input string, base *Record, url *Record, override State) (out *Record, validationError bool, err error) {
	if url == nil {
		url = &Record{}

		// If input contains any leading or trailing C0 control or space,
		// validation error, and remove them.
		var trimmed bool
		input, trimmed = trimC0ControlOrSpace(input)
		if trimmed {
			validationError = true
		}
	}

	// If input contains any ASCII tab or newline, validation error, then
	// remove all of them.
	var removed bool
	input, removed = removeTabOrNewline(input)
	if removed {
		validationError = true
	}

	hasOverride := override != NoState
	state := StateSchemeStart
	if hasOverride {
		state = override
	}

	atSignSeen := false
	insideBrackets := false
	passwordTokenSeen := false

	var buffer []byte

	// Keep running the state machine on (state, i). Transitions may advance,
	// stay, or rewind i, including all the way to the start.
	for i := 0; i <= len(input); i++ {
		c := eof
		if i < len(input) {
			c = int(input[i])
		}

		switch state {
		case StateSchemeStart:
			if c != eof && isASCIIAlpha(byte(c)) {
				buffer = append(buffer, toLowerASCII(byte(c)))
				state = StateScheme
			} else if !hasOverride {
				state = StateNoScheme
				i--
			} else {
				return url, true, &kindError{message: "invalid scheme start"}
			}

		case StateScheme:
			switch {
			case c != eof && (isASCIIAlpha(byte(c)) || isASCIIDigit(byte(c)) ||
				c == '+' || c == '-' || c == '.'):
				buffer = append(buffer, toLowerASCII(byte(c)))

			case c == ':':
				if hasOverride {
					bufferSpecial := IsSpecialScheme(string(buffer))

					// Switching between a special and a non-special scheme is
					// forbidden; so is setting "file" when credentials or a port
					// are present, or replacing a "file" scheme whose host is
					// empty. These transitions return without modifying the URL.
					if url.IsSpecial() != bufferSpecial {
						return url, validationError, nil
					}
					if (url.IncludesCredentials() || !url.Port.IsNull()) &&
						string(buffer) == "file" {
						return url, validationError, nil
					}
					if url.Scheme == "file" && url.Host.Type() == HostEmpty {
						return url, validationError, nil
					}
				}

				url.Scheme = string(buffer)

				if hasOverride {
					if defaultPort, ok := DefaultPort(url.Scheme); ok {
						if port, set := url.Port.Get(); set && port == defaultPort {
							url.Port.Clear()
						}
					}
					return url, validationError, nil
				}

				buffer = buffer[:0]

				switch {
				case url.Scheme == "file":
					// A missing "//" after "file:" is tolerated but reported.
					if !strings.HasPrefix(input[i+1:], "//") {
						validationError = true
					}
					state = StateFile

				case url.IsSpecial() && base != nil && base.Scheme == url.Scheme:
					state = StateSpecialRelativeOrAuthority

				case url.IsSpecial():
					state = StateSpecialAuthoritySlashes

				case strings.HasPrefix(input[i+1:], "/"):
					state = StatePathOrAuthority
					i++

				default:
					url.Path.Reset(true)
					state = StateOpaquePath
				}

			case !hasOverride:
				buffer = buffer[:0]
				state = StateNoScheme
				// Start over from the first byte of input.
				i = -1

			default:
				return url, true, &kindError{message: "invalid scheme character", char: byte(c)}
			}

		case StateNoScheme:
			if base == nil || (base.HasOpaquePath() && c != '#') {
				return url, true, errMissingScheme
			}

			if base.HasOpaquePath() && c == '#' {
				url.Scheme = base.Scheme
				url.Path = base.Path.Clone()
				url.Query = base.Query
				url.Fragment.Set("")
				state = StateFragment
			} else if base.Scheme != "file" {
				state = StateRelative
				i--
			} else {
				state = StateFile
				i--
			}

		case StateSpecialRelativeOrAuthority:
			if c == '/' && strings.HasPrefix(input[i+1:], "/") {
				state = StateSpecialAuthorityIgnoreSlashes
				i++
			} else {
				validationError = true
				state = StateRelative
				i--
			}

		case StatePathOrAuthority:
			if c == '/' {
				state = StateAuthority
			} else {
				state = StatePath
				i--
			}

		case StateRelative:
			if base.Scheme == "file" {
				panic("whatwgurl: relative state with a file base")
			}
			url.Scheme = base.Scheme

			switch {
			case c == '/':
				state = StateRelativeSlash
			case url.IsSpecial() && c == '\\':
				validationError = true
				state = StateRelativeSlash
			default:
				url.Username = base.Username
				url.Password = base.Password
				url.Host = base.Host
				url.Port = base.Port
				url.Path = base.Path.Clone()
				url.Query = base.Query

				switch c {
				case '?':
					url.Query.Set("")
					state = StateQuery
				case '#':
					url.Fragment.Set("")
					state = StateFragment
				case eof:
				default:
					url.Query.Clear()
					url.Path.Shorten(url.Scheme)
					state = StatePath
					i--
				}
			}

		case StateRelativeSlash:
			switch {
			case url.IsSpecial() && (c == '/' || c == '\\'):
				if c == '\\' {
					validationError = true
				}
				state = StateSpecialAuthorityIgnoreSlashes
			case c == '/':
				state = StateAuthority
			default:
				url.Username = base.Username
				url.Password = base.Password
				url.Host = base.Host
				url.Port = base.Port
				state = StatePath
				i--
			}

		case StateSpecialAuthoritySlashes:
			state = StateSpecialAuthorityIgnoreSlashes
			if c == '/' && strings.HasPrefix(input[i+1:], "/") {
				i++
			} else {
				validationError = true
				i--
			}

		case StateSpecialAuthorityIgnoreSlashes:
			if c != '/' && c != '\\' {
				state = StateAuthority
				i--
			} else {
				validationError = true
			}

		case StateAuthority:
			switch {
			case c == '@':
				validationError = true
				if atSignSeen {
					buffer = append([]byte("%40"), buffer...)
				}
				atSignSeen = true

				// Commit the buffer to username/password: the first unseen
				// U+003A (:) marks the password boundary; everything is
				// percent-encoded with the userinfo set.
				for _, codePoint := range buffer {
					if codePoint == ':' && !passwordTokenSeen {
						passwordTokenSeen = true
						continue
					}
					encoded := encodeByte(codePoint, &UserinfoSet)
					if passwordTokenSeen {
						url.Password += encoded
					} else {
						url.Username += encoded
					}
				}
				buffer = buffer[:0]

			case c == eof || c == '/' || c == '?' || c == '#' ||
				(c == '\\' && url.IsSpecial()):
				if atSignSeen && len(buffer) == 0 {
					return url, true, errEmptyHostWithCredentials
				}
				// Rewind to the start of the host and reconsume it.
				i -= len(buffer) + 1
				buffer = buffer[:0]
				state = StateHost

			default:
				buffer = append(buffer, byte(c))
			}

		case StateHost, StateHostname:
			isSpecial := url.IsSpecial()

			switch {
			case hasOverride && url.Scheme == "file":
				i--
				state = StateFileHost

			case c == ':' && !insideBrackets:
				if len(buffer) == 0 {
					return url, true, errEmptyHost
				}
				if override == StateHostname {
					return url, validationError, nil
				}

				host, hostVE, err := ParseHost(string(buffer), !isSpecial)
				validationError = validationError || hostVE
				if err != nil {
					return url, true, err
				}
				url.Host = host
				buffer = buffer[:0]
				state = StatePort

			case c == eof || c == '/' || c == '?' || c == '#' ||
				(c == '\\' && isSpecial):
				i--

				if isSpecial && len(buffer) == 0 {
					return url, true, errEmptyHost
				}
				if hasOverride && len(buffer) == 0 &&
					(url.IncludesCredentials() || !url.Port.IsNull()) {
					return url, validationError, nil
				}

				host, hostVE, err := ParseHost(string(buffer), !isSpecial)
				validationError = validationError || hostVE
				if err != nil {
					return url, true, err
				}
				url.Host = host
				buffer = buffer[:0]
				state = StatePathStart

				if hasOverride {
					return url, validationError, nil
				}

			default:
				switch c {
				case '[':
					insideBrackets = true
				case ']':
					insideBrackets = false
				}
				buffer = append(buffer, byte(c))
			}

		case StatePort:
			switch {
			case c != eof && isASCIIDigit(byte(c)):
				buffer = append(buffer, byte(c))

			case c == eof || c == '/' || c == '?' || c == '#' ||
				(c == '\\' && url.IsSpecial()) || hasOverride:
				if len(buffer) > 0 {
					port, ok := parsePort(buffer)
					if !ok {
						return url, true, errPortOutOfRange
					}

					if defaultPort, hasDefault := DefaultPort(url.Scheme); hasDefault && port == defaultPort {
						url.Port.Clear()
					} else {
						url.Port.Set(port)
					}
					buffer = buffer[:0]
				}

				if hasOverride {
					return url, validationError, nil
				}
				state = StatePathStart
				i--

			default:
				return url, true, &kindError{message: "invalid port character", char: byte(c)}
			}

		case StateFile:
			url.Scheme = "file"
			url.Host = EmptyHost()

			switch {
			case c == '/' || c == '\\':
				if c == '\\' {
					validationError = true
				}
				state = StateFileSlash

			case base != nil && base.Scheme == "file":
				url.Host = base.Host
				url.Path = base.Path.Clone()
				url.Query = base.Query

				switch c {
				case '?':
					url.Query.Set("")
					state = StateQuery
				case '#':
					url.Fragment.Set("")
					state = StateFragment
				case eof:
				default:
					url.Query.Clear()
					if !StartsWithWindowsDriveLetter(input[i:]) {
						url.Path.Shorten(url.Scheme)
					} else {
						// A (platform-independent) Windows drive letter quirk.
						validationError = true
						url.Path.Reset(false)
					}
					state = StatePath
					i--
				}

			default:
				state = StatePath
				i--
			}

		case StateFileSlash:
			switch {
			case c == '/' || c == '\\':
				if c == '\\' {
					validationError = true
				}
				state = StateFileHost

			default:
				if base != nil && base.Scheme == "file" {
					url.Host = base.Host

					// A (platform-independent) Windows drive letter quirk: inherit
					// the base's drive letter when the input has none of its own.
					if !StartsWithWindowsDriveLetter(input[i:]) &&
						!base.HasOpaquePath() && base.Path.Size() > 0 &&
						IsNormalizedWindowsDriveLetter(base.Path.Segments()[0]) {
						url.Path.Push(base.Path.Segments()[0])
					}
				}
				state = StatePath
				i--
			}

		case StateFileHost:
			switch {
			case c == eof || c == '/' || c == '\\' || c == '?' || c == '#':
				i--

				switch {
				case !hasOverride && IsWindowsDriveLetter(string(buffer)):
					// A (platform-independent) Windows drive letter quirk: the
					// buffer is kept and reused in the path state.
					validationError = true
					state = StatePath

				case len(buffer) == 0:
					url.Host = EmptyHost()
					if hasOverride {
						return url, validationError, nil
					}
					state = StatePathStart

				default:
					host, hostVE, err := ParseHost(string(buffer), !url.IsSpecial())
					validationError = validationError || hostVE
					if err != nil {
						return url, true, err
					}

					// "localhost" normalizes to the empty host.
					if host.Type() == HostDomain && host.Domain() == "localhost" ||
						host.Type() == HostOpaque && host.Opaque() == "localhost" {
						host = EmptyHost()
					}
					url.Host = host

					if hasOverride {
						return url, validationError, nil
					}
					buffer = buffer[:0]
					state = StatePathStart
				}

			default:
				buffer = append(buffer, byte(c))
			}

		case StatePathStart:
			if url.IsSpecial() {
				if c == '\\' {
					validationError = true
				}
				state = StatePath
				if c != '/' && c != '\\' {
					i--
				}
				break
			}

			if !hasOverride && c == '?' {
				url.Query.Set("")
				state = StateQuery
				break
			}
			if !hasOverride && c == '#' {
				url.Fragment.Set("")
				state = StateFragment
				break
			}

			if c != eof {
				state = StatePath
				if c != '/' {
					i--
				}
			} else if hasOverride && url.Host.IsNull() {
				url.Path.Push("")
			}

		case StatePath:
			isSpecial := url.IsSpecial()

			if c == eof || c == '/' || (isSpecial && c == '\\') ||
				(!hasOverride && (c == '?' || c == '#')) {
				if isSpecial && c == '\\' {
					validationError = true
				}

				switch {
				case IsDoubleDotSegment(string(buffer)):
					url.Path.Shorten(url.Scheme)
					// For input /usr/.. the result is / and not a lack of a path.
					if c != '/' && !(isSpecial && c == '\\') {
						url.Path.Push("")
					}

				case IsSingleDotSegment(string(buffer)):
					if c != '/' && !(isSpecial && c == '\\') {
						url.Path.Push("")
					}

				default:
					// A (platform-independent) Windows drive letter quirk:
					// normalize U+007C (|) to U+003A (:).
					if url.Scheme == "file" && url.Path.Size() == 0 &&
						IsWindowsDriveLetter(string(buffer)) {
						buffer[1] = ':'
					}
					url.Path.Push(string(buffer))
				}

				buffer = buffer[:0]

				switch c {
				case '?':
					url.Query.Set("")
					state = StateQuery
				case '#':
					url.Fragment.Set("")
					state = StateFragment
				}
			} else {
				if c == '%' && !hasTwoHexDigits(input[i+1:]) {
					validationError = true
				}
				buffer = append(buffer, encodeByte(byte(c), &PathSet)...)
			}

		case StateOpaquePath:
			switch c {
			case '?':
				url.Query.Set("")
				state = StateQuery
			case '#':
				url.Fragment.Set("")
				state = StateFragment
			case eof:
			default:
				if c == '%' && !hasTwoHexDigits(input[i+1:]) {
					validationError = true
				}
				url.Path.AppendOpaque(encodeByte(byte(c), &C0ControlSet))
			}

		case StateQuery:
			if (!hasOverride && c == '#') || c == eof {
				querySet := &QuerySet
				if url.IsSpecial() {
					querySet = &SpecialQuerySet
				}

				encoded := PercentEncode(string(buffer), querySet, false)
				if query, set := url.Query.Get(); set {
					url.Query.Set(query + encoded)
				} else {
					url.Query.Set(encoded)
				}
				buffer = buffer[:0]

				if c == '#' {
					url.Fragment.Set("")
					state = StateFragment
				}
			} else {
				if c == '%' && !hasTwoHexDigits(input[i+1:]) {
					validationError = true
				}
				buffer = append(buffer, byte(c))
			}

		case StateFragment:
			if c != eof {
				if c == '%' && !hasTwoHexDigits(input[i+1:]) {
					validationError = true
				}

				encoded := encodeByte(byte(c), &FragmentSet)
				if fragment, set := url.Fragment.Get(); set {
					url.Fragment.Set(fragment + encoded)
				} else {
					url.Fragment.Set(encoded)
				}
			}

		default:
			panic("whatwgurl: unknown parse state")
		}
	}

	return url, validationError, nil
}

// hasTwoHexDigits reports whether s starts with two ASCII hex digits.
func hasTwoHexDigits(s string) bool {
	return len(s) >= 2 && isASCIIHexDigit(s[0]) && isASCIIHexDigit(s[1])
}

// parsePort interprets buffer as a radix-10 integer, reporting false when
// it exceeds 2^16 - 1.
func parsePort(buffer []byte) (uint16, bool) {
	var value uint32
	for _, c := range buffer {
		value = value*10 + uint32(c-'0')
		if value > 0xffff {
			return 0, false
		}
	}
	return uint16(value), true
}
