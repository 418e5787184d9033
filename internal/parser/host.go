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

package parser

import "strings"

// HostType discriminates the inhabited cases of the Host variant.
type HostType int

const (
	// HostNone marks a null host, the zero value.
	HostNone HostType = iota
	// HostDomain is an ASCII domain, post-IDNA.
	HostDomain
	// HostIPv4 is a 32-bit address.
	HostIPv4
	// HostIPv6 is eight 16-bit words.
	HostIPv6
	// HostOpaque is a percent-encoded opaque string.
	HostOpaque
	// HostEmpty is the empty-string host, distinct from null.
	HostEmpty
)

// Host is a tagged variant over the five inhabited host cases. The zero
// Host is null.
type Host struct {
	typ  HostType
	str  string
	ipv4 uint32
	ipv6 [8]uint16
}

// DomainHost returns a Host holding an ASCII domain.
func DomainHost(domain string) Host {
	return Host{typ: HostDomain, str: domain}
}

// OpaqueHost returns a Host holding a percent-encoded opaque string.
func OpaqueHost(opaque string) Host {
	return Host{typ: HostOpaque, str: opaque}
}

// EmptyHost returns the empty-string host.
func EmptyHost() Host {
	return Host{typ: HostEmpty}
}

// IPv4Host returns a Host holding a 32-bit address.
func IPv4Host(address uint32) Host {
	return Host{typ: HostIPv4, ipv4: address}
}

// IPv6Host returns a Host holding eight 16-bit words.
func IPv6Host(address [8]uint16) Host {
	return Host{typ: HostIPv6, ipv6: address}
}

// Type returns the variant tag.
func (h Host) Type() HostType {
	return h.typ
}

// IsNull reports whether the host is null.
func (h Host) IsNull() bool {
	return h.typ == HostNone
}

// Domain returns the domain string. It must only be called on a domain host.
func (h Host) Domain() string {
	if h.typ != HostDomain {
		panic("whatwgurl: Domain called on a non-domain host")
	}
	return h.str
}

// Opaque returns the opaque host string. It must only be called on an
// opaque host.
func (h Host) Opaque() string {
	if h.typ != HostOpaque {
		panic("whatwgurl: Opaque called on a non-opaque host")
	}
	return h.str
}

// IPv4 returns the 32-bit address. It must only be called on an IPv4 host.
func (h Host) IPv4() uint32 {
	if h.typ != HostIPv4 {
		panic("whatwgurl: IPv4 called on a non-IPv4 host")
	}
	return h.ipv4
}

// IPv6 returns the eight 16-bit words. It must only be called on an IPv6
// host.
func (h Host) IPv6() [8]uint16 {
	if h.typ != HostIPv6 {
		panic("whatwgurl: IPv6 called on a non-IPv6 host")
	}
	return h.ipv6
}

// Serialize returns the host serialization: dotted decimal for IPv4, the
// bracketed compressed form for IPv6, and the stored string otherwise.
func (h Host) Serialize() string {
	switch h.typ {
	case HostIPv4:
		return serializeIPv4(h.ipv4)
	case HostIPv6:
		return "[" + serializeIPv6(h.ipv6) + "]"
	case HostDomain, HostOpaque:
		return h.str
	case HostEmpty:
		return ""
	}
	panic("whatwgurl: Serialize called on a null host")
}

// IDNAToASCII is the injected domain-to-ASCII collaborator. It is installed
// during environment initialization and must not be mutated while any URL
// is in flight.
var IDNAToASCII func(domain []byte) (string, error)

// ParseHost parses input into a host. notSpecial selects opaque-host
// parsing; otherwise input is percent-decoded, run through the IDNA
// collaborator and interpreted as an IPv4 address or a domain. The
// validationError result may be set even on success.
func ParseHost(input string, notSpecial bool) (host Host, validationError bool, err error) {
	// If input starts with U+005B ([), it must end with U+005D (]); the
	// interior is an IPv6 literal.
	if strings.HasPrefix(input, "[") {
		if !strings.HasSuffix(input, "]") {
			return Host{}, true, &kindError{message: "unterminated IPv6 literal", details: input}
		}
		address, err := parseIPv6(input[1 : len(input)-1])
		if err != nil {
			return Host{}, true, err
		}
		return IPv6Host(address), false, nil
	}

	if notSpecial {
		return parseOpaqueHost(input)
	}

	if input == "" {
		panic("whatwgurl: ParseHost called with an empty special host")
	}

	// Let domain be the percent-decoding of input, and asciiDomain the
	// result of running domain to ASCII on it.
	if IDNAToASCII == nil {
		panic("whatwgurl: environment not initialized")
	}
	asciiDomain, idnaErr := IDNAToASCII([]byte(PercentDecode(input)))
	if idnaErr != nil || asciiDomain == "" {
		return Host{}, true, &kindError{message: "domain to ASCII failed", details: input}
	}

	for i := 0; i < len(asciiDomain); i++ {
		if isForbiddenDomainByte(asciiDomain[i]) {
			return Host{}, true, &kindError{message: "forbidden domain code point", char: asciiDomain[i]}
		}
	}

	address, status := parseIPv4(asciiDomain)
	switch status {
	case ipv4OK:
		return IPv4Host(address), false, nil
	case ipv4Invalid:
		return Host{}, true, &kindError{message: "invalid IPv4 address", details: asciiDomain}
	}

	return DomainHost(asciiDomain), false, nil
}

// parseOpaqueHost percent-encodes every byte of input with the C0 control
// set, rejecting forbidden host code points.
func parseOpaqueHost(input string) (Host, bool, error) {
	validationError := false

	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		if isForbiddenHostByte(c) {
			return Host{}, true, &kindError{message: "forbidden host code point", char: c}
		}

		// A U+0025 (%) not followed by two ASCII hex digits is tolerated but
		// reported.
		if c == '%' && (i+2 >= len(input) ||
			!isASCIIHexDigit(input[i+1]) || !isASCIIHexDigit(input[i+2])) {
			validationError = true
		}

		appendEncodedByte(&b, c, &C0ControlSet, false)
	}

	return OpaqueHost(b.String()), validationError, nil
}
