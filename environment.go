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
	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"

	"github.com/jplu/whatwgurl/internal/parser"
)

// IDNAMode selects how strictly the domain-to-ASCII conversion is applied.
type IDNAMode int

const (
	// IDNADefault is the mode for maximum compatibility. The core only
	// ever invokes this mode.
	IDNADefault IDNAMode = iota
	// IDNALenient ignores conversion errors where possible.
	IDNALenient
	// IDNAStrict enforces STD3 rules and DNS length restrictions. It
	// corresponds to the beStrict flag of the domain-to-ASCII algorithm.
	IDNAStrict
)

// IDNAToASCIIFunc converts a domain to its ASCII form. A nil-error result
// must be a non-empty ASCII string.
type IDNAToASCIIFunc func(domain []byte, mode IDNAMode) (string, error)

// InitParams configures the process-wide environment.
type InitParams struct {
	// IDNAToASCII is the injected domain-to-ASCII collaborator. When nil,
	// the built-in adapter backed by golang.org/x/net/idna is installed.
	IDNAToASCII IDNAToASCIIFunc
}

// Init installs the IDNA-to-ASCII function and populates the
// scheme-to-default-port table. Both are process-wide and must not be
// mutated while any URL is in flight.
func Init(params InitParams) {
	parser.InitSchemePorts()

	toASCII := params.IDNAToASCII
	if toASCII == nil {
		toASCII = IDNAToASCII
	}
	parser.IDNAToASCII = func(domain []byte) (string, error) {
		return toASCII(domain, IDNADefault)
	}
}

// Cleanup clears the IDNA function and the default-port table. It must
// only be invoked when no live URL record exists.
func Cleanup() {
	parser.ClearSchemePorts()
	parser.IDNAToASCII = nil
}

// The profiles mirror the three IDNA modes. The default profile matches
// the browser-compatible domain-to-ASCII algorithm with beStrict false:
// no STD3 restrictions and no DNS length verification.
var (
	idnaDefaultProfile = idna.New(
		idna.MapForLookup(),
		idna.BidiRule(),
		idna.CheckHyphens(false),
		idna.StrictDomainName(false),
		idna.Transitional(false),
		idna.VerifyDNSLength(false),
	)

	idnaLenientProfile = idna.New(
		idna.MapForLookup(),
		idna.CheckHyphens(false),
		idna.StrictDomainName(false),
		idna.Transitional(false),
		idna.VerifyDNSLength(false),
	)

	idnaStrictProfile = idna.New(
		idna.MapForLookup(),
		idna.BidiRule(),
		idna.StrictDomainName(true),
		idna.Transitional(false),
		idna.VerifyDNSLength(true),
	)
)

// IDNAToASCII is the built-in domain-to-ASCII adapter. The input is
// normalized to NFC before conversion.
func IDNAToASCII(domain []byte, mode IDNAMode) (string, error) {
	normalized := norm.NFC.String(string(domain))

	switch mode {
	case IDNALenient:
		ascii, err := idnaLenientProfile.ToASCII(normalized)
		if err != nil && ascii != "" {
			// Ignore all errors in the conversion, if possible.
			err = nil
		}
		return ascii, err
	case IDNAStrict:
		return idnaStrictProfile.ToASCII(normalized)
	default:
		return idnaDefaultProfile.ToASCII(normalized)
	}
}
