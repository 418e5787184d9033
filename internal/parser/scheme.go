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

// IsSpecialScheme reports whether scheme is one of the fixed set of special
// schemes: "ftp", "file", "http", "https", "ws", "wss".
func IsSpecialScheme(scheme string) bool {
	switch scheme {
	case "ftp", "file", "http", "https", "ws", "wss":
		return true
	}
	return false
}

// schemePorts is the process-wide scheme to default-port table. It is
// populated by InitSchemePorts during environment initialization and must
// not be mutated while any URL is in flight.
//
// | Scheme | Default Port |
// |--------|--------------|
// | http   | 80           |
// | https  | 443          |
// | ws     | 80           |
// | wss    | 443          |
// | ftp    | 21           |
// | file   | null         |
var schemePorts map[string]uint16

// InitSchemePorts populates the default-port table.
func InitSchemePorts() {
	schemePorts = map[string]uint16{
		"http":  80,
		"https": 443,
		"ws":    80,
		"wss":   443,
		"ftp":   21,
	}
}

// ClearSchemePorts empties the default-port table. It must only be invoked
// during environment teardown, when no live URL record exists.
func ClearSchemePorts() {
	schemePorts = nil
}

// DefaultPort returns the default port for scheme. The default port for
// "file" and for any scheme outside the table is null (ok is false).
func DefaultPort(scheme string) (uint16, bool) {
	port, ok := schemePorts[scheme]
	return port, ok
}
