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

import "fmt"

var (
	// errMissingScheme is returned when the input has no scheme and no
	// usable base URL to inherit from.
	errMissingScheme = &kindError{message: "missing scheme and no usable base URL"}
	// errEmptyHost is returned when a required host component is empty,
	// such as a special URL whose authority is empty ("http://") or holds
	// only a port ("http://:80/"). Extra slashes after "//" are skipped, so
	// "http:///x" has the host "x".
	errEmptyHost = &kindError{message: "empty host"}
	// errEmptyHostWithCredentials is returned when credentials are present
	// but no host follows the U+0040 (@).
	errEmptyHostWithCredentials = &kindError{message: "empty host after credentials"}
	// errPortOutOfRange is returned when the port exceeds 2^16 - 1.
	errPortOutOfRange = &kindError{message: "port out of range"}
)

// kindError is a specialized error type used by the parser to provide
// detailed context about a parsing failure.
type kindError struct {
	message string
	char    byte
	details string
}

// Error formats the error message with any available character or details.
func (e *kindError) Error() string {
	msg := e.message
	if e.char != 0 {
		msg = fmt.Sprintf("%s '%c'", msg, e.char)
	} else if e.details != "" {
		msg = fmt.Sprintf("%s '%s'", msg, e.details)
	}
	return msg
}
