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

// FormPair is one name-value tuple of an application/x-www-form-urlencoded
// sequence.
type FormPair struct {
	Key   string
	Value string
}

// ParseFormEncoded parses an application/x-www-form-urlencoded byte
// sequence. Tokens split on U+0026 (&); within a token the first U+003D (=)
// separates key from value, U+002B (+) decodes to space and %XX escapes are
// percent-decoded. An empty token is skipped unless it is trailing with a
// key.
func ParseFormEncoded(input string) []FormPair {
	var out []FormPair
	if input == "" {
		return out
	}

	var key, value strings.Builder
	inValue := false

	flush := func() {
		out = append(out, FormPair{Key: key.String(), Value: value.String()})
		key.Reset()
		value.Reset()
		inValue = false
	}

	for i := 0; i < len(input); i++ {
		c := input[i]

		target := &key
		if inValue {
			target = &value
		}

		switch c {
		case '&':
			if inValue || key.Len() > 0 {
				flush()
			}
		case '=':
			if inValue {
				value.WriteByte(c)
			} else {
				inValue = true
			}
		case '+':
			target.WriteByte(' ')
		case '%':
			if i+2 >= len(input) {
				target.WriteByte(c)
				break
			}
			hi, ok1 := hexVal(input[i+1])
			lo, ok2 := hexVal(input[i+2])
			if !ok1 || !ok2 {
				target.WriteByte(c)
				break
			}
			target.WriteByte(hi<<4 | lo)
			i += 2
		default:
			target.WriteByte(c)
		}
	}

	if inValue || key.Len() > 0 {
		flush()
	}

	return out
}

// SerializeFormEncoded serializes pairs with the x-www-form-urlencoded
// percent-encode set, emitting space as U+002B (+).
func SerializeFormEncoded(pairs []FormPair) string {
	var b strings.Builder
	for i, pair := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(PercentEncode(pair.Key, &FormEncodeSet, true))
		b.WriteByte('=')
		b.WriteString(PercentEncode(pair.Value, &FormEncodeSet, true))
	}
	return b.String()
}
