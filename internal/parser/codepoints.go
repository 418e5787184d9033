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

// isASCIITabOrNewline checks for U+0009 TAB, U+000A LF, or U+000D CR.
func isASCIITabOrNewline(c byte) bool {
	return c == 0x09 || c == 0x0A || c == 0x0D
}

// isC0Control checks for a code point in the range U+0000 NULL to U+001F
// INFORMATION SEPARATOR ONE, inclusive.
func isC0Control(c byte) bool {
	return c <= 0x1F
}

// isC0ControlOrSpace checks for a C0 control or U+0020 SPACE.
func isC0ControlOrSpace(c byte) bool {
	return c == 0x20 || isC0Control(c)
}

// isASCIIDigit checks if a byte is an ASCII digit.
func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isASCIIHexDigit checks if a byte is an ASCII hexadecimal digit.
func isASCIIHexDigit(c byte) bool {
	return isASCIIDigit(c) || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

// isASCIIUpperAlpha checks for a code point in the range U+0041 (A) to
// U+005A (Z), inclusive.
func isASCIIUpperAlpha(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

// isASCIILowerAlpha checks for a code point in the range U+0061 (a) to
// U+007A (z), inclusive.
func isASCIILowerAlpha(c byte) bool {
	return c >= 'a' && c <= 'z'
}

// isASCIIAlpha checks if a byte is an ASCII letter.
func isASCIIAlpha(c byte) bool {
	return isASCIIUpperAlpha(c) || isASCIILowerAlpha(c)
}

// toLowerASCII lowercases a single ASCII letter and leaves every other byte
// untouched.
func toLowerASCII(c byte) byte {
	if isASCIIUpperAlpha(c) {
		return c + ('a' - 'A')
	}
	return c
}

// isForbiddenHostByte checks for a forbidden host code point: U+0000 NULL,
// TAB, LF, CR, SPACE, U+0023 (#), U+002F (/), U+003A (:), U+003C (<),
// U+003E (>), U+003F (?), U+0040 (@), U+005B ([), U+005C (\), U+005D (]),
// U+005E (^), or U+007C (|).
func isForbiddenHostByte(c byte) bool {
	switch c {
	case 0x00, 0x09, 0x0A, 0x0D, 0x20,
		'#', '/', ':', '<', '>', '?', '@', '[', '\\', ']', '^', '|':
		return true
	}
	return false
}

// isForbiddenDomainByte checks for a forbidden domain code point: a
// forbidden host code point, a C0 control, U+0025 (%), or U+007F DELETE.
func isForbiddenDomainByte(c byte) bool {
	return isForbiddenHostByte(c) || isC0Control(c) || c == '%' || c == 0x7F
}

// trimC0ControlOrSpace removes any leading and trailing C0 control or space
// bytes. It reports whether anything was removed.
func trimC0ControlOrSpace(s string) (string, bool) {
	start, end := 0, len(s)
	for start < end && isC0ControlOrSpace(s[start]) {
		start++
	}
	for end > start && isC0ControlOrSpace(s[end-1]) {
		end--
	}
	return s[start:end], start != 0 || end != len(s)
}

// removeTabOrNewline removes every ASCII tab or newline byte. It reports
// whether anything was removed.
func removeTabOrNewline(s string) (string, bool) {
	i := 0
	for i < len(s) && !isASCIITabOrNewline(s[i]) {
		i++
	}
	if i == len(s) {
		return s, false
	}

	out := make([]byte, i, len(s))
	copy(out, s[:i])
	for ; i < len(s); i++ {
		if !isASCIITabOrNewline(s[i]) {
			out = append(out, s[i])
		}
	}
	return string(out), true
}
