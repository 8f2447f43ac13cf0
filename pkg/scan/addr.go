/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package scan

// ParseIPv4 parses a literal dotted-quad IPv4 address without
// allocating. Exactly four decimal fields, each 0-255; no name
// resolution is ever attempted.
func ParseIPv4(s string) ([4]byte, bool) {
	var addr [4]byte

	field := 0
	value := 0
	digits := 0

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c >= '0' && c <= '9':
			value = value*10 + int(c-'0')
			digits++

			if digits > 3 || value > 255 {
				return [4]byte{}, false
			}
		case c == '.':
			if digits == 0 || field == 3 {
				return [4]byte{}, false
			}

			addr[field] = byte(value)
			field++
			value = 0
			digits = 0
		default:
			return [4]byte{}, false
		}
	}

	if field != 3 || digits == 0 {
		return [4]byte{}, false
	}

	addr[3] = byte(value)

	return addr, true
}
