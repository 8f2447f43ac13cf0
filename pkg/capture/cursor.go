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

package capture

import "encoding/binary"

// cursor walks a frame with explicit bounds checks. Every read reports
// whether enough bytes were present; a failed read never advances and
// never touches memory out of range.
type cursor struct {
	buf []byte
	off int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.off
}

// take returns the next n bytes and advances past them.
func (c *cursor) take(n int) ([]byte, bool) {
	if c.remaining() < n {
		return nil, false
	}

	b := c.buf[c.off : c.off+n]
	c.off += n

	return b, true
}

// skip advances past n bytes.
func (c *cursor) skip(n int) bool {
	if n < 0 || c.remaining() < n {
		return false
	}

	c.off += n

	return true
}

// u16 reads a big-endian 16-bit field.
func (c *cursor) u16() (uint16, bool) {
	b, ok := c.take(2)
	if !ok {
		return 0, false
	}

	return binary.BigEndian.Uint16(b), true
}
