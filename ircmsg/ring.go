/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package ircmsg

// RingBuffer accumulates bytes read from the transport and yields complete
// lines one at a time. It is not safe for concurrent use — iconn.Conn
// documents the same "one goroutine at a time" ownership and this buffer
// relies on it.
type RingBuffer struct {
	buf   []byte
	start int
	end   int
}

// NewRingBuffer allocates a buffer sized to hold one maximum-length line.
func NewRingBuffer() *RingBuffer {
	return &RingBuffer{buf: make([]byte, MaxLineLength)}
}

// Len returns the number of unconsumed bytes currently buffered.
func (r *RingBuffer) Len() int {
	return r.end - r.start
}

// Free returns the number of bytes that can still be appended before the
// buffer is full.
func (r *RingBuffer) Free() int {
	return len(r.buf) - r.end
}

// Fill returns the writable slice at the end of the buffer, compacting
// first if the unread tail no longer fits without compaction.
func (r *RingBuffer) Fill() []byte {
	if r.Free() == 0 && r.start > 0 {
		r.compact()
	}
	return r.buf[r.end:]
}

// Advance records that n bytes were written into the slice returned by
// Fill.
func (r *RingBuffer) Advance(n int) {
	r.end += n
}

func (r *RingBuffer) compact() {
	copy(r.buf, r.buf[r.start:r.end])
	r.end -= r.start
	r.start = 0
}

// Frame extracts the next complete line from the buffer, terminated by
// CRLF, a bare LF or a bare CR, per the spec's lenient terminator rule.
// It returns ok=false (no error) when no complete line is buffered yet —
// the caller should read more and call Frame again. A line that fills the
// entire buffer with no terminator in sight is ErrLineTooLong: the spec
// treats "buffer full, no delimiter" as over-length rather than silently
// dropping or truncating.
func (r *RingBuffer) Frame() (line []byte, ok bool, err error) {
	data := r.buf[r.start:r.end]

	for i, b := range data {
		if b == '\n' || b == '\r' {
			line = data[:i]
			consumed := i + 1

			// swallow the paired LF of a CRLF terminator as one unit; a
			// bare LF or a bare CR is already a complete terminator on
			// its own.
			if b == '\r' && consumed < len(data) && data[consumed] == '\n' {
				consumed++
			}

			r.start += consumed
			if r.start == r.end {
				r.start, r.end = 0, 0
			}

			if len(line) > 0 && line[0] == ' ' {
				return nil, false, ErrLeadingSpace.Error(nil)
			}

			return line, true, nil
		}
	}

	if r.Free() == 0 && r.start == 0 {
		// no terminator anywhere in a full buffer: over-length line
		r.end = 0
		return nil, false, ErrLineTooLong.Error(nil)
	}

	return nil, false, nil
}
