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

// Package clock provides a monotonic microsecond clock with deadline
// helpers, behind a swappable Source so tests can substitute a fake clock.
// The iconn and irc packages do not use it; they call the time package
// directly.
package clock

import "time"

var start = time.Now()

// Source returns the current monotonic time in microseconds. It is a
// variable, not a function, so tests can swap it out for a deterministic
// sequence without touching the callers.
var Source = func() int64 {
	return start.UnixMicro() + time.Since(start).Microseconds()
}

// NowMicro returns the current monotonic time in microseconds, as reported
// by Source. The default Source counts from the wall-clock time at package
// initialisation and advances with the monotonic reading time.Now carries,
// so later wall-clock changes do not move it.
func NowMicro() int64 {
	return Source()
}

// Elapsed returns the number of microseconds between since and now.
func Elapsed(since int64) int64 {
	return NowMicro() - since
}

// Deadline returns the absolute microsecond timestamp budget microseconds
// from now. A non-positive budget yields a deadline already in the past,
// which callers should treat as "expired immediately".
func Deadline(budget time.Duration) int64 {
	return NowMicro() + budget.Microseconds()
}

// Expired reports whether the given absolute deadline (as returned by
// Deadline) has passed.
func Expired(deadline int64) bool {
	return NowMicro() >= deadline
}
