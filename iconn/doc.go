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

package iconn

// Conn carries no internal mutex. This is a deliberate choice, not an
// oversight:
//
//   - The irc package starts no goroutines of its own: a Session reads and
//     writes its Conn only from the goroutine that calls ReadOne/Send, so a
//     layer of locking inside Conn would only protect against a caller
//     shape that irc never produces.
//   - Connect, Read, and Write each touch c.nc and c.rb without
//     synchronization. Calling any of them from two goroutines at once is a
//     programming error on the caller's part, not a condition Conn
//     recovers from.
//   - Reset and Dispose are likewise unsynchronized: Dispose is meant to be
//     called once, after the owning goroutine has stopped driving Read/Write,
//     not concurrently with them.
//
// Callers needing to tear down a Conn from a different goroutine than the
// one reading/writing it must arrange their own handoff (e.g. a done
// channel observed by the reader loop before Dispose runs).
