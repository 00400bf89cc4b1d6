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

import (
	liberr "github.com/nabbar/go-srsirc/errors"
)

const (
	// ErrorValidatorError is raised by Config.Validate on a struct-tag failure.
	ErrorValidatorError liberr.CodeError = liberr.MinPkgIConn + iota + 1
	// ErrorNoCandidate is raised when every resolved candidate refused the connection.
	ErrorNoCandidate
	// ErrorSoftTimeout is raised when a single read/write exceeds the soft timeout.
	ErrorSoftTimeout
	// ErrorHardTimeout is raised when the connect phase exceeds the hard timeout.
	ErrorHardTimeout
	// ErrorClosed is raised by Read and Write when no transport is open
	// (before Connect or after Dispose), and by Dispose when closing fails.
	ErrorClosed
	// ErrorTLSHandshake is raised when the TLS handshake fails.
	ErrorTLSHandshake
	// ErrorEOF is raised when the peer closes the connection cleanly.
	ErrorEOF
	// ErrorIO is raised on any other read/write failure.
	ErrorIO
)

func init() {
	liberr.RegisterIdFctMessage(ErrorValidatorError, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorValidatorError:
		return "iconn: invalid config"
	case ErrorNoCandidate:
		return "no resolved candidate accepted the connection"
	case ErrorSoftTimeout:
		return "soft timeout exceeded"
	case ErrorHardTimeout:
		return "hard timeout exceeded"
	case ErrorClosed:
		return "connection is closed"
	case ErrorTLSHandshake:
		return "TLS handshake failed"
	case ErrorEOF:
		return "remote closed the connection"
	case ErrorIO:
		return "transport read/write error"
	}
	return ""
}
