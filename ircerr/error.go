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

// Package ircerr enumerates the error kinds shared by every component of
// this module, on top of the generic code/trace/hierarchy machinery in
// github.com/nabbar/go-srsirc/errors.
//
// Each kind is offset by the MinPkgXxx constant of the component it
// originates from (errors/modules.go), so a code observed on an Error can
// still be traced back to the layer that raised it even though all of them
// are registered from this single package.
package ircerr

import liberr "github.com/nabbar/go-srsirc/errors"

// Error is the interface every getter/setter/dial/logon failure in this
// module returns. It is the generic errors.Error, aliased here so callers
// never need to import the errors package directly.
type Error = liberr.Error

// CodeError is the generic errors.CodeError, aliased for the same reason.
type CodeError = liberr.CodeError

const (
	// ErrResolution covers DNS/address resolution failures (internal/sockaddr).
	ErrResolution CodeError = liberr.MinPkgSockAddr + iota + 1
)

const (
	// ErrConnectTimeout is what Session.Connect returns for every transport
	// setup failure (invalid transport config, resolution, dial, proxy,
	// TLS or hard timeout), with the iconn error as its parent.
	ErrConnectTimeout CodeError = liberr.MinPkgIConn + iota + 1
	// ErrTLS covers TLS handshake and certificate validation failures.
	ErrTLS
	// ErrEOF is the kind for a clean close by the peer; Session.ReadOne
	// reports every read failure, EOF included, as ErrIO.
	ErrEOF
	// ErrIO covers read/write failures on the transport.
	ErrIO
)

const (
	// ErrProxyRefused is the kind for a rejected or unparsable
	// CONNECT/SOCKS4/SOCKS5 handshake; the proxy package raises its own
	// codes, which Session.Connect reports under ErrConnectTimeout.
	ErrProxyRefused CodeError = liberr.MinPkgProxy + iota + 1
)

const (
	// ErrProtocol covers line-framing and tokenizer violations (ircmsg).
	ErrProtocol CodeError = liberr.MinPkgIRCMsg + iota + 1
)

const (
	// ErrLogonNick is the kind for giving up on nick collisions; the built-in
	// logon retries 432/433/436 without limit and never raises it.
	ErrLogonNick CodeError = liberr.MinPkgIRC + iota + 1
	// ErrLogonPassword is raised on ERR_PASSWDMISMATCH.
	ErrLogonPassword
	// ErrLogonBanned is raised on ERR_YOUREBANNEDCREEP / ERR_NOPERMFORHOST.
	ErrLogonBanned
	// ErrLogonFatal covers any other numeric that aborts the logon
	// conversation before RPL_WELCOME.
	ErrLogonFatal
	// ErrConfig is raised by a Session setter given an invalid value.
	ErrConfig
)

var isCodeError = false

// IsCodeError reports whether a message function was already registered
// for ErrResolution's code when this package's init ran, that is, whether
// another package's codes collide with this one's.
func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = liberr.ExistInMapMessage(ErrResolution)
	liberr.RegisterIdFctMessage(ErrResolution, getMessage)
	liberr.RegisterIdFctMessage(ErrConnectTimeout, getMessage)
	liberr.RegisterIdFctMessage(ErrProxyRefused, getMessage)
	liberr.RegisterIdFctMessage(ErrProtocol, getMessage)
	liberr.RegisterIdFctMessage(ErrLogonNick, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case liberr.UNK_ERROR:
		return ""
	case ErrResolution:
		return "address resolution failed"
	case ErrConnectTimeout:
		return "connect: hard timeout exceeded before connection was established"
	case ErrTLS:
		return "TLS handshake failed"
	case ErrEOF:
		return "remote closed the connection"
	case ErrIO:
		return "transport read/write error"
	case ErrProxyRefused:
		return "proxy refused the connection"
	case ErrProtocol:
		return "protocol framing error"
	case ErrLogonNick:
		return "server rejected every candidate nickname"
	case ErrLogonPassword:
		return "server password rejected"
	case ErrLogonBanned:
		return "banned from server"
	case ErrLogonFatal:
		return "logon aborted before welcome"
	case ErrConfig:
		return "invalid configuration value"
	}

	return ""
}
