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

//go:build unix

package sockaddr

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// Nonblocking wraps a non-blocking socket file descriptor through its
// connect/select phase. iconn drives it; once Wait reports connected the
// caller switches to the framed *os.File-backed read/write path (or wraps
// it in a *tls.Conn).
type Nonblocking struct {
	fd     int
	file   *os.File
	family Family
}

// NewNonblocking creates a non-blocking TCP socket for the given family.
func NewNonblocking(family Family) (*Nonblocking, error) {
	domain := unix.AF_INET
	if family == FamilyIPv6 {
		domain = unix.AF_INET6
	}

	fd, err := unix.Socket(domain, unix.SOCK_STREAM|unix.SOCK_CLOEXEC|unix.SOCK_NONBLOCK, unix.IPPROTO_TCP)
	if err != nil {
		return nil, ErrResolve.Error(err)
	}

	return &Nonblocking{fd: fd, family: family}, nil
}

// Connect issues a non-blocking connect(2) to the candidate and returns
// immediately. The caller must follow up with Wait to learn the outcome.
func (n *Nonblocking) Connect(c Candidate) error {
	sa, err := sockaddrFor(c)
	if err != nil {
		return err
	}

	err = unix.Connect(n.fd, sa)
	if err == nil || err == unix.EINPROGRESS || err == unix.EALREADY {
		return nil
	}

	_ = unix.Close(n.fd)
	return ErrNoCandidate.Error(err)
}

// Wait blocks (via poll) until the socket becomes writable (connect
// completed, successfully or not) or the budget elapses.
func (n *Nonblocking) Wait(budget time.Duration) (connected bool, err error) {
	fds := []unix.PollFd{{Fd: int32(n.fd), Events: unix.POLLOUT}}

	ms := int(budget.Milliseconds())
	if budget <= 0 {
		ms = 0
	}

	ready, perr := unix.Poll(fds, ms)
	if perr != nil {
		return false, ErrNoCandidate.Error(perr)
	}
	if ready == 0 {
		return false, nil // timed out, not yet connected
	}

	soErr, gerr := unix.GetsockoptInt(n.fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if gerr != nil {
		return false, ErrNoCandidate.Error(gerr)
	}
	if soErr != 0 {
		return false, ErrNoCandidate.Error(unix.Errno(soErr))
	}

	return true, nil
}

// File returns an *os.File wrapping the connected descriptor, suitable for
// net.FileConn or direct read/write, and transfers ownership of the fd to
// the returned file (closing the file closes the socket).
func (n *Nonblocking) File() *os.File {
	if n.file == nil {
		n.file = os.NewFile(uintptr(n.fd), "sockaddr-nonblocking")
	}
	return n.file
}

// Close releases the underlying descriptor.
func (n *Nonblocking) Close() error {
	if n.file != nil {
		return n.file.Close()
	}
	return unix.Close(n.fd)
}

func sockaddrFor(c Candidate) (unix.Sockaddr, error) {
	if c.Family == FamilyIPv6 {
		sa := &unix.SockaddrInet6{Port: int(c.Port)}
		sa.Addr = c.IP.As16()
		return sa, nil
	}

	sa := &unix.SockaddrInet4{Port: int(c.Port)}
	sa.Addr = c.IP.As4()
	return sa, nil
}
