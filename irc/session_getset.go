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

package irc

import (
	"fmt"

	"github.com/nabbar/go-srsirc/duration"
	"github.com/nabbar/go-srsirc/iconn/proxy"
	"github.com/nabbar/go-srsirc/ircerr"
	"github.com/nabbar/go-srsirc/tracker"
)

// requireDisconnected guards the setters of connection configuration: they
// refuse to run while a transport is live. SetNick and SetDumb do not call
// it and apply in any state.
func (s *Session) requireDisconnected() ircerr.Error {
	if s.state != Disconnected {
		//nolint goerr113
		return ircerr.ErrConfig.Error(fmt.Errorf("cannot change configuration while connected"))
	}
	return nil
}

func (s *Session) SetHost(host string) ircerr.Error {
	if err := s.requireDisconnected(); err != nil {
		return err
	}
	if host == "" {
		//nolint goerr113
		return ircerr.ErrConfig.Error(fmt.Errorf("host must not be empty"))
	}
	s.cfg.Host = host
	return nil
}

func (s *Session) Host() string { return s.cfg.Host }

func (s *Session) SetPort(port uint16) ircerr.Error {
	if err := s.requireDisconnected(); err != nil {
		return err
	}
	if port == 0 {
		//nolint goerr113
		return ircerr.ErrConfig.Error(fmt.Errorf("port must not be zero"))
	}
	s.cfg.Port = port
	return nil
}

func (s *Session) Port() uint16 { return s.cfg.Port }

func (s *Session) SetSSL(enabled bool) ircerr.Error {
	if err := s.requireDisconnected(); err != nil {
		return err
	}
	s.cfg.SSL = enabled
	return nil
}

func (s *Session) SSL() bool { return s.cfg.SSL }

func (s *Session) SetProxy(spec ProxySpec) ircerr.Error {
	if err := s.requireDisconnected(); err != nil {
		return err
	}
	if spec.Kind != proxy.None && spec.Host == "" {
		//nolint goerr113
		return ircerr.ErrConfig.Error(fmt.Errorf("proxy host must not be empty when a proxy kind is set"))
	}
	s.cfg.ProxyKind = spec.Kind
	s.cfg.ProxyHost = spec.Host
	s.cfg.ProxyPort = spec.Port
	return nil
}

func (s *Session) Proxy() ProxySpec {
	return ProxySpec{Kind: s.cfg.ProxyKind, Host: s.cfg.ProxyHost, Port: s.cfg.ProxyPort}
}

func (s *Session) SetNick(nick string) ircerr.Error {
	if nick == "" {
		//nolint goerr113
		return ircerr.ErrConfig.Error(fmt.Errorf("nick must not be empty"))
	}
	s.cfg.Nick = nick
	if s.state == Disconnected {
		s.nick = nick
	}
	return nil
}

func (s *Session) SetUser(user, fname string) ircerr.Error {
	if err := s.requireDisconnected(); err != nil {
		return err
	}
	if user == "" {
		//nolint goerr113
		return ircerr.ErrConfig.Error(fmt.Errorf("user must not be empty"))
	}
	s.cfg.User = user
	s.cfg.FName = fname
	return nil
}

func (s *Session) SetPass(pass string) ircerr.Error {
	if err := s.requireDisconnected(); err != nil {
		return err
	}
	s.cfg.Pass = pass
	return nil
}

func (s *Session) SetConnFlags(flags uint8) ircerr.Error {
	if err := s.requireDisconnected(); err != nil {
		return err
	}
	s.cfg.ConnFlags = flags
	return nil
}

func (s *Session) SetService(svc ServiceConfig) ircerr.Error {
	if err := s.requireDisconnected(); err != nil {
		return err
	}
	if svc.Enable && svc.Dist == "" {
		//nolint goerr113
		return ircerr.ErrConfig.Error(fmt.Errorf("service.dist is required when service.enable is set"))
	}
	s.cfg.Service = svc
	return nil
}

func (s *Session) SetConnectTimeout(soft, hard duration.Duration) ircerr.Error {
	if err := s.requireDisconnected(); err != nil {
		return err
	}
	s.cfg.ConnectTimeoutSoft = soft
	s.cfg.ConnectTimeoutHard = hard
	return nil
}

func (s *Session) SetTracking(enabled bool) ircerr.Error {
	if err := s.requireDisconnected(); err != nil {
		return err
	}
	s.cfg.Tracking = enabled
	if enabled && s.tracker == nil {
		s.tracker = tracker.New(s.params.CaseMapping)
	}
	if !enabled {
		s.tracker = nil
	}
	return nil
}

func (s *Session) Tracking() bool { return s.cfg.Tracking }

func (s *Session) SetDumb(enabled bool) ircerr.Error {
	s.cfg.Dumb = enabled
	return nil
}

func (s *Session) Dumb() bool { return s.cfg.Dumb }
