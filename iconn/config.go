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

// Package iconn is the transport layer: it owns the socket (or TLS
// connection) backing one IRC session, drives the connect/proxy/TLS
// sequence, and exposes a framed read/write surface to the irc package.
//
// A *Conn is not safe for concurrent use: the spec mandates single-goroutine
// ownership per connection, so Conn carries no internal mutex (see doc.go
// for the rationale).
package iconn

import (
	"fmt"

	libval "github.com/go-playground/validator/v10"
	"github.com/nabbar/go-srsirc/certificates"
	"github.com/nabbar/go-srsirc/duration"
	liberr "github.com/nabbar/go-srsirc/errors"
	"github.com/nabbar/go-srsirc/iconn/proxy"
)

// Config is the transport configuration: target host/port, optional proxy
// hop, TLS toggle and material, and the soft/hard timeout budgets.
type Config struct {
	Host string `mapstructure:"host" json:"host" yaml:"host" toml:"host" validate:"required"`
	Port uint16 `mapstructure:"port" json:"port" yaml:"port" toml:"port" validate:"required"`

	TLS        bool                 `mapstructure:"tls" json:"tls" yaml:"tls" toml:"tls"`
	TLSConfig  *certificates.Config `mapstructure:"tlsConfig" json:"tlsConfig" yaml:"tlsConfig" toml:"tlsConfig"`

	ProxyKind proxy.Kind `mapstructure:"proxyKind" json:"proxyKind" yaml:"proxyKind" toml:"proxyKind"`
	ProxyHost string     `mapstructure:"proxyHost" json:"proxyHost" yaml:"proxyHost" toml:"proxyHost"`
	ProxyPort uint16     `mapstructure:"proxyPort" json:"proxyPort" yaml:"proxyPort" toml:"proxyPort"`

	// SoftTimeout bounds a single read or write call.
	SoftTimeout duration.Duration `mapstructure:"softTimeout" json:"softTimeout" yaml:"softTimeout" toml:"softTimeout"`
	// HardTimeout bounds the entire connect (resolve + dial + proxy + TLS) sequence.
	HardTimeout duration.Duration `mapstructure:"hardTimeout" json:"hardTimeout" yaml:"hardTimeout" toml:"hardTimeout"`
}

// Validate checks the configuration's struct tags with go-playground's
// validator, the same pattern certificates.Config.Validate uses.
func (c *Config) Validate() liberr.Error {
	err := ErrorValidatorError.Error(nil)

	if er := libval.New().Struct(c); er != nil {
		if e, ok := er.(*libval.InvalidValidationError); ok {
			err.Add(e)
		}
		if ves, ok := er.(libval.ValidationErrors); ok {
			for _, e := range ves {
				//nolint goerr113
				err.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.StructNamespace(), e.ActualTag()))
			}
		}
	}

	if c.ProxyKind != proxy.None && c.ProxyHost == "" {
		//nolint goerr113
		err.Add(fmt.Errorf("proxyHost is required when proxyKind is set"))
	}

	if err.HasParent() {
		return err
	}
	return nil
}

// dialHost/dialPort return the address Conn must reach first: the proxy,
// if configured, otherwise the IRC server itself.
func (c *Config) dialHost() string {
	if c.ProxyKind != proxy.None {
		return c.ProxyHost
	}
	return c.Host
}

func (c *Config) dialPort() uint16 {
	if c.ProxyKind != proxy.None {
		return c.ProxyPort
	}
	return c.Port
}
