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

// Package irc is the session layer: logon state machine, 005/ISUPPORT
// parameter parsing, message dispatch, and the getter/setter configuration
// surface an embedder drives a connection through.
package irc

import (
	"fmt"

	libval "github.com/go-playground/validator/v10"
	"github.com/nabbar/go-srsirc/duration"
	"github.com/nabbar/go-srsirc/iconn/proxy"
	"github.com/nabbar/go-srsirc/ircerr"
)

// ServiceConfig carries the SERVICE registration fields, used instead of
// NICK/USER when Config.Service.Enable is set.
type ServiceConfig struct {
	Enable bool   `mapstructure:"enable" json:"enable" yaml:"enable" toml:"enable"`
	Dist   string `mapstructure:"dist" json:"dist" yaml:"dist" toml:"dist"`
	Type   string `mapstructure:"type" json:"type" yaml:"type" toml:"type"`
	Info   string `mapstructure:"info" json:"info" yaml:"info" toml:"info"`
}

// Config is the full configuration surface of a Session: destination,
// optional proxy/TLS, registration identity, and behavioral toggles.
type Config struct {
	Host string `mapstructure:"host" json:"host" yaml:"host" toml:"host" validate:"required"`
	Port uint16 `mapstructure:"port" json:"port" yaml:"port" toml:"port" validate:"required"`
	SSL  bool   `mapstructure:"ssl" json:"ssl" yaml:"ssl" toml:"ssl"`

	ProxyKind proxy.Kind `mapstructure:"proxyKind" json:"proxyKind" yaml:"proxyKind" toml:"proxyKind"`
	ProxyHost string     `mapstructure:"proxyHost" json:"proxyHost" yaml:"proxyHost" toml:"proxyHost"`
	ProxyPort uint16     `mapstructure:"proxyPort" json:"proxyPort" yaml:"proxyPort" toml:"proxyPort"`

	Nick  string `mapstructure:"nick" json:"nick" yaml:"nick" toml:"nick" validate:"required"`
	User  string `mapstructure:"user" json:"user" yaml:"user" toml:"user" validate:"required"`
	FName string `mapstructure:"fname" json:"fname" yaml:"fname" toml:"fname"`
	Pass  string `mapstructure:"pass" json:"pass" yaml:"pass" toml:"pass"`

	// ConnFlags is the USER mode bitmask sent at registration (bit 2 = +w,
	// bit 3 = +i, per RFC 2812).
	ConnFlags uint8         `mapstructure:"connFlags" json:"connFlags" yaml:"connFlags" toml:"connFlags"`
	Service   ServiceConfig `mapstructure:"service" json:"service" yaml:"service" toml:"service"`

	ConnectTimeoutSoft duration.Duration `mapstructure:"connectTimeoutSoft" json:"connectTimeoutSoft" yaml:"connectTimeoutSoft" toml:"connectTimeoutSoft"`
	ConnectTimeoutHard duration.Duration `mapstructure:"connectTimeoutHard" json:"connectTimeoutHard" yaml:"connectTimeoutHard" toml:"connectTimeoutHard"`

	// Tracking enables the channel/user state tracker.
	Tracking bool `mapstructure:"tracking" json:"tracking" yaml:"tracking" toml:"tracking"`
	// Dumb disables every built-in reaction to inbound messages, including
	// the automatic PING/PONG responder.
	Dumb bool `mapstructure:"dumb" json:"dumb" yaml:"dumb" toml:"dumb"`
}

// Validate checks the configuration's struct tags, the same validator/v10
// pattern certificates.Config and iconn.Config use.
func (c *Config) Validate() ircerr.Error {
	err := ircerr.ErrConfig.Error(nil)

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

	if c.Service.Enable && c.Service.Dist == "" {
		//nolint goerr113
		err.Add(fmt.Errorf("service.dist is required when service.enable is set"))
	}

	if err.HasParent() {
		return err
	}
	return nil
}
