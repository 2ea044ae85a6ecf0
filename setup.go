// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package defermsg

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/defermsg/defermsg/catalog"
	"codeberg.org/defermsg/defermsg/configs"
)

var (
	defaultMu      sync.RWMutex
	defaultFactory *Factory
)

// Setup builds the process-default factory from the loaded
// configuration and installs it. Call it once at startup, after
// config.Load. Programs that want several factories, or none of the
// package-level constructors, can skip Setup and build factories
// directly.
//
// Calling Setup again replaces the previously installed factory;
// messages already constructed keep the resolver they were built with.
func Setup() error {
	Logger = log.With().Str("sys", "defermsg").Logger()

	cfg := config.Global.I18N

	if cfg.Locale != "" {
		if _, err := language.Parse(strings.ReplaceAll(cfg.Locale, "_", "-")); err != nil {
			return fmt.Errorf("invalid default locale %q: %w", cfg.Locale, err)
		}
	}

	domain := cfg.Domain
	if domain == "" {
		domain = DefaultDomain
	}

	res := catalog.NewResolver(
		catalog.WithSources(catalog.NewGettextSource(cfg.LocaleDir)),
		catalog.WithDefaultLocale(cfg.Locale),
	)

	SetDefault(NewFactory(domain, WithLazy(cfg.Lazy), WithResolver(res)))

	Logger.Info().
		Str("domain", domain).
		Str("localedir", cfg.LocaleDir).
		Bool("lazy", cfg.Lazy).
		Msg("Installed default message factory")

	return nil
}

// SetDefault installs f as the process-default factory behind the
// package-level constructors. Install it once at startup, before other
// goroutines start constructing messages. A nil factory panics.
func SetDefault(f *Factory) {
	if f == nil {
		panic("defermsg: nil factory")
	}

	defaultMu.Lock()
	defaultFactory = f
	defaultMu.Unlock()
}

// Default returns the process-default factory. When neither [Setup] nor
// [SetDefault] ran, the first call installs an eager [DefaultDomain]
// factory resolving through environment-configured gettext catalogs
// only.
func Default() *Factory {
	defaultMu.RLock()
	f := defaultFactory
	defaultMu.RUnlock()

	if f != nil {
		return f
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultFactory == nil {
		defaultFactory = NewFactory(DefaultDomain)
	}

	return defaultFactory
}

// M returns a deferred message for msgid from the default factory.
func M(msgid string, opts ...MessageOption) *Message {
	return Default().M(msgid, opts...)
}

// T translates msgid to the default locale immediately, through the
// default factory.
func T(msgid string) string {
	return Default().T(msgid)
}

// Info returns a deferred info-domain message from the default factory.
func Info(msgid string) *Message {
	return Default().Info(msgid)
}

// Warning returns a deferred warning-domain message from the default
// factory.
func Warning(msgid string) *Message {
	return Default().Warning(msgid)
}

// Error returns a deferred error-domain message from the default
// factory.
func Error(msgid string) *Message {
	return Default().Error(msgid)
}

// Critical returns a deferred critical-domain message from the default
// factory.
func Critical(msgid string) *Message {
	return Default().Critical(msgid)
}
