// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package defermsg

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"codeberg.org/defermsg/defermsg/configs"
)

var (
	// Logger is the logger used by package defermsg.
	Logger zerolog.Logger = log.With().Str("sys", "defermsg").Logger()

	// missingKeyOnce deduplicates WARN logs for missing msgids in strict
	// mode. The key is locale+"\x00"+domain+"\x00"+msgid.
	missingKeyOnce sync.Map
)

func strictMissingKeys() bool {
	return config.Global.I18N.StrictMissingKeys
}

// logMissingOnce logs a missing translation warning once per
// (locale, domain, msgid) triple when strict mode is enabled.
func logMissingOnce(locale, domain, msgid string) {
	if !strictMissingKeys() {
		return
	}

	id := locale + "\x00" + domain + "\x00" + msgid
	if _, loaded := missingKeyOnce.LoadOrStore(id, struct{}{}); !loaded {
		Logger.Warn().
			Str("locale", locale).
			Str("domain", domain).
			Str("msgid", msgid).
			Msg("Missing translation")
	}
}
