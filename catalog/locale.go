// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// BaseLocale is the canonical base locale. Message ids are written in it,
// so it is always considered available and acts as the final fallback.
const BaseLocale = "en_US"

// envLocaleVars is the GNU gettext precedence order for locale detection.
var envLocaleVars = []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"}

// Normalize converts a locale code to canonical gettext form: underscores
// as separators with case folded per BCP 47 rules, for example "pt-br"
// becomes "pt_BR". Codes that cannot be parsed are returned trimmed but
// otherwise unchanged.
func Normalize(locale string) string {
	code := strings.TrimSpace(locale)
	if code == "" {
		return code
	}

	t, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return code
	}

	return strings.ReplaceAll(t.String(), "-", "_")
}

// HostLocale returns the locale advertised by the host environment, or
// BaseLocale when the environment does not name a usable one.
//
// The environment is consulted in GNU gettext order: LANGUAGE, LC_ALL,
// LC_MESSAGES, LANG. Codeset suffixes (".UTF-8") and modifiers ("@euro")
// are stripped; the C and POSIX locales mean "untranslated" and are
// skipped.
func HostLocale() string {
	for _, name := range envLocaleVars {
		value := os.Getenv(name)
		if value == "" {
			continue
		}

		if name == "LANGUAGE" {
			// LANGUAGE may hold a colon-separated priority list.
			value, _, _ = strings.Cut(value, ":")
		}

		value, _, _ = strings.Cut(value, ".")
		value, _, _ = strings.Cut(value, "@")

		if value == "" || value == "C" || value == "POSIX" {
			continue
		}

		return Normalize(value)
	}

	return BaseLocale
}

// candidates returns the lookup expansion for a normalised locale code,
// progressively truncating at underscores:
// "zh_Hant_HK" -> ["zh_Hant_HK", "zh_Hant", "zh"].
func candidates(locale string) []string {
	out := []string{locale}

	for {
		i := strings.LastIndexByte(locale, '_')
		if i < 0 {
			break
		}

		locale = locale[:i]

		out = append(out, locale)
	}

	return out
}
