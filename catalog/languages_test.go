// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"slices"
	"testing"
)

// TestAvailableLocales checks locale enumeration, alias compensation, and
// the lifetime cache.
func TestAvailableLocales(t *testing.T) {
	t.Parallel()

	t.Run("PreservesIdentifierOrder", func(t *testing.T) {
		t.Parallel()

		src := NewMapSource().
			Add("app", "de_DE", map[string]string{"a": "b"}).
			Add("app", "fr_FR", map[string]string{"a": "b"})
		r := NewResolver(
			WithSources(src),
			WithLocaleIdentifiers([]string{"fr_FR", "de_DE", "it_IT"}),
		)

		got := r.AvailableLocales("app")
		want := []string{"en_US", "fr_FR", "de_DE"}

		if !slices.Equal(got, want) {
			t.Errorf("AvailableLocales() = %v, want %v", got, want)
		}
	})

	t.Run("AliasCompensation", func(t *testing.T) {
		t.Parallel()

		src := NewMapSource().Add("app", "zh", map[string]string{"a": "b"})
		r := NewResolver(WithSources(src), WithLocaleIdentifiers([]string{"zh"}))

		got := r.AvailableLocales("app")
		want := []string{"en_US", "zh", "zh_CN"}

		if !slices.Equal(got, want) {
			t.Errorf("AvailableLocales() = %v, want %v", got, want)
		}
	})

	t.Run("AliasNotDuplicated", func(t *testing.T) {
		t.Parallel()

		src := NewMapSource().
			Add("app", "zh", map[string]string{"a": "b"}).
			Add("app", "zh_CN", map[string]string{"a": "b"})
		r := NewResolver(WithSources(src), WithLocaleIdentifiers([]string{"zh", "zh_CN"}))

		got := r.AvailableLocales("app")
		want := []string{"en_US", "zh", "zh_CN"}

		if !slices.Equal(got, want) {
			t.Errorf("AvailableLocales() = %v, want %v", got, want)
		}
	})

	t.Run("BaseLocaleListedTwiceWhenProvided", func(t *testing.T) {
		t.Parallel()

		src := NewMapSource().Add("app", "en_US", map[string]string{"a": "b"})
		r := NewResolver(WithSources(src), WithLocaleIdentifiers([]string{"en_US"}))

		got := r.AvailableLocales("app")
		want := []string{"en_US", "en_US"}

		if !slices.Equal(got, want) {
			t.Errorf("AvailableLocales() = %v, want %v", got, want)
		}
	})

	t.Run("ProbesExpandCandidates", func(t *testing.T) {
		t.Parallel()

		// The source only carries the base language; the regional
		// identifier must still probe as available.
		src := NewMapSource().Add("app", "de", map[string]string{"a": "b"})
		r := NewResolver(WithSources(src), WithLocaleIdentifiers([]string{"de_DE"}))

		got := r.AvailableLocales("app")
		want := []string{"en_US", "de_DE"}

		if !slices.Equal(got, want) {
			t.Errorf("AvailableLocales() = %v, want %v", got, want)
		}
	})

	t.Run("CachedForResolverLifetime", func(t *testing.T) {
		t.Parallel()

		inner := NewMapSource().Add("app", "de_DE", map[string]string{"a": "b"})
		r := NewResolver(WithSources(inner), WithLocaleIdentifiers([]string{"de_DE", "fr_FR"}))

		first := r.AvailableLocales("app")

		inner.Add("app", "fr_FR", map[string]string{"a": "b"})

		second := r.AvailableLocales("app")
		if !slices.Equal(first, second) {
			t.Errorf("expected the enumeration to be cached, got %v then %v", first, second)
		}
	})

	t.Run("ReturnedSliceIsACopy", func(t *testing.T) {
		t.Parallel()

		src := NewMapSource().Add("app", "de_DE", map[string]string{"a": "b"})
		r := NewResolver(WithSources(src), WithLocaleIdentifiers([]string{"de_DE"}))

		first := r.AvailableLocales("app")
		first[0] = "mutated"

		second := r.AvailableLocales("app")
		if second[0] != BaseLocale {
			t.Errorf("expected callers to receive a private copy, got %v", second)
		}
	})

	t.Run("NoSources", func(t *testing.T) {
		t.Parallel()

		r := NewResolver(WithLocaleIdentifiers([]string{"de_DE"}))

		got := r.AvailableLocales("app")
		want := []string{"en_US"}

		if !slices.Equal(got, want) {
			t.Errorf("AvailableLocales() = %v, want %v", got, want)
		}
	})
}

// TestMatchLocale checks preference matching against the enumerated
// locales.
func TestMatchLocale(t *testing.T) {
	t.Parallel()

	src := NewMapSource().
		Add("app", "de_DE", map[string]string{"a": "b"}).
		Add("app", "fr_FR", map[string]string{"a": "b"})
	r := NewResolver(WithSources(src), WithLocaleIdentifiers([]string{"de_DE", "fr_FR"}))

	tests := []struct {
		name      string
		preferred []string
		want      string
	}{
		{"ExactTag", []string{"de-DE"}, "de_DE"},
		{"GettextCode", []string{"de_DE"}, "de_DE"},
		{"BaseLanguage", []string{"fr"}, "fr_FR"},
		{"AcceptLanguageHeader", []string{"fr-CH, fr;q=0.9, en;q=0.8"}, "fr_FR"},
		{"NoUsablePreference", []string{"pl"}, "en_US"},
		{"EmptyPreference", nil, "en_US"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := r.MatchLocale("app", tt.preferred...); got != tt.want {
				t.Errorf("MatchLocale(%v) = %q, want %q", tt.preferred, got, tt.want)
			}
		})
	}
}
