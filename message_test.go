// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package defermsg

import (
	"errors"
	"strings"
	"testing"

	"codeberg.org/defermsg/defermsg/catalog"
	"codeberg.org/defermsg/defermsg/configs"
)

// newTestFactory builds a factory over a fresh in-memory source with
// en_US pinned as the default locale.
func newTestFactory(t *testing.T, opts ...FactoryOption) (*Factory, *catalog.MapSource) {
	t.Helper()

	src := catalog.NewMapSource()
	res := catalog.NewResolver(
		catalog.WithSources(src),
		catalog.WithDefaultLocale("en_US"),
	)

	f := NewFactory("disk", append([]FactoryOption{WithResolver(res)}, opts...)...)

	return f, src
}

// TestMessageString_EagerVersusLazy checks the construction modes: an
// eager message fixes its text when built, a lazy one follows catalogs
// installed later.
func TestMessageString_EagerVersusLazy(t *testing.T) {
	t.Parallel()

	t.Run("EagerKeepsConstructionText", func(t *testing.T) {
		t.Parallel()

		f, src := newTestFactory(t)
		m := f.M("Device is busy")

		src.Add("disk", "en_US", map[string]string{"Device is busy": "Device is busy!"})

		if got := m.String(); got != "Device is busy" {
			t.Errorf("eager String() = %q, want construction-time text", got)
		}
	})

	t.Run("LazyFollowsLateCatalogs", func(t *testing.T) {
		t.Parallel()

		f, src := newTestFactory(t, WithLazy(true))
		m := f.M("Device is busy")

		if got := m.String(); got != "Device is busy" {
			t.Fatalf("lazy String() before catalog = %q, want msgid fallback", got)
		}

		src.Add("disk", "en_US", map[string]string{"Device is busy": "Device is busy!"})

		if got := m.String(); got != "Device is busy!" {
			t.Errorf("lazy String() after catalog = %q, want translated text", got)
		}
	})

	t.Run("EagerUsesPreloadedCatalog", func(t *testing.T) {
		t.Parallel()

		f, src := newTestFactory(t)
		src.Add("disk", "en_US", map[string]string{"Device is busy": "Device is busy!"})

		if got := f.M("Device is busy").String(); got != "Device is busy!" {
			t.Errorf("eager String() = %q, want preloaded translation", got)
		}
	})
}

// TestMessageTranslate checks locale rendering: substitution restarts
// from the msgid's translation, captured parameters are translated
// recursively, and the message itself never changes.
func TestMessageTranslate(t *testing.T) {
	t.Parallel()

	t.Run("RestartsFromMsgidTranslation", func(t *testing.T) {
		t.Parallel()

		f, src := newTestFactory(t)
		src.Add("disk", "de_DE", map[string]string{
			"Connection to %(host)s failed": "Verbindung zu %(host)s fehlgeschlagen",
		})

		m, err := f.M("Connection to %(host)s failed").Format(map[string]any{"host": "db1"})
		if err != nil {
			t.Fatalf("Format: %v", err)
		}

		if got := m.String(); got != "Connection to db1 failed" {
			t.Fatalf("String() = %q", got)
		}

		got, err := m.Translate("de_DE")
		if err != nil {
			t.Fatalf("Translate: %v", err)
		}

		if got != "Verbindung zu db1 fehlgeschlagen" {
			t.Errorf("Translate(de_DE) = %q", got)
		}

		// The rendered text must not replace the message's own.
		if m.String() != "Connection to db1 failed" {
			t.Errorf("Translate mutated the message: %q", m.String())
		}
	})

	t.Run("RepeatedFormatNeverCompounds", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFactory(t)
		m := f.M("Connection to %(host)s failed")

		first, err := m.Format(map[string]any{"host": "db1"})
		if err != nil {
			t.Fatalf("first Format: %v", err)
		}

		second, err := first.Format(map[string]any{"host": "db2"})
		if err != nil {
			t.Fatalf("second Format: %v", err)
		}

		if got := second.String(); got != "Connection to db2 failed" {
			t.Errorf("second Format String() = %q", got)
		}
	})

	t.Run("TranslatesCapturedMessages", func(t *testing.T) {
		t.Parallel()

		f, src := newTestFactory(t)
		src.Add("disk", "de_DE", map[string]string{
			"Status: %(st)s": "Zustand: %(st)s",
			"degraded":       "beeinträchtigt",
		})

		inner := f.M("degraded")

		outer, err := f.M("Status: %(st)s").Format(map[string]any{"st": inner})
		if err != nil {
			t.Fatalf("Format: %v", err)
		}

		got, err := outer.Translate("de_DE")
		if err != nil {
			t.Fatalf("Translate: %v", err)
		}

		if got != "Zustand: beeinträchtigt" {
			t.Errorf("Translate(de_DE) = %q", got)
		}
	})

	t.Run("EmptyLocaleMeansDefault", func(t *testing.T) {
		t.Parallel()

		f, src := newTestFactory(t)
		src.Add("disk", "en_US", map[string]string{"Ready": "Ready."})

		got, err := f.M("Ready").Translate("")
		if err != nil {
			t.Fatalf("Translate: %v", err)
		}

		if got != "Ready." {
			t.Errorf("Translate(\"\") = %q, want default-locale translation", got)
		}
	})

	t.Run("UnknownLocaleFallsBackToMsgid", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFactory(t)

		got, err := f.M("No such translation").Translate("sw_KE")
		if err != nil {
			t.Fatalf("Translate: %v", err)
		}

		if got != "No such translation" {
			t.Errorf("Translate(sw_KE) = %q, want msgid fallback", got)
		}
	})
}

// TestMessageFormat checks parameter sanitization: trimming, merging,
// cloning, and the error cases.
func TestMessageFormat(t *testing.T) {
	t.Parallel()

	t.Run("TrimsToReferencedKeys", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFactory(t)

		m, err := f.M("%(name)s has %(count)i rows").Format(map[string]any{
			"name":   "instances",
			"count":  42,
			"junk":   "dropped",
			"secret": "dropped too",
		})
		if err != nil {
			t.Fatalf("Format: %v", err)
		}

		if got := m.String(); got != "instances has 42 rows" {
			t.Errorf("String() = %q", got)
		}

		if len(m.params.dict) != 2 {
			t.Errorf("captured params = %v, want exactly name and count", m.params.dict)
		}

		for _, key := range []string{"name", "count"} {
			if _, ok := m.params.dict[key]; !ok {
				t.Errorf("captured params missing %q", key)
			}
		}
	})

	t.Run("MergesEarlierNamedParams", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFactory(t)
		m := f.M("%(a)s and %(b)s")

		// The first substitution cannot complete: b is still missing.
		if _, err := m.Format(map[string]any{"a": "one"}); !errors.Is(err, ErrMissingKey) {
			t.Fatalf("partial Format error = %v, want ErrMissingKey", err)
		}

		first, err := m.Format(map[string]any{"a": "one", "b": "two"})
		if err != nil {
			t.Fatalf("Format: %v", err)
		}

		// Re-formatting overlays new values over the captured ones.
		second, err := first.Format(map[string]any{"b": "three"})
		if err != nil {
			t.Fatalf("chained Format: %v", err)
		}

		if got := second.String(); got != "one and three" {
			t.Errorf("chained String() = %q", got)
		}
	})

	t.Run("MissingReferencedKey", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFactory(t)

		_, err := f.M("need %(gone)s").Format(map[string]any{"other": 1})
		if !errors.Is(err, ErrMissingKey) {
			t.Errorf("Format error = %v, want ErrMissingKey", err)
		}
	})

	t.Run("WholeDictAsSinglePositional", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFactory(t)

		m, err := f.M("config: %s").Format(map[string]any{"a": 1})
		if err != nil {
			t.Fatalf("Format: %v", err)
		}

		if got := m.String(); got != "config: map[a:1]" {
			t.Errorf("String() = %q", got)
		}
	})

	t.Run("NoPlaceholdersKeepsTextAndEmptyParams", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFactory(t)

		m, err := f.M("static text").Format(map[string]any{"a": 1})
		if err != nil {
			t.Fatalf("Format: %v", err)
		}

		if got := m.String(); got != "static text" {
			t.Errorf("String() = %q", got)
		}

		if len(m.params.dict) != 0 {
			t.Errorf("captured params = %v, want empty", m.params.dict)
		}
	})

	t.Run("NilBecomesPositionalParameter", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFactory(t)

		m, err := f.M("value: %s").Format(nil)
		if err != nil {
			t.Fatalf("Format: %v", err)
		}

		if got := m.String(); got != "value: <nil>" {
			t.Errorf("String() = %q", got)
		}
	})

	t.Run("SliceSuppliesPositionals", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFactory(t)

		m, err := f.M("%s of %s replicas").Format([]any{3, 5})
		if err != nil {
			t.Fatalf("Format: %v", err)
		}

		if got := m.String(); got != "3 of 5 replicas" {
			t.Errorf("String() = %q", got)
		}
	})

	t.Run("ExcessPositionals", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFactory(t)

		_, err := f.M("just %s").Format([]any{"a", "b"})
		if !errors.Is(err, ErrParamCount) {
			t.Errorf("Format error = %v, want ErrParamCount", err)
		}
	})

	t.Run("SingleValueWithoutPlaceholder", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFactory(t)

		_, err := f.M("no placeholders").Format("stray")
		if !errors.Is(err, ErrParamCount) {
			t.Errorf("Format error = %v, want ErrParamCount", err)
		}
	})

	t.Run("SnapshotsMutableValues", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFactory(t)
		attrs := map[string]any{"zone": "a"}

		m, err := f.M("attrs: %(attrs)s").Format(map[string]any{"attrs": attrs})
		if err != nil {
			t.Fatalf("Format: %v", err)
		}

		attrs["zone"] = "changed"

		got, err := m.Translate("en_US")
		if err != nil {
			t.Fatalf("Translate: %v", err)
		}

		if got != "attrs: map[zone:a]" {
			t.Errorf("Translate() = %q, want snapshot taken at Format time", got)
		}
	})

	t.Run("StringifiesUncloneableValues", func(t *testing.T) {
		t.Parallel()

		type opaque struct{ n int }

		f, _ := newTestFactory(t)

		m, err := f.M("got %(v)s").Format(map[string]any{"v": opaque{n: 7}})
		if err != nil {
			t.Fatalf("Format: %v", err)
		}

		if got, ok := m.params.dict["v"].(string); !ok {
			t.Errorf("captured value = %T, want stringified snapshot", m.params.dict["v"])
		} else if !strings.Contains(got, "7") {
			t.Errorf("captured value = %q, want text rendering of the original", got)
		}
	})
}

// TestMessageEqual checks that equality follows the rendered text.
func TestMessageEqual(t *testing.T) {
	t.Parallel()

	f, src := newTestFactory(t)
	src.Add("disk", "en_US", map[string]string{"alpha": "same text", "beta": "same text"})

	a := f.M("alpha")
	b := f.M("beta")
	c := f.M("gamma")

	if !a.Equal(b) {
		t.Errorf("messages rendering identically should be equal")
	}

	if a.Equal(c) {
		t.Errorf("messages rendering differently should not be equal")
	}

	if a.Equal(nil) {
		t.Errorf("non-nil message should not equal nil")
	}
}

// TestMessageRefusedCoercions checks that concatenation and ASCII
// coercion fail for every message, translated or not.
func TestMessageRefusedCoercions(t *testing.T) {
	t.Parallel()

	f, _ := newTestFactory(t)
	m := f.M("cannot be joined")

	if _, err := m.Concat(" tail"); !errors.Is(err, ErrConcatNotSupported) {
		t.Errorf("Concat error = %v, want ErrConcatNotSupported", err)
	}

	if _, err := m.ASCII(); !errors.Is(err, ErrASCIINotSupported) {
		t.Errorf("ASCII error = %v, want ErrASCIINotSupported", err)
	}

	if got := m.String(); got != "cannot be joined" {
		t.Errorf("refused coercion mutated the message: %q", got)
	}
}

// TestMustFormat checks the panicking variant.
func TestMustFormat(t *testing.T) {
	t.Parallel()

	f, _ := newTestFactory(t)

	if got := f.M("hi %(name)s").MustFormat(map[string]any{"name": "ada"}).String(); got != "hi ada" {
		t.Errorf("MustFormat String() = %q", got)
	}

	defer func() {
		if recover() == nil {
			t.Errorf("MustFormat with a missing key should panic")
		}
	}()

	f.M("hi %(name)s").MustFormat(map[string]any{})
}

// TestStrictMissingKeys checks the visible wrapping of untranslated
// fallbacks when strict mode is on. Not parallel: it toggles the global
// configuration.
func TestStrictMissingKeys(t *testing.T) {
	config.Global.I18N.StrictMissingKeys = true
	t.Cleanup(func() { config.Global.I18N.StrictMissingKeys = false })

	f, src := newTestFactory(t)
	src.Add("disk", "en_US", map[string]string{"translated msgid xkcd": "all good"})

	if got := f.M("translated msgid xkcd").String(); got != "all good" {
		t.Errorf("strict mode wrapped a translated msgid: %q", got)
	}

	if got := f.M("missing msgid xkcd").String(); got != "⟦missing msgid xkcd⟧" {
		t.Errorf("strict mode fallback = %q, want wrapped msgid", got)
	}
}
