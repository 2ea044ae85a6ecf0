// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

// TestYAMLSource checks catalogs stored as flat YAML mappings.
func TestYAMLSource(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"i18n/de_DE/disk.yaml": &fstest.MapFile{Data: []byte("Mount failed: Einhängen fehlgeschlagen\n")},
		"i18n/fr_FR/disk.yml":  &fstest.MapFile{Data: []byte("Mount failed: Échec du montage\n")},
		"i18n/it_IT/disk.yaml": &fstest.MapFile{Data: []byte("{ broken\n")},
		"i18n/nl_NL/disk.yaml": &fstest.MapFile{Data: []byte("")},
	}

	src := NewYAMLFS(fsys, "i18n")

	t.Run("Open", func(t *testing.T) {
		t.Parallel()

		c, ok := src.Open("disk", "de_DE")
		if !ok {
			t.Fatal("expected catalog")
		}

		if text, _ := c.Lookup("Mount failed"); text != "Einhängen fehlgeschlagen" {
			t.Errorf("expected translation, got %q", text)
		}
	})

	t.Run("YmlExtensionAccepted", func(t *testing.T) {
		t.Parallel()

		c, ok := src.Open("disk", "fr_FR")
		if !ok {
			t.Fatal("expected catalog from the .yml file")
		}

		if text, _ := c.Lookup("Mount failed"); text != "Échec du montage" {
			t.Errorf("expected translation, got %q", text)
		}
	})

	t.Run("MalformedFileReportsNoCatalog", func(t *testing.T) {
		t.Parallel()

		if _, ok := src.Open("disk", "it_IT"); ok {
			t.Error("expected no catalog from a malformed file")
		}
	})

	t.Run("EmptyFileReportsNoCatalog", func(t *testing.T) {
		t.Parallel()

		if _, ok := src.Open("disk", "nl_NL"); ok {
			t.Error("expected no catalog from an empty file")
		}
	})

	t.Run("Probe", func(t *testing.T) {
		t.Parallel()

		if !src.Probe("disk", "de_DE") {
			t.Error("expected a probe hit")
		}

		if src.Probe("disk", "ja_JP") {
			t.Error("expected a probe miss")
		}
	})
}

// TestYAMLSourceOSDirectory checks the OS-filesystem constructor.
func TestYAMLSourceOSDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(dir, "de_DE"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	data := []byte("stop: halt\n")
	if err := os.WriteFile(filepath.Join(dir, "de_DE", "disk.yaml"), data, 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	src := NewYAMLSource(dir)

	c, ok := src.Open("disk", "de_DE")
	if !ok {
		t.Fatal("expected catalog")
	}

	if text, _ := c.Lookup("stop"); text != "halt" {
		t.Errorf("expected translation, got %q", text)
	}

	if _, ok := NewYAMLSource("").Open("disk", "de_DE"); ok {
		t.Error("expected an empty directory to disable lookups")
	}
}
