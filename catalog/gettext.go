// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/leonelquinteros/gotext"
)

// catalogExtensions lists recognised gettext file suffixes in precedence
// order. The .zst variants hold zstd-compressed catalog bytes.
var catalogExtensions = []string{".po", ".mo", ".po.zst", ".mo.zst"}

// GettextSource loads GNU gettext catalogs laid out in the conventional
// directory structure:
//
//	<dir>/<locale>/LC_MESSAGES/<domain>.po
//
// with .mo, .po.zst, and .mo.zst accepted alongside .po. For OS-backed
// sources the base directory may be overridden per domain through the
// <DOMAIN>_LOCALEDIR environment variable (for example MYAPP_LOCALEDIR
// for the "myapp" domain); sources backed by an [fs.FS] ignore the
// override since it names an OS path.
type GettextSource struct {
	fsys fs.FS // nil means read from the OS filesystem
	dir  string
	dec  *zstd.Decoder
}

// NewGettextSource returns a source reading catalogs under dir on the OS
// filesystem. An empty dir disables lookups unless a per-domain
// environment override is set.
func NewGettextSource(dir string) *GettextSource {
	return &GettextSource{dir: dir, dec: newZstdDecoder()}
}

// NewGettextFS returns a source reading catalogs from fsys, rooted at dir
// within it. Pass "." to read from the root of fsys.
func NewGettextFS(fsys fs.FS, dir string) *GettextSource {
	return &GettextSource{fsys: fsys, dir: dir, dec: newZstdDecoder()}
}

// newZstdDecoder creates a reusable decoder for block (stateless)
// operations. A nil reader lets us use DecodeAll without streams.
func newZstdDecoder() *zstd.Decoder {
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))

	return dec
}

// Open loads and parses the catalog for domain and locale.
func (s *GettextSource) Open(domain, locale string) (Catalog, bool) {
	for _, ext := range catalogExtensions {
		p, ok := s.find(domain, locale, ext)
		if !ok {
			continue
		}

		data, err := s.read(p)
		if err != nil {
			Logger.Warn().Err(err).Str("path", p).Msg("Failed to read catalog file")

			continue
		}

		if strings.HasSuffix(ext, ".zst") {
			if s.dec == nil {
				continue
			}

			data, err = s.dec.DecodeAll(data, nil)
			if err != nil {
				Logger.Warn().Err(err).Str("path", p).Msg("Failed to decompress catalog file")

				continue
			}
		}

		var tr translator
		if strings.HasPrefix(ext, ".mo") {
			tr = gotext.NewMo()
		} else {
			tr = gotext.NewPo()
		}

		tr.Parse(data)

		Logger.Debug().
			Str("domain", domain).
			Str("locale", locale).
			Str("path", p).
			Msg("Loaded gettext catalog")

		return &gettextCatalog{tr: tr}, true
	}

	return nil, false
}

// Probe reports whether a catalog file exists for domain and locale
// without parsing it.
func (s *GettextSource) Probe(domain, locale string) bool {
	for _, ext := range catalogExtensions {
		if _, ok := s.find(domain, locale, ext); ok {
			return true
		}
	}

	return false
}

// baseDir resolves the catalog directory for domain, honouring the
// per-domain environment override for OS-backed sources.
func (s *GettextSource) baseDir(domain string) string {
	if s.fsys == nil {
		if dir := os.Getenv(localeDirEnv(domain)); dir != "" {
			return dir
		}
	}

	return s.dir
}

// localeDirEnv returns the name of the environment variable carrying the
// catalog directory override for domain.
func localeDirEnv(domain string) string {
	return strings.ToUpper(domain) + "_LOCALEDIR"
}

// find returns the path of the catalog file for domain, locale, and ext,
// if one exists.
func (s *GettextSource) find(domain, locale, ext string) (string, bool) {
	if s.fsys != nil {
		p := path.Join(s.dir, locale, "LC_MESSAGES", domain+ext)
		if fi, err := fs.Stat(s.fsys, p); err == nil && !fi.IsDir() {
			return p, true
		}

		return "", false
	}

	base := s.baseDir(domain)
	if base == "" {
		return "", false
	}

	p := filepath.Join(base, locale, "LC_MESSAGES", domain+ext)
	if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
		return p, true
	}

	return "", false
}

func (s *GettextSource) read(p string) ([]byte, error) {
	if s.fsys != nil {
		return fs.ReadFile(s.fsys, p)
	}

	return os.ReadFile(p) // #nosec G304 -- path is derived from source configuration
}

// translator is the slice of the gotext API the catalog needs: plain
// lookups plus the introspection that tells a real translation from the
// msgid echo gotext produces for untranslated entries. *gotext.Po and
// *gotext.Mo both satisfy it.
type translator interface {
	gotext.Translator
	gotext.IsTranslatedIntrospector
}

var (
	_ translator = (*gotext.Po)(nil)
	_ translator = (*gotext.Mo)(nil)
)

// gettextCatalog adapts a gotext translator to the Catalog interface.
// gotext guards its internal state, so concurrent lookups are safe.
type gettextCatalog struct {
	tr translator
}

func (c *gettextCatalog) Lookup(msgid string) (string, bool) {
	if !c.tr.IsTranslated(msgid) {
		return "", false
	}

	return c.tr.Get(msgid), true
}
