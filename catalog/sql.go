// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"database/sql"
	"fmt"
)

// defaultSQLTable is the table queried when none is configured.
const defaultSQLTable = "translations"

// SQLSource reads catalog entries from a SQL table with the columns
// domain, locale, msgid, and msgstr. It works with any database/sql
// driver that accepts ?-style placeholders. The whole (domain, locale)
// slice is read at once, so the resulting catalog is an in-memory
// snapshot like every other source.
type SQLSource struct {
	db    *sql.DB
	table string
}

// NewSQLSource returns a source reading catalog entries from table
// through db. An empty table selects "translations".
func NewSQLSource(db *sql.DB, table string) *SQLSource {
	if table == "" {
		table = defaultSQLTable
	}

	return &SQLSource{db: db, table: table}
}

// Open loads all entries for domain and locale.
func (s *SQLSource) Open(domain, locale string) (Catalog, bool) {
	// The table name comes from source configuration, not callers.
	q := fmt.Sprintf("SELECT msgid, msgstr FROM %s WHERE domain = ? AND locale = ?", s.table) // #nosec G201

	rows, err := s.db.Query(q, domain, locale)
	if err != nil {
		Logger.Warn().Err(err).Str("domain", domain).Str("locale", locale).Msg("Catalog query failed")

		return nil, false
	}
	defer rows.Close()

	entries := make(MapCatalog)

	for rows.Next() {
		var msgid, msgstr string
		if err := rows.Scan(&msgid, &msgstr); err != nil {
			Logger.Warn().Err(err).Str("domain", domain).Str("locale", locale).Msg("Catalog row scan failed")

			return nil, false
		}

		entries[msgid] = msgstr
	}

	if err := rows.Err(); err != nil {
		Logger.Warn().Err(err).Str("domain", domain).Str("locale", locale).Msg("Catalog query failed")

		return nil, false
	}

	if len(entries) == 0 {
		return nil, false
	}

	return entries, true
}

// Probe reports whether any entry exists for domain and locale.
func (s *SQLSource) Probe(domain, locale string) bool {
	q := fmt.Sprintf("SELECT 1 FROM %s WHERE domain = ? AND locale = ? LIMIT 1", s.table) // #nosec G201

	var one int

	return s.db.QueryRow(q, domain, locale).Scan(&one) == nil
}
