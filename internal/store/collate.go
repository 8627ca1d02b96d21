package store

import (
	"database/sql"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// driverName identifies the sqlite3 driver variant carrying the
// foldcase collation. Registered once at package init.
const driverName = "sqlite3_foldcase"

// Collation used by every case-insensitive lookup. Unlike SQLite's
// built-in NOCASE, which folds ASCII only, foldcase folds both sides
// with the full Unicode case fold, so "Köln" matches "KÖLN" and
// "Straße" matches "STRASSE" regardless of how the row was stored.
const foldCollation = "foldcase"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterCollation(foldCollation, collateFoldcase)
		},
	})
}

// Fold canonicalizes text for comparison: NFC normalization followed by
// a Unicode case fold. It is the single normalization policy behind the
// foldcase collation; queries bind raw values and let the collation
// apply Fold to both the bound value and the stored one.
//
// A Caser is not safe for concurrent use, so one is built per call.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

func collateFoldcase(a, b string) int {
	return strings.Compare(Fold(a), Fold(b))
}
