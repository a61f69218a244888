package models

import "database/sql"

// RawApp holds one source row exactly as read from the dataset file.
// Cells holding an NA marker arrive with Valid == false; nothing else is
// interpreted yet.
type RawApp struct {
	App           sql.NullString
	Category      sql.NullString
	Rating        sql.NullString
	Reviews       sql.NullString
	Size          sql.NullString
	Installs      sql.NullString
	ContentRating sql.NullString
}

// AppRecord is the normalized form of a RawApp. Every missing-capable column
// is a sql.Null* value; Valid == false means the source value was absent or
// could not be parsed.
type AppRecord struct {
	App           sql.NullString
	Category      sql.NullString
	Rating        sql.NullFloat64
	Reviews       sql.NullInt64
	SizeMB        sql.NullFloat64
	Installs      sql.NullInt64
	ContentRating sql.NullString
}
