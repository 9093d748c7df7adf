// Package loader materializes dictionary batches from files and databases.
//
// Supported sources:
//
//   - CSV with a header row, UTF-8 with or without BOM.
//   - Markdown documents holding a table whose header names code and
//     object_type.
//   - The biz_metadata table of a PostgreSQL database or a SQLite
//     snapshot, addressed by a postgres://, sqlite:// or sqlite3:// DSN.
//
// Directories are scanned recursively and the resulting file list is
// sorted so that runs are reproducible. Cells reading null, none or nan
// are treated as empty and an unparsable version becomes 0; the gate
// reports both.
package loader
