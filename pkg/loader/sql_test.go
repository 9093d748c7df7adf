package loader

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var mockColumns = []string{
	"tenant_id", "version", "code", "name", "description", "object_type",
	"code", "data_class", "value_type", "unit", "status", "source",
}

func TestSQLSource_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows(mockColumns).
		AddRow("t1", 1, "company", "Company", nil, "entity", nil, nil, nil, nil, "active", "manual").
		AddRow("t1", 3, "company.base.name", "Name", "legal name", "feature", "company", "text", "string", nil, "active", "manual")
	mock.ExpectQuery(`(?s)FROM biz_metadata m\s+LEFT JOIN biz_metadata p ON p.id = m.parent_id.*deleted_at IS NULL AND m.tenant_id = \$1`).
		WithArgs("t1").
		WillReturnRows(rows)

	src := NewSQLSource(db, DialectPostgres, "postgres://db/dict")
	records, err := src.Load(context.Background(), "t1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	name := records[1]
	if name.ParentCode != "company" || name.Version != 3 || name.ValueType != "string" {
		t.Errorf("record = %+v", name)
	}
	if name.Origin.File != "postgres://db/dict" || name.Origin.Line != 2 {
		t.Errorf("Origin = %v", name.Origin)
	}
	if records[0].Description != "" || records[0].ParentCode != "" {
		t.Errorf("NULL columns not empty: %+v", records[0])
	}

	if err := src.Close(); err != nil {
		t.Errorf("Close() on borrowed db = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSQLSource_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM biz_metadata`).WillReturnError(sql.ErrConnDone)

	_, err = NewSQLSource(db, DialectPostgres, "pg").Load(context.Background(), "")
	if err == nil {
		t.Fatal("Load() error = nil")
	}
	srcErr, ok := err.(*SourceError)
	if !ok || srcErr.Op != "query" {
		t.Errorf("Load() error = %v, want query SourceError", err)
	}
}

func TestSQLSource_SQLiteSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	stmts := []string{
		`CREATE TABLE biz_metadata (
			id INTEGER PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			version INTEGER NOT NULL,
			code TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			object_type TEXT NOT NULL,
			parent_id INTEGER,
			data_class TEXT,
			value_type TEXT,
			unit TEXT,
			status TEXT NOT NULL,
			source TEXT NOT NULL,
			deleted_at TEXT
		)`,
		`INSERT INTO biz_metadata VALUES (1, 't1', 1, 'company', 'Company', NULL, 'entity', NULL, NULL, NULL, NULL, 'active', 'manual', NULL)`,
		`INSERT INTO biz_metadata VALUES (2, 't1', 1, 'company.base.id.uscc', 'USCC', NULL, 'feature', 1, 'identifier', 'string', NULL, 'active', 'manual', NULL)`,
		`INSERT INTO biz_metadata VALUES (3, 't1', 1, 'company.old', 'Old', NULL, 'feature', 1, 'text', 'string', NULL, 'active', 'manual', '2025-01-01')`,
		`INSERT INTO biz_metadata VALUES (4, 't2', 1, 'person', 'Person', NULL, 'entity', NULL, NULL, NULL, NULL, 'active', 'manual', NULL)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
	db.Close()

	src, err := OpenSQL(context.Background(), "sqlite://"+path)
	if err != nil {
		t.Fatalf("OpenSQL() error = %v", err)
	}
	defer src.Close()

	all, err := src.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3 live rows", len(all))
	}

	t1, err := src.Load(context.Background(), "t1")
	if err != nil {
		t.Fatalf("Load(t1) error = %v", err)
	}
	if len(t1) != 2 {
		t.Fatalf("len(t1) = %d, want 2", len(t1))
	}
	if t1[1].Code != "company.base.id.uscc" || t1[1].ParentCode != "company" {
		t.Errorf("t1[1] = %+v", t1[1])
	}

	res, err := Load(context.Background(), Options{DSN: "sqlite://" + path, Tenant: "t2"})
	if err != nil {
		t.Fatalf("Load(DSN) error = %v", err)
	}
	if len(res.Records) != 1 || res.Records[0].Code != "person" {
		t.Errorf("Load(DSN) records = %+v", res.Records)
	}
}

func TestParseDSN(t *testing.T) {
	tests := []struct {
		dsn         string
		wantDialect Dialect
		wantSource  string
		wantErr     bool
	}{
		{"postgres://u:p@localhost/dict?sslmode=disable", DialectPostgres, "postgres://u:p@localhost/dict?sslmode=disable", false},
		{"postgresql://localhost/dict", DialectPostgres, "postgresql://localhost/dict", false},
		{"sqlite:///var/lib/dict.db", DialectSQLite, "/var/lib/dict.db", false},
		{"sqlite3://dict.db", DialectSQLite3, "dict.db", false},
		{"mysql://localhost/dict", "", "", true},
		{"dict.db", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			d, src, err := ParseDSN(tt.dsn)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDSN() error = %v, wantErr %v", err, tt.wantErr)
			}
			if d != tt.wantDialect || src != tt.wantSource {
				t.Errorf("ParseDSN() = %q, %q, want %q, %q", d, src, tt.wantDialect, tt.wantSource)
			}
		})
	}
}

func TestRedactDSN(t *testing.T) {
	got := redactDSN("postgres://gate:secret@db:5432/dict")
	if got != "postgres://gate:xxxxx@db:5432/dict" {
		t.Errorf("redactDSN() = %q", got)
	}
	if redactDSN("sqlite:///tmp/a.db") != "sqlite:///tmp/a.db" {
		t.Error("redactDSN() changed a DSN without credentials")
	}
}

func TestDialect_Placeholder(t *testing.T) {
	if DialectPostgres.placeholder(1) != "$1" || DialectSQLite.placeholder(1) != "?" {
		t.Error("placeholder mismatch")
	}
	if DialectSQLite3.driverName() != "sqlite3" || DialectSQLite.driverName() != "sqlite" {
		t.Error("driverName mismatch")
	}
}
