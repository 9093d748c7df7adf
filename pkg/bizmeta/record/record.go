package record

import (
	"fmt"
	"strconv"
	"strings"
)

// Origin points at the place a record was loaded from.
type Origin struct {
	File string // Source file or DSN
	Line int    // 1-based line (CSV/Markdown) or row number (SQL)
}

// String returns "file:line", or "<unknown>" when no file is known.
func (o Origin) String() string {
	if o.File == "" {
		return "<unknown>"
	}
	if o.Line <= 0 {
		return o.File
	}
	return fmt.Sprintf("%s:%d", o.File, o.Line)
}

// IsValid returns true if the origin has a file.
func (o Origin) IsValid() bool {
	return o.File != ""
}

// Key identifies a record inside a batch.
type Key struct {
	TenantID string
	Code     string
}

// String returns "tenant/code".
func (k Key) String() string {
	return k.TenantID + "/" + k.Code
}

// Record is one biz_metadata dictionary entry.
// Records are built once by a loader and never mutated by the gate.
type Record struct {
	TenantID    string
	Code        string
	Name        string
	Description string
	ObjectType  ObjectType
	ParentCode  string
	Status      Status
	Source      Source
	Version     int

	// Feature-only fields
	DataClass DataClass
	ValueType string
	Unit      string

	// Origin is where the record came from; it is not validated.
	Origin Origin
}

// Key returns the (tenant_id, code) key of the record.
func (r *Record) Key() Key {
	return Key{TenantID: r.TenantID, Code: r.Code}
}

// IsFeature reports whether the record is a typed field.
func (r *Record) IsFeature() bool {
	return r.ObjectType == ObjectTypeFeature
}

// HasTypeFields reports whether any of data_class, value_type or unit is set.
func (r *Record) HasTypeFields() bool {
	return r.DataClass != "" || r.ValueType != "" || r.Unit != ""
}

// Field returns the raw string value of a named column, and whether the
// column name is known. It is used by rules that report on a field by name.
func (r *Record) Field(name string) (string, bool) {
	switch name {
	case ColumnTenantID:
		return r.TenantID, true
	case ColumnCode:
		return r.Code, true
	case ColumnName:
		return r.Name, true
	case ColumnDescription:
		return r.Description, true
	case ColumnObjectType:
		return string(r.ObjectType), true
	case ColumnParentCode:
		return r.ParentCode, true
	case ColumnStatus:
		return string(r.Status), true
	case ColumnSource:
		return string(r.Source), true
	case ColumnVersion:
		return strconv.Itoa(r.Version), true
	case ColumnDataClass:
		return string(r.DataClass), true
	case ColumnValueType:
		return r.ValueType, true
	case ColumnUnit:
		return r.Unit, true
	default:
		return "", false
	}
}

// Column names shared by every loader.
const (
	ColumnTenantID    = "tenant_id"
	ColumnVersion     = "version"
	ColumnCode        = "code"
	ColumnName        = "name"
	ColumnDescription = "description"
	ColumnObjectType  = "object_type"
	ColumnParentCode  = "parent_code"
	ColumnDataClass   = "data_class"
	ColumnValueType   = "value_type"
	ColumnUnit        = "unit"
	ColumnStatus      = "status"
	ColumnSource      = "source"
)

// Columns lists the default input columns in file order.
var Columns = []string{
	ColumnTenantID, ColumnVersion, ColumnCode, ColumnName, ColumnDescription,
	ColumnObjectType, ColumnParentCode, ColumnDataClass, ColumnValueType,
	ColumnUnit, ColumnStatus, ColumnSource,
}

// RequiredColumns are the fields every record must carry.
var RequiredColumns = []string{
	ColumnTenantID, ColumnCode, ColumnName, ColumnObjectType, ColumnStatus, ColumnSource,
}

// Normalize trims a raw cell and maps the textual nulls "null", "none"
// and "nan" (any case) to the empty string.
func Normalize(v string) string {
	s := strings.TrimSpace(v)
	switch strings.ToLower(s) {
	case "null", "none", "nan":
		return ""
	}
	return s
}

// ParseVersion converts a raw version cell to an int. Empty or
// non-numeric input yields 0 so that the version rule reports it.
func ParseVersion(v string) int {
	s := Normalize(v)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// FromRaw builds a Record from a column→cell map as produced by the CSV,
// Markdown and SQL loaders. Unknown columns are ignored and missing
// columns become empty.
func FromRaw(raw map[string]string, origin Origin) Record {
	get := func(col string) string { return Normalize(raw[col]) }
	return Record{
		TenantID:    get(ColumnTenantID),
		Version:     ParseVersion(raw[ColumnVersion]),
		Code:        get(ColumnCode),
		Name:        get(ColumnName),
		Description: get(ColumnDescription),
		ObjectType:  ObjectType(get(ColumnObjectType)),
		ParentCode:  get(ColumnParentCode),
		DataClass:   DataClass(get(ColumnDataClass)),
		ValueType:   get(ColumnValueType),
		Unit:        get(ColumnUnit),
		Status:      Status(get(ColumnStatus)),
		Source:      Source(get(ColumnSource)),
		Origin:      origin,
	}
}
