package record

// ObjectType is the kind of business concept a record declares.
type ObjectType string

const (
	ObjectTypeEntity   ObjectType = "entity"
	ObjectTypeEvent    ObjectType = "event"
	ObjectTypeRelation ObjectType = "relation"
	ObjectTypeDocument ObjectType = "document"
	ObjectTypeFeature  ObjectType = "feature"
)

// ObjectTypes lists the valid object types.
var ObjectTypes = []ObjectType{
	ObjectTypeEntity, ObjectTypeEvent, ObjectTypeRelation, ObjectTypeDocument, ObjectTypeFeature,
}

// IsValid reports whether t is one of ObjectTypes.
func (t ObjectType) IsValid() bool {
	return contains(ObjectTypes, t)
}

// Status is the lifecycle state of a record.
type Status string

const (
	StatusActive     Status = "active"
	StatusDeprecated Status = "deprecated"
)

// Statuses lists the valid statuses.
var Statuses = []Status{StatusActive, StatusDeprecated}

// IsValid reports whether s is one of Statuses.
func (s Status) IsValid() bool {
	return contains(Statuses, s)
}

// Source records how an entry entered the dictionary.
type Source string

const (
	SourceManual   Source = "manual"
	SourceAutoMine Source = "auto_mine"
	SourceAPISync  Source = "api_sync"
)

// Sources lists the valid sources.
var Sources = []Source{SourceManual, SourceAutoMine, SourceAPISync}

// IsValid reports whether s is one of Sources.
func (s Source) IsValid() bool {
	return contains(Sources, s)
}

// DataClass classifies a feature.
type DataClass string

const (
	DataClassAttribute  DataClass = "attribute"
	DataClassMetric     DataClass = "metric"
	DataClassText       DataClass = "text"
	DataClassObject     DataClass = "object"
	DataClassArray      DataClass = "array"
	DataClassIdentifier DataClass = "identifier"
)

// DataClasses lists the valid data classes.
var DataClasses = []DataClass{
	DataClassAttribute, DataClassMetric, DataClassText, DataClassObject, DataClassArray, DataClassIdentifier,
}

// IsValid reports whether c is one of DataClasses.
func (c DataClass) IsValid() bool {
	return contains(DataClasses, c)
}

// Strings converts a typed enum list to plain strings.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
