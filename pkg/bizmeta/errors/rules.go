package errors

// RuleID is the stable identifier reported with every violation.
type RuleID string

const (
	RuleBasicRequiredMissing RuleID = "BASIC_REQUIRED_MISSING"
	RuleBasicVersionInvalid  RuleID = "BASIC_VERSION_INVALID"

	RuleEnumObjectType RuleID = "ENUM_OBJECT_TYPE"
	RuleEnumStatus     RuleID = "ENUM_STATUS"
	RuleEnumSource     RuleID = "ENUM_SOURCE"
	RuleEnumDataClass  RuleID = "ENUM_DATA_CLASS"

	RuleCodeFormat       RuleID = "CODE_FORMAT"
	RuleUniqueTenantCode RuleID = "UNIQUE_TENANT_CODE"

	RuleScopeNonFeatureHasType  RuleID = "SCOPE_NON_FEATURE_HAS_TYPE"
	RuleScopeFeatureMissingType RuleID = "SCOPE_FEATURE_MISSING_TYPE"

	RuleTypeSyntaxInvalid RuleID = "TYPE_SYNTAX_INVALID"

	RuleTypeRefNotFound         RuleID = "TYPE_REF_NOT_FOUND"
	RuleTypeRefCycle            RuleID = "TYPE_REF_CYCLE"
	RuleTypeRefTooDeep          RuleID = "TYPE_REF_TOO_DEEP"
	RuleTypeRefResolvedInvalid  RuleID = "TYPE_REF_RESOLVED_INVALID"
	RuleTypeRefTargetNotFeature RuleID = "TYPE_REF_TARGET_NOT_FEATURE"
	RuleTypeRefTargetNotActive  RuleID = "TYPE_REF_TARGET_NOT_ACTIVE"
	RuleTypeRefTargetNoType     RuleID = "TYPE_REF_TARGET_NO_TYPE"

	RuleUnitNotAllowed RuleID = "UNIT_NOT_ALLOWED"

	RuleIdentifierUnitNotEmpty RuleID = "IDENTIFIER_UNIT_NOT_EMPTY"
	RuleIdentifierValueType    RuleID = "IDENTIFIER_VALUE_TYPE"
	RuleIdentifierCodePattern  RuleID = "IDENTIFIER_CODE_PATTERN"

	RuleHierarchyParentMissing RuleID = "HIERARCHY_PARENT_MISSING"
	RuleHierarchyParentPrefix  RuleID = "HIERARCHY_PARENT_PREFIX"

	RuleCompletenessObjectChildrenMissing RuleID = "COMPLETENESS_OBJECT_CHILDREN_MISSING"
	RuleCompletenessArrayItemsMissing     RuleID = "COMPLETENESS_ARRAY_OBJECT_ITEMS_MISSING"
)

// Category groups rule IDs by the kind of problem they describe.
type Category string

const (
	CategoryField        Category = "field"        // Required fields, enums, naming
	CategoryScope        Category = "scope"        // Type fields against object_type
	CategorySyntax       Category = "syntax"       // Malformed type expression
	CategoryReference    Category = "reference"    // TypeRef graph problems
	CategoryConsistency  Category = "consistency"  // Uniqueness and hierarchy within the batch
	CategoryCompleteness Category = "completeness" // Publish-only structural coverage
)

// RuleInfo describes a rule ID for listings and documentation.
type RuleInfo struct {
	ID          RuleID
	Category    Category
	Description string
}

// Catalog lists every rule ID in report order.
var Catalog = []RuleInfo{
	{RuleBasicRequiredMissing, CategoryField, "required field is empty"},
	{RuleBasicVersionInvalid, CategoryField, "version must be a positive integer"},
	{RuleEnumObjectType, CategoryField, "object_type outside entity/event/relation/document/feature"},
	{RuleEnumStatus, CategoryField, "status outside active/deprecated"},
	{RuleEnumSource, CategoryField, "source outside manual/auto_mine/api_sync"},
	{RuleEnumDataClass, CategoryField, "data_class outside attribute/metric/text/object/array/identifier"},
	{RuleCodeFormat, CategoryField, "code must be dot-separated snake_case"},
	{RuleUniqueTenantCode, CategoryConsistency, "duplicate (tenant_id, code) in batch"},
	{RuleScopeNonFeatureHasType, CategoryScope, "non-feature carries data_class/value_type/unit"},
	{RuleScopeFeatureMissingType, CategoryScope, "feature lacks data_class or value_type"},
	{RuleTypeSyntaxInvalid, CategorySyntax, "value_type does not match the type grammar"},
	{RuleTypeRefNotFound, CategoryReference, "ref target absent from batch"},
	{RuleTypeRefCycle, CategoryReference, "ref chain revisits a code"},
	{RuleTypeRefTooDeep, CategoryReference, "ref chain longer than the depth limit"},
	{RuleTypeRefResolvedInvalid, CategoryReference, "resolved type violates the type grammar"},
	{RuleTypeRefTargetNotFeature, CategoryReference, "ref target is not a feature"},
	{RuleTypeRefTargetNotActive, CategoryReference, "ref target is not active"},
	{RuleTypeRefTargetNoType, CategoryReference, "ref target has no value_type"},
	{RuleUnitNotAllowed, CategoryField, "unit set on a non-metric feature"},
	{RuleIdentifierUnitNotEmpty, CategoryField, "identifier carries a unit"},
	{RuleIdentifierValueType, CategoryField, "identifier type is not string, int or int|string"},
	{RuleIdentifierCodePattern, CategoryField, "identifier code must end with .id.<id_type>"},
	{RuleHierarchyParentMissing, CategoryConsistency, "parent_code not found in tenant"},
	{RuleHierarchyParentPrefix, CategoryConsistency, "code does not start with parent_code + '.'"},
	{RuleCompletenessObjectChildrenMissing, CategoryCompleteness, "json<object:S> has no S.* fields"},
	{RuleCompletenessArrayItemsMissing, CategoryCompleteness, "json<array:object> has no <code>.item.* fields"},
}

// Lookup returns the catalog entry for id.
func Lookup(id RuleID) (RuleInfo, bool) {
	for _, info := range Catalog {
		if info.ID == id {
			return info, true
		}
	}
	return RuleInfo{}, false
}

// Category returns the category of a known rule ID, or "" if unknown.
func (id RuleID) Category() Category {
	info, _ := Lookup(id)
	return info.Category
}

// IsKnown reports whether id appears in the catalog.
func (id RuleID) IsKnown() bool {
	_, ok := Lookup(id)
	return ok
}
