package query

import "fmt"

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

// cmpCondition implements a binary comparison (field <op> value).
type cmpCondition struct {
	field    string
	operator string
	value    interface{}
}

func (c *cmpCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s %s @%s", c.field, c.operator, paramName)
	params := map[string]interface{}{
		paramName: c.value,
	}
	return sql, params
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("status", "active") generates "status = @p0"
func Eq(field string, value interface{}) Condition {
	return &cmpCondition{field: field, operator: "=", value: value}
}

// Gt creates a strictly-greater-than condition.
// Example: Gt("discount_percent", 50) generates "discount_percent > @p0"
func Gt(field string, value interface{}) Condition {
	return &cmpCondition{field: field, operator: ">", value: value}
}

// Gte creates a greater-than-or-equal condition.
func Gte(field string, value interface{}) Condition {
	return &cmpCondition{field: field, operator: ">=", value: value}
}

// Lt creates a strictly-less-than condition.
func Lt(field string, value interface{}) Condition {
	return &cmpCondition{field: field, operator: "<", value: value}
}

// Lte creates a less-than-or-equal condition.
func Lte(field string, value interface{}) Condition {
	return &cmpCondition{field: field, operator: "<=", value: value}
}

// IsNull creates a WHERE condition for NULL checks.
// Example: IsNull("sale_ends_at") generates "sale_ends_at IS NULL"
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

// isNullCondition implements IS NULL comparison.
type isNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NULL comparison.
func (c *isNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sql := fmt.Sprintf("%s IS NULL", c.field)
	return sql, map[string]interface{}{}
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
// Example: IsNotNull("sale_ends_at") generates "sale_ends_at IS NOT NULL"
func IsNotNull(field string) Condition {
	return &isNotNullCondition{field: field}
}

// isNotNullCondition implements IS NOT NULL comparison.
type isNotNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NOT NULL comparison.
func (c *isNotNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sql := fmt.Sprintf("%s IS NOT NULL", c.field)
	return sql, map[string]interface{}{}
}
