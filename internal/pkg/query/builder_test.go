package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Build(t *testing.T) {
	t.Run("select all from table", func(t *testing.T) {
		stmt := From("catalog_items").Build()

		assert.Equal(t, "SELECT * FROM catalog_items", stmt.SQL)
		assert.Empty(t, stmt.Params)
	})

	t.Run("select columns", func(t *testing.T) {
		stmt := From("catalog_items").Select("item_id", "name").Build()

		assert.Equal(t, "SELECT item_id, name FROM catalog_items", stmt.SQL)
	})

	t.Run("single where condition", func(t *testing.T) {
		stmt := From("catalog_items").Where(Eq("on_sale", true)).Build()

		assert.Equal(t, "SELECT * FROM catalog_items WHERE on_sale = @p0", stmt.SQL)
		assert.Equal(t, true, stmt.Params["p0"])
	})

	t.Run("multiple where conditions combine with AND", func(t *testing.T) {
		stmt := From("catalog_items").
			Where(Eq("on_sale", true)).
			Where(Gt("discount_percent", 50.0)).
			Build()

		assert.Equal(t, "SELECT * FROM catalog_items WHERE on_sale = @p0 AND discount_percent > @p1", stmt.SQL)
		assert.Equal(t, true, stmt.Params["p0"])
		assert.Equal(t, 50.0, stmt.Params["p1"])
	})

	t.Run("range conditions", func(t *testing.T) {
		stmt := From("catalog_items").
			Where(Gte("discount_percent", 11.0)).
			Where(Lte("discount_percent", 30.0)).
			Build()

		assert.Equal(t, "SELECT * FROM catalog_items WHERE discount_percent >= @p0 AND discount_percent <= @p1", stmt.SQL)
		assert.Equal(t, 11.0, stmt.Params["p0"])
		assert.Equal(t, 30.0, stmt.Params["p1"])
	})

	t.Run("null conditions emit no params", func(t *testing.T) {
		stmt := From("catalog_items").
			Where(IsNotNull("sale_starts_at")).
			Where(IsNotNull("sale_ends_at")).
			Where(Eq("on_sale", true)).
			Build()

		assert.Equal(t, "SELECT * FROM catalog_items WHERE sale_starts_at IS NOT NULL AND sale_ends_at IS NOT NULL AND on_sale = @p0", stmt.SQL)
		assert.Len(t, stmt.Params, 1)
	})

	t.Run("order by limit offset", func(t *testing.T) {
		stmt := From("catalog_items").
			OrderBy("updated_at", Desc).
			Limit(20).
			Offset(40).
			Build()

		assert.Equal(t, "SELECT * FROM catalog_items ORDER BY updated_at DESC LIMIT @limit OFFSET @offset", stmt.SQL)
		assert.Equal(t, int64(20), stmt.Params["limit"])
		assert.Equal(t, int64(40), stmt.Params["offset"])
	})

	t.Run("count clears pagination and ordering", func(t *testing.T) {
		stmt := From("catalog_items").
			Where(Lt("created_at", "2026-01-01")).
			OrderBy("created_at", Asc).
			Limit(10).
			Count().
			Build()

		assert.Equal(t, "SELECT COUNT(*) FROM catalog_items WHERE created_at < @p0", stmt.SQL)
	})

	t.Run("builder is immutable", func(t *testing.T) {
		base := From("catalog_items").Where(Eq("on_sale", true))
		withLimit := base.Limit(5)

		assert.NotContains(t, base.Build().SQL, "LIMIT")
		assert.Contains(t, withLimit.Build().SQL, "LIMIT")
	})
}
