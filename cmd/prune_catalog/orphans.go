package main

import (
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/discovery-service/internal/models/m_category"
	"github.com/light-bringer/discovery-service/internal/models/m_product"
	"github.com/light-bringer/discovery-service/internal/models/m_product_attribute"
	"github.com/light-bringer/discovery-service/internal/models/m_product_category"
)

// orphanTarget names rows whose referenced product or category is gone.
type orphanTarget struct {
	name  string
	table string
	where string
}

func notIn(column, table, key string) string {
	return fmt.Sprintf("%s NOT IN (SELECT %s FROM %s)", column, key, table)
}

var orphanTargets = []orphanTarget{
	{
		name:  "category assignments",
		table: m_product_category.TableName,
		where: notIn(m_product_category.ProductUID, m_product.TableName, m_product.ProductUID) +
			" OR " + notIn(m_product_category.CategoryUID, m_category.TableName, m_category.CategoryUID),
	},
	{
		name:  "attribute values",
		table: m_product_attribute.TableName,
		where: notIn(m_product_attribute.ProductUID, m_product.TableName, m_product.ProductUID),
	},
	{
		// parents deleted out from under their children surface as roots
		name:  "dangling category parents",
		table: m_category.TableName,
		where: m_category.ParentUID + " IS NOT NULL AND " +
			notIn(m_category.ParentUID, m_category.TableName, m_category.CategoryUID),
	},
}

func (o orphanTarget) countStatement() spanner.Statement {
	return spanner.Statement{SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", o.table, o.where)}
}

// deleteStatement removes orphans, except dangling parents which are
// detached instead so the category itself survives as a root.
func (o orphanTarget) deleteStatement() spanner.Statement {
	if o.table == m_category.TableName {
		return spanner.Statement{SQL: fmt.Sprintf("UPDATE %s SET %s = NULL WHERE %s", o.table, m_category.ParentUID, o.where)}
	}
	return spanner.Statement{SQL: fmt.Sprintf("DELETE FROM %s WHERE %s", o.table, o.where)}
}
