package repo

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
	"github.com/light-bringer/discovery-service/internal/models/m_product"
	"github.com/light-bringer/discovery-service/internal/models/m_product_attribute"
	"github.com/light-bringer/discovery-service/internal/models/m_product_category"
	"github.com/light-bringer/discovery-service/internal/pkg/query"
)

var sortColumns = map[domain.SortField]string{
	domain.SortFieldPosition: m_product.Position,
	domain.SortFieldName:     m_product.Name,
	domain.SortFieldPrice:    m_product.Price,
}

// productConditions translates the filter and search term into WHERE
// conditions on the products table. Keys are visited in sorted order so the
// rendered SQL is stable.
func productConditions(q *domain.DiscoveryQuery, logger *zap.Logger) []query.Condition {
	var conditions []query.Condition

	keys := make([]string, 0, len(q.Filter))
	for key := range q.Filter {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		cond := q.Filter[key]
		var c query.Condition
		switch key {
		case domain.AttrCategoryUID:
			c = categoryCondition(cond)
		case domain.AttrName:
			c = columnCondition(m_product.Name, cond)
		case domain.AttrPrice:
			c = priceCondition(cond, logger)
		default:
			c = attributeCondition(key, cond)
		}
		if c == nil {
			logger.Warn("ignoring unsupported filter condition",
				zap.String("attribute", key),
				zap.Stringer("kind", cond.Kind))
			continue
		}
		conditions = append(conditions, c)
	}

	if term := q.SearchTerm(); term != "" {
		pattern := query.Contains(strings.ToLower(term))
		conditions = append(conditions, query.Or(
			query.Like("LOWER("+m_product.Name+")", pattern),
			query.Like("LOWER("+m_product.SKU+")", pattern),
		))
	}

	return conditions
}

// categoryCondition restricts products to those assigned to the given
// category uids through product_categories.
func categoryCondition(cond domain.FilterCondition) query.Condition {
	sub := query.From(m_product_category.TableName).Select(m_product_category.ProductUID)
	switch cond.Kind {
	case domain.ConditionEq:
		sub = sub.Where(query.Eq(m_product_category.CategoryUID, cond.Value))
	case domain.ConditionIn:
		sub = sub.Where(query.In(m_product_category.CategoryUID, cond.Values))
	default:
		return nil
	}
	return query.InSubquery(m_product.ProductUID, sub)
}

// columnCondition matches a string column on the products table.
func columnCondition(column string, cond domain.FilterCondition) query.Condition {
	switch cond.Kind {
	case domain.ConditionEq:
		return query.Eq(column, cond.Value)
	case domain.ConditionIn:
		return query.In(column, cond.Values)
	case domain.ConditionMatch:
		return query.Like("LOWER("+column+")", query.Contains(strings.ToLower(cond.Value)))
	default:
		return nil
	}
}

// priceCondition renders the decimal sides of a price range. Open and
// malformed sides add no constraint; malformed ones are logged.
func priceCondition(cond domain.FilterCondition, logger *zap.Logger) query.Condition {
	if cond.Kind != domain.ConditionRange {
		return nil
	}

	var sides []query.Condition
	for _, side := range []struct {
		bound domain.PriceBound
		build func(string, interface{}) query.Condition
		name  string
	}{
		{cond.From, query.Gte, "from"},
		{cond.To, query.Lte, "to"},
	} {
		if side.bound.IsMalformed() {
			logger.Warn("ignoring malformed price bound",
				zap.String("side", side.name),
				zap.String("raw", side.bound.Raw()))
			continue
		}
		if d, ok := side.bound.Decimal(); ok {
			sides = append(sides, side.build(m_product.Price, d.Rat()))
		}
	}

	return query.And(sides...)
}

// attributeCondition restricts products through product_attributes rows
// for one attribute code.
func attributeCondition(code string, cond domain.FilterCondition) query.Condition {
	sub := query.From(m_product_attribute.TableName).
		Select(m_product_attribute.ProductUID).
		Where(query.Eq(m_product_attribute.AttributeCode, code))

	switch cond.Kind {
	case domain.ConditionEq:
		sub = sub.Where(query.Eq(m_product_attribute.Value, cond.Value))
	case domain.ConditionIn:
		sub = sub.Where(query.In(m_product_attribute.Value, cond.Values))
	case domain.ConditionMatch:
		sub = sub.Where(query.Like("LOWER("+m_product_attribute.Value+")", query.Contains(strings.ToLower(cond.Value))))
	default:
		return nil
	}
	return query.InSubquery(m_product.ProductUID, sub)
}

// sortOrder returns the column and direction for a sort spec, defaulting to
// catalog position.
func sortOrder(spec domain.SortSpec) (string, query.Direction) {
	column, ok := sortColumns[spec.Field]
	if !ok {
		column = m_product.Position
	}
	if spec.Direction == domain.SortDesc {
		return column, query.Desc
	}
	return column, query.Asc
}
