package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/light-bringer/discovery-service/internal/models/m_category"
	"github.com/light-bringer/discovery-service/internal/models/m_product"
	"github.com/light-bringer/discovery-service/internal/models/m_product_attribute"
	"github.com/light-bringer/discovery-service/internal/models/m_product_category"
	"github.com/light-bringer/discovery-service/internal/pkg/committer"
)

// uid namespaces keep generated ids stable across runs so reseeding
// upserts instead of duplicating.
var (
	categoryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("discovery:category"))
	productNamespace  = uuid.NewSHA1(uuid.NameSpaceURL, []byte("discovery:product"))
)

type fixture struct {
	Categories []categoryFixture `yaml:"categories"`
	Products   []productFixture  `yaml:"products"`
}

type categoryFixture struct {
	UID      string            `yaml:"uid"`
	Key      string            `yaml:"key"`
	Name     string            `yaml:"name"`
	Children []categoryFixture `yaml:"children"`
}

type productFixture struct {
	UID         string              `yaml:"uid"`
	SKU         string              `yaml:"sku"`
	Name        string              `yaml:"name"`
	URLKey      string              `yaml:"url_key"`
	Price       string              `yaml:"price"`
	Currency    string              `yaml:"currency"`
	RentalUnit  string              `yaml:"rental_unit"`
	StockStatus string              `yaml:"stock_status"`
	Thumbnail   string              `yaml:"thumbnail_url"`
	Categories  []string            `yaml:"categories"`
	Attributes  map[string][]string `yaml:"attributes"`
}

type seedSummary struct {
	Categories  int
	Products    int
	Assignments int
	Attributes  int
}

func loadFixture(r io.Reader) (*fixture, error) {
	var f fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	return &f, nil
}

// buildPlan turns the fixture into upsert mutations. Categories are
// referenced from products by their url path (e.g. "camping/tents").
func buildPlan(f *fixture, reset bool) (*committer.CommitPlan, seedSummary, error) {
	var summary seedSummary
	plan := committer.NewPlan()

	if reset {
		plan.Add(m_product_attribute.NewModel().DeleteAllMut())
		plan.Add(m_product_category.NewModel().DeleteAllMut())
		plan.Add(m_product.NewModel().DeleteAllMut())
		plan.Add(m_category.NewModel().DeleteAllMut())
	}

	categoryModel := m_category.NewModel()
	uidsByPath := make(map[string]string)

	var addCategories func(nodes []categoryFixture, parentUID, parentPath string) error
	addCategories = func(nodes []categoryFixture, parentUID, parentPath string) error {
		for i, node := range nodes {
			key := strings.TrimSpace(node.Key)
			if key == "" || strings.Contains(key, "/") {
				return fmt.Errorf("category %q under %q: key must be a non-empty path segment", node.Name, parentPath)
			}
			path := key
			if parentPath != "" {
				path = parentPath + "/" + key
			}
			if _, dup := uidsByPath[path]; dup {
				return fmt.Errorf("duplicate category path %q", path)
			}

			uid := node.UID
			if uid == "" {
				uid = uuid.NewSHA1(categoryNamespace, []byte(path)).String()
			}
			uidsByPath[path] = uid

			name := node.Name
			if name == "" {
				name = key
			}
			data := &m_category.Data{
				CategoryUID: uid,
				URLKey:      key,
				URLPath:     path,
				Name:        name,
				Position:    int64(i),
			}
			if parentUID != "" {
				data.ParentUID = spanner.NullString{StringVal: parentUID, Valid: true}
			}
			plan.Add(categoryModel.InsertMut(data))
			summary.Categories++

			if err := addCategories(node.Children, uid, path); err != nil {
				return err
			}
		}
		return nil
	}
	if err := addCategories(f.Categories, "", ""); err != nil {
		return nil, summary, err
	}

	productModel := m_product.NewModel()
	assignmentModel := m_product_category.NewModel()
	attributeModel := m_product_attribute.NewModel()
	seenSKUs := make(map[string]bool)

	for i, p := range f.Products {
		if p.SKU == "" {
			return nil, summary, fmt.Errorf("product #%d: sku is required", i+1)
		}
		if seenSKUs[p.SKU] {
			return nil, summary, fmt.Errorf("duplicate sku %q", p.SKU)
		}
		seenSKUs[p.SKU] = true

		data, err := productData(p, int64(i))
		if err != nil {
			return nil, summary, fmt.Errorf("product %s: %w", p.SKU, err)
		}
		plan.Add(productModel.InsertMut(data))
		summary.Products++

		for _, path := range p.Categories {
			categoryUID, ok := uidsByPath[strings.Trim(path, "/")]
			if !ok {
				return nil, summary, fmt.Errorf("product %s: unknown category %q", p.SKU, path)
			}
			plan.Add(assignmentModel.InsertMut(&m_product_category.Data{
				ProductUID:  data.ProductUID,
				CategoryUID: categoryUID,
			}))
			summary.Assignments++
		}

		codes := make([]string, 0, len(p.Attributes))
		for code := range p.Attributes {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			for _, value := range p.Attributes[code] {
				plan.Add(attributeModel.InsertMut(&m_product_attribute.Data{
					ProductUID:    data.ProductUID,
					AttributeCode: code,
					Value:         value,
				}))
				summary.Attributes++
			}
		}
	}

	return plan, summary, nil
}

func productData(p productFixture, position int64) (*m_product.Data, error) {
	uid := p.UID
	if uid == "" {
		uid = uuid.NewSHA1(productNamespace, []byte(p.SKU)).String()
	}
	urlKey := p.URLKey
	if urlKey == "" {
		urlKey = strings.ToLower(p.SKU)
	}
	name := p.Name
	if name == "" {
		name = p.SKU
	}
	stock := p.StockStatus
	if stock == "" {
		stock = "IN_STOCK"
	}

	data := &m_product.Data{
		ProductUID:  uid,
		SKU:         p.SKU,
		Name:        name,
		URLKey:      urlKey,
		Currency:    p.Currency,
		RentalUnit:  p.RentalUnit,
		StockStatus: stock,
		Position:    position,
	}

	if p.Price != "" {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", p.Price, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("price must not be negative, got %s", p.Price)
		}
		data.Price = spanner.NullNumeric{Numeric: *price.Rat(), Valid: true}
	}
	if p.Thumbnail != "" {
		data.ThumbnailURL = spanner.NullString{StringVal: p.Thumbnail, Valid: true}
	}

	return data, nil
}
