package e2e

import (
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/discovery-service/tests/testutil"
)

// Catalog holds the uids of the seeded demo catalog.
type Catalog struct {
	Camping, Tents, Bags, Kayaks string
	Products                     map[string]string // sku -> uid
}

// seedCatalog writes a small rental catalog:
//
//	camping
//	  tents: TENT-2P (19.50), TENT-4P (34.00), TENT-UL (49.00)
//	  sleeping-bags: BAG-MUMMY (9.90)
//	kayaks: KAYAK-SOLO (45.00)
func seedCatalog(t *testing.T, client *spanner.Client) *Catalog {
	t.Helper()

	b := testutil.NewCatalogBuilder()
	c := &Catalog{Products: map[string]string{}}
	c.Camping = b.Category("", "camping", "camping", "Camping", 0)
	c.Tents = b.Category(c.Camping, "tents", "camping/tents", "Tents", 0)
	c.Bags = b.Category(c.Camping, "sleeping-bags", "camping/sleeping-bags", "Sleeping Bags", 1)
	c.Kayaks = b.Category("", "kayaks", "kayaks", "Kayaks", 1)

	add := func(sku, name string, cents int64, category string, colors ...string) {
		uid := b.Product(sku, name, cents, 100)
		b.Assign(uid, category)
		for _, color := range colors {
			b.Attribute(uid, "color", color)
		}
		c.Products[sku] = uid
	}
	add("TENT-2P", "Trail Tent 2P", 1950, c.Tents, "green")
	add("TENT-4P", "Family Tent 4P", 3400, c.Tents, "blue", "green")
	add("TENT-UL", "Ultralight Tent", 4900, c.Tents, "orange")
	add("BAG-MUMMY", "Mummy Sleeping Bag", 990, c.Bags, "red")
	add("KAYAK-SOLO", "Solo Kayak", 4500, c.Kayaks, "red")

	b.Commit(t, client)
	return c
}

// RequestBuilder helps create gRPC request documents with a fluent interface
type RequestBuilder struct {
	path   string
	params map[string]interface{}
}

// NewRequestBuilder creates a builder for an unscoped request.
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{params: map[string]interface{}{}}
}

// WithPath sets the category path, e.g. "camping/tents".
func (b *RequestBuilder) WithPath(path string) *RequestBuilder {
	b.path = path
	return b
}

// WithParam sets one query parameter.
func (b *RequestBuilder) WithParam(key string, value interface{}) *RequestBuilder {
	b.params[key] = value
	return b
}

// Build creates the request document.
func (b *RequestBuilder) Build(t *testing.T) *structpb.Struct {
	t.Helper()

	fields := map[string]interface{}{"params": b.params}
	if b.path != "" {
		fields["path"] = b.path
	}
	req, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return req
}
