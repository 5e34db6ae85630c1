package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSpec_WithCategoryScope(t *testing.T) {
	base := FilterSpec{"color": Eq("red")}

	scoped := base.WithCategoryScope([]string{"c1", "c2"})

	assert.Equal(t, In("c1", "c2"), scoped[AttrCategoryUID])
	assert.NotContains(t, base, AttrCategoryUID, "receiver must not change")

	unscoped := base.WithCategoryScope(nil)
	assert.NotContains(t, unscoped, AttrCategoryUID)
}

func TestFilterSpec_WithNameMatch(t *testing.T) {
	spec := FilterSpec{}.WithNameMatch("kayak")
	assert.Equal(t, Match("kayak"), spec[AttrName])

	assert.Empty(t, FilterSpec{}.WithNameMatch(""))
}

func TestFilterCondition_JSON(t *testing.T) {
	spec := FilterSpec{
		"color":         Eq("red"),
		"size":          In("s", "m"),
		AttrName:        Match("tent"),
		AttrPrice:       Range(dec("20"), OpenBound()),
		AttrCategoryUID: In("c1"),
	}

	data, err := json.Marshal(spec)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"color": {"eq": "red"},
		"size": {"in": ["s", "m"]},
		"name": {"match": "tent"},
		"price": {"from": "20", "to": null},
		"category_uid": {"in": ["c1"]}
	}`, string(data))

	var decoded FilterSpec
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, spec["color"], decoded["color"])
	assert.Equal(t, spec["size"], decoded["size"])
	assert.Equal(t, spec[AttrName], decoded[AttrName])
	assertRange(t, decoded[AttrPrice], dec("20"), OpenBound())
}
