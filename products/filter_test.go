package products

import (
	"testing"

	"vitrina/utils"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func f64(v float64) *float64 { return &v }

func TestBuildFilterEmpty(t *testing.T) {
	filter := BuildFilter(utils.QueryOptions{Page: 1, Limit: 10})
	assert.Empty(t, filter)
}

func TestBuildFilterSearchMatchesNameAndCode(t *testing.T) {
	filter := BuildFilter(utils.QueryOptions{Search: "vib"})

	or, ok := filter["$or"].([]bson.M)
	assert.True(t, ok)
	assert.Len(t, or, 2)
}

func TestBuildFilterStatus(t *testing.T) {
	assert.Equal(t, true, BuildFilter(utils.QueryOptions{Status: "active"})["available"])
	assert.Equal(t, false, BuildFilter(utils.QueryOptions{Status: "inactive"})["available"])
	_, present := BuildFilter(utils.QueryOptions{Status: "all"})["available"]
	assert.False(t, present)
}

func TestBuildFilterPriceRange(t *testing.T) {
	filter := BuildFilter(utils.QueryOptions{MinPrice: f64(10), MaxPrice: f64(99.5)})

	price, ok := filter["price"].(bson.M)
	assert.True(t, ok)
	assert.Equal(t, 10.0, price["$gte"])
	assert.Equal(t, 99.5, price["$lte"])

	filter = BuildFilter(utils.QueryOptions{MinPrice: f64(5)})
	price = filter["price"].(bson.M)
	_, hasMax := price["$lte"]
	assert.False(t, hasMax)
}

func TestBuildFilterCategory(t *testing.T) {
	filter := BuildFilter(utils.QueryOptions{Category: "lenceria"})
	assert.Equal(t, "lenceria", filter["category"])
}
