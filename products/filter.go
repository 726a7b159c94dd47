package products

import (
	"vitrina/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BuildFilter translates the table's query options into a Mongo filter.
func BuildFilter(opts utils.QueryOptions) bson.M {
	filter := bson.M{}

	if opts.Search != "" {
		regex := primitive.Regex{Pattern: opts.Search, Options: "i"}
		filter["$or"] = []bson.M{
			{"name": regex},
			{"code": regex},
		}
	}

	if opts.Category != "" {
		filter["category"] = opts.Category
	}

	switch opts.Status {
	case "active":
		filter["available"] = true
	case "inactive":
		filter["available"] = false
	}

	price := bson.M{}
	if opts.MinPrice != nil {
		price["$gte"] = *opts.MinPrice
	}
	if opts.MaxPrice != nil {
		price["$lte"] = *opts.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	return filter
}
