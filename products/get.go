package products

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"vitrina/db"
	"vitrina/models"
	"vitrina/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProducts lists the catalog with pagination, search and filters.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	filter := BuildFilter(opts)

	total, err := db.ProductCollection.CountDocuments(ctx, filter)
	if err != nil {
		log.Println("GetProducts count error:", err)
		http.Error(w, "Could not retrieve products", http.StatusInternalServerError)
		return
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := db.ProductCollection.Find(ctx, filter, findOpts)
	if err != nil {
		log.Println("GetProducts Find error:", err)
		http.Error(w, "Could not retrieve products", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var items []models.Product
	if err := cursor.All(ctx, &items); err != nil {
		log.Println("GetProducts cursor.All error:", err)
		http.Error(w, "Error reading product data", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, paginate(items, total, opts))
}

// paginate wraps one page of results in the envelope the tables consume.
func paginate(items []models.Product, total int64, opts utils.QueryOptions) models.ProductsResponse {
	if items == nil {
		items = []models.Product{}
	}
	totalPages := utils.TotalPages(total, opts.Limit)
	return models.ProductsResponse{
		Products:      items,
		TotalProducts: total,
		Page:          opts.Page,
		Limit:         opts.Limit,
		TotalPages:    totalPages,
		HasNextPage:   opts.Page < totalPages,
		HasPrevPage:   opts.Page > 1,
	}
}

// GetProduct returns one product by id.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": ps.ByName("productid")}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		log.Println("GetProduct FindOne error:", err)
		http.Error(w, "Could not retrieve product", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]models.Product{"product": product})
}
