package nav

import (
	"context"
	"net/http"
	"time"

	"vitrina/db"
	"vitrina/models"
	"vitrina/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// defaultResolver resolves product and user ids against Mongo.
var defaultResolver = func() *Resolver {
	res := NewResolver()
	res.RegisterLookup("products", func(ctx context.Context, id string) (string, bool) {
		var product models.Product
		if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": id}).Decode(&product); err != nil {
			return "", false
		}
		return product.Name, true
	})
	res.RegisterLookup("users", func(ctx context.Context, id string) (string, bool) {
		var user models.User
		if err := db.UserCollection.FindOne(ctx, bson.M{"userid": id}).Decode(&user); err != nil {
			return "", false
		}
		return user.DisplayName(), true
	})
	res.RegisterLookup("orders", func(ctx context.Context, id string) (string, bool) {
		var order models.Order
		if err := db.OrderCollection.FindOne(ctx, bson.M{"orderId": id}).Decode(&order); err != nil {
			return "", false
		}
		return order.OrderNumber, true
	})
	return res
}()

// GetBreadcrumbs resolves ?path= into a breadcrumb trail.
func GetBreadcrumbs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "Path is required", http.StatusBadRequest)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, defaultResolver.Resolve(ctx, path))
}
