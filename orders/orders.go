package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"vitrina/cart"
	"vitrina/db"
	"vitrina/models"
	"vitrina/mq"
	"vitrina/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateOrder snapshots the caller's persisted cart into a new order and
// clears the cart. The order and the cart are not linked afterwards.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Notes string `json:"notes"`
	}
	if r.Body != nil {
		// An empty body is fine; notes are optional.
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	agg := cart.NewAggregator(cart.DefaultStore, userID)
	agg.Hydrate(ctx)
	items := agg.Items()
	if len(items) == 0 {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		log.Println("CreateOrder user lookup error:", err)
		http.Error(w, "Failed to resolve user", http.StatusInternalServerError)
		return
	}

	order := BuildOrder(user, items, payload.Notes)
	if _, err := db.OrderCollection.InsertOne(ctx, order); err != nil {
		log.Println("CreateOrder InsertOne error:", err)
		http.Error(w, "Order creation failed", http.StatusInternalServerError)
		return
	}

	// The order exists; a cart that fails to clear is only a warning.
	if err := agg.ClearCart(ctx); err != nil {
		log.Println("CreateOrder cart cleanup warning:", err)
	}

	mq.Emit(ctx, "order-created", mq.Event{EntityType: "order", Method: "POST", EntityID: order.OrderID})
	utils.RespondWithJSON(w, http.StatusCreated, map[string]models.Order{"order": order})
}

// GetMyOrders lists the caller's own orders, newest first.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	listOrders(ctx, w, bson.M{"userId": userID})
}

// GetOrders lists all orders for the admin view, optionally filtered by
// ?status=.
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			http.Error(w, "Unknown order status", http.StatusBadRequest)
			return
		}
		filter["status"] = status
	}

	listOrders(ctx, w, filter)
}

func listOrders(ctx context.Context, w http.ResponseWriter, filter bson.M) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.OrderCollection.Find(ctx, filter, findOpts)
	if err != nil {
		log.Println("listOrders Find error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var items []models.Order
	if err := cursor.All(ctx, &items); err != nil {
		log.Println("listOrders cursor.All error:", err)
		http.Error(w, "Error reading order data", http.StatusInternalServerError)
		return
	}
	if len(items) == 0 {
		items = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string][]models.Order{"orders": items})
}

// GetOrder returns one order. Clients only see their own; admins see all.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, ok := loadAuthorizedOrder(ctx, w, r, ps.ByName("orderid"))
	if !ok {
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]models.Order{"order": *order})
}

func loadAuthorizedOrder(ctx context.Context, w http.ResponseWriter, r *http.Request, orderID string) (*models.Order, bool) {
	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return nil, false
		}
		log.Println("GetOrder FindOne error:", err)
		http.Error(w, "Could not retrieve order", http.StatusInternalServerError)
		return nil, false
	}

	userID := utils.GetUserIDFromRequest(r)
	if order.UserID != userID && !utils.Contains(utils.GetRolesFromRequest(r), "admin") {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil, false
	}
	return &order, true
}

// UpdateOrderStatus moves an order between the known states (admin only).
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if !models.ValidOrderStatus(payload.Status) {
		http.Error(w, "Unknown order status", http.StatusBadRequest)
		return
	}

	result := db.OrderCollection.FindOneAndUpdate(ctx,
		bson.M{"orderId": ps.ByName("orderid")},
		bson.M{"$set": bson.M{"status": payload.Status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var order models.Order
	if err := result.Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		log.Println("UpdateOrderStatus error:", err)
		http.Error(w, "Failed to update order", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, "order-updated", mq.Event{EntityType: "order", Method: "PATCH", EntityID: order.OrderID})
	utils.RespondWithJSON(w, http.StatusOK, map[string]models.Order{"order": order})
}
