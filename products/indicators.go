package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"vitrina/db"
	"vitrina/models"
	"vitrina/rdx"
	"vitrina/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const indicatorsCacheKey = "dashboard:indicators"
const indicatorsCacheTTL = 5 * time.Minute

// GetIndicators returns the admin dashboard metrics, served from a Redis
// cache that the catalog worker invalidates on mutations.
func GetIndicators(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if raw, err := rdx.RdxGet(indicatorsCacheKey); err == nil && raw != "" {
		var cached models.DashboardMetrics
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			utils.RespondWithJSON(w, http.StatusOK, cached)
			return
		}
	}

	metrics, err := computeIndicators(ctx)
	if err != nil {
		log.Println("GetIndicators error:", err)
		http.Error(w, "Failed to compute indicators", http.StatusInternalServerError)
		return
	}

	if data, err := json.Marshal(metrics); err == nil {
		if err := rdx.SetWithExpiry(indicatorsCacheKey, string(data), indicatorsCacheTTL); err != nil {
			log.Println("GetIndicators cache write error:", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, metrics)
}

func computeIndicators(ctx context.Context) (models.DashboardMetrics, error) {
	var m models.DashboardMetrics
	var err error

	if m.TotalProducts, err = db.ProductCollection.CountDocuments(ctx, bson.M{}); err != nil {
		return m, err
	}
	if m.ActiveProducts, err = db.ProductCollection.CountDocuments(ctx, bson.M{"available": true}); err != nil {
		return m, err
	}
	if m.TotalUsers, err = db.UserCollection.CountDocuments(ctx, bson.M{}); err != nil {
		return m, err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	if m.ProductsChangeWeek, err = db.ProductCollection.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": weekAgo}}); err != nil {
		return m, err
	}

	monthAgo := time.Now().AddDate(0, -1, 0)
	if m.UsersChangeMonth, err = db.UserCollection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": monthAgo}}); err != nil {
		return m, err
	}

	return m, nil
}
