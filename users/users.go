package users

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"vitrina/db"
	"vitrina/models"
	"vitrina/mq"
	"vitrina/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// GetCurrentUser returns the logged-in user's own record.
func GetCurrentUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]models.UserResponse{"user": user.ToResponse()})
}

// GetAllUsers lists every account for the admin table.
func GetAllUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := db.UserCollection.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		log.Println("GetAllUsers Find error:", err)
		http.Error(w, "Could not retrieve users", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var stored []models.User
	if err := cursor.All(ctx, &stored); err != nil {
		log.Println("GetAllUsers cursor.All error:", err)
		http.Error(w, "Error reading user data", http.StatusInternalServerError)
		return
	}

	responses := make([]models.UserResponse, 0, len(stored))
	for i := range stored {
		responses = append(responses, stored[i].ToResponse())
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string][]models.UserResponse{"users": responses})
}

// updatableFields decodes a patch body into a $set document, hashing the
// password when one is supplied.
func updatableFields(r *http.Request, allowRole bool) (bson.M, error) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, err
	}

	allowed := map[string]bool{
		"firstName": true, "middleName": true, "lastName": true,
		"secondLastname": true, "documentId": true, "age": true,
		"address": true, "department": true, "city": true,
		"phone": true, "email": true,
	}

	set := bson.M{"updated_at": time.Now()}
	for key, value := range payload {
		switch {
		case allowed[key]:
			set[key] = value
		case key == "password":
			s, ok := value.(string)
			if !ok || s == "" {
				continue
			}
			hashed, err := bcrypt.GenerateFromPassword([]byte(s), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			set["password"] = string(hashed)
		case key == "role" && allowRole:
			set["role"] = value
		case key == "active" && allowRole:
			set["active"] = value
		}
	}
	return set, nil
}

func patchUser(ctx context.Context, w http.ResponseWriter, userID string, set bson.M) {
	result := db.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var user models.User
	if err := result.Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Println("patchUser error:", err)
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, "user-updated", mq.Event{EntityType: "user", Method: "PATCH", EntityID: userID})
	utils.RespondWithJSON(w, http.StatusOK, map[string]models.UserResponse{"user": user.ToResponse()})
}

// UpdateUser patches any account (admin only); role and active may change.
func UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	set, err := updatableFields(r, true)
	if err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	patchUser(ctx, w, ps.ByName("userid"), set)
}

// UpdateOwnProfile patches the caller's own account; role and active are
// off limits here.
func UpdateOwnProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	set, err := updatableFields(r, false)
	if err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	patchUser(ctx, w, userID, set)
}

// ToggleStatus flips an account between active and disabled (admin only).
func ToggleStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := ps.ByName("userid")

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	newState := !user.Active
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"active": newState, "updated_at": time.Now()}},
	)
	if err != nil {
		log.Println("ToggleStatus error:", err)
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, "user-updated", mq.Event{EntityType: "user", Method: "PATCH", EntityID: userID})
	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"active": newState})
}

// AcceptTerms records the caller's acceptance of the terms and conditions.
func AcceptTerms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	patchUser(ctx, w, userID, bson.M{
		"termsAndConditions": true,
		"updated_at":         time.Now(),
	})
}
