package products

import (
	"context"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"vitrina/db"
	"vitrina/models"
	"vitrina/mq"
	"vitrina/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var productUploadPath = "./static/productpic"

func mongoAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// saveProductImage stores one uploaded image and returns its filename.
func saveProductImage(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	ext, err := imageExtension(header)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	filename := id + ext
	if err := writeUpload(file, filepath.Join(productUploadPath, filename)); err != nil {
		return "", err
	}
	utils.CreateThumb(id, productUploadPath, ext, 150, 200)
	return filename, nil
}

func imageExtension(header *multipart.FileHeader) (string, error) {
	switch header.Header.Get("Content-Type") {
	case "image/jpeg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/webp":
		return ".webp", nil
	}
	return "", errors.New("unsupported image type, only JPG, PNG and WEBP are allowed")
}

func writeUpload(file multipart.File, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, file)
	return err
}

// CreateProduct handles the admin create form: multipart fields plus up to
// two images.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Unable to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price <= 0 {
		http.Error(w, "Invalid price value. Must be a positive number.", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	code := r.FormValue("code")
	if name == "" || len(name) > 100 || code == "" {
		http.Error(w, "Name and code are required; name must be at most 100 characters.", http.StatusBadRequest)
		return
	}

	creditPrice, _ := strconv.ParseFloat(r.FormValue("creditPrice"), 64)
	promotionValue, _ := strconv.ParseFloat(r.FormValue("promotionValue"), 64)

	now := time.Now()
	product := models.Product{
		ProductID:            "p" + utils.GenerateID(12),
		Code:                 code,
		Name:                 name,
		Price:                price,
		CreditPrice:          creditPrice,
		Promotion:            r.FormValue("promotion") == "true",
		PromotionValue:       promotionValue,
		Details:              r.FormValue("details"),
		Category:             r.FormValue("category"),
		Subcategory:          r.FormValue("subcategory"),
		SecondaryCategory:    r.FormValue("secondaryCategory"),
		SecondarySubcategory: r.FormValue("secondarySubcategory"),
		Available:            r.FormValue("available") != "false",
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	for _, field := range []string{"image", "image2"} {
		filename, err := saveProductImage(r, field)
		if err != nil {
			http.Error(w, "Error saving "+field+": "+err.Error(), http.StatusBadRequest)
			return
		}
		if field == "image" {
			product.Image = filename
		} else {
			product.Image2 = filename
		}
	}

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct InsertOne error:", err)
		http.Error(w, "Failed to create product", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, "product-created", mq.Event{EntityType: "product", Method: "POST", EntityID: product.ProductID})
	utils.RespondWithJSON(w, http.StatusCreated, map[string]models.Product{"product": product})
}

// UpdateProduct patches the submitted fields; absent fields keep their
// stored value. Prices in carts are add-time snapshots and stay untouched.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Unable to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	for _, field := range []string{"code", "name", "details", "category", "subcategory", "secondaryCategory", "secondarySubcategory"} {
		if v := r.FormValue(field); v != "" {
			set[field] = v
		}
	}
	if v := r.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price <= 0 {
			http.Error(w, "Invalid price value. Must be a positive number.", http.StatusBadRequest)
			return
		}
		set["price"] = price
	}
	if v := r.FormValue("creditPrice"); v != "" {
		if creditPrice, err := strconv.ParseFloat(v, 64); err == nil {
			set["creditPrice"] = creditPrice
		}
	}
	if v := r.FormValue("promotion"); v != "" {
		set["promotion"] = v == "true"
	}
	if v := r.FormValue("promotionValue"); v != "" {
		if pv, err := strconv.ParseFloat(v, 64); err == nil {
			set["promotionValue"] = pv
		}
	}
	if v := r.FormValue("available"); v != "" {
		set["available"] = v == "true"
	}

	for _, field := range []string{"image", "image2"} {
		filename, err := saveProductImage(r, field)
		if err != nil {
			http.Error(w, "Error saving "+field+": "+err.Error(), http.StatusBadRequest)
			return
		}
		if filename != "" {
			set[field] = filename
		}
	}

	result := db.ProductCollection.FindOneAndUpdate(ctx,
		bson.M{"productid": productID},
		bson.M{"$set": set},
		mongoAfter(),
	)

	var product models.Product
	if err := result.Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		log.Println("UpdateProduct error:", err)
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, "product-updated", mq.Event{EntityType: "product", Method: "PATCH", EntityID: productID})
	utils.RespondWithJSON(w, http.StatusOK, map[string]models.Product{"product": product})
}

// DeleteProduct removes a product from the catalog. Carts referencing it
// keep their snapshot rows; the price captured at add time stays valid.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")
	result, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productid": productID})
	if err != nil {
		log.Println("DeleteProduct error:", err)
		http.Error(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	mq.Emit(ctx, "product-deleted", mq.Event{EntityType: "product", Method: "DELETE", EntityID: productID})
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
