package models

import "time"

type Product struct {
	ProductID            string    `json:"productid" bson:"productid"`
	Code                 string    `json:"code" bson:"code"`
	Name                 string    `json:"name" bson:"name"`
	Price                float64   `json:"price" bson:"price"`
	CreditPrice          float64   `json:"creditPrice,omitempty" bson:"creditPrice,omitempty"`
	Promotion            bool      `json:"promotion" bson:"promotion"`
	PromotionValue       float64   `json:"promotionValue,omitempty" bson:"promotionValue,omitempty"`
	Details              string    `json:"details,omitempty" bson:"details,omitempty"`
	Category             string    `json:"category" bson:"category"`
	Subcategory          string    `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	SecondaryCategory    string    `json:"secondaryCategory,omitempty" bson:"secondaryCategory,omitempty"`
	SecondarySubcategory string    `json:"secondarySubcategory,omitempty" bson:"secondarySubcategory,omitempty"`
	Available            bool      `json:"available" bson:"available"`
	Image                string    `json:"image,omitempty" bson:"image,omitempty"`
	Image2               string    `json:"image2,omitempty" bson:"image2,omitempty"`
	CreatedAt            time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ProductsResponse is the paginated list shape the panel's tables consume.
type ProductsResponse struct {
	Products      []Product `json:"products"`
	TotalProducts int64     `json:"totalProducts"`
	Page          int       `json:"page"`
	Limit         int       `json:"limit"`
	TotalPages    int       `json:"totalPages"`
	HasNextPage   bool      `json:"hasNextPage"`
	HasPrevPage   bool      `json:"hasPrevPage"`
}

type DashboardMetrics struct {
	TotalProducts      int64 `json:"totalProducts"`
	TotalUsers         int64 `json:"totalUsers"`
	ActiveProducts     int64 `json:"activeProducts"`
	ProductsChangeWeek int64 `json:"productsChangeWeek"`
	UsersChangeMonth   int64 `json:"usersChangeMonth"`
}
