package models

import "time"

type User struct {
	UserID             string    `json:"userid" bson:"userid"`
	FirstName          string    `json:"firstName" bson:"firstName"`
	MiddleName         string    `json:"middleName,omitempty" bson:"middleName,omitempty"`
	LastName           string    `json:"lastName" bson:"lastName"`
	SecondLastname     string    `json:"secondLastname,omitempty" bson:"secondLastname,omitempty"`
	DocumentID         string    `json:"documentId" bson:"documentId"`
	Age                int       `json:"age,omitempty" bson:"age,omitempty"`
	Address            string    `json:"address,omitempty" bson:"address,omitempty"`
	Department         string    `json:"department,omitempty" bson:"department,omitempty"`
	City               string    `json:"city,omitempty" bson:"city,omitempty"`
	Phone              string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Email              string    `json:"email" bson:"email"`
	Password           string    `json:"-" bson:"password"`
	Role               []string  `json:"role" bson:"role"`
	Active             bool      `json:"active" bson:"active"`
	TermsAndConditions bool      `json:"termsAndConditions" bson:"termsAndConditions"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" bson:"updated_at"`
	LastLogin          time.Time `json:"last_login" bson:"last_login"`
	RefreshToken       string    `json:"-" bson:"refreshtoken,omitempty"`
	RefreshExpiry      time.Time `json:"refreshexp" bson:"refreshexp"`
}

// UserResponse is the trimmed-down shape returned by the users API.
type UserResponse struct {
	UserID             string    `json:"userid" bson:"userid"`
	FirstName          string    `json:"firstName" bson:"firstName"`
	MiddleName         string    `json:"middleName,omitempty" bson:"middleName,omitempty"`
	LastName           string    `json:"lastName" bson:"lastName"`
	SecondLastname     string    `json:"secondLastname,omitempty" bson:"secondLastname,omitempty"`
	DocumentID         string    `json:"documentId" bson:"documentId"`
	Age                int       `json:"age,omitempty" bson:"age,omitempty"`
	Address            string    `json:"address,omitempty" bson:"address,omitempty"`
	Department         string    `json:"department,omitempty" bson:"department,omitempty"`
	City               string    `json:"city,omitempty" bson:"city,omitempty"`
	Phone              string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Email              string    `json:"email" bson:"email"`
	Role               []string  `json:"role" bson:"role"`
	Active             bool      `json:"active" bson:"active"`
	TermsAndConditions bool      `json:"termsAndConditions" bson:"termsAndConditions"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
	LastLogin          time.Time `json:"last_login" bson:"last_login"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		UserID:             u.UserID,
		FirstName:          u.FirstName,
		MiddleName:         u.MiddleName,
		LastName:           u.LastName,
		SecondLastname:     u.SecondLastname,
		DocumentID:         u.DocumentID,
		Age:                u.Age,
		Address:            u.Address,
		Department:         u.Department,
		City:               u.City,
		Phone:              u.Phone,
		Email:              u.Email,
		Role:               u.Role,
		Active:             u.Active,
		TermsAndConditions: u.TermsAndConditions,
		CreatedAt:          u.CreatedAt,
		LastLogin:          u.LastLogin,
	}
}

// DisplayName joins the parts used by breadcrumbs and order records.
func (u *User) DisplayName() string {
	if u.FirstName == "" {
		return u.Email
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
