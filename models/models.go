package models

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

var ErrBadRequest = errors.New("bad request")
var ErrUnautorized = errors.New("unautorized")
var ErrServerError = errors.New("server error")
var ErrNotFoundError = errors.New("not found")
var ErrNotAllowed = errors.New("not acceptable")

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type PasswordData struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type UserData struct {
	Id    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type User_db struct {
	Id       string
	Email    string
	Password string
	Role     string
}

type Product_db struct {
	Id          string
	Name        string
	Description sql.NullString
	Price       decimal.Decimal
	Category    string
	Sizes       pq.StringArray
	Colors      pq.StringArray
	ImageUrl    sql.NullString
	Featured    bool
	InStock     bool
	CreatedDate time.Time
}

// ProductRequest is the manager-facing create/update payload. Pointer fields
// distinguish "leave unchanged" from an explicit empty value on update.
type ProductRequest struct {
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    string           `json:"category"`
	Sizes       []string         `json:"sizes,omitempty"`
	Colors      []string         `json:"colors,omitempty"`
	ImageUrl    *string          `json:"image_url,omitempty"`
	Featured    *bool            `json:"featured,omitempty"`
	InStock     *bool            `json:"in_stock,omitempty"`
}

type CartItemRequest struct {
	ProductId string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
