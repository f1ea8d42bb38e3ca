package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest cadastro de produto. Quantity omitido ou -1 = ilimitado.
type CreateProductRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    *int            `json:"quantity"`
	Description string          `json:"description"`
}

// UpdateProductRequest atualização de produto.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	Description *string          `json:"description"`
	Active      *bool            `json:"active"`
}

// ProductResponse produto exposto pela API. Quantity -1 indica ilimitado.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Unlimited   bool            `json:"unlimited"`
	Description string          `json:"description"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}
