package request

import (
	"strings"

	"github.com/shopspring/decimal"

	"zerovicio/internal/domain/entities"
)

// PixChargeRequest is the checkout form posted by the landing page.
//
// price accepts both a JSON number and a numeric string ("167.90").
type PixChargeRequest struct {
	Name  string          `json:"name" binding:"required" example:"Joana Souza"`
	Email string          `json:"email" example:"joana@example.com"`
	CPF   string          `json:"cpf" binding:"required" example:"123.456.789-09"`
	Price decimal.Decimal `json:"price" swaggertype:"number" example:"167.90"`
	Plan  string          `json:"plan" example:"anual"`
	Phone string          `json:"phone,omitempty" example:"(11) 98888-7777"`
	FBP   string          `json:"fbp,omitempty"`
	FBC   string          `json:"fbc,omitempty"`
}

func (r PixChargeRequest) ToOrder() entities.Order {
	return entities.Order{
		Name:  strings.TrimSpace(r.Name),
		Email: strings.TrimSpace(r.Email),
		CPF:   r.CPF,
		Phone: strings.TrimSpace(r.Phone),
		Price: r.Price,
		Plan:  strings.TrimSpace(r.Plan),
		FBP:   strings.TrimSpace(r.FBP),
		FBC:   strings.TrimSpace(r.FBC),
	}
}
