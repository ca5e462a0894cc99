package handler

import (
	"time"

	"github.com/nikolayk812/sweetshop/internal/domain"
	"github.com/samber/lo"
)

type moneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func toMoneyResponse(m domain.Money) moneyResponse {
	return moneyResponse{
		Amount:   m.Amount.StringFixed(2),
		Currency: m.Currency.String(),
	}
}

type productResponse struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Weight      float64       `json:"weight"`
	Price       moneyResponse `json:"price"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Weight:      p.Weight,
		Price:       toMoneyResponse(p.Price),
	}
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type cartLineResponse struct {
	ProductID   int64         `json:"product_id"`
	ProductName string        `json:"product_name,omitempty"`
	ProductSlug string        `json:"product_slug,omitempty"`
	Quantity    int           `json:"quantity"`
	LineTotal   moneyResponse `json:"line_total"`
}

type cartResponse struct {
	ID         int64              `json:"id"`
	Anonymous  bool               `json:"anonymous"`
	InOrder    bool               `json:"in_order"`
	TotalItems int                `json:"total_items"`
	TotalPrice moneyResponse      `json:"total_price"`
	Lines      []cartLineResponse `json:"lines"`
}

func toCartResponse(cart domain.Cart) cartResponse {
	lines := make([]cartLineResponse, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lr := cartLineResponse{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			LineTotal: toMoneyResponse(line.LineTotal),
		}
		if line.Product != nil {
			lr.ProductName = line.Product.Name
			lr.ProductSlug = line.Product.Slug
		}
		lines = append(lines, lr)
	}

	return cartResponse{
		ID:         cart.ID,
		Anonymous:  cart.Anonymous,
		InOrder:    cart.InOrder,
		TotalItems: cart.TotalItems,
		TotalPrice: toMoneyResponse(cart.TotalPrice),
		Lines:      lines,
	}
}

type orderResponse struct {
	ID           int64     `json:"id"`
	CartID       int64     `json:"cart_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name,omitempty"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Comment      string    `json:"comment,omitempty"`
	Status       string    `json:"status"`
	DeliveryDate string    `json:"delivery_date"`
	CreatedAt    time.Time `json:"created_at"`
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:           o.ID,
		CartID:       o.CartID,
		FirstName:    o.FirstName,
		LastName:     o.LastName,
		Phone:        o.Phone,
		Address:      o.Address,
		Comment:      o.Comment,
		Status:       string(o.Status),
		DeliveryDate: o.DeliveryDate.Format(time.DateOnly),
		CreatedAt:    o.CreatedAt,
	}
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	return lo.Map(orders, func(o domain.Order, _ int) orderResponse {
		return toOrderResponse(o)
	})
}
