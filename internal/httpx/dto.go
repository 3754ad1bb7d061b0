package httpx

import (
	"time"

	"github.com/shopx/nthcart/internal/store"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	DiscountCode string `json:"discount_code,omitempty"`
}

type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

type CartItemResponse struct {
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Product   *ProductResponse `json:"product,omitempty"`
}

type CartResponse struct {
	ID        string             `json:"id"`
	Items     []CartItemResponse `json:"items"`
	CreatedAt string             `json:"created_at"`
	UpdatedAt string             `json:"updated_at"`
}

type OrderItemResponse struct {
	ProductID       string  `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
}

type OrderResponse struct {
	ID             string              `json:"id"`
	Items          []OrderItemResponse `json:"items"`
	Subtotal       float64             `json:"subtotal"`
	DiscountCode   string              `json:"discount_code,omitempty"`
	DiscountAmount float64             `json:"discount_amount"`
	Total          float64             `json:"total"`
	CreatedAt      string              `json:"created_at"`
}

type DiscountCodeResponse struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
	IsUsed          bool   `json:"is_used"`
	CreatedAt       string `json:"created_at"`
	UsedAt          string `json:"used_at,omitempty"`
	OrderID         string `json:"order_id,omitempty"`
}

type AnalyticsResponse struct {
	TotalItemsPurchased int                    `json:"total_items_purchased"`
	TotalPurchaseAmount float64                `json:"total_purchase_amount"`
	DiscountCodesIssued []DiscountCodeResponse `json:"discount_codes_issued"`
	TotalDiscountAmount float64                `json:"total_discount_amount"`
	OrderCount          int                    `json:"order_count"`
	NthOrderForDiscount int                    `json:"nth_order_for_discount"`
}

func mapProduct(p store.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Image:       p.Image,
		Category:    p.Category,
		Stock:       p.Stock,
	}
}

func mapOrder(o store.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Quantity:        it.Quantity,
			PriceAtPurchase: it.PriceAtPurchase.InexactFloat64(),
		}
	}
	return OrderResponse{
		ID:             o.ID,
		Items:          items,
		Subtotal:       o.Subtotal.InexactFloat64(),
		DiscountCode:   o.DiscountCode,
		DiscountAmount: o.DiscountAmount.InexactFloat64(),
		Total:          o.Total.InexactFloat64(),
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
	}
}

func mapDiscountCode(dc store.DiscountCode) DiscountCodeResponse {
	out := DiscountCodeResponse{
		Code:            dc.Code,
		DiscountPercent: dc.Percent,
		IsUsed:          dc.IsUsed,
		CreatedAt:       dc.CreatedAt.Format(time.RFC3339),
		OrderID:         dc.OrderID,
	}
	if dc.UsedAt != nil {
		out.UsedAt = dc.UsedAt.Format(time.RFC3339)
	}
	return out
}

func mapAnalytics(a store.Analytics) AnalyticsResponse {
	codes := make([]DiscountCodeResponse, len(a.DiscountCodesIssued))
	for i, dc := range a.DiscountCodesIssued {
		codes[i] = mapDiscountCode(dc)
	}
	return AnalyticsResponse{
		TotalItemsPurchased: a.TotalItemsPurchased,
		TotalPurchaseAmount: a.TotalPurchaseAmount.InexactFloat64(),
		DiscountCodesIssued: codes,
		TotalDiscountAmount: a.TotalDiscountAmount.InexactFloat64(),
		OrderCount:          a.OrderCount,
		NthOrderForDiscount: a.NthOrderForDiscount,
	}
}
