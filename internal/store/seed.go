package store

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// sampleProducts is the catalog the store boots with. IDs are minted fresh on
// every process start, so a restart invalidates any cart or order references
// a client may have kept around.
func sampleProducts() []Product {
	return []Product{
		{
			ID:          uuid.NewString(),
			Name:        "Wireless Bluetooth Headphones",
			Description: "Premium noise-canceling headphones with 30-hour battery life",
			Price:       decimal.NewFromFloat(149.99),
			Image:       "/products/headphones.jpg",
			Category:    "Electronics",
			Stock:       50,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Mechanical Keyboard",
			Description: "RGB backlit mechanical keyboard with Cherry MX switches",
			Price:       decimal.NewFromFloat(129.99),
			Image:       "/products/keyboard.jpg",
			Category:    "Electronics",
			Stock:       30,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Ergonomic Mouse",
			Description: "Wireless ergonomic mouse with adjustable DPI",
			Price:       decimal.NewFromFloat(59.99),
			Image:       "/products/mouse.jpg",
			Category:    "Electronics",
			Stock:       100,
		},
		{
			ID:          uuid.NewString(),
			Name:        "USB-C Hub",
			Description: "7-in-1 USB-C hub with HDMI, USB 3.0, and SD card reader",
			Price:       decimal.NewFromFloat(49.99),
			Image:       "/products/hub.jpg",
			Category:    "Electronics",
			Stock:       75,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Laptop Stand",
			Description: "Adjustable aluminum laptop stand for better ergonomics",
			Price:       decimal.NewFromFloat(39.99),
			Image:       "/products/stand.jpg",
			Category:    "Accessories",
			Stock:       60,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Webcam HD 1080p",
			Description: "Full HD webcam with built-in microphone and auto-focus",
			Price:       decimal.NewFromFloat(79.99),
			Image:       "/products/webcam.jpg",
			Category:    "Electronics",
			Stock:       40,
		},
	}
}
