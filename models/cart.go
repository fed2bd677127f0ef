package models

// CartItem is one product line scraped from a shopping cart page
type CartItem struct {
	ProductName string        `json:"productName"`
	SKU         string        `json:"sku"`
	PartNo      string        `json:"partNo"`
	UnitPrice   string        `json:"unitPrice"`
	Quantity    int           `json:"quantity"`
	Subtotal    string        `json:"subtotal"`
	Power       *PowerProfile `json:"power,omitempty"`
}

// PowerProfile is the estimated electrical draw of a cart item
type PowerProfile struct {
	Voltage float64 `json:"voltage"`
	Current string  `json:"current"`
	Power   string  `json:"power"`
	Notes   string  `json:"notes"`
}

// CartSummary totals a scraped cart
type CartSummary struct {
	Items       []CartItem `json:"items"`
	Total       string     `json:"total"`
	PowerMinW   float64    `json:"powerMinW"`
	PowerMaxW   float64    `json:"powerMaxW"`
	SupplyAmps  int        `json:"supplyAmps"`
	SupplyWatts int        `json:"supplyWatts"`
}
