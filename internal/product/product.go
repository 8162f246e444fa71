// Package product defines the Product record exchanged with the remote API,
// the in-progress Draft collected by the add form, and the decoders that
// turn API responses into typed values.
package product

import (
	"fmt"
	"strconv"
)

// Product is the sole domain entity. IDs are user-supplied and unique on the server.
type Product struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Cost    float64 `json:"cost"`
	Company string  `json:"company"`
	Contact string  `json:"contact"`
}

// FormatCost renders a cost the shortest way that round-trips (9.99, 10, 0.5).
func FormatCost(cost float64) string {
	return strconv.FormatFloat(cost, 'f', -1, 64)
}

// Line renders the product as a single list row.
func (p Product) Line() string {
	return fmt.Sprintf("ID: %d | Name: %s | Cost: ₹%s | Company: %s | Contact: %s",
		p.ID, p.Name, FormatCost(p.Cost), p.Company, p.Contact)
}
