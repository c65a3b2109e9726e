// internal/models/cart.go
package models

import "math"

type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Cart holds the items of one session. Items with a quantity of zero are never stored.
type Cart struct {
	items []CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add puts one unit of the product in the cart.
func (c *Cart) Add(product Product) CartItem {
	if i := c.indexOf(product.ID); i >= 0 {
		c.items[i].Quantity++
		return c.items[i]
	}

	item := CartItem{Product: product, Quantity: 1}
	c.items = append(c.items, item)
	return item
}

// UpdateQuantity applies delta to the item quantity, clamping at zero and dropping the
// item when it reaches zero. It reports the resulting quantity and whether the item existed.
func (c *Cart) UpdateQuantity(productID string, delta int) (int, bool) {
	i := c.indexOf(productID)
	if i < 0 {
		return 0, false
	}

	quantity := c.items[i].Quantity + delta
	if quantity <= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
		return 0, true
	}

	c.items[i].Quantity = quantity
	return quantity, true
}

func (c *Cart) Remove(productID string) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// Items returns a copy of the cart contents in the order products were first added.
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Count is the total number of units across all items.
func (c *Cart) Count() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Subtotal is rounded to cents.
func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return math.Round(total*100) / 100
}

func (c *Cart) indexOf(productID string) int {
	for i, item := range c.items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

// CartSummary is the serialized view of a cart.
type CartSummary struct {
	Items    []CartItem `json:"items"`
	Count    int        `json:"count"`
	Subtotal float64    `json:"subtotal"`
}

func (c *Cart) Summary() CartSummary {
	return CartSummary{
		Items:    c.Items(),
		Count:    c.Count(),
		Subtotal: c.Subtotal(),
	}
}
