package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mug  = Product{ID: "p4", Title: "Jane Austen Mug Set", Price: 32.00, Category: "Home"}
	tote = Product{ID: "p2", Title: "Classic NYPL Tote Bag", Price: 25.00, Category: "Accessories"}
)

func TestCartAddTwiceIncrementsSingleEntry(t *testing.T) {
	cart := NewCart()
	cart.Add(mug)
	item := cart.Add(mug)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "p4", items[0].ID)
}

func TestCartDecrementToZeroRemovesItem(t *testing.T) {
	cart := NewCart()
	cart.Add(mug)

	quantity, ok := cart.UpdateQuantity("p4", -1)
	assert.True(t, ok)
	assert.Equal(t, 0, quantity)
	assert.Empty(t, cart.Items())
}

func TestCartDecrementBelowZeroClamps(t *testing.T) {
	cart := NewCart()
	cart.Add(mug)
	cart.Add(tote)

	quantity, ok := cart.UpdateQuantity("p4", -5)
	assert.True(t, ok)
	assert.Equal(t, 0, quantity)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ID)
}

func TestCartUpdateUnknownItem(t *testing.T) {
	cart := NewCart()
	_, ok := cart.UpdateQuantity("missing", 1)
	assert.False(t, ok)
	assert.False(t, cart.Remove("missing"))
}

func TestCartTotals(t *testing.T) {
	cart := NewCart()
	cart.Add(mug)
	cart.Add(mug)
	cart.Add(tote)
	_, _ = cart.UpdateQuantity("p2", 2)

	summary := cart.Summary()
	assert.Equal(t, 5, summary.Count)
	assert.InDelta(t, 139.00, summary.Subtotal, 0.001)
	assert.Equal(t, []string{"p4", "p2"}, []string{summary.Items[0].ID, summary.Items[1].ID})

	for _, item := range summary.Items {
		assert.Positive(t, item.Quantity)
	}
}

func TestCartItemsIsCopy(t *testing.T) {
	cart := NewCart()
	cart.Add(mug)

	items := cart.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, cart.Items()[0].Quantity)
}

func TestCartRemove(t *testing.T) {
	cart := NewCart()
	cart.Add(mug)
	cart.Add(mug)

	assert.True(t, cart.Remove("p4"))
	assert.Equal(t, 0, cart.Count())
}
