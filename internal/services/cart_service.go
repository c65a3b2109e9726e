// internal/services/cart_service.go
package services

import (
	"github.com/sirupsen/logrus"

	"github.com/javajoker/library-shop/internal/catalog"
	"github.com/javajoker/library-shop/internal/models"
)

type CartService struct {
	catalog *catalog.Catalog
}

func NewCartService(cat *catalog.Catalog) *CartService {
	return &CartService{catalog: cat}
}

func (s *CartService) Get(session *Session) models.CartSummary {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.cart.Summary()
}

// Add puts one unit of a catalog product in the session cart.
func (s *CartService) Add(session *Session, productID string) (models.CartSummary, error) {
	product, ok := s.catalog.Get(productID)
	if !ok {
		return models.CartSummary{}, ErrProductNotFound
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	item := session.cart.Add(product)
	logrus.WithFields(logrus.Fields{
		"session_id": session.ID,
		"product_id": productID,
		"quantity":   item.Quantity,
	}).Debug("Cart item added")
	return session.cart.Summary(), nil
}

// UpdateQuantity changes the quantity of an item already in the cart. A quantity that
// drops to zero or below removes the item.
func (s *CartService) UpdateQuantity(session *Session, productID string, delta int) (models.CartSummary, error) {
	if _, ok := s.catalog.Get(productID); !ok {
		return models.CartSummary{}, ErrProductNotFound
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if _, ok := session.cart.UpdateQuantity(productID, delta); !ok {
		return models.CartSummary{}, ErrCartItemMissing
	}
	return session.cart.Summary(), nil
}

func (s *CartService) Remove(session *Session, productID string) (models.CartSummary, error) {
	if _, ok := s.catalog.Get(productID); !ok {
		return models.CartSummary{}, ErrProductNotFound
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.cart.Remove(productID) {
		return models.CartSummary{}, ErrCartItemMissing
	}
	return session.cart.Summary(), nil
}
