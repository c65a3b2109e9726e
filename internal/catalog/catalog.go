// internal/catalog/catalog.go
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/javajoker/library-shop/internal/models"
)

// CategoryAll selects every product when browsing by category.
const CategoryAll = "All"

//go:embed default_catalog.yaml
var defaultDocument []byte

// Catalog is the read-only product list shared by every request. It is safe for concurrent use
// because nothing mutates it after loading, and every accessor returns copies.
type Catalog struct {
	products   []models.Product
	index      map[string]int
	categories []string
}

type document struct {
	Categories []string         `yaml:"categories"`
	Products   []models.Product `yaml:"products"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultDocument)
}

// Load reads a YAML catalog document from path. An empty path loads the default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(doc.Products, doc.Categories)
}

// New validates products and builds a catalog. When categories is empty the navigation list is
// All followed by the distinct product categories in first-seen order.
func New(products []models.Product, categories []string) (*Catalog, error) {
	if len(products) == 0 {
		return nil, errors.New("catalog has no products")
	}

	c := &Catalog{
		products: make([]models.Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}

	for i, p := range products {
		if err := validateProduct(p); err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		if _, exists := c.index[p.ID]; exists {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	if len(categories) == 0 {
		categories = deriveCategories(c.products)
	}
	c.categories = append([]string(nil), categories...)

	return c, nil
}

func validateProduct(p models.Product) error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("id is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%s: title is required", p.ID)
	}
	if p.Price < 0 {
		return fmt.Errorf("%s: price must not be negative", p.ID)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("%s: rating must be between 0 and 5", p.ID)
	}
	return nil
}

func deriveCategories(products []models.Product) []string {
	seen := map[string]bool{}
	categories := []string{CategoryAll}
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func (c *Catalog) All() []models.Product {
	products := make([]models.Product, len(c.products))
	copy(products, c.products)
	return products
}

func (c *Catalog) Get(id string) (models.Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// ByCategory filters on an exact category label. An empty label or All returns everything.
func (c *Catalog) ByCategory(category string) []models.Product {
	if category == "" || category == CategoryAll {
		return c.All()
	}

	var products []models.Product
	for _, p := range c.products {
		if p.Category == category {
			products = append(products, p)
		}
	}
	return products
}

// Resolve returns the products whose ids appear in ids, in catalog order.
// Unknown ids are dropped and duplicates collapse.
func (c *Catalog) Resolve(ids []string) []models.Product {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	products := []models.Product{}
	for _, p := range c.products {
		if wanted[p.ID] {
			products = append(products, p)
		}
	}
	return products
}

// Lookup resolves ids keeping the caller's order. Unknown ids are dropped and duplicates collapse.
func (c *Catalog) Lookup(ids []string) []models.Product {
	seen := make(map[string]bool, len(ids))

	var products []models.Product
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := c.Get(id); ok {
			products = append(products, p)
		}
	}
	return products
}

// Match is the local search: a case-insensitive substring test of query against title,
// description and category. Matches come back in catalog order.
func (c *Catalog) Match(query string) []models.Product {
	q := strings.ToLower(query)

	products := []models.Product{}
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			products = append(products, p)
		}
	}
	return products
}

// IDs returns the ids of products in order.
func IDs(products []models.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
