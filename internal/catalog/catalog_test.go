package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/library-shop/internal/models"
)

func defaultCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Default()
	require.NoError(t, err)
	return cat
}

func TestDefaultCatalog(t *testing.T) {
	cat := defaultCatalog(t)

	assert.Equal(t, 12, cat.Len())
	assert.Equal(t, []string{"All", "Books", "Home", "Accessories", "Kids", "Stationery", "Apparel"}, cat.Categories())

	p, ok := cat.Get("p4")
	require.True(t, ok)
	assert.Equal(t, "Jane Austen Mug Set", p.Title)
	assert.Equal(t, 32.00, p.Price)
	assert.Equal(t, "Home", p.Category)

	_, ok = cat.Get("p99")
	assert.False(t, ok)
}

func TestByCategory(t *testing.T) {
	cat := defaultCatalog(t)

	assert.Len(t, cat.ByCategory(""), 12)
	assert.Len(t, cat.ByCategory(CategoryAll), 12)
	assert.Equal(t, []string{"p3", "p10"}, IDs(cat.ByCategory("Books")))
	assert.Empty(t, cat.ByCategory("Garden"))
}

func TestResolveDropsUnknownIDs(t *testing.T) {
	cat := defaultCatalog(t)

	products := cat.Resolve([]string{"p7", "ghost", "p1", "p7"})
	assert.Equal(t, []string{"p1", "p7"}, IDs(products))
	assert.Empty(t, cat.Resolve(nil))
}

func TestResolveIsIdempotent(t *testing.T) {
	cat := defaultCatalog(t)
	ids := []string{"p2", "p12", "unknown"}

	first := cat.Resolve(ids)
	second := cat.Resolve(ids)

	assert.Equal(t, first, second)
	assert.Equal(t, 12, cat.Len())
}

func TestLookupKeepsCallerOrder(t *testing.T) {
	cat := defaultCatalog(t)

	products := cat.Lookup([]string{"p12", "nope", "p2", "p12"})
	assert.Equal(t, []string{"p12", "p2"}, IDs(products))
}

func TestMatchIsCaseInsensitiveUnionOfFields(t *testing.T) {
	cat := defaultCatalog(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"LION", []string{"p1", "p7"}},
		{"stationery", []string{"p11", "p12"}},
		{"jazz age", []string{"p3"}},
		{"books", []string{"p2", "p3", "p10"}},
		{"zeppelin", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := cat.Match(tt.query)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, IDs(got))
		})
	}
}

func TestMatchEqualsFieldPredicate(t *testing.T) {
	cat := defaultCatalog(t)

	for _, query := range []string{"a", "the", "Blue", "kids", "e-"} {
		var want []string
		q := strings.ToLower(query)
		for _, p := range cat.All() {
			if strings.Contains(strings.ToLower(p.Title), q) ||
				strings.Contains(strings.ToLower(p.Description), q) ||
				strings.Contains(strings.ToLower(p.Category), q) {
				want = append(want, p.ID)
			}
		}
		got := IDs(cat.Match(query))
		if len(want) == 0 {
			assert.Empty(t, got, query)
			continue
		}
		assert.Equal(t, want, got, query)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	cat := defaultCatalog(t)

	products := cat.All()
	products[0].Title = "changed"

	p, _ := cat.Get(products[0].ID)
	assert.NotEqual(t, "changed", p.Title)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		products []models.Product
		errText  string
	}{
		{"empty", nil, "no products"},
		{"missing id", []models.Product{{Title: "x"}}, "id is required"},
		{"missing title", []models.Product{{ID: "a"}}, "title is required"},
		{"negative price", []models.Product{{ID: "a", Title: "x", Price: -1}}, "price"},
		{"rating", []models.Product{{ID: "a", Title: "x", Rating: 6}}, "rating"},
		{"duplicate", []models.Product{{ID: "a", Title: "x"}, {ID: "a", Title: "y"}}, "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.products, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestNewDerivesCategories(t *testing.T) {
	cat, err := New([]models.Product{
		{ID: "a", Title: "A", Category: "Books"},
		{ID: "b", Title: "B", Category: "Home"},
		{ID: "c", Title: "C", Category: "Books"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"All", "Books", "Home"}, cat.Categories())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	doc := `
products:
  - id: x1
    title: Card Catalog Drawer
    price: 80
    category: Home
    rating: 4.1
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())
	assert.Equal(t, []string{"All", "Home"}, cat.Categories())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("products: [this is: not: valid"))
	assert.Error(t, err)
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	cat, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, cat.Len())
}
