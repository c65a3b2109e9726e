package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javajoker/library-shop/internal/catalog"
	"github.com/javajoker/library-shop/internal/models"
)

var productsCategory string

// productsCmd lists catalog products
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List catalog products",
	RunE:  runProducts,
}

func init() {
	productsCmd.Flags().StringVarP(&productsCategory, "category", "c", catalog.CategoryAll, "Only list products in this category")
}

func runProducts(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return err
	}

	products := cat.ByCategory(productsCategory)
	out := cmd.OutOrStdout()
	if len(products) == 0 {
		fmt.Fprintf(out, "No products in category %q. Categories: %s\n",
			productsCategory, strings.Join(cat.Categories(), ", "))
		return nil
	}

	printProducts(out, products)
	fmt.Fprintf(out, "Total: %d products\n", len(products))
	return nil
}

func printProducts(out io.Writer, products []models.Product) {
	for _, p := range products {
		fmt.Fprintf(out, "  %-4s %-40s %-12s $%7.2f  %.1f★\n", p.ID, p.Title, p.Category, p.Price, p.Rating)
	}
}
