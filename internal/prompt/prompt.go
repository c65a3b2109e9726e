// internal/prompt/prompt.go
package prompt

import (
	"fmt"
	"strings"

	"github.com/javajoker/library-shop/internal/catalog"
	"github.com/javajoker/library-shop/internal/models"
)

// Sentinel separates the conversational reply from the trailing JSON block in chat responses.
const Sentinel = "|||"

// ProductIDsField is the JSON field every response shape uses for product identifiers.
const ProductIDsField = "productIds"

// Search builds the text search prompt. Each product contributes its id, title, description and category.
func Search(cat *catalog.Catalog, query string) string {
	lines := make([]string, 0, cat.Len())
	for _, p := range cat.All() {
		lines = append(lines, fmt.Sprintf("ID: %s, Title: %s, Description: %s, Category: %s",
			p.ID, p.Title, p.Description, p.Category))
	}

	var b strings.Builder
	b.WriteString("You are a search engine for the NYPL Shop.\n")
	b.WriteString("Here is the product catalog:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "User Query: %q\n\n", query)
	fmt.Fprintf(&b, "Return a JSON object containing an array of %q that match the query by semantic meaning, relevance, or vibe.\n", ProductIDsField)
	b.WriteString("If the query implies a gift, look for suitable items.\n")
	b.WriteString("Strictly return JSON.\n")
	return b.String()
}

// Image builds the instruction sent alongside an uploaded image. The catalog context is reduced
// to id, title and category.
func Image(cat *catalog.Catalog) string {
	lines := make([]string, 0, cat.Len())
	for _, p := range cat.All() {
		lines = append(lines, fmt.Sprintf("ID: %s, Title: %s, Category: %s", p.ID, p.Title, p.Category))
	}

	return fmt.Sprintf("Look at this image. Based on its visual style, content, or vibe, which products from this list "+
		"are most similar or complementary? List: %s. Return JSON with '%s'.",
		strings.Join(lines, "\n"), ProductIDsField)
}

// Chat builds a single prompt holding the librarian persona, the compact catalog, the sentinel
// format instructions and the conversation so far, ending with the model's turn.
func Chat(cat *catalog.Catalog, history []models.Turn, message string) string {
	entries := make([]string, 0, cat.Len())
	for _, p := range cat.All() {
		entries = append(entries, fmt.Sprintf("ID: %s, Title: %s ($%s)", p.ID, p.Title, formatPrice(p.Price)))
	}

	var b strings.Builder
	b.WriteString("You are the \"Digital Librarian\" for the New York Public Library Shop.\n")
	b.WriteString("Your tone is warm, literary, knowledgeable, and helpful.\n")
	b.WriteString("You help users find gifts, books, and souvenirs.\n\n")
	fmt.Fprintf(&b, "Here is the current catalog inventory: [%s]\n\n", strings.Join(entries, "; "))
	b.WriteString("If you recommend a product, you MUST mention it by name.\n")
	b.WriteString("Additionally, at the end of your response, you MUST output a JSON block (and nothing else after it) ")
	b.WriteString("representing the recommended product IDs if any are relevant.\n")
	b.WriteString("Format:\n")
	b.WriteString("[Your conversational response here]\n")
	b.WriteString(Sentinel + "\n")
	fmt.Fprintf(&b, "{%q: [\"p1\", \"p2\"]}\n\n", ProductIDsField)

	b.WriteString("Conversation History:\n")
	for _, turn := range history {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Text)
	}
	fmt.Fprintf(&b, "%s: %s\n", models.RoleUser, message)
	fmt.Fprintf(&b, "%s:", models.RoleModel)
	return b.String()
}

// formatPrice drops trailing zeros the way a catalog listing would print them: 45, 12.5, 19.99.
func formatPrice(price float64) string {
	s := fmt.Sprintf("%.2f", price)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
