package orderparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"etiqo/internal/domain"
	"etiqo/internal/labels"
)

// lineItemPattern matches "product text ... quantity [unit]" lines, the
// dominant shape in both recognized OCR text and spreadsheet exports.
var lineItemPattern = regexp.MustCompile(`^(.+?)[\s:.,-]+(\d+(?:[.,]\d+)?)\s*((?i:kg|kgs|g|gr|ud|uds|unidades|caja|cajas|manojo|manojos|bandeja|bandejas))?\.?\s*$`)

// quantityFirstPattern matches the "12 x Albahaca" shape.
var quantityFirstPattern = regexp.MustCompile(`^(\d+)\s*[xX]\s*(.+)$`)

// dateShapePattern removes date substrings before item matching; a line
// like "Envasado: 12/05/2024" must not turn into a product named
// "Envasado: 12/05", while "Albahaca 2 kg 12/05/2024" keeps its item.
var dateShapePattern = regexp.MustCompile(`\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}`)

// quantityValuePattern extracts the numeric projection and unit from a
// quantity text like "2,5 kg" or "12 uds".
var quantityValuePattern = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*([A-Za-z]+)?`)

// newItem builds an OrderItem at position idx (zero-based). The ID is the
// sanitized name's slug plus the one-based ordinal, unique within one parse
// result only.
func newItem(name, quantityText, client, packingDate string, idx int) domain.OrderItem {
	name = labels.SanitizeProductName(name)
	item := domain.OrderItem{
		ID:           fmt.Sprintf("%s-%d", labels.Slug(name), idx+1),
		ProductName:  name,
		QuantityText: strings.TrimSpace(quantityText),
		Client:       client,
		LabelType:    labels.ResolveLabelType(client),
		PackingDate:  packingDate,
		Include:      true,
	}
	if qty, unit, ok := parseQuantity(item.QuantityText); ok {
		item.Quantity = &qty
		item.Unit = unit
	}
	return item
}

// parseQuantity projects a quantity text into a number and an optional unit.
// Ambiguous text (no leading number) yields ok=false and the projections are
// simply absent; the original text is always kept on the item.
func parseQuantity(text string) (float64, string, bool) {
	m := quantityValuePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, "", false
	}
	qty, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return 0, "", false
	}
	return qty, strings.ToLower(m[2]), true
}

// detectClient returns the first line that resolves to a known retailer
// layout, or empty when no line does.
func detectClient(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if labels.ResolveLabelType(line) != domain.LabelTypeGeneric {
			return line
		}
	}
	return ""
}

// itemsFromText applies the line-item heuristics to recognized text. Lines
// become items when they end in a quantity, start with "N x", or contain a
// known canonical product keyword. The client line and date lines are
// skipped. Best effort: zero items is a valid outcome.
func itemsFromText(text, client, packingDate string) []domain.OrderItem {
	items := []domain.OrderItem{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == client {
			continue
		}
		line = strings.TrimSpace(dateShapePattern.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}

		var name, quantityText string
		switch {
		case lineItemPattern.MatchString(line):
			m := lineItemPattern.FindStringSubmatch(line)
			name = m[1]
			quantityText = strings.TrimSpace(m[2] + " " + m[3])
		case quantityFirstPattern.MatchString(line):
			m := quantityFirstPattern.FindStringSubmatch(line)
			name = m[2]
			quantityText = m[1]
		default:
			if _, ok := labels.ResolveCanonicalProduct(line); !ok {
				continue
			}
			name = line
		}

		items = append(items, newItem(name, quantityText, client, packingDate, len(items)))
	}
	return items
}
