package orderparse

import (
	"context"
	"strings"

	"etiqo/internal/dates"
	"etiqo/internal/domain"
)

// parseImage recognizes text through the external vision service and applies
// the line-item heuristics to the result. A failed vision call degrades; it
// never surfaces as an error.
func (p *Parser) parseImage(ctx context.Context, data []byte, contentType string) *domain.ParsedOrder {
	text, err := p.vision.RecognizeText(ctx, data, contentType)
	if err != nil {
		return degraded("vision service failed: " + err.Error() + "; manual review required")
	}
	return orderFromText(text)
}

// orderFromText builds an order from recognized text: packing date first,
// then the client line, then the item heuristics. Lower confidence than the
// tabular path; an empty item list with non-empty text is flagged in Notes.
func orderFromText(text string) *domain.ParsedOrder {
	packingDate, _ := dates.PackingDate(text)
	client := detectClient(text)

	order := &domain.ParsedOrder{
		Client:      client,
		Items:       itemsFromText(text, client, packingDate),
		RawText:     text,
		PackingDate: packingDate,
	}

	if strings.TrimSpace(text) == "" {
		order.Notes = "document produced no recognizable text; manual review required"
	} else if len(order.Items) == 0 {
		order.Notes = "no line items recognized; manual review required"
	}
	return order
}
