// Package orderparse turns purchase-order documents (spreadsheets, images,
// PDFs) into structured ParsedOrder values. Recoverable failures never
// surface as errors: the parser degrades into a structurally valid order
// with Notes explaining what went wrong.
package orderparse

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"etiqo/internal/domain"
	"etiqo/internal/port"
)

// Parser is the order text parser. Safe for concurrent use; each Parse call
// is self-contained given its inputs.
type Parser struct {
	vision      port.VisionClient
	maxPDFPages int
}

// NewParser creates a Parser. maxPDFPages caps how many PDF pages are sent
// to the vision service per document; 0 means no cap.
func NewParser(vision port.VisionClient, maxPDFPages int) *Parser {
	return &Parser{vision: vision, maxPDFPages: maxPDFPages}
}

// DetectFamily resolves a declared content type plus an optional filename
// hint into a processing family. The second return is false when neither
// identifies a supported document kind.
func DetectFamily(contentType, fileNameHint string) (domain.ContentFamily, bool) {
	if family, ok := domain.FamilyForContentType[contentType]; ok {
		return family, true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileNameHint), "."))
	if family, ok := domain.FamilyForExtension[ext]; ok {
		return family, true
	}
	return "", false
}

// Parse processes one document according to its content family. It always
// returns a structurally valid ParsedOrder; inspect Notes to distinguish a
// degraded parse from a clean one.
func (p *Parser) Parse(ctx context.Context, family domain.ContentFamily, data []byte, contentType string) *domain.ParsedOrder {
	switch family {
	case domain.FamilyTabular:
		return p.parseTabular(data, contentType)
	case domain.FamilyImage:
		return p.parseImage(ctx, data, contentType)
	case domain.FamilyPDF:
		return p.parsePDF(ctx, data)
	default:
		return degraded(fmt.Sprintf("unrecognized content family %q", family))
	}
}

// degraded builds the empty-but-valid order returned when extraction failed
// entirely. Callers distinguish it from "nothing found" by the Notes text.
func degraded(notes string) *domain.ParsedOrder {
	return &domain.ParsedOrder{
		Items: []domain.OrderItem{},
		Notes: notes,
	}
}
