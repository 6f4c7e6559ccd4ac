package orderparse

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"etiqo/internal/domain"
)

// parsePDF splits the document into single pages, runs each page through the
// vision service in page order, and parses the merged text. Unreadable pages
// are skipped and reported in Notes; the whole document degrades only when
// no page yields text.
func (p *Parser) parsePDF(ctx context.Context, data []byte) *domain.ParsedOrder {
	pageCount, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return degraded("could not read PDF: " + err.Error())
	}
	if pageCount == 0 {
		return degraded("PDF contains no pages")
	}

	var notes []string
	if p.maxPDFPages > 0 && pageCount > p.maxPDFPages {
		notes = append(notes, fmt.Sprintf("PDF truncated to the first %d of %d pages", p.maxPDFPages, pageCount))
		pageCount = p.maxPDFPages
	}

	var pageTexts []string
	for page := 1; page <= pageCount; page++ {
		text, pageErr := p.recognizePage(ctx, data, page)
		if pageErr != nil {
			notes = append(notes, fmt.Sprintf("page %d unreadable: %v", page, pageErr))
			continue
		}
		pageTexts = append(pageTexts, text)
	}

	if len(pageTexts) == 0 {
		notes = append(notes, "manual review required")
		return degraded(strings.Join(notes, "; "))
	}

	order := orderFromText(strings.Join(pageTexts, "\n"))
	if len(notes) > 0 {
		if order.Notes != "" {
			notes = append(notes, order.Notes)
		}
		order.Notes = strings.Join(notes, "; ")
	}
	return order
}

// recognizePage trims the document down to page pageNr and hands the
// resulting single-page PDF to the vision service.
func (p *Parser) recognizePage(ctx context.Context, data []byte, pageNr int) (string, error) {
	var buf bytes.Buffer
	if err := api.Trim(bytes.NewReader(data), &buf, []string{strconv.Itoa(pageNr)}, nil); err != nil {
		return "", fmt.Errorf("extracting page: %w", err)
	}
	return p.vision.RecognizeText(ctx, buf.Bytes(), "application/pdf")
}
