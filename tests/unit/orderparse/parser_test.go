package orderparse_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"etiqo/internal/domain"
	"etiqo/internal/orderparse"
	"etiqo/mocks"
)

func TestDetectFamily(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		fileName    string
		want        domain.ContentFamily
		ok          bool
	}{
		{"pdf content type", "application/pdf", "", domain.FamilyPDF, true},
		{"jpeg content type", "image/jpeg", "", domain.FamilyImage, true},
		{"png content type", "image/png", "", domain.FamilyImage, true},
		{"csv content type", "text/csv", "", domain.FamilyTabular, true},
		{"xlsx content type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "", domain.FamilyTabular, true},
		{"octet stream with pdf extension", "application/octet-stream", "pedido.pdf", domain.FamilyPDF, true},
		{"octet stream with uppercase extension", "application/octet-stream", "PEDIDO.XLSX", domain.FamilyTabular, true},
		{"missing content type with jpg extension", "", "foto.jpg", domain.FamilyImage, true},
		{"unsupported", "text/html", "pedido.html", "", false},
		{"nothing to go on", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := orderparse.DetectFamily(tt.contentType, tt.fileName)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_TabularCSV(t *testing.T) {
	parser := orderparse.NewParser(new(mocks.MockVisionClient), 10)
	data := []byte("Producto,Cantidad,Cliente\nAlbahaca,2 kg,Mercadona\nMenta,3,\n")

	order := parser.Parse(context.Background(), domain.FamilyTabular, data, "text/csv")

	require.NotNil(t, order)
	assert.Empty(t, order.Notes)
	assert.Equal(t, "Mercadona", order.Client)
	require.NotNil(t, order.Table)
	assert.Equal(t, []string{"Producto", "Cantidad", "Cliente"}, order.Table.Headers)
	assert.Len(t, order.Table.Rows, 2)

	require.Len(t, order.Items, 2)

	first := order.Items[0]
	assert.Equal(t, "albahaca-1", first.ID)
	assert.Equal(t, "Albahaca", first.ProductName)
	assert.Equal(t, "2 kg", first.QuantityText)
	require.NotNil(t, first.Quantity)
	assert.Equal(t, 2.0, *first.Quantity)
	assert.Equal(t, "kg", first.Unit)
	assert.Equal(t, "Mercadona", first.Client)
	assert.Equal(t, domain.LabelTypeMercadona, first.LabelType)
	assert.True(t, first.Include)

	second := order.Items[1]
	assert.Equal(t, "menta-2", second.ID)
	assert.Equal(t, "Menta", second.ProductName)
	assert.Equal(t, "3", second.QuantityText)
	require.NotNil(t, second.Quantity)
	assert.Equal(t, 3.0, *second.Quantity)
	// Client column empty on the second row: inherited from the order.
	assert.Equal(t, "Mercadona", second.Client)
	assert.Equal(t, domain.LabelTypeMercadona, second.LabelType)
}

func TestParse_TabularSemicolonCSV(t *testing.T) {
	parser := orderparse.NewParser(new(mocks.MockVisionClient), 10)
	data := []byte("Producto;Cantidad\nMenta;5\n")

	order := parser.Parse(context.Background(), domain.FamilyTabular, data, "text/csv")

	require.Len(t, order.Items, 1)
	assert.Equal(t, "Menta", order.Items[0].ProductName)
	assert.Equal(t, "5", order.Items[0].QuantityText)
	// No client column anywhere: generic layout.
	assert.Equal(t, domain.LabelTypeGeneric, order.Items[0].LabelType)
}

func TestParse_TabularNoProductColumn(t *testing.T) {
	parser := orderparse.NewParser(new(mocks.MockVisionClient), 10)
	data := []byte("Referencia,Precio\nA-1,10\n")

	order := parser.Parse(context.Background(), domain.FamilyTabular, data, "text/csv")

	require.NotNil(t, order)
	assert.Empty(t, order.Items)
	assert.Contains(t, order.Notes, "no recognizable product column")
	require.NotNil(t, order.Table)
}

func TestParse_TabularEmpty(t *testing.T) {
	parser := orderparse.NewParser(new(mocks.MockVisionClient), 10)

	order := parser.Parse(context.Background(), domain.FamilyTabular, []byte(""), "text/csv")

	require.NotNil(t, order)
	assert.Empty(t, order.Items)
	assert.Contains(t, order.Notes, "no rows")
}

func TestParse_Image(t *testing.T) {
	text := "MERCADONA, S.A.\nEnvasado: 12/05/2024\nAlbahaca 2 kg\nMenta: 3 manojos\nCilantro"

	vision := new(mocks.MockVisionClient)
	vision.On("RecognizeText", mock.Anything, mock.Anything, "image/jpeg").Return(text, nil)

	parser := orderparse.NewParser(vision, 10)
	order := parser.Parse(context.Background(), domain.FamilyImage, []byte("jpeg-bytes"), "image/jpeg")

	require.NotNil(t, order)
	assert.Empty(t, order.Notes)
	assert.Equal(t, "MERCADONA, S.A.", order.Client)
	assert.Equal(t, "2024-05-12", order.PackingDate)
	assert.Equal(t, text, order.RawText)

	require.Len(t, order.Items, 3)

	assert.Equal(t, "albahaca-1", order.Items[0].ID)
	assert.Equal(t, "Albahaca", order.Items[0].ProductName)
	assert.Equal(t, "2 kg", order.Items[0].QuantityText)

	assert.Equal(t, "menta-2", order.Items[1].ID)
	assert.Equal(t, "Menta", order.Items[1].ProductName)
	assert.Equal(t, "3 manojos", order.Items[1].QuantityText)

	// Bare product keyword line, no quantity.
	assert.Equal(t, "cilantro-3", order.Items[2].ID)
	assert.Equal(t, "Cilantro", order.Items[2].ProductName)
	assert.Empty(t, order.Items[2].QuantityText)
	assert.Nil(t, order.Items[2].Quantity)

	for _, item := range order.Items {
		assert.Equal(t, domain.LabelTypeMercadona, item.LabelType)
		assert.Equal(t, "2024-05-12", item.PackingDate)
		assert.True(t, item.Include)
	}

	vision.AssertExpectations(t)
}

func TestParse_ImageQuantityFirstShape(t *testing.T) {
	vision := new(mocks.MockVisionClient)
	vision.On("RecognizeText", mock.Anything, mock.Anything, "image/png").Return("12 x Albahaca", nil)

	parser := orderparse.NewParser(vision, 10)
	order := parser.Parse(context.Background(), domain.FamilyImage, []byte("png"), "image/png")

	require.Len(t, order.Items, 1)
	assert.Equal(t, "Albahaca", order.Items[0].ProductName)
	assert.Equal(t, "12", order.Items[0].QuantityText)
	require.NotNil(t, order.Items[0].Quantity)
	assert.Equal(t, 12.0, *order.Items[0].Quantity)
}

func TestParse_ImageVisionFailureDegrades(t *testing.T) {
	vision := new(mocks.MockVisionClient)
	vision.On("RecognizeText", mock.Anything, mock.Anything, "image/jpeg").
		Return("", errors.New("quota exceeded"))

	parser := orderparse.NewParser(vision, 10)
	order := parser.Parse(context.Background(), domain.FamilyImage, []byte("jpeg-bytes"), "image/jpeg")

	require.NotNil(t, order)
	assert.NotNil(t, order.Items)
	assert.Empty(t, order.Items)
	assert.Contains(t, order.Notes, "vision service failed")
	assert.Contains(t, order.Notes, "manual review required")
}

func TestParse_ImageEmptyTextDegrades(t *testing.T) {
	vision := new(mocks.MockVisionClient)
	vision.On("RecognizeText", mock.Anything, mock.Anything, "image/jpeg").Return("", nil)

	parser := orderparse.NewParser(vision, 10)
	order := parser.Parse(context.Background(), domain.FamilyImage, []byte("jpeg-bytes"), "image/jpeg")

	assert.Empty(t, order.Items)
	assert.Contains(t, order.Notes, "no recognizable text")
}

func TestParse_ImageTextWithoutItems(t *testing.T) {
	vision := new(mocks.MockVisionClient)
	vision.On("RecognizeText", mock.Anything, mock.Anything, "image/jpeg").
		Return("Nota interna sin productos", nil)

	parser := orderparse.NewParser(vision, 10)
	order := parser.Parse(context.Background(), domain.FamilyImage, []byte("jpeg-bytes"), "image/jpeg")

	assert.Empty(t, order.Items)
	assert.Contains(t, order.Notes, "no line items recognized")
	assert.Equal(t, "Nota interna sin productos", order.RawText)
}

func xlsxFixture(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParse_TabularXLSX(t *testing.T) {
	parser := orderparse.NewParser(new(mocks.MockVisionClient), 10)
	data := xlsxFixture(t, [][]interface{}{
		{"Producto", "Cantidad", "Cliente"},
		{"Albahaca", "2 kg", "Mercadona"},
		{"Menta", "3", ""},
	})

	order := parser.Parse(context.Background(), domain.FamilyTabular, data,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	require.NotNil(t, order)
	assert.Empty(t, order.Notes)
	assert.Equal(t, "Mercadona", order.Client)
	require.NotNil(t, order.Table)
	assert.Equal(t, []string{"Producto", "Cantidad", "Cliente"}, order.Table.Headers)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "albahaca-1", order.Items[0].ID)
	assert.Equal(t, "2 kg", order.Items[0].QuantityText)
	assert.Equal(t, domain.LabelTypeMercadona, order.Items[0].LabelType)
	assert.Equal(t, "menta-2", order.Items[1].ID)
	assert.Equal(t, "Mercadona", order.Items[1].Client)
}

// multiPagePDF builds a minimal PDF with the given number of empty pages,
// computing the cross-reference table from the actual byte offsets.
func multiPagePDF(t *testing.T, pageCount int) []byte {
	t.Helper()
	var b bytes.Buffer
	var offsets []int
	b.WriteString("%PDF-1.4\n")

	writeObj := func(s string) {
		offsets = append(offsets, b.Len())
		b.WriteString(s)
	}

	kids := make([]string, pageCount)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}

	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), pageCount))
	for i := 0; i < pageCount; i++ {
		writeObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n", i+3))
	}

	xrefOffset := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(offsets)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefOffset)
	return b.Bytes()
}

func TestParse_PDFMergesPagesInOrder(t *testing.T) {
	vision := new(mocks.MockVisionClient)
	vision.On("RecognizeText", mock.Anything, mock.Anything, "application/pdf").
		Return("MERCADONA\nAlbahaca 2 kg", nil).Once()
	vision.On("RecognizeText", mock.Anything, mock.Anything, "application/pdf").
		Return("Menta 3 manojos", nil).Once()

	parser := orderparse.NewParser(vision, 10)
	order := parser.Parse(context.Background(), domain.FamilyPDF, multiPagePDF(t, 2), "application/pdf")

	require.NotNil(t, order)
	assert.Empty(t, order.Notes)
	assert.Equal(t, "MERCADONA", order.Client)

	// Items follow page order: the first page's item precedes the second's.
	require.Len(t, order.Items, 2)
	assert.Equal(t, "albahaca-1", order.Items[0].ID)
	assert.Equal(t, "menta-2", order.Items[1].ID)

	vision.AssertExpectations(t)
}

func TestParse_PDFTruncatesToMaxPages(t *testing.T) {
	vision := new(mocks.MockVisionClient)
	vision.On("RecognizeText", mock.Anything, mock.Anything, "application/pdf").
		Return("Albahaca 2 kg", nil).Once()
	vision.On("RecognizeText", mock.Anything, mock.Anything, "application/pdf").
		Return("Menta 3", nil).Once()

	parser := orderparse.NewParser(vision, 2)
	order := parser.Parse(context.Background(), domain.FamilyPDF, multiPagePDF(t, 3), "application/pdf")

	require.NotNil(t, order)
	assert.Contains(t, order.Notes, "first 2 of 3 pages")
	require.Len(t, order.Items, 2)

	// Pages beyond the cap never reach the vision service.
	vision.AssertExpectations(t)
	vision.AssertNumberOfCalls(t, "RecognizeText", 2)
}

func TestParse_ImageItemLineWithTrailingDate(t *testing.T) {
	vision := new(mocks.MockVisionClient)
	vision.On("RecognizeText", mock.Anything, mock.Anything, "image/jpeg").
		Return("Albahaca 2 kg 12/05/2024\nEnvasado: 12/05/2024", nil)

	parser := orderparse.NewParser(vision, 10)
	order := parser.Parse(context.Background(), domain.FamilyImage, []byte("jpeg-bytes"), "image/jpeg")

	// The date substring is stripped, not the whole line: the item survives
	// while the date-only remainder of the second line produces nothing.
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Albahaca", order.Items[0].ProductName)
	assert.Equal(t, "2 kg", order.Items[0].QuantityText)
	assert.Equal(t, "2024-05-12", order.PackingDate)
	assert.Empty(t, order.Notes)
}

func TestParse_PDFUnreadableDegrades(t *testing.T) {
	parser := orderparse.NewParser(new(mocks.MockVisionClient), 10)

	order := parser.Parse(context.Background(), domain.FamilyPDF, []byte("not a pdf"), "application/pdf")

	require.NotNil(t, order)
	assert.Empty(t, order.Items)
	assert.Contains(t, order.Notes, "could not read PDF")
}
