package orderparse

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/xuri/excelize/v2"

	"etiqo/internal/domain"
	"etiqo/internal/labels"
)

// Header synonyms, matched against normalized header cells. Spanish and
// English variants both appear in the wild.
var (
	productHeaders  = headerSet("PRODUCTO", "PRODUCT", "ARTICULO", "DESCRIPCION", "DESCRIPTION", "ITEM")
	quantityHeaders = headerSet("CANTIDAD", "QUANTITY", "QTY", "UDS", "UNIDADES", "PESO")
	clientHeaders   = headerSet("CLIENTE", "CLIENT", "CUSTOMER", "RETAILER", "SUPERMERCADO")
)

func headerSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// parseTabular reads spreadsheet/CSV bytes into rows and projects them into
// order items. Values are already machine-readable, so no vision or date
// extraction pass runs here.
func (p *Parser) parseTabular(data []byte, contentType string) *domain.ParsedOrder {
	rows, err := readTabular(data, contentType)
	if err != nil {
		return degraded("could not read tabular document: " + err.Error())
	}
	return orderFromRows(rows)
}

// readTabular picks the concrete reader. CSV content types go straight to
// the CSV reader; everything else tries xlsx first and falls back to CSV,
// which covers octet-stream uploads resolved by file extension.
func readTabular(data []byte, contentType string) ([][]string, error) {
	switch contentType {
	case "text/csv", "application/csv":
		return readCSV(data)
	}
	rows, err := readXLSX(data)
	if err != nil {
		if csvRows, csvErr := readCSV(data); csvErr == nil {
			return csvRows, nil
		}
		return nil, err
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, excelize.ErrSheetNotExist{SheetName: ""}
	}
	return f.GetRows(sheets[0])
}

func readCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	// Spanish spreadsheet exports commonly use semicolons.
	if i := bytes.IndexByte(data, '\n'); i > 0 {
		first := data[:i]
		if bytes.ContainsRune(first, ';') && !bytes.ContainsRune(first, ',') {
			r.Comma = ';'
		}
	}
	return r.ReadAll()
}

// orderFromRows projects tabular rows into a ParsedOrder. The first row is
// the header; column indices come from case-insensitive synonym matching.
func orderFromRows(rows [][]string) *domain.ParsedOrder {
	order := &domain.ParsedOrder{Items: []domain.OrderItem{}}
	if len(rows) == 0 {
		order.Notes = "tabular document contains no rows"
		return order
	}

	headers := rows[0]
	dataRows := rows[1:]
	order.Table = &domain.OrderTable{Headers: headers, Rows: dataRows}
	order.RawText = joinRows(rows)

	productCol := findColumn(headers, productHeaders)
	quantityCol := findColumn(headers, quantityHeaders)
	clientCol := findColumn(headers, clientHeaders)

	if productCol < 0 {
		order.Notes = "no recognizable product column; manual review required"
		return order
	}

	for _, row := range dataRows {
		name := cell(row, productCol)
		if strings.TrimSpace(name) == "" && strings.TrimSpace(cell(row, quantityCol)) == "" {
			continue
		}
		client := strings.TrimSpace(cell(row, clientCol))
		if client != "" && order.Client == "" {
			order.Client = client
		}
		if client == "" {
			client = order.Client
		}
		item := newItem(name, cell(row, quantityCol), client, "", len(order.Items))
		order.Items = append(order.Items, item)
	}

	if len(order.Items) == 0 && order.RawText != "" {
		order.Notes = "no line items recognized; manual review required"
	}
	return order
}

func findColumn(headers []string, synonyms map[string]bool) int {
	for i, h := range headers {
		if synonyms[labels.Normalize(h)] {
			return i
		}
	}
	return -1
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func joinRows(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, "\t")
	}
	return strings.Join(lines, "\n")
}
