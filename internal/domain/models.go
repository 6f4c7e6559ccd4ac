package domain

// ParsedOrder is the result of parsing one purchase-order document. It exists
// only for the parse → edit → generate round trip; nothing in this codebase
// persists it.
type ParsedOrder struct {
	// Client is the free-text retailer/customer name as recognized. May be empty.
	Client string `json:"client"`
	// Items holds the recognized line items in document order.
	Items []OrderItem `json:"items"`
	// RawText is the full recognized text, kept for audit and debugging.
	RawText string `json:"raw_text"`
	// Notes is non-empty only when the parse degraded (vision failure, zero
	// items with non-empty text). An empty Notes means a clean parse.
	Notes string `json:"notes,omitempty"`
	// PackingDate is the ISO (YYYY-MM-DD) packing/harvest date recovered from
	// the document text, or empty when none was found.
	PackingDate string `json:"packing_date,omitempty"`
	// Table is set only when the source was tabular.
	Table *OrderTable `json:"table,omitempty"`
}

// OrderTable carries the raw tabular structure of a spreadsheet/CSV source.
type OrderTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// OrderItem is one recognized product line, prior to label generation.
type OrderItem struct {
	// ID is derived from the sanitized product name plus the positional index
	// (slug + ordinal). Unique within one parse result only.
	ID          string `json:"id"`
	ProductName string `json:"product_name"`
	// QuantityText is the quantity/weight text as found in the document.
	QuantityText string `json:"quantity_text"`
	// Quantity and Unit are optional parsed projections of QuantityText and
	// are absent when extraction was ambiguous.
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	// Client is a denormalized copy of the order's client, editable per item
	// before generation.
	Client    string    `json:"client"`
	LabelType LabelType `json:"label_type"`
	// PackingDate is denormalized from the parsed order (ISO form, may be empty).
	PackingDate string `json:"packing_date,omitempty"`
	// Include marks the item for generation. Items with Include=false never
	// reach the orchestrator.
	Include bool `json:"include"`
}

// GeneratedLabel is one printable artifact produced for an order item.
type GeneratedLabel struct {
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	Data     []byte `json:"data"`
	// StorageBucket optionally overrides the default artifact bucket.
	StorageBucket string `json:"storage_bucket,omitempty"`
	// StorageKey is set once the artifact has been handed to the object store.
	StorageKey string `json:"storage_key,omitempty"`
	// URL is a time-limited download link for the stored artifact. Empty when
	// presigning was unavailable; the artifact is still fetchable by key.
	URL string `json:"url,omitempty"`
}

// ItemResult is the outcome of label generation for a single item: either
// one or more labels, or a failure message. Exactly one of Labels/Err is set.
type ItemResult struct {
	Item   OrderItem        `json:"item"`
	Labels []GeneratedLabel `json:"labels,omitempty"`
	Err    string           `json:"error,omitempty"`
}

// Failed reports whether this item's generation failed.
func (r *ItemResult) Failed() bool {
	return r.Err != ""
}

// BatchResult holds one ItemResult per input item, in input order.
type BatchResult struct {
	Results   []ItemResult `json:"results"`
	Generated int          `json:"generated"`
	Failed    int          `json:"failed"`
}
