package labels

import (
	"strings"

	"etiqo/internal/domain"
)

// labelAliases maps normalized client names to layouts. Checked before the
// containment keywords.
var labelAliases = map[string]domain.LabelType{
	"MERCADONA":                     domain.LabelTypeMercadona,
	"MERCADONA S A":                 domain.LabelTypeMercadona,
	"CENTROS COMERCIALES CARREFOUR": domain.LabelTypeCarrefour,
	"CARREFOUR":                     domain.LabelTypeCarrefour,
	"CONSUM S COOP V":               domain.LabelTypeConsum,
	"CONSUM":                        domain.LabelTypeConsum,
	"ALCAMPO S A":                   domain.LabelTypeAlcampo,
	"ALCAMPO":                       domain.LabelTypeAlcampo,
}

// labelKeywords is walked in order; the first containment match wins. The
// order is load-bearing for ambiguous client names and is pinned by tests;
// do not reorder without fixtures.
var labelKeywords = []struct {
	keyword string
	layout  domain.LabelType
}{
	{"MERCADONA", domain.LabelTypeMercadona},
	{"CARREFOUR", domain.LabelTypeCarrefour},
	{"CONSUM", domain.LabelTypeConsum},
	{"ALCAMPO", domain.LabelTypeAlcampo},
}

// ResolveLabelType maps a free-text client/retailer name to a label layout.
// Total: empty or unrecognized input resolves to the generic layout.
func ResolveLabelType(clientText string) domain.LabelType {
	normalized := Normalize(clientText)
	if normalized == "" {
		return domain.LabelTypeGeneric
	}
	if layout, ok := labelAliases[normalized]; ok {
		return layout
	}
	for _, entry := range labelKeywords {
		if strings.Contains(normalized, entry.keyword) {
			return entry.layout
		}
	}
	return domain.LabelTypeGeneric
}
