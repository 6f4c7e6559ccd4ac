package labels

import "strings"

// Product is a canonical product identity, distinct from the free-text name
// as written on the source document.
type Product string

const (
	ProductPakChoi     Product = "pak_choi"
	ProductHierbabuena Product = "hierbabuena"
	ProductAlbahaca    Product = "albahaca"
	ProductCilantro    Product = "cilantro"
	ProductMenta       Product = "menta"
	ProductEneldo      Product = "eneldo"
	ProductCebollino   Product = "cebollino"
	ProductPerejil     Product = "perejil"
	ProductRucula      Product = "rucula"
	ProductTomillo     Product = "tomillo"
)

// productKeywords is walked in order; the first containment match wins.
// Multi-word keywords come before shorter ones they could shadow: PAK CHOI
// stays first, and HIERBABUENA precedes MENTA because "menta hierbabuena"
// names spearmint, not mint. Order is pinned by tests.
var productKeywords = []struct {
	keyword string
	product Product
}{
	{"PAK CHOI", ProductPakChoi},
	{"HIERBABUENA", ProductHierbabuena},
	{"ALBAHACA", ProductAlbahaca},
	{"CILANTRO", ProductCilantro},
	{"MENTA", ProductMenta},
	{"ENELDO", ProductEneldo},
	{"CEBOLLINO", ProductCebollino},
	{"PEREJIL", ProductPerejil},
	{"RUCULA", ProductRucula},
	{"TOMILLO", ProductTomillo},
}

// ResolveCanonicalProduct maps a free-text product name to its canonical
// identity. Returns false when no keyword matches; callers then fall back to
// a product-agnostic layout. Matching is invariant to case, diacritics and
// punctuation ("PAK-CHOÏ bio" and "pak choi" resolve identically).
func ResolveCanonicalProduct(productNameText string) (Product, bool) {
	normalized := Normalize(productNameText)
	if normalized == "" {
		return "", false
	}
	for _, entry := range productKeywords {
		if strings.Contains(normalized, entry.keyword) {
			return entry.product, true
		}
	}
	return "", false
}

// defaultVarieties maps canonical products to their registered default
// variety label. Products with no registered default are absent.
var defaultVarieties = map[Product]string{
	ProductPakChoi:     "Baby Pak Choi",
	ProductAlbahaca:    "Albahaca Genovesa",
	ProductMenta:       "Menta Piperita",
	ProductHierbabuena: "Mentha spicata",
	ProductRucula:      "Rucula Selvatica",
}

// DefaultVariety returns the registered default variety for a canonical
// product, or false when the product has none.
func DefaultVariety(p Product) (string, bool) {
	v, ok := defaultVarieties[p]
	return v, ok
}
