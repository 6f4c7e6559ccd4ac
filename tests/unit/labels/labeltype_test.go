package labels_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"etiqo/internal/domain"
	"etiqo/internal/labels"
)

func TestResolveLabelType(t *testing.T) {
	tests := []struct {
		name   string
		client string
		want   domain.LabelType
	}{
		{"empty resolves generic", "", domain.LabelTypeGeneric},
		{"whitespace resolves generic", "   ", domain.LabelTypeGeneric},
		{"unknown client resolves generic", "Fruteria Paco", domain.LabelTypeGeneric},
		{"exact alias", "Mercadona", domain.LabelTypeMercadona},
		{"legal form alias", "MERCADONA, S.A.", domain.LabelTypeMercadona},
		{"carrefour legal name", "Centros Comerciales Carrefour", domain.LabelTypeCarrefour},
		{"consum cooperative", "CONSUM, S. COOP. V.", domain.LabelTypeConsum},
		{"alcampo", "Alcampo S.A.", domain.LabelTypeAlcampo},
		{"keyword containment", "Pedido para MERCADONA Valencia", domain.LabelTypeMercadona},
		{"lowercase containment", "entrega carrefour norte", domain.LabelTypeCarrefour},
		{"accents ignored", "Mercadóna", domain.LabelTypeMercadona},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, labels.ResolveLabelType(tt.client))
		})
	}
}

func TestResolveLabelType_KeywordOrder(t *testing.T) {
	// A client naming two retailers resolves to the earlier keyword.
	got := labels.ResolveLabelType("Mercadona via Carrefour logistics")
	assert.Equal(t, domain.LabelTypeMercadona, got)
}

func TestLabelTypeValid(t *testing.T) {
	for _, lt := range domain.AllLabelTypes {
		assert.True(t, lt.Valid(), "label type %q should be valid", lt)
	}
	assert.False(t, domain.LabelType("lidl").Valid())
	assert.False(t, domain.LabelType("").Valid())
}
