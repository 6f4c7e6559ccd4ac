package dates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"etiqo/internal/dates"
)

func TestPackingDate_SimpleFormats(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"slash separator", "Fecha: 12/05/2024", "2024-05-12"},
		{"dash separator", "Fecha: 12-05-2024", "2024-05-12"},
		{"dot separator", "Fecha: 12.05.2024", "2024-05-12"},
		{"single digit day and month", "1/3/2024", "2024-03-01"},
		{"mixed separators", "3-7.2025", "2025-07-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dates.PackingDate(tt.text)
			if tt.want == "" {
				assert.False(t, ok)
				assert.Empty(t, got)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPackingDate_TwoDigitYearPivot(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"year 24 resolves to 2024", "Envasado: 12/05/24", "2024-05-12"},
		{"year 69 resolves to 2069", "Envasado: 12/05/69", "2069-05-12"},
		{"year 70 resolves to 1970", "Envasado: 12/05/70", "1970-05-12"},
		{"year 99 resolves to 1999", "Envasado: 12/05/99", "1999-05-12"},
		{"year 00 resolves to 2000", "Envasado: 12/05/00", "2000-05-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dates.PackingDate(tt.text)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPackingDate_PrioritizesPackingLines(t *testing.T) {
	text := "Pedido: 01/01/2024\nFecha de envasado: 15/06/2024\nEntrega: 20/06/2024"

	got, ok := dates.PackingDate(text)
	assert.True(t, ok)
	assert.Equal(t, "2024-06-15", got)
}

func TestPackingDate_HarvestKeyword(t *testing.T) {
	text := "Documento 03/03/2024\nRecoleccion: 10/04/2024"

	got, ok := dates.PackingDate(text)
	assert.True(t, ok)
	assert.Equal(t, "2024-04-10", got)
}

func TestPackingDate_SkipsImpossibleDates(t *testing.T) {
	// 31/02 normalizes to March under time.Date; it must be rejected and the
	// next candidate tried instead.
	text := "Envasado: 31/02/2024\nFecha: 28/02/2024"

	got, ok := dates.PackingDate(text)
	assert.True(t, ok)
	assert.Equal(t, "2024-02-28", got)
}

func TestPackingDate_RejectsOutOfRangeYears(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"year below 1900", "12/05/1899"},
		{"year above 2100", "12/05/2101"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := dates.PackingDate(tt.text)
			assert.False(t, ok)
		})
	}
}

func TestPackingDate_NoDate(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty text", ""},
		{"no digits", "Albahaca fresca\nMenta"},
		{"digits but no date shape", "Pedido numero 123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dates.PackingDate(tt.text)
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}

func TestPackingDate_FirstValidCandidateWins(t *testing.T) {
	text := "Factura 05/01/2024\nAlbaran 07/02/2024"

	got, ok := dates.PackingDate(text)
	assert.True(t, ok)
	assert.Equal(t, "2024-01-05", got)
}
