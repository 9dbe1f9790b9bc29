// internal/i18n/i18n_test.go
package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	require.NoError(t, Initialize("en"))

	assert.Equal(t, "Product not found", T("en", KeyProductNotFound))
	assert.Equal(t, "المنتج غير موجود", T("ar", KeyProductNotFound))
	assert.Equal(t, "Invalid request", T("en", KeyValidationInvalid, "request"))
}

func TestTranslateFallsBackToEnglish(t *testing.T) {
	require.NoError(t, Initialize("en"))

	assert.Equal(t, "Manufacturer not found", T("fr", KeyManufacturerNotFound))
	assert.Equal(t, "missing.key", T("ar", "missing.key"))
}

func TestMatch(t *testing.T) {
	require.NoError(t, Initialize("en"))

	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"ar", "ar"},
		{"ar-SA,ar;q=0.9,en;q=0.8", "ar"},
		{"en-US,en;q=0.9", "en"},
		{"fr-FR", "en"},
		{"not a header;;;", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.header))
		})
	}
}

func TestSupportedLanguages(t *testing.T) {
	require.NoError(t, Initialize("en"))

	assert.ElementsMatch(t, []string{"en", "ar"}, GetSupportedLanguages())
}

func TestNewWithArabicDefault(t *testing.T) {
	tr, err := New("ar")
	require.NoError(t, err)

	assert.Equal(t, "ar", tr.DefaultLanguage())
	assert.Equal(t, "ar", tr.Match(""))
	assert.Equal(t, "ar", tr.Match("fr-FR"))
	assert.Equal(t, "en", tr.Match("en-US,en;q=0.9"))
	assert.Equal(t, "المنتج غير موجود", tr.T("fr", KeyProductNotFound))
}

func TestNewRejectsUnknownDefault(t *testing.T) {
	_, err := New("de")
	assert.Error(t, err)

	tr, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "en", tr.DefaultLanguage())
}
