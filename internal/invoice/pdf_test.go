package invoice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	return Document{
		Title:    "GOLD SHOP INVOICE",
		ShopName: "Test Shop",
		Fields: []Field{
			{Label: "Invoice No", Value: "INV-20250315-0001"},
			{Label: "Item", Value: "Gold Ring"},
			{Label: "Final Price", Value: "INR 57850.28"},
		},
	}
}

func TestPDFRender(t *testing.T) {
	renderer := PDF{Enabled: true}
	require.True(t, renderer.Available())

	data, err := renderer.Render(sampleDocument())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "%PDF"))
	require.Greater(t, len(data), 500)
}

func TestPDFDisabled(t *testing.T) {
	renderer := PDF{}
	require.False(t, renderer.Available())

	_, err := renderer.Render(sampleDocument())
	require.Error(t, err)
}
