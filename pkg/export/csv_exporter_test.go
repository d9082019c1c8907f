package export

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCSVRender(t *testing.T) {
	data := NewDataset("Period", "Realized", "Expected")
	data.AddRow("01/08/2024", "150.00", "230.00")
	data.AddRow("02/08/2024", "0.00")

	raw, err := NewCSVExporter().Render(*data)
	require.NoError(t, err)
	require.Equal(t, "Period,Realized,Expected\n01/08/2024,150.00,230.00\n02/08/2024,0.00,\n", string(raw))
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}
