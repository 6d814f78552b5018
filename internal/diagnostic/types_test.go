package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Order(t *testing.T) {
	var d Diagnostics

	d.AddWarning(CodeUnsupportedType, "sheet Map, column tiles: type Layer unsupported", "cpp", "Map.tiles")
	d.AddInfo(CodeRefCycle, "cycle broken at A", "", "A")
	d.AddError(CodeConfig, "missing namespace", "csharp", "")

	msgs := d.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "[cpp] Map.tiles: [unsupported-type] sheet Map, column tiles: type Layer unsupported", msgs[0])
	assert.Equal(t, "[csharp]: [config] missing namespace", msgs[1])

	assert.True(t, d.HasErrors())
	assert.Len(t, d.Warnings(), 1)
	assert.Len(t, d.Errors(), 1)
	require.Error(t, d.Error())
	assert.Contains(t, d.Error().Error(), "missing namespace")
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.AddWarning("x", "first", "", "")
	b.AddWarning("y", "second", "", "")
	a.Merge(b)

	require.Len(t, a.Items, 2)
	assert.Equal(t, "second", a.Items[1].Message)
	assert.False(t, a.HasErrors())
	assert.NoError(t, a.Error())
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(9).String())
}
