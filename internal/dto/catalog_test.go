package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogOfferingRoundTripsOpaqueFields(t *testing.T) {
	raw := `{
		"id": 1,
		"materia": {"id": 1, "nombre": "Algebra"},
		"profesor": {"id": 10, "nombre": "Dr. A"},
		"schedules": [],
		"id_del_curso": "C-100",
		"ciclo": "2026-1",
		"capacidad_inscripcion": 30
	}`

	var offering CatalogOffering
	require.NoError(t, json.Unmarshal([]byte(raw), &offering))
	require.Equal(t, "C-100", offering.Extra["id_del_curso"])

	out, err := json.Marshal(offering)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, "C-100", decoded["id_del_curso"])
	assert.Equal(t, "2026-1", decoded["ciclo"])
	assert.Equal(t, float64(30), decoded["capacidad_inscripcion"])
	assert.Equal(t, "Algebra", decoded["materia"].(map[string]any)["nombre"])
}

func TestCatalogOfferingMarshalWithoutExtra(t *testing.T) {
	offering := CatalogOffering{
		ID:      1,
		Materia: CatalogMateria{ID: 1, Nombre: "Algebra"},
	}

	out, err := json.Marshal(offering)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, float64(1), decoded["id"])
	assert.NotContains(t, decoded, "extra")
}
