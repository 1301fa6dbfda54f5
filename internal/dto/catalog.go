package dto

import (
	"encoding/json"
	"fmt"
)

// CatalogMateria mirrors the upstream catalog's subject shape.
type CatalogMateria struct {
	ID              int     `json:"id"`
	Nombre          string  `json:"nombre"`
	NoDeCatalogo    *string `json:"no_de_catalogo,omitempty"`
	Codigo          *string `json:"codigo,omitempty"`
}

// CatalogProfesor mirrors the upstream catalog's professor shape.
type CatalogProfesor struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// CatalogSalon mirrors the upstream catalog's room shape.
type CatalogSalon struct {
	ID        int    `json:"id"`
	Nombre    string `json:"nombre"`
	Capacidad *int   `json:"capacidad,omitempty"`
}

// CatalogScheduleSlot mirrors one weekly meeting slot as returned upstream.
type CatalogScheduleSlot struct {
	ID          int             `json:"id,omitempty"`
	Salon       *CatalogSalon   `json:"salon,omitempty"`
	Profesor    *MaybeProfessor `json:"profesor,omitempty"`
	Dia         string          `json:"dia"`
	HoraInicio  string          `json:"hora_inicio"`
	HoraFin     string          `json:"hora_fin"`
	Curso       int             `json:"curso,omitempty"`

	// Legacy day-boolean rows (see SPEC_FULL.md §4.1 supplement).
	Lunes     bool `json:"lunes,omitempty"`
	Martes    bool `json:"martes,omitempty"`
	Miercoles bool `json:"miercoles,omitempty"`
	Jueves    bool `json:"jueves,omitempty"`
	Viernes   bool `json:"viernes,omitempty"`
	Sabado    bool `json:"sabado,omitempty"`
	Domingo   bool `json:"domingo,omitempty"`
}

// CatalogOffering is one element of the upstream catalog response array. The
// metadata-only fields are preserved opaquely via Extra.
type CatalogOffering struct {
	ID        int                   `json:"id"`
	Materia   CatalogMateria        `json:"materia"`
	Profesor  *MaybeProfessor       `json:"profesor"`
	Adjunto   *MaybeProfessor       `json:"adjunto,omitempty"`
	Schedules []CatalogScheduleSlot `json:"schedules"`
	Extra     map[string]any        `json:"-"`
}

// UnmarshalJSON captures every field the typed struct doesn't claim into
// Extra, preserving opaque pass-through metadata from the upstream catalog
// (id_del_curso, ciclo, sesion, ... per SPEC_FULL.md §3 supplement).
func (c *CatalogOffering) UnmarshalJSON(data []byte) error {
	type alias CatalogOffering
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = CatalogOffering(a)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	known := map[string]struct{}{
		"id": {}, "materia": {}, "profesor": {}, "adjunto": {}, "schedules": {},
	}
	extra := make(map[string]any)
	for key, value := range raw {
		if _, ok := known[key]; ok {
			continue
		}
		var decoded any
		if err := json.Unmarshal(value, &decoded); err != nil {
			continue
		}
		extra[key] = decoded
	}
	if len(extra) > 0 {
		c.Extra = extra
	}
	return nil
}

// MarshalJSON re-emits the typed fields alongside every opaque pass-through
// field captured into Extra, so the detailed compatible_schedules view echoes
// the upstream payload verbatim per SPEC_FULL.md §3/§4.6.
func (c CatalogOffering) MarshalJSON() ([]byte, error) {
	type alias CatalogOffering
	known, err := json.Marshal(alias(c))
	if err != nil {
		return nil, err
	}

	if len(c.Extra) == 0 {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(c.Extra)+5)
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(known, &decoded); err != nil {
		return nil, err
	}
	for k, v := range decoded {
		merged[k] = v
	}
	for k, v := range c.Extra {
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		merged[k] = encoded
	}
	return json.Marshal(merged)
}

// MaybeProfessor accepts the upstream catalog's three possible shapes for a
// professor reference: null, a bare integer id, or a full {id, nombre}
// object, and normalizes all three to an optional CatalogProfesor.
type MaybeProfessor struct {
	Value *CatalogProfesor
}

// UnmarshalJSON implements the tolerant profesor/adjunto decode required by
// SPEC_FULL.md §6.
func (m *MaybeProfessor) UnmarshalJSON(data []byte) error {
	trimmed := trimJSONWhitespace(data)
	if string(trimmed) == "null" {
		m.Value = nil
		return nil
	}

	var id int
	if err := json.Unmarshal(data, &id); err == nil {
		m.Value = &CatalogProfesor{ID: id}
		return nil
	}

	var full CatalogProfesor
	if err := json.Unmarshal(data, &full); err != nil {
		return fmt.Errorf("profesor: unsupported shape: %w", err)
	}
	m.Value = &full
	return nil
}

// MarshalJSON round-trips the normalized shape as a full object, or null.
func (m MaybeProfessor) MarshalJSON() ([]byte, error) {
	if m.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func trimJSONWhitespace(data []byte) []byte {
	start, end := 0, len(data)
	for start < end && isJSONSpace(data[start]) {
		start++
	}
	for end > start && isJSONSpace(data[end-1]) {
		end--
	}
	return data[start:end]
}

func isJSONSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
