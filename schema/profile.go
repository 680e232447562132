package schema

import (
	"sort"

	"github.com/spektr-org/tabula/dataset"
)

// ============================================================================
// PROFILE — Per-field statistics and data health
// ============================================================================
// Inspects every row (not just the first) so the editor can show sample
// values and the user can judge how trustworthy the inferred types are.
//
// Pipeline per field:
//   1. Count missing cells (absent key or null)
//   2. Collect distinct rendered values → unique count + samples
//   3. Infer each present cell and compare with the schema type
// ============================================================================

const maxSamples = 10

// FieldProfile summarises the values of one field.
type FieldProfile struct {
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Total       int       `json:"total"`
	NullCount   int       `json:"nullCount"`
	UniqueCount int       `json:"uniqueCount"`
	Mismatched  int       `json:"mismatched"` // present cells whose own type differs from Type
	Samples     []string  `json:"samples"`
	Cardinality string    `json:"cardinality"` // "low", "medium", "high"
}

// HealthMetrics are percentages in [0, 100].
type HealthMetrics struct {
	Completeness float64 `json:"completeness"`
	Consistency  float64 `json:"consistency"`
}

// Profile computes a FieldProfile for every schema field, in schema order.
func Profile(s Schema, rows []dataset.Row) []FieldProfile {
	profiles := make([]FieldProfile, len(s.Fields))
	for i, f := range s.Fields {
		profiles[i] = profileField(f, rows)
	}
	return profiles
}

func profileField(f Field, rows []dataset.Row) FieldProfile {
	p := FieldProfile{Name: f.Name, Type: f.Type, Total: len(rows)}
	unique := make(map[string]bool)

	for _, row := range rows {
		v, ok := row.Lookup(f.Name)
		if !ok {
			p.NullCount++
			continue
		}
		unique[v.Text()] = true
		if Infer(v) != f.Type {
			p.Mismatched++
		}
	}

	p.UniqueCount = len(unique)
	p.Samples = collectSamples(unique, maxSamples)

	switch {
	case p.UniqueCount <= 10:
		p.Cardinality = "low"
	case p.UniqueCount <= 100:
		p.Cardinality = "medium"
	default:
		p.Cardinality = "high"
	}
	return p
}

// Health derives dataset-wide metrics from the field profiles.
// Completeness: present cells / all cells.
// Consistency: present cells matching their field type / present cells.
func Health(s Schema, rows []dataset.Row) HealthMetrics {
	if len(rows) == 0 || len(s.Fields) == 0 {
		return HealthMetrics{}
	}

	var cells, present, consistent int
	for _, p := range Profile(s, rows) {
		cells += p.Total
		present += p.Total - p.NullCount
		consistent += p.Total - p.NullCount - p.Mismatched
	}

	m := HealthMetrics{
		Completeness: float64(present) / float64(cells) * 100,
	}
	if present > 0 {
		m.Consistency = float64(consistent) / float64(present) * 100
	}
	return m
}

// collectSamples picks up to max distinct values, sorted for stable output.
func collectSamples(set map[string]bool, max int) []string {
	samples := make([]string, 0, len(set))
	for v := range set {
		samples = append(samples, v)
	}
	sort.Strings(samples)
	if len(samples) > max {
		samples = samples[:max]
	}
	return samples
}
