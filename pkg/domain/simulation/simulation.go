package simulation

import (
	"github.com/biosimkit/biosimkit/pkg/cmp"
	"github.com/biosimkit/biosimkit/pkg/domain/biomodel"
	"github.com/biosimkit/biosimkit/pkg/domain/formats"
	"github.com/biosimkit/biosimkit/pkg/domain/meta"
	"github.com/biosimkit/biosimkit/pkg/domain/ontology"
	"github.com/biosimkit/biosimkit/pkg/utils/rfctime"
)

// TimecourseSimulation describes a uniform time-course experiment over one
// model: what to change, how to integrate, and when to record.
type TimecourseSimulation struct {
	ID   string
	Name string

	Model                 *biomodel.Biomodel
	ModelParameterChanges []ParameterChange

	StartTime       float64
	OutputStartTime float64
	EndTime         float64
	NumTimePoints   int

	Algorithm                 Algorithm
	AlgorithmParameterChanges []AlgorithmParameterChange

	Format formats.Format

	Description string
	Tags        []string
	Authors     []meta.Person
	Created     rfctime.RFC3339
	Updated     rfctime.RFC3339
}

// Equal is semantic equality; list-valued fields ignore ordering.
func (s *TimecourseSimulation) Equal(o *TimecourseSimulation) bool {
	if s == nil || o == nil {
		return s == nil && o == nil
	}
	return s.ID == o.ID &&
		s.Name == o.Name &&
		s.Model.Equal(o.Model) &&
		cmp.SliceContentEqWith(s.ModelParameterChanges, o.ModelParameterChanges, ParameterChange.Equal) &&
		s.StartTime == o.StartTime &&
		s.OutputStartTime == o.OutputStartTime &&
		s.EndTime == o.EndTime &&
		s.NumTimePoints == o.NumTimePoints &&
		s.Algorithm.Equal(o.Algorithm) &&
		cmp.SliceContentEqWith(
			s.AlgorithmParameterChanges, o.AlgorithmParameterChanges,
			AlgorithmParameterChange.Equal,
		) &&
		s.Format.Equal(o.Format) &&
		s.Description == o.Description &&
		cmp.SliceContentEq(s.Tags, o.Tags) &&
		cmp.SliceContentEqWith(s.Authors, o.Authors, meta.Person.Equal) &&
		s.Created.Equal(o.Created) &&
		s.Updated.Equal(o.Updated)
}

// Algorithm is a simulation algorithm, KiSAO-qualified.
type Algorithm struct {
	ID        string        `json:"id,omitempty"`
	Name      string        `json:"name,omitempty"`
	KisaoTerm ontology.Term `json:"kisaoTerm"`

	Parameters []AlgorithmParameter `json:"parameters,omitempty"`

	ModelingFrameworks []ontology.Term  `json:"modelingFrameworks,omitempty"`
	ModelFormats       []formats.Format `json:"modelFormats,omitempty"`
	SimulationFormats  []formats.Format `json:"simulationFormats,omitempty"`
	ArchiveFormats     []formats.Format `json:"archiveFormats,omitempty"`
}

func (a Algorithm) Equal(o Algorithm) bool {
	return a.ID == o.ID &&
		a.Name == o.Name &&
		a.KisaoTerm.Equal(o.KisaoTerm) &&
		cmp.SliceContentEqWith(a.Parameters, o.Parameters, AlgorithmParameter.Equal) &&
		cmp.SliceContentEqWith(a.ModelingFrameworks, o.ModelingFrameworks, ontology.Term.Equal) &&
		cmp.SliceContentEqWith(a.ModelFormats, o.ModelFormats, formats.Format.Equal) &&
		cmp.SliceContentEqWith(a.SimulationFormats, o.SimulationFormats, formats.Format.Equal) &&
		cmp.SliceContentEqWith(a.ArchiveFormats, o.ArchiveFormats, formats.Format.Equal)
}

// AlgorithmParameter is a tunable of an algorithm, like a solver tolerance.
type AlgorithmParameter struct {
	ID        string        `json:"id,omitempty"`
	Name      string        `json:"name,omitempty"`
	KisaoTerm ontology.Term `json:"kisaoTerm"`

	// Type is the value's data type: "boolean", "integer", "float" or
	// "string".
	Type  string   `json:"type,omitempty"`
	Value *float64 `json:"value,omitempty"`

	// Recommended marks parameters worth exposing in a UI.
	Recommended bool `json:"recommended,omitempty"`
}

func (p AlgorithmParameter) Equal(o AlgorithmParameter) bool {
	if (p.Value == nil) != (o.Value == nil) {
		return false
	}
	if p.Value != nil && *p.Value != *o.Value {
		return false
	}
	p.Value, o.Value = nil, nil
	return p == o
}

// ParameterChange sets a model quantity, addressed by target, to a value.
type ParameterChange struct {
	Target string
	Value  float64
}

func (c ParameterChange) Equal(o ParameterChange) bool {
	return c == o
}

// AlgorithmParameterChange overrides one algorithm parameter for a run.
type AlgorithmParameterChange struct {
	Parameter AlgorithmParameter
	Value     float64
}

func (c AlgorithmParameterChange) Equal(o AlgorithmParameterChange) bool {
	return c.Parameter.Equal(o.Parameter) && c.Value == o.Value
}
