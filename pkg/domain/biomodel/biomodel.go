package biomodel

import (
	"github.com/biosimkit/biosimkit/pkg/cmp"
	"github.com/biosimkit/biosimkit/pkg/domain/formats"
	"github.com/biosimkit/biosimkit/pkg/domain/meta"
	"github.com/biosimkit/biosimkit/pkg/domain/ontology"
	"github.com/biosimkit/biosimkit/pkg/utils/rfctime"
)

// Parameter group of species initial amounts/concentrations.
//
// The validator zeroes parameters in this group when it synthesizes an
// example simulation for a bare model.
const GroupInitialConditions = "Initial species amounts/concentrations"

// Biomodel is a typed mirror of a model document (e.g. an SBML file).
type Biomodel struct {
	ID   string
	Name string

	// FileName is the name the model file should take inside an archive.
	FileName string

	Format    formats.Format
	Framework ontology.Term
	Taxon     *Taxon

	Description string
	Tags        []string
	Authors     []meta.Person
	Created     rfctime.RFC3339
	Updated     rfctime.RFC3339

	Parameters []Parameter
	Variables  []Variable
}

// Equal is semantic equality: field-wise, order-insensitive over Tags,
// Authors, Parameters and Variables.
func (m *Biomodel) Equal(o *Biomodel) bool {
	if m == nil || o == nil {
		return m == nil && o == nil
	}
	return m.ID == o.ID &&
		m.Name == o.Name &&
		m.FileName == o.FileName &&
		m.Format.Equal(o.Format) &&
		m.Framework.Equal(o.Framework) &&
		m.Taxon.Equal(o.Taxon) &&
		m.Description == o.Description &&
		cmp.SliceContentEq(m.Tags, o.Tags) &&
		cmp.SliceContentEqWith(m.Authors, o.Authors, meta.Person.Equal) &&
		m.Created.Equal(o.Created) &&
		m.Updated.Equal(o.Updated) &&
		cmp.SliceContentEqWith(m.Parameters, o.Parameters, Parameter.Equal) &&
		cmp.SliceContentEqWith(m.Variables, o.Variables, Variable.Equal)
}

// Parameter is a changeable quantity of a model: a global parameter, an
// initial condition, or a kinetic-law parameter of one reaction.
type Parameter struct {
	ID    string
	Name  string
	Group string

	// Type is the value's data type: "boolean", "integer", "float" or
	// "string". Everything read from SBML is "float".
	Type string

	// Target addresses the parameter in the source document, XPath-like.
	Target string

	Value *float64
	Units string

	// Recommended marks parameters worth exposing in a UI.
	Recommended bool
}

func (p Parameter) Equal(o Parameter) bool {
	if (p.Value == nil) != (o.Value == nil) {
		return false
	}
	if p.Value != nil && *p.Value != *o.Value {
		return false
	}
	p.Value, o.Value = nil, nil
	return p == o
}

// Variable is an observable quantity of a model, typically a species.
type Variable struct {
	ID     string
	Name   string
	Group  string
	Type   string
	Target string
	Units  string
}

func (v Variable) Equal(o Variable) bool {
	return v == o
}

// Taxon is the organism a model describes.
type Taxon struct {
	ID   int
	Name string
}

func (t *Taxon) Equal(o *Taxon) bool {
	if t == nil || o == nil {
		return t == nil && o == nil
	}
	return *t == *o
}
