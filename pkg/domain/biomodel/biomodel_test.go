package biomodel_test

import (
	"testing"

	"github.com/biosimkit/biosimkit/pkg/domain/biomodel"
	"github.com/biosimkit/biosimkit/pkg/domain/formats"
	"github.com/biosimkit/biosimkit/pkg/domain/meta"
)

func ref[T any](v T) *T {
	return &v
}

func exampleBiomodel() *biomodel.Biomodel {
	return &biomodel.Biomodel{
		ID:       "model_1",
		Name:     "enzymatic reaction",
		FileName: "model.xml",
		Format:   formats.SBML,
		Taxon:    &biomodel.Taxon{ID: 9606, Name: "Homo sapiens"},
		Tags:     []string{"enzyme", "kinetics"},
		Authors: []meta.Person{
			{FirstName: "Jane", LastName: "Doe"},
		},
		Parameters: []biomodel.Parameter{
			{
				ID:     "init_concentration_S1",
				Name:   "Initial concentration of S1",
				Group:  biomodel.GroupInitialConditions,
				Type:   "float",
				Target: "/sbml:sbml/sbml:model/sbml:listOfSpecies/sbml:species[@id='S1']/@initialConcentration",
				Value:  ref(10.),
				Units:  "mole",
			},
			{
				ID:     "k_cat",
				Group:  "Other global parameters",
				Type:   "float",
				Target: "/sbml:sbml/sbml:model/sbml:listOfParameters/sbml:parameter[@id='k_cat']/@value",
				Value:  ref(0.5),
			},
		},
		Variables: []biomodel.Variable{
			{ID: "S1", Name: "substrate", Group: "Species amounts/concentrations", Type: "float"},
			{ID: "P1", Name: "product", Group: "Species amounts/concentrations", Type: "float"},
		},
	}
}

func TestBiomodel_Equal(t *testing.T) {
	t.Run("a model equals its copy", func(t *testing.T) {
		if !exampleBiomodel().Equal(exampleBiomodel()) {
			t.Error("model != its copy, unexpectedly.")
		}
	})

	t.Run("list ordering does not matter", func(t *testing.T) {
		a := exampleBiomodel()
		b := exampleBiomodel()
		b.Parameters[0], b.Parameters[1] = b.Parameters[1], b.Parameters[0]
		b.Variables[0], b.Variables[1] = b.Variables[1], b.Variables[0]
		b.Tags[0], b.Tags[1] = b.Tags[1], b.Tags[0]

		if !a.Equal(b) {
			t.Error("a != b, unexpectedly.")
		}
	})

	t.Run("parameter values are compared by pointee", func(t *testing.T) {
		a := exampleBiomodel()
		b := exampleBiomodel()
		b.Parameters[0].Value = ref(10.)

		if !a.Equal(b) {
			t.Error("a != b, unexpectedly.")
		}

		b.Parameters[0].Value = ref(11.)
		if a.Equal(b) {
			t.Error("a == b, unexpectedly.")
		}

		b.Parameters[0].Value = nil
		if a.Equal(b) {
			t.Error("a == b, unexpectedly.")
		}
	})

	t.Run("taxon matters", func(t *testing.T) {
		a := exampleBiomodel()
		b := exampleBiomodel()
		b.Taxon = nil
		if a.Equal(b) {
			t.Error("a == b, unexpectedly.")
		}
	})

	t.Run("nil equals nil only", func(t *testing.T) {
		var nilModel *biomodel.Biomodel
		if !nilModel.Equal(nil) {
			t.Error("nil != nil, unexpectedly.")
		}
		if nilModel.Equal(exampleBiomodel()) {
			t.Error("nil == a model, unexpectedly.")
		}
	})
}
