package simulator_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	derr "github.com/biosimkit/biosimkit/pkg/domain/errors"
	"github.com/biosimkit/biosimkit/pkg/domain/formats"
	"github.com/biosimkit/biosimkit/pkg/domain/ontology"
	"github.com/biosimkit/biosimkit/pkg/domain/simulation"
	"github.com/biosimkit/biosimkit/pkg/domain/simulator"
)

func writeProperties(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "properties.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("it loads a properties document", func(t *testing.T) {
		path := writeProperties(t, `{
	"id": "tellurium",
	"name": "tellurium",
	"version": "2.4.1",
	"image": "crbm/biosimulations_tellurium:2.4.1",
	"algorithms": [
		{
			"kisaoTerm": {"ontology": "KISAO", "id": "0000019", "name": "CVODE"},
			"parameters": [
				{
					"kisaoTerm": {"ontology": "KISAO", "id": "0000209"},
					"name": "relative tolerance",
					"type": "float",
					"value": 0.000001,
					"recommended": true
				}
			],
			"modelingFrameworks": [{"ontology": "SBO", "id": "0000293"}],
			"modelFormats": [{"id": "SBML"}],
			"simulationFormats": [{"id": "SED-ML"}],
			"archiveFormats": [{"id": "COMBINE"}]
		}
	]
}`)

		sim, err := simulator.Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if sim.ID != "tellurium" {
			t.Errorf("mismatch. (expected, actual) = (%s, %s)", "tellurium", sim.ID)
		}
		if sim.Image != "crbm/biosimulations_tellurium:2.4.1" {
			t.Errorf("unexpected image: %s", sim.Image)
		}

		expected := ontology.Term{Ontology: "KISAO", ID: "0000019", Name: "CVODE"}
		if actual := sim.Algorithms[0].KisaoTerm; !actual.Equal(expected) {
			t.Errorf("mismatch. (expected, actual) = (%v, %v)", expected, actual)
		}

		tolerance := 0.000001
		expectedParam := simulation.AlgorithmParameter{
			Name:        "relative tolerance",
			KisaoTerm:   ontology.Term{Ontology: "KISAO", ID: "0000209"},
			Type:        "float",
			Value:       &tolerance,
			Recommended: true,
		}
		if actual := sim.Algorithms[0].Parameters[0]; !actual.Equal(expectedParam) {
			t.Errorf("mismatch. (expected, actual) = (%+v, %+v)", expectedParam, actual)
		}
	})

	t.Run("kisao ids are normalized on load", func(t *testing.T) {
		path := writeProperties(t, `{
	"id": "sim", "algorithms": [{"kisaoTerm": {"ontology": "KISAO", "id": "KISAO:19"}}]
}`)

		sim, err := simulator.Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if actual := sim.Algorithms[0].KisaoTerm.ID; actual != "0000019" {
			t.Errorf("mismatch. (expected, actual) = (%s, %s)", "0000019", actual)
		}
	})

	for name, content := range map[string]string{
		"a document without id":        `{"algorithms": [{"kisaoTerm": {"id": "0000019"}}]}`,
		"a document without algorithm": `{"id": "sim", "algorithms": []}`,
		"a malformed kisao id":         `{"id": "sim", "algorithms": [{"kisaoTerm": {"id": "CVODE"}}]}`,
		"a non-json document":          `it is not json`,
	} {
		t.Run("it rejects "+name, func(t *testing.T) {
			path := writeProperties(t, content)

			_, err := simulator.Load(path)
			ioErr := new(derr.IoError)
			if !errors.As(err, &ioErr) {
				t.Errorf("unexpected error type: %v", err)
			}
		})
	}

	t.Run("a missing file is an IoError", func(t *testing.T) {
		_, err := simulator.Load(filepath.Join(t.TempDir(), "no-such.json"))
		ioErr := new(derr.IoError)
		if !errors.As(err, &ioErr) {
			t.Errorf("unexpected error type: %v", err)
		}
	})
}

func TestSimulator_Supports(t *testing.T) {
	framework := ontology.Term{Ontology: "SBO", ID: "0000293", Name: "non-spatial continuous framework"}
	sim := &simulator.Simulator{
		ID: "sim",
		Algorithms: []simulation.Algorithm{
			{
				KisaoTerm:          ontology.Term{Ontology: "KISAO", ID: "0000019"},
				ModelingFrameworks: []ontology.Term{{Ontology: "SBO", ID: "0000293"}},
				ModelFormats:       []formats.Format{{ID: "SBML"}},
				SimulationFormats:  []formats.Format{{ID: "SED-ML"}},
				ArchiveFormats:     []formats.Format{{ID: "COMBINE"}},
			},
			{
				KisaoTerm:          ontology.Term{Ontology: "KISAO", ID: "0000450"},
				ModelingFrameworks: []ontology.Term{{Ontology: "SBO", ID: "0000547"}},
				ModelFormats:       []formats.Format{{ID: "BNGL"}},
				SimulationFormats:  []formats.Format{{ID: "SED-ML"}},
				ArchiveFormats:     []formats.Format{{ID: "COMBINE"}},
			},
		},
	}

	t.Run("a fully covered combination is supported", func(t *testing.T) {
		if !sim.Supports(framework, formats.SBML, formats.SEDML, formats.COMBINE) {
			t.Error("not supported, unexpectedly.")
		}
	})

	t.Run("terms match by ontology and id, ignoring annotations", func(t *testing.T) {
		bare := ontology.Term{Ontology: "SBO", ID: "0000293"}
		if !sim.Supports(bare, formats.SBML, formats.SEDML, formats.COMBINE) {
			t.Error("not supported, unexpectedly.")
		}
	})

	t.Run("every leg must be covered by one algorithm", func(t *testing.T) {
		// first algorithm covers SBML, second covers the stochastic
		// framework. neither covers both at once.
		stochastic := ontology.Term{Ontology: "SBO", ID: "0000547"}
		if sim.Supports(stochastic, formats.SBML, formats.SEDML, formats.COMBINE) {
			t.Error("supported, unexpectedly.")
		}
	})

	t.Run("an uncovered model format is not supported", func(t *testing.T) {
		if sim.Supports(framework, formats.CellML, formats.SEDML, formats.COMBINE) {
			t.Error("supported, unexpectedly.")
		}
	})

	t.Run("an uncovered archive format is not supported", func(t *testing.T) {
		if sim.Supports(framework, formats.SBML, formats.SEDML, formats.SESSL) {
			t.Error("supported, unexpectedly.")
		}
	})
}
