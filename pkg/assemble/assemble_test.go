package assemble_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/biosimkit/biosimkit/pkg/assemble"
	"github.com/biosimkit/biosimkit/pkg/domain/biomodel"
	derr "github.com/biosimkit/biosimkit/pkg/domain/errors"
	"github.com/biosimkit/biosimkit/pkg/domain/formats"
	"github.com/biosimkit/biosimkit/pkg/domain/ontology"
	"github.com/biosimkit/biosimkit/pkg/domain/simulation"
	"github.com/biosimkit/biosimkit/pkg/io/omex"
	"github.com/biosimkit/biosimkit/pkg/io/sedml"
)

func exampleSimulation() *simulation.TimecourseSimulation {
	return &simulation.TimecourseSimulation{
		ID:   "simulation_1",
		Name: "example simulation",
		Model: &biomodel.Biomodel{
			ID:       "model_1",
			Name:     "example model",
			FileName: "model.xml",
			Format:   formats.SBML,
			Variables: []biomodel.Variable{
				{
					ID:     "S1",
					Target: "/sbml:sbml/sbml:model/sbml:listOfSpecies/sbml:species[@id='S1']",
				},
			},
		},
		StartTime:     0,
		EndTime:       10,
		NumTimePoints: 10,
		Algorithm: simulation.Algorithm{
			KisaoTerm: ontology.Term{Ontology: "KISAO", ID: "0000019"},
		},
		Format: formats.SEDML,
	}
}

func TestForSimulation(t *testing.T) {
	t.Run("the assembled archive should contain the model and a master SED-ML file", func(t *testing.T) {
		sim := exampleSimulation()

		modelFile := filepath.Join(t.TempDir(), "source-model.xml")
		if err := os.WriteFile(modelFile, []byte("<sbml/>"), 0644); err != nil {
			t.Fatal(err)
		}

		outDir := t.TempDir()
		ar, path, err := assemble.ForSimulation(modelFile, sim, nil, outDir)
		if err != nil {
			t.Fatal(err)
		}
		if path != filepath.Join(outDir, "simulation_1.omex") {
			t.Errorf("unexpected archive path: %s", path)
		}
		if ar.MasterFile != "./simulation_1.sedml" {
			t.Errorf("unexpected master file: %s", ar.MasterFile)
		}

		unpackDir := t.TempDir()
		got, err := (omex.Reader{}).Read(path, unpackDir)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(ar) {
			t.Errorf("mismatch. (expected, actual) = (%+v, %+v)", ar, got)
		}

		sims, outputs, err := (sedml.Reader{}).Read(filepath.Join(unpackDir, "simulation_1.sedml"))
		if err != nil {
			t.Fatal(err)
		}
		if len(sims) != 1 || !sims[0].Equal(sim) {
			t.Errorf("mismatch. (expected, actual) = (%+v, %+v)", sim, sims)
		}
		if len(outputs.Reports) != 1 {
			t.Errorf("unexpected number of reports: %d", len(outputs.Reports))
		}

		model, err := os.ReadFile(filepath.Join(unpackDir, "model.xml"))
		if err != nil {
			t.Fatal(err)
		}
		if string(model) != "<sbml/>" {
			t.Errorf("model content is not carried over: %q", string(model))
		}
	})

	t.Run("an unreadable model file should be an ArchiveIoError", func(t *testing.T) {
		sim := exampleSimulation()
		_, _, err := assemble.ForSimulation(
			filepath.Join(t.TempDir(), "no-such-model.xml"), sim, nil, t.TempDir(),
		)

		archErr := new(derr.ArchiveIoError)
		if !errors.As(err, &archErr) {
			t.Fatalf("unexpected error: %+v", err)
		}
	})

	t.Run("an unserializable simulation should be an ArchiveIoError", func(t *testing.T) {
		sim := exampleSimulation()
		sim.Model.Variables = append(sim.Model.Variables, sim.Model.Variables[0])

		modelFile := filepath.Join(t.TempDir(), "model.xml")
		if err := os.WriteFile(modelFile, []byte("<sbml/>"), 0644); err != nil {
			t.Fatal(err)
		}

		_, _, err := assemble.ForSimulation(modelFile, sim, nil, t.TempDir())
		archErr := new(derr.ArchiveIoError)
		if !errors.As(err, &archErr) {
			t.Fatalf("unexpected error: %+v", err)
		}
	})
}
