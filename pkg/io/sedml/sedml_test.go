package sedml_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/biosimkit/biosimkit/pkg/domain/biomodel"
	derr "github.com/biosimkit/biosimkit/pkg/domain/errors"
	"github.com/biosimkit/biosimkit/pkg/domain/formats"
	"github.com/biosimkit/biosimkit/pkg/domain/ontology"
	"github.com/biosimkit/biosimkit/pkg/domain/simulation"
	"github.com/biosimkit/biosimkit/pkg/io/sedml"
	"github.com/biosimkit/biosimkit/pkg/utils/try"
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
					Name:   "substrate",
					Target: "/sbml:sbml/sbml:model/sbml:listOfSpecies/sbml:species[@id='S1']",
				},
				{
					ID:     "P1",
					Name:   "product",
					Target: "/sbml:sbml/sbml:model/sbml:listOfSpecies/sbml:species[@id='P1']",
				},
			},
		},
		ModelParameterChanges: []simulation.ParameterChange{
			{
				Target: "/sbml:sbml/sbml:model/sbml:listOfParameters/sbml:parameter[@id='k1']/@value",
				Value:  0.5,
			},
		},
		StartTime:       0,
		OutputStartTime: 0,
		EndTime:         10,
		NumTimePoints:   10,
		Algorithm: simulation.Algorithm{
			KisaoTerm: ontology.Term{Ontology: "KISAO", ID: "0000019"},
		},
		AlgorithmParameterChanges: []simulation.AlgorithmParameterChange{
			{
				Parameter: simulation.AlgorithmParameter{
					KisaoTerm: ontology.Term{Ontology: "KISAO", ID: "0000209"},
				},
				Value: 1e-5,
			},
		},
		Format: formats.SEDML,
	}
}

func TestSedml_RoundTrip(t *testing.T) {
	t.Run("a written simulation should be read back equal", func(t *testing.T) {
		want := exampleSimulation()
		path := filepath.Join(t.TempDir(), "simulation_1.sedml")

		if err := (sedml.Writer{}).Write(want, nil, path); err != nil {
			t.Fatal(err)
		}

		sims, outputs, err := (sedml.Reader{}).Read(path)
		if err != nil {
			t.Fatal(err)
		}

		if len(sims) != 1 {
			t.Fatalf("unexpected number of simulations: %d", len(sims))
		}
		if !sims[0].Equal(want) {
			t.Errorf("mismatch. (expected, actual) = (%+v, %+v)", want, sims[0])
		}

		if len(outputs.Reports) != 1 {
			t.Fatalf("unexpected number of reports: %d", len(outputs.Reports))
		}
		report := outputs.Reports[0]
		labels := []string{}
		for _, ds := range report.DataSets {
			labels = append(labels, ds.Label)
		}
		wantLabels := []string{"time", "S1", "P1"}
		if len(labels) != len(wantLabels) {
			t.Fatalf("mismatch. (expected, actual) = (%v, %v)", wantLabels, labels)
		}
		for nth := range labels {
			if labels[nth] != wantLabels[nth] {
				t.Errorf("mismatch. (expected, actual) = (%v, %v)", wantLabels, labels)
			}
		}
	})

	t.Run("plots should survive the round trip", func(t *testing.T) {
		sim := exampleSimulation()
		plots := []simulation.Plot2D{
			{
				ID:   "plot_1",
				Name: "species over time",
				Curves: []simulation.Curve{
					{ID: "curve_1", XDataGenerator: "time", YDataGenerator: "S1"},
					{ID: "curve_2", XDataGenerator: "time", YDataGenerator: "P1"},
				},
			},
		}
		path := filepath.Join(t.TempDir(), "simulation_1.sedml")

		if err := (sedml.Writer{}).Write(sim, plots, path); err != nil {
			t.Fatal(err)
		}
		_, outputs, err := (sedml.Reader{}).Read(path)
		if err != nil {
			t.Fatal(err)
		}

		if len(outputs.Plots) != 1 {
			t.Fatalf("unexpected number of plots: %d", len(outputs.Plots))
		}
		if !outputs.Plots[0].Equal(plots[0]) {
			t.Errorf("mismatch. (expected, actual) = (%+v, %+v)", plots[0], outputs.Plots[0])
		}
	})
}

func TestWriter_Errors(t *testing.T) {
	t.Run("a simulation without model should not be written", func(t *testing.T) {
		sim := exampleSimulation()
		sim.Model = nil
		err := (sedml.Writer{}).Write(sim, nil, filepath.Join(t.TempDir(), "x.sedml"))

		ioErr := new(derr.IoError)
		if !errors.As(err, &ioErr) {
			t.Fatalf("unexpected error: %+v", err)
		}
	})

	t.Run("duplicate variable ids should not be written", func(t *testing.T) {
		sim := exampleSimulation()
		sim.Model.Variables = append(sim.Model.Variables, sim.Model.Variables[0])
		err := (sedml.Writer{}).Write(sim, nil, filepath.Join(t.TempDir(), "x.sedml"))

		ioErr := new(derr.IoError)
		if !errors.As(err, &ioErr) {
			t.Fatalf("unexpected error: %+v", err)
		}
	})

	t.Run("a curve over an undeclared variable should not be written", func(t *testing.T) {
		sim := exampleSimulation()
		plots := []simulation.Plot2D{
			{
				ID: "plot_1",
				Curves: []simulation.Curve{
					{ID: "curve_1", XDataGenerator: "time", YDataGenerator: "no_such_variable"},
				},
			},
		}
		err := (sedml.Writer{}).Write(sim, plots, filepath.Join(t.TempDir(), "x.sedml"))

		ioErr := new(derr.IoError)
		if !errors.As(err, &ioErr) {
			t.Fatalf("unexpected error: %+v", err)
		}
	})
}

func TestReader_Errors(t *testing.T) {
	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "doc.sedml")
		try.To(0, os.WriteFile(path, []byte(content), 0644)).OrFatal(t)
		return path
	}

	header := `<?xml version="1.0" encoding="UTF-8"?>`

	for name, testcase := range map[string]struct{ content string }{
		"wrong namespace": {
			content: header + `<sedML xmlns="http://example.com/not-sedml" level="1" version="3"></sedML>`,
		},
		"duplicate task id": {
			content: header + `<sedML xmlns="http://sed-ml.org/sed-ml/level1/version3" level="1" version="3">
<listOfModels><model id="model" language="urn:sedml:language:sbml" source="model.xml"/></listOfModels>
<listOfSimulations><uniformTimeCourse id="sim" initialTime="0" outputStartTime="0" outputEndTime="10" numberOfPoints="10"/></listOfSimulations>
<listOfTasks>
<task id="task_sim" modelReference="model" simulationReference="sim"/>
<task id="task_sim" modelReference="model" simulationReference="sim"/>
</listOfTasks>
</sedML>`,
		},
		"task references unknown model": {
			content: header + `<sedML xmlns="http://sed-ml.org/sed-ml/level1/version3" level="1" version="3">
<listOfSimulations><uniformTimeCourse id="sim" initialTime="0" outputStartTime="0" outputEndTime="10" numberOfPoints="10"/></listOfSimulations>
<listOfTasks><task id="task_sim" modelReference="nowhere" simulationReference="sim"/></listOfTasks>
</sedML>`,
		},
		"data set references unknown data generator": {
			content: header + `<sedML xmlns="http://sed-ml.org/sed-ml/level1/version3" level="1" version="3">
<listOfOutputs><report id="report"><listOfDataSets>
<dataSet id="ds" label="x" dataReference="nowhere"/>
</listOfDataSets></report></listOfOutputs>
</sedML>`,
		},
		"malformed kisao id": {
			content: header + `<sedML xmlns="http://sed-ml.org/sed-ml/level1/version3" level="1" version="3">
<listOfModels><model id="model" language="urn:sedml:language:sbml" source="model.xml"/></listOfModels>
<listOfSimulations><uniformTimeCourse id="sim" initialTime="0" outputStartTime="0" outputEndTime="10" numberOfPoints="10">
<algorithm kisaoID="CVODE"/>
</uniformTimeCourse></listOfSimulations>
<listOfTasks><task id="task_sim" modelReference="model" simulationReference="sim"/></listOfTasks>
</sedML>`,
		},
	} {
		t.Run(name+" should be an IoError", func(t *testing.T) {
			_, _, err := (sedml.Reader{}).Read(write(t, testcase.content))

			ioErr := new(derr.IoError)
			if !errors.As(err, &ioErr) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
