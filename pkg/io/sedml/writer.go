package sedml

import (
	"encoding/xml"
	"os"
	"strconv"

	derr "github.com/biosimkit/biosimkit/pkg/domain/errors"
	"github.com/biosimkit/biosimkit/pkg/domain/formats"
	"github.com/biosimkit/biosimkit/pkg/domain/simulation"
)

// Writer serializes a time-course simulation into a SED-ML L1V3 document.
//
// The document it produces has one model, one uniformTimeCourse, one task,
// a data generator per model variable (plus one for simulation time) and a
// report collecting them all. Plots, when given, are appended to the outputs.
type Writer struct{}

// Write serializes sim (and optional plots) to path.
//
// Plot curves reference data generators by model-variable id, or by "time"
// for the simulation-time generator. A curve referencing anything else is an
// IoError: the document would declare a dangling dataReference.
func (Writer) Write(sim *simulation.TimecourseSimulation, plots []simulation.Plot2D, path string) error {
	doc, err := buildDocument(sim, plots, path)
	if err != nil {
		return err
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return derr.NewIo(formats.SEDML.ID, path, err)
	}
	body = append([]byte(xml.Header), body...)
	body = append(body, '\n')

	if err := os.WriteFile(path, body, 0644); err != nil {
		return derr.NewIo(formats.SEDML.ID, path, err)
	}
	return nil
}

func buildDocument(sim *simulation.TimecourseSimulation, plots []simulation.Plot2D, path string) (*sedDocument, error) {
	if sim == nil || sim.ID == "" {
		return nil, derr.Iof(formats.SEDML.ID, path, "simulation has no id")
	}
	if sim.Model == nil || sim.Model.FileName == "" {
		return nil, derr.Iof(formats.SEDML.ID, path, "simulation %s has no model file", sim.ID)
	}

	modelID := sim.Model.ID
	if modelID == "" {
		modelID = "model"
	}

	model := sedModel{
		ID:       modelID,
		Name:     sim.Model.Name,
		Language: sim.Model.Format.SedUrn,
		Source:   sim.Model.FileName,
	}
	for _, ch := range sim.ModelParameterChanges {
		model.Changes = append(model.Changes, sedChange{
			Target:   ch.Target,
			NewValue: formatFloat(ch.Value),
		})
	}

	course := sedTimeCourse{
		ID:              sim.ID,
		Name:            sim.Name,
		InitialTime:     sim.StartTime,
		OutputStartTime: sim.OutputStartTime,
		OutputEndTime:   sim.EndTime,
		NumberOfPoints:  sim.NumTimePoints,
	}
	if sim.Algorithm.KisaoTerm.ID != "" {
		alg := sedAlgorithm{KisaoID: "KISAO:" + sim.Algorithm.KisaoTerm.ID}
		for _, ch := range sim.AlgorithmParameterChanges {
			alg.Parameters = append(alg.Parameters, sedAlgorithmParameter{
				KisaoID: "KISAO:" + ch.Parameter.KisaoTerm.ID,
				Value:   formatFloat(ch.Value),
			})
		}
		course.Algorithm = &alg
	}

	task := sedTask{
		ID:                  taskID(sim.ID),
		Name:                sim.Name,
		ModelReference:      modelID,
		SimulationReference: sim.ID,
	}

	generators := []sedDataGenerator{{
		ID:   TimeDataGenerator,
		Name: "time",
		Variables: []sedVariable{{
			ID:            varID("time"),
			Name:          "time",
			TaskReference: task.ID,
			Symbol:        TimeSymbol,
		}},
		Math: ciMath(varID("time")),
	}}

	report := sedReport{
		ID:   reportID(sim.ID),
		Name: sim.Name,
		DataSets: []sedDataSet{{
			ID:            "data_set_time",
			Label:         "time",
			DataReference: TimeDataGenerator,
		}},
	}

	known := map[string]bool{"time": true}
	for _, v := range sim.Model.Variables {
		if v.ID == "" {
			return nil, derr.Iof(formats.SEDML.ID, path, "model %s has a variable without id", modelID)
		}
		if known[v.ID] {
			return nil, derr.Iof(formats.SEDML.ID, path, "duplicate variable id %q", v.ID)
		}
		known[v.ID] = true

		generators = append(generators, sedDataGenerator{
			ID:   dataGenID(v.ID),
			Name: v.Name,
			Variables: []sedVariable{{
				ID:            varID(v.ID),
				Name:          v.Name,
				TaskReference: task.ID,
				Target:        v.Target,
			}},
			Math: ciMath(varID(v.ID)),
		})
		report.DataSets = append(report.DataSets, sedDataSet{
			ID:            "data_set_" + v.ID,
			Label:         v.ID,
			DataReference: dataGenID(v.ID),
		})
	}

	outputs := sedOutputs{Reports: []sedReport{report}}
	for _, p := range plots {
		plot := sedPlot2D{ID: p.ID, Name: p.Name}
		for _, c := range p.Curves {
			if !known[c.XDataGenerator] || !known[c.YDataGenerator] {
				return nil, derr.Iof(
					formats.SEDML.ID, path,
					"curve %s of plot %s references an undeclared variable", c.ID, p.ID,
				)
			}
			plot.Curves = append(plot.Curves, sedCurve{
				ID:             c.ID,
				Name:           c.Name,
				XDataReference: dataGenID(c.XDataGenerator),
				YDataReference: dataGenID(c.YDataGenerator),
			})
		}
		outputs.Plots = append(outputs.Plots, plot)
	}

	return &sedDocument{
		XMLNS:          Namespace,
		Level:          1,
		Version:        3,
		Models:         []sedModel{model},
		TimeCourses:    []sedTimeCourse{course},
		Tasks:          []sedTask{task},
		DataGenerators: generators,
		Outputs:        &outputs,
	}, nil
}

func ciMath(ci string) *sedMath {
	return &sedMath{XMLNS: MathMLNamespace, CI: ci}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
