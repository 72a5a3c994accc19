package sedml

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"github.com/biosimkit/biosimkit/pkg/domain/biomodel"
	derr "github.com/biosimkit/biosimkit/pkg/domain/errors"
	"github.com/biosimkit/biosimkit/pkg/domain/formats"
	"github.com/biosimkit/biosimkit/pkg/domain/ontology"
	"github.com/biosimkit/biosimkit/pkg/domain/simulation"
)

// Reader parses a SED-ML L1V3 document back into simulation records.
type Reader struct{}

// Read parses the document at path.
//
// Each task becomes one TimecourseSimulation: the referenced model (with the
// variables observed through data generators) plus the referenced uniform
// time course. Duplicate ids and dangling references are IoErrors.
func (Reader) Read(path string) ([]*simulation.TimecourseSimulation, simulation.Outputs, error) {
	none := simulation.Outputs{}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, none, derr.NewIo(formats.SEDML.ID, path, err)
	}

	doc := sedDocument{}
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, none, derr.NewIo(formats.SEDML.ID, path, err)
	}
	if doc.XMLNS != Namespace {
		return nil, none, derr.Iof(formats.SEDML.ID, path, "not a SED-ML L1V3 document (namespace %q)", doc.XMLNS)
	}

	models, err := indexByID(path, "model", doc.Models, func(m sedModel) string { return m.ID })
	if err != nil {
		return nil, none, err
	}
	courses, err := indexByID(path, "simulation", doc.TimeCourses, func(c sedTimeCourse) string { return c.ID })
	if err != nil {
		return nil, none, err
	}
	tasks, err := indexByID(path, "task", doc.Tasks, func(t sedTask) string { return t.ID })
	if err != nil {
		return nil, none, err
	}
	generators, err := indexByID(path, "data generator", doc.DataGenerators, func(g sedDataGenerator) string { return g.ID })
	if err != nil {
		return nil, none, err
	}

	for _, g := range doc.DataGenerators {
		for _, v := range g.Variables {
			if _, ok := tasks[v.TaskReference]; !ok {
				return nil, none, derr.Iof(
					formats.SEDML.ID, path,
					"data generator %s references unknown task %q", g.ID, v.TaskReference,
				)
			}
		}
	}

	sims := []*simulation.TimecourseSimulation{}
	for _, task := range doc.Tasks {
		model, ok := models[task.ModelReference]
		if !ok {
			return nil, none, derr.Iof(formats.SEDML.ID, path, "task %s references unknown model %q", task.ID, task.ModelReference)
		}
		course, ok := courses[task.SimulationReference]
		if !ok {
			return nil, none, derr.Iof(formats.SEDML.ID, path, "task %s references unknown simulation %q", task.ID, task.SimulationReference)
		}

		sim, err := buildSimulation(path, task, model, course, doc.DataGenerators)
		if err != nil {
			return nil, none, err
		}
		sims = append(sims, sim)
	}

	outputs, err := readOutputs(path, doc.Outputs, generators)
	if err != nil {
		return nil, none, err
	}
	return sims, outputs, nil
}

func buildSimulation(
	path string,
	task sedTask,
	model sedModel,
	course sedTimeCourse,
	generators []sedDataGenerator,
) (*simulation.TimecourseSimulation, error) {
	format, _ := formats.Models.BySedUrn(model.Language)

	bm := &biomodel.Biomodel{
		ID:       model.ID,
		Name:     model.Name,
		FileName: strings.TrimPrefix(model.Source, "./"),
		Format:   format,
	}
	for _, g := range generators {
		for _, v := range g.Variables {
			if v.TaskReference != task.ID || v.Symbol != "" || v.Target == "" {
				continue
			}
			bm.Variables = append(bm.Variables, biomodel.Variable{
				ID:     strings.TrimPrefix(v.ID, "var_"),
				Name:   v.Name,
				Target: v.Target,
			})
		}
	}

	sim := &simulation.TimecourseSimulation{
		ID:              course.ID,
		Name:            course.Name,
		Model:           bm,
		StartTime:       course.InitialTime,
		OutputStartTime: course.OutputStartTime,
		EndTime:         course.OutputEndTime,
		NumTimePoints:   course.NumberOfPoints,
		Format:          formats.SEDML,
	}

	for _, ch := range model.Changes {
		value, err := strconv.ParseFloat(ch.NewValue, 64)
		if err != nil {
			return nil, derr.Iof(
				formats.SEDML.ID, path,
				"change of %s has non-numeric newValue %q", model.ID, ch.NewValue,
			)
		}
		sim.ModelParameterChanges = append(sim.ModelParameterChanges, simulation.ParameterChange{
			Target: ch.Target,
			Value:  value,
		})
	}

	if course.Algorithm != nil {
		term, err := ontology.KisaoTermFromID(course.Algorithm.KisaoID)
		if err != nil {
			return nil, derr.Iof(formats.SEDML.ID, path, "simulation %s: %s", course.ID, err)
		}
		sim.Algorithm = simulation.Algorithm{KisaoTerm: term}

		for _, p := range course.Algorithm.Parameters {
			pterm, err := ontology.KisaoTermFromID(p.KisaoID)
			if err != nil {
				return nil, derr.Iof(formats.SEDML.ID, path, "simulation %s: %s", course.ID, err)
			}
			value, err := strconv.ParseFloat(p.Value, 64)
			if err != nil {
				return nil, derr.Iof(
					formats.SEDML.ID, path,
					"algorithm parameter %s has non-numeric value %q", p.KisaoID, p.Value,
				)
			}
			sim.AlgorithmParameterChanges = append(sim.AlgorithmParameterChanges, simulation.AlgorithmParameterChange{
				Parameter: simulation.AlgorithmParameter{KisaoTerm: pterm},
				Value:     value,
			})
		}
	}

	return sim, nil
}

func readOutputs(path string, outs *sedOutputs, generators map[string]sedDataGenerator) (simulation.Outputs, error) {
	outputs := simulation.Outputs{}
	if outs == nil {
		return outputs, nil
	}

	for _, r := range outs.Reports {
		report := simulation.Report{ID: r.ID, Name: r.Name}
		for _, ds := range r.DataSets {
			if _, ok := generators[ds.DataReference]; !ok {
				return simulation.Outputs{}, derr.Iof(
					formats.SEDML.ID, path,
					"data set %s of report %s references unknown data generator %q", ds.ID, r.ID, ds.DataReference,
				)
			}
			report.DataSets = append(report.DataSets, simulation.DataSet{
				ID:            ds.ID,
				Label:         ds.Label,
				DataGenerator: strings.TrimPrefix(ds.DataReference, "data_gen_"),
			})
		}
		outputs.Reports = append(outputs.Reports, report)
	}

	for _, p := range outs.Plots {
		plot := simulation.Plot2D{ID: p.ID, Name: p.Name}
		for _, c := range p.Curves {
			if _, ok := generators[c.XDataReference]; !ok {
				return simulation.Outputs{}, derr.Iof(
					formats.SEDML.ID, path,
					"curve %s of plot %s references unknown data generator %q", c.ID, p.ID, c.XDataReference,
				)
			}
			if _, ok := generators[c.YDataReference]; !ok {
				return simulation.Outputs{}, derr.Iof(
					formats.SEDML.ID, path,
					"curve %s of plot %s references unknown data generator %q", c.ID, p.ID, c.YDataReference,
				)
			}
			plot.Curves = append(plot.Curves, simulation.Curve{
				ID:             c.ID,
				Name:           c.Name,
				XDataGenerator: strings.TrimPrefix(c.XDataReference, "data_gen_"),
				YDataGenerator: strings.TrimPrefix(c.YDataReference, "data_gen_"),
			})
		}
		outputs.Plots = append(outputs.Plots, plot)
	}

	return outputs, nil
}

func indexByID[T any](path string, kind string, items []T, id func(T) string) (map[string]T, error) {
	index := map[string]T{}
	for _, item := range items {
		key := id(item)
		if key == "" {
			return nil, derr.Iof(formats.SEDML.ID, path, "a %s has no id", kind)
		}
		if _, ok := index[key]; ok {
			return nil, derr.Iof(formats.SEDML.ID, path, "duplicate %s id %q", kind, key)
		}
		index[key] = item
	}
	return index, nil
}
