package validator

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/biosimkit/biosimkit/pkg/cmp"
	"github.com/biosimkit/biosimkit/pkg/domain/archive"
	"github.com/biosimkit/biosimkit/pkg/domain/biomodel"
	derr "github.com/biosimkit/biosimkit/pkg/domain/errors"
	"github.com/biosimkit/biosimkit/pkg/domain/formats"
	"github.com/biosimkit/biosimkit/pkg/domain/simulation"
	"github.com/biosimkit/biosimkit/pkg/io/sedml"
	"github.com/biosimkit/biosimkit/pkg/utils"
)

const reportFormat = "CSV report"

// assertOutputs checks that the simulator produced results for every
// simulation the archive's SED-ML files declare.
//
// For each SED-ML member, result files live under
// <outDir>/<member base name>/; each simulation's report is
// "<simulation id>.csv". Its columns are the simulation's model variables
// plus "time", in any order; the time column holds numPoints+1 evenly
// spaced values from outputStartTime to outputEndTime.
func assertOutputs(ar *archive.Archive, unpackDir string, outDir string) error {
	for _, member := range ar.Files {
		if member.Format.ID != formats.SEDML.ID {
			continue
		}

		name := strings.TrimPrefix(member.Path, "./")
		sims, _, err := (sedml.Reader{}).Read(filepath.Join(unpackDir, filepath.FromSlash(name)))
		if err != nil {
			return err
		}

		base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
		for _, sim := range sims {
			if err := assertSimulationReport(filepath.Join(outDir, base), sim); err != nil {
				return err
			}
		}
	}
	return nil
}

func assertSimulationReport(reportDir string, sim *simulation.TimecourseSimulation) error {
	path := filepath.Join(reportDir, sim.ID+".csv")

	f, err := os.Open(path)
	if err != nil {
		return derr.Iof(reportFormat, path, "report of simulation %s is not produced", sim.ID)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return derr.NewIo(reportFormat, path, err)
	}
	if len(rows) < 2 {
		return derr.Iof(reportFormat, path, "report of simulation %s has no data rows", sim.ID)
	}

	columns := append(
		utils.Map(sim.Model.Variables, func(v biomodel.Variable) string { return v.ID }),
		"time",
	)
	header := rows[0]
	if !cmp.SliceContentEq(header, columns) {
		return derr.Iof(reportFormat, path, "column mismatch: expected %v, got %v", columns, header)
	}

	timeCol := -1
	for nth, label := range header {
		if label == "time" {
			timeCol = nth
			break
		}
	}

	if len(rows)-1 != sim.NumTimePoints+1 {
		return derr.Iof(
			reportFormat, path,
			"report of simulation %s has %d data rows; %d time points are declared",
			sim.ID, len(rows)-1, sim.NumTimePoints,
		)
	}

	step := (sim.EndTime - sim.OutputStartTime) / float64(sim.NumTimePoints)
	for nth, row := range rows[1:] {
		got, err := strconv.ParseFloat(row[timeCol], 64)
		if err != nil {
			return derr.Iof(reportFormat, path, "time column holds a non-number %q", row[timeCol])
		}
		want := sim.OutputStartTime + float64(nth)*step
		if !closeEnough(got, want) {
			return derr.Iof(
				reportFormat, path,
				"time column mismatch at row %d: expected %g, got %g", nth+1, want, got,
			)
		}
	}
	return nil
}

func closeEnough(got, want float64) bool {
	return math.Abs(got-want) <= 1e-6*math.Max(1, math.Abs(want))
}
