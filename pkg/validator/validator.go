// Package validator drives a Docker-packaged simulator against the reference
// catalog and partitions the cases into passed and failed.
package validator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/biosimkit/biosimkit/pkg/assemble"
	"github.com/biosimkit/biosimkit/pkg/configs/harness"
	"github.com/biosimkit/biosimkit/pkg/domain/archive"
	"github.com/biosimkit/biosimkit/pkg/domain/biomodel"
	derr "github.com/biosimkit/biosimkit/pkg/domain/errors"
	"github.com/biosimkit/biosimkit/pkg/domain/formats"
	"github.com/biosimkit/biosimkit/pkg/domain/ontology"
	"github.com/biosimkit/biosimkit/pkg/domain/simulation"
	"github.com/biosimkit/biosimkit/pkg/domain/simulator"
	"github.com/biosimkit/biosimkit/pkg/io/omex"
	"github.com/biosimkit/biosimkit/pkg/io/sbml"
)

type Validator struct {
	runner  Runner
	workDir string
	log     *zap.Logger
}

// Runner is what the validator needs from the execution boundary.
// pkg/workloads/runner provides the docker implementation.
type Runner interface {
	Exec(ctx context.Context, archivePath string, imageRef string, outDir string) error
}

// New builds a validator running cases through run.
//
// conf and log may be nil; the defaults are the zero harness config and no
// logging.
func New(run Runner, conf *harness.HarnessConfig, log *zap.Logger) *Validator {
	workDir := ""
	if conf != nil {
		workDir = conf.WorkDir()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{runner: run, workDir: workDir, log: log}
}

// Run validates the simulator image against the catalog.
//
// Empty caseIDs means the whole catalog. An unknown case id is a
// ConfigurationError, raised before anything is executed.
//
// Cases the simulator's properties declare no support for are skipped: they
// appear in neither partition. Everything else is run in catalog order; a
// case whose archive cannot be built, whose container run fails or whose
// outputs are missing or malformed becomes one CaseFailure, and the batch
// carries on. Only environment-level trouble aborts the call.
func (v *Validator) Run(
	ctx context.Context, image string, propertiesPath string, caseIDs ...string,
) (valid []TestCase, invalid []CaseFailure, err error) {
	sim, err := simulator.Load(propertiesPath)
	if err != nil {
		return nil, nil, err
	}

	cases, err := selectCases(caseIDs)
	if err != nil {
		return nil, nil, err
	}

	valid = []TestCase{}
	invalid = []CaseFailure{}
	for _, c := range cases {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return valid, invalid, ctxErr
		}
		if !sim.Supports(c.Framework, c.ModelFormat, c.SimulationFormat, c.ArchiveFormat) {
			v.log.Info(
				"case is not applicable to the simulator; skipped",
				zap.String("case", c.ID), zap.String("simulator", sim.ID),
			)
			continue
		}

		caseErr := v.runCase(ctx, image, c)
		switch {
		case caseErr == nil:
			v.log.Info("case passed", zap.String("case", c.ID))
			valid = append(valid, c)
		case isCaseFailure(caseErr):
			v.log.Warn("case failed", zap.String("case", c.ID), zap.Error(caseErr))
			invalid = append(invalid, CaseFailure{Case: c, Err: caseErr})
		default:
			return valid, invalid, fmt.Errorf("case %s: %w", c.ID, caseErr)
		}
	}
	return valid, invalid, nil
}

// selectCases resolves the requested ids against the catalog, keeping
// catalog order.
func selectCases(caseIDs []string) ([]TestCase, error) {
	if len(caseIDs) == 0 {
		return Catalog(), nil
	}

	known := map[string]bool{}
	for _, c := range catalog {
		known[c.ID] = true
	}
	requested := map[string]bool{}
	for _, id := range caseIDs {
		if !known[id] {
			return nil, derr.Configurationf("unknown test case: %q", id)
		}
		requested[id] = true
	}

	selected := []TestCase{}
	for _, c := range catalog {
		if requested[c.ID] {
			selected = append(selected, c)
		}
	}
	return selected, nil
}

// isCaseFailure tells whether err invalidates one case only.
//
// Malformed documents, unwritable archives and failed container runs are
// case failures. Unknown ids, bad image refs and unreachable runtimes are
// not: they would fail every case the same way.
func isCaseFailure(err error) bool {
	ioErr := new(derr.IoError)
	if errors.As(err, &ioErr) {
		return true
	}
	archErr := new(derr.ArchiveIoError)
	if errors.As(err, &archErr) {
		return true
	}
	_, ok := derr.AsExecution(err)
	return ok
}

func (v *Validator) runCase(ctx context.Context, image string, c TestCase) error {
	scratch, err := os.MkdirTemp(v.workDir, "simvalidator-"+c.ID+"-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(scratch)

	contentDir := filepath.Join(scratch, "content")
	archiveDir := filepath.Join(scratch, "archive")
	outDir := filepath.Join(scratch, "out")
	unpackDir := filepath.Join(scratch, "unpacked")
	for _, dir := range []string{contentDir, archiveDir, outDir, unpackDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if err := extractFixture(c.Filename, contentDir); err != nil {
		return err
	}

	var archivePath string
	switch c.Kind {
	case KindBiomodel:
		archivePath, err = v.assembleForBiomodel(c, contentDir, archiveDir)
	case KindArchive:
		archivePath, err = v.bundleContent(c, contentDir, archiveDir)
	default:
		err = derr.Configurationf("case %s has unknown kind %q", c.ID, c.Kind)
	}
	if err != nil {
		return err
	}

	ar, err := (omex.Reader{}).Read(archivePath, unpackDir)
	if err != nil {
		return err
	}

	if err := v.runner.Exec(ctx, archivePath, image, outDir); err != nil {
		return err
	}

	return assertOutputs(ar, unpackDir, outDir)
}

func (v *Validator) assembleForBiomodel(c TestCase, contentDir string, archiveDir string) (string, error) {
	modelPath := filepath.Join(contentDir, c.Filename)
	model, err := (sbml.Reader{}).Read(modelPath)
	if err != nil {
		return "", err
	}

	sim := exampleSimulation(model)
	_, archivePath, err := assemble.ForSimulation(modelPath, sim, nil, archiveDir)
	return archivePath, err
}

// bundleContent zips an archive-kind fixture directory. Members are
// classified by extension; the SED-ML file is the master.
func (v *Validator) bundleContent(c TestCase, contentDir string, archiveDir string) (string, error) {
	ar := &archive.Archive{Format: formats.COMBINE}

	entries, err := os.ReadDir(contentDir)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		memberPath := "./" + entry.Name()
		switch filepath.Ext(entry.Name()) {
		case "." + formats.SEDML.Extension:
			ar.Files = append(ar.Files, archive.File{Path: memberPath, Format: formats.SEDML})
			if ar.MasterFile == "" {
				ar.MasterFile = memberPath
			}
		case ".xml":
			ar.Files = append(ar.Files, archive.File{Path: memberPath, Format: formats.SBML})
		}
	}
	if ar.MasterFile == "" {
		return "", derr.ArchiveIof(contentDir, "fixture %s has no SED-ML file", c.ID)
	}

	archivePath := filepath.Join(archiveDir, c.ID+"."+formats.COMBINE.Extension)
	if err := (omex.Writer{}).Write(ar, contentDir, archivePath); err != nil {
		return "", err
	}
	return archivePath, nil
}

// exampleSimulation synthesizes a short time course over model: 10 points
// over [0, 10] with CVODE; every initial species condition is overridden
// to zero through a model parameter change.
func exampleSimulation(model *biomodel.Biomodel) *simulation.TimecourseSimulation {
	changes := []simulation.ParameterChange{}
	for _, p := range model.Parameters {
		if p.Group != biomodel.GroupInitialConditions {
			continue
		}
		changes = append(changes, simulation.ParameterChange{Target: p.Target, Value: 0})
	}

	relTol, absTol := 1e-5, 1e-11
	return &simulation.TimecourseSimulation{
		ID:                    "simulation_1",
		Name:                  model.Name + " time course",
		Model:                 model,
		ModelParameterChanges: changes,
		StartTime:             0,
		OutputStartTime:       0,
		EndTime:               10,
		NumTimePoints:         10,
		Algorithm: simulation.Algorithm{
			KisaoTerm: ontology.Term{Ontology: "KISAO", ID: "0000019", Name: "CVODE"},
		},
		AlgorithmParameterChanges: []simulation.AlgorithmParameterChange{
			{
				Parameter: simulation.AlgorithmParameter{
					KisaoTerm: ontology.Term{Ontology: "KISAO", ID: "0000209", Name: "relative tolerance"},
				},
				Value: relTol,
			},
			{
				Parameter: simulation.AlgorithmParameter{
					KisaoTerm: ontology.Term{Ontology: "KISAO", ID: "0000211", Name: "absolute tolerance"},
				},
				Value: absTol,
			},
		},
		Format: formats.SEDML,
	}
}

// extractFixture copies an embedded fixture (a file or a directory) into
// destDir, flattening nothing.
func extractFixture(name string, destDir string) error {
	root := path.Join("fixtures", name)
	return fs.WalkDir(fixtures, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		if rel == "" {
			rel = path.Base(p)
		}
		if d.IsDir() {
			if p == root {
				return nil
			}
			return os.MkdirAll(filepath.Join(destDir, filepath.FromSlash(rel)), 0755)
		}

		src, err := fixtures.Open(p)
		if err != nil {
			return err
		}
		defer src.Close()

		dest, err := os.Create(filepath.Join(destDir, filepath.FromSlash(rel)))
		if err != nil {
			return err
		}
		defer dest.Close()

		if _, err := io.Copy(dest, src); err != nil {
			return err
		}
		return dest.Close()
	})
}
