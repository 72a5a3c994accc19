package validator

import (
	"embed"
	"fmt"

	"github.com/biosimkit/biosimkit/pkg/domain/formats"
	"github.com/biosimkit/biosimkit/pkg/domain/ontology"
)

//go:embed fixtures
var fixtures embed.FS

// Kind of a test case: what the fixture is.
type Kind string

const (
	// KindArchive means the fixture is a directory of archive content,
	// bundled into a COMBINE archive as-is.
	KindArchive Kind = "archive"

	// KindBiomodel means the fixture is a bare model file; an example
	// simulation is synthesized around it.
	KindBiomodel Kind = "biomodel"
)

// TestCase is one entry of the reference catalog.
type TestCase struct {
	ID string

	// Filename of the fixture under the embedded catalog: a file for
	// biomodel cases, a directory for archive cases.
	Filename string

	Kind Kind

	Framework        ontology.Term
	ModelFormat      formats.Format
	SimulationFormat formats.Format
	ArchiveFormat    formats.Format
}

func (c TestCase) Equal(o TestCase) bool {
	return c.ID == o.ID &&
		c.Filename == o.Filename &&
		c.Kind == o.Kind &&
		c.Framework.Equal(o.Framework) &&
		c.ModelFormat.Equal(o.ModelFormat) &&
		c.SimulationFormat.Equal(o.SimulationFormat) &&
		c.ArchiveFormat.Equal(o.ArchiveFormat)
}

// CaseFailure pairs a test case with the error that invalidated it.
type CaseFailure struct {
	Case TestCase
	Err  error
}

func (f CaseFailure) Error() string {
	return fmt.Sprintf("case %s: %s", f.Case.ID, f.Err)
}

func (f CaseFailure) Unwrap() error {
	return f.Err
}

var catalog = []TestCase{
	{
		ID:               "biomodel-sbml-enzymatic-reaction",
		Filename:         "enzymatic-reaction.xml",
		Kind:             KindBiomodel,
		Framework:        ontology.FrameworkNonSpatialContinuous,
		ModelFormat:      formats.SBML,
		SimulationFormat: formats.SEDML,
		ArchiveFormat:    formats.COMBINE,
	},
	{
		ID:               "archive-omex-minimal",
		Filename:         "omex-minimal",
		Kind:             KindArchive,
		Framework:        ontology.FrameworkNonSpatialContinuous,
		ModelFormat:      formats.SBML,
		SimulationFormat: formats.SEDML,
		ArchiveFormat:    formats.COMBINE,
	},
}

// Catalog returns the reference test cases in catalog order.
func Catalog() []TestCase {
	return append([]TestCase{}, catalog...)
}
