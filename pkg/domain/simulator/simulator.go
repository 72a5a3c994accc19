package simulator

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/biosimkit/biosimkit/pkg/cmp"
	derr "github.com/biosimkit/biosimkit/pkg/domain/errors"
	"github.com/biosimkit/biosimkit/pkg/domain/formats"
	"github.com/biosimkit/biosimkit/pkg/domain/meta"
	"github.com/biosimkit/biosimkit/pkg/domain/ontology"
	"github.com/biosimkit/biosimkit/pkg/domain/simulation"
	"github.com/biosimkit/biosimkit/pkg/utils/rfctime"
)

// Simulator is the properties document of a packaged simulation tool,
// as published in simulator registries.
//
// The validator reads this to decide which test cases are even applicable
// to a given simulator.
type Simulator struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`

	// Image is the container image reference of the packaged tool,
	// like "crbm/biosimulations_tellurium:2.4.1".
	Image string `json:"image,omitempty"`

	URL         string            `json:"url,omitempty"`
	Description string            `json:"description,omitempty"`
	Identifiers []meta.Identifier `json:"identifiers,omitempty"`
	Authors     []meta.Person     `json:"authors,omitempty"`

	Algorithms []simulation.Algorithm `json:"algorithms"`

	Created rfctime.RFC3339 `json:"created,omitempty"`
	Updated rfctime.RFC3339 `json:"updated,omitempty"`
}

func (s *Simulator) Equal(o *Simulator) bool {
	if s == nil || o == nil {
		return s == nil && o == nil
	}
	return s.ID == o.ID &&
		s.Name == o.Name &&
		s.Version == o.Version &&
		s.Image == o.Image &&
		s.URL == o.URL &&
		s.Description == o.Description &&
		cmp.SliceContentEqWith(s.Identifiers, o.Identifiers, meta.Identifier.Equal) &&
		cmp.SliceContentEqWith(s.Authors, o.Authors, meta.Person.Equal) &&
		cmp.SliceContentEqWith(s.Algorithms, o.Algorithms, simulation.Algorithm.Equal) &&
		s.Created.Equal(o.Created) &&
		s.Updated.Equal(o.Updated)
}

// Supports tells whether some algorithm of the simulator covers the whole
// combination: the modeling framework, the model format, the simulation
// format and the archive format.
//
// Terms are compared by ontology+id and formats by id, since registry
// documents rarely carry full annotations.
func (s *Simulator) Supports(
	framework ontology.Term,
	model formats.Format,
	sim formats.Format,
	archive formats.Format,
) bool {
	for _, alg := range s.Algorithms {
		if !anyTermSame(alg.ModelingFrameworks, framework) {
			continue
		}
		if !anyFormatID(alg.ModelFormats, model) {
			continue
		}
		if !anyFormatID(alg.SimulationFormats, sim) {
			continue
		}
		if !anyFormatID(alg.ArchiveFormats, archive) {
			continue
		}
		return true
	}
	return false
}

func anyTermSame(terms []ontology.Term, want ontology.Term) bool {
	for _, t := range terms {
		if t.Same(want) {
			return true
		}
	}
	return false
}

func anyFormatID(fs []formats.Format, want formats.Format) bool {
	for _, f := range fs {
		if f.ID == want.ID {
			return true
		}
	}
	return false
}

// Load reads a simulator properties document from a JSON file.
//
// A document without an id or without algorithms is rejected; the validator
// could decide nothing from it.
func Load(path string) (*Simulator, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, derr.NewIo("simulator properties", path, err)
	}

	sim := new(Simulator)
	if err := json.Unmarshal(content, sim); err != nil {
		return nil, derr.NewIo("simulator properties", path, err)
	}

	if sim.ID == "" {
		return nil, derr.Iof("simulator properties", path, `required field missing: "id"`)
	}
	if len(sim.Algorithms) == 0 {
		return nil, derr.Iof("simulator properties", path, "no algorithms declared")
	}
	for i, alg := range sim.Algorithms {
		term, err := ontology.KisaoTermFromID(alg.KisaoTerm.ID)
		if err != nil {
			return nil, derr.NewIo(
				"simulator properties", path,
				fmt.Errorf("algorithm #%d: %w", i, err),
			)
		}
		term.Name = alg.KisaoTerm.Name
		sim.Algorithms[i].KisaoTerm = term
	}

	return sim, nil
}
