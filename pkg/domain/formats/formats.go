// Registries of the document formats the toolkit understands.
//
// Each registry is a read-only table built at process start. Formats carry
// the metadata needed to fill COMBINE manifests (MIME type, spec URL) and
// SED-ML model elements (SED URN).
package formats

import (
	"strings"

	derr "github.com/biosimkit/biosimkit/pkg/domain/errors"
)

// Format is metadata about a document format.
type Format struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Version   string `json:"version,omitempty"`
	EdamID    string `json:"edamId,omitempty"`
	URL       string `json:"url,omitempty"`
	SpecURL   string `json:"specUrl,omitempty"`
	MimeType  string `json:"mimeType,omitempty"`
	Extension string `json:"extension,omitempty"`
	SedUrn    string `json:"sedUrn,omitempty"`
}

func (f Format) Equal(o Format) bool {
	return f == o
}

// model formats
var (
	SBML = Format{
		ID:        "SBML",
		Name:      "Systems Biology Markup Language",
		EdamID:    "format_2585",
		URL:       "http://sbml.org/",
		SpecURL:   "http://identifiers.org/combine.specifications/sbml",
		MimeType:  "application/sbml+xml",
		Extension: "xml",
		SedUrn:    "urn:sedml:language:sbml",
	}

	CellML = Format{
		ID:        "CellML",
		Name:      "CellML",
		EdamID:    "format_3240",
		URL:       "https://www.cellml.org/",
		SpecURL:   "http://identifiers.org/combine.specifications/cellml",
		MimeType:  "application/cellml+xml",
		Extension: "cellml",
		SedUrn:    "urn:sedml:language:cellml",
	}

	BNGL = Format{
		ID:        "BNGL",
		Name:      "BioNetGen Language",
		URL:       "https://bionetgen.org/",
		SpecURL:   "https://bionetgen.org/",
		MimeType:  "text/plain",
		Extension: "bngl",
	}

	NeuroML = Format{
		ID:        "NeuroML",
		Name:      "NeuroML",
		URL:       "https://neuroml.org/",
		SpecURL:   "http://identifiers.org/combine.specifications/neuroml",
		MimeType:  "application/xml",
		Extension: "nml",
		SedUrn:    "urn:sedml:language:neuroml",
	}
)

// simulation formats
var (
	SEDML = Format{
		ID:        "SED-ML",
		Name:      "Simulation Experiment Description Markup Language",
		EdamID:    "format_3685",
		URL:       "https://sed-ml.org/",
		SpecURL:   "http://identifiers.org/combine.specifications/sed-ml",
		MimeType:  "application/xml",
		Extension: "sedml",
	}

	SESSL = Format{
		ID:        "SESSL",
		Name:      "Simulation Experiment Specification via a Scala Layer",
		URL:       "http://sessl.org/",
		SpecURL:   "http://sessl.org/",
		MimeType:  "text/plain",
		Extension: "scala",
	}
)

// archive formats
var (
	COMBINE = Format{
		ID:        "COMBINE",
		Name:      "COMBINE",
		EdamID:    "format_3686",
		URL:       "https://combinearchive.org/",
		SpecURL:   "http://identifiers.org/combine.specifications/omex",
		MimeType:  "application/zip",
		Extension: "omex",
	}
)

// The manifest entry format for manifest.xml itself.
const ManifestSpecURL = "http://identifiers.org/combine.specifications/omex-manifest"

// The manifest entry format for metadata.rdf.
const MetadataSpecURL = "http://identifiers.org/combine.specifications/omex-metadata"

type Registry struct {
	kind    string
	formats []Format
}

func newRegistry(kind string, formats ...Format) *Registry {
	return &Registry{kind: kind, formats: formats}
}

var (
	Models      = newRegistry("model", SBML, CellML, BNGL, NeuroML)
	Simulations = newRegistry("simulation", SEDML, SESSL)
	Archives    = newRegistry("archive", COMBINE)
)

// All returns the registered formats in registration order.
func (r *Registry) All() []Format {
	return append([]Format{}, r.formats...)
}

// ByID finds a format by its id, case-insensitively.
//
// Unknown ids are a ConfigurationError.
func (r *Registry) ByID(id string) (Format, error) {
	for _, f := range r.formats {
		if strings.EqualFold(f.ID, id) {
			return f, nil
		}
	}
	return Format{}, derr.Configurationf("unknown %s format: %q", r.kind, id)
}

// BySpecURL finds a format by the URL of its specification.
func (r *Registry) BySpecURL(specURL string) (Format, bool) {
	for _, f := range r.formats {
		if f.SpecURL == specURL {
			return f, true
		}
	}
	return Format{}, false
}

// BySedUrn finds a model format by its SED-ML language URN.
func (r *Registry) BySedUrn(urn string) (Format, bool) {
	for _, f := range r.formats {
		if f.SedUrn != "" && f.SedUrn == urn {
			return f, true
		}
	}
	return Format{}, false
}
