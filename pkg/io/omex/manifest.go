package omex

import (
	"encoding/xml"

	"github.com/biosimkit/biosimkit/pkg/domain/archive"
	derr "github.com/biosimkit/biosimkit/pkg/domain/errors"
	"github.com/biosimkit/biosimkit/pkg/domain/formats"
)

// ManifestName is the location of the manifest inside an archive.
const ManifestName = "manifest.xml"

// MetadataName is the location of the RDF metadata inside an archive.
const MetadataName = "metadata.rdf"

const manifestNamespace = "http://identifiers.org/combine.specifications/omex-manifest"

type omexManifest struct {
	XMLName  xml.Name      `xml:"omexManifest"`
	XMLNS    string        `xml:"xmlns,attr"`
	Contents []omexContent `xml:"content"`
}

type omexContent struct {
	Location string `xml:"location,attr"`
	Format   string `xml:"format,attr"`
	Master   bool   `xml:"master,attr,omitempty"`
}

// marshalManifest renders manifest.xml for ar.
//
// The archive itself, the manifest and the metadata come first; member files
// follow in Files order.
func marshalManifest(ar *archive.Archive) ([]byte, error) {
	manifest := omexManifest{
		XMLNS: manifestNamespace,
		Contents: []omexContent{
			{Location: ".", Format: ar.Format.SpecURL},
			{Location: "./" + ManifestName, Format: formats.ManifestSpecURL},
			{Location: "./" + MetadataName, Format: formats.MetadataSpecURL},
		},
	}
	for _, f := range ar.Files {
		manifest.Contents = append(manifest.Contents, omexContent{
			Location: f.Path,
			Format:   f.Format.SpecURL,
			Master:   f.Path == ar.MasterFile,
		})
	}

	body, err := xml.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(append([]byte(xml.Header), body...), '\n'), nil
}

// unmarshalManifest rebuilds member files and the master path from
// manifest.xml. Bookkeeping entries (the archive itself, the manifest, the
// metadata) are not members.
func unmarshalManifest(path string, body []byte) (files []archive.File, master string, err error) {
	manifest := omexManifest{}
	if err := xml.Unmarshal(body, &manifest); err != nil {
		return nil, "", derr.NewArchiveIo(path, err)
	}

	for _, c := range manifest.Contents {
		switch c.Location {
		case "", ".":
			continue
		case ManifestName, "./" + ManifestName, MetadataName, "./" + MetadataName:
			continue
		}

		files = append(files, archive.File{
			Path:   c.Location,
			Format: formatBySpecURL(c.Format),
		})
		if c.Master {
			if master != "" {
				return nil, "", derr.ArchiveIof(path, "manifest declares two master files: %s, %s", master, c.Location)
			}
			master = c.Location
		}
	}

	return files, master, nil
}

// formatBySpecURL resolves a manifest format URL against every registry.
//
// Unknown URLs are kept as bare SpecURL-only formats rather than dropped, so
// an archive with members the toolkit cannot interpret still round-trips.
func formatBySpecURL(specURL string) formats.Format {
	for _, registry := range []*formats.Registry{formats.Models, formats.Simulations, formats.Archives} {
		if f, ok := registry.BySpecURL(specURL); ok {
			return f
		}
	}
	return formats.Format{SpecURL: specURL}
}
