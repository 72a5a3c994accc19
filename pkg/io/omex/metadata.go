package omex

import (
	"encoding/xml"

	"github.com/biosimkit/biosimkit/pkg/domain/archive"
	derr "github.com/biosimkit/biosimkit/pkg/domain/errors"
	"github.com/biosimkit/biosimkit/pkg/domain/meta"
	"github.com/biosimkit/biosimkit/pkg/utils"
	"github.com/biosimkit/biosimkit/pkg/utils/rfctime"
)

// metadata.rdf carries what the manifest cannot: descriptions, creators and
// timestamps, one rdf:Description per subject. The archive itself is the
// subject ".", member files are "./<path>".
//
// Writing and reading use separate struct sets: the writer emits prefixed
// names with the namespaces declared on the root, the reader matches by
// local name so it also accepts documents with other prefix spellings.

type rdfOut struct {
	XMLName      xml.Name `xml:"rdf:RDF"`
	XMLNSRdf     string   `xml:"xmlns:rdf,attr"`
	XMLNSDcterms string   `xml:"xmlns:dcterms,attr"`
	XMLNSVcard   string   `xml:"xmlns:vCard,attr"`

	Descriptions []rdfDescriptionOut `xml:"rdf:Description"`
}

type rdfDescriptionOut struct {
	About       string          `xml:"rdf:about,attr"`
	Description string          `xml:"dcterms:description,omitempty"`
	Creators    []rdfCreatorOut `xml:"dcterms:creator"`
	Created     *rdfDateOut     `xml:"dcterms:created"`
	Modified    *rdfDateOut     `xml:"dcterms:modified"`
}

type rdfCreatorOut struct {
	Family string `xml:"vCard:hasName>vCard:family-name"`
	Given  string `xml:"vCard:hasName>vCard:given-name"`
	Other  string `xml:"vCard:hasName>vCard:additional-name,omitempty"`
}

type rdfDateOut struct {
	W3CDTF string `xml:"dcterms:W3CDTF"`
}

type rdfIn struct {
	Descriptions []rdfDescriptionIn `xml:"Description"`
}

type rdfDescriptionIn struct {
	About       string         `xml:"about,attr"`
	Description string         `xml:"description"`
	Creators    []rdfCreatorIn `xml:"creator"`
	Created     *rdfDateIn     `xml:"created"`
	Modified    *rdfDateIn     `xml:"modified"`
}

type rdfCreatorIn struct {
	Family string `xml:"hasName>family-name"`
	Given  string `xml:"hasName>given-name"`
	Other  string `xml:"hasName>additional-name"`
}

type rdfDateIn struct {
	W3CDTF string `xml:"W3CDTF"`
}

func marshalMetadata(ar *archive.Archive) ([]byte, error) {
	doc := rdfOut{
		XMLNSRdf:     "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		XMLNSDcterms: "http://purl.org/dc/terms/",
		XMLNSVcard:   "http://www.w3.org/2006/vcard/ns#",
	}

	if d, ok := describeOut(".", ar.Description, ar.Authors, ar.Created, ar.Updated); ok {
		doc.Descriptions = append(doc.Descriptions, d)
	}
	for _, f := range ar.Files {
		if d, ok := describeOut(f.Path, f.Description, f.Authors, f.Created, f.Updated); ok {
			doc.Descriptions = append(doc.Descriptions, d)
		}
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(append([]byte(xml.Header), body...), '\n'), nil
}

func describeOut(
	about string, description string, authors []meta.Person,
	created rfctime.RFC3339, updated rfctime.RFC3339,
) (rdfDescriptionOut, bool) {
	if description == "" && len(authors) == 0 && created.IsZero() && updated.IsZero() {
		return rdfDescriptionOut{}, false
	}

	d := rdfDescriptionOut{
		About:       about,
		Description: description,
		Creators: utils.Map(authors, func(p meta.Person) rdfCreatorOut {
			return rdfCreatorOut{Family: p.LastName, Given: p.FirstName, Other: p.MiddleName}
		}),
	}
	if !created.IsZero() {
		d.Created = &rdfDateOut{W3CDTF: created.String()}
	}
	if !updated.IsZero() {
		d.Modified = &rdfDateOut{W3CDTF: updated.String()}
	}
	return d, true
}

// unmarshalMetadata merges metadata.rdf into ar in place.
//
// Subjects that name no member of ar are ignored; a described member keeps
// its manifest-derived fields and gains description, authors and dates.
func unmarshalMetadata(path string, body []byte, ar *archive.Archive) error {
	doc := rdfIn{}
	if err := xml.Unmarshal(body, &doc); err != nil {
		return derr.NewArchiveIo(path, err)
	}

	for _, d := range doc.Descriptions {
		authors := utils.Map(d.Creators, func(c rdfCreatorIn) meta.Person {
			return meta.Person{FirstName: c.Given, MiddleName: c.Other, LastName: c.Family}
		})

		var created, updated rfctime.RFC3339
		if d.Created != nil && d.Created.W3CDTF != "" {
			t, err := rfctime.Parse(d.Created.W3CDTF)
			if err != nil {
				return derr.ArchiveIof(path, "metadata of %s has malformed created date %q", d.About, d.Created.W3CDTF)
			}
			created = t
		}
		if d.Modified != nil && d.Modified.W3CDTF != "" {
			t, err := rfctime.Parse(d.Modified.W3CDTF)
			if err != nil {
				return derr.ArchiveIof(path, "metadata of %s has malformed modified date %q", d.About, d.Modified.W3CDTF)
			}
			updated = t
		}

		if d.About == "" || d.About == "." {
			ar.Description = d.Description
			ar.Authors = authors
			ar.Created = created
			ar.Updated = updated
			continue
		}

		for nth := range ar.Files {
			if ar.Files[nth].Path != d.About {
				continue
			}
			ar.Files[nth].Description = d.Description
			ar.Files[nth].Authors = authors
			ar.Files[nth].Created = created
			ar.Files[nth].Updated = updated
		}
	}

	return nil
}
