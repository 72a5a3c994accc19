package ontology

import (
	"fmt"
	"regexp"
	"strings"
)

// Term is an ontology-qualified concept, like SBO:0000293 or KISAO:0000019.
//
// Name, Description and IRI are annotations; identity is (Ontology, ID).
type Term struct {
	Ontology    string `json:"ontology"`
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	IRI         string `json:"iri,omitempty"`
}

func (t Term) String() string {
	return t.Ontology + ":" + t.ID
}

// Equal is semantic equality over all annotated fields.
func (t Term) Equal(o Term) bool {
	return t == o
}

// Same tells whether two terms name the same concept, ignoring annotations.
//
// The validator compares catalog terms against registry-supplied terms with
// this, since registries rarely carry full descriptions.
func (t Term) Same(o Term) bool {
	return t.Ontology == o.Ontology && t.ID == o.ID
}

var kisaoIDPattern = regexp.MustCompile(`^KISAO_\d{7}$`)

// NormalizeKisaoID converts an id for a KiSAO term to the official pattern
// `KISAO_\d{7}`.
//
// The official pattern is often confused with `KISAO:\d{7}` or a bare
// `\d{7}`; both variants are accepted. Short numeric ids are zero-padded.
// An id which cannot be brought to the official pattern is an error.
func NormalizeKisaoID(id string) (string, error) {
	unnormalized := id

	id = strings.TrimPrefix(id, "KISAO:")
	id = strings.TrimPrefix(id, "KISAO_")

	if id == "" {
		return "", fmt.Errorf("%q is likely not a KiSAO term", unnormalized)
	}
	if len(id) < 7 {
		id = strings.Repeat("0", 7-len(id)) + id
	}
	id = "KISAO_" + id

	if !kisaoIDPattern.MatchString(id) {
		return "", fmt.Errorf("%q is likely not a KiSAO term", unnormalized)
	}
	return id, nil
}

// KisaoTermFromID builds a KiSAO term from any accepted id spelling.
//
// The returned term has Ontology "KISAO" and the bare zero-padded 7-digit id,
// which is how terms are compared across documents.
func KisaoTermFromID(id string) (Term, error) {
	normalized, err := NormalizeKisaoID(id)
	if err != nil {
		return Term{}, err
	}
	return Term{Ontology: "KISAO", ID: strings.TrimPrefix(normalized, "KISAO_")}, nil
}
