package meta

// Person is an author of a model, simulation or archive.
type Person struct {
	FirstName  string `json:"firstName,omitempty"`
	MiddleName string `json:"middleName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
}

func (p Person) Equal(o Person) bool {
	return p == o
}

// Name renders the person as "First Middle Last", skipping empty parts.
func (p Person) Name() string {
	name := ""
	for _, part := range []string{p.FirstName, p.MiddleName, p.LastName} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}

// Identifier is a cross-reference of a concept, like biomodels.db:BIOMD0000000297.
type Identifier struct {
	Namespace string `json:"namespace"`
	ID        string `json:"id"`
	URL       string `json:"url,omitempty"`
}

func (i Identifier) Equal(o Identifier) bool {
	return i == o
}
