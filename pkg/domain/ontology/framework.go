package ontology

// Modeling frameworks, as SBO terms.
//
// These mirror the branch of the Systems Biology Ontology describing
// modelling approaches.
var (
	FrameworkFluxBalance = Term{
		Ontology: "SBO",
		ID:       "0000624",
		Name:     "flux balance framework",
		IRI:      "http://biomodels.net/SBO/SBO_0000624",
	}

	FrameworkLogical = Term{
		Ontology: "SBO",
		ID:       "0000234",
		Name:     "logical framework",
		IRI:      "http://biomodels.net/SBO/SBO_0000234",
	}

	FrameworkNonSpatialContinuous = Term{
		Ontology: "SBO",
		ID:       "0000293",
		Name:     "non-spatial continuous framework",
		IRI:      "http://biomodels.net/SBO/SBO_0000293",
	}

	FrameworkNonSpatialDiscrete = Term{
		Ontology: "SBO",
		ID:       "0000295",
		Name:     "non-spatial discrete framework",
		IRI:      "http://biomodels.net/SBO/SBO_0000295",
	}

	FrameworkSpatialContinuous = Term{
		Ontology: "SBO",
		ID:       "0000292",
		Name:     "spatial continuous framework",
		IRI:      "http://biomodels.net/SBO/SBO_0000292",
	}

	FrameworkSpatialDiscrete = Term{
		Ontology: "SBO",
		ID:       "0000294",
		Name:     "spatial discrete framework",
		IRI:      "http://biomodels.net/SBO/SBO_0000294",
	}
)
