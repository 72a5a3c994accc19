// Reading SBML model documents into biomodel records.
//
// Only the core SBML constructs the toolkit needs are interpreted:
// compartments, species, global parameters and kinetic-law parameters.
// Package-specific constructs (fbc, qual, ...) are ignored.
package sbml

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/biosimkit/biosimkit/pkg/domain/biomodel"
	derr "github.com/biosimkit/biosimkit/pkg/domain/errors"
	"github.com/biosimkit/biosimkit/pkg/domain/formats"
	"github.com/biosimkit/biosimkit/pkg/domain/ontology"
)

// Reader reads an SBML file into a Biomodel.
type Reader struct{}

type sbmlDoc struct {
	XMLName xml.Name   `xml:"sbml"`
	Level   int        `xml:"level,attr"`
	Version int        `xml:"version,attr"`
	Model   *sbmlModel `xml:"model"`
}

type sbmlModel struct {
	ID           string            `xml:"id,attr"`
	Name         string            `xml:"name,attr"`
	Compartments []sbmlCompartment `xml:"listOfCompartments>compartment"`
	Species      []sbmlSpecies     `xml:"listOfSpecies>species"`
	Parameters   []sbmlParameter   `xml:"listOfParameters>parameter"`
	Reactions    []sbmlReaction    `xml:"listOfReactions>reaction"`
}

type sbmlCompartment struct {
	ID    string   `xml:"id,attr"`
	Name  string   `xml:"name,attr"`
	Size  *float64 `xml:"size,attr"`
	Units string   `xml:"units,attr"`
}

type sbmlSpecies struct {
	ID                   string   `xml:"id,attr"`
	Name                 string   `xml:"name,attr"`
	Compartment          string   `xml:"compartment,attr"`
	InitialAmount        *float64 `xml:"initialAmount,attr"`
	InitialConcentration *float64 `xml:"initialConcentration,attr"`
	SubstanceUnits       string   `xml:"substanceUnits,attr"`
	BoundaryCondition    bool     `xml:"boundaryCondition,attr"`
}

type sbmlParameter struct {
	ID    string   `xml:"id,attr"`
	Name  string   `xml:"name,attr"`
	Value *float64 `xml:"value,attr"`
	Units string   `xml:"units,attr"`
}

type sbmlReaction struct {
	ID         string          `xml:"id,attr"`
	Name       string          `xml:"name,attr"`
	KineticLaw *sbmlKineticLaw `xml:"kineticLaw"`
}

type sbmlKineticLaw struct {
	Parameters      []sbmlParameter `xml:"listOfParameters>parameter"`
	LocalParameters []sbmlParameter `xml:"listOfLocalParameters>localParameter"`
}

// Read parses an SBML file.
//
// Structural defects (no model element, duplicate ids, species without an
// initial condition) are IoErrors; nothing is silently dropped.
func (Reader) Read(path string) (*biomodel.Biomodel, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, derr.NewIo(formats.SBML.ID, path, err)
	}

	doc := new(sbmlDoc)
	if err := xml.Unmarshal(content, doc); err != nil {
		return nil, derr.NewIo(formats.SBML.ID, path, err)
	}
	if doc.Model == nil {
		return nil, derr.Iof(formats.SBML.ID, path, "no model element")
	}

	format := formats.SBML
	if doc.Level != 0 {
		format.Version = fmt.Sprintf("L%dV%d", doc.Level, doc.Version)
	}

	model := &biomodel.Biomodel{
		ID:        doc.Model.ID,
		Name:      doc.Model.Name,
		FileName:  filepath.Base(path),
		Format:    format,
		Framework: ontology.FrameworkNonSpatialContinuous,
	}
	if model.Name == "" {
		model.Name = model.ID
	}

	if err := readCompartments(doc.Model, model); err != nil {
		return nil, derr.NewIo(formats.SBML.ID, path, err)
	}
	if err := readSpecies(doc.Model, model); err != nil {
		return nil, derr.NewIo(formats.SBML.ID, path, err)
	}
	if err := readParameters(doc.Model, model); err != nil {
		return nil, derr.NewIo(formats.SBML.ID, path, err)
	}

	return model, nil
}

func readCompartments(m *sbmlModel, model *biomodel.Biomodel) error {
	for _, comp := range m.Compartments {
		if comp.ID == "" {
			return fmt.Errorf("compartment without an id")
		}
		if comp.Size == nil {
			continue
		}
		size := *comp.Size
		model.Parameters = append(model.Parameters, biomodel.Parameter{
			ID:    "init_size_" + comp.ID,
			Name:  "Initial size of " + nameOr(comp.Name, comp.ID),
			Group: "Initial compartment sizes",
			Type:  "float",
			Target: fmt.Sprintf(
				"/sbml:sbml/sbml:model/sbml:listOfCompartments/sbml:compartment[@id='%s']/@size",
				comp.ID,
			),
			Value: &size,
			Units: comp.Units,
		})
	}
	return nil
}

func readSpecies(m *sbmlModel, model *biomodel.Biomodel) error {
	seen := map[string]struct{}{}
	for _, sp := range m.Species {
		if sp.ID == "" {
			return fmt.Errorf("species without an id")
		}
		if _, dup := seen[sp.ID]; dup {
			return fmt.Errorf("duplicate species id: %s", sp.ID)
		}
		seen[sp.ID] = struct{}{}

		// initial condition: amount takes precedence, as in SBML itself
		var initialType, initialAttr string
		var value float64
		switch {
		case sp.InitialAmount != nil:
			initialType, initialAttr, value = "amount", "initialAmount", *sp.InitialAmount
		case sp.InitialConcentration != nil:
			initialType, initialAttr, value = "concentration", "initialConcentration", *sp.InitialConcentration
		default:
			return fmt.Errorf("species %s has no initial amount nor concentration", sp.ID)
		}
		model.Parameters = append(model.Parameters, biomodel.Parameter{
			ID:    fmt.Sprintf("init_%s_%s", initialType, sp.ID),
			Name:  fmt.Sprintf("Initial %s of %s", initialType, nameOr(sp.Name, sp.ID)),
			Group: biomodel.GroupInitialConditions,
			Type:  "float",
			Target: fmt.Sprintf(
				"/sbml:sbml/sbml:model/sbml:listOfSpecies/sbml:species[@id='%s']/@%s",
				sp.ID, initialAttr,
			),
			Value: &value,
			Units: sp.SubstanceUnits,
		})

		if sp.BoundaryCondition {
			continue
		}
		model.Variables = append(model.Variables, biomodel.Variable{
			ID:    sp.ID,
			Name:  nameOr(sp.Name, sp.ID),
			Group: "Species amounts/concentrations",
			Type:  "float",
			Target: fmt.Sprintf(
				"/sbml:sbml/sbml:model/sbml:listOfSpecies/sbml:species[@id='%s']",
				sp.ID,
			),
			Units: sp.SubstanceUnits,
		})
	}
	return nil
}

func readParameters(m *sbmlModel, model *biomodel.Biomodel) error {
	for _, param := range m.Parameters {
		if param.ID == "" {
			return fmt.Errorf("parameter without an id")
		}
		model.Parameters = append(model.Parameters, biomodel.Parameter{
			ID:    param.ID,
			Name:  nameOr(param.Name, param.ID),
			Group: "Other global parameters",
			Type:  "float",
			Target: fmt.Sprintf(
				"/sbml:sbml/sbml:model/sbml:listOfParameters/sbml:parameter[@id='%s']/@value",
				param.ID,
			),
			Value: param.Value,
			Units: param.Units,
		})
	}

	for _, rxn := range m.Reactions {
		if rxn.KineticLaw == nil {
			continue
		}
		locals := append(
			append([]sbmlParameter{}, rxn.KineticLaw.Parameters...),
			rxn.KineticLaw.LocalParameters...,
		)
		for _, param := range locals {
			if param.ID == "" {
				return fmt.Errorf("kinetic-law parameter of reaction %s without an id", rxn.ID)
			}
			model.Parameters = append(model.Parameters, biomodel.Parameter{
				ID:    rxn.ID + "/" + param.ID,
				Name:  fmt.Sprintf("%s of %s", nameOr(param.Name, param.ID), nameOr(rxn.Name, rxn.ID)),
				Group: fmt.Sprintf("%s rate constants", nameOr(rxn.Name, rxn.ID)),
				Type:  "float",
				Target: fmt.Sprintf(
					"/sbml:sbml/sbml:model/sbml:listOfReactions/sbml:reaction[@id='%s']"+
						"/sbml:kineticLaw/sbml:listOfParameters/sbml:parameter[@id='%s']/@value",
					rxn.ID, param.ID,
				),
				Value: param.Value,
				Units: param.Units,
			})
		}
	}

	return nil
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
