// Package assemble turns a model file plus a simulation record into a
// ready-to-run COMBINE/OMEX archive.
package assemble

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/biosimkit/biosimkit/pkg/domain/archive"
	derr "github.com/biosimkit/biosimkit/pkg/domain/errors"
	"github.com/biosimkit/biosimkit/pkg/domain/formats"
	"github.com/biosimkit/biosimkit/pkg/domain/simulation"
	"github.com/biosimkit/biosimkit/pkg/io/omex"
	"github.com/biosimkit/biosimkit/pkg/io/sedml"
)

// ForSimulation assembles an archive running sim over the model at modelFile.
//
// The archive contains the model (under sim.Model.FileName) and a generated
// SED-ML document "<sim.ID>.sedml" flagged as the master file. Plots, when
// given, are embedded in the SED-ML document. The archive is written to
// outDir as "<sim.ID>.omex".
func ForSimulation(
	modelFile string,
	sim *simulation.TimecourseSimulation,
	plots []simulation.Plot2D,
	outDir string,
) (*archive.Archive, string, error) {
	out := filepath.Join(outDir, sim.ID+"."+formats.COMBINE.Extension)

	if sim.Model == nil || sim.Model.FileName == "" {
		return nil, "", derr.ArchiveIof(out, "simulation %s has no model file name", sim.ID)
	}

	contentDir, err := os.MkdirTemp("", "assemble-")
	if err != nil {
		return nil, "", derr.NewArchiveIo(out, err)
	}
	defer os.RemoveAll(contentDir)

	if err := copyFile(modelFile, filepath.Join(contentDir, sim.Model.FileName)); err != nil {
		return nil, "", derr.NewArchiveIo(out, err)
	}

	sedmlName := sim.ID + "." + formats.SEDML.Extension
	if err := (sedml.Writer{}).Write(sim, plots, filepath.Join(contentDir, sedmlName)); err != nil {
		return nil, "", derr.NewArchiveIo(out, err)
	}

	ar := &archive.Archive{
		MasterFile: "./" + sedmlName,
		Files: []archive.File{
			{
				Path:        "./" + sim.Model.FileName,
				Format:      sim.Model.Format,
				Description: sim.Model.Description,
				Authors:     sim.Model.Authors,
				Created:     sim.Model.Created,
				Updated:     sim.Model.Updated,
			},
			{
				Path:    "./" + sedmlName,
				Format:  formats.SEDML,
				Authors: sim.Authors,
				Created: sim.Created,
				Updated: sim.Updated,
			},
		},
		Description: describe(sim),
		Authors:     sim.Authors,
		Format:      formats.COMBINE,
		Created:     sim.Created,
		Updated:     sim.Updated,
	}

	if err := (omex.Writer{}).Write(ar, contentDir, out); err != nil {
		return nil, "", err
	}
	return ar, out, nil
}

func describe(sim *simulation.TimecourseSimulation) string {
	description := sim.ID
	if sim.Name != "" {
		description = fmt.Sprintf("%s: %s", sim.ID, sim.Name)
	}
	if sim.Description != "" {
		description += "\n\n" + sim.Description
	}
	return description
}

func copyFile(src string, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
