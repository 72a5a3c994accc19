package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/youta-t/flarc"

	"github.com/biosimkit/biosimkit/pkg/domain/archive"
	"github.com/biosimkit/biosimkit/pkg/domain/formats"
	"github.com/biosimkit/biosimkit/pkg/io/omex"
	"github.com/biosimkit/biosimkit/pkg/utils/try"
)

func main() {
	logger := log.Default()
	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	pack := try.To(newPack()).OrFatal(logger)
	unpack := try.To(newUnpack()).OrFatal(logger)
	inspect := try.To(newInspect()).OrFatal(logger)

	cmd := try.To(flarc.NewCommandGroup(
		"Pack, unpack and inspect COMBINE/OMEX archives.",
		struct{}{},
		flarc.WithSubcommand("pack", pack),
		flarc.WithSubcommand("unpack", unpack),
		flarc.WithSubcommand("inspect", inspect),
	)).OrFatal(logger)

	os.Exit(flarc.Run(ctx, cmd, flarc.WithHelp(true)))
}

const (
	ARG_CONTENT_DIR = "CONTENT_DIR"
	ARG_ARCHIVE     = "ARCHIVE"
	ARG_DEST        = "DEST"
)

type packFlags struct {
	Master      string `flag:"master,short=m" help:"archive member to flag as master. default: the first SED-ML file."`
	Description string `flag:"description,short=d" help:"description recorded in the archive metadata."`
}

func newPack() (flarc.Command, error) {
	return flarc.NewCommand(
		"Bundle a directory into a COMBINE/OMEX archive.",
		packFlags{},
		flarc.Args{
			{
				Name: ARG_CONTENT_DIR, Required: true,
				Help: "directory holding the archive content.",
			},
			{
				Name: ARG_ARCHIVE, Required: true,
				Help: "path of the archive to create.",
			},
		},
		func(ctx context.Context, c flarc.Commandline[packFlags], a []any) error {
			contentDir := c.Args()[ARG_CONTENT_DIR][0]
			out := c.Args()[ARG_ARCHIVE][0]
			flags := c.Flags()

			ar, err := scanContent(contentDir, flags.Master, flags.Description)
			if err != nil {
				return err
			}
			if err := (omex.Writer{}).Write(ar, contentDir, out); err != nil {
				return err
			}

			fmt.Fprintf(c.Stdout(), "%s: %d members\n", out, len(ar.Files))
			return nil
		},
	)
}

func newUnpack() (flarc.Command, error) {
	return flarc.NewCommand(
		"Extract a COMBINE/OMEX archive into a directory.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_ARCHIVE, Required: true,
				Help: "the archive to extract.",
			},
			{
				Name: ARG_DEST, Required: false,
				Help: `directory to extract into. default: current directory ".".`,
			},
		},
		func(ctx context.Context, c flarc.Commandline[struct{}], a []any) error {
			in := c.Args()[ARG_ARCHIVE][0]
			dest := "."
			if d := c.Args()[ARG_DEST]; len(d) != 0 {
				dest = d[0]
			}
			if err := os.MkdirAll(dest, 0755); err != nil {
				return err
			}

			ar, err := (omex.Reader{}).Read(in, dest)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Stdout(), "%s: %d members extracted into %s\n", in, len(ar.Files), dest)
			return nil
		},
	)
}

func newInspect() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show the members of a COMBINE/OMEX archive.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_ARCHIVE, Required: true,
				Help: "the archive to inspect.",
			},
		},
		func(ctx context.Context, c flarc.Commandline[struct{}], a []any) error {
			in := c.Args()[ARG_ARCHIVE][0]

			scratch, err := os.MkdirTemp("", "omex-inspect-")
			if err != nil {
				return err
			}
			defer os.RemoveAll(scratch)

			ar, err := (omex.Reader{}).Read(in, scratch)
			if err != nil {
				return err
			}

			if ar.Description != "" {
				fmt.Fprintln(c.Stdout(), ar.Description)
				fmt.Fprintln(c.Stdout())
			}
			for _, f := range ar.Files {
				marker := " "
				if f.Path == ar.MasterFile {
					marker = "*"
				}
				format := f.Format.ID
				if format == "" {
					format = f.Format.SpecURL
				}
				fmt.Fprintf(c.Stdout(), "%s %s\t%s\n", marker, f.Path, format)
			}
			return nil
		},
	)
}

// scanContent builds an archive record from the files under contentDir.
//
// Formats are guessed from file extensions against the format registries;
// files with unknown extensions are included format-less.
func scanContent(contentDir string, master string, description string) (*archive.Archive, error) {
	byExtension := map[string]formats.Format{}
	for _, registry := range []*formats.Registry{formats.Simulations, formats.Models, formats.Archives} {
		for _, f := range registry.All() {
			if f.Extension == "" {
				continue
			}
			if _, taken := byExtension["."+f.Extension]; !taken {
				byExtension["."+f.Extension] = f
			}
		}
	}

	ar := &archive.Archive{
		Description: description,
		Format:      formats.COMBINE,
	}

	members := []string{}
	err := filepath.Walk(contentDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}
		members = append(members, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(members)

	for _, member := range members {
		ar.Files = append(ar.Files, archive.File{
			Path:   "./" + member,
			Format: byExtension[filepath.Ext(member)],
		})
	}

	if master != "" {
		if !strings.HasPrefix(master, "./") {
			master = "./" + master
		}
		ar.MasterFile = master
	} else {
		for _, f := range ar.Files {
			if f.Format.ID == formats.SEDML.ID {
				ar.MasterFile = f.Path
				break
			}
		}
	}

	return ar, ar.Validate()
}
