package omex

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/biosimkit/biosimkit/pkg/domain/archive"
	derr "github.com/biosimkit/biosimkit/pkg/domain/errors"
	"github.com/biosimkit/biosimkit/pkg/domain/formats"
)

// Reader unpacks a COMBINE/OMEX zip file.
type Reader struct{}

// Read extracts the archive at in into unpackDir and rebuilds its Archive
// record from manifest.xml and metadata.rdf.
//
// An archive without a manifest is invalid. Member paths escaping unpackDir
// are refused.
func (Reader) Read(in string, unpackDir string) (*archive.Archive, error) {
	zr, err := zip.OpenReader(in)
	if err != nil {
		return nil, derr.NewArchiveIo(in, err)
	}
	defer zr.Close()

	for _, entry := range zr.File {
		if err := extract(entry, unpackDir); err != nil {
			return nil, derr.NewArchiveIo(in, err)
		}
	}

	manifest, err := os.ReadFile(filepath.Join(unpackDir, ManifestName))
	if err != nil {
		return nil, derr.ArchiveIof(in, "no %s in archive", ManifestName)
	}
	files, master, err := unmarshalManifest(in, manifest)
	if err != nil {
		return nil, err
	}

	ar := &archive.Archive{
		MasterFile: master,
		Files:      files,
		Format:     formats.COMBINE,
	}

	if metadata, err := os.ReadFile(filepath.Join(unpackDir, MetadataName)); err == nil {
		if err := unmarshalMetadata(in, metadata, ar); err != nil {
			return nil, err
		}
	}

	if err := ar.Validate(); err != nil {
		return nil, err
	}
	return ar, nil
}

func extract(entry *zip.File, unpackDir string) error {
	name := filepath.FromSlash(entry.Name)
	dest := filepath.Join(unpackDir, name)

	if rel, err := filepath.Rel(unpackDir, dest); err != nil || strings.HasPrefix(rel, "..") {
		return derr.ArchiveIof(entry.Name, "archive member escapes the unpack directory")
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0755)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return err
	}
	return out.Close()
}
