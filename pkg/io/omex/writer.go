package omex

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/biosimkit/biosimkit/pkg/domain/archive"
	derr "github.com/biosimkit/biosimkit/pkg/domain/errors"
)

// Writer bundles archive members into a COMBINE/OMEX zip file.
type Writer struct{}

// Write creates the archive at out.
//
// Member content is taken from contentDir, where each ar.Files entry must
// exist under its Path. The manifest and metadata are generated, not taken
// from contentDir. Member ordering in the zip follows Files order, so
// writing the same archive twice yields the same layout.
func (Writer) Write(ar *archive.Archive, contentDir string, out string) error {
	if err := ar.Validate(); err != nil {
		return err
	}

	manifest, err := marshalManifest(ar)
	if err != nil {
		return derr.NewArchiveIo(out, err)
	}
	metadata, err := marshalMetadata(ar)
	if err != nil {
		return derr.NewArchiveIo(out, err)
	}

	f, err := os.Create(out)
	if err != nil {
		return derr.NewArchiveIo(out, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	if err := putEntry(zw, ManifestName, manifest); err != nil {
		return derr.NewArchiveIo(out, err)
	}
	if err := putEntry(zw, MetadataName, metadata); err != nil {
		return derr.NewArchiveIo(out, err)
	}
	for _, member := range ar.Files {
		if err := putFile(zw, contentDir, member.Path); err != nil {
			return derr.NewArchiveIo(out, err)
		}
	}

	if err := zw.Close(); err != nil {
		return derr.NewArchiveIo(out, err)
	}
	if err := f.Close(); err != nil {
		return derr.NewArchiveIo(out, err)
	}
	return nil
}

func putEntry(zw *zip.Writer, name string, body []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

func putFile(zw *zip.Writer, contentDir string, memberPath string) error {
	name := strings.TrimPrefix(memberPath, "./")

	src, err := os.Open(filepath.Join(contentDir, filepath.FromSlash(name)))
	if err != nil {
		return err
	}
	defer src.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
