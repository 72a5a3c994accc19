package archive

import (
	"github.com/biosimkit/biosimkit/pkg/cmp"
	derr "github.com/biosimkit/biosimkit/pkg/domain/errors"
	"github.com/biosimkit/biosimkit/pkg/domain/formats"
	"github.com/biosimkit/biosimkit/pkg/domain/meta"
	"github.com/biosimkit/biosimkit/pkg/utils"
	"github.com/biosimkit/biosimkit/pkg/utils/rfctime"
)

// Archive describes a COMBINE/OMEX archive: an ordered list of member files
// and a distinguished master file.
//
// Invariants (checked by Validate):
//   - member paths are pairwise distinct
//   - the master file, when set, is a member of Files
type Archive struct {
	// MasterFile is the path of the member a simulator should execute first,
	// normally the SED-ML file. Empty when the archive declares no master.
	MasterFile string

	// Files in manifest order. Ordering is preserved by read and write.
	Files []File

	Description string
	Authors     []meta.Person
	Format      formats.Format
	Created     rfctime.RFC3339
	Updated     rfctime.RFC3339
}

// File is a member of an archive.
type File struct {
	// Path of the file within the archive, like "./simulation.sedml".
	Path string

	Format      formats.Format
	Description string
	Authors     []meta.Person
	Created     rfctime.RFC3339
	Updated     rfctime.RFC3339
}

func (f File) Equal(o File) bool {
	return f.Path == o.Path &&
		f.Format.Equal(o.Format) &&
		f.Description == o.Description &&
		cmp.SliceContentEqWith(f.Authors, o.Authors, meta.Person.Equal) &&
		f.Created.Equal(o.Created) &&
		f.Updated.Equal(o.Updated)
}

// Equal is semantic equality. File ordering is meaningful (it is manifest
// order), so Files are compared in order; Authors are not.
func (a *Archive) Equal(o *Archive) bool {
	if a == nil || o == nil {
		return a == nil && o == nil
	}
	return a.MasterFile == o.MasterFile &&
		cmp.SliceEqWith(a.Files, o.Files, File.Equal) &&
		a.Description == o.Description &&
		cmp.SliceContentEqWith(a.Authors, o.Authors, meta.Person.Equal) &&
		a.Format.Equal(o.Format) &&
		a.Created.Equal(o.Created) &&
		a.Updated.Equal(o.Updated)
}

// Master returns the master file's entry.
func (a *Archive) Master() (File, bool) {
	if a.MasterFile == "" {
		return File{}, false
	}
	return utils.First(a.Files, func(f File) bool { return f.Path == a.MasterFile })
}

// Validate enforces the archive invariants.
//
// Both the reader and the writer call this, so an Archive obtained from
// either side of the boundary is known well-formed.
func (a *Archive) Validate() error {
	seen := map[string]struct{}{}
	for _, f := range a.Files {
		if f.Path == "" {
			return derr.ArchiveIof("", "archive member without a path")
		}
		if _, dup := seen[f.Path]; dup {
			return derr.ArchiveIof("", "duplicate archive member: %s", f.Path)
		}
		seen[f.Path] = struct{}{}
	}

	if a.MasterFile != "" {
		if _, ok := seen[a.MasterFile]; !ok {
			return derr.ArchiveIof("", "master file %s is not a member of the archive", a.MasterFile)
		}
	}

	return nil
}
