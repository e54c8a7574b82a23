package domain

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type Handle string

const KB = 1024
const MB = KB * KB

// LocalFile is one file selected for upload. The Handle is generated locally
// when the file enters the batch and is the only key used for derived state;
// the display name is never used as a map key, so two files sharing a name
// cannot collide.
type LocalFile struct {
	Handle      Handle
	Name        string
	Size        int64
	ContentType string
	Content     io.ReaderAt
}

func NewHandle() Handle {
	return Handle(uuid.NewString())
}

// FileFromPath builds a LocalFile from a path on disk. When the content type
// is unknown it is sniffed from the file header. The returned *os.File backs
// LocalFile.Content and must be closed by the caller once the upload is done.
func FileFromPath(path string) (LocalFile, *os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return LocalFile{}, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return LocalFile{}, nil, fmt.Errorf("entry %s is not a regular file", path)
	}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return LocalFile{}, nil, fmt.Errorf("sniff %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return LocalFile{}, nil, fmt.Errorf("open %s: %w", path, err)
	}

	return LocalFile{
		Handle:      NewHandle(),
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: mime.String(),
		Content:     f,
	}, f, nil
}
