package rekordbox

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/mixxport/internal/shared"
)

// WriteFile renders the document and writes it to path, replacing any
// existing file atomically: the XML lands in a uniquely named temp file in
// the destination directory first and is renamed into place only after a
// successful flush. A failed run never leaves a partial file a human could
// mistake for a complete export. Failures wrap [shared.ErrWriteFailed].
func WriteFile(doc *Document, path string) error {
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal document: %v", shared.ErrWriteFailed, err)
	}
	payload := append([]byte(xml.Header), data...)
	payload = append(payload, '\n')

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), shared.GenerateID()))

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrWriteFailed, err)
	}

	if _, err := f.Write(payload); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", shared.ErrWriteFailed, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", shared.ErrWriteFailed, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", shared.ErrWriteFailed, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", shared.ErrWriteFailed, err)
	}
	return nil
}
