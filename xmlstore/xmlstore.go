// Package xmlstore reads, validates and writes the XML documents the
// registries persist to. Validation stands in for the DTD check: the root
// element is enforced by the document's XMLName and the remaining rules are
// expressed as validator struct tags. Documents failing either check are
// rejected as a whole.
package xmlstore

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMalformed = errors.New("malformed xml document")
	ErrInvalid   = errors.New("xml document failed validation")
)

// Document is a persisted XML document type
type Document interface {
	// Schema names the document type, used in diagnostics
	Schema() string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads path into doc and validates it. A missing file yields an error
// wrapping fs.ErrNotExist.
func Load(path string, doc Document) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := xml.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}

	if err := Validate(doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

// Validate checks doc against its schema rules
func Validate(doc Document) error {
	if err := validate.Struct(doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, doc.Schema(), err)
	}
	return nil
}

// Save writes doc to path, replacing any previous content. Missing parent
// directories are created with owner-only permissions.
func Save(path string, doc Document) error {
	if err := Validate(doc); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode %s: %w", doc.Schema(), err)
	}
	buf.WriteString("\n")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}

	return nil
}
