package configstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/nomoriel/phase2vec/internal/ctxlog"
	"github.com/nomoriel/phase2vec/internal/fsutil"
)

// Ext is the file extension for all configuration documents.
const Ext = ".hcl"

// ReadFile parses the HCL file at path into a document.
func ReadFile(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	body, err := ParseBody(src, path)
	if err != nil {
		return nil, err
	}
	if len(body.Blocks) > 0 {
		return nil, fmt.Errorf("%s: configuration documents must not contain blocks (found %q)", path, body.Blocks[0].Type)
	}
	return DecodeAttributes(body)
}

// Render serializes a document to HCL source, attributes in key order.
func Render(doc *Document) ([]byte, error) {
	file := hclwrite.NewEmptyFile()
	body := file.Body()
	for _, key := range doc.Keys() {
		v, _ := doc.Get(key)
		ctyVal, err := NativeToCty(v)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", key, err)
		}
		body.SetAttributeValue(key, ctyVal)
	}
	return file.Bytes(), nil
}

// WriteFile atomically persists a document at path. The content is written
// to a temporary file in the destination directory, synced, and renamed into
// place, so concurrent readers never observe a partial document.
func WriteFile(path string, doc *Document) error {
	src, err := Render(doc)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, src)
}

// WriteRawFile atomically writes pre-rendered content at path with the same
// temp-then-rename discipline as WriteFile.
func WriteRawFile(path string, content []byte) error {
	return writeFileAtomic(path, content)
}

func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		// Best effort cleanup; a successful rename makes this a no-op.
		os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Update merges doc into the document stored at path, creating the file if
// it does not exist yet.
func Update(ctx context.Context, path string, doc *Document) error {
	logger := ctxlog.FromContext(ctx)

	existing, err := ReadFile(path)
	switch {
	case os.IsNotExist(err):
		logger.Debug("Config does not exist yet, creating.", "path", path)
		existing = NewDocument()
	case err != nil:
		return err
	}

	existing.Merge(doc)
	return WriteFile(path, existing)
}

// LastConfig returns the path of the most recently modified config document
// in dir whose base name ends with suffix, or an empty string when none
// matches.
func LastConfig(dir, suffix string) (string, error) {
	return fsutil.LatestFileWithSuffix(dir, suffix, Ext)
}
