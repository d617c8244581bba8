package schemafile

import (
	"errors"
	"path/filepath"
	"strings"
)

// Source identifies where a schema document originated.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindBytes SourceKind = "bytes"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS identifies a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type bytesSource struct {
	name string
}

func (s bytesSource) Location() string { return s.name }
func (s bytesSource) Kind() SourceKind { return SourceKindBytes }

// SourceFromBytes names an in-memory document. The name's extension, when
// present, selects the decoder.
func SourceFromBytes(name string) Source {
	return bytesSource{name: name}
}

// Document wraps a raw schema payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument validates the inputs and copies raw.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schemafile: source is required")
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return Document{}, errors.New("schemafile: " + src.Location() + " is empty")
	}
	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// Source returns the origin metadata.
func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the origin identifier.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
