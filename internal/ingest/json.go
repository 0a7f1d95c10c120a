package ingest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jackzampolin/folio/internal/types"
)

//go:embed schema/pages.schema.json
var pagesSchemaJSON []byte

var (
	pagesSchemaOnce sync.Once
	pagesSchema     *jsonschema.Schema
	pagesSchemaErr  error
)

func compiledPagesSchema() (*jsonschema.Schema, error) {
	pagesSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("pages.schema.json", bytes.NewReader(pagesSchemaJSON)); err != nil {
			pagesSchemaErr = fmt.Errorf("failed to load pages schema: %w", err)
			return
		}
		pagesSchema, pagesSchemaErr = compiler.Compile("pages.schema.json")
		if pagesSchemaErr != nil {
			pagesSchemaErr = fmt.Errorf("failed to compile pages schema: %w", pagesSchemaErr)
		}
	})
	return pagesSchema, pagesSchemaErr
}

// jsonDocument is the object form of a page document.
type jsonDocument struct {
	Title  string       `json:"title"`
	Author string       `json:"author"`
	Pages  []types.Page `json:"pages"`
}

// LoadJSON reads a page document: either a bare array of
// {"page_number", "text"} objects or an object with a "pages" array and
// optional "title" and "author".
func LoadJSON(path string, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Source = path
	if doc.Title == "" {
		doc.Title = deriveTitle(path)
	}
	return doc, nil
}

// ParseJSON validates data against the page schema and decodes it.
// Source and a fallback title are left to the caller.
func ParseJSON(data []byte) (*Document, error) {
	schema, err := compiledPagesSchema()
	if err != nil {
		return nil, err
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var jd jsonDocument
	if _, ok := raw.([]any); ok {
		err = json.Unmarshal(data, &jd.Pages)
	} else {
		err = json.Unmarshal(data, &jd)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	doc := newDocument("", jd.Title, jd.Pages)
	doc.Author = jd.Author
	return doc, nil
}
