// Package scantypes discovers the set of scan-type identifiers a server
// accepts, from its self-described API schema or a local schema file.
//
// Resolution is a priority-ordered chain of lookup strategies, each allowed
// to fail silently: live server schema, then local schema file, then
// nothing (the caller substitutes a static fallback). A failure at any
// layer yields an empty catalog, never an error.
package scantypes

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dojoctl/dojoctl/pkg/defaults"
	"github.com/dojoctl/dojoctl/pkg/jsonutil"
)

// Source selects the resolution strategy.
type Source string

const (
	// SourceAuto tries the server first, then the local file.
	SourceAuto Source = "auto"
	// SourceServer consults only the live server schema.
	SourceServer Source = "server"
	// SourceFile consults only the local schema file.
	SourceFile Source = "file"
)

// ParseSource validates a source flag value.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceAuto, SourceServer, SourceFile:
		return Source(s), nil
	default:
		return "", fmt.Errorf("scantypes: unknown source %q (want auto, server or file)", s)
	}
}

// Schema location of the scan-type enumeration. The import-request schema
// is named identically in both dialects the server has shipped.
const (
	importRequestSchema = "ImportScanRequest"
	scanTypeField       = "scan_type"
)

// SchemaFetcher fetches one self-description endpoint as a parsed JSON
// document. *dojo.Client implements it.
type SchemaFetcher interface {
	SchemaDocument(ctx context.Context, path string) (map[string]any, error)
}

// Resolver produces the scan-type catalog for one run.
type Resolver struct {
	// Client is the connected server, if any. Server probing is skipped
	// without one.
	Client SchemaFetcher

	// SpecPath is the local schema file, if any.
	SpecPath string

	// ProbeTimeout bounds each server schema probe.
	// Defaults to defaults.SchemaProbeTimeout.
	ProbeTimeout time.Duration

	// Warn receives non-fatal diagnostics (missing or unparsable local
	// file). Nil means discard.
	Warn func(string)
}

// Resolve returns the ordered, de-duplicated scan-type catalog, or an empty
// slice when no source yields one.
func (r *Resolver) Resolve(ctx context.Context, source Source) []string {
	switch source {
	case SourceServer:
		if r.Client == nil {
			return nil
		}
		return r.fromServer(ctx)
	case SourceFile:
		return r.fromFile()
	default: // SourceAuto
		if r.Client != nil {
			if types := r.fromServer(ctx); len(types) > 0 {
				return types
			}
		}
		return r.fromFile()
	}
}

// fromServer probes the candidate schema endpoints strictly in order, with
// early exit on the first candidate whose document carries a non-empty
// enum. Any per-candidate failure is swallowed and the next one is tried.
func (r *Resolver) fromServer(ctx context.Context) []string {
	timeout := r.ProbeTimeout
	if timeout == 0 {
		timeout = defaults.SchemaProbeTimeout
	}
	for _, path := range defaults.SchemaCandidates {
		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		doc, err := r.Client.SchemaDocument(probeCtx, path)
		cancel()
		if err != nil {
			continue
		}
		if raw := ExtractEnum(doc); len(raw) > 0 {
			return Dedup(raw)
		}
	}
	return nil
}

// fromFile parses the configured local schema file. Missing or broken files
// warn and yield an empty catalog; discovery failures are never fatal.
func (r *Resolver) fromFile() []string {
	if r.SpecPath == "" {
		return nil
	}
	data, err := os.ReadFile(r.SpecPath)
	if err != nil {
		if os.IsNotExist(err) {
			r.warnf("schema file not found at %s", r.SpecPath)
		} else {
			r.warnf("schema file not readable: %v", err)
		}
		return nil
	}
	var doc map[string]any
	if err := jsonutil.Unmarshal(data, &doc); err != nil {
		r.warnf("failed to parse schema file %s: %v", r.SpecPath, err)
		return nil
	}
	return Dedup(ExtractEnum(doc))
}

func (r *Resolver) warnf(format string, args ...any) {
	if r.Warn != nil {
		r.Warn(fmt.Sprintf(format, args...))
	}
}

// ExtractEnum finds the scan-type enumeration inside a parsed schema
// document. Three strategies are tried strictly in order, never merged:
// the OpenAPI 3 location, the Swagger 2 location, then an exhaustive
// depth-first crawl for any object keyed by the import-request schema name.
func ExtractEnum(doc map[string]any) []any {
	// OpenAPI 3: components.schemas.<schema>.properties.scan_type.enum
	if enum := enumAt(doc, "components", "schemas", importRequestSchema); len(enum) > 0 {
		return enum
	}
	// Swagger 2: definitions.<schema>.properties.scan_type.enum
	if enum := enumAt(doc, "definitions", importRequestSchema); len(enum) > 0 {
		return enum
	}
	return crawlForEnum(doc)
}

// enumAt walks a fixed key path to the import-request schema object and
// returns its scan-type enum list, if the whole path holds.
func enumAt(doc map[string]any, path ...string) []any {
	node := doc
	for _, key := range path {
		next, ok := node[key].(map[string]any)
		if !ok {
			return nil
		}
		node = next
	}
	return schemaEnum(node)
}

// schemaEnum digs properties.scan_type.enum out of a schema object.
func schemaEnum(schema map[string]any) []any {
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		return nil
	}
	field, ok := props[scanTypeField].(map[string]any)
	if !ok {
		return nil
	}
	enum, _ := field["enum"].([]any)
	return enum
}

// crawlForEnum is the last-resort traversal over the entire document tree,
// looking for any object that carries the import-request schema under its
// own name with a nested scan-type enum.
func crawlForEnum(doc map[string]any) []any {
	stack := []any{doc}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n := node.(type) {
		case map[string]any:
			if schema, ok := n[importRequestSchema].(map[string]any); ok {
				if enum := schemaEnum(schema); len(enum) > 0 {
					return enum
				}
			}
			for _, v := range n {
				stack = append(stack, v)
			}
		case []any:
			stack = append(stack, n...)
		}
	}
	return nil
}

// Dedup produces an ordered sequence preserving first occurrence, keeping
// only string entries and silently dropping duplicates and non-strings.
func Dedup(items []any) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
