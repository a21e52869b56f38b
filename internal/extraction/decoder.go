package extraction

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"docextract/internal/domain"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var errEmptyPayload = errors.New("empty payload after fence strip")

// shapes holds the compiled per-kind schema used to reject wrong-shaped output.
type shapes map[domain.ExtractionKind]*jsonschema.Schema

var kindShapes = mustCompileShapes()

func compileShapes() (shapes, error) {
	compiler := jsonschema.NewCompiler()
	for _, kind := range domain.AllExtractionKinds {
		name := string(kind) + ".json"
		b, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", kind, err)
		}
		if err := compiler.AddResource(name, bytes.NewReader(b)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", kind, err)
		}
	}
	out := make(shapes, len(domain.AllExtractionKinds))
	for _, kind := range domain.AllExtractionKinds {
		sch, err := compiler.Compile(string(kind) + ".json")
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", kind, err)
		}
		out[kind] = sch
	}
	return out, nil
}

func mustCompileShapes() shapes {
	s, err := compileShapes()
	if err != nil {
		panic(err)
	}
	return s
}

// DecodeJSON strips a markdown fence from raw and parses the payload as
// strict JSON. An empty payload is an error; no parse is attempted.
func DecodeJSON(raw string) (any, error) {
	payload := StripFence(raw)
	if payload == "" {
		return nil, errEmptyPayload
	}
	var v any
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Decode converts a model response into the result shape for kind. It
// always returns a well-formed result: on any failure the kind's empty
// default is returned together with a *domain.DecodeError.
func Decode(kind domain.ExtractionKind, raw string) (domain.ExtractionResult, error) {
	fallback := domain.EmptyResult(kind)
	if fallback == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidExtractionKind, kind)
	}

	v, err := DecodeJSON(raw)
	if err != nil {
		return fallback, &domain.DecodeError{Kind: kind, Raw: raw, Err: err}
	}

	v = normalize(kind, v)
	if err := kindShapes[kind].Validate(v); err != nil {
		return fallback, &domain.DecodeError{Kind: kind, Raw: raw, Err: err}
	}
	return build(kind, v), nil
}

// normalize applies the kind-specific reshaping that runs before the schema
// check: tables become a sequence and form fields are unwrapped.
func normalize(kind domain.ExtractionKind, v any) any {
	switch kind {
	case domain.KindTables, domain.KindAllTables:
		return tableSequence(v, true)
	case domain.KindFormFields:
		m, ok := v.(map[string]any)
		if !ok {
			return map[string]any{}
		}
		inner, present := m["form_fields"]
		if !present || inner == nil {
			return map[string]any{}
		}
		return inner
	}
	return v
}

// tableSequence wraps a single table object, keeps an array and maps any
// other value to an empty sequence. A {"tables": [...]} wrapper is unwrapped
// once.
func tableSequence(v any, unwrap bool) any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		_, hasHeaders := t["headers"]
		_, hasRows := t["rows"]
		if inner, ok := t["tables"]; ok && unwrap && !hasHeaders && !hasRows {
			return tableSequence(inner, false)
		}
		return []any{t}
	}
	return []any{}
}

func build(kind domain.ExtractionKind, v any) domain.ExtractionResult {
	switch kind {
	case domain.KindEntities:
		return toEntities(v)
	case domain.KindTables:
		return toTables(v)
	case domain.KindAllTables:
		return domain.AllTables(toTables(v))
	case domain.KindFormFields:
		return toFormFields(v)
	case domain.KindStructure:
		return toStructure(v)
	case domain.KindNames:
		m, _ := v.(map[string]any)
		return domain.NameList{Names: stringList(m["names"])}
	case domain.KindPhones:
		m, _ := v.(map[string]any)
		return domain.PhoneList{Phones: stringList(m["phones"])}
	}
	return domain.EmptyResult(kind)
}
