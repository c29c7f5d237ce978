package assessment

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExportJSON serializes the full document as pretty-printed UTF-8 JSON.
// No field is omitted that carries data; the output re-imports to a
// structurally equal document.
func ExportJSON(a *Assessment) ([]byte, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, NewError(ErrCodeUnknown,
			"The assessment could not be serialized.",
			"json marshal: %v", err)
	}
	return data, nil
}

// ValidateSchema checks an untyped parsed document against the current
// schema. It fails closed: any missing required field or schema version
// mismatch rejects the document outright, never coerces it.
//
// Failure modes, in check order:
//   - not a JSON object                  -> MALFORMED_FILE
//   - missing required top-level fields  -> SCHEMA_INCOMPATIBLE
//   - schemaVersion mismatch             -> SCHEMA_INCOMPATIBLE
//   - missing/empty metadata.customerName-> SCHEMA_INCOMPATIBLE
//   - missing pillar keys                -> SCHEMA_INCOMPATIBLE
func ValidateSchema(raw any) error {
	obj, ok := raw.(map[string]any)
	if !ok || obj == nil {
		return NewError(ErrCodeMalformedFile,
			"The file does not contain valid assessment data.",
			"document is not a JSON object")
	}

	required := []string{"assessmentId", "metadata", "pillars", "schemaVersion"}
	var missing []string
	for _, field := range required {
		if _, present := obj[field]; !present {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return NewError(ErrCodeSchemaIncompatible,
			"The assessment file is missing required information.",
			"missing fields: %s", strings.Join(missing, ", "))
	}

	if version, _ := obj["schemaVersion"].(string); version != SchemaVersion {
		return NewError(ErrCodeSchemaIncompatible,
			fmt.Sprintf("This assessment uses schema version %v; this build supports %s.", obj["schemaVersion"], SchemaVersion),
			"schema version mismatch: %v vs %s", obj["schemaVersion"], SchemaVersion)
	}

	metadata, _ := obj["metadata"].(map[string]any)
	if name, _ := metadata["customerName"].(string); name == "" {
		return NewError(ErrCodeSchemaIncompatible,
			"The assessment file is missing customer information.",
			"metadata.customerName is required")
	}

	pillars, _ := obj["pillars"].(map[string]any)
	var missingPillars []string
	for _, id := range PillarIDs {
		if _, present := pillars[string(id)]; !present {
			missingPillars = append(missingPillars, string(id))
		}
	}
	if len(missingPillars) > 0 {
		return NewError(ErrCodeSchemaIncompatible,
			"The assessment file has an incomplete structure.",
			"missing pillars: %s", strings.Join(missingPillars, ", "))
	}

	return nil
}
