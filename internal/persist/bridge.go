// Package persist converts assessment documents to and from durable
// bytes: exportable JSON files and the local SQLite snapshot store used
// for crash recovery. It never touches the in-memory document owned by
// the state store; callers pass documents in and perform the one
// authoritative Load with the result.
package persist

import (
	"encoding/json"

	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/assessment"
)

// MaxImportBytes is the pre-flight ceiling for source files. Callers
// must reject larger files before handing bytes to ImportForLoad.
const MaxImportBytes = 10 << 20 // 10 MiB

// CheckSize enforces the pre-flight size guard.
func CheckSize(size int64) error {
	if size > MaxImportBytes {
		return assessment.NewError(assessment.ErrCodeFileTooLarge,
			"The file is too large. Maximum size is 10 MB.",
			"file size: %d bytes, limit: %d bytes", size, int64(MaxImportBytes))
	}
	return nil
}

// ExportForSave serializes a document for file export or snapshotting.
func ExportForSave(doc *assessment.Assessment) ([]byte, error) {
	return assessment.ExportJSON(doc)
}

// ImportForLoad parses and validates bytes into a document ready for
// the state store's Load command. On any failure the candidate is
// discarded whole; nothing is ever partially applied. Unparseable
// bytes yield MALFORMED_FILE; schema failures keep their specific
// SCHEMA_INCOMPATIBLE (or MALFORMED_FILE for non-object JSON) kind.
func ImportForLoad(data []byte) (*assessment.Assessment, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, assessment.NewError(assessment.ErrCodeMalformedFile,
			"The selected file is not a valid JSON file. It may be corrupted or saved incorrectly.",
			"json parse error: %v", err)
	}

	if err := assessment.ValidateSchema(raw); err != nil {
		return nil, err
	}

	var doc assessment.Assessment
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, assessment.NewError(assessment.ErrCodeMalformedFile,
			"The file does not contain valid assessment data.",
			"decode error: %v", err)
	}
	return &doc, nil
}
