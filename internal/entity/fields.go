package entity

import "encoding/json"

// ParseFailureMessage is the fixed description carried by a degraded record.
const ParseFailureMessage = "Failed to parse JSON response"

// RawResponseLimit caps the raw model output echoed back in a degraded record.
const RawResponseLimit = 200

// FieldKeys lists the canonical schema keys in prompt order.
var FieldKeys = []string{"date", "title", "author", "recipient", "main_points", "summary"}

// DocumentFields is the canonical structured-record shape requested from the model.
// All scalar values are nullable; MainPoints marshals as [] when empty.
type DocumentFields struct {
	Date       *string  `json:"date"`
	Title      *string  `json:"title"`
	Author     *string  `json:"author"`
	Recipient  *string  `json:"recipient"`
	MainPoints []string `json:"main_points"`
	Summary    *string  `json:"summary"`
}

// EmptyDocumentFields returns the all-null fallback shape.
func EmptyDocumentFields() DocumentFields {
	return DocumentFields{MainPoints: []string{}}
}

// ParseFailure is the degraded payload produced when the model response cannot
// be parsed as JSON after sanitization.
type ParseFailure struct {
	Error        string         `json:"error"`
	RawResponse  string         `json:"raw_response"`
	ParsedFields DocumentFields `json:"parsed_fields"`
}

// FieldRecord is a tagged variant: either the object parsed from the model
// response (missing keys tolerated, no coercion applied), or a recovered
// ParseFailure. Exactly one side is set.
type FieldRecord struct {
	Fields  map[string]any
	Failure *ParseFailure
}

// OkFieldRecord wraps a successfully parsed object.
func OkFieldRecord(fields map[string]any) FieldRecord {
	return FieldRecord{Fields: fields}
}

// DegradedFieldRecord builds the fallback record for an unparseable response.
// The raw response is truncated to RawResponseLimit characters with an
// ellipsis suffix when longer.
func DegradedFieldRecord(raw string) FieldRecord {
	return FieldRecord{Failure: &ParseFailure{
		Error:        ParseFailureMessage,
		RawResponse:  TruncateString(raw, RawResponseLimit),
		ParsedFields: EmptyDocumentFields(),
	}}
}

// Degraded reports whether the record is the recovered failure shape.
func (r FieldRecord) Degraded() bool {
	return r.Failure != nil
}

// MarshalJSON emits the parsed object for the valid shape and the
// error/raw_response/parsed_fields object for the degraded shape, so
// downstream consumers can branch on the presence of the "error" key.
func (r FieldRecord) MarshalJSON() ([]byte, error) {
	if r.Failure != nil {
		return json.Marshal(r.Failure)
	}
	if r.Fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.Fields)
}

// TruncateString caps s at max characters, appending "..." when truncated.
// The cut lands on a rune boundary so a multi-byte character is never split.
func TruncateString(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
