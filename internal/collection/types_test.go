package collection

import (
	"encoding/json"
	"testing"
)

func TestYearDecodesNumbersAndStrings(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Year
	}{
		{"number", `{"publishedYear":1965}`, 1965},
		{"float", `{"publishedYear":1965.0}`, 1965},
		{"string", `{"publishedYear":" 2001 "}`, 2001},
		{"empty string", `{"publishedYear":""}`, 0},
		{"text", `{"publishedYear":"unknown"}`, 0},
		{"null", `{"publishedYear":null}`, 0},
		{"missing", `{}`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var rec RawRecord
			if err := json.Unmarshal([]byte(tc.in), &rec); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if rec.PublishedYear != tc.want {
				t.Fatalf("PublishedYear = %d, want %d", rec.PublishedYear, tc.want)
			}
		})
	}
}

func TestYearRejectsNonNumericJSON(t *testing.T) {
	var rec RawRecord
	if err := json.Unmarshal([]byte(`{"publishedYear":true}`), &rec); err == nil {
		t.Fatalf("Unmarshal returned nil error for boolean year")
	}
}

func TestRawRecordIdentifierPrefersServerID(t *testing.T) {
	if got := (RawRecord{MongoID: "srv", ID: "local"}).Identifier(); got != "srv" {
		t.Fatalf("Identifier = %q, want srv", got)
	}
	if got := (RawRecord{ID: " local "}).Identifier(); got != "local" {
		t.Fatalf("Identifier = %q, want local", got)
	}
	if got := (RawRecord{}).Identifier(); got != "" {
		t.Fatalf("Identifier = %q, want empty", got)
	}
}

func TestPayloadOmitsIdentifier(t *testing.T) {
	data, err := json.Marshal(Payload{Title: "Dune", PublishedYear: 1965, Status: "Available"})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	for _, key := range []string{"_id", "id"} {
		if _, ok := fields[key]; ok {
			t.Fatalf("payload contains %q: %s", key, data)
		}
	}
	if len(fields) != 5 {
		t.Fatalf("payload has %d fields, want 5: %s", len(fields), data)
	}
}
