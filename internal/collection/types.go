package collection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RawRecord mirrors a book document as the collection endpoint returns it.
// Every field is optional; book.Normalize turns it into a canonical Book.
type RawRecord struct {
	// MongoID is the server-assigned identifier (crudcrud style "_id").
	MongoID       string `json:"_id,omitempty"`
	ID            string `json:"id,omitempty"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Genre         string `json:"genre"`
	PublishedYear Year   `json:"publishedYear,omitempty"`
	Status        string `json:"status,omitempty"`
}

// Identifier returns the record's identifier, preferring the server id.
func (r RawRecord) Identifier() string {
	if id := strings.TrimSpace(r.MongoID); id != "" {
		return id
	}
	return strings.TrimSpace(r.ID)
}

// Payload is the body sent on create and update. It never carries an
// identifier; the server owns it.
type Payload struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Genre         string `json:"genre"`
	PublishedYear int    `json:"publishedYear"`
	Status        string `json:"status"`
}

// Year is a publication year that decodes from a JSON number or a numeric
// string. Form-driven backends frequently store the year as text.
type Year int

// UnmarshalJSON implements json.Unmarshaler.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*y = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		// Unparsable text decodes as absent so one bad document cannot
		// fail a whole listing.
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			n = 0
		}
		*y = Year(n)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("publishedYear: %w", err)
	}
	*y = Year(int(f))
	return nil
}
