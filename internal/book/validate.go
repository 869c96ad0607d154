package book

import "strings"

// Field names a validated Book field. The values match the JSON names.
type Field string

const (
	FieldTitle         Field = "title"
	FieldAuthor        Field = "author"
	FieldGenre         Field = "genre"
	FieldPublishedYear Field = "publishedYear"
)

// FieldOrder is the fixed order in which validation messages are reported.
var FieldOrder = []Field{FieldTitle, FieldAuthor, FieldGenre, FieldPublishedYear}

// MinYear is the earliest accepted publication year.
const MinYear = 1000

// Validation maps each invalid field to its message.
type Validation struct {
	Errors map[Field]string
}

// Valid reports whether no field failed.
func (v Validation) Valid() bool {
	return len(v.Errors) == 0
}

// First returns the first failing field in FieldOrder and its message.
func (v Validation) First() (Field, string, bool) {
	for _, f := range FieldOrder {
		if msg, ok := v.Errors[f]; ok {
			return f, msg, true
		}
	}
	return "", "", false
}

// Validate checks the required fields of b. It has no side effects.
func Validate(b Book) Validation {
	errs := make(map[Field]string)
	if strings.TrimSpace(b.Title) == "" {
		errs[FieldTitle] = "Title is required"
	}
	if strings.TrimSpace(b.Author) == "" {
		errs[FieldAuthor] = "Author is required"
	}
	if strings.TrimSpace(b.Genre) == "" {
		errs[FieldGenre] = "Genre is required"
	}
	if b.PublishedYear < MinYear || b.PublishedYear > CurrentYear() {
		errs[FieldPublishedYear] = "Valid published year is required"
	}
	if len(errs) == 0 {
		return Validation{}
	}
	return Validation{Errors: errs}
}
