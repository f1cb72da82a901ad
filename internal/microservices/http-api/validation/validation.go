// Package validation checks request field bags before anything touches storage.
//
// A field bag is the raw JSON object (or query string) of a request decoded into
// map[string]any, so type mistakes such as a numeric username are still visible.
// Every validator returns its messages in declaration order and an empty slice
// when the bag is valid; violations accumulate rather than short-circuit.
package validation

import "math"

const (
	MsgUsername = "Username is required and should be string."
	MsgEmail    = "Email is required and should be string"

	MsgBookTitle  = "Book title is required and should be string."
	MsgBookAuthor = "Book author is required and should be string"
	MsgBookGenre  = "Book genre is required and should be string."
	MsgBookYear   = "Book publicationYear is required and should be integer"

	MsgSearch = "Book title or author is required and should be string."

	MsgUserID = "userId is required and should be number."
	MsgBookID = "bookId is required and should be number"
	MsgStatus = "status is required and should be string."
)

// ValidateUser checks a create-user payload.
func ValidateUser(data map[string]any) []string {
	errors := []string{}
	if !isString(data["username"]) {
		errors = append(errors, MsgUsername)
	}
	if !isString(data["email"]) {
		errors = append(errors, MsgEmail)
	}
	return errors
}

// ValidateBook checks a create-book payload.
func ValidateBook(data map[string]any) []string {
	errors := []string{}
	if !isString(data["title"]) {
		errors = append(errors, MsgBookTitle)
	}
	if !isString(data["author"]) {
		errors = append(errors, MsgBookAuthor)
	}
	if !isString(data["genre"]) {
		errors = append(errors, MsgBookGenre)
	}
	if !isWholeNumber(data["publicationYear"]) {
		errors = append(errors, MsgBookYear)
	}
	return errors
}

// ValidateSearch accepts a search when at least one of title or author is a
// non-empty string. A filter that is supplied must be a string.
func ValidateSearch(data map[string]any) []string {
	errors := []string{}
	title, hasTitle := data["title"]
	author, hasAuthor := data["author"]

	supplied := isString(title) || isString(author)
	wrongType := (hasTitle && !isStringOrEmpty(title)) || (hasAuthor && !isStringOrEmpty(author))
	if !supplied || wrongType {
		errors = append(errors, MsgSearch)
	}
	return errors
}

// ValidateReadingList checks an add-to-reading-list payload. The status enum is
// checked separately by the service.
func ValidateReadingList(data map[string]any) []string {
	errors := []string{}
	if !isWholeNumber(data["userId"]) {
		errors = append(errors, MsgUserID)
	}
	if !isWholeNumber(data["bookId"]) {
		errors = append(errors, MsgBookID)
	}
	if !isString(data["status"]) {
		errors = append(errors, MsgStatus)
	}
	return errors
}

// isString reports whether v is a non-empty string.
func isString(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}

func isStringOrEmpty(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(string)
	return ok
}

// MaxWholeNumber bounds numeric fields to the range where a JSON number is an
// exact integer.
const MaxWholeNumber = 1<<53 - 1

// WholeNumber returns v as an int64 when it is a non-zero integral number no
// larger than MaxWholeNumber in magnitude.
func WholeNumber(v any) (int64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	default:
		return 0, false
	}
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > MaxWholeNumber {
		return 0, false
	}
	if f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

func isWholeNumber(v any) bool {
	_, ok := WholeNumber(v)
	return ok
}
