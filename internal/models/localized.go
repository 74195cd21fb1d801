package models

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// LocalizedText is a Georgian/English string pair. Both languages are
// mandatory wherever a LocalizedText is required.
type LocalizedText struct {
	Ka string `json:"ka"`
	En string `json:"en"`
}

// ValidateInto records a field error per missing language under
// "<field>.ka" / "<field>.en".
func (t LocalizedText) ValidateInto(field string, errs map[string]string) {
	if t.Ka == "" {
		errs[field+".ka"] = "Georgian text is required"
	}
	if t.En == "" {
		errs[field+".en"] = "English text is required"
	}
}

// EntityRef is a reference to another entity by id. Clients send it either as
// a bare id string ("abc") or as an object ({"id": "abc"}); both unmarshal to
// the same thing. It always marshals back out as the object form.
type EntityRef struct {
	ID string `json:"id"`
}

func (r EntityRef) String() string { return r.ID }

func (r *EntityRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		return nil
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("entity reference must be an id string or an object with an id field: %w", err)
	}
	r.ID = obj.ID
	return nil
}

// RefIDs flattens references to plain ids, dropping blanks and duplicates
// while preserving order.
func RefIDs(refs []EntityRef) []string {
	seen := make(map[string]bool, len(refs))
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		id := r.String()
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

// ValidSlug reports whether s is a lowercase URL-safe slug.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
