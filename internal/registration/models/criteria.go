package models

// Criteria is the normalized filter derived from the search inputs of a
// listing surface. Zero-value fields mean "no constraint on that field";
// populated fields combine with logical AND.
//
// At most one of Email / SubjectTitle is populated by the composer; Status
// composes with either.
type Criteria struct {
	Email        string
	SubjectTitle string
	Status       *Status
}

// IsEmpty reports whether the criteria constrain nothing, which is
// equivalent to listing the full collection.
func (c Criteria) IsEmpty() bool {
	return c.Email == "" && c.SubjectTitle == "" && c.Status == nil
}
