package store

// SeedDemoSubjects loads a small set of subjects into an in-memory store so
// the public sign-up surface works out of the box in development.
func SeedDemoSubjects(s *Memory, subjects map[string]string) {
	for id, title := range subjects {
		s.AddSubject(id, title)
	}
}

// DemoSubjects returns the development fixtures per domain key.
func DemoSubjects() map[string]map[string]string {
	return map[string]map[string]string{
		"events": {
			"1": "Sunday Gathering",
			"2": "Christmas Eve Service",
			"3": "Youth Group Lock-In",
		},
		"homegroups": {
			"1": "Northside Young Adults",
			"2": "Riverside Families",
		},
		"serving": {
			"1": "Welcome Team",
			"2": "Kids Ministry",
			"3": "Worship Tech",
		},
	}
}
