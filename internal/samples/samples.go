// Package samples ships labelled example calls used by the samples command
// and by tests.
package samples

import "callclassifier/internal/domain"

type Sample struct {
	ID         int
	Name       string
	Category   domain.Category
	Transcript string
}

func All() []Sample {
	out := make([]Sample, len(transcripts))
	copy(out, transcripts)
	return out
}

func ByID(id int) (Sample, bool) {
	for _, s := range transcripts {
		if s.ID == id {
			return s, true
		}
	}
	return Sample{}, false
}

func ByCategory(c domain.Category) []Sample {
	var out []Sample
	for _, s := range transcripts {
		if s.Category == c {
			out = append(out, s)
		}
	}
	return out
}
