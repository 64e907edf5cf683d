// Package importer loads subjects and topics from YAML or XLSX files into the
// store.
package importer

import "strings"

// Syllabus is the parsed content of an import file.
type Syllabus struct {
	Subjects []SubjectSpec `json:"subjects"`
}

// SubjectSpec describes one subject. Empty optional fields keep whatever the
// store already holds.
type SubjectSpec struct {
	Name     string      `json:"name"`
	Strength string      `json:"strength,omitempty"`
	Color    string      `json:"color,omitempty"`
	Topics   []TopicSpec `json:"topics,omitempty"`
}

// TopicSpec describes one topic. Nil fields are left to the store or to
// topic defaults.
type TopicSpec struct {
	Name           string   `json:"name"`
	Confidence     *int     `json:"confidence,omitempty"`
	Priority       *int     `json:"priority,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	CompletedHours *float64 `json:"completed_hours,omitempty"`
	Completed      bool     `json:"completed,omitempty"`
}

// merge folds subjects with the same name (case-insensitive) together,
// keeping first-seen order.
func (s Syllabus) merge() Syllabus {
	var out Syllabus
	index := make(map[string]int)
	for _, sub := range s.Subjects {
		key := strings.ToLower(strings.TrimSpace(sub.Name))
		i, ok := index[key]
		if !ok {
			index[key] = len(out.Subjects)
			out.Subjects = append(out.Subjects, sub)
			continue
		}
		existing := &out.Subjects[i]
		if sub.Strength != "" {
			existing.Strength = sub.Strength
		}
		if sub.Color != "" {
			existing.Color = sub.Color
		}
		existing.Topics = append(existing.Topics, sub.Topics...)
	}
	return out
}
