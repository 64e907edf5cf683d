package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/riyaagrawal02/clivra/internal/platform/logger"
	"github.com/riyaagrawal02/clivra/internal/store"
	"github.com/riyaagrawal02/clivra/internal/study"
)

// SubjectStore is the subset of store.SubjectRepo the importer needs.
type SubjectStore interface {
	FindByName(ctx context.Context, userID, name string) (study.Subject, error)
	Upsert(ctx context.Context, sub study.Subject) error
}

// TopicStore is the subset of store.TopicRepo the importer needs.
type TopicStore interface {
	List(ctx context.Context, userID string, f store.TopicFilter) ([]study.Topic, error)
	Upsert(ctx context.Context, t study.Topic) error
}

// Result holds the result of an import.
type Result struct {
	SubjectsCreated int
	SubjectsUpdated int
	TopicsCreated   int
	TopicsUpdated   int
	Errors          []string
}

// Importer writes parsed syllabi into the store.
type Importer struct {
	subjects SubjectStore
	topics   TopicStore
	log      *logger.Logger
}

// New creates an Importer.
func New(subjects SubjectStore, topics TopicStore, log *logger.Logger) *Importer {
	return &Importer{subjects: subjects, topics: topics, log: logger.OrNop(log)}
}

// ImportFile parses path by extension (.yaml, .yml or .xlsx) and applies it
// for the user.
func (im *Importer) ImportFile(ctx context.Context, userID, path string) (*Result, error) {
	var (
		s         Syllabus
		rowErrors []string
		err       error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		f, openErr := os.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("open %s: %w", path, openErr)
		}
		defer f.Close()
		s, err = ParseYAML(f)
	case ".xlsx":
		s, rowErrors, err = ParseXLSX(path, SheetConfig{})
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .yaml, .yml or .xlsx)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	res, err := im.Apply(ctx, userID, s)
	if err != nil {
		return nil, err
	}
	res.Errors = append(rowErrors, res.Errors...)
	return res, nil
}

// Apply upserts every subject and topic in the syllabus. Subjects are matched
// by name per user and topics by name within their subject; matches keep
// their IDs and study history and take only the fields the syllabus sets.
// Failures on individual entries are collected in Result.Errors; the error
// return is reserved for failures that stop the whole import.
func (im *Importer) Apply(ctx context.Context, userID string, s Syllabus) (*Result, error) {
	res := &Result{Errors: make([]string, 0)}

	for _, spec := range s.merge().Subjects {
		sub, created, err := im.upsertSubject(ctx, userID, spec)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			res.Errors = append(res.Errors, fmt.Sprintf("Subject %q: %v", spec.Name, err))
			continue
		}
		if created {
			res.SubjectsCreated++
		} else {
			res.SubjectsUpdated++
		}

		existing, err := im.topics.List(ctx, userID, store.TopicFilter{SubjectID: sub.ID})
		if err != nil {
			return nil, fmt.Errorf("list topics for %q: %w", sub.Name, err)
		}
		byName := make(map[string]study.Topic, len(existing))
		for _, t := range existing {
			byName[strings.ToLower(t.Name)] = t
		}

		for _, ts := range spec.Topics {
			name := strings.TrimSpace(ts.Name)
			if name == "" {
				res.Errors = append(res.Errors, fmt.Sprintf("Subject %q: topic name cannot be empty", sub.Name))
				continue
			}
			prev, found := byName[strings.ToLower(name)]
			topic := buildTopic(sub.ID, name, ts, prev, found)
			if err := im.topics.Upsert(ctx, topic); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("Topic %q: %v", name, err))
				continue
			}
			byName[strings.ToLower(name)] = topic
			if found {
				res.TopicsUpdated++
			} else {
				res.TopicsCreated++
			}
		}
	}

	im.log.Info("syllabus imported",
		"user", userID,
		"subjects_created", res.SubjectsCreated,
		"subjects_updated", res.SubjectsUpdated,
		"topics_created", res.TopicsCreated,
		"topics_updated", res.TopicsUpdated,
		"errors", len(res.Errors),
	)
	return res, nil
}

func (im *Importer) upsertSubject(ctx context.Context, userID string, spec SubjectSpec) (study.Subject, bool, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return study.Subject{}, false, errors.New("subject name cannot be empty")
	}

	sub, err := im.subjects.FindByName(ctx, userID, name)
	created := errors.Is(err, store.ErrNotFound)
	switch {
	case created:
		sub = study.Subject{ID: uuid.NewString(), UserID: userID, Name: name, Strength: study.StrengthAverage}
	case err != nil:
		return study.Subject{}, false, err
	}

	if spec.Strength != "" {
		strength, err := study.ParseStrength(spec.Strength)
		if err != nil {
			return study.Subject{}, false, err
		}
		sub.Strength = strength
	}
	if spec.Color != "" {
		sub.Color = spec.Color
	}
	if err := im.subjects.Upsert(ctx, sub); err != nil {
		return study.Subject{}, false, err
	}
	return sub, created, nil
}

// buildTopic creates a new topic from the syllabus entry, or overlays the
// entry's set fields onto an existing one.
func buildTopic(subjectID, name string, ts TopicSpec, prev study.Topic, found bool) study.Topic {
	if !found {
		return study.NormalizeTopic(study.RawTopic{
			ID:              uuid.NewString(),
			SubjectID:       subjectID,
			Name:            name,
			ConfidenceLevel: ts.Confidence,
			PriorityScore:   ts.Priority,
			EstimatedHours:  ts.EstimatedHours,
			CompletedHours:  ts.CompletedHours,
			IsCompleted:     ts.Completed,
		})
	}

	t := prev
	if ts.Confidence != nil {
		t.ConfidenceLevel = study.ClampConfidence(*ts.Confidence)
	}
	if ts.Priority != nil {
		t.PriorityScore = study.ClampInt(*ts.Priority, 0, 100)
	}
	if ts.EstimatedHours != nil {
		t.EstimatedHours = max(*ts.EstimatedHours, 0)
	}
	if ts.CompletedHours != nil {
		t.CompletedHours = max(*ts.CompletedHours, 0)
	}
	if ts.Completed {
		t.IsCompleted = true
	}
	return t
}
