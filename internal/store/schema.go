package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	subjectsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString},
		{Name: "strength", Type: field.TypeString, Default: "average"},
		{Name: "color", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
	}
	subjectsTable = &schema.Table{
		Name:       "subjects",
		Columns:    subjectsColumns,
		PrimaryKey: []*schema.Column{subjectsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "subject_user_id_name", Unique: true, Columns: []*schema.Column{subjectsColumns[1], subjectsColumns[2]}},
		},
	}

	topicsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "subject_id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString},
		{Name: "confidence_level", Type: field.TypeInt, Nullable: true},
		{Name: "priority_score", Type: field.TypeInt, Nullable: true},
		{Name: "estimated_hours", Type: field.TypeFloat64, Nullable: true},
		{Name: "completed_hours", Type: field.TypeFloat64, Nullable: true},
		{Name: "last_studied_at", Type: field.TypeTime, Nullable: true},
		{Name: "last_revision_date", Type: field.TypeTime, Nullable: true},
		{Name: "next_revision_at", Type: field.TypeTime, Nullable: true},
		{Name: "revision_count", Type: field.TypeInt, Default: 0},
		{Name: "is_completed", Type: field.TypeBool, Default: false},
	}
	topicsTable = &schema.Table{
		Name:       "topics",
		Columns:    topicsColumns,
		PrimaryKey: []*schema.Column{topicsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "topics_subjects_topics",
				Columns:    []*schema.Column{topicsColumns[1]},
				RefColumns: []*schema.Column{subjectsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "topic_subject_id_name", Unique: true, Columns: []*schema.Column{topicsColumns[1], topicsColumns[2]}},
			{Name: "topic_next_revision_at", Columns: []*schema.Column{topicsColumns[9]}},
		},
	}

	profilesColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString},
		{Name: "daily_study_minutes", Type: field.TypeInt},
		{Name: "pomodoro_work_minutes", Type: field.TypeInt},
		{Name: "pomodoro_break_minutes", Type: field.TypeInt},
		{Name: "preferred_slot", Type: field.TypeString},
		{Name: "exam_date", Type: field.TypeTime, Nullable: true},
	}
	profilesTable = &schema.Table{
		Name:       "profiles",
		Columns:    profilesColumns,
		PrimaryKey: []*schema.Column{profilesColumns[0]},
	}

	scheduleColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "date", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt},
		{Name: "topic_id", Type: field.TypeString},
		{Name: "topic_name", Type: field.TypeString},
		{Name: "subject_name", Type: field.TypeString},
		{Name: "subject_color", Type: field.TypeString, Default: ""},
		{Name: "session_type", Type: field.TypeString},
		{Name: "duration_minutes", Type: field.TypeInt},
		{Name: "priority_score", Type: field.TypeInt},
		{Name: "reason", Type: field.TypeString, Default: ""},
		{Name: "is_revision_scheduled", Type: field.TypeBool, Default: false},
	}
	scheduleTable = &schema.Table{
		Name:       "schedule_sessions",
		Columns:    scheduleColumns,
		PrimaryKey: []*schema.Column{scheduleColumns[0]},
		Indexes: []*schema.Index{
			{Name: "schedule_user_id_date_position", Unique: true, Columns: []*schema.Column{scheduleColumns[1], scheduleColumns[2], scheduleColumns[3]}},
		},
	}

	revisionColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "topic_id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "confidence_before", Type: field.TypeInt},
		{Name: "confidence_after", Type: field.TypeInt},
		{Name: "completed", Type: field.TypeBool},
		{Name: "skipped", Type: field.TypeBool},
		{Name: "recorded_at", Type: field.TypeTime},
	}
	revisionTable = &schema.Table{
		Name:       "revision_events",
		Columns:    revisionColumns,
		PrimaryKey: []*schema.Column{revisionColumns[0]},
		Indexes: []*schema.Index{
			{Name: "revision_topic_id_sequence", Columns: []*schema.Column{revisionColumns[2], revisionColumns[1]}},
		},
	}

	progressColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "date", Type: field.TypeString},
		{Name: "minutes_studied", Type: field.TypeInt, Default: 0},
		{Name: "sessions_completed", Type: field.TypeInt, Default: 0},
	}
	progressTable = &schema.Table{
		Name:       "daily_progress",
		Columns:    progressColumns,
		PrimaryKey: []*schema.Column{progressColumns[0]},
		Indexes: []*schema.Index{
			{Name: "progress_user_id_date", Unique: true, Columns: []*schema.Column{progressColumns[1], progressColumns[2]}},
		},
	}

	readinessColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "user_id", Type: field.TypeString},
		{Name: "taken_at", Type: field.TypeTime},
		{Name: "status", Type: field.TypeString},
		{Name: "percentage", Type: field.TypeInt},
		{Name: "completion_pct", Type: field.TypeFloat64},
		{Name: "avg_confidence", Type: field.TypeFloat64},
		{Name: "streak_days", Type: field.TypeInt},
		{Name: "days_until_exam", Type: field.TypeInt},
	}
	readinessTable = &schema.Table{
		Name:       "readiness_snapshots",
		Columns:    readinessColumns,
		PrimaryKey: []*schema.Column{readinessColumns[0]},
		Indexes: []*schema.Index{
			{Name: "readiness_user_id_sequence", Columns: []*schema.Column{readinessColumns[2], readinessColumns[1]}},
		},
	}

	sequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	sequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    sequenceColumns,
		PrimaryKey: []*schema.Column{sequenceColumns[0]},
	}

	// Tables holds every table the migrator creates, parents first.
	Tables = []*schema.Table{
		sequenceTable,
		subjectsTable,
		topicsTable,
		profilesTable,
		scheduleTable,
		revisionTable,
		progressTable,
		readinessTable,
	}
)

func init() {
	topicsTable.ForeignKeys[0].RefTable = subjectsTable
}
