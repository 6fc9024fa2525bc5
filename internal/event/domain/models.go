// Package domain contains persistence models for the raw source event
// tables the engine reconciles.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// PrayerEvent is one congregational-prayer check-in row.
type PrayerEvent struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	EmployeeID string       `gorm:"index;not null"`
	PrayerName string       `gorm:"type:text"`
	Status     string       `gorm:"type:text;not null"`
	OccurredAt time.Time    `gorm:"index;not null"`
	CreatedAt  time.Time    `gorm:"not null"`
}

func (PrayerEvent) TableName() string { return "prayer_events" }

const PrayerStatusPresent = "present"

// GroupSessionEvent is one roster row of a group session (KIE, doa
// bersama, BBQ and similar). SessionType carries the free-text label the
// recording unit typed in.
type GroupSessionEvent struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	EmployeeID  string       `gorm:"index;not null"`
	SessionType string       `gorm:"type:text;not null"`
	SessionDate time.Time    `gorm:"index;not null"`
	CreatedAt   time.Time    `gorm:"not null"`
}

func (GroupSessionEvent) TableName() string { return "group_session_events" }

// ScheduledActivityEvent is a sign-in row against a scheduled activity
// (apel pagi, kajian, pengajian).
type ScheduledActivityEvent struct {
	ID            snowflake.ID `gorm:"primaryKey"`
	EmployeeID    string       `gorm:"index;not null"`
	ActivityLabel string       `gorm:"type:text;not null"`
	EventDate     time.Time    `gorm:"index;not null"`
	SignedInAt    *time.Time
	CreatedAt     time.Time `gorm:"not null"`
}

func (ScheduledActivityEvent) TableName() string { return "scheduled_activity_events" }

// GroupReadingSession is one tadarus session with its participant roster.
// Sessions are fetched by date range and filtered to the requested
// employees afterwards.
type GroupReadingSession struct {
	ID           snowflake.ID                `gorm:"primaryKey"`
	SessionDate  time.Time                   `gorm:"index;not null"`
	Participants datatypes.JSONSlice[string] `gorm:"not null"`
	CreatedAt    time.Time                   `gorm:"not null"`
}

func (GroupReadingSession) TableName() string { return "group_reading_sessions" }

// ExceptionRequest is a manually filed attendance exception. Once
// approved it is indistinguishable downstream from direct attendance.
type ExceptionRequest struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	EmployeeID string       `gorm:"index;not null"`
	Kind       string       `gorm:"type:text;not null"` // prayer | group_session
	Label      string       `gorm:"type:text"`
	EventDate  time.Time    `gorm:"index;not null"`
	Status     string       `gorm:"type:text;not null"`
	Reason     string       `gorm:"type:text"`
	CreatedAt  time.Time    `gorm:"not null"`
}

func (ExceptionRequest) TableName() string { return "exception_requests" }

const (
	ExceptionKindPrayer       = "prayer"
	ExceptionKindGroupSession = "group_session"

	ExceptionStatusApproved = "approved"
)

// CounterEntry is one dated self-report inside a manual counter.
type CounterEntry struct {
	Date string `json:"date"` // "2006-01-02"
	Note string `json:"note,omitempty"`
}

// BookEntry is one completed book inside a reading counter.
type BookEntry struct {
	BookTitle     string `json:"book_title"`
	PagesRead     int    `json:"pages_read"`
	DateCompleted string `json:"date_completed"` // "2006-01-02"
}

// ManualCounterRecord stores self-reported progress for one activity in
// one month. Count is a cached derivative of the entry lists and can
// drift; the reconciler recomputes from the lists.
type ManualCounterRecord struct {
	ID          snowflake.ID                      `gorm:"primaryKey"`
	EmployeeID  string                            `gorm:"index;not null"`
	MonthKey    string                            `gorm:"index;not null"` // "2006-01"
	ActivityID  string                            `gorm:"index;not null"`
	Count       int                               `gorm:"not null"`
	Entries     datatypes.JSONSlice[CounterEntry]
	BookEntries datatypes.JSONSlice[BookEntry]
	CompletedAt *time.Time
	UpdatedAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (ManualCounterRecord) TableName() string { return "manual_counter_records" }

// ReadingLogEntry is one row of the personal reading log.
type ReadingLogEntry struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	EmployeeID string       `gorm:"index;not null"`
	BookTitle  string       `gorm:"type:text"`
	PagesRead  int
	ReadDate   time.Time    `gorm:"index;not null"`
	CreatedAt  time.Time    `gorm:"not null"`
}

func (ReadingLogEntry) TableName() string { return "reading_log_entries" }
