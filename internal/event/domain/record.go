package domain

// Kind tags a Record with the source it came from. There is exactly one
// normalizer per kind.
type Kind string

const (
	KindPrayerLog         Kind = "prayer_log"
	KindGroupSession      Kind = "group_session"
	KindScheduledActivity Kind = "scheduled_activity"
	KindGroupReading      Kind = "group_reading"
	KindExceptionRequest  Kind = "exception_request"
	KindManualCounter     Kind = "manual_counter"
	KindReadingLog        Kind = "reading_log"
)

// Kinds lists every source kind in its fan-out order.
func Kinds() []Kind {
	return []Kind{
		KindPrayerLog,
		KindGroupSession,
		KindScheduledActivity,
		KindGroupReading,
		KindExceptionRequest,
		KindManualCounter,
		KindReadingLog,
	}
}

// Record is a tagged variant over the source models: the Kind selects
// which single payload pointer is set. Normalizers switch on the tag
// instead of probing optional fields.
type Record struct {
	Kind Kind

	Prayer       *PrayerEvent
	GroupSession *GroupSessionEvent
	Scheduled    *ScheduledActivityEvent
	GroupReading *GroupReadingSession
	Exception    *ExceptionRequest
	Counter      *ManualCounterRecord
	ReadingLog   *ReadingLogEntry
}

func NewPrayerRecord(e PrayerEvent) Record {
	return Record{Kind: KindPrayerLog, Prayer: &e}
}

func NewGroupSessionRecord(e GroupSessionEvent) Record {
	return Record{Kind: KindGroupSession, GroupSession: &e}
}

func NewScheduledActivityRecord(e ScheduledActivityEvent) Record {
	return Record{Kind: KindScheduledActivity, Scheduled: &e}
}

func NewGroupReadingRecord(e GroupReadingSession) Record {
	return Record{Kind: KindGroupReading, GroupReading: &e}
}

func NewExceptionRecord(e ExceptionRequest) Record {
	return Record{Kind: KindExceptionRequest, Exception: &e}
}

func NewCounterRecord(e ManualCounterRecord) Record {
	return Record{Kind: KindManualCounter, Counter: &e}
}

func NewReadingLogRecord(e ReadingLogEntry) Record {
	return Record{Kind: KindReadingLog, ReadingLog: &e}
}
