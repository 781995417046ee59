package domain

import (
	"time"

	"github.com/google/uuid"
)

// RawNightEntry is one night as exported by the tracker, keyed by its date.
// Every field may be missing.
type RawNightEntry struct {
	Duration      *string  `json:"duration"`
	MeanHeartRate *float64 `json:"mean_hr"`
	Bedtime       *string  `json:"bedtime"`
	Waketime      *string  `json:"waketime"`
	Score         *float64 `json:"score"`
}

// RawSleepData is the tracker export for a single user.
type RawSleepData struct {
	FirstName string                   `json:"firstname"`
	LastName  string                   `json:"lastname"`
	Sleep     map[string]RawNightEntry `json:"sleep"`
}

func (d RawSleepData) Identity() UserIdentity {
	return UserIdentity{FirstName: d.FirstName, LastName: d.LastName}
}

// NormalizedSleepRecord is one night after normalization.
// @Description Normalized night: verbatim tracker fields plus derived minutes and timestamps.
type NormalizedSleepRecord struct {
	// Original date key (D/M/YYYY)
	Date string `gorm:"column:date;type:varchar(16);not null;index:idx_sleep_records_user_date" json:"date" example:"11/05/2025"`
	// Verbatim duration text
	Duration *string `gorm:"column:duration;type:varchar(64)" json:"duration" example:"7h30"`
	// Duration in minutes derived from the text
	DurationMinutes *int `gorm:"column:duration_min" json:"duration_min" example:"450"`
	// Mean heart rate (bpm)
	MeanHeartRate *float64 `gorm:"column:mean_hr" json:"mean_hr" example:"54"`
	// Verbatim 12-hour bedtime
	Bedtime *string `gorm:"column:bedtime;type:varchar(16)" json:"bedtime" example:"10:59 PM"`
	// Verbatim 12-hour waketime
	Waketime *string `gorm:"column:waketime;type:varchar(16)" json:"waketime" example:"07:56 AM"`
	// Tracker score
	Score *float64 `gorm:"column:score" json:"score" example:"82"`
	// Derived bedtime timestamp
	BedtimeFull *NaiveTime `gorm:"column:bedtime_full;type:timestamp;index" json:"bedtime_full" swaggertype:"string" example:"2025-05-11T22:59:00"`
	// Derived waketime timestamp, rolled to the next day for PM to AM nights
	WaketimeFull *NaiveTime `gorm:"column:waketime_full;type:timestamp" json:"waketime_full" swaggertype:"string" example:"2025-05-12T07:56:00"`
}

// NormalizedData is the output of one normalization run.
type NormalizedData struct {
	User   UserIdentity            `json:"user"`
	Sleeps []NormalizedSleepRecord `json:"sleeps"`
}

// SleepRecord is a persisted normalized night owned by a user.
type SleepRecord struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID                uuid.UUID `gorm:"type:uuid;not null;index:idx_sleep_records_user_date" json:"user_id"`
	NormalizedSleepRecord `gorm:"embedded"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"-"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SleepRecord) TableName() string {
	return "sleep_records"
}

// SleepRecordFilter contains filter, sort and paging parameters for listing records.
type SleepRecordFilter struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	MinScore  *float64
	MaxScore  *float64
	From      *time.Time
	To        *time.Time
}

// SleepRecordListResponse is the response body for listing sleep records.
// @Description Paginated list of normalized nights.
type SleepRecordListResponse struct {
	Data       []SleepRecord      `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Offset pagination info.
type PaginationResponse struct {
	Page    int   `json:"page" example:"1"`
	Limit   int   `json:"limit" example:"50"`
	Total   int64 `json:"total" example:"120"`
	HasMore bool  `json:"has_more" example:"true"`
}
