package models

import "time"

// StudySession is one recorded study interval. DurationInMinutes is derived
// from the bounds and is nil unless both are present.
type StudySession struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"userId"`
	StartTime         *time.Time `json:"startTime"`
	EndTime           *time.Time `json:"endTime"`
	DurationInMinutes *int64     `json:"durationInMinutes"`
	CourseID          *int64     `json:"courseId,omitempty"`
	TopicID           *int64     `json:"topicId,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// SessionFilter narrows session queries. Zero fields are ignored.
type SessionFilter struct {
	UserID   int64
	CourseID int64
	TopicID  int64
	Since    *time.Time
}

// DailyStudySummary is the total minutes studied on one local calendar day.
type DailyStudySummary struct {
	Date           Date  `json:"date"`
	TotalStudyTime int64 `json:"totalStudyTime"`
}
