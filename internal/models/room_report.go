package models

import "time"

type RoomReport struct {
	ID            int       `json:"id"`
	DatetimeStamp time.Time `json:"datetime_stamp"`
	Ward          string    `json:"ward"`
	Patient       string    `json:"patient"`
	NurseOrHCA    string    `json:"nurse_or_hca"`
	Mood          string    `json:"mood"`
	SleepingAwake string    `json:"sleeping_awake"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RoomReportInput — сырые значения формы до валидации.
type RoomReportInput struct {
	DatetimeStamp string
	Ward          string
	Patient       string
	NurseOrHCA    string
	Mood          string
	SleepingAwake string
}
