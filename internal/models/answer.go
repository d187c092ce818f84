package models

import "time"

type Answer struct {
	ID           int       `json:"id"`
	RoomReportID int       `json:"room_report_id"`
	Question     string    `json:"question"`
	Response     string    `json:"response"`
	CreatedAt    time.Time `json:"created_at"`
}
