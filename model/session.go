package model

import "time"

type SessionStatus string

const (
	SessionActive SessionStatus = "active"
	SessionEnded  SessionStatus = "ended"
)

type Session struct {
	ID            int64         `json:"id"`
	WorkstationID int64         `json:"workstation_id"`
	UserID        int64         `json:"user_id"`
	StartTime     time.Time     `json:"start_time"`
	EndTime       *time.Time    `json:"end_time,omitempty"`
	BilledMinutes int64         `json:"billed_minutes"`
	Status        SessionStatus `json:"status"`
}

type StartSessionReq struct {
	WorkstationID int64 `json:"workstation_id" validate:"required,gt=0"`
}

type EndSessionReq struct {
	SessionID int64 `json:"session_id" validate:"required,gt=0"`
}
