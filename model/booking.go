package model

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking reserves a half-open interval [StartTime, EndTime) on a workstation.
type Booking struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	WorkstationID int64         `json:"workstation_id"`
	StartTime     time.Time     `json:"start_time"`
	EndTime       time.Time     `json:"end_time"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

type CreateBookingReq struct {
	WorkstationID int64     `json:"workstation_id" validate:"required,gt=0"`
	StartTime     time.Time `json:"start_time" validate:"required"`
	EndTime       time.Time `json:"end_time" validate:"required"`
}
