package model

type WorkstationStatus string

const (
	StationAvailable   WorkstationStatus = "available"
	StationOccupied    WorkstationStatus = "occupied"
	StationMaintenance WorkstationStatus = "maintenance"
)

type Workstation struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	Status           WorkstationStatus `json:"status"`
	CurrentSessionID *int64            `json:"current_session_id,omitempty"`
}

type CreateWorkstationReq struct {
	Name string `json:"name" validate:"required"`
}
