package vehicle

import "time"

type UpsertVehicleRequest struct {
	Plate     string                  `json:"plate" binding:"required"`
	Owner     string                  `json:"owner"`
	Type      string                  `json:"type"`
	Documents map[string]DocumentInfo `json:"documents"`
	Notes     string                  `json:"notes"`
}

type UpdateVehicleRequest struct {
	Owner     string                  `json:"owner"`
	Type      string                  `json:"type"`
	Documents map[string]DocumentInfo `json:"documents"`
	Notes     string                  `json:"notes"`
}

type ListVehiclesQuery struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
}

// UpcomingExpiration is one document on one vehicle whose expiry falls
// inside the scan window.
type UpcomingExpiration struct {
	VehicleID    string    `json:"vehicle_id"`
	Plate        string    `json:"plate"`
	Owner        string    `json:"owner,omitempty"`
	DocumentType string    `json:"document_type"`
	ExpiryDate   time.Time `json:"expiry_date"`
	DaysLeft     int       `json:"days_left"`
}
