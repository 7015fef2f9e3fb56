package dto

import "time"

// OpenDisputeRequest body para POST /api/disputes.
type OpenDisputeRequest struct {
	ParcelID string `json:"parcel_id"`
	Reason   string `json:"reason"`
}

// ResolveDisputeRequest body para POST /api/disputes/:id/resolve.
type ResolveDisputeRequest struct {
	Resolution string `json:"resolution"`
}

// DisputeResponse disputa en respuestas.
type DisputeResponse struct {
	ID         string     `json:"id"`
	ParcelID   string     `json:"parcel_id"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"` // ouvert | resolu
	OpenedBy   string     `json:"opened_by"`
	Resolution string     `json:"resolution,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}
