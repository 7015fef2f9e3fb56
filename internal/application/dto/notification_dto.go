package dto

import "time"

// NotificationResponse notificación en respuestas.
type NotificationResponse struct {
	ID        string    `json:"id"`
	ParcelID  string    `json:"parcel_id,omitempty"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
