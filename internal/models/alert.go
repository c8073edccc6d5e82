package models

// Alert kinds carried on the outbound webhook.
const (
	AlertFire    = "FIRE"
	AlertMissing = "MISSING"
)

// AlertMessage is the payload posted to the notification webhook.
type AlertMessage struct {
	RoomID      string   `json:"roomId"`
	AlertType   string   `json:"alertType"`
	Temperature *float64 `json:"temperature"`
	Smoke       *int     `json:"smokeValue"`
	Reasons     []string `json:"reasons"`
	Message     string   `json:"message"`
	AlertTime   string   `json:"alertTime"`
}
