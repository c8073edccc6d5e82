package models

// RoomLiveView is the dashboard rendering of one room: current status plus
// the trend arrays backing the charts, oldest sample first. Field names match
// what the dashboard already consumes.
type RoomLiveView struct {
	Status        RoomStatus `json:"status"`
	Details       string     `json:"details"`
	LastUpdateISO string     `json:"last_update_iso,omitempty"`
	Temperature   *float64   `json:"temperature_current"`
	Smoke         *int       `json:"smoke_current"`
	PeopleCount   int        `json:"people_count"`
	Labels        []string   `json:"labels"`
	Temperatures  []*float64 `json:"temperatures"`
	SmokeValues   []*int     `json:"smokeValues"`
}

// LiveData is the full dashboard payload.
type LiveData struct {
	Rooms              map[string]RoomLiveView `json:"rooms"`
	FireAlertTriggered bool                    `json:"fire_alert_triggered"`
}
