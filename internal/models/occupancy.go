package models

// RoomOccupancy is the people count for one room, maintained externally by
// the vision detector. A count of -1 means the detector has not reported yet.
type RoomOccupancy struct {
	RoomID         string `json:"roomId"`
	PeopleCount    int    `json:"people_count"`
	LastDetectedAt string `json:"last_detected_at,omitempty"`
	LastUpdatedAt  string `json:"last_updated_at,omitempty"`
}

// BuildingOccupancy aggregates the occupied rooms of the whole building.
type BuildingOccupancy struct {
	TotalPeople int             `json:"total_people"`
	Details     []RoomOccupancy `json:"details"`
}
