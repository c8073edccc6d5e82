package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	errPeopleCount   = "failed to retrieve people count data"
	errListIncidents = "failed to list incidents"
)

// @Summary      Building occupancy
// @Description  Total people in the building plus a per-room breakdown of occupied rooms
// @Tags         people
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/people [get]
// @Security     BearerAuth
func (h *Handler) buildingOccupancy(c *gin.Context) {
	building, err := h.services.Occupancy.GetBuilding(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errPeopleCount, "people_count_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       statusSuccess,
		"total_people": building.TotalPeople,
		"details":      building.Details,
	})
}

// @Summary      Room occupancy
// @Tags         people
// @Produce      json
// @Param        room  path   string  true  "Room identifier"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/people/{room} [get]
// @Security     BearerAuth
func (h *Handler) roomOccupancy(c *gin.Context) {
	room := c.Param("room")

	occ, err := h.services.Occupancy.GetRoom(c.Request.Context(), room)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errPeopleCount, "people_count_failed", err, "room", room)
		return
	}
	if occ == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  statusError,
			"message": fmt.Sprintf("Room '%s' not found.", room),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       statusSuccess,
		"roomId":       occ.RoomID,
		"people_count": occ.PeopleCount,
	})
}

// @Summary      List fire incidents
// @Tags         incidents
// @Produce      json
// @Success      200  {array}   models.Incident
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/incidents [get]
// @Security     BearerAuth
func (h *Handler) listIncidents(c *gin.Context) {
	incidents, err := h.services.Incidents.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListIncidents, "list_incidents_failed", err)
		return
	}
	c.JSON(http.StatusOK, incidents)
}
