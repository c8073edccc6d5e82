package handlers

import (
	"errors"
	"net/http"

	"firewatch/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusSuccess = "success"
	statusError   = "error"

	msgDataReceived = "Data received"

	errIngestFailed    = "failed to process sensor data"
	errLiveDataFailed  = "failed to load live data"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"status": statusError, "message": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Ingest a sensor reading
// @Description  One sample per room; temperature and smokeValue are optional
// @Tags         sensors
// @Accept       json
// @Produce      json
// @Param        body  body   service.ReadingParams  true  "Sensor sample"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /sensordata [post]
func (h *Handler) ingestReading(c *gin.Context) {
	var req service.ReadingParams
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": statusError, "message": errInvalidBodyPref + err.Error()})
		return
	}

	if err := h.services.Ingest.Ingest(c.Request.Context(), req); err != nil {
		if errors.Is(err, service.ErrMissingRoomID) {
			c.JSON(http.StatusBadRequest, gin.H{"status": statusError, "message": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errIngestFailed, "ingest_failed", err, "room", req.RoomID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": statusSuccess, "message": msgDataReceived})
}

// @Summary      Live room data
// @Description  Per-room status, trend arrays, people counts, and the global fire flag
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /live [get]
func (h *Handler) liveData(c *gin.Context) {
	data, err := h.services.LiveData.GetLiveData(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLiveDataFailed, "live_data_failed", err)
		return
	}
	c.JSON(http.StatusOK, data)
}
