package emergency

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/apnadr/hospital-api/internal/escalation"
	"github.com/apnadr/hospital-api/internal/handler"
	"github.com/apnadr/hospital-api/internal/service/hospital"
	"github.com/apnadr/hospital-api/pkg/geo"
)

type Handler struct {
	hospitalSvc *hospital.Service
	dispatcher  *escalation.Dispatcher
}

func NewHandler(hospitalSvc *hospital.Service, dispatcher *escalation.Dispatcher) *Handler {
	return &Handler{hospitalSvc: hospitalSvc, dispatcher: dispatcher}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/hospitals/emergency/dispatch", h.Dispatch)
	r.GET("/emergency/dispatch/:id", h.DispatchStatus)
}

type dispatchRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Dispatch resolves the nearest emergency hospital and starts an escalation
// timeline for it.
func (h *Handler) Dispatch(c *gin.Context) {
	var req dispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, "invalid request body")
		return
	}

	coord := geo.Point{Longitude: req.Lng, Latitude: req.Lat}
	nearest, err := h.hospitalSvc.FindNearestEmergency(c.Request.Context(), coord)
	if err != nil {
		handler.Error(c, err)
		return
	}

	dispatch := h.dispatcher.Dispatch(&nearest.Hospital)
	handler.Created(c, dispatch, "Ambulance dispatched")
}

func (h *Handler) DispatchStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid dispatch ID")
		return
	}

	dispatch, err := h.dispatcher.Status(id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, dispatch, "Dispatch status retrieved successfully")
}
