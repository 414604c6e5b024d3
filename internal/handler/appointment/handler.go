package appointment

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/apnadr/hospital-api/internal/handler"
	"github.com/apnadr/hospital-api/internal/model"
	"github.com/apnadr/hospital-api/internal/service/appointment"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.BookAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id/cancel", h.CancelAppointment)
	}
}

func (h *Handler) BookAppointment(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, "invalid request body")
		return
	}

	apt, err := h.service.Book(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.Created(c, apt, "Appointment booked successfully")
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid appointment ID")
		return
	}

	apt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, apt, "Appointment retrieved successfully")
}

func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, appointments, "Appointments retrieved successfully")
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid appointment ID")
		return
	}

	apt, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, apt, "Appointment cancelled successfully")
}
