package hospital

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/apnadr/hospital-api/internal/handler"
	"github.com/apnadr/hospital-api/internal/model"
	"github.com/apnadr/hospital-api/internal/service/hospital"
	"github.com/apnadr/hospital-api/pkg/geo"
)

type Handler struct {
	service *hospital.Service
}

func NewHandler(service *hospital.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	hospitals := r.Group("/hospitals")
	{
		hospitals.GET("", h.ListHospitals)
		hospitals.GET("/nearby", h.ListNearby)
		hospitals.GET("/emergency", h.ListEmergency)
		hospitals.GET("/emergency/nearest", h.NearestEmergency)
		hospitals.GET("/:id", h.GetHospital)
		hospitals.GET("/:id/doctors", h.ListDoctors)
	}
}

func (h *Handler) ListHospitals(c *gin.Context) {
	filter := model.HospitalFilter{
		City: c.Query("city"),
		Area: c.Query("area"),
	}

	hospitals, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, hospitals, "Hospitals retrieved successfully")
}

func (h *Handler) ListNearby(c *gin.Context) {
	coord, ok := parseCoord(c)
	if !ok {
		return
	}

	radius := hospital.DefaultRadiusKm
	if v := c.Query("radius"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			handler.BadRequest(c, "radius must be a positive number")
			return
		}
		radius = parsed
	}

	hospitals, err := h.service.FindNearby(c.Request.Context(), coord, radius, hospital.MaxNearbyResults)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, hospitals, fmt.Sprintf("Found %d hospitals within %gkm", len(hospitals), radius))
}

func (h *Handler) ListEmergency(c *gin.Context) {
	hospitals, err := h.service.ListEmergency(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, hospitals, "Emergency hospitals retrieved successfully")
}

func (h *Handler) NearestEmergency(c *gin.Context) {
	coord, ok := parseCoord(c)
	if !ok {
		return
	}

	nearest, err := h.service.FindNearestEmergency(c.Request.Context(), coord)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, nearest, "Nearest emergency hospital retrieved successfully")
}

func (h *Handler) GetHospital(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid hospital ID")
		return
	}

	hosp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, hosp, "Hospital retrieved successfully")
}

func (h *Handler) ListDoctors(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid hospital ID")
		return
	}

	doctors, err := h.service.Doctors(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.OK(c, doctors, "Doctors retrieved successfully")
}

// parseCoord reads lat/lng query params; both are required.
func parseCoord(c *gin.Context) (geo.Point, bool) {
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr == "" || lngStr == "" {
		handler.BadRequest(c, "Latitude and longitude are required")
		return geo.Point{}, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		handler.BadRequest(c, "latitude must be a number")
		return geo.Point{}, false
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		handler.BadRequest(c, "longitude must be a number")
		return geo.Point{}, false
	}

	return geo.Point{Longitude: lng, Latitude: lat}, true
}
