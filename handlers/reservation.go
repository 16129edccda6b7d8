package handlers

import (
	"net/http"

	"slotwise/models"
	"slotwise/services/booking"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationHandler exposes the booking lifecycle over HTTP.
type ReservationHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewReservationHandler(svc booking.BookingService, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{Service: svc, Logger: logger}
}

type createReservationRequest struct {
	ServiceID string   `json:"serviceId" form:"serviceId" binding:"required"`
	Date      string   `json:"date" form:"date" binding:"required"`
	StartTime string   `json:"startTime" form:"startTime" binding:"required"`
	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`
	Address   string   `json:"address" form:"address"`
}

// CreateReservation accepts JSON or multipart with an optional "image" file.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req createReservationRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	image, err := formImage(c, "image", req.Latitude, req.Longitude)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	res, err := h.Service.Create(c.Request.Context(), models.CreateReservationInput{
		RequesterID: caller.ID,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Address:     req.Address,
		Image:       image,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	requestLogger(c).Info("Reservation requested", zap.String("reservationId", res.ID))
	c.JSON(http.StatusCreated, res)
}

// ListReservations returns the caller's own reservations: as requester for
// users, across their services for providers.
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var (
		list []models.Reservation
		err  error
	)
	if caller.Role == utils.RoleProvider {
		list, err = h.Service.ListForProvider(c.Request.Context(), caller.ID, c.Query("date"))
	} else {
		list, err = h.Service.ListForRequester(c.Request.Context(), caller.ID)
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": list})
}

func (h *ReservationHandler) GetReservation(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	res, err := h.Service.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type statusRequest struct {
	Status   string `json:"status" binding:"required"`
	EndTime  string `json:"endTime"`
	WorkNote string `json:"workNote"`
}

func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.Service.UpdateStatus(c.Request.Context(), caller.ID, c.Param("id"), models.StatusUpdateInput{
		Status:   req.Status,
		EndTime:  req.EndTime,
		WorkNote: req.WorkNote,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type progressRequest struct {
	JobInProgress    *bool    `json:"jobInProgress" form:"jobInProgress"`
	PaymentConfirmed *bool    `json:"paymentConfirmed" form:"paymentConfirmed"`
	OTPCode          *string  `json:"otpCode" form:"otpCode"`
	Notes            *string  `json:"notes" form:"notes"`
	Latitude         *float64 `json:"latitude" form:"latitude"`
	Longitude        *float64 `json:"longitude" form:"longitude"`
}

// UpdateProgress merges job progress. Multipart requests may carry
// "pickupImage" and "deliveryImage", geotagged by latitude/longitude.
func (h *ReservationHandler) UpdateProgress(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req progressRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	pickup, err := formImage(c, "pickupImage", req.Latitude, req.Longitude)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	delivery, err := formImage(c, "deliveryImage", req.Latitude, req.Longitude)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	res, err := h.Service.UpdateProgress(c.Request.Context(), caller.ID, c.Param("id"), models.ProgressPatch{
		JobInProgress:    req.JobInProgress,
		PaymentConfirmed: req.PaymentConfirmed,
		OTPCode:          req.OTPCode,
		Notes:            req.Notes,
		PickupImage:      pickup,
		DeliveryImage:    delivery,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type arrivalRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

func (h *ReservationHandler) RecordArrival(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req arrivalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	result, err := h.Service.RecordArrival(c.Request.Context(), caller.ID, c.Param("id"), *req.Latitude, *req.Longitude)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
