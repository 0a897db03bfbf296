package bookings

import (
	"net/http"
	"strconv"

	"courtside/internal/shared/config"
	"courtside/internal/shared/middleware"
	"courtside/internal/shared/utils/response"
	"courtside/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
	cfg     *config.Config
}

func NewController(service Service, cfg *config.Config) *Controller {
	return &Controller{service: service, cfg: cfg}
}

func userIDFromContext(ctx *gin.Context) (uuid.UUID, bool) {
	v, ok := ctx.Get(middleware.CtxUserID)
	if !ok {
		return uuid.Nil, false
	}
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (c *Controller) CreateBooking(ctx *gin.Context) {
	courtID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid court ID", nil, err.Error())
		return
	}

	userID, ok := userIDFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User identity missing", nil, nil)
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	req.UserID = userID
	req.CourtID = courtID

	req.Requester = RequesterUser
	if kind, ok := ctx.Get(middleware.CtxUserKind); ok {
		if s, ok := kind.(string); ok && s == string(RequesterSystem) {
			req.Requester = RequesterSystem
		}
	}

	tier := string(users.TierBasic)
	if v, ok := ctx.Get(middleware.CtxUserTier); ok {
		if s, ok := v.(string); ok && s != "" {
			tier = s
		}
	}
	req.HorizonDays = c.cfg.HorizonDaysForTier(tier)

	// Scheduler-placed academy blocks bypass payment; everything a user
	// books starts pending until payment is verified.
	requiresPayment := req.Requester != RequesterSystem

	booking, err := c.service.CreateBooking(ctx.Request.Context(), req, requiresPayment)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

func (c *Controller) GetBooking(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (c *Controller) ListPublicBookings(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	bookings, total, err := c.service.ListPublicBookings(ctx.Request.Context(), page, limit)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	out := make([]PublicBookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewPublicBookingResponse(b))
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Public bookings retrieved successfully", gin.H{
		"bookings": out,
		"total":    total,
		"page":     page,
		"limit":    limit,
	}, nil)
}

func (c *Controller) ListUserBookings(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User identity missing", nil, nil)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	bookings, total, err := c.service.ListUserBookings(ctx.Request.Context(), userID, page, limit)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", BookingListResponse{
		Bookings: bookings,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil)
}

func (c *Controller) JoinBooking(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	userID, ok := userIDFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User identity missing", nil, nil)
		return
	}

	booking, err := c.service.JoinBooking(ctx.Request.Context(), id, userID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Joined booking successfully", NewPublicBookingResponse(*booking), nil)
}
