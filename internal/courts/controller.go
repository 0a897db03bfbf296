package courts

import (
	"net/http"

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

func (c *Controller) CreateCourt(ctx *gin.Context) {
	facilityID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid facility ID", nil, err.Error())
		return
	}

	var req CreateCourtRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	req.FacilityID = facilityID

	court, err := c.service.CreateCourt(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Court created successfully", court, nil)
}

func (c *Controller) GetCourt(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid court ID", nil, err.Error())
		return
	}

	court, err := c.service.GetCourt(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Court retrieved successfully", court, nil)
}

func (c *Controller) ListByFacility(ctx *gin.Context) {
	facilityID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid facility ID", nil, err.Error())
		return
	}

	courts, err := c.service.ListByFacility(ctx.Request.Context(), facilityID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Courts retrieved successfully", courts, nil)
}

func (c *Controller) UpdatePricing(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid court ID", nil, err.Error())
		return
	}

	var req UpdatePricingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	if err := c.service.UpdatePricing(ctx.Request.Context(), id, req.SessionPrice, req.SessionDuration); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Court pricing updated successfully", nil, nil)
}

// GetSlots returns a court's slot calendar. With ?date= it resolves that one
// day; without, it resolves the caller's full booking horizon, which depends
// on membership tier.
func (c *Controller) GetSlots(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid court ID", nil, err.Error())
		return
	}

	if date := ctx.Query("date"); date != "" {
		slots, err := c.service.DayAvailability(ctx.Request.Context(), id, date)
		if err != nil {
			response.RespondError(ctx, err)
			return
		}
		response.RespondJSON(ctx, "success", http.StatusOK, "Slots retrieved successfully", DayAvailabilityResponse{
			CourtID: id.String(),
			Date:    date,
			Slots:   slots,
		}, nil)
		return
	}

	tier := string(users.TierBasic)
	if v, ok := ctx.Get(middleware.CtxUserTier); ok {
		if s, ok := v.(string); ok && s != "" {
			tier = s
		}
	}
	horizon := c.cfg.HorizonDaysForTier(tier)

	slots, err := c.service.CalendarAvailability(ctx.Request.Context(), id, horizon)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Slots retrieved successfully", CalendarResponse{
		CourtID:     id.String(),
		HorizonDays: horizon,
		Slots:       slots,
	}, nil)
}

// GetFacilityAvailability lists the facility's courts still open at one slot.
func (c *Controller) GetFacilityAvailability(ctx *gin.Context) {
	facilityID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid facility ID", nil, err.Error())
		return
	}

	var q AvailabilityQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	courts, err := c.service.AvailableCourtsAt(ctx.Request.Context(), facilityID, q.Date, q.Slot)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability retrieved successfully", FacilityAvailabilityResponse{
		FacilityID: facilityID.String(),
		Date:       q.Date,
		Slot:       q.Slot,
		Courts:     courts,
	}, nil)
}
