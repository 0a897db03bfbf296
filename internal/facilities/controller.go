package facilities

import (
	"net/http"
	"strconv"

	"courtside/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreateFacility(ctx *gin.Context) {
	var req CreateFacilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	facility, err := c.service.CreateFacility(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Facility created successfully", facility, nil)
}

func (c *Controller) GetFacility(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid facility ID", nil, err.Error())
		return
	}

	facility, err := c.service.GetFacility(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Facility retrieved successfully", facility, nil)
}

func (c *Controller) ListFacilities(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	facilities, total, err := c.service.ListFacilities(ctx.Request.Context(), page, limit)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Facilities retrieved successfully", gin.H{
		"facilities": facilities,
		"total":      total,
		"page":       page,
		"limit":      limit,
	}, nil)
}
