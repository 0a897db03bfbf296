package payments

import (
	"net/http"

	"courtside/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) VerifyPayment(ctx *gin.Context) {
	reference := ctx.Param("reference")
	if reference == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Payment reference is required", nil, "missing reference")
		return
	}

	outcome, err := c.service.VerifyAndConfirm(ctx.Request.Context(), reference)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment verified successfully", outcome, nil)
}
