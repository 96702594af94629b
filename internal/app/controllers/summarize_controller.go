package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emreakn/researchdesk/internal/app/models/dto"
	"github.com/emreakn/researchdesk/internal/middleware"
	"github.com/emreakn/researchdesk/internal/pkg/summarize"
)

// SummarizeController exposes the headline/summary generator so clients can
// preview a note before publishing it.
type SummarizeController struct{}

// NewSummarizeController creates a new SummarizeController.
func NewSummarizeController() *SummarizeController {
	return &SummarizeController{}
}

// Summarize godoc
// @Summary Summarize research text
// @Description Generates a placeholder headline and summary from raw text
// @Tags summarize
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SummarizeRequest true "Text to summarize"
// @Success 200 {object} dto.APIResponse{data=summarize.Result}
// @Failure 400 {object} dto.ErrorResponse
// @Router /summarize [post]
func (c *SummarizeController) Summarize(ctx *gin.Context) {
	var req dto.SummarizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summarize.Summarize(req.Text)))
}
