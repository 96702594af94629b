package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emreakn/researchdesk/internal/app/models"
	"github.com/emreakn/researchdesk/internal/app/models/dto"
	"github.com/emreakn/researchdesk/internal/app/services"
	"github.com/emreakn/researchdesk/internal/middleware"
)

// InterviewController handles the shared management interview log.
type InterviewController struct {
	interviewService services.InterviewService
}

// NewInterviewController creates a new InterviewController.
func NewInterviewController(interviewService services.InterviewService) *InterviewController {
	return &InterviewController{interviewService: interviewService}
}

// CreateInterview godoc
// @Summary Log a management interview
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInterviewRequest true "Interview details"
// @Success 201 {object} dto.APIResponse{data=models.InterviewWithUser}
// @Failure 400 {object} dto.ErrorResponse
// @Router /interviews [post]
func (c *InterviewController) CreateInterview(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	interview, err := c.interviewService.CreateInterview(ctx, &models.Interview{
		Title:   req.Title,
		Company: req.Company,
		Region:  models.Region(req.Region),
		Source:  req.Source,
		Link:    req.Link,
		Summary: req.Summary,
		AddedBy: userID,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(interview))
}

// GetInterviews godoc
// @Summary List logged interviews
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.InterviewWithUser}
// @Router /interviews [get]
func (c *InterviewController) GetInterviews(ctx *gin.Context) {
	interviews, err := c.interviewService.GetInterviews(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(interviews))
}
