package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emreakn/researchdesk/internal/app/models/dto"
	"github.com/emreakn/researchdesk/internal/app/services"
	"github.com/emreakn/researchdesk/internal/middleware"
)

// FundManagerController handles the bookmark-style likes available to fund
// managers. Routes are mounted behind a fund_manager role check.
type FundManagerController struct {
	postService services.PostService
}

// NewFundManagerController creates a new FundManagerController.
func NewFundManagerController(postService services.PostService) *FundManagerController {
	return &FundManagerController{postService: postService}
}

// LikePost godoc
// @Summary Like a post
// @Description Marks a post as liked by the calling fund manager
// @Tags fund-manager
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post id"
// @Success 201 {object} dto.APIResponse{data=models.FundManagerLike}
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /fund-manager/posts/{id}/like [post]
func (c *FundManagerController) LikePost(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	postID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	like, err := c.postService.LikePost(ctx, postID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(like))
}

// UnlikePost godoc
// @Summary Remove a like
// @Tags fund-manager
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post id"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /fund-manager/posts/{id}/like [delete]
func (c *FundManagerController) UnlikePost(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	postID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.postService.UnlikePost(ctx, postID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Like removed"}))
}

// GetLikedPosts godoc
// @Summary List liked posts
// @Description Returns every post liked by at least one fund manager; the listing is shared, not per caller
// @Tags fund-manager
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.PostWithDetails}
// @Router /fund-manager/liked-posts [get]
func (c *FundManagerController) GetLikedPosts(ctx *gin.Context) {
	posts, err := c.postService.GetLikedPosts(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}
