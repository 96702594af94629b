package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emreakn/researchdesk/internal/app/models"
	"github.com/emreakn/researchdesk/internal/app/models/dto"
	"github.com/emreakn/researchdesk/internal/app/services"
	"github.com/emreakn/researchdesk/internal/middleware"
	"github.com/emreakn/researchdesk/internal/pkg/apperrors"
	"github.com/emreakn/researchdesk/internal/pkg/filestorage"
	"github.com/emreakn/researchdesk/internal/pkg/logger"
)

// PostController handles the research post feed: creation with attachments,
// filtered listing, updates, reactions and comments.
type PostController struct {
	postService services.PostService
	fileStorage *filestorage.LocalStorage
}

// NewPostController creates a new PostController.
func NewPostController(postService services.PostService, fileStorage *filestorage.LocalStorage) *PostController {
	return &PostController{
		postService: postService,
		fileStorage: fileStorage,
	}
}

// CreatePost godoc
// @Summary Publish a research note
// @Description Creates a post from multipart form data, deriving headline and summary from the content
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param company formData string true "Company the note covers"
// @Param region formData string true "Market region" Enums(india, asia, developed_markets)
// @Param content formData string true "Full research text"
// @Param attachments formData file false "Supporting documents"
// @Success 201 {object} dto.APIResponse{data=models.PostWithDetails}
// @Failure 400 {object} dto.ErrorResponse
// @Router /posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	company := ctx.PostForm("company")
	region := ctx.PostForm("region")
	content := ctx.PostForm("content")
	if company == "" || content == "" {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("company and content are required"))
		return
	}
	if !models.ValidRegion(region) {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("region must be one of: india, asia, developed_markets"))
		return
	}

	attachments, err := c.saveAttachments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	post, err := c.postService.CreatePost(ctx, userID, company, models.Region(region), content, attachments)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

func (c *PostController) saveAttachments(ctx *gin.Context) ([]string, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		// No multipart body at all means no attachments
		return nil, nil
	}

	files := form.File["attachments"]
	saved := make([]string, 0, len(files))
	for _, fileHeader := range files {
		name, err := c.fileStorage.SaveFile(fileHeader)
		if err != nil {
			// Do not leave earlier files of a rejected batch on disk
			for _, stored := range saved {
				if delErr := c.fileStorage.DeleteFile(stored); delErr != nil {
					logger.Warn().Err(delErr).Str("file", stored).Msg("Failed to clean up attachment")
				}
			}
			if errors.Is(err, filestorage.ErrInvalidFileType) || errors.Is(err, filestorage.ErrFileTooLarge) {
				return nil, apperrors.NewBadRequestError(err.Error())
			}
			return nil, err
		}
		saved = append(saved, name)
	}
	return saved, nil
}

// GetPosts godoc
// @Summary List posts
// @Description Returns the enriched feed. A company query bypasses every other filter; otherwise region, fromDate and a single reaction threshold apply.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param region query string false "Market region or 'all'"
// @Param company query string false "Case-insensitive company substring"
// @Param minMmi query int false "Minimum mmi reactions"
// @Param minTbd query int false "Minimum tbd reactions"
// @Param minNews query int false "Minimum news reactions"
// @Param minReactions query int false "Minimum total reactions"
// @Param fromDate query string false "Lower creation time bound (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=[]models.PostWithDetails}
// @Failure 400 {object} dto.ErrorResponse
// @Router /posts [get]
func (c *PostController) GetPosts(ctx *gin.Context) {
	filters, err := parsePostFilters(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	posts, err := c.postService.GetPosts(ctx, filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

func parsePostFilters(ctx *gin.Context) (services.PostFilters, error) {
	filters := services.PostFilters{
		Region:  ctx.Query("region"),
		Company: ctx.Query("company"),
	}

	if filters.Region != "" && filters.Region != models.RegionAll && !models.ValidRegion(filters.Region) {
		return filters, apperrors.NewBadRequestError("invalid region filter")
	}

	for name, target := range map[string]**int{
		"minMmi":       &filters.MinMmi,
		"minTbd":       &filters.MinTbd,
		"minNews":      &filters.MinNews,
		"minReactions": &filters.MinReactions,
	} {
		raw := ctx.Query(name)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return filters, apperrors.NewBadRequestError(name + " must be an integer")
		}
		*target = &value
	}

	if raw := ctx.Query("fromDate"); raw != "" {
		from, err := parseDateParam(raw)
		if err != nil {
			return filters, apperrors.NewBadRequestError("fromDate must be an RFC 3339 timestamp or YYYY-MM-DD date")
		}
		filters.FromDate = &from
	}

	return filters, nil
}

func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// GetPost godoc
// @Summary Get a single post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post id"
// @Success 200 {object} dto.APIResponse{data=models.PostWithDetails}
// @Failure 404 {object} dto.ErrorResponse
// @Router /posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	post, err := c.postService.GetPost(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// GetPostsByUser godoc
// @Summary List a user's posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Author id"
// @Success 200 {object} dto.APIResponse{data=[]models.PostWithDetails}
// @Router /users/{userId}/posts [get]
func (c *PostController) GetPostsByUser(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	posts, err := c.postService.GetPostsByUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// UpdatePost godoc
// @Summary Revise a research note
// @Description Replaces the headline, content, company and region of a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post id"
// @Param request body dto.UpdatePostRequest true "Revised fields"
// @Success 200 {object} dto.APIResponse{data=models.PostWithDetails}
// @Failure 404 {object} dto.ErrorResponse
// @Router /posts/{id} [put]
func (c *PostController) UpdatePost(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	post, err := c.postService.UpdatePost(ctx, id, models.PostUpdate{
		Headline: req.Headline,
		Content:  req.Content,
		Company:  req.Company,
		Region:   models.Region(req.Region),
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// AddReaction godoc
// @Summary React to a post
// @Description Tags a post with mmi, tbd or news, replacing the caller's previous reaction
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post id"
// @Param request body dto.ReactionRequest true "Reaction type"
// @Success 201 {object} dto.APIResponse{data=models.Reaction}
// @Failure 404 {object} dto.ErrorResponse
// @Router /posts/{id}/reactions [post]
func (c *PostController) AddReaction(ctx *gin.Context) {
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

	var req dto.ReactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	reaction, err := c.postService.AddReaction(ctx, postID, userID, models.ReactionType(req.Type))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(reaction))
}

// RemoveReaction godoc
// @Summary Withdraw a reaction
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post id"
// @Param type path string true "Reaction type" Enums(mmi, tbd, news)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /posts/{id}/reactions/{type} [delete]
func (c *PostController) RemoveReaction(ctx *gin.Context) {
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

	reactionType := ctx.Param("type")
	if !models.ValidReactionType(reactionType) {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("reaction type must be one of: mmi, tbd, news"))
		return
	}

	if err := c.postService.RemoveReaction(ctx, postID, userID, models.ReactionType(reactionType)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Reaction removed"}))
}

// AddComment godoc
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post id"
// @Param request body dto.CommentRequest true "Comment body"
// @Success 201 {object} dto.APIResponse{data=models.CommentWithAuthor}
// @Failure 404 {object} dto.ErrorResponse
// @Router /posts/{id}/comments [post]
func (c *PostController) AddComment(ctx *gin.Context) {
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

	var req dto.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	comment, err := c.postService.AddComment(ctx, postID, userID, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		logger.Debug().Str("param", name).Str("value", ctx.Param(name)).Msg("Invalid id parameter")
		return 0, apperrors.NewBadRequestError("invalid " + name + " parameter")
	}
	return id, nil
}
