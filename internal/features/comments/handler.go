package comments

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicfix/api/internal/features/auth"
	"github.com/civicfix/api/internal/features/issues"
	"github.com/civicfix/api/internal/pkg/access"
	"github.com/civicfix/api/internal/pkg/response"
)

type Handler struct {
	repo       *Repository
	usersRepo  *auth.Repository
	issuesRepo *issues.Repository
}

func NewHandler(repo *Repository, usersRepo *auth.Repository, issuesRepo *issues.Repository) *Handler {
	return &Handler{
		repo:       repo,
		usersRepo:  usersRepo,
		issuesRepo: issuesRepo,
	}
}

// Create godoc
// @Summary Comment on an issue
// @Description Set parentComment to reply to a top-level comment. Replies
// @Description cannot themselves be replied to.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.SuccessResponse{data=CommentResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /comments [post]
func (h *Handler) Create(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_REQUEST")
		return
	}
	if err := ValidateCreate(&req); err != nil {
		response.BadRequest(c, err.Error(), "VALIDATION_FAILED")
		return
	}

	ctx := c.Request.Context()

	issueID, err := primitive.ObjectIDFromHex(req.Issue)
	if err != nil {
		response.BadRequest(c, "Invalid issue ID", "INVALID_ID")
		return
	}
	if _, err := h.issuesRepo.GetByID(ctx, issueID); err != nil {
		response.FromError(c, err, "Issue not found")
		return
	}

	var parentID *primitive.ObjectID
	if req.ParentComment != "" {
		pid, err := primitive.ObjectIDFromHex(req.ParentComment)
		if err != nil {
			response.BadRequest(c, "Invalid parent comment ID", "INVALID_ID")
			return
		}
		parent, err := h.repo.GetByID(ctx, pid)
		if err != nil {
			response.FromError(c, err, "Parent comment not found")
			return
		}
		if err := ValidateParent(parent, req.Issue); err != nil {
			response.BadRequest(c, err.Error(), "VALIDATION_FAILED")
			return
		}
		parentID = &pid
	}

	comment := &Comment{
		Issue:         issueID,
		User:          user.ID,
		Text:          req.Text,
		ParentComment: parentID,
		Images:        req.Images,
	}
	if err := h.repo.Create(ctx, comment); err != nil {
		response.InternalServerError(c, "Failed to create comment", "DATABASE_ERROR")
		return
	}

	response.Created(c, CommentResponse{
		Comment: *comment,
		Author: &AuthorSummary{
			ID:           user.ID,
			Name:         user.Name,
			Role:         string(user.Role),
			ProfileImage: user.ProfileImage,
		},
	})
}

// ListByIssue godoc
// @Summary List an issue's comments
// @Description Returns top-level comments with their replies attached,
// @Description replies ordered oldest first.
// @Tags comments
// @Produce json
// @Param issueId path string true "Issue ID"
// @Success 200 {object} response.SuccessResponse{data=[]CommentResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /comments/issue/{issueId} [get]
func (h *Handler) ListByIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("issueId"))
	if err != nil {
		response.BadRequest(c, "Invalid issue ID", "INVALID_ID")
		return
	}

	ctx := c.Request.Context()
	comments, err := h.repo.ListByIssue(ctx, issueID)
	if err != nil {
		response.InternalServerError(c, "Failed to list comments", "DATABASE_ERROR")
		return
	}

	authorIDs := make([]primitive.ObjectID, 0, len(comments))
	for _, comment := range comments {
		authorIDs = append(authorIDs, comment.User)
	}
	authors, err := h.usersRepo.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		response.InternalServerError(c, "Failed to list comments", "DATABASE_ERROR")
		return
	}

	response.Success(c, thread(comments, authors))
}

// Update godoc
// @Summary Edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} response.SuccessResponse{data=Comment}
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /comments/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid comment ID", "INVALID_ID")
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_REQUEST")
		return
	}
	if err := ValidateUpdate(&req); err != nil {
		response.BadRequest(c, err.Error(), "VALIDATION_FAILED")
		return
	}

	ctx := c.Request.Context()
	comment, err := h.repo.GetByID(ctx, id)
	if err != nil {
		response.FromError(c, err, "Comment not found")
		return
	}

	if !access.Allowed(user.Actor(), access.Resource{OwnerID: comment.User}, access.OpUpdate) {
		response.Forbidden(c, "You cannot edit this comment", "FORBIDDEN")
		return
	}

	updates := bson.M{}
	if req.Text != "" {
		updates["text"] = req.Text
	}
	if req.Images != nil {
		updates["images"] = req.Images
	}

	updated, err := h.repo.Update(ctx, id, updates)
	if err != nil {
		response.FromError(c, err, "Failed to update comment")
		return
	}
	response.Success(c, updated)
}

// Delete godoc
// @Summary Delete a comment
// @Description Deleting a top-level comment removes its replies as well.
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /comments/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid comment ID", "INVALID_ID")
		return
	}

	ctx := c.Request.Context()
	comment, err := h.repo.GetByID(ctx, id)
	if err != nil {
		response.FromError(c, err, "Comment not found")
		return
	}

	if !access.Allowed(user.Actor(), access.Resource{OwnerID: comment.User}, access.OpDelete) {
		response.Forbidden(c, "You cannot delete this comment", "FORBIDDEN")
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		response.FromError(c, err, "Failed to delete comment")
		return
	}
	response.Success(c, gin.H{"message": "Comment removed"})
}

// Like godoc
// @Summary Toggle a like on a comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} response.SuccessResponse{data=LikeResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /comments/{id}/like [post]
func (h *Handler) Like(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid comment ID", "INVALID_ID")
		return
	}

	result, err := h.repo.ToggleLike(c.Request.Context(), id, user.ID)
	if err != nil {
		response.FromError(c, err, "Comment not found")
		return
	}
	response.Success(c, result)
}

// thread groups a flat, oldest-first comment list into top-level comments
// with their replies attached.
func thread(comments []Comment, authors map[primitive.ObjectID]*auth.User) []CommentResponse {
	summary := func(id primitive.ObjectID) *AuthorSummary {
		u, ok := authors[id]
		if !ok {
			return nil
		}
		return &AuthorSummary{
			ID:           u.ID,
			Name:         u.Name,
			Role:         string(u.Role),
			ProfileImage: u.ProfileImage,
		}
	}

	top := make([]CommentResponse, 0)
	index := make(map[primitive.ObjectID]int)
	for _, comment := range comments {
		if comment.ParentComment == nil {
			top = append(top, CommentResponse{Comment: comment, Author: summary(comment.User)})
			index[comment.ID] = len(top) - 1
		}
	}
	for _, comment := range comments {
		if comment.ParentComment == nil {
			continue
		}
		if i, ok := index[*comment.ParentComment]; ok {
			top[i].Replies = append(top[i].Replies, CommentResponse{
				Comment: comment,
				Author:  summary(comment.User),
			})
		}
	}
	return top
}
