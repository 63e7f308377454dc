package issues

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicfix/api/internal/features/auth"
	"github.com/civicfix/api/internal/features/cities"
	"github.com/civicfix/api/internal/pkg/access"
	"github.com/civicfix/api/internal/pkg/pagination"
	"github.com/civicfix/api/internal/pkg/response"
)

// CommentPurger removes an issue's discussion when the issue itself goes
// away. Satisfied by the comments repository.
type CommentPurger interface {
	DeleteByIssue(ctx context.Context, issueID primitive.ObjectID) error
}

type Handler struct {
	repo       *Repository
	usersRepo  *auth.Repository
	citiesRepo *cities.Repository
	comments   CommentPurger
}

func NewHandler(repo *Repository, usersRepo *auth.Repository, citiesRepo *cities.Repository, comments CommentPurger) *Handler {
	return &Handler{
		repo:       repo,
		usersRepo:  usersRepo,
		citiesRepo: citiesRepo,
		comments:   comments,
	}
}

func (h *Handler) purgeComments(ctx context.Context, issueID primitive.ObjectID) {
	if h.comments == nil {
		return
	}
	if err := h.comments.DeleteByIssue(ctx, issueID); err != nil {
		log.Printf("failed to purge comments for issue %s: %v", issueID.Hex(), err)
	}
}

// List godoc
// @Summary List issues
// @Description Filter by category, status, city and a geo radius
// @Description (lng/lat/maxDistance, radius defaults to 10000 meters).
// @Description Radius-filtered results are ordered nearest first.
// @Tags issues
// @Produce json
// @Param category query string false "Category"
// @Param status query string false "Status"
// @Param city query string false "City ID"
// @Param lng query number false "Longitude"
// @Param lat query number false "Latitude"
// @Param maxDistance query number false "Radius in meters"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort field, prefix - for descending"
// @Success 200 {object} response.SuccessResponse{data=ListResponse}
// @Failure 400 {object} response.ErrorResponse
// @Router /issues [get]
func (h *Handler) List(c *gin.Context) {
	filter, err := ParseListFilter(map[string]string{
		"category":    c.Query("category"),
		"status":      c.Query("status"),
		"city":        c.Query("city"),
		"lng":         c.Query("lng"),
		"lat":         c.Query("lat"),
		"maxDistance": c.Query("maxDistance"),
		"sort":        c.Query("sort"),
	})
	if err != nil {
		response.BadRequest(c, "Invalid filter parameters", "VALIDATION_FAILED")
		return
	}

	page := pagination.FromRequest(c.Query("page"), c.Query("limit"))
	ctx := c.Request.Context()

	issues, total, err := h.repo.List(ctx, filter, page)
	if err != nil {
		response.InternalServerError(c, "Failed to list issues", "DATABASE_ERROR")
		return
	}

	populated, err := h.populate(c, issues)
	if err != nil {
		response.InternalServerError(c, "Failed to list issues", "DATABASE_ERROR")
		return
	}

	response.Success(c, ListResponse{
		Issues: populated,
		Page:   page.Page,
		Pages:  page.Pages(total),
		Total:  total,
	})
}

// GetByID godoc
// @Summary Get an issue by ID
// @Tags issues
// @Produce json
// @Param id path string true "Issue ID"
// @Success 200 {object} response.SuccessResponse{data=IssueResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /issues/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	issue, ok := h.fetch(c)
	if !ok {
		return
	}

	populated, err := h.populate(c, []Issue{*issue})
	if err != nil {
		response.InternalServerError(c, "Failed to load issue", "DATABASE_ERROR")
		return
	}
	response.Success(c, populated[0])
}

// Create godoc
// @Summary Report a new issue
// @Tags issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.SuccessResponse{data=IssueResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 429 {object} response.ErrorResponse
// @Router /issues [post]
func (h *Handler) Create(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_REQUEST")
		return
	}
	if err := ValidateCreate(&req); err != nil {
		response.BadRequest(c, err.Error(), "VALIDATION_FAILED")
		return
	}

	ctx := c.Request.Context()

	city, err := h.citiesRepo.ResolveOrCreate(ctx, req.City)
	if err != nil {
		response.FromError(c, err, "Failed to resolve city")
		return
	}

	issue := New(req, *req.Location, city.ID, user.ID, time.Now())
	if err := h.repo.Create(ctx, issue); err != nil {
		response.InternalServerError(c, "Failed to create issue", "DATABASE_ERROR")
		return
	}

	populated, err := h.populate(c, []Issue{*issue})
	if err != nil {
		response.InternalServerError(c, "Failed to load issue", "DATABASE_ERROR")
		return
	}
	response.Created(c, populated[0])
}

// Update godoc
// @Summary Update an issue
// @Description Core fields may be edited by the reporter or an admin.
// @Description Status and assignment changes are reserved for department and
// @Description admin accounts; a reporter sending a status change is denied
// @Description and the issue is left untouched.
// @Tags issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Issue ID"
// @Success 200 {object} response.SuccessResponse{data=IssueResponse}
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /issues/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	issue, ok := h.fetch(c)
	if !ok {
		return
	}

	var req UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_REQUEST")
		return
	}
	if err := ValidateUpdate(&req); err != nil {
		response.BadRequest(c, err.Error(), "VALIDATION_FAILED")
		return
	}

	actor := user.Actor()
	res := access.Resource{OwnerID: issue.ReportedBy}

	editsCore := req.Title != "" || req.Description != "" || req.Category != "" ||
		req.Priority != "" || req.Address != "" || req.Images != nil
	editsStatus := req.Status != ""
	editsAssignment := req.AssignedTo != "" || req.EstimatedCompletionTime != nil

	// Permissions are checked for everything the request touches before any
	// of it is applied, so a denied request leaves the issue untouched.
	if editsCore && !access.Allowed(actor, res, access.OpUpdate) {
		response.Forbidden(c, "You cannot edit this issue", "FORBIDDEN")
		return
	}
	if editsStatus && !access.Allowed(actor, res, access.OpChangeStatus) {
		response.Forbidden(c, "Only department or admin accounts can change issue status", "FORBIDDEN")
		return
	}
	if editsAssignment && !access.Allowed(actor, res, access.OpAssign) {
		response.Forbidden(c, "Only department or admin accounts can assign issues", "FORBIDDEN")
		return
	}

	ctx := c.Request.Context()
	now := time.Now()

	if req.Title != "" {
		issue.Title = req.Title
	}
	if req.Description != "" {
		issue.Description = req.Description
	}
	if req.Category != "" {
		issue.Category = req.Category
	}
	if req.Priority != "" {
		issue.Priority = req.Priority
	}
	if req.Address != "" {
		issue.Address = req.Address
	}
	if req.Images != nil {
		issue.Images = req.Images
	}
	if req.AssignedTo != "" {
		assignee, err := h.usersRepo.GetUserByID(ctx, req.AssignedTo)
		if err != nil {
			response.BadRequest(c, "Assignee not found", "VALIDATION_FAILED")
			return
		}
		issue.AssignedTo = &assignee.ID
	}
	if req.EstimatedCompletionTime != nil {
		issue.EstimatedCompletionTime = req.EstimatedCompletionTime
	}
	if editsStatus {
		issue.ChangeStatus(req.Status, user.ID, req.StatusNote, now)
	}
	issue.UpdatedAt = now

	if err := h.repo.Replace(ctx, issue); err != nil {
		response.FromError(c, err, "Failed to update issue")
		return
	}

	populated, err := h.populate(c, []Issue{*issue})
	if err != nil {
		response.InternalServerError(c, "Failed to load issue", "DATABASE_ERROR")
		return
	}
	response.Success(c, populated[0])
}

// Delete godoc
// @Summary Delete an issue
// @Tags issues
// @Produce json
// @Security BearerAuth
// @Param id path string true "Issue ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /issues/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	issue, ok := h.fetch(c)
	if !ok {
		return
	}

	if !access.Allowed(user.Actor(), access.Resource{OwnerID: issue.ReportedBy}, access.OpDelete) {
		response.Forbidden(c, "You cannot delete this issue", "FORBIDDEN")
		return
	}

	ctx := c.Request.Context()
	if err := h.repo.Delete(ctx, issue.ID); err != nil {
		response.FromError(c, err, "Failed to delete issue")
		return
	}
	h.purgeComments(ctx, issue.ID)
	response.Success(c, gin.H{"message": "Issue removed"})
}

// Upvote godoc
// @Summary Toggle an upvote
// @Tags issues
// @Produce json
// @Security BearerAuth
// @Param id path string true "Issue ID"
// @Success 200 {object} response.SuccessResponse{data=VoteResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /issues/{id}/upvote [post]
func (h *Handler) Upvote(c *gin.Context) {
	h.vote(c, VoteUp)
}

// Downvote godoc
// @Summary Toggle a downvote
// @Tags issues
// @Produce json
// @Security BearerAuth
// @Param id path string true "Issue ID"
// @Success 200 {object} response.SuccessResponse{data=VoteResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /issues/{id}/downvote [post]
func (h *Handler) Downvote(c *gin.Context) {
	h.vote(c, VoteDown)
}

func (h *Handler) vote(c *gin.Context, kind VoteKind) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	issue, ok := h.fetch(c)
	if !ok {
		return
	}

	result := issue.ApplyVote(user.ID, kind)
	if err := h.repo.Replace(c.Request.Context(), issue); err != nil {
		response.FromError(c, err, "Failed to record vote")
		return
	}
	response.Success(c, result)
}

// Feedback godoc
// @Summary Verify a resolved issue and close it out
// @Description The reporter confirms the fix. The feedback is logged and the
// @Description issue is removed; only resolved issues can be verified, and
// @Description department accounts cannot verify their own reports.
// @Tags issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Issue ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /issues/{id}/feedback [put]
func (h *Handler) Feedback(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	issue, ok := h.fetch(c)
	if !ok {
		return
	}

	if !access.Allowed(user.Actor(), access.Resource{OwnerID: issue.ReportedBy}, access.OpVerifyClose) {
		response.Forbidden(c, "Only the reporter or an admin can verify and close an issue", "FORBIDDEN")
		return
	}
	if issue.Status != StatusResolved {
		response.BadRequest(c, "Issue must be resolved before it can be verified", "INVALID_STATE")
		return
	}

	// Feedback is optional; an absent body closes the issue without a note.
	var req FeedbackRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request format", "INVALID_REQUEST")
			return
		}
	}

	log.Printf("issue %s verified closed by %s: rating=%d feedback=%q",
		issue.ID.Hex(), user.ID.Hex(), req.Rating, req.Feedback)

	ctx := c.Request.Context()
	if err := h.repo.Delete(ctx, issue.ID); err != nil {
		response.FromError(c, err, "Failed to close issue")
		return
	}
	h.purgeComments(ctx, issue.ID)
	response.Success(c, gin.H{"message": "Issue verified and closed"})
}

// MyIssues godoc
// @Summary List the caller's reported issues
// @Tags issues
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=[]IssueResponse}
// @Router /issues/user/issues [get]
func (h *Handler) MyIssues(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	issues, err := h.repo.ListByReporter(c.Request.Context(), user.ID)
	if err != nil {
		response.InternalServerError(c, "Failed to list issues", "DATABASE_ERROR")
		return
	}

	populated, err := h.populate(c, issues)
	if err != nil {
		response.InternalServerError(c, "Failed to list issues", "DATABASE_ERROR")
		return
	}
	response.Success(c, populated)
}

// DepartmentIssues godoc
// @Summary List issues for the caller's department
// @Description Department accounts see their own city's issues; admins see
// @Description everything. Optional status filter.
// @Tags issues
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status"
// @Success 200 {object} response.SuccessResponse{data=[]IssueResponse}
// @Failure 400 {object} response.ErrorResponse
// @Router /issues/department/issues [get]
func (h *Handler) DepartmentIssues(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	status := Status(c.Query("status"))
	if status != "" && !ValidStatus(status) {
		response.BadRequest(c, "Unknown status filter", "VALIDATION_FAILED")
		return
	}

	ctx := c.Request.Context()
	var (
		issues []Issue
		err    error
	)
	switch user.Role {
	case access.RoleAdmin:
		issues, err = h.repo.ListAll(ctx, status)
	case access.RoleDepartment:
		if user.City == nil {
			response.BadRequest(c, "Department account has no city assigned", "NO_CITY")
			return
		}
		issues, err = h.repo.ListByCity(ctx, *user.City, status)
	default:
		response.Forbidden(c, "Department or admin account required", "FORBIDDEN")
		return
	}
	if err != nil {
		response.InternalServerError(c, "Failed to list issues", "DATABASE_ERROR")
		return
	}

	populated, err := h.populate(c, issues)
	if err != nil {
		response.InternalServerError(c, "Failed to list issues", "DATABASE_ERROR")
		return
	}
	response.Success(c, populated)
}

// fetch loads the issue named by the :id path parameter, writing the error
// response itself when it cannot.
func (h *Handler) fetch(c *gin.Context) (*Issue, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid issue ID", "INVALID_ID")
		return nil, false
	}

	issue, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "Issue not found")
		return nil, false
	}
	return issue, true
}

// populate attaches reporter, assignee and city summaries with two batch
// lookups instead of a query per issue.
func (h *Handler) populate(c *gin.Context, issues []Issue) ([]IssueResponse, error) {
	ctx := c.Request.Context()

	userIDs := make([]primitive.ObjectID, 0, len(issues)*2)
	cityIDs := make([]primitive.ObjectID, 0, len(issues))
	for _, issue := range issues {
		userIDs = append(userIDs, issue.ReportedBy)
		if issue.AssignedTo != nil {
			userIDs = append(userIDs, *issue.AssignedTo)
		}
		cityIDs = append(cityIDs, issue.City)
	}

	users, err := h.usersRepo.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	cityMap, err := h.citiesRepo.GetByIDs(ctx, cityIDs)
	if err != nil {
		return nil, err
	}

	result := make([]IssueResponse, 0, len(issues))
	for _, issue := range issues {
		item := IssueResponse{Issue: issue}
		if u, ok := users[issue.ReportedBy]; ok {
			item.Reporter = userSummary(u)
		}
		if issue.AssignedTo != nil {
			if u, ok := users[*issue.AssignedTo]; ok {
				item.Assignee = userSummary(u)
			}
		}
		if city, ok := cityMap[issue.City]; ok {
			item.CityInfo = &CitySummary{ID: city.ID, Name: city.Name, State: city.State}
		}
		result = append(result, item)
	}
	return result, nil
}

func userSummary(u *auth.User) *UserSummary {
	return &UserSummary{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		Department:   u.Department,
		ProfileImage: u.ProfileImage,
	}
}
