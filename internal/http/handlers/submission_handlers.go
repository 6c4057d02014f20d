package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/you/kpaforms/domain"
	"github.com/you/kpaforms/internal/http/middleware"
)

// SubmissionHandlers handles form submission requests for the authenticated user
type SubmissionHandlers struct {
	submissionSvc domain.SubmissionService
}

// NewSubmissionHandlers creates new submission handlers
func NewSubmissionHandlers(submissionSvc domain.SubmissionService) *SubmissionHandlers {
	return &SubmissionHandlers{submissionSvc: submissionSvc}
}

// Submit files a new form submission
func (h *SubmissionHandlers) Submit(c *gin.Context) {
	owner, ok := middleware.CurrentUser(c)
	if !ok {
		RespondUnauthenticated(c)
		return
	}

	var draft domain.SubmissionDraft
	if err := c.ShouldBindWith(&draft, formJSON); err != nil {
		respondBindError(c, err)
		return
	}

	submission, err := h.submissionSvc.Create(c.Request.Context(), owner, draft)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": submission})
}

// List returns the caller's submissions, filtered and paginated by query parameters
func (h *SubmissionHandlers) List(c *gin.Context) {
	owner, ok := middleware.CurrentUser(c)
	if !ok {
		RespondUnauthenticated(c)
		return
	}

	query := domain.SubmissionQuery{
		Status:   c.Query("status"),
		FormType: c.Query("form_type"),
	}
	var err error
	if query.Skip, err = intQuery(c, "skip"); err != nil {
		RespondError(c, err)
		return
	}
	if query.Limit, err = intQuery(c, "limit"); err != nil {
		RespondError(c, err)
		return
	}

	submissions, err := h.submissionSvc.List(c.Request.Context(), owner, query)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": submissions})
}

// Get returns one of the caller's submissions
func (h *SubmissionHandlers) Get(c *gin.Context) {
	owner, ok := middleware.CurrentUser(c)
	if !ok {
		RespondUnauthenticated(c)
		return
	}

	id, err := submissionID(c)
	if err != nil {
		RespondError(c, err)
		return
	}

	submission, err := h.submissionSvc.Get(c.Request.Context(), owner, id)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": submission})
}

// Update applies a partial update to one of the caller's submissions
func (h *SubmissionHandlers) Update(c *gin.Context) {
	owner, ok := middleware.CurrentUser(c)
	if !ok {
		RespondUnauthenticated(c)
		return
	}

	id, err := submissionID(c)
	if err != nil {
		RespondError(c, err)
		return
	}

	var patch domain.SubmissionPatch
	if err := c.ShouldBindWith(&patch, formJSON); err != nil {
		respondBindError(c, err)
		return
	}

	submission, err := h.submissionSvc.Update(c.Request.Context(), owner, id, patch)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": submission})
}

// intQuery reads an optional integer query parameter; absent means zero
func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return v, nil
}

func submissionID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, domain.NewValidationError("id", "must be a positive integer")
	}
	return uint(id), nil
}
