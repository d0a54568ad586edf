package api

import (
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves account provisioning and activity stamps.
type AccountHandler struct {
	accountService service.AccountService
}

func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

type LastActiveRequest struct {
	IsInstructor *bool `json:"isInstructor"`
}

// ProvisionAccount godoc
// @Summary Create the initial profile of a new account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param account body domain.NewAccount true "Account created at the identity provider"
// @Success 201 {object} gin.H "Profile created"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Invalid hook secret"
// @Router /hooks/accounts [post]
func (h *AccountHandler) ProvisionAccount(c *gin.Context) {
	var req domain.NewAccount
	if !bindJSON(c, &req) {
		return
	}
	kind, err := h.accountService.ProvisionAccount(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"uid": req.UID, "kind": kind})
}

// UpdateLastActive stamps the caller's profile. Without a body the account
// kind of the session decides which profile is stamped.
func (h *AccountHandler) UpdateLastActive(c *gin.Context) {
	sess := getSession(c)
	var req LastActiveRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	isInstructor := sess.IsInstructor()
	if req.IsInstructor != nil {
		isInstructor = *req.IsInstructor
	}
	if err := h.accountService.UpdateLastActive(c.Request.Context(), sess, isInstructor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
