// file: internal/server/auth_handlers.go
// version: 1.0.0
// guid: 0f2f38bb-9e4e-4805-99e0-377249d305ce

package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/acikyardim/yardim-paneli/internal/config"
	"github.com/acikyardim/yardim-paneli/internal/models"
	"github.com/acikyardim/yardim-paneli/internal/server/middleware"
)

type setupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// setupFirstAdmin creates the initial admin account. Only usable while the
// user table is empty.
func (s *Server) setupFirstAdmin(c *gin.Context) {
	count, err := s.store.CountUsers()
	if err != nil {
		RespondWithInternalError(c, "failed to check setup state")
		return
	}
	if count > 0 {
		RespondWithConflict(c, "setup already completed")
		return
	}

	var req setupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithBadRequest(c, "email and password are required")
		return
	}
	if len(req.Password) < 8 {
		RespondWithValidationError(c, "password", "must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondWithInternalError(c, "failed to hash password")
		return
	}

	user, err := s.store.CreateUser(&models.User{
		OrgID:        config.AppConfig.DefaultOrgID,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Active:       true,
	})
	if err != nil {
		RespondWithInternalError(c, "failed to create admin user")
		return
	}

	LogAuditEvent("auth.setup", user.ID, user.ID, "create", "initial admin created")
	s.recordActivity(c, user.OrgID, user.ID, "auth.setup", "users", user.ID, user.Email)
	RespondWithCreated(c, user)
}

// login verifies credentials and issues a session token. The token is
// returned in the body and set as a cookie.
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithBadRequest(c, "email and password are required")
		return
	}

	user, err := s.store.GetUserByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		RespondWithInternalError(c, "failed to look up user")
		return
	}
	if user == nil || !user.Active {
		RespondWithUnauthorized(c, "invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		RespondWithUnauthorized(c, "invalid credentials")
		return
	}

	session, err := s.store.CreateSession(user.ID, config.AppConfig.SessionTTL)
	if err != nil {
		RespondWithInternalError(c, "failed to create session")
		return
	}

	maxAge := int(config.AppConfig.SessionTTL.Seconds())
	c.SetCookie(middleware.SessionCookieName, session.Token, maxAge, "/", "", false, true)

	s.recordActivity(c, user.OrgID, user.ID, "auth.login", "users", user.ID, user.Email)
	c.JSON(http.StatusOK, gin.H{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"user":       user,
	})
}

// logout revokes the current session.
func (s *Server) logout(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		RespondWithUnauthorized(c, "no active session")
		return
	}
	if err := s.store.RevokeSession(session.Token); err != nil {
		RespondWithInternalError(c, "failed to revoke session")
		return
	}
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	RespondWithNoContent(c)
}

// currentUser returns the authenticated user.
func (s *Server) currentUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondWithUnauthorized(c, "authentication required")
		return
	}
	RespondWithOK(c, user)
}

// recordActivity appends an audit-log row; failures are logged, never fatal.
func (s *Server) recordActivity(c *gin.Context, orgID, userID, action, resource, resourceID, detail string) {
	if userID == "" {
		if user, ok := middleware.CurrentUser(c); ok {
			userID = user.ID
		}
	}
	err := s.store.AddActivity(&models.ActivityEntry{
		OrgID:      orgID,
		UserID:     userID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Detail:     detail,
	})
	if err != nil {
		logOp := NewOperationLogger("recordActivity", c.Request.Method, c.Request.URL.Path)
		logOp.LogWarning("failed to record activity: " + err.Error())
	}
}
