// file: internal/server/user_service.go
// version: 1.0.0
// guid: 13f29fa9-1905-46ec-ada0-45bdec4da4c5

package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/acikyardim/yardim-paneli/internal/models"
	"github.com/acikyardim/yardim-paneli/internal/rbac"
	"github.com/acikyardim/yardim-paneli/internal/server/middleware"
)

type userRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
	Active   *bool  `json:"active"`
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.store.ListUsers(s.orgForRequest(c))
	if err != nil {
		RespondWithInternalError(c, "failed to list users")
		return
	}
	RespondWithList(c, users, len(users), len(users), 0)
}

func (s *Server) createUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithBadRequest(c, "email and role are required")
		return
	}
	if !rbac.RoleValid(req.Role) {
		RespondWithValidationError(c, "role", "unknown role")
		return
	}
	if len(req.Password) < 8 {
		RespondWithValidationError(c, "password", "must be at least 8 characters")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.store.GetUserByEmail(email)
	if err != nil {
		RespondWithInternalError(c, "failed to check email")
		return
	}
	if existing != nil {
		RespondWithConflict(c, "email already in use")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondWithInternalError(c, "failed to hash password")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	orgID := s.orgForRequest(c)
	user, err := s.store.CreateUser(&models.User{
		OrgID:        orgID,
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       active,
	})
	if err != nil {
		RespondWithInternalError(c, "failed to create user")
		return
	}

	s.recordActivity(c, orgID, "", "user.create", "users", user.ID, user.Email)
	RespondWithCreated(c, user)
}

func (s *Server) updateUser(c *gin.Context) {
	id := c.Param("id")
	orgID := s.orgForRequest(c)

	existing, err := s.store.GetUserByID(id)
	if err != nil {
		RespondWithInternalError(c, "failed to load user")
		return
	}
	if existing == nil || existing.OrgID != orgID {
		RespondWithNotFound(c, "user", id)
		return
	}

	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithBadRequest(c, "email and role are required")
		return
	}
	if !rbac.RoleValid(req.Role) {
		RespondWithValidationError(c, "role", "unknown role")
		return
	}

	// Admins cannot demote or deactivate themselves.
	if actor, ok := middleware.CurrentUser(c); ok && actor.ID == id {
		if req.Role != actor.Role || (req.Active != nil && !*req.Active) {
			RespondWithConflict(c, "cannot change own role or status")
			return
		}
	}

	existing.Email = strings.ToLower(strings.TrimSpace(req.Email))
	existing.Name = req.Name
	existing.Role = req.Role
	if req.Active != nil {
		existing.Active = *req.Active
	}
	if req.Password != "" {
		if len(req.Password) < 8 {
			RespondWithValidationError(c, "password", "must be at least 8 characters")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			RespondWithInternalError(c, "failed to hash password")
			return
		}
		existing.PasswordHash = string(hash)
	}

	updated, err := s.store.UpdateUser(id, existing)
	if err != nil {
		RespondWithInternalError(c, "failed to update user")
		return
	}
	if updated == nil {
		RespondWithNotFound(c, "user", id)
		return
	}

	s.recordActivity(c, orgID, "", "user.update", "users", id, updated.Email)
	RespondWithOK(c, updated)
}

func (s *Server) deleteUser(c *gin.Context) {
	id := c.Param("id")
	orgID := s.orgForRequest(c)

	if actor, ok := middleware.CurrentUser(c); ok && actor.ID == id {
		RespondWithConflict(c, "cannot delete own account")
		return
	}

	existing, err := s.store.GetUserByID(id)
	if err != nil {
		RespondWithInternalError(c, "failed to load user")
		return
	}
	if existing == nil || existing.OrgID != orgID {
		RespondWithNotFound(c, "user", id)
		return
	}

	if err := s.store.DeleteUser(id); err != nil {
		RespondWithInternalError(c, "failed to delete user")
		return
	}

	s.recordActivity(c, orgID, "", "user.delete", "users", id, existing.Email)
	RespondWithNoContent(c)
}
