package handlers

import (
	"net/http"

	"rideshare/models"
	"rideshare/services/session"
	"rideshare/services/user"
	"rideshare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves sign-up, sign-in and profile endpoints.
type UserHandler struct {
	Users    user.UserService
	Sessions session.Provider
	Logger   *zap.Logger
}

func NewUserHandler(users user.UserService, sessions session.Provider, logger *zap.Logger) *UserHandler {
	return &UserHandler{Users: users, Sessions: sessions, Logger: logger}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	var req models.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	u, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	token, err := h.Sessions.Start(c.Request.Context(), u.Identity())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: u.Public()})
}

func (h *UserHandler) AuthenticateUserHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	identity, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		getLogger(c).Info("Login rejected", zap.String("email", req.Email))
		utils.RespondError(c, err)
		return
	}
	token, err := h.Sessions.Start(c.Request.Context(), identity)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	profile, err := h.Users.GetProfile(c.Request.Context(), identity.Email)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AuthResponse{Token: token, User: profile.Public()})
}

func (h *UserHandler) LogoutHandler(c *gin.Context) {
	if err := h.Sessions.End(c.Request.Context(), currentToken(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	profile, err := h.Users.GetProfile(c.Request.Context(), identity.Email)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile.Public())
}

// UpdateSettingsHandler changes name and email and rebinds the session to
// the new identity.
func (h *UserHandler) UpdateSettingsHandler(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req models.SettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	updated, err := h.Users.UpdateSettings(c.Request.Context(), identity.Email, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := h.Sessions.Refresh(c.Request.Context(), currentToken(c), updated.Identity()); err != nil {
		getLogger(c).Error("Failed to refresh session after settings update", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated.Public())
}
