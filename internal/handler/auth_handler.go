package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ripple-chat/internal/services"
	"ripple-chat/internal/transport/httpdto"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), "AUTH_FAILED"))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(resp))
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), "AUTH_FAILED"))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(resp))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context()); err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), "AUTH_FAILED"))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *AuthHandler) Me(c *gin.Context) {
	current, ok := h.service.Session().CurrentUser()
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("not authenticated", "UNAUTHORIZED"))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(current))
}

// State reports the polled auth state: loading flag and the last remote
// error string.
func (h *AuthHandler) State(c *gin.Context) {
	sess := h.service.Session()
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.SessionState{
		Authenticated: sess.Authenticated(),
		Loading:       sess.Loading(),
		Error:         sess.Err(),
	}))
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req httpdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), req.ProfilePatch)
	if err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), "REQUEST_FAILED"))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(updated))
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req httpdto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	if err := h.service.ResetPasswordRequest(c.Request.Context(), req.Email); err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), "REQUEST_FAILED"))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req httpdto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	if err := h.service.UpdatePassword(c.Request.Context(), req.NewPassword); err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), "REQUEST_FAILED"))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	if err := h.service.DeleteAccount(c.Request.Context()); err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), "REQUEST_FAILED"))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}
