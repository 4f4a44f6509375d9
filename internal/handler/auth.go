package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Predaotor/AI-content-Generator/internal/service"
	"github.com/Predaotor/AI-content-Generator/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration and login (password and Google).
type AuthHandler struct {
	identity *service.Identity
}

// NewAuthHandler wires the identity verifier.
func NewAuthHandler(identity *service.Identity) *AuthHandler {
	return &AuthHandler{identity: identity}
}

type registerReq struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	if err := util.ValidateEmail(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateUsername(req.Username); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	user, err := h.identity.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateIdentity) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email or username already registered")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create user")
		return
	}

	util.Success(c, util.Response{
		"message": "User created successfully!",
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
		},
	})
}

type loginReq struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	identifier := strings.TrimSpace(req.Email)
	if identifier == "" {
		identifier = strings.TrimSpace(req.Username)
	}
	if identifier == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "either email or username must be provided")
		return
	}

	user, err := h.identity.Authenticate(c.Request.Context(), identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "incorrect email/username or password")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "login failed")
		return
	}

	token, err := h.identity.IssueSessionToken(user)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to issue token")
		return
	}

	util.Success(c, util.Response{
		"access_token": token,
		"token_type":   "bearer",
		"username":     user.Username,
	})
}

type googleLoginReq struct {
	IDToken string `json:"id_token" binding:"required"`
}

// GoogleLogin exchanges a verified Google ID token for a session token,
// creating the account on first sign-in.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req googleLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	user, err := h.identity.AuthenticateFederated(c.Request.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFederatedToken) {
			util.Error(c, http.StatusUnauthorized, util.CodeFederatedAuth, "could not validate Google token")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "login failed")
		return
	}

	token, err := h.identity.IssueSessionToken(user)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to issue token")
		return
	}

	util.Success(c, util.Response{
		"access_token": token,
		"token_type":   "bearer",
		"username":     user.Username,
	})
}
