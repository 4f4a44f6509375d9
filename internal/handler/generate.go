package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Predaotor/AI-content-Generator/internal/service"
	"github.com/Predaotor/AI-content-Generator/internal/util"

	"github.com/gin-gonic/gin"
)

// GenerateHandler serves content generation. Every request goes through
// the admission gate, which owns the token verification and quota
// enforcement; these routes are therefore not behind AuthMiddleware.
type GenerateHandler struct {
	gate *service.Gate
}

// NewGenerateHandler wires the admission gate.
func NewGenerateHandler(gate *service.Gate) *GenerateHandler {
	return &GenerateHandler{gate: gate}
}

type templateReq struct {
	TemplateType string `json:"template_type" binding:"required"`
	Details      string `json:"details" binding:"required"`
}

func (h *GenerateHandler) GenerateTemplate(c *gin.Context) {
	var req templateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if err := util.ValidateTemplateType(req.TemplateType); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateDetails(req.Details); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	content, err := h.gate.AdmitAndGenerate(c.Request.Context(), bearerToken(c), req.TemplateType, req.Details)
	if err != nil {
		respondGateError(c, err)
		return
	}

	util.Success(c, util.Response{
		"generated_template": content,
	})
}

type imageReq struct {
	Prompt string `json:"prompt" binding:"required"`
}

func (h *GenerateHandler) GenerateImage(c *gin.Context) {
	var req imageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if err := util.ValidateDetails(req.Prompt); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	url, err := h.gate.AdmitAndGenerate(c.Request.Context(), bearerToken(c), "image", req.Prompt)
	if err != nil {
		respondGateError(c, err)
		return
	}

	util.Success(c, util.Response{
		"image_url": url,
	})
}

// respondGateError maps each admission failure to its stable status and
// business code.
func respondGateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidToken):
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid or expired token, please log in again")
	case errors.Is(err, service.ErrUserInactive):
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "account is inactive")
	case errors.Is(err, service.ErrQuotaExceeded):
		util.Error(c, http.StatusTooManyRequests, util.CodeQuotaExceeded, "daily token quota exceeded")
	case errors.Is(err, service.ErrGenerationFailed):
		util.Error(c, http.StatusBadGateway, util.CodeUpstreamFailed, "content generation failed")
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error")
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
