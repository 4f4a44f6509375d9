package handler

import (
	"net/http"
	"time"

	"github.com/Predaotor/AI-content-Generator/internal/middleware"
	"github.com/Predaotor/AI-content-Generator/internal/models"
	"github.com/Predaotor/AI-content-Generator/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SaveHandler persists outputs the user chose to keep. Saving is an
// explicit action and never charges quota.
type SaveHandler struct {
	db *gorm.DB
}

// NewSaveHandler wires the database handle.
func NewSaveHandler(db *gorm.DB) *SaveHandler {
	return &SaveHandler{db: db}
}

type saveOutputReq struct {
	TemplateType string `json:"template_type" binding:"required"`
	Content      string `json:"content" binding:"required"`
}

func (h *SaveHandler) SaveOutput(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var req saveOutputReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if err := util.ValidateTemplateType(req.TemplateType); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	output := models.SavedOutput{
		UserID:       user.ID,
		TemplateType: req.TemplateType,
		Content:      req.Content,
		CreatedAt:    time.Now(),
	}
	if err := h.db.Create(&output).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save output")
		return
	}

	util.Success(c, util.Response{
		"output": gin.H{
			"id":            output.ID,
			"template_type": output.TemplateType,
			"content":       output.Content,
			"created_at":    output.CreatedAt,
		},
	})
}
