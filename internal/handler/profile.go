package handler

import (
	"net/http"

	"github.com/Predaotor/AI-content-Generator/internal/middleware"
	"github.com/Predaotor/AI-content-Generator/internal/models"
	"github.com/Predaotor/AI-content-Generator/internal/service"
	"github.com/Predaotor/AI-content-Generator/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProfileHandler serves the account overview: identity, today's token
// usage and the saved outputs.
type ProfileHandler struct {
	db     *gorm.DB
	ledger *service.Ledger
}

// NewProfileHandler wires the database handle and the usage ledger.
func NewProfileHandler(db *gorm.DB, ledger *service.Ledger) *ProfileHandler {
	return &ProfileHandler{db: db, ledger: ledger}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	tokensUsed, err := h.ledger.TokensUsedToday(c.Request.Context(), user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load token usage")
		return
	}

	var outputs []models.SavedOutput
	if err := h.db.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&outputs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load saved outputs")
		return
	}

	outputList := make([]gin.H, 0, len(outputs))
	for _, output := range outputs {
		outputList = append(outputList, gin.H{
			"id":            output.ID,
			"template_type": output.TemplateType,
			"content":       output.Content,
			"created_at":    output.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"username":      user.Username,
		"email":         user.Email,
		"picture":       user.Picture,
		"tokens_used":   tokensUsed,
		"saved_outputs": outputList,
	})
}
