package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the data payload of a successful reply.
type Response map[string]interface{}

// Business error codes. Each failure kind keeps a stable code so the
// frontend can branch on it (e.g. quota exceeded shows upgrade messaging,
// auth failures redirect to login).
const (
	CodeOK             = 0
	CodeInvalidParam   = 40001
	CodeAuth           = 40101
	CodeFederatedAuth  = 40102
	CodeForbidden      = 40301
	CodeNotFound       = 40401
	CodeQuotaExceeded  = 42901
	CodeServerErr      = 50001
	CodeUpstreamFailed = 50201
)

// Success writes the uniform success envelope.
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error writes the uniform error envelope.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}
