package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"creative-radar/cmd/api/dto"
	"creative-radar/config"
	"creative-radar/pipeline"
	"creative-radar/repositories"
)

// respondError 는 도메인 에러를 HTTP 상태와 {error, details} 본문으로 변환한다.
func respondError(c *gin.Context, err error, failure string) {
	var verr *pipeline.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: verr.Reason, Details: verr.Error()})
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "not found", Details: err.Error()})
	case errors.Is(err, repositories.ErrDuplicate):
		c.JSON(http.StatusConflict, dto.ErrorResponseDTO{Error: "already exists", Details: err.Error()})
	default:
		config.ErrorWithFields(failure, config.Fields{
			"path":  c.Request.URL.Path,
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: failure, Details: err.Error()})
	}
}

// bindJSON 은 본문 디코딩 실패를 400 으로 응답하고 false 를 반환한다.
func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body", Details: err.Error()})
		return false
	}
	return true
}

// HealthHandler godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  object{status=string}
// @Router       /health [get]
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
