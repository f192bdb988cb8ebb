package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"creative-radar/cmd/api/dto"
	"creative-radar/cmd/api/services"
)

// ListTemplatesHandler godoc
// @Summary      List brief templates
// @Tags         templates
// @Produce      json
// @Success      200  {array}  models.Template
// @Router       /templates [get]
func ListTemplatesHandler(svc *services.TemplateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		templates, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch templates")
			return
		}
		c.JSON(http.StatusOK, templates)
	}
}

// CreateTemplateHandler godoc
// @Summary      Create a brief template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTemplateRequestDTO  true  "Template"
// @Success      201   {object}  models.Template
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Router       /templates [post]
func CreateTemplateHandler(svc *services.TemplateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateTemplateRequestDTO
		if !bindJSON(c, &body) {
			return
		}
		tpl, err := svc.Create(c.Request.Context(), body)
		if err != nil {
			respondError(c, err, "Failed to create template")
			return
		}
		c.JSON(http.StatusCreated, tpl)
	}
}

// DeleteTemplateHandler godoc
// @Summary      Delete a brief template
// @Tags         templates
// @Param        id   path  string  true  "Template ID"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /templates/{id} [delete]
func DeleteTemplateHandler(svc *services.TemplateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err, "Failed to delete template")
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "deleted"})
	}
}
