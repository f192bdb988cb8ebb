package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"creative-radar/cmd/api/dto"
	"creative-radar/cmd/api/services"
)

// ListProjectsHandler godoc
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {array}   models.Project
// @Router       /projects [get]
func ListProjectsHandler(svc *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch projects")
			return
		}
		c.JSON(http.StatusOK, projects)
	}
}

// CreateProjectHandler godoc
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateProjectRequestDTO  true  "Project"
// @Success      201   {object}  models.Project
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Router       /projects [post]
func CreateProjectHandler(svc *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateProjectRequestDTO
		if !bindJSON(c, &body) {
			return
		}
		project, err := svc.Create(c.Request.Context(), body)
		if err != nil {
			respondError(c, err, "Failed to create project")
			return
		}
		c.JSON(http.StatusCreated, project)
	}
}

// GetProjectHandler godoc
// @Summary      Get a project with its items
// @Tags         projects
// @Param        id   path  string  true  "Project ID"
// @Produce      json
// @Success      200  {object}  dto.ProjectDetailDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /projects/{id} [get]
func GetProjectHandler(svc *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, "Failed to fetch project")
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

// UpdateProjectHandler godoc
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string                       true  "Project ID"
// @Param        body  body      dto.UpdateProjectRequestDTO  true  "Fields to change"
// @Success      200   {object}  models.Project
// @Failure      404   {object}  dto.ErrorResponseDTO
// @Router       /projects/{id} [put]
func UpdateProjectHandler(svc *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateProjectRequestDTO
		if !bindJSON(c, &body) {
			return
		}
		project, err := svc.Update(c.Request.Context(), c.Param("id"), body)
		if err != nil {
			respondError(c, err, "Failed to update project")
			return
		}
		c.JSON(http.StatusOK, project)
	}
}

// DeleteProjectHandler godoc
// @Summary      Delete a project
// @Tags         projects
// @Param        id   path  string  true  "Project ID"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /projects/{id} [delete]
func DeleteProjectHandler(svc *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err, "Failed to delete project")
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "deleted"})
	}
}

// AddProjectItemHandler godoc
// @Summary      Save a result to a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true  "Project ID"
// @Param        body  body      dto.AddProjectItemRequestDTO  true  "Result to save"
// @Success      201   {object}  models.ProjectItem
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      404   {object}  dto.ErrorResponseDTO
// @Failure      409   {object}  dto.ErrorResponseDTO
// @Router       /projects/{id}/items [post]
func AddProjectItemHandler(svc *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.AddProjectItemRequestDTO
		if !bindJSON(c, &body) {
			return
		}
		item, err := svc.AddItem(c.Request.Context(), c.Param("id"), body)
		if err != nil {
			respondError(c, err, "Failed to add item to project")
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// RemoveProjectItemHandler godoc
// @Summary      Remove a saved result from a project
// @Tags         projects
// @Param        id      path  string  true  "Project ID"
// @Param        itemId  path  string  true  "Item ID"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /projects/{id}/items/{itemId} [delete]
func RemoveProjectItemHandler(svc *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
			respondError(c, err, "Failed to remove item from project")
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "removed"})
	}
}
