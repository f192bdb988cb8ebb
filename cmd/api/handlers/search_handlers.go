package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"creative-radar/cmd/api/dto"
	"creative-radar/cmd/api/services"
)

// SearchHandler godoc
// @Summary      Run a creative search
// @Description  Expand the brief into per-platform queries, search every enabled platform, score and persist the results
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SearchRequestDTO  true  "Creative brief"
// @Success      200   {object}  dto.SearchResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /search [post]
func SearchHandler(svc *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.SearchRequestDTO
		if !bindJSON(c, &body) {
			return
		}
		platforms, err := services.ParsePlatforms(body.Platforms)
		if err != nil {
			respondError(c, err, "Search failed")
			return
		}

		resp, err := svc.Search(c.Request.Context(), services.SearchInput{
			Brief:     body.Brief,
			Platforms: platforms,
			Options:   body.Options,
		})
		if err != nil {
			respondError(c, err, "Search failed")
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// ListSearchesHandler godoc
// @Summary      Recent searches
// @Tags         search
// @Param        limit  query  int  false  "Max records (<=100, default 20)"
// @Produce      json
// @Success      200  {array}   dto.SearchHistoryItemDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /search [get]
func ListSearchesHandler(svc *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		searches, err := svc.History(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err, "Failed to fetch searches")
			return
		}
		c.JSON(http.StatusOK, searches)
	}
}

// GetSearchHandler godoc
// @Summary      Get a search with its results
// @Tags         search
// @Param        id   path  string  true  "Search ID"
// @Produce      json
// @Success      200  {object}  dto.SearchDetailDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /search/{id} [get]
func GetSearchHandler(svc *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, "Failed to fetch search")
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

// DeleteSearchHandler godoc
// @Summary      Delete a search and its results
// @Tags         search
// @Param        id   path  string  true  "Search ID"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /search/{id} [delete]
func DeleteSearchHandler(svc *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err, "Failed to delete search")
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "deleted"})
	}
}
