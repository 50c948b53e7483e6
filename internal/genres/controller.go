package genres

import (
	"errors"
	"net/http"

	"clubly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	GetActiveGenres(c *gin.Context)
	GetGenreBySlug(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// GetActiveGenres godoc
// @Summary      List genres
// @Description  Active genres with the number of upcoming events for filter UIs
// @Tags         genres
// @Produce      json
// @Success      200  {object}  response.StandardApiResponse
// @Router       /discovery/genres [get]
func (ctrl *controller) GetActiveGenres(c *gin.Context) {
	genres, err := ctrl.service.GetActiveGenres(c.Request.Context())
	if err != nil {
		response.RespondServerError(c, "Failed to retrieve genres", nil, err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Genres retrieved successfully", genres, nil)
}

// GetGenreBySlug godoc
// @Summary      Get genre
// @Tags         genres
// @Produce      json
// @Param        slug  path  string  true  "Genre slug"
// @Success      200  {object}  response.StandardApiResponse
// @Failure      404  {object}  response.StandardApiResponse
// @Router       /discovery/genres/{slug} [get]
func (ctrl *controller) GetGenreBySlug(c *gin.Context) {
	genre, err := ctrl.service.GetGenreBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrGenreNotFound) {
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondServerError(c, "Failed to retrieve genre", nil, err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Genre retrieved successfully", genre, nil)
}
