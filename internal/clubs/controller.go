package clubs

import (
	"errors"
	"net/http"

	"clubly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
	job     *TierJob
}

func NewController(service Service, job *TierJob) *Controller {
	return &Controller{service: service, job: job}
}

// ListClubs godoc
// @Summary      Discover clubs
// @Tags         clubs
// @Produce      json
// @Param        city        query  string  false  "City"
// @Param        search      query  string  false  "Name or address"
// @Param        price_tier  query  string  false  "LOW, MEDIUM, HIGH or LUXURY"
// @Param        min_rating  query  number  false  "Minimum rating"
// @Param        page        query  int     false  "Page"
// @Param        limit       query  int     false  "Page size"
// @Success      200  {object}  response.StandardApiResponse
// @Failure      400  {object}  response.StandardApiResponse
// @Router       /discovery/clubs [get]
func (ctrl *Controller) ListClubs(c *gin.Context) {
	var query ClubListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	clubs, err := ctrl.service.ListClubs(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, ErrInvalidQuery) {
			response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
			return
		}
		response.RespondServerError(c, "Failed to retrieve clubs", nil, err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Clubs retrieved successfully", clubs, nil)
}

// GetClub godoc
// @Summary      Club detail
// @Tags         clubs
// @Produce      json
// @Param        id   path  string  true  "Club ID"
// @Success      200  {object}  response.StandardApiResponse
// @Failure      404  {object}  response.StandardApiResponse
// @Router       /discovery/clubs/{id} [get]
func (ctrl *Controller) GetClub(c *gin.Context) {
	clubID, ok := parseClubID(c)
	if !ok {
		return
	}

	club, err := ctrl.service.GetClub(c.Request.Context(), clubID)
	if err != nil {
		respondClubError(c, err, "Failed to retrieve club")
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Club retrieved successfully", club, nil)
}

// GetPriceTier godoc
// @Summary      Club price tier
// @Description  Effective tier with its provenance: declared by the owner or computed from event prices
// @Tags         clubs
// @Produce      json
// @Param        id   path  string  true  "Club ID"
// @Success      200  {object}  response.StandardApiResponse
// @Failure      404  {object}  response.StandardApiResponse
// @Router       /discovery/clubs/{id}/price-tier [get]
func (ctrl *Controller) GetPriceTier(c *gin.Context) {
	clubID, ok := parseClubID(c)
	if !ok {
		return
	}

	tier, err := ctrl.service.GetPriceTier(c.Request.Context(), clubID)
	if err != nil {
		respondClubError(c, err, "Failed to retrieve price tier")
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Price tier retrieved successfully", tier, nil)
}

// RecomputePriceTier godoc
// @Summary      Recompute a club price tier
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Club ID"
// @Success      200  {object}  response.StandardApiResponse
// @Failure      404  {object}  response.StandardApiResponse
// @Router       /admin/clubs/{id}/price-tier/recompute [post]
func (ctrl *Controller) RecomputePriceTier(c *gin.Context) {
	clubID, ok := parseClubID(c)
	if !ok {
		return
	}

	tier, err := ctrl.service.RecomputePriceTier(c.Request.Context(), clubID)
	if err != nil {
		respondClubError(c, err, "Failed to recompute price tier")
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Price tier recomputed successfully", tier, nil)
}

// RecomputeAll godoc
// @Summary      Recompute every club price tier
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.StandardApiResponse
// @Router       /admin/clubs/price-tier/recompute [post]
func (ctrl *Controller) RecomputeAll(c *gin.Context) {
	summary, err := ctrl.service.RecomputeAll(c.Request.Context())
	if err != nil {
		response.RespondServerError(c, "Failed to recompute price tiers", summary, err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Price tiers recomputed successfully", summary, nil)
}

// GetJobStatus godoc
// @Summary      Price tier job status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.StandardApiResponse
// @Router       /admin/clubs/price-tier/job [get]
func (ctrl *Controller) GetJobStatus(c *gin.Context) {
	if ctrl.job == nil {
		response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Price tier job disabled", gin.H{"status": "disabled"}, nil)
		return
	}
	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Price tier job status", ctrl.job.Status(), nil)
}

func parseClubID(c *gin.Context) (uuid.UUID, bool) {
	clubID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid club ID", nil, err.Error())
		return uuid.Nil, false
	}
	return clubID, true
}

func respondClubError(c *gin.Context, err error, message string) {
	if errors.Is(err, ErrClubNotFound) {
		response.RespondJSON(c, response.StatusError, http.StatusNotFound, ErrClubNotFound.Error(), nil, nil)
		return
	}
	response.RespondServerError(c, message, nil, err)
}
