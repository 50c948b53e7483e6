package events

import (
	"errors"
	"net/http"

	"clubly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	ListEvents(c *gin.Context)
	GetEvent(c *gin.Context)
	GetAvailability(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// ListEvents godoc
// @Summary      Discover events
// @Description  Published events annotated with availability, price label and club price tier, ranked by club rating with genre relevance breaking near ties
// @Tags         events
// @Produce      json
// @Param        city           query  string  false  "City"
// @Param        club_id        query  string  false  "Club ID"
// @Param        date_from      query  string  false  "YYYY-MM-DD, defaults to today"
// @Param        date_to        query  string  false  "YYYY-MM-DD, inclusive"
// @Param        genres         query  []string  false  "Genre filter, comma separated or repeated"
// @Param        max_price      query  number  false  "Maximum cheapest available price"
// @Param        price_tier     query  string  false  "LOW, MEDIUM, HIGH or LUXURY"
// @Param        hide_sold_out  query  bool    false  "Drop sold out events"
// @Param        search         query  string  false  "Free text"
// @Param        page           query  int     false  "Page"
// @Param        limit          query  int     false  "Page size"
// @Success      200  {object}  response.StandardApiResponse
// @Failure      400  {object}  response.StandardApiResponse
// @Router       /discovery/events [get]
func (ctrl *controller) ListEvents(c *gin.Context) {
	var query EventListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	events, err := ctrl.service.ListEvents(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, ErrInvalidQuery) {
			response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
			return
		}
		response.RespondServerError(c, "Failed to retrieve events", nil, err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Events retrieved successfully", events, nil)
}

// GetEvent godoc
// @Summary      Event detail
// @Tags         events
// @Produce      json
// @Param        id   path  string  true  "Event ID"
// @Success      200  {object}  response.StandardApiResponse
// @Failure      404  {object}  response.StandardApiResponse
// @Router       /discovery/events/{id} [get]
func (ctrl *controller) GetEvent(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	event, err := ctrl.service.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		respondEventError(c, err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Event retrieved successfully", event, nil)
}

// GetAvailability godoc
// @Summary      Event availability
// @Description  Sold out state per tier and for the event, plus the cheapest open bracket
// @Tags         events
// @Produce      json
// @Param        id   path  string  true  "Event ID"
// @Success      200  {object}  response.StandardApiResponse
// @Failure      404  {object}  response.StandardApiResponse
// @Router       /discovery/events/{id}/availability [get]
func (ctrl *controller) GetAvailability(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	availability, err := ctrl.service.GetAvailability(c.Request.Context(), eventID)
	if err != nil {
		respondEventError(c, err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Availability retrieved successfully", availability, nil)
}

func parseEventID(c *gin.Context) (uuid.UUID, bool) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return uuid.Nil, false
	}
	return eventID, true
}

func respondEventError(c *gin.Context, err error) {
	if errors.Is(err, ErrEventNotFound) {
		response.RespondJSON(c, response.StatusError, http.StatusNotFound, ErrEventNotFound.Error(), nil, nil)
		return
	}
	response.RespondServerError(c, "Failed to retrieve event", nil, err)
}
