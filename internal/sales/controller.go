package sales

import (
	"net/http"

	"clubly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetEventSales godoc
// @Summary      Raw sales counters of an event
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Event ID"
// @Success      200  {object}  response.StandardApiResponse
// @Router       /discovery/events/{id}/sales [get]
func (ctrl *Controller) GetEventSales(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	sales, err := ctrl.service.GetEventSales(c.Request.Context(), eventID)
	if err != nil {
		response.RespondServerError(c, "Failed to retrieve sales", nil, err)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Sales retrieved successfully", sales, nil)
}
