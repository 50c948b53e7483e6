package sales

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clubly/internal/availability"
	"clubly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestControllerGetEventSales(t *testing.T) {
	gin.SetMode(gin.TestMode)

	eventID := uuid.New()
	broken := uuid.New()
	svc := new(MockService)
	svc.On("GetEventSales", mock.Anything, eventID).Return(&EventSalesResponse{
		EventID:   eventID.String(),
		UnitsSold: availability.SalesState{"General": 3},
	}, nil)
	svc.On("GetEventSales", mock.Anything, broken).Return(nil, errors.New("db down"))

	auth := func(c *gin.Context) {
		if role := c.GetHeader("X-Role"); role != "" {
			c.Set(middleware.ContextUserRole, role)
		}
		c.Next()
	}

	r := gin.New()
	SetupSalesRoutes(r.Group("/api/v1"), NewController(svc), auth)

	tests := []struct {
		name   string
		id     string
		role   string
		status int
	}{
		{"admin", eventID.String(), middleware.RoleAdmin, http.StatusOK},
		{"anonymous", eventID.String(), "", http.StatusUnauthorized},
		{"regular user", eventID.String(), "user", http.StatusForbidden},
		{"bad id", "abc", middleware.RoleAdmin, http.StatusBadRequest},
		{"storage failure", broken.String(), middleware.RoleAdmin, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/discovery/events/"+tt.id+"/sales", nil)
			if tt.role != "" {
				req.Header.Set("X-Role", tt.role)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
