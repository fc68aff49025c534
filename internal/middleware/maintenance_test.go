package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"collablearn/internal/mocks"
	"collablearn/internal/models"
)

func setupMaintenanceRouter(settingsRepo *mocks.SettingsRepositoryMock, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userRole", role)
		c.Next()
	})
	r.Use(MaintenanceGate(settingsRepo))
	r.GET("/anything", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestMaintenanceGateBlocksUsers(t *testing.T) {
	settingsRepo := new(mocks.SettingsRepositoryMock)
	settingsRepo.On("GetSettings", mock.Anything).
		Return(models.Settings{MaintenanceMode: true}, nil).Once()
	router := setupMaintenanceRouter(settingsRepo, models.RoleUser)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMaintenanceGateAllowsAdmins(t *testing.T) {
	settingsRepo := new(mocks.SettingsRepositoryMock)
	settingsRepo.On("GetSettings", mock.Anything).
		Return(models.Settings{MaintenanceMode: true}, nil).Once()
	router := setupMaintenanceRouter(settingsRepo, models.RoleAdmin)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMaintenanceGateFailsOpen(t *testing.T) {
	settingsRepo := new(mocks.SettingsRepositoryMock)
	settingsRepo.On("GetSettings", mock.Anything).
		Return(models.Settings{}, assert.AnError).Once()
	router := setupMaintenanceRouter(settingsRepo, models.RoleUser)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMaintenanceGateOffLetsEveryoneThrough(t *testing.T) {
	settingsRepo := new(mocks.SettingsRepositoryMock)
	settingsRepo.On("GetSettings", mock.Anything).
		Return(models.Settings{}, nil).Once()
	router := setupMaintenanceRouter(settingsRepo, models.RoleUser)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
