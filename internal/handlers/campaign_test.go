package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/streamseed/streamseed-api/internal/constants"
	"github.com/streamseed/streamseed-api/internal/database"
	"github.com/streamseed/streamseed-api/internal/middleware"
	"github.com/streamseed/streamseed-api/internal/models"
	"github.com/streamseed/streamseed-api/internal/repository"
	"github.com/streamseed/streamseed-api/internal/services"
)

// CampaignHandlerTestSuite defines the test suite for CampaignHandler
type CampaignHandlerTestSuite struct {
	suite.Suite
	db         *gorm.DB
	handler    *CampaignHandler
	today      time.Time
	authUserID uint64
	router     *gin.Engine
}

// SetupTest runs before each test
func (suite *CampaignHandlerTestSuite) SetupTest() {
	var err error

	gin.SetMode(gin.TestMode)

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Campaign{},
		&models.Creator{},
		&models.CampaignInvite{},
		&models.CampaignMetric{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)
	suite.authUserID = 0

	campaignRepo := repository.NewCampaignRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)

	suite.today = time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	campaignService := services.NewCampaignService(campaignRepo, projectRepo, nil, func() time.Time {
		return suite.today
	})
	suite.handler = NewCampaignHandler(campaignService)

	suite.router = gin.New()
	suite.router.Use(func(c *gin.Context) {
		if suite.authUserID != 0 {
			c.Set(constants.ContextKeyUserID, suite.authUserID)
		}
	})
	suite.router.POST("/api/campaigns", suite.handler.Create)
	suite.router.GET("/api/campaigns", suite.handler.List)
	suite.router.POST("/api/campaigns/generate", suite.handler.Generate)
	suite.router.GET("/api/campaigns/:id", middleware.RequireCampaignAccess(), suite.handler.Get)
	suite.router.PATCH("/api/campaigns/:id", middleware.RequireCampaignAccess(), suite.handler.Update)
	suite.router.DELETE("/api/campaigns/:id", middleware.RequireCampaignAccess(), suite.handler.Delete)
}

// TearDownTest runs after each test
func (suite *CampaignHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *CampaignHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		FirstName:    "Test",
		LastName:     "User",
		AuthProvider: models.AuthProviderLocal,
		IsActive:     true,
	}
	suite.db.Create(user)
	return user
}

func (suite *CampaignHandlerTestSuite) createTestProject(userID uint64, name string) *models.Project {
	project := &models.Project{UserID: userID, Name: name}
	suite.db.Create(project)
	return project
}

func (suite *CampaignHandlerTestSuite) createTestCampaign(projectID uint64, name string, start, end time.Time) *models.Campaign {
	campaign := &models.Campaign{
		ProjectID: projectID,
		Name:      name,
		StartDate: start,
		EndDate:   end,
	}
	suite.db.Create(campaign)
	return campaign
}

func (suite *CampaignHandlerTestSuite) request(method, url string, payload interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *CampaignHandlerTestSuite) TestCreate_Success() {
	user := suite.createTestUser("owner@example.com")
	suite.authUserID = user.ID
	project := suite.createTestProject(user.ID, "Spring Launch")

	w := suite.request("POST", "/api/campaigns", map[string]interface{}{
		"project_id": project.ID,
		"name":       "Teaser",
		"start_date": "2024-01-01",
		"end_date":   "2024-03-01",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response struct {
		Campaign struct {
			Name        string `json:"name"`
			ProjectName string `json:"project_name"`
			StartDate   string `json:"start_date"`
			EndDate     string `json:"end_date"`
			Status      string `json:"status"`
		} `json:"campaign"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Teaser", response.Campaign.Name)
	assert.Equal(suite.T(), "Spring Launch", response.Campaign.ProjectName)
	assert.Equal(suite.T(), "2024-01-01", response.Campaign.StartDate)
	assert.Equal(suite.T(), "2024-03-01", response.Campaign.EndDate)
	assert.Equal(suite.T(), "Live", response.Campaign.Status)
}

func (suite *CampaignHandlerTestSuite) TestCreate_InvalidDateRange() {
	user := suite.createTestUser("owner@example.com")
	suite.authUserID = user.ID
	project := suite.createTestProject(user.ID, "Spring Launch")

	w := suite.request("POST", "/api/campaigns", map[string]interface{}{
		"project_id": project.ID,
		"name":       "Backwards",
		"start_date": "2024-03-01",
		"end_date":   "2024-01-01",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "INVALID_DATE_RANGE", response["code"])

	var count int64
	suite.db.Model(&models.Campaign{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *CampaignHandlerTestSuite) TestCreate_MalformedDate() {
	user := suite.createTestUser("owner@example.com")
	suite.authUserID = user.ID
	project := suite.createTestProject(user.ID, "Spring Launch")

	w := suite.request("POST", "/api/campaigns", map[string]interface{}{
		"project_id": project.ID,
		"name":       "Bad Date",
		"start_date": "01/01/2024",
		"end_date":   "2024-03-01",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "INVALID_INPUT", response["code"])
}

func (suite *CampaignHandlerTestSuite) TestCreate_ForeignProject() {
	owner := suite.createTestUser("owner@example.com")
	intruder := suite.createTestUser("intruder@example.com")
	project := suite.createTestProject(owner.ID, "Private Project")

	suite.authUserID = intruder.ID

	w := suite.request("POST", "/api/campaigns", map[string]interface{}{
		"project_id": project.ID,
		"name":       "Sneaky",
		"start_date": "2024-01-01",
		"end_date":   "2024-03-01",
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *CampaignHandlerTestSuite) TestList_StatusFilterAndPagination() {
	user := suite.createTestUser("owner@example.com")
	suite.authUserID = user.ID
	project := suite.createTestProject(user.ID, "Spring Launch")
	suite.createTestCampaign(project.ID, "Done", time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC))
	suite.createTestCampaign(project.ID, "Running", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	w := suite.request("GET", "/api/campaigns?status=Live", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Campaigns []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"campaigns"`
		Pagination struct {
			Page  int   `json:"page"`
			Limit int   `json:"limit"`
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Campaigns, 1)
	assert.Equal(suite.T(), "Running", response.Campaigns[0].Name)
	assert.Equal(suite.T(), "Live", response.Campaigns[0].Status)
	assert.Equal(suite.T(), int64(1), response.Pagination.Total)
}

func (suite *CampaignHandlerTestSuite) TestList_UnknownStatus() {
	user := suite.createTestUser("owner@example.com")
	suite.authUserID = user.ID

	w := suite.request("GET", "/api/campaigns?status=Paused", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// Oversized page limits clamp instead of erroring.
func (suite *CampaignHandlerTestSuite) TestList_LimitClamped() {
	user := suite.createTestUser("owner@example.com")
	suite.authUserID = user.ID

	w := suite.request("GET", "/api/campaigns?limit=500", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Pagination struct {
			Limit int `json:"limit"`
		} `json:"pagination"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), constants.MaxPageSize, response.Pagination.Limit)
}

func (suite *CampaignHandlerTestSuite) TestGet_CrossUser() {
	owner := suite.createTestUser("owner@example.com")
	intruder := suite.createTestUser("intruder@example.com")
	project := suite.createTestProject(owner.ID, "Private Project")
	campaign := suite.createTestCampaign(project.ID, "Hidden", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	suite.authUserID = intruder.ID

	w := suite.request("GET", fmt.Sprintf("/api/campaigns/%d", campaign.ID), nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "NOT_FOUND", response["code"])
}

func (suite *CampaignHandlerTestSuite) TestUpdate_MergedDateValidation() {
	user := suite.createTestUser("owner@example.com")
	suite.authUserID = user.ID
	project := suite.createTestProject(user.ID, "Spring Launch")
	campaign := suite.createTestCampaign(project.ID, "Teaser", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	w := suite.request("PATCH", fmt.Sprintf("/api/campaigns/%d", campaign.ID), map[string]string{
		"start_date": "2024-04-01",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "INVALID_DATE_RANGE", response["code"])

	var reloaded models.Campaign
	suite.Require().NoError(suite.db.First(&reloaded, campaign.ID).Error)
	assert.Equal(suite.T(), "2024-01-01", reloaded.StartDate.Format("2006-01-02"))
}

func (suite *CampaignHandlerTestSuite) TestUpdate_DescriptionOnly() {
	user := suite.createTestUser("owner@example.com")
	suite.authUserID = user.ID
	project := suite.createTestProject(user.ID, "Spring Launch")
	campaign := suite.createTestCampaign(project.ID, "Teaser", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	w := suite.request("PATCH", fmt.Sprintf("/api/campaigns/%d", campaign.ID), map[string]string{
		"description": "fresh copy",
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Campaign struct {
			Description string `json:"description"`
			StartDate   string `json:"start_date"`
			EndDate     string `json:"end_date"`
		} `json:"campaign"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "fresh copy", response.Campaign.Description)
	assert.Equal(suite.T(), "2024-01-01", response.Campaign.StartDate)
	assert.Equal(suite.T(), "2024-03-01", response.Campaign.EndDate)
}

func (suite *CampaignHandlerTestSuite) TestDelete_Success() {
	user := suite.createTestUser("owner@example.com")
	suite.authUserID = user.ID
	project := suite.createTestProject(user.ID, "Spring Launch")
	campaign := suite.createTestCampaign(project.ID, "Doomed", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	w := suite.request("DELETE", fmt.Sprintf("/api/campaigns/%d", campaign.ID), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Campaign{}).Where("id = ?", campaign.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *CampaignHandlerTestSuite) TestGenerate_NotConfigured() {
	user := suite.createTestUser("owner@example.com")
	suite.authUserID = user.ID

	w := suite.request("POST", "/api/campaigns/generate", map[string]string{
		"brief": "spring sneaker launch",
	})

	assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)
}

func TestCampaignHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CampaignHandlerTestSuite))
}
