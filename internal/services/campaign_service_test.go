package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/streamseed/streamseed-api/internal/models"
	"github.com/streamseed/streamseed-api/internal/repository"
	"github.com/streamseed/streamseed-api/internal/status"
)

// CampaignServiceTestSuite defines the test suite for CampaignService
type CampaignServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	today   time.Time
	service *CampaignService
}

// SetupTest runs before each test
func (suite *CampaignServiceTestSuite) SetupTest() {
	var err error

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

	campaignRepo := repository.NewCampaignRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)

	suite.today = date(2024, 2, 15)
	suite.service = NewCampaignService(campaignRepo, projectRepo, nil, func() time.Time {
		return suite.today
	})
}

// TearDownTest runs after each test
func (suite *CampaignServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *CampaignServiceTestSuite) createTestUser(email string) *models.User {
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

func (suite *CampaignServiceTestSuite) createTestProject(userID uint64, name string) *models.Project {
	project := &models.Project{
		UserID: userID,
		Name:   name,
	}
	suite.db.Create(project)
	return project
}

func (suite *CampaignServiceTestSuite) createTestCampaign(projectID uint64, name string, start, end time.Time) *models.Campaign {
	campaign := &models.Campaign{
		ProjectID: projectID,
		Name:      name,
		StartDate: start,
		EndDate:   end,
	}
	suite.db.Create(campaign)
	return campaign
}

func (suite *CampaignServiceTestSuite) TestCreateCampaign_Success() {
	user := suite.createTestUser("owner@example.com")
	project := suite.createTestProject(user.ID, "Spring Launch")

	campaign, err := suite.service.CreateCampaign(CreateCampaignInput{
		UserID:       user.ID,
		ProjectID:    project.ID,
		Name:         "Teaser",
		Description:  "Short teaser run",
		Requirements: "One post per week",
		StartDate:    date(2024, 1, 1),
		EndDate:      date(2024, 3, 1),
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Teaser", campaign.Name)
	assert.Equal(suite.T(), project.ID, campaign.ProjectID)
	assert.Equal(suite.T(), "Spring Launch", campaign.Project.Name)
	assert.Equal(suite.T(), status.CampaignLive,
		status.ForCampaign(campaign.StartDate, campaign.EndDate, suite.today))
}

// An inverted or zero-length window writes nothing.
func (suite *CampaignServiceTestSuite) TestCreateCampaign_InvalidDateRange() {
	user := suite.createTestUser("owner@example.com")
	project := suite.createTestProject(user.ID, "Spring Launch")

	for _, window := range []struct {
		start, end time.Time
	}{
		{date(2024, 3, 1), date(2024, 1, 1)},
		{date(2024, 1, 1), date(2024, 1, 1)},
	} {
		_, err := suite.service.CreateCampaign(CreateCampaignInput{
			UserID:    user.ID,
			ProjectID: project.ID,
			Name:      "Bad Window",
			StartDate: window.start,
			EndDate:   window.end,
		})
		assert.ErrorIs(suite.T(), err, ErrInvalidDateRange)
	}

	var count int64
	suite.db.Model(&models.Campaign{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *CampaignServiceTestSuite) TestCreateCampaign_ForeignProject() {
	owner := suite.createTestUser("owner@example.com")
	intruder := suite.createTestUser("intruder@example.com")
	project := suite.createTestProject(owner.ID, "Private Project")

	_, err := suite.service.CreateCampaign(CreateCampaignInput{
		UserID:    intruder.ID,
		ProjectID: project.ID,
		Name:      "Sneaky",
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 3, 1),
	})

	assert.ErrorIs(suite.T(), err, ErrProjectNotFound)
}

func (suite *CampaignServiceTestSuite) TestGetCampaign_CrossUser() {
	owner := suite.createTestUser("owner@example.com")
	intruder := suite.createTestUser("intruder@example.com")
	project := suite.createTestProject(owner.ID, "Private Project")
	campaign := suite.createTestCampaign(project.ID, "Hidden", date(2024, 1, 1), date(2024, 3, 1))

	_, err := suite.service.GetCampaign(intruder.ID, campaign.ID)

	assert.ErrorIs(suite.T(), err, ErrCampaignNotFound)
}

func (suite *CampaignServiceTestSuite) TestListCampaigns_StatusFilter() {
	user := suite.createTestUser("owner@example.com")
	project := suite.createTestProject(user.ID, "Spring Launch")
	suite.createTestCampaign(project.ID, "Done", date(2023, 10, 1), date(2023, 12, 1))
	suite.createTestCampaign(project.ID, "Running", date(2024, 2, 1), date(2024, 5, 1))
	suite.createTestCampaign(project.ID, "Upcoming", date(2024, 4, 1), date(2024, 6, 1))

	cases := []struct {
		filter status.CampaignStatus
		name   string
	}{
		{status.CampaignCompleted, "Done"},
		{status.CampaignLive, "Running"},
		{status.CampaignPending, "Upcoming"},
	}

	for _, tc := range cases {
		filter := tc.filter
		campaigns, total, err := suite.service.ListCampaigns(ListCampaignsInput{
			UserID: user.ID,
			Status: &filter,
		})
		suite.Require().NoError(err)
		assert.Equal(suite.T(), int64(1), total)
		suite.Require().Len(campaigns, 1)
		assert.Equal(suite.T(), tc.name, campaigns[0].Name)
	}
}

func (suite *CampaignServiceTestSuite) TestListCampaigns_ProjectFilterAndScope() {
	user := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	mine := suite.createTestProject(user.ID, "Mine")
	second := suite.createTestProject(user.ID, "Second")
	theirs := suite.createTestProject(other.ID, "Theirs")
	suite.createTestCampaign(mine.ID, "A", date(2024, 1, 1), date(2024, 3, 1))
	suite.createTestCampaign(second.ID, "B", date(2024, 1, 1), date(2024, 3, 1))
	suite.createTestCampaign(theirs.ID, "C", date(2024, 1, 1), date(2024, 3, 1))

	campaigns, total, err := suite.service.ListCampaigns(ListCampaignsInput{UserID: user.ID})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(2), total)
	assert.Len(suite.T(), campaigns, 2)

	projectID := mine.ID
	campaigns, total, err = suite.service.ListCampaigns(ListCampaignsInput{
		UserID:    user.ID,
		ProjectID: &projectID,
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(campaigns, 1)
	assert.Equal(suite.T(), "A", campaigns[0].Name)
}

func (suite *CampaignServiceTestSuite) TestUpdateCampaign_DescriptionOnly() {
	user := suite.createTestUser("owner@example.com")
	project := suite.createTestProject(user.ID, "Spring Launch")
	campaign := suite.createTestCampaign(project.ID, "Teaser", date(2024, 1, 1), date(2024, 3, 1))

	description := "Updated copy"
	updated, err := suite.service.UpdateCampaign(user.ID, campaign.ID, UpdateCampaignInput{
		Description: &description,
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Updated copy", updated.Description)
	assert.Equal(suite.T(), "Teaser", updated.Name)
	assert.Equal(suite.T(), "2024-01-01", updated.StartDate.Format("2006-01-02"))
	assert.Equal(suite.T(), "2024-03-01", updated.EndDate.Format("2006-01-02"))
}

// The date invariant is checked against the merged result: moving only the
// start past the stored end must fail and leave the row untouched.
func (suite *CampaignServiceTestSuite) TestUpdateCampaign_MergedDatesRejected() {
	user := suite.createTestUser("owner@example.com")
	project := suite.createTestProject(user.ID, "Spring Launch")
	campaign := suite.createTestCampaign(project.ID, "Teaser", date(2024, 1, 1), date(2024, 3, 1))

	badStart := date(2024, 4, 1)
	name := "Should Not Stick"
	_, err := suite.service.UpdateCampaign(user.ID, campaign.ID, UpdateCampaignInput{
		Name:      &name,
		StartDate: &badStart,
	})

	assert.ErrorIs(suite.T(), err, ErrInvalidDateRange)

	var reloaded models.Campaign
	suite.Require().NoError(suite.db.First(&reloaded, campaign.ID).Error)
	assert.Equal(suite.T(), "Teaser", reloaded.Name)
	assert.Equal(suite.T(), "2024-01-01", reloaded.StartDate.Format("2006-01-02"))
	assert.Equal(suite.T(), "2024-03-01", reloaded.EndDate.Format("2006-01-02"))
}

func (suite *CampaignServiceTestSuite) TestUpdateCampaign_ReassignProject() {
	user := suite.createTestUser("owner@example.com")
	first := suite.createTestProject(user.ID, "First")
	second := suite.createTestProject(user.ID, "Second")
	campaign := suite.createTestCampaign(first.ID, "Mover", date(2024, 1, 1), date(2024, 3, 1))

	updated, err := suite.service.UpdateCampaign(user.ID, campaign.ID, UpdateCampaignInput{
		ProjectID: &second.ID,
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), second.ID, updated.ProjectID)
	assert.Equal(suite.T(), "Second", updated.Project.Name)
}

// Reassigning onto a project the user does not own reads as a missing
// project, and the campaign stays where it was.
func (suite *CampaignServiceTestSuite) TestUpdateCampaign_ReassignToForeignProject() {
	user := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	mine := suite.createTestProject(user.ID, "Mine")
	theirs := suite.createTestProject(other.ID, "Theirs")
	campaign := suite.createTestCampaign(mine.ID, "Mover", date(2024, 1, 1), date(2024, 3, 1))

	_, err := suite.service.UpdateCampaign(user.ID, campaign.ID, UpdateCampaignInput{
		ProjectID: &theirs.ID,
	})

	assert.ErrorIs(suite.T(), err, ErrProjectNotFound)

	var reloaded models.Campaign
	suite.Require().NoError(suite.db.First(&reloaded, campaign.ID).Error)
	assert.Equal(suite.T(), mine.ID, reloaded.ProjectID)
}

func (suite *CampaignServiceTestSuite) TestUpdateCampaign_CrossUser() {
	owner := suite.createTestUser("owner@example.com")
	intruder := suite.createTestUser("intruder@example.com")
	project := suite.createTestProject(owner.ID, "Private Project")
	campaign := suite.createTestCampaign(project.ID, "Hidden", date(2024, 1, 1), date(2024, 3, 1))

	name := "Hijacked"
	_, err := suite.service.UpdateCampaign(intruder.ID, campaign.ID, UpdateCampaignInput{Name: &name})

	assert.ErrorIs(suite.T(), err, ErrCampaignNotFound)
}

func (suite *CampaignServiceTestSuite) TestDeleteCampaign_Cascades() {
	user := suite.createTestUser("owner@example.com")
	project := suite.createTestProject(user.ID, "Spring Launch")
	campaign := suite.createTestCampaign(project.ID, "Doomed", date(2024, 1, 1), date(2024, 3, 1))

	creator := &models.Creator{UserID: user.ID}
	suite.Require().NoError(suite.db.Create(creator).Error)
	suite.Require().NoError(suite.db.Create(&models.CampaignInvite{
		CampaignID: campaign.ID,
		CreatorID:  creator.ID,
		Status:     models.InviteStatusInvited,
	}).Error)
	suite.Require().NoError(suite.db.Create(&models.CampaignMetric{
		CampaignID: campaign.ID,
		MetricType: "views",
		Value:      42,
		RecordedAt: suite.today,
	}).Error)

	suite.Require().NoError(suite.service.DeleteCampaign(user.ID, campaign.ID))

	var campaignCount, inviteCount, metricCount int64
	suite.db.Model(&models.Campaign{}).Where("id = ?", campaign.ID).Count(&campaignCount)
	suite.db.Model(&models.CampaignInvite{}).Where("campaign_id = ?", campaign.ID).Count(&inviteCount)
	suite.db.Model(&models.CampaignMetric{}).Where("campaign_id = ?", campaign.ID).Count(&metricCount)

	assert.Equal(suite.T(), int64(0), campaignCount)
	assert.Equal(suite.T(), int64(0), inviteCount)
	assert.Equal(suite.T(), int64(0), metricCount)
}

func (suite *CampaignServiceTestSuite) TestDeleteCampaign_CrossUser() {
	owner := suite.createTestUser("owner@example.com")
	intruder := suite.createTestUser("intruder@example.com")
	project := suite.createTestProject(owner.ID, "Private Project")
	campaign := suite.createTestCampaign(project.ID, "Hidden", date(2024, 1, 1), date(2024, 3, 1))

	err := suite.service.DeleteCampaign(intruder.ID, campaign.ID)
	assert.ErrorIs(suite.T(), err, ErrCampaignNotFound)

	var count int64
	suite.db.Model(&models.Campaign{}).Where("id = ?", campaign.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *CampaignServiceTestSuite) TestGenerateDrafts_NotConfigured() {
	_, err := suite.service.GenerateDrafts(context.Background(), GenerateDraftsInput{Brief: "spring launch"})
	assert.ErrorIs(suite.T(), err, ErrAIServiceNotConfigured)
}

func TestCampaignServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CampaignServiceTestSuite))
}
