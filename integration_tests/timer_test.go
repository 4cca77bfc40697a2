package integration_tests

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/opsdeskhq/opsdesk/db/models"
	"github.com/opsdeskhq/opsdesk/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TimerTestSuite struct {
	TestSuite
	service *service.OpsdeskService
	client  *models.Client
	project *models.Project
}

func (suite *TimerTestSuite) SetupSuite() {
	svc, err := OpsdeskTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc

	suite.client, err = createTestClient(svc, "carol", nil)
	if err != nil {
		log.Fatalf("Error creating test client: %v", err)
	}
	suite.project, err = createTestProject(svc, suite.client, "retainer", nil)
	if err != nil {
		log.Fatalf("Error creating test project: %v", err)
	}
}

func (suite *TimerTestSuite) TearDownTest() {
	clearTable(suite.service, "time_entries")
	suite.service.TimerStore.Clear()
}

func (suite *TimerTestSuite) TearDownSuite() {
	clearTable(suite.service, "projects")
	clearTable(suite.service, "clients")
}

func (suite *TimerTestSuite) TestStartRefusesSecondTimer() {
	ctx := context.Background()
	params := service.StartTimerParams{ProjectID: suite.project.ID, Description: "first"}

	_, err := suite.service.StartTimer(ctx, params, time.Now())
	assert.NoError(suite.T(), err)

	params.Description = "second"
	_, err = suite.service.StartTimer(ctx, params, time.Now())
	assert.ErrorIs(suite.T(), err, service.ErrTimerAlreadyRunning)
}

func (suite *TimerTestSuite) TestStopRecordsElapsedSeconds() {
	ctx := context.Background()
	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	started, err := suite.service.StartTimer(ctx, service.StartTimerParams{ProjectID: suite.project.ID}, start)
	assert.NoError(suite.T(), err)

	stopped, err := suite.service.StopTimer(ctx, start.Add(90*time.Minute))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), started.ID, stopped.ID)
	assert.True(suite.T(), stopped.TrackingFinished)
	assert.NotNil(suite.T(), stopped.TimeLapsed)
	assert.Equal(suite.T(), int64(5400), *stopped.TimeLapsed)

	// stopping again has nothing to stop
	_, err = suite.service.StopTimer(ctx, start.Add(2*time.Hour))
	assert.ErrorIs(suite.T(), err, service.ErrNoRunningTimer)
}

func (suite *TimerTestSuite) TestStartPersistsTimerState() {
	ctx := context.Background()

	started, err := suite.service.StartTimer(ctx, service.StartTimerParams{ProjectID: suite.project.ID}, time.Now())
	assert.NoError(suite.T(), err)

	state, err := suite.service.TimerStore.Load()
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), state.Running)
	assert.Equal(suite.T(), started.ID, state.EntryID)
}

func TestTimerSuite(t *testing.T) {
	suite.Run(t, new(TimerTestSuite))
}
