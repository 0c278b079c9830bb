package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/core/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
)

type RewardServiceTestSuite struct {
	suite.Suite
	mockRewardRepo       *MockRewardRepository
	mockSubscriptionRepo *MockSubscriptionRepository
	mockProjectRepo      *MockProjectRepository
	mockUserRepo         *MockUserRepository
	mockConfigSvc        *MockConfigService
	service              portssvc.RewardSvcFacade
}

func (suite *RewardServiceTestSuite) SetupTest() {
	suite.mockRewardRepo = new(MockRewardRepository)
	suite.mockSubscriptionRepo = new(MockSubscriptionRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockConfigSvc = new(MockConfigService)
	// No notifier: accrual must work without one.
	suite.service = services.NewRewardService(
		suite.mockRewardRepo,
		suite.mockSubscriptionRepo,
		suite.mockProjectRepo,
		suite.mockUserRepo,
		suite.mockConfigSvc,
		nil,
	)
}

func (suite *RewardServiceTestSuite) activeProject(projectID string) *domain.Project {
	return &domain.Project{
		ProjectID: projectID,
		Name:      "Rooftop School Array",
		Status:    domain.ProjectActive,
	}
}

func (suite *RewardServiceTestSuite) expectPolicy(rate, threshold, capAmount int64) {
	suite.mockConfigSvc.On("GetDecimal", mock.Anything, domain.ConfigRewardRatePerKwh, mock.Anything).Return(decimal.NewFromInt(rate)).Once()
	suite.mockConfigSvc.On("GetDecimal", mock.Anything, domain.ConfigUnderperformanceThreshold, mock.Anything).Return(decimal.NewFromInt(threshold)).Once()
	suite.mockConfigSvc.On("GetDecimal", mock.Anything, domain.ConfigRewardCapAmount, mock.Anything).Return(decimal.NewFromInt(capAmount)).Once()
}

func paidSubscription(projectID string, contribution int64) domain.Subscription {
	return domain.Subscription{
		SubscriptionID:     uuid.NewString(),
		UserID:             uuid.NewString(),
		ProjectID:          projectID,
		ContributionAmount: decimal.NewFromInt(contribution),
		PaymentStatus:      domain.PaymentSuccess,
	}
}

func (suite *RewardServiceTestSuite) TestAccrueMonthlyRewards_ProportionalSplit() {
	ctx := context.Background()
	projectID := uuid.NewString()
	actorID := uuid.NewString()

	// 1000 and 3000 contributions: shares of 100 kWh * 5 = 500 total value.
	subA := paidSubscription(projectID, 1000)
	subB := paidSubscription(projectID, 3000)

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(suite.activeProject(projectID), nil).Once()
	suite.mockRewardRepo.On("HasRewardsForPeriod", ctx, projectID, 6, 2026).Return(false, nil).Once()
	suite.mockSubscriptionRepo.On("ListPaidSubscriptionsByProject", ctx, projectID).Return([]domain.Subscription{subA, subB}, nil).Once()
	suite.expectPolicy(5, 10, 1000)

	var saved []domain.Reward
	suite.mockRewardRepo.On("SaveRewards", ctx, mock.AnythingOfType("[]domain.Reward")).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]domain.Reward)
	}).Return(nil).Once()

	req := dto.AccrueRewardsRequest{
		ProjectID: projectID,
		Month:     6,
		Year:      2026,
		EnergyKwh: decimal.NewFromInt(100),
	}
	resp, err := suite.service.AccrueMonthlyRewards(ctx, req, actorID)

	suite.Require().NoError(err)
	suite.Require().Len(saved, 2)
	suite.True(saved[0].RewardAmount.Equal(decimal.NewFromInt(125)), "share of 1000/4000 on 500: got %s", saved[0].RewardAmount)
	suite.True(saved[1].RewardAmount.Equal(decimal.NewFromInt(375)), "share of 3000/4000 on 500: got %s", saved[1].RewardAmount)
	suite.Equal(domain.RewardSuccess, saved[0].Status)
	suite.Equal(domain.RewardSuccess, saved[1].Status)
	suite.True(resp.TotalDistributed.Equal(decimal.NewFromInt(500)))
	suite.mockRewardRepo.AssertExpectations(suite.T())
}

func (suite *RewardServiceTestSuite) TestAccrueMonthlyRewards_UnderperformanceDeclinesAll() {
	ctx := context.Background()
	projectID := uuid.NewString()

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(suite.activeProject(projectID), nil).Once()
	suite.mockRewardRepo.On("HasRewardsForPeriod", ctx, projectID, 2, 2026).Return(false, nil).Once()
	suite.mockSubscriptionRepo.On("ListPaidSubscriptionsByProject", ctx, projectID).Return([]domain.Subscription{paidSubscription(projectID, 2000)}, nil).Once()
	suite.expectPolicy(5, 10, 1000)

	var saved []domain.Reward
	suite.mockRewardRepo.On("SaveRewards", ctx, mock.AnythingOfType("[]domain.Reward")).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]domain.Reward)
	}).Return(nil).Once()

	// 4 kWh is below the 10 kWh threshold.
	req := dto.AccrueRewardsRequest{ProjectID: projectID, Month: 2, Year: 2026, EnergyKwh: decimal.NewFromInt(4)}
	resp, err := suite.service.AccrueMonthlyRewards(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().Len(saved, 1)
	suite.Equal(domain.RewardDeclined, saved[0].Status)
	suite.True(saved[0].RewardAmount.IsZero())
	suite.NotEmpty(saved[0].Reason)
	suite.True(resp.TotalDistributed.IsZero())
}

func (suite *RewardServiceTestSuite) TestAccrueMonthlyRewards_ClampsToCap() {
	ctx := context.Background()
	projectID := uuid.NewString()

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(suite.activeProject(projectID), nil).Once()
	suite.mockRewardRepo.On("HasRewardsForPeriod", ctx, projectID, 7, 2026).Return(false, nil).Once()
	suite.mockSubscriptionRepo.On("ListPaidSubscriptionsByProject", ctx, projectID).Return([]domain.Subscription{paidSubscription(projectID, 5000)}, nil).Once()
	// Sole subscriber would earn 500 kWh * 5 = 2500, above the 1000 cap.
	suite.expectPolicy(5, 10, 1000)

	var saved []domain.Reward
	suite.mockRewardRepo.On("SaveRewards", ctx, mock.AnythingOfType("[]domain.Reward")).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]domain.Reward)
	}).Return(nil).Once()

	req := dto.AccrueRewardsRequest{ProjectID: projectID, Month: 7, Year: 2026, EnergyKwh: decimal.NewFromInt(500)}
	resp, err := suite.service.AccrueMonthlyRewards(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().Len(saved, 1)
	suite.Equal(domain.RewardCapped, saved[0].Status)
	suite.True(saved[0].RewardAmount.Equal(decimal.NewFromInt(1000)))
	suite.True(resp.TotalDistributed.Equal(decimal.NewFromInt(1000)))
}

func (suite *RewardServiceTestSuite) TestAccrueMonthlyRewards_DuplicatePeriod() {
	ctx := context.Background()
	projectID := uuid.NewString()

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(suite.activeProject(projectID), nil).Once()
	suite.mockRewardRepo.On("HasRewardsForPeriod", ctx, projectID, 5, 2026).Return(true, nil).Once()

	req := dto.AccrueRewardsRequest{ProjectID: projectID, Month: 5, Year: 2026, EnergyKwh: decimal.NewFromInt(100)}
	_, err := suite.service.AccrueMonthlyRewards(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRewardRepo.AssertNotCalled(suite.T(), "SaveRewards", mock.Anything, mock.Anything)
}

func (suite *RewardServiceTestSuite) TestAccrueMonthlyRewards_NoPaidSubscriptions() {
	ctx := context.Background()
	projectID := uuid.NewString()

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(suite.activeProject(projectID), nil).Once()
	suite.mockRewardRepo.On("HasRewardsForPeriod", ctx, projectID, 5, 2026).Return(false, nil).Once()
	suite.mockSubscriptionRepo.On("ListPaidSubscriptionsByProject", ctx, projectID).Return([]domain.Subscription{}, nil).Once()

	req := dto.AccrueRewardsRequest{ProjectID: projectID, Month: 5, Year: 2026, EnergyKwh: decimal.NewFromInt(100)}
	_, err := suite.service.AccrueMonthlyRewards(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoActiveSubscriptions)
}

func (suite *RewardServiceTestSuite) TestAccrueMonthlyRewards_RejectsNonPositiveEnergy() {
	ctx := context.Background()

	req := dto.AccrueRewardsRequest{ProjectID: uuid.NewString(), Month: 5, Year: 2026, EnergyKwh: decimal.Zero}
	_, err := suite.service.AccrueMonthlyRewards(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "FindProjectByID", mock.Anything, mock.Anything)
}

func (suite *RewardServiceTestSuite) TestListProjectsPendingAccrual() {
	ctx := context.Background()
	projectDone := *suite.activeProject(uuid.NewString())
	projectPending := *suite.activeProject(uuid.NewString())

	status := domain.ProjectActive
	suite.mockProjectRepo.On("ListProjects", ctx, &status, 1000, 0).Return([]domain.Project{projectDone, projectPending}, nil).Once()
	suite.mockRewardRepo.On("HasRewardsForPeriod", ctx, projectDone.ProjectID, 8, 2026).Return(true, nil).Once()
	suite.mockRewardRepo.On("HasRewardsForPeriod", ctx, projectPending.ProjectID, 8, 2026).Return(false, nil).Once()

	pending, err := suite.service.ListProjectsPendingAccrual(ctx, 8, 2026)

	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(projectPending.ProjectID, pending[0].ProjectID)
}

func TestRewardService(t *testing.T) {
	suite.Run(t, new(RewardServiceTestSuite))
}
