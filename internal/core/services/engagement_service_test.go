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

type EngagementServiceTestSuite struct {
	suite.Suite
	mockUserRepo     *MockUserRepository
	mockTransferRepo *MockTransferRepository
	mockProjectRepo  *MockProjectRepository
	mockWalletSvc    *MockWalletService
	service          portssvc.EngagementSvcFacade
}

func (suite *EngagementServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockTransferRepo = new(MockTransferRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockWalletSvc = new(MockWalletService)
	suite.service = services.NewEngagementService(
		suite.mockUserRepo,
		suite.mockTransferRepo,
		suite.mockProjectRepo,
		suite.mockWalletSvc,
	)
}

func (suite *EngagementServiceTestSuite) TestReinvest_DebitsTowardProject() {
	ctx := context.Background()
	userID := uuid.NewString()
	project := &domain.Project{ProjectID: uuid.NewString(), Status: domain.ProjectActive}

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(project, nil).Once()

	var debit dto.DebitRequest
	suite.mockWalletSvc.On("AuthorizeAndDebit", ctx, userID, mock.AnythingOfType("dto.DebitRequest"), mock.Anything).Run(func(args mock.Arguments) {
		debit = args.Get(2).(dto.DebitRequest)
	}).Return(&domain.Transfer{TransferID: uuid.NewString()}, nil).Once()

	_, err := suite.service.Reinvest(ctx, userID, dto.ReinvestRequest{ProjectID: project.ProjectID, Amount: decimal.NewFromInt(1500)})

	suite.Require().NoError(err)
	suite.Equal(domain.KindReinvest, debit.Kind)
	suite.Equal(project.ProjectID, debit.ProjectID)
	suite.True(debit.Amount.Equal(decimal.NewFromInt(1500)))
}

func (suite *EngagementServiceTestSuite) TestReinvest_RejectsClosedProject() {
	ctx := context.Background()
	project := &domain.Project{ProjectID: uuid.NewString(), Status: domain.ProjectClosed}

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(project, nil).Once()

	_, err := suite.service.Reinvest(ctx, uuid.NewString(), dto.ReinvestRequest{ProjectID: project.ProjectID, Amount: decimal.NewFromInt(1500)})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWalletSvc.AssertNotCalled(suite.T(), "AuthorizeAndDebit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EngagementServiceTestSuite) TestDonate_WithoutProject() {
	ctx := context.Background()
	userID := uuid.NewString()

	var debit dto.DebitRequest
	suite.mockWalletSvc.On("AuthorizeAndDebit", ctx, userID, mock.AnythingOfType("dto.DebitRequest"), mock.Anything).Run(func(args mock.Arguments) {
		debit = args.Get(2).(dto.DebitRequest)
	}).Return(&domain.Transfer{TransferID: uuid.NewString()}, nil).Once()

	_, err := suite.service.Donate(ctx, userID, dto.DonateRequest{Amount: decimal.NewFromInt(200)})

	suite.Require().NoError(err)
	suite.Equal(domain.KindDonate, debit.Kind)
	suite.Empty(debit.ProjectID)
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "FindProjectByID", mock.Anything, mock.Anything)
}

func (suite *EngagementServiceTestSuite) TestGift_CarriesRecipientOnDebit() {
	ctx := context.Background()
	senderID := uuid.NewString()
	recipient := &domain.User{UserID: uuid.NewString(), Email: "friend@example.com"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, recipient.Email).Return(recipient, nil).Once()

	var debit dto.DebitRequest
	suite.mockWalletSvc.On("AuthorizeAndDebit", ctx, senderID, mock.AnythingOfType("dto.DebitRequest"), mock.Anything).Run(func(args mock.Arguments) {
		debit = args.Get(2).(dto.DebitRequest)
	}).Return(&domain.Transfer{TransferID: uuid.NewString()}, nil).Once()

	_, err := suite.service.Gift(ctx, senderID, dto.GiftRequest{RecipientEmail: recipient.Email, Amount: decimal.NewFromInt(300)})

	suite.Require().NoError(err)
	suite.Equal(domain.KindGift, debit.Kind)
	suite.Equal(recipient.UserID, debit.ToUserID)
}

func (suite *EngagementServiceTestSuite) TestGift_RejectsSelfGift() {
	ctx := context.Background()
	sender := &domain.User{UserID: uuid.NewString(), Email: "me@example.com"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, sender.Email).Return(sender, nil).Once()

	_, err := suite.service.Gift(ctx, sender.UserID, dto.GiftRequest{RecipientEmail: sender.Email, Amount: decimal.NewFromInt(300)})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWalletSvc.AssertNotCalled(suite.T(), "AuthorizeAndDebit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EngagementServiceTestSuite) TestGetEngagementStats_SumsByKind() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockWalletSvc.On("GetBalance", ctx, userID).Return(decimal.NewFromInt(950), nil).Once()
	suite.mockTransferRepo.On("SumOutgoingByKind", ctx, userID, domain.KindReinvest).Return(decimal.NewFromInt(400), nil).Once()
	suite.mockTransferRepo.On("SumOutgoingByKind", ctx, userID, domain.KindDonate).Return(decimal.NewFromInt(100), nil).Once()
	suite.mockTransferRepo.On("SumOutgoingByKind", ctx, userID, domain.KindGift).Return(decimal.NewFromInt(50), nil).Once()
	suite.mockTransferRepo.On("SumIncomingByKind", ctx, userID, domain.KindGift).Return(decimal.NewFromInt(75), nil).Once()

	stats, err := suite.service.GetEngagementStats(ctx, userID)

	suite.Require().NoError(err)
	suite.True(stats.Balance.Equal(decimal.NewFromInt(950)))
	suite.True(stats.TotalReinvested.Equal(decimal.NewFromInt(400)))
	suite.True(stats.TotalDonated.Equal(decimal.NewFromInt(100)))
	suite.True(stats.TotalGifted.Equal(decimal.NewFromInt(50)))
	suite.True(stats.GiftsReceived.Equal(decimal.NewFromInt(75)))
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func TestEngagementService(t *testing.T) {
	suite.Run(t, new(EngagementServiceTestSuite))
}
