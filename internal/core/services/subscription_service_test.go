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

type SubscriptionServiceTestSuite struct {
	suite.Suite
	mockSubscriptionRepo *MockSubscriptionRepository
	mockProjectRepo      *MockProjectRepository
	mockUserRepo         *MockUserRepository
	mockWalletSvc        *MockWalletService
	mockPaymentSvc       *MockPaymentGateway
	mockCouponSvc        *MockCouponService
	service              portssvc.SubscriptionSvcFacade
}

func (suite *SubscriptionServiceTestSuite) SetupTest() {
	suite.mockSubscriptionRepo = new(MockSubscriptionRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockWalletSvc = new(MockWalletService)
	suite.mockPaymentSvc = new(MockPaymentGateway)
	suite.mockCouponSvc = new(MockCouponService)
	suite.service = services.NewSubscriptionService(
		suite.mockSubscriptionRepo,
		suite.mockProjectRepo,
		suite.mockUserRepo,
		suite.mockWalletSvc,
		suite.mockPaymentSvc,
		suite.mockCouponSvc,
	)
}

func (suite *SubscriptionServiceTestSuite) activeProject() *domain.Project {
	return &domain.Project{
		ProjectID:         uuid.NewString(),
		Name:              "Jaipur Rooftop Array",
		Status:            domain.ProjectActive,
		MinContribution:   decimal.NewFromInt(500),
		SubscriptionPrice: decimal.NewFromInt(50000),
	}
}

func (suite *SubscriptionServiceTestSuite) TestSubscribe_CreatesPendingSubscription() {
	ctx := context.Background()
	userID := uuid.NewString()
	project := suite.activeProject()
	contribution := decimal.NewFromInt(10000)

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(project, nil).Once()
	order := &domain.PaymentOrder{OrderID: uuid.NewString(), Amount: contribution, Status: domain.OrderPending}
	suite.mockPaymentSvc.On("CreateOrder", ctx, userID, contribution, domain.OrderPayIn).Return(order, nil).Once()

	var saved domain.Subscription
	suite.mockSubscriptionRepo.On("SaveSubscription", ctx, mock.AnythingOfType("domain.Subscription")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.Subscription)
	}).Return(nil).Once()

	resp, err := suite.service.Subscribe(ctx, userID, dto.SubscribeRequest{ProjectID: project.ProjectID, ContributionAmount: contribution})

	suite.Require().NoError(err)
	suite.Equal(order.OrderID, resp.OrderID)
	suite.True(resp.PayableNow.Equal(contribution))
	suite.Equal(domain.PaymentPending, saved.PaymentStatus)
	suite.Equal(order.OrderID, saved.PaymentOrderID)
	// 10000 / 50000 kWp
	suite.True(saved.ReservedCapacity.Equal(decimal.RequireFromString("0.2")), "reserved %s", saved.ReservedCapacity)
	suite.mockCouponSvc.AssertNotCalled(suite.T(), "ValidateCoupon", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestSubscribe_CouponReducesPayable() {
	ctx := context.Background()
	userID := uuid.NewString()
	project := suite.activeProject()
	contribution := decimal.NewFromInt(10000)
	discounted := decimal.NewFromInt(9000)

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(project, nil).Once()
	coupon := &domain.Coupon{CouponID: uuid.NewString(), Code: "SUNNY10"}
	suite.mockCouponSvc.On("ValidateCoupon", ctx, "SUNNY10", contribution).Return(coupon, discounted, nil).Once()
	order := &domain.PaymentOrder{OrderID: uuid.NewString(), Amount: discounted, Status: domain.OrderPending}
	suite.mockPaymentSvc.On("CreateOrder", ctx, userID, discounted, domain.OrderPayIn).Return(order, nil).Once()

	var saved domain.Subscription
	suite.mockSubscriptionRepo.On("SaveSubscription", ctx, mock.AnythingOfType("domain.Subscription")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.Subscription)
	}).Return(nil).Once()

	resp, err := suite.service.Subscribe(ctx, userID, dto.SubscribeRequest{
		ProjectID:          project.ProjectID,
		ContributionAmount: contribution,
		CouponCode:         "SUNNY10",
	})

	suite.Require().NoError(err)
	suite.True(resp.PayableNow.Equal(discounted))
	// The full contribution is recorded regardless of the discount.
	suite.True(saved.ContributionAmount.Equal(contribution))
	suite.Equal("SUNNY10", saved.CouponCode)
}

func (suite *SubscriptionServiceTestSuite) TestSubscribe_RejectsInactiveProject() {
	ctx := context.Background()
	project := suite.activeProject()
	project.Status = domain.ProjectClosed

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(project, nil).Once()

	_, err := suite.service.Subscribe(ctx, uuid.NewString(), dto.SubscribeRequest{ProjectID: project.ProjectID, ContributionAmount: decimal.NewFromInt(10000)})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentSvc.AssertNotCalled(suite.T(), "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestSubscribe_RejectsBelowMinimumContribution() {
	ctx := context.Background()
	project := suite.activeProject()

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(project, nil).Once()

	_, err := suite.service.Subscribe(ctx, uuid.NewString(), dto.SubscribeRequest{ProjectID: project.ProjectID, ContributionAmount: decimal.NewFromInt(100)})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SubscriptionServiceTestSuite) TestHandleSettlement_SuccessCreditsAndDebits() {
	ctx := context.Background()
	subscription := &domain.Subscription{
		SubscriptionID:     uuid.NewString(),
		UserID:             uuid.NewString(),
		ProjectID:          uuid.NewString(),
		ContributionAmount: decimal.NewFromInt(10000),
		PaymentStatus:      domain.PaymentPending,
		PaymentOrderID:     uuid.NewString(),
	}
	event := domain.SettlementEvent{OrderID: subscription.PaymentOrderID, Amount: decimal.NewFromInt(10000), Status: domain.OrderSuccess}

	suite.mockSubscriptionRepo.On("FindSubscriptionByOrderID", ctx, event.OrderID).Return(subscription, nil).Once()

	var debit dto.DebitRequest
	suite.mockWalletSvc.On("AuthorizeAndDebit", ctx, subscription.UserID, mock.AnythingOfType("dto.DebitRequest"), mock.Anything).Run(func(args mock.Arguments) {
		debit = args.Get(2).(dto.DebitRequest)
	}).Return(&domain.Transfer{}, nil).Once()

	// The status flip rides the authorizer's transaction.
	suite.mockSubscriptionRepo.On("UpdatePaymentStatusInTx", ctx, nil, subscription.SubscriptionID, domain.PaymentPending, domain.PaymentSuccess, subscription.UserID).Return(nil).Once()

	settled, err := suite.service.HandleSettlement(ctx, event)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentSuccess, settled.PaymentStatus)
	suite.Equal(domain.KindSubscription, debit.Kind)
	suite.True(debit.Amount.Equal(event.Amount))
	suite.Require().NotNil(debit.FundingCredit)
	suite.Equal(domain.KindAddFunds, debit.FundingCredit.Kind)
	suite.True(debit.FundingCredit.Amount.Equal(event.Amount))
	suite.mockWalletSvc.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockSubscriptionRepo.AssertExpectations(suite.T())
	suite.mockWalletSvc.AssertExpectations(suite.T())
}

// A gateway retry after an aborted settlement attempt must not stack a
// second pay-in credit: the first attempt rolls back entirely, the retry
// settles once.
func (suite *SubscriptionServiceTestSuite) TestHandleSettlement_RetryAfterFailedDebit() {
	ctx := context.Background()
	subscription := &domain.Subscription{
		SubscriptionID:     uuid.NewString(),
		UserID:             uuid.NewString(),
		ProjectID:          uuid.NewString(),
		ContributionAmount: decimal.NewFromInt(10000),
		PaymentStatus:      domain.PaymentPending,
		PaymentOrderID:     uuid.NewString(),
	}
	event := domain.SettlementEvent{OrderID: subscription.PaymentOrderID, Amount: decimal.NewFromInt(10000), Status: domain.OrderSuccess}

	// Both deliveries find the subscription still PENDING: the failed first
	// attempt left no trace.
	suite.mockSubscriptionRepo.On("FindSubscriptionByOrderID", ctx, event.OrderID).Return(subscription, nil).Twice()

	suite.mockWalletSvc.On("AuthorizeAndDebit", ctx, subscription.UserID, mock.AnythingOfType("dto.DebitRequest"), mock.Anything).
		Return(nil, apperrors.ErrInternal).Once()
	suite.mockWalletSvc.On("AuthorizeAndDebit", ctx, subscription.UserID, mock.AnythingOfType("dto.DebitRequest"), mock.Anything).
		Return(&domain.Transfer{}, nil).Once()
	suite.mockSubscriptionRepo.On("UpdatePaymentStatusInTx", ctx, nil, subscription.SubscriptionID, domain.PaymentPending, domain.PaymentSuccess, subscription.UserID).Return(nil).Once()

	_, err := suite.service.HandleSettlement(ctx, event)
	suite.Require().ErrorIs(err, apperrors.ErrInternal)

	settled, err := suite.service.HandleSettlement(ctx, event)
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentSuccess, settled.PaymentStatus)

	// No standalone credit path: the pay-in only ever lands inside the
	// authorized debit, so the retry cannot double-fund the wallet.
	suite.mockWalletSvc.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockSubscriptionRepo.AssertNumberOfCalls(suite.T(), "UpdatePaymentStatusInTx", 1)
	suite.mockWalletSvc.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestHandleSettlement_SuccessRedeemsCoupon() {
	ctx := context.Background()
	coupon := &domain.Coupon{CouponID: uuid.NewString(), Code: "SUNNY10"}
	subscription := &domain.Subscription{
		SubscriptionID:     uuid.NewString(),
		UserID:             uuid.NewString(),
		ProjectID:          uuid.NewString(),
		ContributionAmount: decimal.NewFromInt(10000),
		PaymentStatus:      domain.PaymentPending,
		PaymentOrderID:     uuid.NewString(),
		CouponCode:         "SUNNY10",
	}
	event := domain.SettlementEvent{OrderID: subscription.PaymentOrderID, Amount: decimal.NewFromInt(9000), Status: domain.OrderSuccess}

	suite.mockSubscriptionRepo.On("FindSubscriptionByOrderID", ctx, event.OrderID).Return(subscription, nil).Once()
	suite.mockWalletSvc.On("AuthorizeAndDebit", ctx, subscription.UserID, mock.Anything, mock.Anything).Return(&domain.Transfer{}, nil).Once()
	suite.mockSubscriptionRepo.On("UpdatePaymentStatusInTx", ctx, nil, subscription.SubscriptionID, domain.PaymentPending, domain.PaymentSuccess, subscription.UserID).Return(nil).Once()
	suite.mockCouponSvc.On("ValidateCoupon", ctx, "SUNNY10", subscription.ContributionAmount).Return(coupon, decimal.NewFromInt(9000), nil).Once()
	suite.mockCouponSvc.On("RedeemCoupon", ctx, coupon.CouponID).Return(nil).Once()

	_, err := suite.service.HandleSettlement(ctx, event)

	suite.Require().NoError(err)
	suite.mockCouponSvc.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestHandleSettlement_FailureMarksFailedWithoutLedger() {
	ctx := context.Background()
	subscription := &domain.Subscription{
		SubscriptionID: uuid.NewString(),
		UserID:         uuid.NewString(),
		PaymentStatus:  domain.PaymentPending,
		PaymentOrderID: uuid.NewString(),
	}
	event := domain.SettlementEvent{OrderID: subscription.PaymentOrderID, Amount: decimal.NewFromInt(10000), Status: domain.OrderFailed}

	suite.mockSubscriptionRepo.On("FindSubscriptionByOrderID", ctx, event.OrderID).Return(subscription, nil).Once()
	suite.mockSubscriptionRepo.On("UpdatePaymentStatus", ctx, subscription.SubscriptionID, domain.PaymentFailed, subscription.UserID).Return(nil).Once()

	settled, err := suite.service.HandleSettlement(ctx, event)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentFailed, settled.PaymentStatus)
	suite.mockWalletSvc.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockWalletSvc.AssertNotCalled(suite.T(), "AuthorizeAndDebit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestHandleSettlement_RejectsReplayedEvent() {
	ctx := context.Background()
	subscription := &domain.Subscription{
		SubscriptionID: uuid.NewString(),
		UserID:         uuid.NewString(),
		PaymentStatus:  domain.PaymentSuccess,
		PaymentOrderID: uuid.NewString(),
	}
	event := domain.SettlementEvent{OrderID: subscription.PaymentOrderID, Amount: decimal.NewFromInt(10000), Status: domain.OrderSuccess}

	suite.mockSubscriptionRepo.On("FindSubscriptionByOrderID", ctx, event.OrderID).Return(subscription, nil).Once()

	_, err := suite.service.HandleSettlement(ctx, event)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockWalletSvc.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestGetSubscriptionByID_HidesOtherUsers() {
	ctx := context.Background()
	subscription := &domain.Subscription{
		SubscriptionID: uuid.NewString(),
		UserID:         uuid.NewString(),
		PaymentStatus:  domain.PaymentSuccess,
	}

	suite.mockSubscriptionRepo.On("FindSubscriptionByID", ctx, subscription.SubscriptionID).Return(subscription, nil).Once()

	_, err := suite.service.GetSubscriptionByID(ctx, subscription.SubscriptionID, uuid.NewString(), false)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestSubscriptionService(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}
