package services_test

import (
	"context"
	"strings"
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

type WithdrawalServiceTestSuite struct {
	suite.Suite
	mockWithdrawalRepo *MockWithdrawalRepository
	mockTransferRepo   *MockTransferRepository
	mockUserRepo       *MockUserRepository
	mockWalletSvc      *MockWalletService
	service            portssvc.WithdrawalSvcFacade
}

func (suite *WithdrawalServiceTestSuite) SetupTest() {
	suite.mockWithdrawalRepo = new(MockWithdrawalRepository)
	suite.mockTransferRepo = new(MockTransferRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockWalletSvc = new(MockWalletService)
	suite.service = services.NewWithdrawalService(
		suite.mockWithdrawalRepo,
		suite.mockTransferRepo,
		suite.mockUserRepo,
		suite.mockWalletSvc,
		nil,
	)
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_PaidImmediately() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateWithdrawalRequest{
		Amount:       decimal.NewFromInt(500),
		PayoutMethod: domain.PayoutUPI,
		UPIID:        "investor@upi",
	}

	authorized := &domain.Transfer{TransferID: uuid.NewString(), FromUserID: userID, Amount: req.Amount, Kind: domain.KindWithdrawal}
	suite.mockWalletSvc.On("AuthorizeAndDebit", ctx, userID, mock.AnythingOfType("dto.DebitRequest"), mock.Anything).Return(authorized, nil).Once()
	suite.mockWithdrawalRepo.On("SaveWithdrawalInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Withdrawal")).Return(nil).Once()

	withdrawal, err := suite.service.RequestWithdrawal(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(withdrawal)
	suite.Equal(domain.WithdrawalPaid, withdrawal.Status)
	suite.True(strings.HasPrefix(withdrawal.PaymentReferenceID, "PAYOUT-"))
	suite.Equal(userID, withdrawal.UserID)
	suite.mockWithdrawalRepo.AssertExpectations(suite.T())
	suite.mockWalletSvc.AssertExpectations(suite.T())
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_UPIRequiresID() {
	ctx := context.Background()
	req := dto.CreateWithdrawalRequest{Amount: decimal.NewFromInt(500), PayoutMethod: domain.PayoutUPI}

	_, err := suite.service.RequestWithdrawal(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWalletSvc.AssertNotCalled(suite.T(), "AuthorizeAndDebit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_BankRequiresAccountDetails() {
	ctx := context.Background()
	req := dto.CreateWithdrawalRequest{
		Amount:            decimal.NewFromInt(500),
		PayoutMethod:      domain.PayoutBank,
		BankAccountNumber: "0012345678",
		// missing IFSC
	}

	_, err := suite.service.RequestWithdrawal(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *WithdrawalServiceTestSuite) TestRequestWithdrawal_AuthorizerRejectionPropagates() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateWithdrawalRequest{Amount: decimal.NewFromInt(5000), PayoutMethod: domain.PayoutUPI, UPIID: "investor@upi"}

	suite.mockWalletSvc.On("AuthorizeAndDebit", ctx, userID, mock.AnythingOfType("dto.DebitRequest"), mock.Anything).Return(nil, apperrors.ErrMonthlyCapExceeded).Once()

	_, err := suite.service.RequestWithdrawal(ctx, userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrMonthlyCapExceeded)
}

func (suite *WithdrawalServiceTestSuite) TestRejectWithdrawal_RefundsInOneTransaction() {
	ctx := context.Background()
	adminID := uuid.NewString()
	withdrawal := &domain.Withdrawal{
		WithdrawalID: uuid.NewString(),
		UserID:       uuid.NewString(),
		Amount:       decimal.NewFromInt(800),
		Status:       domain.WithdrawalPaid,
	}

	suite.mockWithdrawalRepo.On("FindWithdrawalByID", ctx, withdrawal.WithdrawalID).Return(withdrawal, nil).Once()
	suite.mockTransferRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockTransferRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockWithdrawalRepo.On("UpdateWithdrawalStatusInTx", mock.Anything, mock.Anything, withdrawal.WithdrawalID, domain.WithdrawalRejected, "fraud review", adminID).Return(nil).Once()

	var refund domain.Transfer
	suite.mockTransferRepo.On("AppendTransferInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transfer")).Run(func(args mock.Arguments) {
		refund = args.Get(2).(domain.Transfer)
	}).Return(nil).Once()
	suite.mockTransferRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	req := dto.RejectWithdrawalRequest{AdminNotes: "fraud review"}
	updated, err := suite.service.RejectWithdrawal(ctx, withdrawal.WithdrawalID, req, adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.WithdrawalRejected, updated.Status)
	suite.Equal("fraud review", updated.AdminNotes)
	suite.Equal(domain.KindWithdrawalRefund, refund.Kind)
	suite.Equal(withdrawal.UserID, refund.ToUserID)
	suite.True(refund.Amount.Equal(withdrawal.Amount))
	suite.mockTransferRepo.AssertExpectations(suite.T())
	suite.mockWithdrawalRepo.AssertExpectations(suite.T())
}

func (suite *WithdrawalServiceTestSuite) TestRejectWithdrawal_AlreadyRejected() {
	ctx := context.Background()
	withdrawal := &domain.Withdrawal{
		WithdrawalID: uuid.NewString(),
		UserID:       uuid.NewString(),
		Amount:       decimal.NewFromInt(800),
		Status:       domain.WithdrawalRejected,
	}

	suite.mockWithdrawalRepo.On("FindWithdrawalByID", ctx, withdrawal.WithdrawalID).Return(withdrawal, nil).Once()

	_, err := suite.service.RejectWithdrawal(ctx, withdrawal.WithdrawalID, dto.RejectWithdrawalRequest{AdminNotes: "x"}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *WithdrawalServiceTestSuite) TestGetWithdrawalByID_HidesOtherUsers() {
	ctx := context.Background()
	withdrawal := &domain.Withdrawal{
		WithdrawalID: uuid.NewString(),
		UserID:       uuid.NewString(),
		Amount:       decimal.NewFromInt(200),
		Status:       domain.WithdrawalPaid,
	}

	suite.mockWithdrawalRepo.On("FindWithdrawalByID", ctx, withdrawal.WithdrawalID).Return(withdrawal, nil).Twice()

	_, err := suite.service.GetWithdrawalByID(ctx, withdrawal.WithdrawalID, uuid.NewString(), false)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	got, err := suite.service.GetWithdrawalByID(ctx, withdrawal.WithdrawalID, uuid.NewString(), true)
	suite.Require().NoError(err)
	suite.Equal(withdrawal.WithdrawalID, got.WithdrawalID)
}

func TestWithdrawalService(t *testing.T) {
	suite.Run(t, new(WithdrawalServiceTestSuite))
}
