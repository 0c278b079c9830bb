package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/core/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
)

type WalletServiceTestSuite struct {
	suite.Suite
	mockTransferRepo   *MockTransferRepository
	mockUserRepo       *MockUserRepository
	mockRewardRepo     *MockRewardRepository
	mockWithdrawalRepo *MockWithdrawalRepository
	mockConfigSvc      *MockConfigService
	service            portssvc.WalletSvcFacade
}

func (suite *WalletServiceTestSuite) SetupTest() {
	suite.mockTransferRepo = new(MockTransferRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockRewardRepo = new(MockRewardRepository)
	suite.mockWithdrawalRepo = new(MockWithdrawalRepository)
	suite.mockConfigSvc = new(MockConfigService)
	suite.service = services.NewWalletService(
		suite.mockTransferRepo,
		suite.mockUserRepo,
		suite.mockRewardRepo,
		suite.mockWithdrawalRepo,
		suite.mockConfigSvc,
	)
}

func (suite *WalletServiceTestSuite) approvedUser(userID string) *domain.User {
	return &domain.User{
		UserID:    userID,
		Email:     "investor@example.com",
		KYCStatus: domain.KYCApproved,
		Role:      domain.RoleUser,
	}
}

// expectDebitTx wires the transaction lifecycle mocks for one authorizer run.
func (suite *WalletServiceTestSuite) expectDebitTx(user *domain.User) {
	suite.mockTransferRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockTransferRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockUserRepo.On("LockUserForUpdate", mock.Anything, mock.Anything, user.UserID).Return(user, nil).Once()
}

// --- GetBalance ---

func (suite *WalletServiceTestSuite) TestGetBalance_SumsRewardsAndNetTransfers() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(suite.approvedUser(userID), nil).Once()
	suite.mockRewardRepo.On("SumSuccessRewards", ctx, userID).Return(decimal.NewFromInt(150), nil).Once()
	suite.mockTransferRepo.On("NetTransferAmount", ctx, userID).Return(decimal.NewFromInt(-30), nil).Once()

	balance, err := suite.service.GetBalance(ctx, userID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(120)), "expected 120, got %s", balance)
	suite.mockRewardRepo.AssertExpectations(suite.T())
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestGetBalance_UnknownUser() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetBalance(ctx, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRewardRepo.AssertNotCalled(suite.T(), "SumSuccessRewards", mock.Anything, mock.Anything)
}

// --- Credit ---

func (suite *WalletServiceTestSuite) TestCredit_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	adminID := uuid.NewString()
	req := dto.CreditRequest{
		Amount: decimal.NewFromInt(500),
		Kind:   domain.KindAdminCredit,
		Notes:  "goodwill",
	}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(suite.approvedUser(userID), nil).Once()
	suite.mockTransferRepo.On("AppendTransfer", ctx, mock.AnythingOfType("domain.Transfer")).Return(nil).Once()

	transfer, err := suite.service.Credit(ctx, userID, req, adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(transfer)
	suite.NotEmpty(transfer.TransferID)
	suite.Equal(userID, transfer.ToUserID)
	suite.Empty(transfer.FromUserID)
	suite.Equal(domain.KindAdminCredit, transfer.Kind)
	suite.Equal(adminID, transfer.CreatedBy)
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestCredit_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreditRequest{Amount: decimal.Zero, Kind: domain.KindAddFunds}

	_, err := suite.service.Credit(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "AppendTransfer", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestCredit_RejectsDebitKind() {
	ctx := context.Background()
	req := dto.CreditRequest{Amount: decimal.NewFromInt(10), Kind: domain.KindWithdrawal}

	_, err := suite.service.Credit(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- AuthorizeAndDebit ---

func (suite *WalletServiceTestSuite) TestAuthorizeAndDebit_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := suite.approvedUser(userID)
	req := dto.DebitRequest{Amount: decimal.NewFromInt(200), Kind: domain.KindReinvest, ProjectID: uuid.NewString()}

	suite.expectDebitTx(user)
	suite.mockRewardRepo.On("SumSuccessRewardsInTx", mock.Anything, mock.Anything, userID).Return(decimal.NewFromInt(300), nil).Once()
	suite.mockTransferRepo.On("NetTransferAmountInTx", mock.Anything, mock.Anything, userID).Return(decimal.Zero, nil).Once()
	suite.mockTransferRepo.On("AppendTransferInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transfer")).Return(nil).Once()
	suite.mockTransferRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	transfer, err := suite.service.AuthorizeAndDebit(ctx, userID, req, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(transfer)
	suite.Equal(userID, transfer.FromUserID)
	suite.Equal(domain.KindReinvest, transfer.Kind)
	suite.True(transfer.Amount.Equal(req.Amount))
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestAuthorizeAndDebit_InsufficientBalance() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := suite.approvedUser(userID)
	req := dto.DebitRequest{Amount: decimal.NewFromInt(500), Kind: domain.KindDonate}

	suite.expectDebitTx(user)
	suite.mockRewardRepo.On("SumSuccessRewardsInTx", mock.Anything, mock.Anything, userID).Return(decimal.NewFromInt(100), nil).Once()
	suite.mockTransferRepo.On("NetTransferAmountInTx", mock.Anything, mock.Anything, userID).Return(decimal.NewFromInt(50), nil).Once()

	_, err := suite.service.AuthorizeAndDebit(ctx, userID, req, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "AppendTransferInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestAuthorizeAndDebit_RejectsCreditKind() {
	ctx := context.Background()
	req := dto.DebitRequest{Amount: decimal.NewFromInt(10), Kind: domain.KindAddFunds}

	_, err := suite.service.AuthorizeAndDebit(ctx, uuid.NewString(), req, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *WalletServiceTestSuite) TestAuthorizeAndDebit_WithdrawalNeedsApprovedKYC() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := suite.approvedUser(userID)
	user.KYCStatus = domain.KYCPending
	req := dto.DebitRequest{Amount: decimal.NewFromInt(200), Kind: domain.KindWithdrawal}

	suite.expectDebitTx(user)

	_, err := suite.service.AuthorizeAndDebit(ctx, userID, req, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrKycRequired)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "AppendTransferInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestAuthorizeAndDebit_WithdrawalBelowMinimum() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := suite.approvedUser(userID)
	req := dto.DebitRequest{Amount: decimal.NewFromInt(50), Kind: domain.KindWithdrawal}

	suite.expectDebitTx(user)
	suite.mockConfigSvc.On("GetDecimal", mock.Anything, domain.ConfigMinWithdrawalAmount, mock.Anything).Return(decimal.NewFromInt(100)).Once()

	_, err := suite.service.AuthorizeAndDebit(ctx, userID, req, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBelowMinimum)
}

func (suite *WalletServiceTestSuite) TestAuthorizeAndDebit_WithdrawalOverMonthlyCap() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := suite.approvedUser(userID)
	req := dto.DebitRequest{Amount: decimal.NewFromInt(500), Kind: domain.KindWithdrawal}

	suite.expectDebitTx(user)
	suite.mockConfigSvc.On("GetDecimal", mock.Anything, domain.ConfigMinWithdrawalAmount, mock.Anything).Return(decimal.NewFromInt(100)).Once()
	suite.mockConfigSvc.On("GetDecimal", mock.Anything, domain.ConfigMonthlyWithdrawalCap, mock.Anything).Return(decimal.NewFromInt(3000)).Once()
	// 2600 already paid this month, 500 more would breach the 3000 cap.
	suite.mockWithdrawalRepo.On("SumPaidWithdrawalsInRangeInTx", mock.Anything, mock.Anything, userID, mock.Anything, mock.Anything).Return(decimal.NewFromInt(2600), nil).Once()

	_, err := suite.service.AuthorizeAndDebit(ctx, userID, req, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrMonthlyCapExceeded)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "AppendTransferInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestAuthorizeAndDebit_WithdrawalExactlyAtCap() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := suite.approvedUser(userID)
	req := dto.DebitRequest{Amount: decimal.NewFromInt(400), Kind: domain.KindWithdrawal}

	suite.expectDebitTx(user)
	suite.mockConfigSvc.On("GetDecimal", mock.Anything, domain.ConfigMinWithdrawalAmount, mock.Anything).Return(decimal.NewFromInt(100)).Once()
	suite.mockConfigSvc.On("GetDecimal", mock.Anything, domain.ConfigMonthlyWithdrawalCap, mock.Anything).Return(decimal.NewFromInt(3000)).Once()
	// 2600 + 400 lands exactly on the cap, which is allowed.
	suite.mockWithdrawalRepo.On("SumPaidWithdrawalsInRangeInTx", mock.Anything, mock.Anything, userID, mock.Anything, mock.Anything).Return(decimal.NewFromInt(2600), nil).Once()
	suite.mockRewardRepo.On("SumSuccessRewardsInTx", mock.Anything, mock.Anything, userID).Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockTransferRepo.On("NetTransferAmountInTx", mock.Anything, mock.Anything, userID).Return(decimal.Zero, nil).Once()
	suite.mockTransferRepo.On("AppendTransferInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transfer")).Return(nil).Once()
	suite.mockTransferRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	transfer, err := suite.service.AuthorizeAndDebit(ctx, userID, req, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(transfer)
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestAuthorizeAndDebit_FundingCreditLandsBeforeBalanceRead() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := suite.approvedUser(userID)
	projectID := uuid.NewString()
	req := dto.DebitRequest{
		Amount:    decimal.NewFromInt(10000),
		Kind:      domain.KindSubscription,
		ProjectID: projectID,
		FundingCredit: &dto.CreditRequest{
			Amount:    decimal.NewFromInt(10000),
			Kind:      domain.KindAddFunds,
			ProjectID: projectID,
		},
	}

	suite.expectDebitTx(user)

	var appended []domain.Transfer
	balanceReadsSeen := 0
	suite.mockTransferRepo.On("AppendTransferInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transfer")).Run(func(args mock.Arguments) {
		appended = append(appended, args.Get(2).(domain.Transfer))
	}).Return(nil).Twice()
	suite.mockRewardRepo.On("SumSuccessRewardsInTx", mock.Anything, mock.Anything, userID).Return(decimal.Zero, nil).Once()
	// Wallet is otherwise empty: the debit only clears because the funding
	// credit is visible to this read.
	suite.mockTransferRepo.On("NetTransferAmountInTx", mock.Anything, mock.Anything, userID).Run(func(mock.Arguments) {
		balanceReadsSeen = len(appended)
	}).Return(decimal.NewFromInt(10000), nil).Once()
	suite.mockTransferRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	transfer, err := suite.service.AuthorizeAndDebit(ctx, userID, req, nil)

	suite.Require().NoError(err)
	suite.Require().Len(appended, 2)
	suite.Equal(1, balanceReadsSeen, "credit must be appended before the balance read")
	suite.Equal(domain.KindAddFunds, appended[0].Kind)
	suite.Equal(userID, appended[0].ToUserID)
	suite.Empty(appended[0].FromUserID)
	suite.Equal(domain.KindSubscription, appended[1].Kind)
	suite.Equal(userID, appended[1].FromUserID)
	suite.Equal(domain.KindSubscription, transfer.Kind)
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestAuthorizeAndDebit_RejectsDebitKindFundingCredit() {
	ctx := context.Background()
	req := dto.DebitRequest{
		Amount:        decimal.NewFromInt(100),
		Kind:          domain.KindSubscription,
		FundingCredit: &dto.CreditRequest{Amount: decimal.NewFromInt(100), Kind: domain.KindWithdrawal},
	}

	_, err := suite.service.AuthorizeAndDebit(ctx, uuid.NewString(), req, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *WalletServiceTestSuite) TestAuthorizeAndDebit_HookFailureAbortsCommit() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := suite.approvedUser(userID)
	req := dto.DebitRequest{Amount: decimal.NewFromInt(200), Kind: domain.KindDonate}

	suite.expectDebitTx(user)
	suite.mockRewardRepo.On("SumSuccessRewardsInTx", mock.Anything, mock.Anything, userID).Return(decimal.NewFromInt(300), nil).Once()
	suite.mockTransferRepo.On("NetTransferAmountInTx", mock.Anything, mock.Anything, userID).Return(decimal.Zero, nil).Once()
	suite.mockTransferRepo.On("AppendTransferInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transfer")).Return(nil).Once()

	hookErr := apperrors.ErrInternal
	_, err := suite.service.AuthorizeAndDebit(ctx, userID, req, func(ctx context.Context, tx pgx.Tx, transfer *domain.Transfer) error {
		return hookErr
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, hookErr)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func TestWalletService(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
