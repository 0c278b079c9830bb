package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/dto"
)

// Shared mock implementations of the repository and service ports. Several
// services depend on the same repositories, so the mocks live in one file
// instead of being redeclared per test file.

// --- MockTransferRepository ---

type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transfer), args.Error(1)
}

func (m *MockTransferRepository) ListTransfersByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transfer, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Transfer), token, args.Error(2)
}

func (m *MockTransferRepository) NetTransferAmount(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransferRepository) SumOutgoingByKind(ctx context.Context, userID string, kind domain.TransferKind) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, kind)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransferRepository) SumIncomingByKind(ctx context.Context, userID string, kind domain.TransferKind) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, kind)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransferRepository) AppendTransfer(ctx context.Context, transfer domain.Transfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) AppendTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error {
	args := m.Called(ctx, tx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) NetTransferAmountInTx(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransferRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTransferRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransferRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- MockUserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateKYCStatus(ctx context.Context, userID string, status domain.KYCStatus, updatedByUserID string) error {
	args := m.Called(ctx, userID, status, updatedByUserID)
	return args.Error(0)
}

func (m *MockUserRepository) LockUserForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.User, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- MockRewardRepository ---

type MockRewardRepository struct {
	mock.Mock
}

func (m *MockRewardRepository) ListRewardsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Reward, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Reward), token, args.Error(2)
}

func (m *MockRewardRepository) ListRewardsByProjectPeriod(ctx context.Context, projectID string, month, year int) ([]domain.Reward, error) {
	args := m.Called(ctx, projectID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reward), args.Error(1)
}

func (m *MockRewardRepository) HasRewardsForPeriod(ctx context.Context, projectID string, month, year int) (bool, error) {
	args := m.Called(ctx, projectID, month, year)
	return args.Bool(0), args.Error(1)
}

func (m *MockRewardRepository) SumSuccessRewards(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRewardRepository) SaveRewards(ctx context.Context, rewards []domain.Reward) error {
	args := m.Called(ctx, rewards)
	return args.Error(0)
}

func (m *MockRewardRepository) SumSuccessRewardsInTx(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- MockWithdrawalRepository ---

type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) FindWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error) {
	args := m.Called(ctx, withdrawalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) ListWithdrawalsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Withdrawal, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Withdrawal), token, args.Error(2)
}

func (m *MockWithdrawalRepository) ListWithdrawalsByStatus(ctx context.Context, status domain.WithdrawalStatus, limit int, offset int) ([]domain.Withdrawal, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) SaveWithdrawalInTx(ctx context.Context, tx pgx.Tx, withdrawal domain.Withdrawal) error {
	args := m.Called(ctx, tx, withdrawal)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) SumPaidWithdrawalsInRangeInTx(ctx context.Context, tx pgx.Tx, userID string, start, end time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, userID, start, end)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWithdrawalRepository) UpdateWithdrawalStatusInTx(ctx context.Context, tx pgx.Tx, withdrawalID string, status domain.WithdrawalStatus, adminNotes string, updatedByUserID string) error {
	args := m.Called(ctx, tx, withdrawalID, status, adminNotes, updatedByUserID)
	return args.Error(0)
}

// --- MockSubscriptionRepository ---

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindSubscriptionByOrderID(ctx context.Context, orderID string) (*domain.Subscription, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListPaidSubscriptionsByProject(ctx context.Context, projectID string) ([]domain.Subscription, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) SumPaidContributions(ctx context.Context, projectID string) (decimal.Decimal, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSubscriptionRepository) SumReservedCapacity(ctx context.Context, projectID string) (decimal.Decimal, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSubscriptionRepository) SaveSubscription(ctx context.Context, subscription domain.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) UpdatePaymentStatus(ctx context.Context, subscriptionID string, status domain.PaymentState, updatedByUserID string) error {
	args := m.Called(ctx, subscriptionID, status, updatedByUserID)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) UpdatePaymentStatusInTx(ctx context.Context, tx pgx.Tx, subscriptionID string, from, to domain.PaymentState, updatedByUserID string) error {
	args := m.Called(ctx, tx, subscriptionID, from, to, updatedByUserID)
	return args.Error(0)
}

// --- MockProjectRepository ---

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListProjects(ctx context.Context, status *domain.ProjectStatus, limit int, offset int) ([]domain.Project, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

// --- MockCouponRepository ---

type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) FindCouponByID(ctx context.Context, couponID string) (*domain.Coupon, error) {
	args := m.Called(ctx, couponID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponRepository) ListCoupons(ctx context.Context, limit int, offset int) ([]domain.Coupon, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Coupon), args.Error(1)
}

func (m *MockCouponRepository) SaveCoupon(ctx context.Context, coupon domain.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *MockCouponRepository) UpdateCoupon(ctx context.Context, coupon domain.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *MockCouponRepository) IncrementRedemptions(ctx context.Context, couponID string) error {
	args := m.Called(ctx, couponID)
	return args.Error(0)
}

// --- MockConfigRepository ---

type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) FindConfigByKey(ctx context.Context, key string) (*domain.SystemConfig, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystemConfig), args.Error(1)
}

func (m *MockConfigRepository) ListConfigs(ctx context.Context) ([]domain.SystemConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SystemConfig), args.Error(1)
}

func (m *MockConfigRepository) UpsertConfig(ctx context.Context, cfg domain.SystemConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

// --- MockKYCRepository ---

type MockKYCRepository struct {
	mock.Mock
}

func (m *MockKYCRepository) FindSubmissionByID(ctx context.Context, submissionID string) (*domain.KYCSubmission, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KYCSubmission), args.Error(1)
}

func (m *MockKYCRepository) FindSubmissionByUserID(ctx context.Context, userID string) (*domain.KYCSubmission, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KYCSubmission), args.Error(1)
}

func (m *MockKYCRepository) ListPendingSubmissions(ctx context.Context, limit int, offset int) ([]domain.KYCSubmission, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KYCSubmission), args.Error(1)
}

func (m *MockKYCRepository) SaveSubmission(ctx context.Context, submission domain.KYCSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockKYCRepository) UpdateSubmissionStatus(ctx context.Context, submissionID string, status domain.KYCStatus, reviewedBy string, remarks string) error {
	args := m.Called(ctx, submissionID, status, reviewedBy, remarks)
	return args.Error(0)
}

// --- MockConfigService ---

type MockConfigService struct {
	mock.Mock
}

func (m *MockConfigService) GetDecimal(ctx context.Context, key string, fallback decimal.Decimal) decimal.Decimal {
	args := m.Called(ctx, key, fallback)
	return args.Get(0).(decimal.Decimal)
}

func (m *MockConfigService) GetInt(ctx context.Context, key string, fallback int) int {
	args := m.Called(ctx, key, fallback)
	return args.Int(0)
}

func (m *MockConfigService) ListConfigs(ctx context.Context) ([]domain.SystemConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SystemConfig), args.Error(1)
}

func (m *MockConfigService) SetConfig(ctx context.Context, key, value, description string, actorUserID string) error {
	args := m.Called(ctx, key, value, description, actorUserID)
	return args.Error(0)
}

// --- MockNotifier ---

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendOTPEmail(ctx context.Context, email, otp string) error {
	args := m.Called(ctx, email, otp)
	return args.Error(0)
}

func (m *MockNotifier) SendWithdrawalConfirmation(ctx context.Context, email string, amount string, reference string) error {
	args := m.Called(ctx, email, amount, reference)
	return args.Error(0)
}

func (m *MockNotifier) SendRewardNotification(ctx context.Context, email string, amount string, month, year int) error {
	args := m.Called(ctx, email, amount, month, year)
	return args.Error(0)
}

// --- MockWalletService ---

type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWalletService) GetWalletSummary(ctx context.Context, userID string) (*dto.WalletSummaryResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WalletSummaryResponse), args.Error(1)
}

func (m *MockWalletService) ListTransfers(ctx context.Context, userID string, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransfersResponse), args.Error(1)
}

func (m *MockWalletService) Credit(ctx context.Context, userID string, req dto.CreditRequest, actorUserID string) (*domain.Transfer, error) {
	args := m.Called(ctx, userID, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transfer), args.Error(1)
}

// AuthorizeAndDebit runs the inTx hook on success so callers that persist
// dependent records inside the debit transaction still exercise that path.
func (m *MockWalletService) AuthorizeAndDebit(ctx context.Context, userID string, req dto.DebitRequest, inTx func(ctx context.Context, tx pgx.Tx, transfer *domain.Transfer) error) (*domain.Transfer, error) {
	args := m.Called(ctx, userID, req, inTx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	transfer := args.Get(0).(*domain.Transfer)
	if inTx != nil {
		if err := inTx(ctx, nil, transfer); err != nil {
			return nil, err
		}
	}
	return transfer, args.Error(1)
}

// --- MockPaymentGateway ---

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, userID string, amount decimal.Decimal, kind domain.PaymentOrderKind) (*domain.PaymentOrder, error) {
	args := m.Called(ctx, userID, amount, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentOrder), args.Error(1)
}

func (m *MockPaymentGateway) GetOrder(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentOrder), args.Error(1)
}

func (m *MockPaymentGateway) SettleOrder(ctx context.Context, orderID string) (*domain.SettlementEvent, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementEvent), args.Error(1)
}

// --- MockCouponService ---

type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) CreateCoupon(ctx context.Context, req dto.CreateCouponRequest, creatorUserID string) (*domain.Coupon, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponService) UpdateCoupon(ctx context.Context, couponID string, req dto.UpdateCouponRequest, requestingUserID string) (*domain.Coupon, error) {
	args := m.Called(ctx, couponID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponService) ListCoupons(ctx context.Context, limit, offset int) ([]domain.Coupon, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Coupon), args.Error(1)
}

func (m *MockCouponService) ValidateCoupon(ctx context.Context, code string, amount decimal.Decimal) (*domain.Coupon, decimal.Decimal, error) {
	args := m.Called(ctx, code, amount)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.Coupon), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockCouponService) RedeemCoupon(ctx context.Context, couponID string) error {
	args := m.Called(ctx, couponID)
	return args.Error(0)
}
