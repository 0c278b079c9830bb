package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	transferRepo := newPgxTransferRepository(dbPool)
	rewardRepo := newPgxRewardRepository(dbPool)
	withdrawalRepo := newPgxWithdrawalRepository(dbPool)
	projectRepo := newPgxProjectRepository(dbPool)
	subscriptionRepo := newPgxSubscriptionRepository(dbPool)
	couponRepo := newPgxCouponRepository(dbPool)
	configRepo := newPgxConfigRepository(dbPool)
	kycRepo := newPgxKYCRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:         userRepo,
		TransferRepo:     transferRepo,
		RewardRepo:       rewardRepo,
		WithdrawalRepo:   withdrawalRepo,
		ProjectRepo:      projectRepo,
		SubscriptionRepo: subscriptionRepo,
		CouponRepo:       couponRepo,
		ConfigRepo:       configRepo,
		KYCRepo:          kycRepo,
	}
}
