package services

import (
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/platform/config"
)

// NewServiceContainer wires up all application services with their dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	notifier := NewLogNotifier()
	configSvc := NewConfigService(repos.ConfigRepo)

	walletSvc := NewWalletService(repos.TransferRepo, repos.UserRepo, repos.RewardRepo, repos.WithdrawalRepo, configSvc)
	userSvc := NewUserService(repos.UserRepo, notifier)
	tokenSvc := NewTokenService(cfg, userSvc)
	googleOAuthSvc := NewGoogleOAuthHandlerService(cfg)

	paymentSvc := NewMockPaymentGateway(repos.UserRepo, cfg.GatewayDelay, cfg.GatewaySuccessRate, cfg.GatewayTimeout)
	couponSvc := NewCouponService(repos.CouponRepo)
	projectSvc := NewProjectService(repos.ProjectRepo, repos.SubscriptionRepo)
	subscriptionSvc := NewSubscriptionService(repos.SubscriptionRepo, repos.ProjectRepo, repos.UserRepo, walletSvc, paymentSvc, couponSvc)
	rewardSvc := NewRewardService(repos.RewardRepo, repos.SubscriptionRepo, repos.ProjectRepo, repos.UserRepo, configSvc, notifier)
	withdrawalSvc := NewWithdrawalService(repos.WithdrawalRepo, repos.TransferRepo, repos.UserRepo, walletSvc, notifier)
	engagementSvc := NewEngagementService(repos.UserRepo, repos.TransferRepo, repos.ProjectRepo, walletSvc)
	kycSvc := NewKYCService(repos.KYCRepo, repos.UserRepo)

	return &portssvc.ServiceContainer{
		User:         userSvc,
		Token:        tokenSvc,
		GoogleOAuth:  googleOAuthSvc,
		Wallet:       walletSvc,
		Reward:       rewardSvc,
		Withdrawal:   withdrawalSvc,
		Project:      projectSvc,
		Subscription: subscriptionSvc,
		Engagement:   engagementSvc,
		Payment:      paymentSvc,
		Config:       configSvc,
		KYC:          kycSvc,
		Coupon:       couponSvc,
		Notifier:     notifier,
	}
}
