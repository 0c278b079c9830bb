package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	TransferRepo     TransferRepositoryWithTx
	RewardRepo       RewardRepositoryFacade
	WithdrawalRepo   WithdrawalRepositoryFacade
	ProjectRepo      ProjectRepositoryFacade
	SubscriptionRepo SubscriptionRepositoryFacade
	CouponRepo       CouponRepositoryFacade
	ConfigRepo       ConfigRepositoryFacade
	KYCRepo          KYCRepositoryFacade
}
