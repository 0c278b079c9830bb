package domain

// Well-known system configuration keys.
const (
	ConfigMonthlyWithdrawalCap      = "MONTHLY_WITHDRAWAL_CAP"
	ConfigMinWithdrawalAmount       = "MIN_WITHDRAWAL_AMOUNT"
	ConfigRewardRatePerKwh          = "REWARD_RATE_PER_KWH"
	ConfigUnderperformanceThreshold = "UNDERPERFORMANCE_THRESHOLD_KWH"
	ConfigRewardCapAmount           = "REWARD_CAP_AMOUNT"
)

// SystemConfig is a single admin-mutable policy value.
type SystemConfig struct {
	ConfigKey   string `json:"configKey"`
	ConfigValue string `json:"configValue"`
	Description string `json:"description,omitempty"`
	AuditFields
}
