package models

// SystemConfig is the database representation of one policy value.
type SystemConfig struct {
	ConfigKey   string `db:"config_key"`
	ConfigValue string `db:"config_value"`
	Description string `db:"description"`
	AuditFields
}
