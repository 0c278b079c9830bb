package models

import "github.com/shopspring/decimal"

// Project is the database representation of a solar project.
type Project struct {
	ProjectID               string          `db:"project_id"`
	Name                    string          `db:"name"`
	Location                string          `db:"location"`
	Description             string          `db:"description"`
	ProjectType             string          `db:"project_type"`
	EnergyCapacityKwp       decimal.Decimal `db:"energy_capacity_kwp"`
	MinContribution         decimal.Decimal `db:"min_contribution"`
	SubscriptionPrice       decimal.Decimal `db:"subscription_price"`
	Efficiency              string          `db:"efficiency"`
	Status                  string          `db:"status"`
	ImageURL                string          `db:"image_url"`
	OperationalValidityYear int             `db:"operational_validity_year"`
	AuditFields
}
