package domain

import "github.com/shopspring/decimal"

// ProjectStatus indicates whether a project accepts new subscriptions.
type ProjectStatus string

const (
	ProjectActive ProjectStatus = "ACTIVE"
	ProjectPaused ProjectStatus = "PAUSED"
	ProjectClosed ProjectStatus = "CLOSED"
)

// ProjectEfficiency is a coarse rating shown on listings.
type ProjectEfficiency string

const (
	EfficiencyHigh   ProjectEfficiency = "HIGH"
	EfficiencyMedium ProjectEfficiency = "MEDIUM"
	EfficiencyLow    ProjectEfficiency = "LOW"
)

// Project represents a solar installation open for retail investment.
type Project struct {
	ProjectID               string            `json:"projectID"`
	Name                    string            `json:"name"`
	Location                string            `json:"location"`
	Description             string            `json:"description,omitempty"`
	ProjectType             string            `json:"projectType,omitempty"` // SCHOOL, HOSPITAL, FACTORY, ...
	EnergyCapacityKwp       decimal.Decimal   `json:"energyCapacityKwp"`
	MinContribution         decimal.Decimal   `json:"minContribution"`
	SubscriptionPrice       decimal.Decimal   `json:"subscriptionPrice"`
	Efficiency              ProjectEfficiency `json:"efficiency"`
	Status                  ProjectStatus     `json:"status"`
	ImageURL                string            `json:"imageUrl,omitempty"`
	OperationalValidityYear int               `json:"operationalValidityYear,omitempty"`
	AuditFields
}
