package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
	"github.com/sunyield/sunyield_backend/internal/middleware"
)

// Fallback accrual policy values, used when system config has no entry.
var (
	defaultRewardRatePerKwh    = decimal.NewFromInt(5)
	defaultUnderperformanceKwh = decimal.NewFromInt(10)
	defaultRewardCapAmount     = decimal.NewFromInt(1000)
)

const (
	underperformanceDeclineReason = "energy generation below underperformance threshold"
	rewardCappedReason            = "reward clamped to per-entry cap"
)

// rewardService accrues and serves energy rewards.
type rewardService struct {
	rewardRepo       portsrepo.RewardRepositoryFacade
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade
	projectRepo      portsrepo.ProjectRepositoryFacade
	userRepo         portsrepo.UserRepositoryFacade
	configSvc        portssvc.ConfigSvcFacade
	notifier         portssvc.NotifierSvc
}

// NewRewardService creates a new RewardService.
func NewRewardService(
	rewardRepo portsrepo.RewardRepositoryFacade,
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade,
	projectRepo portsrepo.ProjectRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	configSvc portssvc.ConfigSvcFacade,
	notifier portssvc.NotifierSvc,
) portssvc.RewardSvcFacade {
	return &rewardService{
		rewardRepo:       rewardRepo,
		subscriptionRepo: subscriptionRepo,
		projectRepo:      projectRepo,
		userRepo:         userRepo,
		configSvc:        configSvc,
		notifier:         notifier,
	}
}

// Ensure rewardService implements the portssvc.RewardSvcFacade interface
var _ portssvc.RewardSvcFacade = (*rewardService)(nil)

// AccrueMonthlyRewards distributes one month's generation proportionally to
// contribution. Shares are computed per subscriber and rounded half-up to 2
// places; the whole batch is inserted at once.
func (s *rewardService) AccrueMonthlyRewards(ctx context.Context, req dto.AccrueRewardsRequest, actorUserID string) (*dto.AccrueRewardsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.EnergyKwh.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: energy must be positive", apperrors.ErrValidation)
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, fmt.Errorf("%w: month must be 1..12", apperrors.ErrValidation)
	}

	project, err := s.projectRepo.FindProjectByID(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to find project %s: %w", req.ProjectID, err)
	}

	exists, err := s.rewardRepo.HasRewardsForPeriod(ctx, req.ProjectID, req.Month, req.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing accrual: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: rewards already accrued for project %s period %d/%d", apperrors.ErrDuplicate, req.ProjectID, req.Month, req.Year)
	}

	subs, err := s.subscriptionRepo.ListPaidSubscriptionsByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list paid subscriptions: %w", err)
	}

	totalContribution := decimal.Zero
	for _, sub := range subs {
		totalContribution = totalContribution.Add(sub.ContributionAmount)
	}
	if totalContribution.IsZero() {
		return nil, fmt.Errorf("project %s has no paid subscriptions: %w", req.ProjectID, apperrors.ErrNoActiveSubscriptions)
	}

	rate := s.configSvc.GetDecimal(ctx, domain.ConfigRewardRatePerKwh, defaultRewardRatePerKwh)
	threshold := s.configSvc.GetDecimal(ctx, domain.ConfigUnderperformanceThreshold, defaultUnderperformanceKwh)
	capAmount := s.configSvc.GetDecimal(ctx, domain.ConfigRewardCapAmount, defaultRewardCapAmount)
	underperformed := req.EnergyKwh.LessThan(threshold)

	now := time.Now().UTC()
	periodDate := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	totalValue := req.EnergyKwh.Mul(rate)

	rewards := make([]domain.Reward, len(subs))
	totalDistributed := decimal.Zero
	for i, sub := range subs {
		reward := domain.Reward{
			RewardID:  uuid.NewString(),
			UserID:    sub.UserID,
			ProjectID: req.ProjectID,
			Month:     req.Month,
			Year:      req.Year,
			EnergyKwh: req.EnergyKwh,
			Date:      periodDate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorUserID,
			},
		}

		switch {
		case underperformed:
			reward.RewardAmount = decimal.Zero
			reward.Status = domain.RewardDeclined
			reward.Reason = underperformanceDeclineReason
		default:
			amount := totalValue.Mul(sub.ContributionAmount).Div(totalContribution).Round(2)
			if amount.GreaterThan(capAmount) {
				reward.RewardAmount = capAmount
				reward.Status = domain.RewardCapped
				reward.Reason = rewardCappedReason
			} else {
				reward.RewardAmount = amount
				reward.Status = domain.RewardSuccess
			}
			totalDistributed = totalDistributed.Add(reward.RewardAmount)
		}

		rewards[i] = reward
	}

	if err := s.rewardRepo.SaveRewards(ctx, rewards); err != nil {
		logger.Error("Failed to save rewards", slog.String("error", err.Error()), slog.String("project_id", req.ProjectID))
		return nil, fmt.Errorf("failed to save rewards: %w", err)
	}

	logger.Info("Rewards accrued",
		slog.String("project_id", req.ProjectID),
		slog.Int("month", req.Month),
		slog.Int("year", req.Year),
		slog.Int("entries", len(rewards)),
		slog.String("total_distributed", totalDistributed.String()))

	// Notify subscribers off the request path; delivery failures only log.
	if s.notifier != nil {
		go s.notifyRewards(context.WithoutCancel(ctx), rewards)
	}

	responses := make([]dto.RewardResponse, len(rewards))
	for i := range rewards {
		responses[i] = dto.ToRewardResponse(&rewards[i])
	}
	return &dto.AccrueRewardsResponse{
		ProjectID:        project.ProjectID,
		Month:            req.Month,
		Year:             req.Year,
		TotalDistributed: totalDistributed,
		Rewards:          responses,
	}, nil
}

func (s *rewardService) notifyRewards(ctx context.Context, rewards []domain.Reward) {
	logger := middleware.GetLoggerFromCtx(ctx)
	for _, reward := range rewards {
		if reward.Status != domain.RewardSuccess && reward.Status != domain.RewardCapped {
			continue
		}
		user, err := s.userRepo.FindUserByID(ctx, reward.UserID)
		if err != nil {
			logger.Warn("Skipping reward notification, user lookup failed", slog.String("user_id", reward.UserID), slog.String("error", err.Error()))
			continue
		}
		if err := s.notifier.SendRewardNotification(ctx, user.Email, reward.RewardAmount.String(), reward.Month, reward.Year); err != nil {
			logger.Warn("Reward notification failed", slog.String("user_id", reward.UserID), slog.String("error", err.Error()))
		}
	}
}

// ListRewardsByUser retrieves a user's reward history.
func (s *rewardService) ListRewardsByUser(ctx context.Context, userID string, params dto.ListRewardsParams) (*dto.ListRewardsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rewards, nextToken, err := s.rewardRepo.ListRewardsByUser(ctx, userID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rewards: %w", err)
	}

	resp := dto.ToListRewardsResponse(rewards, nextToken)
	return &resp, nil
}

// ListRewardsByProjectPeriod retrieves all entries for one accrual run.
func (s *rewardService) ListRewardsByProjectPeriod(ctx context.Context, projectID string, month, year int) ([]domain.Reward, error) {
	rewards, err := s.rewardRepo.ListRewardsByProjectPeriod(ctx, projectID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rewards for project %s: %w", projectID, err)
	}
	return rewards, nil
}

// ListProjectsPendingAccrual returns ACTIVE projects with no accrual for the
// period. The scheduler uses this to nudge admins about missing readings.
func (s *rewardService) ListProjectsPendingAccrual(ctx context.Context, month, year int) ([]domain.Project, error) {
	status := domain.ProjectActive
	projects, err := s.projectRepo.ListProjects(ctx, &status, 1000, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list active projects: %w", err)
	}

	pending := make([]domain.Project, 0, len(projects))
	for _, project := range projects {
		done, err := s.rewardRepo.HasRewardsForPeriod(ctx, project.ProjectID, month, year)
		if err != nil {
			return nil, fmt.Errorf("failed to check accrual for project %s: %w", project.ProjectID, err)
		}
		if !done {
			pending = append(pending, project)
		}
	}
	return pending, nil
}
