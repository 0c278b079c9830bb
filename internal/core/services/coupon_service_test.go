package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/core/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
)

type CouponServiceTestSuite struct {
	suite.Suite
	mockCouponRepo *MockCouponRepository
	service        portssvc.CouponSvcFacade
}

func (suite *CouponServiceTestSuite) SetupTest() {
	suite.mockCouponRepo = new(MockCouponRepository)
	suite.service = services.NewCouponService(suite.mockCouponRepo)
}

func (suite *CouponServiceTestSuite) TestCreateCoupon_NormalizesCode() {
	ctx := context.Background()
	req := dto.CreateCouponRequest{
		Code:            "  sunny10 ",
		DiscountPercent: decimal.NewFromInt(10),
		ExpiresAt:       time.Now().UTC().Add(24 * time.Hour),
		MaxRedemptions:  100,
	}

	var saved domain.Coupon
	suite.mockCouponRepo.On("SaveCoupon", ctx, mock.AnythingOfType("domain.Coupon")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.Coupon)
	}).Return(nil).Once()

	coupon, err := suite.service.CreateCoupon(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal("SUNNY10", coupon.Code)
	suite.True(coupon.IsActive)
	suite.Equal("SUNNY10", saved.Code)
	suite.mockCouponRepo.AssertExpectations(suite.T())
}

func (suite *CouponServiceTestSuite) TestCreateCoupon_RejectsBadDiscount() {
	ctx := context.Background()

	for _, pct := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5), decimal.NewFromInt(101)} {
		req := dto.CreateCouponRequest{Code: "SUNNY10", DiscountPercent: pct, ExpiresAt: time.Now().Add(time.Hour)}
		_, err := suite.service.CreateCoupon(ctx, req, uuid.NewString())
		suite.ErrorIs(err, apperrors.ErrValidation, "discount %s should be rejected", pct)
	}
	suite.mockCouponRepo.AssertNotCalled(suite.T(), "SaveCoupon", mock.Anything, mock.Anything)
}

func (suite *CouponServiceTestSuite) TestCreateCoupon_RejectsNegativeMaxRedemptions() {
	ctx := context.Background()
	req := dto.CreateCouponRequest{
		Code:            "SUNNY10",
		DiscountPercent: decimal.NewFromInt(10),
		ExpiresAt:       time.Now().Add(time.Hour),
		MaxRedemptions:  -1,
	}

	_, err := suite.service.CreateCoupon(ctx, req, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CouponServiceTestSuite) TestValidateCoupon_AppliesDiscount() {
	ctx := context.Background()
	coupon := &domain.Coupon{
		CouponID:        uuid.NewString(),
		Code:            "SUNNY10",
		DiscountPercent: decimal.NewFromInt(10),
		ExpiresAt:       time.Now().UTC().Add(time.Hour),
		IsActive:        true,
	}

	suite.mockCouponRepo.On("FindCouponByCode", ctx, "SUNNY10").Return(coupon, nil).Once()

	got, discounted, err := suite.service.ValidateCoupon(ctx, " sunny10 ", decimal.NewFromInt(1000))

	suite.Require().NoError(err)
	suite.Equal(coupon.CouponID, got.CouponID)
	suite.True(discounted.Equal(decimal.NewFromInt(900)), "expected 900, got %s", discounted)
}

func (suite *CouponServiceTestSuite) TestValidateCoupon_ExpiredOrExhausted() {
	ctx := context.Background()

	expired := &domain.Coupon{
		Code:            "OLD",
		DiscountPercent: decimal.NewFromInt(10),
		ExpiresAt:       time.Now().UTC().Add(-time.Hour),
		IsActive:        true,
	}
	exhausted := &domain.Coupon{
		Code:            "FULL",
		DiscountPercent: decimal.NewFromInt(10),
		ExpiresAt:       time.Now().UTC().Add(time.Hour),
		IsActive:        true,
		MaxRedemptions:  5,
		Redemptions:     5,
	}
	inactive := &domain.Coupon{
		Code:            "OFF",
		DiscountPercent: decimal.NewFromInt(10),
		ExpiresAt:       time.Now().UTC().Add(time.Hour),
		IsActive:        false,
	}

	suite.mockCouponRepo.On("FindCouponByCode", ctx, "OLD").Return(expired, nil).Once()
	suite.mockCouponRepo.On("FindCouponByCode", ctx, "FULL").Return(exhausted, nil).Once()
	suite.mockCouponRepo.On("FindCouponByCode", ctx, "OFF").Return(inactive, nil).Once()

	for _, code := range []string{"OLD", "FULL", "OFF"} {
		_, _, err := suite.service.ValidateCoupon(ctx, code, decimal.NewFromInt(500))
		suite.ErrorIs(err, apperrors.ErrValidation, "coupon %s should be unusable", code)
	}
}

func (suite *CouponServiceTestSuite) TestUpdateCoupon_PatchesProvidedFields() {
	ctx := context.Background()
	existing := &domain.Coupon{
		CouponID:        uuid.NewString(),
		Code:            "SUNNY10",
		DiscountPercent: decimal.NewFromInt(10),
		ExpiresAt:       time.Now().UTC().Add(time.Hour),
		MaxRedemptions:  100,
		IsActive:        true,
	}

	suite.mockCouponRepo.On("FindCouponByID", ctx, existing.CouponID).Return(existing, nil).Once()

	var updated domain.Coupon
	suite.mockCouponRepo.On("UpdateCoupon", ctx, mock.AnythingOfType("domain.Coupon")).Run(func(args mock.Arguments) {
		updated = args.Get(1).(domain.Coupon)
	}).Return(nil).Once()

	newPct := decimal.NewFromInt(25)
	inactive := false
	req := dto.UpdateCouponRequest{DiscountPercent: &newPct, IsActive: &inactive}

	coupon, err := suite.service.UpdateCoupon(ctx, existing.CouponID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(coupon.DiscountPercent.Equal(newPct))
	suite.False(coupon.IsActive)
	suite.Equal(100, coupon.MaxRedemptions)
	suite.True(updated.DiscountPercent.Equal(newPct))
}

func (suite *CouponServiceTestSuite) TestUpdateCoupon_RejectsBadDiscount() {
	ctx := context.Background()
	existing := &domain.Coupon{CouponID: uuid.NewString(), Code: "SUNNY10", DiscountPercent: decimal.NewFromInt(10)}

	suite.mockCouponRepo.On("FindCouponByID", ctx, existing.CouponID).Return(existing, nil).Once()

	bad := decimal.NewFromInt(150)
	_, err := suite.service.UpdateCoupon(ctx, existing.CouponID, dto.UpdateCouponRequest{DiscountPercent: &bad}, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCouponRepo.AssertNotCalled(suite.T(), "UpdateCoupon", mock.Anything, mock.Anything)
}

func (suite *CouponServiceTestSuite) TestRedeemCoupon_Delegates() {
	ctx := context.Background()
	couponID := uuid.NewString()

	suite.mockCouponRepo.On("IncrementRedemptions", ctx, couponID).Return(nil).Once()

	err := suite.service.RedeemCoupon(ctx, couponID)

	suite.Require().NoError(err)
	suite.mockCouponRepo.AssertExpectations(suite.T())
}

func TestCouponService(t *testing.T) {
	suite.Run(t, new(CouponServiceTestSuite))
}
