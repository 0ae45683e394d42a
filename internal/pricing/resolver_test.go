package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	"github.com/m04kA/SMC-GeoBookingService/pkg/ptr"
)

func TestResolve(t *testing.T) {
	service := &domain.Service{ID: 1, Name: "Deep clean", BasePrice: 100}

	t.Run("no zone returns base price", func(t *testing.T) {
		got, err := Resolve(service, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 100.0, got.Base)
		assert.Equal(t, 0.0, got.Adjustment)
		assert.Equal(t, 100.0, got.Total)
	})

	t.Run("percentage zone multiplies base", func(t *testing.T) {
		zone := &domain.Zone{
			ID:          10,
			PricingType: domain.PricingTypePercentage,
			Multiplier:  ptr.Ptr(1.2),
		}

		got, err := Resolve(service, zone, nil)

		require.NoError(t, err)
		assert.InDelta(t, 120.0, got.Total, 1e-9)
		assert.InDelta(t, 20.0, got.Adjustment, 1e-9)
	})

	t.Run("fixed zone adds surcharge", func(t *testing.T) {
		zone := &domain.Zone{
			ID:          11,
			PricingType: domain.PricingTypeFixed,
			FixedPrice:  ptr.Ptr(15.0),
		}

		got, err := Resolve(service, zone, nil)

		require.NoError(t, err)
		assert.Equal(t, 115.0, got.Total)
		assert.Equal(t, 15.0, got.Adjustment)
	})

	t.Run("discount zone yields negative adjustment", func(t *testing.T) {
		zone := &domain.Zone{
			ID:          12,
			PricingType: domain.PricingTypePercentage,
			Multiplier:  ptr.Ptr(0.9),
		}

		got, err := Resolve(service, zone, nil)

		require.NoError(t, err)
		assert.InDelta(t, 90.0, got.Total, 1e-9)
		assert.InDelta(t, -10.0, got.Adjustment, 1e-9)
	})

	t.Run("active override beats zone rule", func(t *testing.T) {
		zone := &domain.Zone{
			ID:          10,
			PricingType: domain.PricingTypePercentage,
			Multiplier:  ptr.Ptr(1.2),
		}
		override := &domain.ServiceZonePrice{
			ServiceID:   1,
			ZoneID:      10,
			CustomPrice: 99,
			IsActive:    true,
		}

		got, err := Resolve(service, zone, override)

		require.NoError(t, err)
		assert.Equal(t, 99.0, got.Total)
		assert.Equal(t, -1.0, got.Adjustment)
	})

	t.Run("inactive override is ignored", func(t *testing.T) {
		zone := &domain.Zone{
			ID:          10,
			PricingType: domain.PricingTypePercentage,
			Multiplier:  ptr.Ptr(1.2),
		}
		override := &domain.ServiceZonePrice{
			ServiceID:   1,
			ZoneID:      10,
			CustomPrice: 99,
			IsActive:    false,
		}

		got, err := Resolve(service, zone, override)

		require.NoError(t, err)
		assert.InDelta(t, 120.0, got.Total, 1e-9)
	})

	t.Run("percentage without multiplier is a config error", func(t *testing.T) {
		zone := &domain.Zone{ID: 13, PricingType: domain.PricingTypePercentage}

		_, err := Resolve(service, zone, nil)

		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("fixed without fixed_price is a config error", func(t *testing.T) {
		zone := &domain.Zone{ID: 14, PricingType: domain.PricingTypeFixed}

		_, err := Resolve(service, zone, nil)

		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("unknown pricing type is a config error", func(t *testing.T) {
		zone := &domain.Zone{ID: 15, PricingType: "flat"}

		_, err := Resolve(service, zone, nil)

		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
