package get_price_quote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	"github.com/m04kA/SMC-GeoBookingService/internal/geozone"
	catalogRepo "github.com/m04kA/SMC-GeoBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-GeoBookingService/pkg/geomath"
	"github.com/m04kA/SMC-GeoBookingService/pkg/ptr"
)

type fakeCatalogRepo struct {
	service  *domain.Service
	override *domain.ServiceZonePrice
}

func (r *fakeCatalogRepo) GetService(_ context.Context, id int64) (*domain.Service, error) {
	if r.service == nil || r.service.ID != id {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return r.service, nil
}

func (r *fakeCatalogRepo) GetZonePrice(_ context.Context, serviceID, zoneID int64) (*domain.ServiceZonePrice, error) {
	if r.override == nil || r.override.ServiceID != serviceID || r.override.ZoneID != zoneID {
		return nil, catalogRepo.ErrOverrideNotFound
	}
	return r.override, nil
}

type fakeZoneRepo struct {
	zones []*domain.Zone
}

func (r *fakeZoneRepo) ListActive(_ context.Context) ([]*domain.Zone, error) {
	return r.zones, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func circleZone(t *testing.T, id int64, priority int, pricingType domain.PricingType) *domain.Zone {
	t.Helper()

	geometry, err := domain.NewCircleGeometry(geomath.Point{Lat: 55.75, Lng: 37.61}, 5000)
	require.NoError(t, err)

	zone := &domain.Zone{
		ID:          id,
		Name:        "downtown",
		Geometry:    geometry,
		PricingType: pricingType,
		Priority:    priority,
		IsActive:    true,
	}

	switch pricingType {
	case domain.PricingTypePercentage:
		zone.Multiplier = ptr.Ptr(1.2)
	case domain.PricingTypeFixed:
		zone.FixedPrice = ptr.Ptr(15.0)
	}

	return zone
}

func newTestUseCase(catalog *fakeCatalogRepo, zones *fakeZoneRepo) *UseCase {
	return NewUseCase(catalog, zones, geozone.NewResolver(nopLogger{}), nopLogger{})
}

func TestExecute_PercentageZone(t *testing.T) {
	catalog := &fakeCatalogRepo{
		service: &domain.Service{ID: 7, Name: "Deep clean", BasePrice: 100.0, IsActive: true},
	}
	zones := &fakeZoneRepo{zones: []*domain.Zone{circleZone(t, 3, 10, domain.PricingTypePercentage)}}

	resp, err := newTestUseCase(catalog, zones).Execute(context.Background(), &Request{
		ServiceID: 7,
		Lat:       55.75,
		Lng:       37.61,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.ZoneID)
	assert.Equal(t, int64(3), *resp.ZoneID)
	assert.Equal(t, 100.0, resp.BasePrice)
	assert.InDelta(t, 20.0, resp.Adjustment, 1e-9)
	assert.InDelta(t, 120.0, resp.TotalAmount, 1e-9)
}

func TestExecute_OverrideBeatsZonePricing(t *testing.T) {
	catalog := &fakeCatalogRepo{
		service:  &domain.Service{ID: 7, Name: "Deep clean", BasePrice: 100.0, IsActive: true},
		override: &domain.ServiceZonePrice{ID: 1, ServiceID: 7, ZoneID: 3, CustomPrice: 99.0, IsActive: true},
	}
	zones := &fakeZoneRepo{zones: []*domain.Zone{circleZone(t, 3, 10, domain.PricingTypePercentage)}}

	resp, err := newTestUseCase(catalog, zones).Execute(context.Background(), &Request{
		ServiceID: 7,
		Lat:       55.75,
		Lng:       37.61,
	})
	require.NoError(t, err)

	assert.InDelta(t, -1.0, resp.Adjustment, 1e-9)
	assert.InDelta(t, 99.0, resp.TotalAmount, 1e-9)
}

func TestExecute_OutsideAllZones(t *testing.T) {
	catalog := &fakeCatalogRepo{
		service: &domain.Service{ID: 7, Name: "Deep clean", BasePrice: 100.0, IsActive: true},
	}
	zones := &fakeZoneRepo{zones: []*domain.Zone{circleZone(t, 3, 10, domain.PricingTypeFixed)}}

	resp, err := newTestUseCase(catalog, zones).Execute(context.Background(), &Request{
		ServiceID: 7,
		Lat:       59.93,
		Lng:       30.33,
	})
	require.NoError(t, err)

	assert.Nil(t, resp.ZoneID)
	assert.Nil(t, resp.ZoneName)
	assert.Equal(t, 0.0, resp.Adjustment)
	assert.Equal(t, 100.0, resp.TotalAmount)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	_, err := newTestUseCase(&fakeCatalogRepo{}, &fakeZoneRepo{}).Execute(context.Background(), &Request{
		ServiceID: 404,
		Lat:       55.75,
		Lng:       37.61,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidCoordinates(t *testing.T) {
	uc := newTestUseCase(&fakeCatalogRepo{}, &fakeZoneRepo{})

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 7, Lat: 91.0, Lng: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 7, Lat: 0, Lng: -181.0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
