package create_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	"github.com/m04kA/SMC-GeoBookingService/internal/geozone"
	catalogRepo "github.com/m04kA/SMC-GeoBookingService/internal/infra/storage/catalog"
	settingsRepo "github.com/m04kA/SMC-GeoBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-GeoBookingService/pkg/geomath"
	"github.com/m04kA/SMC-GeoBookingService/pkg/ptr"
	"github.com/m04kA/SMC-GeoBookingService/pkg/types"
)

// Фейки для изоляции use case от БД

type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	copied := *booking
	copied.ID = r.nextID
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	r.bookings = append(r.bookings, &copied)

	result := copied
	return &result, nil
}

func (r *fakeBookingRepo) GetByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.ScheduledDate.Equal(date) && b.CountsAgainstCapacity() {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

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

type fakeScheduleRepo struct {
	templates      []*domain.WeekdayTemplate
	nonWorkingDays []domain.NonWorkingDay
}

func (r *fakeScheduleRepo) ListTemplates(_ context.Context) ([]*domain.WeekdayTemplate, error) {
	return r.templates, nil
}

func (r *fakeScheduleRepo) ListNonWorkingDays(_ context.Context, _, _ time.Time) ([]domain.NonWorkingDay, error) {
	return r.nonWorkingDays, nil
}

type fakeSettingsRepo struct {
	settings *domain.CapacitySettings
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*domain.CapacitySettings, error) {
	if r.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return r.settings, nil
}

// fakeTxManager сериализует все транзакции одним мьютексом,
// эмулируя сериализуемый уровень изоляции
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// racingTxManager эмулирует проигравшего гонку за слот: первые failures
// вызовов завершаются ошибкой COMMIT с заданным кодом SQLSTATE, не применяя
// эффекты fn (как после отката), последующие вызовы проходят нормально
type racingTxManager struct {
	failures int
	code     pq.ErrorCode
	calls    int
}

func (m *racingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if m.calls <= m.failures {
		return fmt.Errorf("txmanager: commit transaction: %w", &pq.Error{Code: m.code})
	}
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Общие данные тестов

// 2030-01-07 - понедельник
var testDate = time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)

func mondayTemplates(t *testing.T) []*domain.WeekdayTemplate {
	t.Helper()

	return []*domain.WeekdayTemplate{
		{
			ID:       1,
			Weekday:  1,
			IsActive: true,
			Start1:   ptr.Ptr(types.TimeString("09:00")),
			End1:     ptr.Ptr(types.TimeString("12:00")),
			Start2:   ptr.Ptr(types.TimeString("14:00")),
			End2:     ptr.Ptr(types.TimeString("17:00")),
		},
	}
}

func fixedZone(t *testing.T, id int64, surcharge float64) *domain.Zone {
	t.Helper()

	geometry, err := domain.NewCircleGeometry(geozonePoint(), 5000)
	require.NoError(t, err)

	return &domain.Zone{
		ID:          id,
		Name:        "downtown",
		Geometry:    geometry,
		PricingType: domain.PricingTypeFixed,
		FixedPrice:  &surcharge,
		Priority:    10,
		IsActive:    true,
	}
}

func geozonePoint() geomath.Point {
	return geomath.Point{Lat: 55.75, Lng: 37.61}
}

func newTestUseCase(
	bookingRepo *fakeBookingRepo,
	catalog *fakeCatalogRepo,
	zones *fakeZoneRepo,
	scheduleRepo *fakeScheduleRepo,
	settings *fakeSettingsRepo,
) *UseCase {
	return NewUseCase(
		bookingRepo,
		catalog,
		zones,
		scheduleRepo,
		settings,
		geozone.NewResolver(nopLogger{}),
		nil,
		&fakeTxManager{},
		nopLogger{},
	)
}

func TestExecute_FixedZoneSurcharge(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	catalog := &fakeCatalogRepo{
		service: &domain.Service{ID: 7, Name: "Deep clean", BasePrice: 89.0, IsActive: true},
	}
	zones := &fakeZoneRepo{zones: []*domain.Zone{fixedZone(t, 3, 15.0)}}
	scheduleRepo := &fakeScheduleRepo{templates: mondayTemplates(t)}
	settings := &fakeSettingsRepo{settings: &domain.CapacitySettings{MaxPerSlot: 2, MaxPerDay: 10}}

	uc := newTestUseCase(bookingRepo, catalog, zones, scheduleRepo, settings)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		ServiceID: 7,
		Date:      testDate,
		SlotStart: types.TimeString("09:00"),
		Lat:       55.75,
		Lng:       37.61,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	require.NotNil(t, resp.ZoneID)
	assert.Equal(t, int64(3), *resp.ZoneID)
	assert.Equal(t, types.TimeString("12:00"), resp.SlotEnd)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 89.0, resp.BasePrice)
	assert.Equal(t, 15.0, resp.Adjustment)
	assert.Equal(t, 104.0, resp.TotalAmount)
}

func TestExecute_OutsideAllZones_BasePrice(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	catalog := &fakeCatalogRepo{
		service: &domain.Service{ID: 7, Name: "Deep clean", BasePrice: 89.0, IsActive: true},
	}
	zones := &fakeZoneRepo{zones: []*domain.Zone{fixedZone(t, 3, 15.0)}}
	scheduleRepo := &fakeScheduleRepo{templates: mondayTemplates(t)}
	settings := &fakeSettingsRepo{settings: &domain.CapacitySettings{MaxPerSlot: 2, MaxPerDay: 10}}

	uc := newTestUseCase(bookingRepo, catalog, zones, scheduleRepo, settings)

	// Точка далеко за пределами пятикилометрового круга
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		ServiceID: 7,
		Date:      testDate,
		SlotStart: types.TimeString("14:00"),
		Lat:       59.93,
		Lng:       30.33,
	})
	require.NoError(t, err)

	assert.Nil(t, resp.ZoneID)
	assert.Equal(t, 0.0, resp.Adjustment)
	assert.Equal(t, 89.0, resp.TotalAmount)
}

func TestExecute_SlotNotOffered(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	catalog := &fakeCatalogRepo{
		service: &domain.Service{ID: 7, Name: "Deep clean", BasePrice: 89.0, IsActive: true},
	}
	scheduleRepo := &fakeScheduleRepo{templates: mondayTemplates(t)}
	settings := &fakeSettingsRepo{settings: &domain.CapacitySettings{MaxPerSlot: 2, MaxPerDay: 10}}

	uc := newTestUseCase(bookingRepo, catalog, &fakeZoneRepo{}, scheduleRepo, settings)

	// Время начала не совпадает ни с одним окном понедельника
	_, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		ServiceID: 7,
		Date:      testDate,
		SlotStart: types.TimeString("10:00"),
		Lat:       55.75,
		Lng:       37.61,
	})
	assert.ErrorIs(t, err, ErrSlotNotOffered)
	assert.Equal(t, 0, bookingRepo.count())
}

func TestExecute_NonWorkingDay(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	catalog := &fakeCatalogRepo{
		service: &domain.Service{ID: 7, Name: "Deep clean", BasePrice: 89.0, IsActive: true},
	}
	scheduleRepo := &fakeScheduleRepo{
		templates: mondayTemplates(t),
		nonWorkingDays: []domain.NonWorkingDay{
			{ID: 1, Date: testDate, Reason: ptr.Ptr("maintenance")},
		},
	}
	settings := &fakeSettingsRepo{settings: &domain.CapacitySettings{MaxPerSlot: 2, MaxPerDay: 10}}

	uc := newTestUseCase(bookingRepo, catalog, &fakeZoneRepo{}, scheduleRepo, settings)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		ServiceID: 7,
		Date:      testDate,
		SlotStart: types.TimeString("09:00"),
		Lat:       55.75,
		Lng:       37.61,
	})
	assert.ErrorIs(t, err, ErrSlotNotOffered)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeCatalogRepo{},
		&fakeZoneRepo{},
		&fakeScheduleRepo{templates: mondayTemplates(t)},
		&fakeSettingsRepo{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		ServiceID: 404,
		Date:      testDate,
		SlotStart: types.TimeString("09:00"),
		Lat:       55.75,
		Lng:       37.61,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeCatalogRepo{},
		&fakeZoneRepo{},
		&fakeScheduleRepo{},
		&fakeSettingsRepo{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		ServiceID: 7,
		Date:      time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC),
		SlotStart: types.TimeString("09:00"),
		Lat:       55.75,
		Lng:       37.61,
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidPricingConfig(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	catalog := &fakeCatalogRepo{
		service: &domain.Service{ID: 7, Name: "Deep clean", BasePrice: 89.0, IsActive: true},
	}

	// Зона percentage без множителя - противоречивая конфигурация
	geometry, err := domain.NewCircleGeometry(geozonePoint(), 5000)
	require.NoError(t, err)
	broken := &domain.Zone{
		ID:          3,
		Name:        "broken",
		Geometry:    geometry,
		PricingType: domain.PricingTypePercentage,
		Priority:    10,
		IsActive:    true,
	}

	scheduleRepo := &fakeScheduleRepo{templates: mondayTemplates(t)}
	settings := &fakeSettingsRepo{settings: &domain.CapacitySettings{MaxPerSlot: 2, MaxPerDay: 10}}

	uc := newTestUseCase(bookingRepo, catalog, &fakeZoneRepo{zones: []*domain.Zone{broken}}, scheduleRepo, settings)

	_, err = uc.Execute(context.Background(), &Request{
		UserID:    42,
		ServiceID: 7,
		Date:      testDate,
		SlotStart: types.TimeString("09:00"),
		Lat:       55.75,
		Lng:       37.61,
	})
	// Резолвер зон пропускает зону со сломанным ценообразованием,
	// поэтому бронирование уходит по базовой цене
	require.NoError(t, err)
	assert.Equal(t, 1, bookingRepo.count())
}

func TestExecute_SlotFull(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	catalog := &fakeCatalogRepo{
		service: &domain.Service{ID: 7, Name: "Deep clean", BasePrice: 89.0, IsActive: true},
	}
	scheduleRepo := &fakeScheduleRepo{templates: mondayTemplates(t)}
	settings := &fakeSettingsRepo{settings: &domain.CapacitySettings{MaxPerSlot: 1, MaxPerDay: 10}}

	uc := newTestUseCase(bookingRepo, catalog, &fakeZoneRepo{}, scheduleRepo, settings)

	req := &Request{
		UserID:    42,
		ServiceID: 7,
		Date:      testDate,
		SlotStart: types.TimeString("09:00"),
		Lat:       55.75,
		Lng:       37.61,
	}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.Equal(t, 1, bookingRepo.count())
}

func TestExecute_DayFull(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	catalog := &fakeCatalogRepo{
		service: &domain.Service{ID: 7, Name: "Deep clean", BasePrice: 89.0, IsActive: true},
	}
	scheduleRepo := &fakeScheduleRepo{templates: mondayTemplates(t)}
	settings := &fakeSettingsRepo{settings: &domain.CapacitySettings{MaxPerSlot: 5, MaxPerDay: 1}}

	uc := newTestUseCase(bookingRepo, catalog, &fakeZoneRepo{}, scheduleRepo, settings)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		ServiceID: 7,
		Date:      testDate,
		SlotStart: types.TimeString("09:00"),
		Lat:       55.75,
		Lng:       37.61,
	})
	require.NoError(t, err)

	// Другой слот того же дня упирается в дневной лимит
	_, err = uc.Execute(context.Background(), &Request{
		UserID:    43,
		ServiceID: 7,
		Date:      testDate,
		SlotStart: types.TimeString("14:00"),
		Lat:       55.75,
		Lng:       37.61,
	})
	assert.ErrorIs(t, err, ErrDayFull)
	assert.Equal(t, 1, bookingRepo.count())
}

// Гонка за последний слот: из N конкурентных попыток проходит ровно одна
func TestExecute_ConcurrentLastSlot(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	catalog := &fakeCatalogRepo{
		service: &domain.Service{ID: 7, Name: "Deep clean", BasePrice: 89.0, IsActive: true},
	}
	scheduleRepo := &fakeScheduleRepo{templates: mondayTemplates(t)}
	settings := &fakeSettingsRepo{settings: &domain.CapacitySettings{MaxPerSlot: 1, MaxPerDay: 10}}

	uc := newTestUseCase(bookingRepo, catalog, &fakeZoneRepo{}, scheduleRepo, settings)

	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = uc.Execute(context.Background(), &Request{
				UserID:    int64(100 + n),
				ServiceID: 7,
				Date:      testDate,
				SlotStart: types.TimeString("09:00"),
				Lat:       55.75,
				Lng:       37.61,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	rejected := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			assert.ErrorIs(t, err, ErrSlotFull)
			rejected++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, rejected)
	assert.Equal(t, 1, bookingRepo.count())
}

// Проигравший гонку получает 40001 на COMMIT; повтор на свежем снимке
// видит бронирование победителя и отклоняется как ErrSlotFull, а не 503
func TestExecute_SerializationFailureMapsToSlotFull(t *testing.T) {
	// Бронирование победителя уже зафиксировано
	bookingRepo := &fakeBookingRepo{
		nextID: 1,
		bookings: []*domain.Booking{
			{
				ID:            1,
				UserID:        41,
				ServiceID:     7,
				ScheduledDate: testDate,
				SlotStart:     types.TimeString("09:00"),
				SlotEnd:       types.TimeString("12:00"),
				Status:        domain.StatusPending,
			},
		},
	}
	catalog := &fakeCatalogRepo{
		service: &domain.Service{ID: 7, Name: "Deep clean", BasePrice: 89.0, IsActive: true},
	}
	scheduleRepo := &fakeScheduleRepo{templates: mondayTemplates(t)}
	settings := &fakeSettingsRepo{settings: &domain.CapacitySettings{MaxPerSlot: 1, MaxPerDay: 10}}

	txManager := &racingTxManager{failures: 1, code: "40001"}

	uc := NewUseCase(
		bookingRepo,
		catalog,
		&fakeZoneRepo{},
		scheduleRepo,
		settings,
		geozone.NewResolver(nopLogger{}),
		nil,
		txManager,
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		ServiceID: 7,
		Date:      testDate,
		SlotStart: types.TimeString("09:00"),
		Lat:       55.75,
		Lng:       37.61,
	})
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, 2, txManager.calls)
	assert.Equal(t, 1, bookingRepo.count())
}

// Транзиентный сбой сериализации при свободном слоте: повтор проходит
func TestExecute_SerializationFailureRetrySucceeds(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	catalog := &fakeCatalogRepo{
		service: &domain.Service{ID: 7, Name: "Deep clean", BasePrice: 89.0, IsActive: true},
	}
	scheduleRepo := &fakeScheduleRepo{templates: mondayTemplates(t)}
	settings := &fakeSettingsRepo{settings: &domain.CapacitySettings{MaxPerSlot: 2, MaxPerDay: 10}}

	txManager := &racingTxManager{failures: 1, code: "40001"}

	uc := NewUseCase(
		bookingRepo,
		catalog,
		&fakeZoneRepo{},
		scheduleRepo,
		settings,
		geozone.NewResolver(nopLogger{}),
		nil,
		txManager,
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		ServiceID: 7,
		Date:      testDate,
		SlotStart: types.TimeString("09:00"),
		Lat:       55.75,
		Lng:       37.61,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, txManager.calls)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 1, bookingRepo.count())
}

// Ошибки Postgres других классов не повторяются
func TestExecute_NonSerializationPqErrorNotRetried(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	catalog := &fakeCatalogRepo{
		service: &domain.Service{ID: 7, Name: "Deep clean", BasePrice: 89.0, IsActive: true},
	}
	scheduleRepo := &fakeScheduleRepo{templates: mondayTemplates(t)}
	settings := &fakeSettingsRepo{settings: &domain.CapacitySettings{MaxPerSlot: 2, MaxPerDay: 10}}

	// 23505 unique_violation - ошибка целостности, а не сериализации
	txManager := &racingTxManager{failures: 1, code: "23505"}

	uc := NewUseCase(
		bookingRepo,
		catalog,
		&fakeZoneRepo{},
		scheduleRepo,
		settings,
		geozone.NewResolver(nopLogger{}),
		nil,
		txManager,
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    42,
		ServiceID: 7,
		Date:      testDate,
		SlotStart: types.TimeString("09:00"),
		Lat:       55.75,
		Lng:       37.61,
	})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, 1, txManager.calls)
	assert.Equal(t, 0, bookingRepo.count())
}

func TestExecute_DefaultSettingsWhenMissing(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	catalog := &fakeCatalogRepo{
		service: &domain.Service{ID: 7, Name: "Deep clean", BasePrice: 89.0, IsActive: true},
	}
	scheduleRepo := &fakeScheduleRepo{templates: mondayTemplates(t)}

	// Строка настроек отсутствует - действует дефолт maxPerSlot=1
	uc := newTestUseCase(bookingRepo, catalog, &fakeZoneRepo{}, scheduleRepo, &fakeSettingsRepo{})

	req := &Request{
		UserID:    42,
		ServiceID: 7,
		Date:      testDate,
		SlotStart: types.TimeString("09:00"),
		Lat:       55.75,
		Lng:       37.61,
	}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotFull)
}
