package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iron-woodman/NailBot/internal/schedule"
	"github.com/iron-woodman/NailBot/internal/service/servicetest"
)

func newCatalog() (*CatalogService, *servicetest.ServiceStore) {
	store := servicetest.NewServiceStore()
	return NewCatalogService(store, zap.NewNop()), store
}

func TestCatalogCreate(t *testing.T) {
	catalog, _ := newCatalog()
	ctx := context.Background()

	service, err := catalog.Create(ctx, "Маникюр", 60, 250000, "Классический маникюр")
	require.NoError(t, err)
	assert.NotZero(t, service.ID)
	assert.True(t, service.Active)

	// имя уникально
	_, err = catalog.Create(ctx, "Маникюр", 90, 300000, "")
	assert.ErrorIs(t, err, schedule.ErrAlreadyExists)
}

func TestCatalogCreateValidation(t *testing.T) {
	catalog, _ := newCatalog()
	ctx := context.Background()

	_, err := catalog.Create(ctx, "", 60, 250000, "")
	assert.ErrorIs(t, err, schedule.ErrValidation)

	_, err = catalog.Create(ctx, "Маникюр", 0, 250000, "")
	assert.ErrorIs(t, err, schedule.ErrValidation)

	_, err = catalog.Create(ctx, "Маникюр", 60, -1, "")
	assert.ErrorIs(t, err, schedule.ErrValidation)
}

func TestCatalogUpdatePartial(t *testing.T) {
	catalog, _ := newCatalog()
	ctx := context.Background()

	service, err := catalog.Create(ctx, "Маникюр", 60, 250000, "")
	require.NoError(t, err)

	price := 300000
	updated, err := catalog.Update(ctx, service.ID, ServiceUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 300000, updated.Price)
	assert.Equal(t, "Маникюр", updated.Name)
	assert.Equal(t, 60, updated.DurationMinutes)

	badDuration := -10
	_, err = catalog.Update(ctx, service.ID, ServiceUpdate{DurationMinutes: &badDuration})
	assert.ErrorIs(t, err, schedule.ErrValidation)

	_, err = catalog.Update(ctx, 999, ServiceUpdate{Price: &price})
	assert.ErrorIs(t, err, schedule.ErrNotFound)
}

func TestCatalogUpdateNameConflict(t *testing.T) {
	catalog, _ := newCatalog()
	ctx := context.Background()

	_, err := catalog.Create(ctx, "Маникюр", 60, 250000, "")
	require.NoError(t, err)
	second, err := catalog.Create(ctx, "Педикюр", 90, 350000, "")
	require.NoError(t, err)

	taken := "Маникюр"
	_, err = catalog.Update(ctx, second.ID, ServiceUpdate{Name: &taken})
	assert.ErrorIs(t, err, schedule.ErrAlreadyExists)

	// своё собственное имя — не конфликт
	same := "Педикюр"
	_, err = catalog.Update(ctx, second.ID, ServiceUpdate{Name: &same})
	assert.NoError(t, err)
}

func TestCatalogDeactivate(t *testing.T) {
	catalog, _ := newCatalog()
	ctx := context.Background()

	service, err := catalog.Create(ctx, "Маникюр", 60, 250000, "")
	require.NoError(t, err)
	_, err = catalog.Create(ctx, "Педикюр", 90, 350000, "")
	require.NoError(t, err)

	deactivated, err := catalog.Deactivate(ctx, service.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	// услуга исчезает из активных, но остаётся в полном списке
	active, err := catalog.ActiveServices(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := catalog.Services(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = catalog.Deactivate(ctx, 999)
	assert.ErrorIs(t, err, schedule.ErrNotFound)
}
