package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvrant/cadasta-platform/internal/models"
)

func TestSpatialUnitCreate_DefaultsToParcel(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewSpatialUnitService(db)

	mock.ExpectExec(`INSERT INTO "spatial_units"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	su, err := svc.Create(context.Background(), uuid.New(), CreateSpatialUnitRequest{
		Name: "Long Island",
	})

	require.NoError(t, err)
	assert.Equal(t, models.UnitParcel, su.Type)
	assert.Nil(t, su.Geometry)
	assert.NotEqual(t, uuid.Nil, su.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpatialUnitCreate_InvalidType(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewSpatialUnitService(db)

	su, err := svc.Create(context.Background(), uuid.New(), CreateSpatialUnitRequest{
		Name: "Long Island",
		Type: "ZZ",
	})

	require.Error(t, err)
	assert.Nil(t, su)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpatialUnitCreate_RejectsUnknownAttribute(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewSpatialUnitService(db)

	su, err := svc.Create(context.Background(), uuid.New(), CreateSpatialUnitRequest{
		Name: "Long Island",
		Type: models.UnitParcel,
		Attributes: map[string]interface{}{
			"not_a_field": "x",
		},
	})

	require.Error(t, err)
	assert.Nil(t, su)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpatialUnitList(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewSpatialUnitService(db)

	projectID := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows(unitColumns).
		AddRow(uuid.New().String(), projectID.String(), "Alpha", nil, "PA", []byte(`{}`), now, now).
		AddRow(uuid.New().String(), projectID.String(), "Beta", nil, "CB", []byte(`{"community":"x"}`), now, now)

	mock.ExpectQuery(`SELECT (.+) FROM "spatial_units" AS "su"(.+)ORDER BY su\.name ASC`).
		WillReturnRows(rows)

	units, err := svc.List(context.Background(), projectID, SpatialUnitQueryParams{})
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "Alpha", units[0].Name)
	assert.Equal(t, "Beta", units[1].Name)
	assert.Equal(t, "x", units[1].Attributes["community"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpatialUnitUpdate_RevalidatesAttributes(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewSpatialUnitService(db)

	projectID := uuid.New()
	id := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "spatial_units" AS "su"`).
		WillReturnRows(unitRow(id, projectID, "Alpha", nil, models.UnitParcel))

	// bag invalid for the stored type: no update issued
	su, err := svc.Update(context.Background(), projectID, id, UpdateSpatialUnitRequest{
		Attributes: map[string]interface{}{"area_sqm": "not a number"},
	})

	require.Error(t, err)
	assert.Nil(t, su)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpatialUnitDelete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewSpatialUnitService(db)

	mock.ExpectExec(`DELETE FROM "spatial_units"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
