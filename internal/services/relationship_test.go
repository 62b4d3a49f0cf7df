package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/samvrant/cadasta-platform/internal/models"
)

func setupMockDB(t *testing.T) (*bun.DB, sqlmock.Sqlmock) {
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)

	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })

	return db, mock
}

var unitColumns = []string{
	"id", "project_id", "name", "geometry", "type", "attributes",
	"created_at", "updated_at",
}

func unitRow(id, projectID uuid.UUID, name string, geometry interface{}, unitType string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(unitColumns).
		AddRow(id.String(), projectID.String(), name, geometry, unitType, []byte(`{}`), now, now)
}

func expectLoadUnits(mock sqlmock.Sqlmock, projectID, su1ID, su2ID uuid.UUID, geom1, geom2 interface{}) {
	mock.ExpectQuery(`SELECT (.+) FROM "spatial_units" AS "su"`).
		WillReturnRows(unitRow(su1ID, projectID, "parent", geom1, models.UnitParcel))
	mock.ExpectQuery(`SELECT (.+) FROM "spatial_units" AS "su"`).
		WillReturnRows(unitRow(su2ID, projectID, "child", geom2, models.UnitParcel))
}

func TestRelationshipCreate_ContainedPolygonCoversPoint(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewRelationshipService(db)

	projectID := uuid.New()
	su1ID := uuid.New()
	su2ID := uuid.New()

	polygon := "SRID=4326;POLYGON((0 0, 10 0, 10 10, 0 10, 0 0))"
	point := "SRID=4326;POINT(5 5)"

	expectLoadUnits(mock, projectID, su1ID, su2ID, polygon, point)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "spatial_units" AS "su"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO "spatial_unit_relationships"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rel, err := svc.Create(context.Background(), CreateRelationshipRequest{
		ProjectID: projectID,
		SU1ID:     su1ID,
		SU2ID:     su2ID,
		Type:      models.RelContained,
	})

	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, su1ID, rel.SU1ID)
	assert.Equal(t, su2ID, rel.SU2ID)
	assert.Equal(t, models.RelContained, rel.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationshipCreate_ContainedPolygonDoesNotCoverPoint(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewRelationshipService(db)

	projectID := uuid.New()
	su1ID := uuid.New()
	su2ID := uuid.New()

	polygon := "SRID=4326;POLYGON((0 0, 1 0, 1 1, 0 1, 0 0))"
	point := "SRID=4326;POINT(5 5)"

	expectLoadUnits(mock, projectID, su1ID, su2ID, polygon, point)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "spatial_units" AS "su"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	rel, err := svc.Create(context.Background(), CreateRelationshipRequest{
		ProjectID: projectID,
		SU1ID:     su1ID,
		SU2ID:     su2ID,
		Type:      models.RelContained,
	})

	require.ErrorIs(t, err, ErrNotContained)
	assert.Nil(t, rel)
	// no insert was attempted
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationshipCreate_LineSubjectSkipsCheck(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewRelationshipService(db)

	projectID := uuid.New()
	su1ID := uuid.New()
	su2ID := uuid.New()

	line := "SRID=4326;LINESTRING(0 0, 10 10)"
	point := "SRID=4326;POINT(5 5)"

	expectLoadUnits(mock, projectID, su1ID, su2ID, line, point)

	// subject is not a polygon: no containment query even for type C
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "spatial_unit_relationships"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rel, err := svc.Create(context.Background(), CreateRelationshipRequest{
		ProjectID: projectID,
		SU1ID:     su1ID,
		SU2ID:     su2ID,
		Type:      models.RelContained,
	})

	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationshipCreate_NullGeometrySkipsCheck(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewRelationshipService(db)

	projectID := uuid.New()
	su1ID := uuid.New()
	su2ID := uuid.New()

	polygon := "SRID=4326;POLYGON((0 0, 10 0, 10 10, 0 10, 0 0))"

	expectLoadUnits(mock, projectID, su1ID, su2ID, polygon, nil)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "spatial_unit_relationships"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rel, err := svc.Create(context.Background(), CreateRelationshipRequest{
		ProjectID: projectID,
		SU1ID:     su1ID,
		SU2ID:     su2ID,
		Type:      models.RelSplit,
	})

	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, models.RelSplit, rel.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationshipCreate_NonContainedTypeSkipsCheck(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewRelationshipService(db)

	projectID := uuid.New()
	su1ID := uuid.New()
	su2ID := uuid.New()

	polygon := "SRID=4326;POLYGON((0 0, 10 0, 10 10, 0 10, 0 0))"
	point := "SRID=4326;POINT(5 5)"

	expectLoadUnits(mock, projectID, su1ID, su2ID, polygon, point)

	// merge relationships never run the containment query
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "spatial_unit_relationships"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rel, err := svc.Create(context.Background(), CreateRelationshipRequest{
		ProjectID: projectID,
		SU1ID:     su1ID,
		SU2ID:     su2ID,
		Type:      models.RelMerge,
	})

	require.NoError(t, err)
	require.NotNil(t, rel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationshipCreate_InvalidType(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewRelationshipService(db)

	rel, err := svc.Create(context.Background(), CreateRelationshipRequest{
		ProjectID: uuid.New(),
		SU1ID:     uuid.New(),
		SU2ID:     uuid.New(),
		Type:      "X",
	})

	require.Error(t, err)
	assert.Nil(t, rel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationshipCreate_InvalidAttributes(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewRelationshipService(db)

	rel, err := svc.Create(context.Background(), CreateRelationshipRequest{
		ProjectID:  uuid.New(),
		SU1ID:      uuid.New(),
		SU2ID:      uuid.New(),
		Type:       models.RelContained,
		Attributes: map[string]interface{}{"bogus": 1},
	})

	require.Error(t, err)
	assert.Nil(t, rel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationshipDelete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewRelationshipService(db)

	mock.ExpectExec(`DELETE FROM "spatial_unit_relationships"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationshipOutgoing(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewRelationshipService(db)

	projectID := uuid.New()
	suID := uuid.New()
	relID := uuid.New()
	otherID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "project_id", "su1_id", "su2_id", "type", "attributes", "created_at"}).
		AddRow(relID.String(), projectID.String(), suID.String(), otherID.String(), "C", []byte(`{}`), time.Now().UTC())

	mock.ExpectQuery(`SELECT (.+) FROM "spatial_unit_relationships" AS "rel"`).
		WillReturnRows(rows)

	rels, err := svc.Outgoing(context.Background(), projectID, suID)
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, suID, rels[0].SU1ID)
	assert.Equal(t, otherID, rels[0].SU2ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
