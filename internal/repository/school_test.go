package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func schoolColumns() []string {
	return []string{"id", "name", "domain_whitelist", "status", "created_at", "updated_at"}
}

func TestSchoolSearch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSchoolRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(schoolColumns()).
		AddRow("sch-1", "State University", `["stateu.edu"]`, "active", now, now).
		AddRow("sch-2", "State College", `["statecollege.edu"]`, "active", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM schools`)).
		WithArgs("active", "%state%").
		WillReturnRows(rows)

	schools, err := repo.Search("state")
	require.NoError(t, err)
	require.Len(t, schools, 2)
	assert.Equal(t, "State University", schools[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolSearchEmptyTermReturnsAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSchoolRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM schools`)).
		WithArgs("active", "%%").
		WillReturnRows(sqlmock.NewRows(schoolColumns()).
			AddRow("sch-1", "State University", `["stateu.edu"]`, "active", now, now))

	schools, err := repo.Search("")
	require.NoError(t, err)
	assert.Len(t, schools, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolByDomain(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSchoolRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM schools`)).
		WithArgs("active", `%"stateu.edu"%`).
		WillReturnRows(sqlmock.NewRows(schoolColumns()).
			AddRow("sch-1", "State University", `["stateu.edu"]`, "active", now, now))

	school, err := repo.ByDomain("stateu.edu")
	require.NoError(t, err)
	assert.Equal(t, "sch-1", school.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolByDomainNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSchoolRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM schools`)).
		WithArgs("active", `%"nowhere.edu"%`).
		WillReturnRows(sqlmock.NewRows(schoolColumns()))

	_, err := repo.ByDomain("nowhere.edu")
	assert.ErrorIs(t, err, ErrSchoolNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
