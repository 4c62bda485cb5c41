package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/storefront/internal/catalog/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })
	return db, mock
}

func TestGormSeedIfEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormProductRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "products" .*"position"`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO "reviews"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	products := []domain.Product{
		{ID: "c", Name: "C", Position: 7},
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
	}
	reviews := []domain.Review{{ID: "r1", ProductID: "a", Rating: 5}}

	require.NoError(t, repo.SeedIfEmpty(context.Background(), products, reviews))
	for i, p := range products {
		assert.Equal(t, i, p.Position, p.ID)
	}
}

func TestGormSeedIfEmptyRollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormProductRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "products"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "reviews"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.SeedIfEmpty(context.Background(),
		[]domain.Product{{ID: "a", Name: "A"}},
		[]domain.Review{{ID: "r1", ProductID: "a", Rating: 5}},
	)
	assert.ErrorIs(t, err, assert.AnError)
	assert.ErrorContains(t, err, "failed to seed reviews")
}

func TestGormSeedIfEmptySkipsPopulatedCatalog(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormProductRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	err := repo.SeedIfEmpty(context.Background(), []domain.Product{{ID: "a", Name: "A"}}, nil)
	assert.NoError(t, err)
}

func TestGormFindAllUsesPositionOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormProductRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "products" ORDER BY position`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "tags", "position"}).
			AddRow("b", "B", `["organic"]`, 0).
			AddRow("a", "A", nil, 1))

	products, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "b", products[0].ID)
	assert.Equal(t, []string{"organic"}, products[0].Tags)
	assert.Equal(t, "a", products[1].ID)
}

func TestGormFindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormProductRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGormUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE "products" SET .*"in_stock"=.* WHERE id = `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(ctx, &domain.Product{ID: "a", Name: "A"}))

	mock.ExpectExec(`UPDATE "products" SET `).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Update(ctx, &domain.Product{ID: "ghost", Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGormUpdateStockDerivesAvailability(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE "products" SET "in_stock"=\$1,"stock"=\$2 WHERE id = \$3`).
		WithArgs(false, 0, "a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStock(ctx, "a", 0))

	mock.ExpectExec(`UPDATE "products" SET "in_stock"=\$1,"stock"=\$2 WHERE id = \$3`).
		WithArgs(true, 4, "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateStock(ctx, "ghost", 4), domain.ErrProductNotFound)
}

func TestGormReviewsNewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormReviewRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE product_id = \$1 ORDER BY date DESC, id`).
		WithArgs("a").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "date"}).
			AddRow("r2", "a", "2024-05-20").
			AddRow("r1", "a", "2024-03-01"))

	reviews, err := repo.FindByProductID(context.Background(), "a")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "r2", reviews[0].ID)
}

func TestGormIncrementHelpfulNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormReviewRepository(db)

	mock.ExpectExec(`UPDATE "reviews" SET "helpful"=helpful \+ \$1 WHERE id = \$2`).
		WithArgs(1, "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.IncrementHelpful(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
}
