package rporder

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"retailos/internal/app/domains/entity/etorder"
	"retailos/internal/app/pkg/errorx"
)

func newMockRepo(t *testing.T) (OrderRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return NewOrderRepository(db), mock
}

var orderColumns = []string{"id", "order_no", "retailer_id", "customer_id", "lines", "total", "items_count", "notes", "created_at"}

const linesJSON = `[{"canonical_name":"Onions","unit":"kg","quantity":"3","unit_price":"40","line_total":"120","remaining_qty":"3","min_stock_level":"5"}]`

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Unix(1700000000, 0)

	mock.ExpectQuery("SELECT \\* FROM `orders` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow("ord-1", 7, "shop-1", "cust-1", []byte(linesJSON), "120.00", 1, "ring bell", created))

	order, err := repo.GetByID(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), order.OrderNo)
	assert.Equal(t, "ring bell", order.Notes)
	require.Len(t, order.Lines, 1)
	assert.True(t, order.Lines[0].LineTotal.Equal(decimal.NewFromInt(120)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(120)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT \\* FROM `orders` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows(orderColumns))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, errorx.ErrOrderNotFound)
}

func TestList(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Unix(1700000000, 0)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `orders` WHERE retailer_id = \\? AND customer_id = \\?").
		WithArgs("shop-1", "cust-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT \\* FROM `orders` WHERE retailer_id = \\? AND customer_id = \\? ORDER BY created_at DESC LIMIT").
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow("ord-3", 9, "shop-1", "cust-1", []byte(linesJSON), "120.00", 1, "", created))

	orders, total, err := repo.List(context.Background(), "shop-1", "cust-1", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, orders, 1)
	assert.Equal(t, "ord-3", orders[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModelRoundTripKeepsLines(t *testing.T) {
	order, err := etorder.NewOrder("ord-1", 7, "shop-1", "cust-1", []*etorder.Line{{
		CanonicalName: "Onions", Unit: "kg",
		Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(40), LineTotal: decimal.NewFromInt(120),
	}}, "")
	require.NoError(t, err)

	po, err := ToGormModel(order)
	require.NoError(t, err)
	assert.Equal(t, 1, po.ItemsCount)

	back, err := ToDomainModel(po)
	require.NoError(t, err)
	assert.Equal(t, order.Lines[0].CanonicalName, back.Lines[0].CanonicalName)
	assert.True(t, back.Total.Equal(order.Total))
}
