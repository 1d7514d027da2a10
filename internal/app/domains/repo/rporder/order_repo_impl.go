package rporder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"retailos/common/entity"
	"retailos/internal/app/domains/entity/etorder"
	"retailos/internal/app/pkg/errorx"
)

// OrderRepositoryImpl MySQL order repository
type OrderRepositoryImpl struct {
	db *gorm.DB
}

// NewOrderRepository creates the MySQL order repository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

// GetByID loads one order
func (r *OrderRepositoryImpl) GetByID(ctx context.Context, orderID string) (*etorder.Order, error) {
	var po entity.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.ErrOrderNotFound
		}
		return nil, err
	}
	return ToDomainModel(&po)
}

// List paginated, newest first
func (r *OrderRepositoryImpl) List(ctx context.Context, retailerID, customerID string, page, limit int) ([]*etorder.Order, int64, error) {
	var total int64
	var pos []entity.Order

	query := r.db.WithContext(ctx).Model(&entity.Order{}).Where("retailer_id = ?", retailerID)
	if customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&pos).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*etorder.Order, 0, len(pos))
	for i := range pos {
		order, err := ToDomainModel(&pos[i])
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}

	return orders, total, nil
}

// ToGormModel domain order to row
func ToGormModel(order *etorder.Order) (*entity.Order, error) {
	linesJSON, err := json.Marshal(order.Lines)
	if err != nil {
		return nil, fmt.Errorf("marshal order lines failed: %w", err)
	}
	return &entity.Order{
		ID:         order.ID,
		OrderNo:    order.OrderNo,
		RetailerID: order.RetailerID,
		CustomerID: order.CustomerID,
		Lines:      linesJSON,
		Total:      order.Total,
		ItemsCount: order.ItemsCount(),
		Notes:      order.Notes,
		CreatedAt:  order.CreatedAt,
	}, nil
}

// ToDomainModel row to domain order
func ToDomainModel(po *entity.Order) (*etorder.Order, error) {
	var lines []*etorder.Line
	if len(po.Lines) > 0 {
		if err := json.Unmarshal(po.Lines, &lines); err != nil {
			return nil, fmt.Errorf("unmarshal order lines failed: %w", err)
		}
	}
	return &etorder.Order{
		ID:         po.ID,
		OrderNo:    po.OrderNo,
		RetailerID: po.RetailerID,
		CustomerID: po.CustomerID,
		Lines:      lines,
		Total:      po.Total,
		Notes:      po.Notes,
		CreatedAt:  po.CreatedAt,
	}, nil
}
