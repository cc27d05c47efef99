package mysql

import (
	"shopcore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persistence
// object. Intended for development and tests; production schemas are
// managed with explicit migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&po.ProductPO{},
		&po.CategoryPO{},
		&po.ManufacturerPO{},
		&po.PublisherPO{},
		&po.StockMovementPO{},
		&po.OrderPO{},
		&po.OrderItemPO{},
		&po.CouponPO{},
		&po.CartItemPO{},
		&po.AddressPO{},
		&po.ReviewPO{},
		&po.PostPO{},
		&po.CommentPO{},
		&po.LikePO{},
		&po.FollowPO{},
		&po.OutboxEventPO{},
	)
}
