package models

import "time"

// Pure pair join tables. No soft delete here: a deleted pair must be
// re-addable, and the composite unique indexes are the final authority
// on uniqueness. Services pre-check the pair for clean errors.

type Favorite struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UserID    uint   `gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	RecipeID  uint   `gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`
	Recipe    Recipe `gorm:"constraint:OnDelete:CASCADE"`
}

type ShoppingCartItem struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UserID    uint   `gorm:"not null;uniqueIndex:idx_cart_user_recipe"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	RecipeID  uint   `gorm:"not null;uniqueIndex:idx_cart_user_recipe"`
	Recipe    Recipe `gorm:"constraint:OnDelete:CASCADE"`
}

// FollowerID follows AuthorID. Self-follows are rejected in the service
// layer before the row is ever written.
type Follow struct {
	ID         uint `gorm:"primarykey"`
	CreatedAt  time.Time
	FollowerID uint `gorm:"not null;uniqueIndex:idx_follow_pair"`
	Follower   User `gorm:"constraint:OnDelete:CASCADE;foreignKey:FollowerID"`
	AuthorID   uint `gorm:"not null;uniqueIndex:idx_follow_pair"`
	Author     User `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID"`
}
