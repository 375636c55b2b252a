package models

type Tag struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Color string `gorm:"size:7;uniqueIndex;not null" json:"color"` // HEX, e.g. #49B64E
	Slug  string `gorm:"size:200;uniqueIndex;not null" json:"slug"`
}
