package models

// Category groups menu products for filtering.
type Category struct {
	ID   int64  `gorm:"column:category_id;primaryKey;autoIncrement"`
	Name string `gorm:"column:category_name;not null"`
}
