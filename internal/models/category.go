package models

import (
	"strings"

	"gorm.io/gorm"
)

// Names of the categories created by the demo bootstrap
const (
	CategoryFood          = "Food"
	CategoryRent          = "Rent"
	CategoryTravel        = "Travel"
	CategoryEntertainment = "Entertainment"
	CategorySalary        = "Salary"
)

// DefaultCategories returns the bootstrap categories in creation order
func DefaultCategories() []string {
	return []string{
		CategoryFood,
		CategoryRent,
		CategoryTravel,
		CategoryEntertainment,
		CategorySalary,
	}
}

// Category groups transactions. Names are not unique.
type Category struct {
	ID   uint   `gorm:"column:category_id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:category_name;type:varchar(255);not null" json:"name"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return c.Validate()
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCategoryNameRequired
	}
	return nil
}

func (c *Category) TableName() string {
	return "categories"
}
