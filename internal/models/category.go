package models

// Category is a node of the two-level catalog hierarchy. A category with a
// nil ParentCategoryID is a root; children cannot have children of their own.
type Category struct {
	Base
	Name             string     `json:"name" gorm:"uniqueIndex;type:varchar(100);not null"`
	Description      string     `json:"description" gorm:"type:varchar(500)"`
	ParentCategoryID *string    `json:"parentCategory" gorm:"type:varchar(36);index"`
	IsActive         bool       `json:"isActive" gorm:"not null"`
	Subcategories    []Category `json:"subcategories,omitempty" gorm:"foreignKey:ParentCategoryID"`
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentCategoryID == nil
}
