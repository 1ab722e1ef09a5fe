package models

// WishlistItem marks a product a user wants to keep an eye on.
type WishlistItem struct {
	Base
	UserID    string   `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_wishlist_user_product"`
	ProductID string   `json:"productId" gorm:"type:varchar(36);not null;uniqueIndex:idx_wishlist_user_product"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type Review struct {
	Base
	UserID    string `json:"userId" gorm:"type:varchar(36);index;not null"`
	ProductID string `json:"productId" gorm:"type:varchar(36);index;not null"`
	Review    string `json:"review" gorm:"type:text;not null"`
}

// Rating is a 1..5 score.
type Rating struct {
	Base
	UserID    string `json:"userId" gorm:"type:varchar(36);index;not null"`
	ProductID string `json:"productId" gorm:"type:varchar(36);index;not null"`
	Rating    int    `json:"rating" gorm:"not null"`
}
