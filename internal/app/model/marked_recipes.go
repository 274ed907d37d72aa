package model

import "time"

// ListKind selects which of the two membership sets a mark operation
// targets. Handlers pass it explicitly; it is never inferred from the
// request path.
type ListKind string

const (
	ListFavorites ListKind = "favorites"
	ListCart      ListKind = "cart"
)

func (k ListKind) Valid() bool {
	return k == ListFavorites || k == ListCart
}

// MarkedRecipes is the per-user record holding the favorites and
// shopping-cart sets. One row per user, created lazily on the first
// mark; the unique index keeps concurrent first-time marks from
// creating two rows.
type MarkedRecipes struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User      User     `gorm:"foreignKey:UserID" json:"-"`
	Favorites []Recipe `gorm:"many2many:marked_favorite_recipes;constraint:OnDelete:CASCADE" json:"favorites,omitempty"`
	Cart      []Recipe `gorm:"many2many:marked_cart_recipes;constraint:OnDelete:CASCADE" json:"cart,omitempty"`
}

func (MarkedRecipes) TableName() string {
	return "marked_recipes"
}
