package item

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient available stock")
	// ErrStockInvariant means available would exceed total after a credit.
	// This is a programmer error, not a user-facing one; the surrounding
	// transaction must abort.
	ErrStockInvariant = errors.New("stock invariant breached: available exceeds total")
	ErrInUse          = errors.New("item is referenced by open requests or transactions")
)

type Mode string

const (
	ModeBorrowable Mode = "borrowable"
	ModeConsumable Mode = "consumable"
)

func (m Mode) Valid() bool { return m == ModeBorrowable || m == ModeConsumable }

type Type string

const (
	TypeBook      Type = "book"
	TypeEquipment Type = "equipment"
	TypeMaterial  Type = "material"
	TypeOther     Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeBook, TypeEquipment, TypeMaterial, TypeOther:
		return true
	}
	return false
}

// Item is a lendable or issuable stock unit. The counter pair carries the
// invariant 0 <= AvailableStock <= TotalStock; only the stock ledger may
// change either counter outside catalog adjustments.
type Item struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ItemID   string `gorm:"column:item_id;type:char(32);not null;uniqueIndex:ux_items_item_id_active" json:"item_id"`
	BranchID string `gorm:"column:branch_id;size:32;index" json:"branch_id"`

	Mode     Mode `gorm:"column:mode;type:enum('borrowable','consumable');default:'borrowable'" json:"mode"`
	ItemType Type `gorm:"column:item_type;type:enum('book','equipment','material','other');default:'other'" json:"item_type"`

	// Descriptive fields, informational only
	Title    string `gorm:"size:255;not null" json:"title"`
	Author   string `gorm:"size:255" json:"author"`
	ISBN     string `gorm:"column:isbn;size:32" json:"isbn"`
	Category string `gorm:"size:64;index" json:"category"`
	CoverURL string `gorm:"column:cover_url;type:text" json:"cover_url"`

	TotalStock     int `gorm:"column:total_stock;not null" json:"total_stock"`
	AvailableStock int `gorm:"column:available_stock;not null" json:"available_stock"`

	// nil means unlimited
	MaxBorrowDays  *int `gorm:"column:max_borrow_days" json:"max_borrow_days"`
	RenewableCount *int `gorm:"column:renewable_count" json:"renewable_count"`

	LateFeePerDay    decimal.Decimal `gorm:"column:late_fee_per_day;type:decimal(18,2);not null;default:0" json:"late_fee_per_day"`
	RequiresApproval bool            `gorm:"column:requires_approval;not null;default:false" json:"requires_approval"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Item) TableName() string { return "items" }

// StockValid reports whether the counter pair honors the invariant.
func (i *Item) StockValid() bool {
	return i.AvailableStock >= 0 && i.AvailableStock <= i.TotalStock
}
