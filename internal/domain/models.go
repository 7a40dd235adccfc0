// Package domain defines the persistence models for tenants, settings,
// products, and orders. These types are mapped with GORM onto the SQLite
// database shared with the external population bot, so table and column
// names follow the bot's schema exactly.
package domain

import (
	"time"
)

// Tenant represents one storefront account (a row in the shared `users`
// table). Tenants are created out of band by the bot/admin tooling and are
// read-only from this application's perspective.
//
// Fields:
//   - ID: numeric primary key; never accepted from client input.
//   - SiteSlug: public identifier, either a bare name ("extndd") or a
//     composite "<number>/<name>" ("2170/extndd") used for path routing.
//   - IsRegistered: a tenant is servable only while this is true.
//   - ProjectName / LinkDirect / LinkTelegram: defaults merged into the
//     tenant configuration when the corresponding setting key is absent.
//   - TelegramID / TelegramUsername: bot bookkeeping, read-only here.
type Tenant struct {
	ID               int64     `json:"id"                gorm:"primaryKey;autoIncrement"`
	TelegramID       int64     `json:"telegram_id"       gorm:"column:telegram_id"`
	TelegramUsername string    `json:"telegram_username" gorm:"column:telegram_username"`
	SiteSlug         string    `json:"site_slug"         gorm:"column:site_slug;index"`
	ProjectName      string    `json:"project_name"      gorm:"column:project_name"`
	LinkDirect       string    `json:"link_direct"       gorm:"column:link_direct"`
	LinkTelegram     string    `json:"link_telegram"     gorm:"column:link_telegram"`
	IsRegistered     bool      `json:"is_registered"     gorm:"column:is_registered"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName returns the database table name for Tenant.
func (Tenant) TableName() string { return "users" }

// Setting is one per-tenant key/value configuration entry. Settings override
// the defaults carried on the tenant row. They are written externally and
// only read here.
type Setting struct {
	ID       int64  `json:"id"      gorm:"primaryKey;autoIncrement"`
	TenantID int64  `json:"user_id" gorm:"column:user_id;not null;index:idx_settings_user"`
	Key      string `json:"key"     gorm:"column:key;not null;index:idx_settings_user"`
	Value    string `json:"value"   gorm:"column:value"`
}

// TableName returns the database table name for Setting.
func (Setting) TableName() string { return "settings" }

// Product is a catalog item owned by exactly one tenant.
//
// Price is a free-text display string (e.g. "68 000 ₽"); the sortable
// numeric value is derived with PriceDigits and never stored back. Images
// holds a JSON-serialized list of URLs; malformed values are tolerated at
// read time. LayoutIndex assigns a homepage display slot.
type Product struct {
	ID                int64     `json:"id"                  gorm:"primaryKey;autoIncrement"`
	TenantID          int64     `json:"user_id"             gorm:"column:user_id;not null;index:idx_products_user"`
	Name              string    `json:"name"                gorm:"column:name"`
	Size              string    `json:"size"                gorm:"column:size"`
	Description       string    `json:"description"         gorm:"column:description"`
	Price             string    `json:"price"               gorm:"column:price"`
	OriginalPrice     string    `json:"original_price"      gorm:"column:original_price"`
	Condition         string    `json:"condition"           gorm:"column:condition"` // e.g. DEADSTOCK, GRAIL, ARCHIVE, USED
	Images            string    `json:"images"              gorm:"column:images"`    // JSON array of URLs
	Status            string    `json:"status"              gorm:"column:status"`    // e.g. NEW, SOLD, ARCHIVE
	TelegramMessageID int64     `json:"telegram_message_id" gorm:"column:telegram_message_id"`
	TelegramChannelID int64     `json:"telegram_channel_id" gorm:"column:telegram_channel_id"`
	IsFeatured        bool      `json:"is_featured"         gorm:"column:is_featured"`
	Year              string    `json:"year"                gorm:"column:year"`
	Material          string    `json:"material"            gorm:"column:material"`
	LayoutIndex       int       `json:"layout_index"        gorm:"column:layout_index"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName returns the database table name for Product.
func (Product) TableName() string { return "products" }

// Order records a checkout intent for one tenant. Orders are created
// atomically with their items; there is no payment or reservation step, so
// an order is purely a recorded intent with status "NEW".
type Order struct {
	ID            int64     `json:"id"             gorm:"primaryKey;autoIncrement"`
	TenantID      int64     `json:"user_id"        gorm:"column:user_id;not null;index:idx_orders_user_id_created_at,priority:1"`
	BuyerTelegram string    `json:"buyer_telegram" gorm:"column:buyer_telegram;not null"` // stored without leading "@"
	Status        string    `json:"status"         gorm:"column:status;not null;default:'NEW'"`
	CreatedAt     time.Time `json:"created_at"     gorm:"index:idx_orders_user_id_created_at,priority:2"`
}

// TableName returns the database table name for Order.
func (Order) TableName() string { return "orders" }

// OrderItem is one validated (product, quantity) line of an order. The
// product reference was existence-checked within the order's tenant at
// creation time; it is not a database-level foreign key because the shared
// schema predates this application.
type OrderItem struct {
	ID        int64     `json:"id"         gorm:"primaryKey;autoIncrement"`
	OrderID   int64     `json:"order_id"   gorm:"column:order_id;not null;index:idx_order_items_order_id"`
	ProductID int64     `json:"product_id" gorm:"column:product_id;not null"`
	Qty       int       `json:"qty"        gorm:"column:qty;not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for OrderItem.
func (OrderItem) TableName() string { return "order_items" }
