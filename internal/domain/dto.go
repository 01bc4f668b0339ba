package domain

import "time"

// The placeholder name shown for order items whose product has been deleted
// from the catalog.
const MissingProductName = "Producto no disponible"

// ---- requests ----

type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserUpdate struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Password *string `json:"password,omitempty"`
}

type OrderItemCreate struct {
	ProductID           int64   `json:"product_id"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions *string `json:"special_instructions,omitempty"`
}

type OrderCreate struct {
	OrderType           string            `json:"order_type"`
	TableID             *int64            `json:"table_id,omitempty"`
	DeliveryAddress     *string           `json:"delivery_address,omitempty"`
	SpecialInstructions *string           `json:"special_instructions,omitempty"`
	Items               []OrderItemCreate `json:"items"`
}

// OrderUpdate applies only the supplied fields; nil means "leave unchanged".
type OrderUpdate struct {
	Status              *string `json:"status,omitempty"`
	SpecialInstructions *string `json:"special_instructions,omitempty"`
	DeliveryAddress     *string `json:"delivery_address,omitempty"`
	EstimatedTime       *int    `json:"estimated_time,omitempty"`
	IsPaid              *bool   `json:"is_paid,omitempty"`
}

type OrderExtraCreate struct {
	ExtraID  int64 `json:"extra_id"`
	Quantity int   `json:"quantity"`
}

type CheckoutRequest struct {
	OrderType           string  `json:"order_type"`
	TableID             *int64  `json:"table_id,omitempty"`
	DeliveryAddress     *string `json:"delivery_address,omitempty"`
	SpecialInstructions *string `json:"special_instructions,omitempty"`
}

type CartItemCreate struct {
	ProductID           int64   `json:"product_id"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions *string `json:"special_instructions,omitempty"`
}

type CartItemUpdate struct {
	Quantity            *int    `json:"quantity,omitempty"`
	SpecialInstructions *string `json:"special_instructions,omitempty"`
}

type CategoryCreate struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

type CategoryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

type ProductCreate struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	CategoryID  *int64  `json:"category_id,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsAvailable *bool   `json:"is_available,omitempty"`
	Stock       int     `json:"stock"`
}

type ProductUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	CategoryID  *int64   `json:"category_id,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	IsAvailable *bool    `json:"is_available,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

type TableCreate struct {
	Number    int     `json:"number"`
	Capacity  int     `json:"capacity"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
}

type TableUpdate struct {
	Number      *int     `json:"number,omitempty"`
	Capacity    *int     `json:"capacity,omitempty"`
	PositionX   *float64 `json:"position_x,omitempty"`
	PositionY   *float64 `json:"position_y,omitempty"`
	IsAvailable *bool    `json:"is_available,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type TablePosition struct {
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
}

type ExtraCreate struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	IsAvailable *bool   `json:"is_available,omitempty"`
	IsFree      *bool   `json:"is_free,omitempty"`
	Stock       int     `json:"stock"`
	ImageURL    *string `json:"image_url,omitempty"`
}

type ExtraUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	IsAvailable *bool    `json:"is_available,omitempty"`
	IsFree      *bool    `json:"is_free,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

type ReviewCreate struct {
	ProductID int64   `json:"product_id"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
}

// ---- read-side views ----
//
// Views carry the display fields (product names, table number, user name)
// assembled by the store's query methods. They are never written back.

type OrderItemView struct {
	ID                  int64   `json:"id"`
	ProductID           int64   `json:"product_id"`
	Quantity            int     `json:"quantity"`
	UnitPrice           float64 `json:"unit_price"`
	Subtotal            float64 `json:"subtotal"`
	SpecialInstructions *string `json:"special_instructions"`
	ProductName         string  `json:"product_name"`
	ProductImage        string  `json:"product_image"`
}

type OrderExtraView struct {
	ID         int64   `json:"id"`
	ExtraID    int64   `json:"extra_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Subtotal   float64 `json:"subtotal"`
	ExtraName  string  `json:"extra_name"`
	ExtraImage *string `json:"extra_image"`
	IsFree     bool    `json:"is_free"`
}

type OrderView struct {
	ID                  int64            `json:"id"`
	UserID              int64            `json:"user_id"`
	UserName            string           `json:"user_name"`
	OrderType           string           `json:"order_type"`
	TableID             *int64           `json:"table_id"`
	TableNumber         *int             `json:"table_number"`
	TableCapacity       *int             `json:"table_capacity"`
	DeliveryAddress     *string          `json:"delivery_address"`
	SpecialInstructions *string          `json:"special_instructions"`
	Status              string           `json:"status"`
	TotalAmount         float64          `json:"total_amount"`
	EstimatedTime       *int             `json:"estimated_time"`
	IsPaid              bool             `json:"is_paid"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           *time.Time       `json:"updated_at"`
	Items               []OrderItemView  `json:"items"`
	Extras              []OrderExtraView `json:"extras"`
}

type CartItemView struct {
	ID                  int64   `json:"id"`
	ProductID           int64   `json:"product_id"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions *string `json:"special_instructions"`
	ProductName         string  `json:"product_name"`
	ProductPrice        float64 `json:"product_price"`
	ProductImage        *string `json:"product_image"`
	Subtotal            float64 `json:"subtotal"`
}

type CartView struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"user_id"`
	Items       []CartItemView `json:"items"`
	ItemsCount  int            `json:"items_count"`
	TotalAmount float64        `json:"total_amount"`
	CreatedAt   time.Time      `json:"created_at"`
}

type CartSummary struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	TotalAmount float64   `json:"total_amount"`
	ItemsCount  int       `json:"items_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type ActiveOrderInfo struct {
	OrderID   int64     `json:"order_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewView struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableStatusView is the floor-plan view: the table plus its active orders.
type TableStatusView struct {
	ID                int64             `json:"id"`
	Number            int               `json:"number"`
	Capacity          int               `json:"capacity"`
	PositionX         float64           `json:"position_x"`
	PositionY         float64           `json:"position_y"`
	IsAvailable       bool              `json:"is_available"`
	ActiveOrders      []ActiveOrderInfo `json:"active_orders"`
	ActiveOrdersCount int               `json:"active_orders_count"`
}
