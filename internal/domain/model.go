package domain

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"` // "cliente" | "administrador"
	CreatedAt    time.Time `json:"created_at"`
}

type Category struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	ImageURL    *string    `json:"image_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type Product struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Price       float64    `json:"price"`
	CategoryID  *int64     `json:"category_id"`
	ImageURL    *string    `json:"image_url"`
	IsAvailable bool       `json:"is_available"`
	Stock       int        `json:"stock"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type Table struct {
	ID          int64      `json:"id"`
	Number      int        `json:"number"`
	Capacity    int        `json:"capacity"`
	PositionX   float64    `json:"position_x"`
	PositionY   float64    `json:"position_y"`
	IsAvailable bool       `json:"is_available"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type Extra struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Price       float64    `json:"price"`
	Category    string     `json:"category"` // bebida | condimento | acompanamiento
	IsAvailable bool       `json:"is_available"`
	IsFree      bool       `json:"is_free"`
	Stock       int        `json:"stock"`
	ImageURL    *string    `json:"image_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type Order struct {
	ID                  int64      `json:"id"`
	UserID              int64      `json:"user_id"`
	TableID             *int64     `json:"table_id"`
	OrderType           string     `json:"order_type"` // delivery | dine_in
	Status              string     `json:"status"`
	SpecialInstructions *string    `json:"special_instructions"`
	DeliveryAddress     *string    `json:"delivery_address"`
	EstimatedTime       *int       `json:"estimated_time"` // minutes
	TotalAmount         float64    `json:"total_amount"`
	IsPaid              bool       `json:"is_paid"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID                  int64   `json:"id"`
	OrderID             int64   `json:"order_id"`
	ProductID           int64   `json:"product_id"`
	Quantity            int     `json:"quantity"`
	UnitPrice           float64 `json:"unit_price"`
	Subtotal            float64 `json:"subtotal"`
	SpecialInstructions *string `json:"special_instructions"`
}

type OrderExtra struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	ExtraID   int64     `json:"extra_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	Subtotal  float64   `json:"subtotal"`
	CreatedAt time.Time `json:"created_at"`
}

type Cart struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type CartItem struct {
	ID                  int64     `json:"id"`
	CartID              int64     `json:"cart_id"`
	ProductID           int64     `json:"product_id"`
	Quantity            int       `json:"quantity"`
	SpecialInstructions *string   `json:"special_instructions"`
	CreatedAt           time.Time `json:"created_at"`
}

type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Rating    int       `json:"rating"` // 1..5
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}
