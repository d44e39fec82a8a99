package domain

// Wire models as the inventory backend transmits them. The dashboard is a
// read-mostly consumer: it never computes stock or status locally, it only
// requests transitions and re-reads the authoritative values.

type Category struct {
	ID        int    `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type Item struct {
	ID         int        `json:"id"`
	SKU        string     `json:"sku"`
	Name       string     `json:"name"`
	ImageURL   string     `json:"image_url"`
	Stock      int        `json:"stock"`
	Categories []Category `json:"categories,omitempty"`
	CreatedAt  string     `json:"created_at"`
	UpdatedAt  string     `json:"updated_at"`
}

type User struct {
	ID          int     `json:"id"`
	Username    string  `json:"username"`
	LastLoginAt *string `json:"last_login_at"` // nil means never logged in
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// Borrowing statuses owned by the backend.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusReturned = "returned"
)

type Borrowing struct {
	ID         int     `json:"id"`
	ItemID     int     `json:"item_id"`
	UserID     int     `json:"user_id"`
	Quantity   int     `json:"quantity"`
	Status     string  `json:"status"`
	ApprovedBy *int    `json:"approved_by"`
	ApprovedAt *string `json:"approved_at"`
	DueDate    string  `json:"due_date"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
	User       User    `json:"user"`
	Item       Item    `json:"item"`
}

// Actionable reports whether approve/reject may still be requested. The
// control surface must disable both actions otherwise.
func (b Borrowing) Actionable() bool { return b.Status == StatusPending }

type ReturnResolution string

const (
	ReturnPending ReturnResolution = "pending"
	ReturnHandled ReturnResolution = "handled"
)

type Return struct {
	ID               int    `json:"id"`
	BorrowID         int    `json:"borrow_id"`
	ReturnedQuantity int    `json:"returned_quantity"`
	HandledBy        *int   `json:"handled_by"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
	Borrowing        Borrowing `json:"borrowing"`

	// Resolution is derived from handled_by once at the mapping boundary so
	// views never re-derive it from the nullable column.
	Resolution ReturnResolution `json:"-"`
}

func (r Return) Actionable() bool { return r.Resolution == ReturnPending }

// ResolveReturns stamps the derived resolution onto freshly decoded records.
func ResolveReturns(rs []Return) {
	for i := range rs {
		if rs[i].HandledBy == nil {
			rs[i].Resolution = ReturnPending
		} else {
			rs[i].Resolution = ReturnHandled
		}
	}
}

// DueDatePoint is one pre-aggregated row of the dashboard summary. The
// backend sends the count as a numeric string.
type DueDatePoint struct {
	DueDate  string `json:"due_date"`
	ItemsDue string `json:"items_due"`
}

type DashboardCounts struct {
	TotalItems      int            `json:"total_items"`
	TotalUsers      int            `json:"total_users"`
	TotalBorrowings int            `json:"total_borrowings"`
	TotalReturnings int            `json:"total_returnings"`
	TotalCategories int            `json:"total_categories"`
	DueDateSummary  []DueDatePoint `json:"due_date_summary"`
}
