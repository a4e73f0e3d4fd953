package admin

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpsertReservationRequest creates a reservation, or replaces the one with
// the same rid. An empty rid means "generate one".
type UpsertReservationRequest struct {
	RID        string `json:"rid"`
	GuestName  string `json:"guestName" binding:"required"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Property   string `json:"property" binding:"required,oneof=flat_lili flat_lua flat_sol"`
	FlatNumber string `json:"flatNumber"`

	LockCode     string `json:"lockCode"`
	SafeCode     string `json:"safeCode"`
	WifiSSID     string `json:"wifiSsid"`
	WifiPassword string `json:"wifiPassword"`

	WelcomeMessage string `json:"welcomeMessage"`
	AdminNotes     string `json:"adminNotes"`

	CheckInDate  string `json:"checkInDate" binding:"omitempty,datetime=2006-01-02"`
	CheckoutDate string `json:"checkoutDate" binding:"omitempty,datetime=2006-01-02"`
	CheckInTime  string `json:"checkInTime"`
	CheckOutTime string `json:"checkOutTime"`

	IsReleased       bool   `json:"isReleased"`
	GuestAlertActive bool   `json:"guestAlertActive"`
	GuestAlertText   string `json:"guestAlertText"`
}
