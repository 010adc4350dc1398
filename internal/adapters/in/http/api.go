package http

import "time"

// Error is the wire shape of a failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	// Fund figures, present only on insufficient-fund rejections.
	Requested   *int `json:"requested,omitempty"`
	CurrentFund *int `json:"current_fund,omitempty"`
	MinimumFund *int `json:"minimum_fund,omitempty"`
}

// RecordPositionRequest is a GPS ping reported by a courier device.
type RecordPositionRequest struct {
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	AccuracyM  float64    `json:"accuracy_m"`
	SpeedKMH   float64    `json:"speed_kmh"`
	HeadingDeg float64    `json:"heading_deg"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

// Position is one GPS ping of a courier's trail.
type Position struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	AccuracyM  float64   `json:"accuracy_m"`
	SpeedKMH   float64   `json:"speed_kmh"`
	HeadingDeg float64   `json:"heading_deg"`
	RecordedAt time.Time `json:"recorded_at"`
}

// RankedCourier is one courier of a proximity ranking.
type RankedCourier struct {
	CourierID  string  `json:"courier_id"`
	Name       string  `json:"name"`
	DistanceKM float64 `json:"distance_km"`
	ETAMinutes int     `json:"eta_minutes"`
}

// ChangeDetails is the coin breakdown of a change movement.
type ChangeDetails struct {
	Coins5  int `json:"coins_5"`
	Coins10 int `json:"coins_10"`
}

// FailureDetails is the machine-failure context of a failure task.
type FailureDetails struct {
	MachineID        *string `json:"machine_id,omitempty"`
	ErrorCode        string  `json:"error_code"`
	ErrorDescription string  `json:"error_description"`
	ClientName       string  `json:"client_name"`
}

// RefillDetails is the coin breakdown of a refill task.
type RefillDetails struct {
	Type           string `json:"type"`
	Coins5         int    `json:"coins_5"`
	Coins10        int    `json:"coins_10"`
	PersonInCharge string `json:"person_in_charge"`
}

// NewTask is the request body for opening a field task. Photos carry raw
// evidence images base64-encoded; they are stored before the task is saved.
type NewTask struct {
	Kind        string          `json:"kind"`
	SiteID      string          `json:"site_id"`
	Description string          `json:"description"`
	Priority    string          `json:"priority,omitempty"`
	Change      *ChangeDetails  `json:"change,omitempty"`
	Failure     *FailureDetails `json:"failure,omitempty"`
	Refill      *RefillDetails  `json:"refill,omitempty"`
	Amount      int             `json:"amount,omitempty"`
	Photos      []string        `json:"photos,omitempty"`
}

// Task is one task row of a listing.
type Task struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	SiteID      string     `json:"site_id"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Description string     `json:"description"`
	Amount      int        `json:"amount"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// AdvanceStatusRequest names the status a courier moves a task to.
type AdvanceStatusRequest struct {
	Status string `json:"status"`
}

// ReassignRequest names the replacement courier for a task.
type ReassignRequest struct {
	CourierID string `json:"courier_id"`
}

// PanicRequest carries the optional message and photo evidence of a panic
// alert. Photos are base64-encoded raw images.
type PanicRequest struct {
	Message string   `json:"message,omitempty"`
	Photos  []string `json:"photos,omitempty"`
}

// NewChangeRequest is the request body for a site-originated change request.
type NewChangeRequest struct {
	Coins5  int    `json:"coins_5"`
	Coins10 int    `json:"coins_10"`
	Notes   string `json:"notes,omitempty"`
}

// ChangeRequest is one change request row of a listing.
type ChangeRequest struct {
	ID              string     `json:"id"`
	SiteID          string     `json:"site_id"`
	Status          string     `json:"status"`
	Coins5          int        `json:"coins_5"`
	Coins10         int        `json:"coins_10"`
	TotalAmount     int        `json:"total_amount"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// ApproveRequest optionally names the courier carrying out an approved
// change request.
type ApproveRequest struct {
	CourierID *string `json:"courier_id,omitempty"`
}

// RejectRequest carries the mandatory rejection reason.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// CreatedResponse returns the identifier of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}
