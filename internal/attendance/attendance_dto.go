package attendance

type CheckInRequest struct {
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

type CheckOutRequest struct {
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

// ManualEntryRequest lets HR record or correct a day directly.
type ManualEntryRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Status     string `json:"status" binding:"required,oneof=PRESENT ABSENT HALF_DAY LATE ON_LEAVE HOLIDAY WEEKEND"`
	Notes      string `json:"notes"`
}

type CreateHolidayRequest struct {
	Name string `json:"name" binding:"required"`
	Date string `json:"date" binding:"required"`
}

type AttendanceResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	AttendanceDate string `json:"attendance_date"`
	CheckIn        string `json:"check_in,omitempty"`
	CheckOut       string `json:"check_out,omitempty"`
	TotalHours     string `json:"total_hours"`
	OvertimeHours  string `json:"overtime_hours"`
	Status         string `json:"status"`
	Location       string `json:"location,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}
