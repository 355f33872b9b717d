package domain

import "time"

// LeaveStatus represents the review state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// ValidLeaveStatus reports whether s is a recognised review state.
func ValidLeaveStatus(s LeaveStatus) bool {
	switch s {
	case LeavePending, LeaveApproved, LeaveRejected:
		return true
	}
	return false
}

// LeaveRequest is a time-off request filed by a user and reviewed by an admin.
type LeaveRequest struct {
	ID           string      `json:"id"`
	EmployeeID   string      `json:"employee_id"`
	EmployeeName string      `json:"employee_name,omitempty"`
	StartDate    time.Time   `json:"start_date"`
	EndDate      time.Time   `json:"end_date"`
	Reason       string      `json:"reason"`
	Status       LeaveStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
