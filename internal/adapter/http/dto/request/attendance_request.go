package request

type CheckInRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
}

type CheckOutRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
}
