package models

// PersonalInfoRecord identifies a customer uploaded against a job. Used only
// for reconciliation and known-customer checks during validation.
type PersonalInfoRecord struct {
	CustomerID string `json:"customer_id" binding:"required"`
	TIN        string `json:"tin" binding:"required"`
	FullName   string `json:"full_name" binding:"required"`
	Address    string `json:"address" binding:"required"`
	Email      string `json:"email,omitempty" binding:"omitempty,email"`
	Phone      string `json:"phone,omitempty"`
}
