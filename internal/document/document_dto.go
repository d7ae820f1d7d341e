package document

type CreateCategoryRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=100"`
	Code           string `json:"code" binding:"required,min=2,max=20"`
	Description    string `json:"description"`
	RequiresExpiry bool   `json:"requires_expiry"`
	IsMandatory    bool   `json:"is_mandatory"`
}

type UpdateCategoryRequest struct {
	Name           string `json:"name" binding:"omitempty,min=2,max=100"`
	Description    string `json:"description"`
	RequiresExpiry *bool  `json:"requires_expiry"`
	IsMandatory    *bool  `json:"is_mandatory"`
	IsActive       *bool  `json:"is_active"`
}

type AddDocumentRequest struct {
	EmployeeID       string `json:"employee_id" binding:"required,uuid"`
	CategoryID       string `json:"category_id" binding:"required,uuid"`
	Title            string `json:"title" binding:"required,min=2,max=200"`
	DocumentNumber   string `json:"document_number" binding:"omitempty,max=100"`
	Description      string `json:"description"`
	IssuingAuthority string `json:"issuing_authority" binding:"omitempty,max=200"`
	IssueDate        string `json:"issue_date"`
	ExpiryDate       string `json:"expiry_date"`
	IsConfidential   bool   `json:"is_confidential"`
}

type VerifyDocumentRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

type CategoryResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	Description    string `json:"description,omitempty"`
	RequiresExpiry bool   `json:"requires_expiry"`
	IsMandatory    bool   `json:"is_mandatory"`
	IsActive       bool   `json:"is_active"`
}

type DocumentResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name,omitempty"`
	CategoryID       string  `json:"category_id"`
	CategoryName     string  `json:"category_name,omitempty"`
	Title            string  `json:"title"`
	DocumentNumber   string  `json:"document_number,omitempty"`
	Description      string  `json:"description,omitempty"`
	IssuingAuthority string  `json:"issuing_authority,omitempty"`
	IssueDate        *string `json:"issue_date,omitempty"`
	ExpiryDate       *string `json:"expiry_date,omitempty"`
	DaysUntilExpiry  *int    `json:"days_until_expiry,omitempty"`
	Status           string  `json:"status"`
	IsConfidential   bool    `json:"is_confidential"`
	VerifiedBy       *string `json:"verified_by,omitempty"`
	VerifiedAt       *string `json:"verified_at,omitempty"`
}
