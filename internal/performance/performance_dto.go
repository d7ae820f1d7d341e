package performance

type CreateReviewRequest struct {
	EmployeeID        string `json:"employee_id" binding:"required,uuid"`
	ReviewType        string `json:"review_type" binding:"required,oneof=PROBATION QUARTERLY HALF_YEARLY ANNUAL"`
	ReviewPeriodStart string `json:"review_period_start" binding:"required"`
	ReviewPeriodEnd   string `json:"review_period_end" binding:"required"`

	QualityOfWork int `json:"quality_of_work" binding:"required,min=1,max=5"`
	Productivity  int `json:"productivity" binding:"required,min=1,max=5"`
	Communication int `json:"communication" binding:"required,min=1,max=5"`
	Teamwork      int `json:"teamwork" binding:"required,min=1,max=5"`
	Initiative    int `json:"initiative" binding:"required,min=1,max=5"`
	Punctuality   int `json:"punctuality" binding:"required,min=1,max=5"`

	Strengths          string `json:"strengths"`
	AreasOfImprovement string `json:"areas_of_improvement"`
	GoalsForNextPeriod string `json:"goals_for_next_period"`
	Comments           string `json:"comments"`
}

type ReviewResponse struct {
	ID                string `json:"id"`
	EmployeeID        string `json:"employee_id"`
	EmployeeNumber    string `json:"employee_number,omitempty"`
	EmployeeName      string `json:"employee_name,omitempty"`
	ReviewerID        string `json:"reviewer_id"`
	ReviewType        string `json:"review_type"`
	ReviewPeriodStart string `json:"review_period_start"`
	ReviewPeriodEnd   string `json:"review_period_end"`
	ReviewDate        string `json:"review_date"`

	QualityOfWork int `json:"quality_of_work"`
	Productivity  int `json:"productivity"`
	Communication int `json:"communication"`
	Teamwork      int `json:"teamwork"`
	Initiative    int `json:"initiative"`
	Punctuality   int `json:"punctuality"`

	OverallRating string `json:"overall_rating"`

	Strengths          string `json:"strengths,omitempty"`
	AreasOfImprovement string `json:"areas_of_improvement,omitempty"`
	GoalsForNextPeriod string `json:"goals_for_next_period,omitempty"`
	Comments           string `json:"comments,omitempty"`
}
