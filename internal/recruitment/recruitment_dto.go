package recruitment

type CreateJobPostingRequest struct {
	Title          string `json:"title" binding:"required,min=3,max=200"`
	JobCode        string `json:"job_code" binding:"required,min=2,max=20"`
	DepartmentID   string `json:"department_id" binding:"omitempty,uuid"`
	Vacancies      int    `json:"vacancies" binding:"omitempty,min=1"`
	Description    string `json:"description" binding:"required,min=10"`
	Requirements   string `json:"requirements"`
	SalaryRangeMin string `json:"salary_range_min" binding:"required"`
	SalaryRangeMax string `json:"salary_range_max" binding:"required"`
	EmploymentType string `json:"employment_type" binding:"required,oneof=PERMANENT CONTRACT INTERN PART_TIME"`
	Location       string `json:"location"`
	Deadline       string `json:"deadline" binding:"required"`
}

type UpdateJobPostingRequest struct {
	Title          string `json:"title" binding:"omitempty,min=3,max=200"`
	Vacancies      int    `json:"vacancies" binding:"omitempty,min=1"`
	Description    string `json:"description"`
	Requirements   string `json:"requirements"`
	SalaryRangeMin string `json:"salary_range_min"`
	SalaryRangeMax string `json:"salary_range_max"`
	Location       string `json:"location"`
	Deadline       string `json:"deadline"`
	Status         string `json:"status" binding:"omitempty,oneof=OPEN CLOSED ON_HOLD"`
}

type ApplyCandidateRequest struct {
	FirstName        string `json:"first_name" binding:"required,min=1,max=100"`
	LastName         string `json:"last_name" binding:"required,min=1,max=100"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone" binding:"required,min=7,max=15"`
	CoverLetter      string `json:"cover_letter"`
	CurrentCTC       string `json:"current_ctc"`
	ExpectedCTC      string `json:"expected_ctc"`
	NoticePeriodDays int    `json:"notice_period_days" binding:"omitempty,min=0,max=365"`
}

type MoveCandidateRequest struct {
	Status string `json:"status" binding:"required,oneof=SCREENING INTERVIEW SELECTED REJECTED WITHDRAWN"`
}

type JobPostingResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	JobCode        string  `json:"job_code"`
	DepartmentID   *string `json:"department_id,omitempty"`
	Vacancies      int     `json:"vacancies"`
	Description    string  `json:"description"`
	Requirements   string  `json:"requirements,omitempty"`
	SalaryRangeMin string  `json:"salary_range_min"`
	SalaryRangeMax string  `json:"salary_range_max"`
	EmploymentType string  `json:"employment_type"`
	Location       string  `json:"location,omitempty"`
	Deadline       string  `json:"deadline"`
	Status         string  `json:"status"`
	PostedBy       *string `json:"posted_by,omitempty"`
}

type CandidateResponse struct {
	ID               string  `json:"id"`
	JobPostingID     string  `json:"job_posting_id"`
	JobTitle         string  `json:"job_title,omitempty"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	CoverLetter      string  `json:"cover_letter,omitempty"`
	CurrentCTC       *string `json:"current_ctc,omitempty"`
	ExpectedCTC      *string `json:"expected_ctc,omitempty"`
	NoticePeriodDays int     `json:"notice_period_days"`
	Status           string  `json:"status"`
	AppliedDate      string  `json:"applied_date"`
}
