package models

import "time"

// LeadResponse is a single lead in this service's API responses.
// Walk-in fields are flattened and omitted for regular leads.
type LeadResponse struct {
	ID         int    `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Stage      string `json:"stage"`
	Source     string `json:"source,omitempty"`
	Channel    string `json:"channel"`
	AssignedTo string `json:"assignedTo"`
	Status     string `json:"status"`
	DateAdded  string `json:"dateAdded,omitempty"`
	Action     string `json:"action,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Course     string `json:"course,omitempty"`

	FatherName          string  `json:"fatherName,omitempty"`
	MotherName          string  `json:"motherName,omitempty"`
	FatherPhoneNumber   string  `json:"fatherPhoneNumber,omitempty"`
	MotherPhoneNumber   string  `json:"motherPhoneNumber,omitempty"`
	Address             string  `json:"address,omitempty"`
	PreviousInstitution string  `json:"previousInstitution,omitempty"`
	MarksObtained       string  `json:"marksObtained,omitempty"`
	Amount              float64 `json:"amount,omitempty"`
}

// ToResponse converts an internal lead to its API representation. An
// invalid dateAdded serializes as the empty string rather than a zero
// timestamp.
func (l Lead) ToResponse() LeadResponse {
	r := LeadResponse{
		ID:         l.ID,
		FirstName:  l.FirstName,
		LastName:   l.LastName,
		Email:      l.Email,
		Phone:      l.Phone,
		Stage:      l.Stage,
		Source:     l.Source,
		Channel:    l.Channel,
		AssignedTo: l.AssignedTo,
		Status:     l.Status,
		Action:     l.Action,
		Notes:      l.Notes,
		Course:     l.Course,
	}
	if l.HasValidDate() {
		r.DateAdded = l.DateAdded.Format(time.RFC3339)
	}
	if w := l.Walkin; w != nil {
		r.FatherName = w.FatherName
		r.MotherName = w.MotherName
		r.FatherPhoneNumber = w.FatherPhoneNumber
		r.MotherPhoneNumber = w.MotherPhoneNumber
		r.Address = w.Address
		r.PreviousInstitution = w.PreviousInstitution
		r.MarksObtained = w.MarksObtained
		r.Amount = w.Amount
	}
	return r
}

// PaginationInfo contains pagination metadata for the lead table. The
// PageNumbers sequence uses -1 to mark an ellipsis gap.
type PaginationInfo struct {
	Page        int   `json:"page"`
	PageSize    int   `json:"pageSize"`
	Total       int   `json:"total"`
	TotalPages  int   `json:"totalPages"`
	PageNumbers []int `json:"pageNumbers"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// AppliedFilters echoes the filter and sort state a page was computed
// under.
type AppliedFilters struct {
	Date       string   `json:"date,omitempty"`
	Stage      []string `json:"stage,omitempty"`
	Channel    []string `json:"channel,omitempty"`
	Status     []string `json:"status,omitempty"`
	AssignedTo []string `json:"assignedTo,omitempty"`
	Sort       string   `json:"sort"`
	Direction  string   `json:"direction"`
}

// LeadListResponse is one page of the lead table.
type LeadListResponse struct {
	Data       []LeadResponse `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
	Filters    AppliedFilters `json:"filters"`
}
