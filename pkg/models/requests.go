package models

// CreateLeadRequest represents the form payload for creating a lead or a
// walk-in. Validation happens before any upstream call; errors are
// reported per field.
type CreateLeadRequest struct {
	FirstName  string `json:"firstName" validate:"required,min=1"`
	LastName   string `json:"lastName" validate:"required,min=1"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=1"`
	Stage      string `json:"stage" validate:"omitempty,oneof=Intake Qualified Converted"`
	Source     string `json:"source"`
	Channel    string `json:"channel"`
	AssignedTo string `json:"assignedTo"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
	Course     string `json:"course"`
	Type       string `json:"type" validate:"omitempty,oneof=leads walkin"`

	// Walk-in fields, required when Type == "walkin".
	FatherName          string  `json:"fatherName" validate:"required_if=Type walkin"`
	MotherName          string  `json:"motherName" validate:"required_if=Type walkin"`
	FatherPhoneNumber   string  `json:"fatherPhoneNumber" validate:"required_if=Type walkin"`
	MotherPhoneNumber   string  `json:"motherPhoneNumber" validate:"required_if=Type walkin"`
	Address             string  `json:"address" validate:"required_if=Type walkin"`
	PreviousInstitution string  `json:"previousInstitution" validate:"required_if=Type walkin"`
	MarksObtained       string  `json:"marksObtained" validate:"required_if=Type walkin"`
	Amount              float64 `json:"amount" validate:"omitempty,min=0"`
}

// ToSpring builds the upstream wire payload, joining first/last into the
// single name the Spring API expects and applying form defaults.
func (r CreateLeadRequest) ToSpring() SpringLead {
	s := SpringLead{
		Name:       r.FirstName + " " + r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		Stage:      r.Stage,
		Source:     r.Source,
		Channel:    r.Channel,
		AssignedTo: r.AssignedTo,
		Status:     r.Status,
		Notes:      r.Notes,
		Course:     r.Course,
		Type:       r.Type,
	}

	if s.Stage == "" {
		s.Stage = StageIntake
	}
	if s.AssignedTo == "" {
		s.AssignedTo = DefaultAssignedTo
	}
	if s.Status == "" {
		s.Status = DefaultStatus
	}
	if s.Type == "" {
		s.Type = KindLeads
	}

	if r.Type == KindWalkin {
		s.FatherName = r.FatherName
		s.MotherName = r.MotherName
		s.FatherPhoneNumber = r.FatherPhoneNumber
		s.MotherPhoneNumber = r.MotherPhoneNumber
		s.Address = r.Address
		s.PreviousInstitution = r.PreviousInstitution
		s.MarksObtained = r.MarksObtained
		s.Amount = r.Amount
	}

	return s
}

// UpdateLeadRequest represents a partial patch. Nil fields are omitted
// from the upstream payload; the server's echoed record replaces the
// in-memory entry wholesale afterwards.
type UpdateLeadRequest struct {
	FirstName  *string `json:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty"`
	Stage      *string `json:"stage,omitempty" validate:"omitempty,oneof=Intake Qualified Converted"`
	Source     *string `json:"source,omitempty"`
	Channel    *string `json:"channel,omitempty"`
	AssignedTo *string `json:"assignedTo,omitempty"`
	Status     *string `json:"status,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Course     *string `json:"course,omitempty"`

	FatherName          *string  `json:"fatherName,omitempty"`
	MotherName          *string  `json:"motherName,omitempty"`
	FatherPhoneNumber   *string  `json:"fatherPhoneNumber,omitempty"`
	MotherPhoneNumber   *string  `json:"motherPhoneNumber,omitempty"`
	Address             *string  `json:"address,omitempty"`
	PreviousInstitution *string  `json:"previousInstitution,omitempty"`
	MarksObtained       *string  `json:"marksObtained,omitempty"`
	Amount              *float64 `json:"amount,omitempty"`
}

// ToSpring builds the partial upstream payload as a map so only the
// fields present in the patch are sent.
func (r UpdateLeadRequest) ToSpring() map[string]any {
	patch := make(map[string]any)

	if r.FirstName != nil || r.LastName != nil {
		first := ""
		last := ""
		if r.FirstName != nil {
			first = *r.FirstName
		}
		if r.LastName != nil {
			last = *r.LastName
		}
		patch["name"] = first + " " + last
	}

	set := func(key string, v *string) {
		if v != nil {
			patch[key] = *v
		}
	}
	set("email", r.Email)
	set("phone", r.Phone)
	set("stage", r.Stage)
	set("source", r.Source)
	set("channel", r.Channel)
	set("assignedTo", r.AssignedTo)
	set("status", r.Status)
	set("notes", r.Notes)
	set("course", r.Course)
	set("fatherName", r.FatherName)
	set("motherName", r.MotherName)
	set("fatherPhoneNumber", r.FatherPhoneNumber)
	set("motherPhoneNumber", r.MotherPhoneNumber)
	set("address", r.Address)
	set("previousInstitution", r.PreviousInstitution)
	set("marksObtained", r.MarksObtained)
	if r.Amount != nil {
		patch["amount"] = *r.Amount
	}

	return patch
}

// AddOptionRequest adds a member to an option set (assignees, channels).
type AddOptionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
