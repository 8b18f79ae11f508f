package models

import (
	"strings"
	"time"
)

// Lead stages form a closed set for filtering purposes even though the
// underlying wire field is an unconstrained string.
const (
	StageIntake    = "Intake"
	StageQualified = "Qualified"
	StageConverted = "Converted"
)

// Defaults applied when the upstream record omits a display field.
const (
	DefaultChannel    = "Email"
	DefaultStatus     = "Active"
	DefaultAction     = "Complete form"
	DefaultAssignedTo = "Unassigned"
)

// Lead kinds accepted by the upstream filter endpoint.
const (
	KindLeads  = "leads"
	KindWalkin = "walkin"
)

// Lead is the internal lead record. DateAdded is normalized at the network
// edge; the zero time is the distinguished "invalid date" marker and must
// never crash the view pipeline.
type Lead struct {
	ID         int
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Stage      string
	Source     string
	Channel    string
	AssignedTo string
	Status     string
	DateAdded  time.Time
	Action     string
	Notes      string
	Course     string
	Walkin     *WalkinInfo
}

// WalkinInfo carries the admissions-specific fields of a walk-in lead.
// They are opaque to the view pipeline.
type WalkinInfo struct {
	FatherName          string
	MotherName          string
	FatherPhoneNumber   string
	MotherPhoneNumber   string
	Address             string
	PreviousInstitution string
	MarksObtained       string
	Amount              float64
}

// Name returns the display name used by the name sort key.
func (l Lead) Name() string {
	return l.FirstName + " " + l.LastName
}

// HasValidDate reports whether the lead's dateAdded parsed successfully.
func (l Lead) HasValidDate() bool {
	return !l.DateAdded.IsZero()
}

// SpringLead is the wire representation used by the upstream Spring API.
// Records are loosely typed on the wire; ToLead is the single
// parse-and-validate boundary that produces a strongly typed Lead.
type SpringLead struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Stage      string `json:"stage"`
	Source     string `json:"source"`
	Channel    string `json:"channel"`
	AssignedTo string `json:"assignedTo"`
	Status     string `json:"status"`
	Action     string `json:"action"`
	Notes      string `json:"notes"`
	Course     string `json:"course"`
	DateAdded  string `json:"dateAdded"`
	Type       string `json:"type,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`

	// Walk-in fields, present only when Type == "walkin".
	FatherName          string  `json:"fatherName,omitempty"`
	MotherName          string  `json:"motherName,omitempty"`
	FatherPhoneNumber   string  `json:"fatherPhoneNumber,omitempty"`
	MotherPhoneNumber   string  `json:"motherPhoneNumber,omitempty"`
	Address             string  `json:"address,omitempty"`
	PreviousInstitution string  `json:"previousInstitution,omitempty"`
	MarksObtained       string  `json:"marksObtained,omitempty"`
	Amount              float64 `json:"amount,omitempty"`
}

// dateLayouts are the formats the upstream has been observed to emit.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate normalizes an upstream date string. It returns the zero time
// for empty or unparseable input instead of an error so malformed dates
// degrade to the invalid marker rather than failing a whole fetch.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ToLead converts the wire record into the internal representation,
// splitting the single upstream name into first/last on the first space
// and filling display defaults for absent fields.
func (s SpringLead) ToLead() Lead {
	first, last := SplitName(s.Name)

	l := Lead{
		ID:         s.ID,
		FirstName:  first,
		LastName:   last,
		Email:      s.Email,
		Phone:      s.Phone,
		Stage:      s.Stage,
		Source:     s.Source,
		Channel:    s.Channel,
		AssignedTo: s.AssignedTo,
		Status:     s.Status,
		Action:     s.Action,
		Notes:      s.Notes,
		Course:     s.Course,
		DateAdded:  ParseDate(s.DateAdded),
	}

	if l.Channel == "" {
		l.Channel = DefaultChannel
	}
	if l.Status == "" {
		l.Status = DefaultStatus
	}
	if l.Action == "" {
		l.Action = DefaultAction
	}
	if l.AssignedTo == "" {
		l.AssignedTo = DefaultAssignedTo
	}

	if s.Type == KindWalkin {
		l.Walkin = &WalkinInfo{
			FatherName:          s.FatherName,
			MotherName:          s.MotherName,
			FatherPhoneNumber:   s.FatherPhoneNumber,
			MotherPhoneNumber:   s.MotherPhoneNumber,
			Address:             s.Address,
			PreviousInstitution: s.PreviousInstitution,
			MarksObtained:       s.MarksObtained,
			Amount:              s.Amount,
		}
	}

	return l
}

// SplitName splits an upstream display name into first and last parts.
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
