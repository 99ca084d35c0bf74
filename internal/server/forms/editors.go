package forms

import (
	"github.com/dmitrijs2005/workshops/internal/server/models"
	"github.com/dmitrijs2005/workshops/internal/server/validation"
)

// Field names shared with the services and the HTTP layer.
const (
	FieldFirstName  = "first_name"
	FieldLastName   = "last_name"
	FieldInstitute  = "institute"
	FieldDepartment = "department"

	FieldWorkshopTitle = "workshop_title"
	FieldRecurrences   = "recurrences"

	FieldConditionOne          = "condition_one"
	FieldConditionTwo          = "condition_two"
	FieldConditionThree        = "condition_three"
	FieldProposedWorkshopTitle = "proposed_workshop_title"
	FieldProposedWorkshopDate  = "proposed_workshop_date"
)

// NewProfileForm seeds the names from the account and the rest from the
// profile, if any.
func NewProfileForm(account *models.Account, profile *models.Profile) *Form {
	f := &Form{
		Name:        "profile",
		LabelSuffix: ":",
		Fields: []Field{
			{Name: FieldFirstName, Label: "First name", Kind: KindText, Required: true, MaxLength: validation.MaxNameLength},
			{Name: FieldLastName, Label: "Last name", Kind: KindText, Required: true, MaxLength: validation.MaxNameLength},
			{Name: FieldInstitute, Label: "Institute", Kind: KindText, Required: true, MaxLength: validation.MaxInstituteLength},
			{Name: FieldDepartment, Label: "Department", Kind: KindText, Required: true, MaxLength: validation.MaxDepartmentLength},
		},
	}

	if account != nil {
		f.Fields[0].Initial = account.FirstName
		f.Fields[1].Initial = account.LastName
	}
	if profile != nil {
		f.Fields[2].Initial = profile.Institute
		f.Fields[3].Initial = profile.Department
	}
	return f
}

// NewCreateWorkshopForm lets an instructor pick a workshop type. The
// recurrence rule is kept out of sight and submitted empty by default.
func NewCreateWorkshopForm(types []*models.WorkshopType) *Form {
	return &Form{
		Name: "create_workshop",
		Fields: []Field{
			{Name: FieldWorkshopTitle, Label: "Workshop title", Kind: KindChoice, Required: true, Choices: typeChoices(types)},
			{Name: FieldRecurrences, Label: " ", Kind: KindText, Hidden: true, Initial: ""},
		},
	}
}

// NewProposeWorkshopDateForm lets a coordinator propose a date. All three
// conditions must be accepted.
func NewProposeWorkshopDateForm(types []*models.WorkshopType) *Form {
	return &Form{
		Name: "propose_workshop_date",
		Fields: []Field{
			{Name: FieldConditionOne, Label: "", Kind: KindBool, Required: true},
			{Name: FieldConditionTwo, Label: "", Kind: KindBool, Required: true},
			{Name: FieldConditionThree, Label: "", Kind: KindBool, Required: true},
			{Name: FieldProposedWorkshopTitle, Label: "Proposed workshop title", Kind: KindChoice, Required: true, Choices: typeChoices(types)},
			{Name: FieldProposedWorkshopDate, Label: "Proposed workshop date", Kind: KindDate, Required: true},
		},
	}
}

func typeChoices(types []*models.WorkshopType) []Choice {
	choices := make([]Choice, 0, len(types))
	for _, t := range types {
		choices = append(choices, Choice{Value: t.ID, Label: t.Name})
	}
	return choices
}
