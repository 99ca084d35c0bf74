package forms

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/workshops/internal/common"
	"github.com/dmitrijs2005/workshops/internal/server/models"
	"github.com/dmitrijs2005/workshops/internal/server/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTypes = []*models.WorkshopType{
	{ID: "t-1", Name: "Python Workshop"},
	{ID: "t-2", Name: "Scilab Workshop"},
}

func TestNewProfileForm_SeedsOnce(t *testing.T) {
	acc := &models.Account{FirstName: "Alice", LastName: "Smith"}
	prof := &models.Profile{Institute: "IIT", Department: "CS"}

	f := NewProfileForm(acc, prof)

	// later changes to the account are not picked up
	acc.FirstName = "Changed"

	first, ok := f.Field(FieldFirstName)
	require.True(t, ok)
	assert.Equal(t, "Alice", first.Initial)

	last, _ := f.Field(FieldLastName)
	assert.Equal(t, "Smith", last.Initial)

	inst, _ := f.Field(FieldInstitute)
	assert.Equal(t, "IIT", inst.Initial)

	_, ok = f.Field("phone_number")
	assert.False(t, ok)
}

func TestNewProfileForm_NilRecords(t *testing.T) {
	f := NewProfileForm(nil, nil)
	for _, fld := range f.Fields {
		assert.Empty(t, fld.Initial, fld.Name)
	}
}

func TestProfileForm_Bind(t *testing.T) {
	f := NewProfileForm(nil, nil)

	got, err := f.Bind(map[string]string{
		FieldFirstName:  " Alice ",
		FieldLastName:   "Smith",
		FieldInstitute:  "IIT",
		FieldDepartment: "CS",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", got[FieldFirstName])

	_, err = f.Bind(map[string]string{FieldFirstName: "Alice"})
	var fe *validation.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FieldLastName, fe.Field)
	assert.ErrorIs(t, err, common.ErrRequired)

	long := make([]byte, 33)
	for i := range long {
		long[i] = 'a'
	}
	_, err = f.Bind(map[string]string{FieldFirstName: string(long), FieldLastName: "x", FieldInstitute: "x", FieldDepartment: "x"})
	assert.ErrorIs(t, err, common.ErrTooLong)
}

func TestCreateWorkshopForm(t *testing.T) {
	f := NewCreateWorkshopForm(testTypes)

	rec, ok := f.Field(FieldRecurrences)
	require.True(t, ok)
	assert.True(t, rec.Hidden)
	assert.Equal(t, " ", rec.Label)
	assert.Equal(t, "", rec.Initial)

	title, _ := f.Field(FieldWorkshopTitle)
	assert.Equal(t, []Choice{{"t-1", "Python Workshop"}, {"t-2", "Scilab Workshop"}}, title.Choices)

	got, err := f.Bind(map[string]string{FieldWorkshopTitle: "t-2"})
	require.NoError(t, err)
	assert.Equal(t, "t-2", got[FieldWorkshopTitle])
	v, present := got[FieldRecurrences]
	assert.True(t, present)
	assert.Equal(t, "", v)

	got, err = f.Bind(map[string]string{FieldWorkshopTitle: "t-1", FieldRecurrences: "RRULE:FREQ=WEEKLY"})
	require.NoError(t, err)
	assert.Equal(t, "RRULE:FREQ=WEEKLY", got[FieldRecurrences])

	_, err = f.Bind(map[string]string{FieldWorkshopTitle: "t-9"})
	assert.ErrorIs(t, err, common.ErrInvalidChoice)
}

func TestProposeWorkshopDateForm(t *testing.T) {
	f := NewProposeWorkshopDateForm(testTypes)
	assert.Equal(t, "", f.LabelSuffix)

	for _, name := range []string{FieldConditionOne, FieldConditionTwo, FieldConditionThree} {
		fld, ok := f.Field(name)
		require.True(t, ok)
		assert.Equal(t, "", fld.Label)
		assert.True(t, fld.Required)
	}

	valid := map[string]string{
		FieldConditionOne:          "true",
		FieldConditionTwo:          "on",
		FieldConditionThree:        "1",
		FieldProposedWorkshopTitle: "t-1",
		FieldProposedWorkshopDate:  "2024-04-15",
	}
	_, err := f.Bind(valid)
	require.NoError(t, err)

	tests := []struct {
		name  string
		field string
		value string
		want  error
	}{
		{"condition not accepted", FieldConditionTwo, "false", common.ErrRequired},
		{"bad date", FieldProposedWorkshopDate, "15/04/2024", common.ErrInvalidFormat},
		{"unknown type", FieldProposedWorkshopTitle, "nope", common.ErrInvalidChoice},
		{"missing date", FieldProposedWorkshopDate, "", common.ErrRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make(map[string]string, len(valid))
			for k, v := range valid {
				values[k] = v
			}
			values[tt.field] = tt.value

			_, err := f.Bind(values)
			var fe *validation.FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
