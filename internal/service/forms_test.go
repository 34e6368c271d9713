package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/workhub/internal/domain"
)

func formFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var fe *FormError
	require.ErrorAs(t, err, &fe)
	return fe.Fields
}

func TestCreateUserForm_Valid(t *testing.T) {
	f := &CreateUserForm{
		Name:            "  Ana  ",
		Email:           "Ana@Example.com",
		Password:        "s3cretpass",
		PasswordConfirm: "s3cretpass",
		Role:            "role_developer",
		CompanyID:       3,
	}
	require.NoError(t, f.Validate())
	u := f.ToDomain()
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, domain.RoleDeveloper, u.Role)
	require.NotNil(t, u.CompanyID)
	assert.Equal(t, int64(3), *u.CompanyID)
}

func TestCreateUserForm_PasswordMismatchBlocks(t *testing.T) {
	f := &CreateUserForm{
		Name:            "Ana",
		Email:           "ana@example.com",
		Password:        "s3cretpass",
		PasswordConfirm: "s3cretpasz",
		Role:            "CLIENT",
	}
	fields := formFields(t, f.Validate())
	assert.Equal(t, map[string]string{"passwordConfirm": "does not match"}, fields)
}

func TestCreateUserForm_FieldMessages(t *testing.T) {
	f := &CreateUserForm{Email: "not-an-email", Password: "short", PasswordConfirm: "short", Role: "OWNER"}
	fields := formFields(t, f.Validate())
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be at least 8 characters", fields["password"])
	assert.Equal(t, "must be one of ADMIN, DEVELOPER, CLIENT", fields["role"])
}

func TestCreateProjectForm_EndBeforeStartBlocks(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	f := &CreateProjectForm{Name: "Site", CompanyID: 1, StartDate: start, EndDate: &end}
	fields := formFields(t, f.Validate())
	assert.Equal(t, map[string]string{"endDate": "must not be before the start date"}, fields)

	same := start
	f.EndDate = &same
	assert.NoError(t, f.Validate())
}

func TestCreateProjectForm_Defaults(t *testing.T) {
	f := &CreateProjectForm{
		Name:         "Site",
		CompanyID:    1,
		StartDate:    time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		DeveloperIDs: []int64{4, 5},
		ClientIDs:    []int64{9},
	}
	require.NoError(t, f.Validate())
	p := f.ToDomain()
	assert.Equal(t, domain.ProjectContract, p.Status)
	assert.Len(t, p.Developers, 2)
	assert.Equal(t, int64(9), p.Clients[0].UserID)
}

func TestCreateProjectForm_MissingFields(t *testing.T) {
	fields := formFields(t, (&CreateProjectForm{Status: "paused", DeveloperIDs: []int64{0}}).Validate())
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "companyId")
	assert.Contains(t, fields, "startDate")
	assert.Contains(t, fields, "status")
}

func TestCreateCompanyForm(t *testing.T) {
	f := &CreateCompanyForm{Name: "Acme", BusinessNumber: "123-45-67890", Email: "bad"}
	fields := formFields(t, f.Validate())
	assert.Equal(t, map[string]string{"email": "must be a valid email address"}, fields)

	f.Email = "ops@acme.example"
	require.NoError(t, f.Validate())
	assert.Equal(t, domain.CompanyActive, f.ToDomain().Status)
}

func TestCreateNodeForm(t *testing.T) {
	fields := formFields(t, (&CreateNodeForm{Title: "   "}).Validate())
	assert.Equal(t, "is required", fields["title"])
	assert.Equal(t, "is required", fields["projectId"])

	f := &CreateNodeForm{ProjectID: 2, Title: " QA "}
	require.NoError(t, f.Validate())
	assert.Equal(t, "QA", f.ToDomain().Title)
}

func TestFormError_Message(t *testing.T) {
	err := &FormError{Fields: map[string]string{"b": "is required", "a": "is invalid"}}
	assert.Equal(t, "invalid form: a is invalid; b is required", err.Error())
}
