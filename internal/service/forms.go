package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/alexanderramin/workhub/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// FormError carries one message per invalid field. Submission is blocked
// while it is non-nil.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + e.Fields[k]
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

func (e *FormError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// orNil returns e only when it holds at least one field.
func (e *FormError) orNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// validateStruct runs tag validation and converts failures to a FormError.
func validateStruct(s any) *FormError {
	fe := &FormError{}
	err := validate.Struct(s)
	if err == nil {
		return fe
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.add("form", err.Error())
		return fe
	}
	for _, e := range verrs {
		fe.add(e.Field(), fieldMessage(e))
	}
	return fe
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "eqfield":
		return "does not match"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "oneof":
		return "must be one of " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "gt":
		return "must be positive"
	case "numeric":
		return "must contain digits only"
	default:
		return "is invalid"
	}
}

type CreateCompanyForm struct {
	Name           string `json:"name" validate:"required,max=100"`
	BusinessNumber string `json:"businessNumber" validate:"required,max=20"`
	CEOName        string `json:"ceoName" validate:"max=50"`
	Address        string `json:"address" validate:"max=200"`
	Phone          string `json:"phone" validate:"max=20"`
	Email          string `json:"email" validate:"omitempty,email"`
	Status         string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED"`
}

func (f *CreateCompanyForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.BusinessNumber = strings.TrimSpace(f.BusinessNumber)
	f.CEOName = strings.TrimSpace(f.CEOName)
	f.Address = strings.TrimSpace(f.Address)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.TrimSpace(f.Email)
	f.Status = strings.ToUpper(strings.TrimSpace(f.Status))
}

func (f *CreateCompanyForm) Validate() error {
	f.Normalize()
	return validateStruct(f).orNil()
}

func (f *CreateCompanyForm) ToDomain() *domain.Company {
	return &domain.Company{
		Name:           f.Name,
		BusinessNumber: f.BusinessNumber,
		CEOName:        f.CEOName,
		Address:        f.Address,
		Phone:          f.Phone,
		Email:          f.Email,
		Status:         domain.CompanyStatus(domain.CoalesceStr(f.Status, string(domain.CompanyActive))),
	}
}

type CreateUserForm struct {
	Name            string `json:"name" validate:"required,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"max=20"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"required,oneof=ADMIN DEVELOPER CLIENT"`
	CompanyID       int64  `json:"companyId" validate:"omitempty,gt=0"`
}

func (f *CreateUserForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Phone = strings.TrimSpace(f.Phone)
	f.Role = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(f.Role)), "ROLE_")
}

func (f *CreateUserForm) Validate() error {
	f.Normalize()
	return validateStruct(f).orNil()
}

func (f *CreateUserForm) ToDomain() *domain.AdminUser {
	return &domain.AdminUser{
		Name:      f.Name,
		Email:     f.Email,
		Phone:     f.Phone,
		Role:      domain.UserRole(f.Role),
		CompanyID: domain.Int64Ptr(f.CompanyID),
	}
}

type CreateProjectForm struct {
	Name         string     `json:"name" validate:"required,max=100"`
	Description  string     `json:"description"`
	CompanyID    int64      `json:"companyId" validate:"required,gt=0"`
	Status       string     `json:"status" validate:"omitempty,oneof=CONTRACT IN_PROGRESS COMPLETED ON_HOLD CANCELLED"`
	StartDate    time.Time  `json:"startDate" validate:"required"`
	EndDate      *time.Time `json:"endDate"`
	DeveloperIDs []int64    `json:"developerIds" validate:"dive,gt=0"`
	ClientIDs    []int64    `json:"clientIds" validate:"dive,gt=0"`
}

func (f *CreateProjectForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Status = strings.ToUpper(strings.TrimSpace(f.Status))
}

// Validate also rejects an end date before the start date.
func (f *CreateProjectForm) Validate() error {
	f.Normalize()
	fe := validateStruct(f)
	if f.EndDate != nil && !f.StartDate.IsZero() && f.EndDate.Before(f.StartDate) {
		fe.add("endDate", "must not be before the start date")
	}
	return fe.orNil()
}

func (f *CreateProjectForm) ToDomain() *domain.Project {
	p := &domain.Project{
		Name:        f.Name,
		Description: f.Description,
		CompanyID:   f.CompanyID,
		Status:      domain.ProjectStatus(domain.CoalesceStr(f.Status, string(domain.ProjectContract))),
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
	}
	for _, id := range f.DeveloperIDs {
		p.Developers = append(p.Developers, domain.Member{UserID: id})
	}
	for _, id := range f.ClientIDs {
		p.Clients = append(p.Clients, domain.Member{UserID: id})
	}
	return p
}

type CreateNodeForm struct {
	ProjectID   int64      `json:"projectId" validate:"required,gt=0"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
}

func (f *CreateNodeForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
}

func (f *CreateNodeForm) Validate() error {
	f.Normalize()
	return validateStruct(f).orNil()
}

func (f *CreateNodeForm) ToDomain() *domain.Node {
	return &domain.Node{
		ProjectID:   f.ProjectID,
		Title:       f.Title,
		Description: f.Description,
		Deadline:    f.Deadline,
	}
}
