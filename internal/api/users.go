package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alexanderramin/workhub/internal/domain"
)

// UsersAPI implements repository.UserRepo over the admin endpoints.
type UsersAPI struct {
	c *Client
}

type createUserRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	CompanyID *int64 `json:"companyId,omitempty"`
}

func (a *UsersAPI) ListAdmin(ctx context.Context) ([]domain.AdminUser, error) {
	var dtos []adminUserDTO
	if err := a.c.do(ctx, http.MethodGet, "/admin/users", nil, nil, &dtos); err != nil {
		return nil, err
	}
	users := make([]domain.AdminUser, 0, len(dtos))
	for _, d := range dtos {
		users = append(users, d.toDomain())
	}
	return users, nil
}

func (a *UsersAPI) GetAdmin(ctx context.Context, id int64) (*domain.AdminUser, error) {
	var dto adminUserDTO
	if err := a.c.do(ctx, http.MethodGet, fmt.Sprintf("/admin/users/%d", id), nil, nil, &dto); err != nil {
		return nil, err
	}
	u := dto.toDomain()
	return &u, nil
}

func (a *UsersAPI) Create(ctx context.Context, u *domain.AdminUser, password string) error {
	req := createUserRequest{
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Password:  password,
		Role:      string(u.Role),
		CompanyID: u.CompanyID,
	}
	var dto adminUserDTO
	if err := a.c.do(ctx, http.MethodPost, "/admin/users", nil, req, &dto); err != nil {
		return err
	}
	*u = dto.toDomain()
	return nil
}
