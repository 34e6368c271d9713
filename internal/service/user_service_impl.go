package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/repository"
)

type userService struct {
	users    repository.UserRepo
	observer UseCaseObserver
}

func NewUserService(users repository.UserRepo, observers ...UseCaseObserver) UserService {
	return &userService{users: users, observer: useCaseObserverOrNoop(observers)}
}

// List searches before paginating so page counts reflect the filtered set.
func (s *userService) List(ctx context.Context, q UserQuery, page, size int) (res ListResult[AdminUserRow], err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"query": q.Text, "role": string(q.Role)}
	defer func() { observe(ctx, s.observer, "list-users", startedAt, fields, &err) }()

	rows, err := NewAdminUsersResource(s.users).fetch(ctx)
	if err != nil {
		return res, err
	}
	rows = SearchAdminUsers(rows, q)
	fields["total"] = len(rows)
	return pageOf(rows, page, size), nil
}

func (s *userService) Get(ctx context.Context, id int64) (*AdminUserRow, error) {
	return NewAdminUserDetailResource(s.users, id).fetch(ctx)
}

func (s *userService) Create(ctx context.Context, form *CreateUserForm) (u *domain.AdminUser, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "create-user", startedAt, fields, &err) }()

	if err := form.Validate(); err != nil {
		return nil, err
	}
	u = form.ToDomain()
	if err := s.users.Create(ctx, u, form.Password); err != nil {
		return nil, fmt.Errorf("creating user %s: %w", u.Email, err)
	}
	fields["user_id"] = u.ID
	return u, nil
}
