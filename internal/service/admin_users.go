package service

import (
	"context"
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/mapper"
	"github.com/alexanderramin/workhub/internal/repository"
)

// AdminUserRow is an admin user with its role mapped for display.
type AdminUserRow struct {
	domain.AdminUser
	RoleView mapper.RoleView
}

func toAdminUserRow(u domain.AdminUser) AdminUserRow {
	return AdminUserRow{AdminUser: u, RoleView: mapper.AdminUserRole(u.Role)}
}

// NewAdminUsersResource lists every admin user.
func NewAdminUsersResource(users repository.UserRepo) *Resource[[]AdminUserRow] {
	return NewResource(func(ctx context.Context) ([]AdminUserRow, error) {
		list, err := users.ListAdmin(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]AdminUserRow, len(list))
		for i, u := range list {
			rows[i] = toAdminUserRow(u)
		}
		return rows, nil
	})
}

// NewAdminUserDetailResource loads a single admin user.
func NewAdminUserDetailResource(users repository.UserRepo, id int64) *Resource[*AdminUserRow] {
	return NewResource(func(ctx context.Context) (*AdminUserRow, error) {
		u, err := users.GetAdmin(ctx, id)
		if err != nil {
			return nil, err
		}
		row := toAdminUserRow(*u)
		return &row, nil
	})
}

// UserQuery narrows an admin user list.
type UserQuery struct {
	// Text is fuzzy-matched against name and email.
	Text string
	// Role keeps only users whose mapped role equals it; empty keeps all.
	Role domain.UserRole
}

// SearchAdminUsers filters rows by role, then, when q.Text is set, keeps
// fuzzy matches on name or email ranked best first. Without text the input
// order is kept.
func SearchAdminUsers(rows []AdminUserRow, q UserQuery) []AdminUserRow {
	var filtered []AdminUserRow
	for _, r := range rows {
		if q.Role != "" && r.RoleView.Role != mapper.AdminUserRole(q.Role).Role {
			continue
		}
		filtered = append(filtered, r)
	}

	text := strings.TrimSpace(q.Text)
	if text == "" {
		return filtered
	}

	best := make(map[int]int)
	for _, field := range []func(AdminUserRow) string{
		func(r AdminUserRow) string { return r.Name },
		func(r AdminUserRow) string { return r.Email },
	} {
		targets := make([]string, len(filtered))
		for i, r := range filtered {
			targets[i] = field(r)
		}
		for _, rank := range fuzzy.RankFindNormalizedFold(text, targets) {
			if d, ok := best[rank.OriginalIndex]; !ok || rank.Distance < d {
				best[rank.OriginalIndex] = rank.Distance
			}
		}
	}

	out := make([]AdminUserRow, 0, len(best))
	idx := make([]int, 0, len(best))
	for i := range filtered {
		if _, ok := best[i]; ok {
			idx = append(idx, i)
		}
	}
	// Equal distances keep list order.
	slices.SortStableFunc(idx, func(a, b int) int { return best[a] - best[b] })
	for _, i := range idx {
		out = append(out, filtered[i])
	}
	return out
}
