package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/workhub/internal/domain"
)

// Seed fills an empty local database with a small demo data set. It is a
// no-op when any company already exists.
func Seed(ctx context.Context, database *sql.DB) (bool, error) {
	var n int
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`).Scan(&n); err != nil {
		return false, fmt.Errorf("checking existing data: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	repos := NewSQLiteRepos(database)
	companies := []*domain.Company{
		{Name: "Northwind Studio", BusinessNumber: "120-81-47521", CEOName: "Hana Park", Email: "hello@northwind.test", Status: domain.CompanyActive},
		{Name: "Bluefin Retail", BusinessNumber: "211-86-11002", CEOName: "Minsu Lee", Email: "it@bluefin.test", Status: domain.CompanyActive},
		{Name: "Orbit Logistics", BusinessNumber: "318-02-99310", CEOName: "Jae Kim", Email: "ops@orbit.test", Status: domain.CompanySuspended},
	}
	for _, c := range companies {
		if err := repos.Companies.Create(ctx, c); err != nil {
			return false, err
		}
	}

	users := []struct {
		user    *domain.AdminUser
		company int
	}{
		{&domain.AdminUser{Name: "Admin", Email: "admin@workhub.test", Role: domain.RoleAdmin}, -1},
		{&domain.AdminUser{Name: "Dana Developer", Email: "dana@workhub.test", Role: domain.RoleDeveloper}, 0},
		{&domain.AdminUser{Name: "Eli Engineer", Email: "eli@workhub.test", Role: domain.RoleDeveloper}, 0},
		{&domain.AdminUser{Name: "Cora Client", Email: "cora@bluefin.test", Role: domain.RoleClient}, 1},
		{&domain.AdminUser{Name: "Otto Ops", Email: "otto@orbit.test", Role: domain.RoleClient}, 2},
	}
	for _, u := range users {
		if u.company >= 0 {
			u.user.CompanyID = &companies[u.company].ID
		}
		if err := repos.Users.Create(ctx, u.user, "changeme123"); err != nil {
			return false, err
		}
	}
	dana, eli, cora, otto := users[1].user, users[2].user, users[3].user, users[4].user

	start := time.Now().UTC().AddDate(0, -2, 0).Truncate(24 * time.Hour)
	end := start.AddDate(0, 4, 0)
	projects := []struct {
		project *domain.Project
		nodes   []string
	}{
		{
			&domain.Project{
				Name: "Bluefin storefront", CompanyID: companies[1].ID, Status: domain.ProjectInProgress,
				Description: "## Scope\n\nRebuild the **online store** with a new checkout flow.",
				StartDate:   start, EndDate: &end,
				Developers: []domain.Member{{UserID: dana.ID}, {UserID: eli.ID}},
				Clients:    []domain.Member{{UserID: cora.ID}},
			},
			[]string{"Requirements", "Design", "Implementation", "QA", "Launch"},
		},
		{
			&domain.Project{
				Name: "Orbit tracking portal", CompanyID: companies[2].ID, Status: domain.ProjectOnHold,
				Description: "Shipment tracking portal for *Orbit* partners.",
				StartDate:   start.AddDate(0, 1, 0),
				Developers:  []domain.Member{{UserID: eli.ID}},
				Clients:     []domain.Member{{UserID: otto.ID}},
			},
			[]string{"Discovery", "Prototype"},
		},
		{
			&domain.Project{
				Name: "Northwind brand refresh", CompanyID: companies[0].ID, Status: domain.ProjectContract,
				StartDate: start.AddDate(0, 2, 0),
			},
			nil,
		},
	}
	for _, p := range projects {
		if err := repos.Projects.Create(ctx, p.project); err != nil {
			return false, err
		}
		for i, title := range p.nodes {
			n := &domain.Node{ProjectID: p.project.ID, Title: title}
			switch {
			case i < 2:
				n.Status = domain.NodeCompleted
				n.ConfirmStatus = domain.StrPtr(string(domain.ConfirmApproved))
			case i == 2:
				n.Status = domain.NodeReview
				n.ConfirmStatus = domain.StrPtr(string(domain.ConfirmPending))
			}
			if err := repos.Nodes.Create(ctx, n); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}
