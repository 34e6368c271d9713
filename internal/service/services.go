package service

import "github.com/alexanderramin/workhub/internal/repository"

// Services bundles every use case over one backend.
type Services struct {
	Projects  ProjectService
	Nodes     NodeService
	Users     UserService
	Companies CompanyService
	History   HistoryService
	Dashboard *DashboardService
}

func New(repos repository.Repos, observers ...UseCaseObserver) *Services {
	obs := useCaseObserverOrNoop(observers)
	return &Services{
		Projects:  NewProjectService(repos.Projects, repos.Nodes, obs),
		Nodes:     NewNodeService(repos.Nodes, obs),
		Users:     NewUserService(repos.Users, obs),
		Companies: NewCompanyService(repos.Companies, obs),
		History:   NewHistoryService(repos.History, obs),
		Dashboard: NewDashboardService(repos, obs),
	}
}
