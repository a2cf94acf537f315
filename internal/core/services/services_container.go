package services

import (
	portsrepo "github.com/flujoapp/flujo_backend/internal/core/ports/repositories"
	portssvc "github.com/flujoapp/flujo_backend/internal/core/ports/services"
)

// NewServiceContainer wires every application service with its repository
// dependencies. The reconciler is built first because the project service
// runs it inside the save pipeline, and the watcher wraps the summary service
// so change notifications replay the same computation the REST endpoint uses.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	reconciler := NewReconciliationService(repos.TransactionRepo)
	summary := NewSummaryService(repos.TransactionRepo, repos.ProjectRepo)

	return &portssvc.ServiceContainer{
		Contact:     NewContactService(repos.ContactRepo),
		Transaction: NewTransactionService(repos.TransactionRepo),
		Project:     NewProjectService(repos.ProjectRepo, repos.ContactRepo, repos.ActivityRepo, reconciler),
		Reconciler:  reconciler,
		Summary:     summary,
		Calendar:    NewCalendarService(repos.TransactionRepo, repos.ProjectRepo),
		User:        NewUserService(repos.UserRepo),
		Watcher:     NewDashboardWatcher(repos.Listener, summary),
	}
}
