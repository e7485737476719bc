package cmd

import (
	"log/slog"
	"time"

	"logistics/internal/adapters/out/gemini"
	"logistics/internal/adapters/out/notify"
	"logistics/internal/adapters/out/payments"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters to use cases. Handlers are created on
// demand; shared collaborators (estimator chain, notifier, payment
// provider) are built once here.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	estimator services.Estimator
	resolver  services.AssignmentResolver
	notifier  ports.Notifier
	payments  ports.PaymentProvider
	logger    *slog.Logger
}

// NewCompositionRoot builds the shared collaborators. The remote
// estimator is only wired when an API key is configured; pricing always
// works through the deterministic fallback either way.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var remote services.Estimator
	if configs.GeminiAPIKey != "" {
		remoteEstimator, err := gemini.NewRemoteEstimator(gemini.Config{
			APIKey:  configs.GeminiAPIKey,
			BaseURL: configs.GeminiBaseURL,
			Timeout: time.Duration(configs.GeminiTimeoutSeconds) * time.Second,
		}, logger)
		if err != nil {
			return CompositionRoot{}, err
		}
		remote = remoteEstimator
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		estimator: services.NewFallbackEstimator(
			remote, services.NewDeterministicEstimator(), logger),
		resolver: services.NewAssignmentResolver(),
		notifier: notify.NewSlogNotifier(logger),
		payments: payments.NewLoggingProvider(logger),
		logger:   logger,
	}, nil
}

// Estimator exposes the estimator chain for the standalone pricing endpoint.
func (c *CompositionRoot) Estimator() services.Estimator {
	return c.estimator
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() (*commands.CreateOrderCommandHandler, error) {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(
		f, c.estimator, c.resolver, c.notifier, c.payments, c.logger)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() (*commands.AdvanceOrderStatusCommandHandler, error) {
	var f commands.OrderNetworkUoWFactory = FuncOrderNetworkUoWFactory(func() commands.OrderNetworkUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderStatusCommandHandler(f, c.resolver, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateBulkAdvanceStatusCommandHandler(
	single *commands.AdvanceOrderStatusCommandHandler,
) (*commands.BulkAdvanceStatusCommandHandler, error) {
	return commands.NewBulkAdvanceStatusCommandHandler(single, c.logger)
}

func (c *CompositionRoot) CreateAssignNetworkCommandHandler() (*commands.AssignNetworkCommandHandler, error) {
	var f commands.OrderNetworkUoWFactory = FuncOrderNetworkUoWFactory(func() commands.OrderNetworkUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignNetworkCommandHandler(f, c.resolver, c.logger)
}

func (c *CompositionRoot) CreateAssignOrdersToAgentCommandHandler() (*commands.AssignOrdersToAgentCommandHandler, error) {
	var f commands.OrderNetworkUoWFactory = FuncOrderNetworkUoWFactory(func() commands.OrderNetworkUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrdersToAgentCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateAssignOrdersToVehicleCommandHandler() (*commands.AssignOrdersToVehicleCommandHandler, error) {
	var f commands.OrderNetworkUoWFactory = FuncOrderNetworkUoWFactory(func() commands.OrderNetworkUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrdersToVehicleCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateProgressTransitCommandHandler() (*commands.ProgressTransitCommandHandler, error) {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProgressTransitCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateRegisterHubCommandHandler() (*commands.RegisterHubCommandHandler, error) {
	var f commands.NetworkUoWFactory = FuncNetworkUoWFactory(func() commands.NetworkUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterHubCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterAgentCommandHandler() (*commands.RegisterAgentCommandHandler, error) {
	var f commands.NetworkUoWFactory = FuncNetworkUoWFactory(func() commands.NetworkUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterAgentCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterVehicleCommandHandler() (*commands.RegisterVehicleCommandHandler, error) {
	var f commands.NetworkUoWFactory = FuncNetworkUoWFactory(func() commands.NetworkUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterVehicleCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterCustomerCommandHandler() (*commands.RegisterCustomerCommandHandler, error) {
	var f commands.CustomerUoWFactory = FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterCustomerCommandHandler(f)
}

func (c *CompositionRoot) CreateGetWorkflowStatusQueryHandler() queries.GetWorkflowStatusQueryHandler {
	return queries.NewGetWorkflowStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetHubDashboardQueryHandler() queries.GetHubDashboardQueryHandler {
	return queries.NewGetHubDashboardQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerAnalyticsQueryHandler() queries.GetCustomerAnalyticsQueryHandler {
	return queries.NewGetCustomerAnalyticsQueryHandler(c.gormDB)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncNetworkUoWFactory func() commands.NetworkUoW

func (f FuncNetworkUoWFactory) Create() commands.NetworkUoW {
	return f()
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type FuncOrderNetworkUoWFactory func() commands.OrderNetworkUoW

func (f FuncOrderNetworkUoWFactory) Create() commands.OrderNetworkUoW {
	return f()
}
