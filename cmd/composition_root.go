package cmd

import (
	"fmt"
	"log/slog"

	"shipquote/internal/adapters/in/chat"
	httpin "shipquote/internal/adapters/in/http"
	"shipquote/internal/adapters/out/console"
	"shipquote/internal/adapters/out/memory/sessionrepo"
	"shipquote/internal/adapters/out/postgres"
	"shipquote/internal/adapters/out/postgres/routecache"
	"shipquote/internal/adapters/out/routing"
	"shipquote/internal/adapters/out/telegram"
	"shipquote/internal/core/application/usecases/commands"
	"shipquote/internal/core/application/usecases/queries"
	"shipquote/internal/core/domain/model/tier"
	"shipquote/internal/core/domain/services"
	"shipquote/internal/core/ports"
	"shipquote/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	sessions   *sessionrepo.Repository
	catalog    *tier.Catalog
	quoteCache *routecache.GormQuoteCache
	routes     ports.RouteProvider
	messenger  ports.Messenger
}

// NewCompositionRoot builds the long-lived adapters. It fails on configuration
// that only shows up when files are read or clients are created.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		sessions:   sessionrepo.NewRepository(),
	}

	var err error
	if c.catalog, err = c.createCatalog(); err != nil {
		return nil, err
	}
	if c.routes, err = c.createRouteProvider(); err != nil {
		return nil, err
	}
	if c.messenger, err = c.createMessenger(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CompositionRoot) createCatalog() (*tier.Catalog, error) {
	if c.configs.TiersFile == "" {
		return tier.DefaultCatalog(), nil
	}

	catalog, err := tier.LoadCatalogFile(c.configs.TiersFile)
	if err != nil {
		return nil, fmt.Errorf("load tiers from %s: %w", c.configs.TiersFile, err)
	}
	return catalog, nil
}

func (c *CompositionRoot) createRouteProvider() (ports.RouteProvider, error) {
	var (
		provider ports.RouteProvider
		err      error
	)

	opts := []routing.Option{routing.WithLogger(c.logger)}
	switch c.configs.RouteProvider {
	case RouteProviderGoogle:
		provider, err = routing.NewGoogleProvider(c.configs.GoogleMapsAPIKey, opts...)
	case RouteProviderORS:
		provider, err = routing.NewORSProvider(c.configs.ORSAPIKey, opts...)
	case RouteProviderStatic:
		pairs := routing.DemoPairs()
		if c.configs.StaticRoutesFile != "" {
			pairs, err = routing.LoadStaticPairsFile(c.configs.StaticRoutesFile)
		}
		provider = routing.NewStaticProvider(pairs)
	default:
		err = fmt.Errorf("unknown route provider %q", c.configs.RouteProvider)
	}
	if err != nil {
		return nil, fmt.Errorf("route provider: %w", err)
	}

	if c.configs.RouteCacheTTL <= 0 || c.configs.RouteProvider == RouteProviderStatic {
		return provider, nil
	}

	c.quoteCache = routecache.NewGormQuoteCache(c.gormDB, c.configs.RouteCacheTTL)
	return routing.NewCachedProvider(provider, c.quoteCache, c.logger), nil
}

func (c *CompositionRoot) createMessenger() (ports.Messenger, error) {
	if c.configs.TelegramBotToken == "" {
		c.logger.Warn("TELEGRAM_BOT_TOKEN is not set, replies are only logged")
		return console.NewMessenger(c.logger), nil
	}
	return telegram.NewMessenger(c.configs.TelegramBotToken, c.configs.TelegramAPIURL, nil, c.logger)
}

func (c *CompositionRoot) Messenger() ports.Messenger {
	return c.messenger
}

func (c *CompositionRoot) CreateStartIntakeCommandHandler() commands.StartIntakeCommandHandler {
	return commands.NewStartIntakeCommandHandler(c.sessions, c.catalog)
}

func (c *CompositionRoot) CreateSubmitReplyCommandHandler() commands.SubmitReplyCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitReplyCommandHandler(c.sessions, c.routes, services.NewPricingModel(), f)
}

func (c *CompositionRoot) CreateCancelIntakeCommandHandler() commands.CancelIntakeCommandHandler {
	return commands.NewCancelIntakeCommandHandler(c.sessions)
}

func (c *CompositionRoot) CreateExpireIdleSessionsCommandHandler() commands.ExpireIdleSessionsCommandHandler {
	return commands.NewExpireIdleSessionsCommandHandler(c.sessions)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateDispatcher() (*chat.Dispatcher, error) {
	start := c.CreateStartIntakeCommandHandler()
	submit := c.CreateSubmitReplyCommandHandler()
	cancel := c.CreateCancelIntakeCommandHandler()

	return chat.NewDispatcher(chat.Handlers{
		StartIntake:  &start,
		SubmitReply:  &submit,
		CancelIntake: &cancel,
		ListOrders:   c.CreateListOrdersQueryHandler(),
	}, c.catalog, c.messenger, c.configs.SupportContact, c.logger)
}

func (c *CompositionRoot) CreateServer(updates httpin.UpdatePoster) *httpin.Server {
	return httpin.NewServer(updates, c.CreateListOrdersQueryHandler(), c.configs.TelegramWebhookSecret, c.logger)
}

// CreateJobManager schedules the session sweep when an idle timeout is set and
// the route cache purge when the cache is in use.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var scheduled []jobs.Job

	if c.configs.SessionIdleTimeout > 0 {
		expire := c.CreateExpireIdleSessionsCommandHandler()
		scheduled = append(scheduled, jobs.NewSessionSweepJob(
			&expire,
			c.messenger,
			c.configs.SessionSweepSchedule,
			c.configs.SessionIdleTimeout,
			c.logger,
		))
	}
	if c.quoteCache != nil {
		scheduled = append(scheduled, jobs.NewRouteCachePurgeJob(c.quoteCache, c.logger))
	}

	return jobs.NewJobManager(scheduled...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
