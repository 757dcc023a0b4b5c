package main

import (
	"context"
	"fmt"
	"time"

	common_api "pocket-crm/internal/common/api"
	"pocket-crm/internal/common/models"
	"pocket-crm/internal/config"
	"pocket-crm/internal/database"
	"pocket-crm/internal/features/activity"
	"pocket-crm/internal/features/audit"
	"pocket-crm/internal/features/backup"
	"pocket-crm/internal/features/contact"
	"pocket-crm/internal/features/customfield"
	"pocket-crm/internal/features/deal"
	"pocket-crm/internal/features/export"
	"pocket-crm/internal/features/file"
	"pocket-crm/internal/features/followup"
	"pocket-crm/internal/features/lead"
	"pocket-crm/internal/features/notification"
	"pocket-crm/internal/features/reminder"
	"pocket-crm/internal/features/search"
	"pocket-crm/internal/features/system"
	"pocket-crm/internal/logger"
	"pocket-crm/internal/middleware"
	"pocket-crm/pkg/utils"

	_ "pocket-crm/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             64 * 1024 * 1024, // backup archives are uploaded whole
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route, log *zap.Logger) {
	for _, route := range routes {
		log.Debug("registering routes", zap.String("api", fmt.Sprintf("%T", route)))
		route.Setup(app)
	}
	log.Info("all routes registered", zap.Int("count", len(routes)))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`, ``),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, log *zap.Logger, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				log.Info("server listening", zap.String("addr", port))
				if err := app.Listen(port); err != nil {
					log.Error("server failed", zap.Error(err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

// Indexed is implemented by every repository that owns Mongo indexes.
type Indexed interface {
	EnsureIndexes(ctx context.Context) error
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(
	lc fx.Lifecycle,
	log *zap.Logger,
	fields customfield.CustomFieldRepository,
	contacts contact.ContactRepository,
	leads lead.LeadRepository,
	deals deal.DealRepository,
	followUps followup.FollowUpRepository,
) {
	repos := map[string]Indexed{
		database.CollectionCustomFields: fields,
		database.CollectionContacts:     contacts,
		database.CollectionLeads:        leads,
		database.CollectionDeals:        deals,
		database.CollectionFollowUps:    followUps,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			for name, repo := range repos {
				if err := repo.EnsureIndexes(ctx); err != nil {
					// the custom field unique index guards slot binding
					if name == database.CollectionCustomFields {
						return fmt.Errorf("ensure %s indexes: %w", name, err)
					}
					log.Warn("failed to ensure indexes", zap.String("collection", name), zap.Error(err))
				}
			}
			return nil
		},
	})
}

// StartSchedulers loads pending reminders and the backup schedule.
func StartSchedulers(lc fx.Lifecycle, reminders reminder.ReminderService, followUps followup.FollowUpService, backups backup.BackupService) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := reminders.InitializeScheduler(ctx, followUps); err != nil {
				return err
			}
			return backups.StartSchedule()
		},
		OnStop: func(ctx context.Context) error {
			backups.StopSchedule()
			return reminders.StopScheduler()
		},
	})
}

// NewSlotStores maps each module to the repository holding its records.
func NewSlotStores(contacts contact.ContactRepository, leads lead.LeadRepository, deals deal.DealRepository) customfield.SlotStores {
	return customfield.SlotStores{
		models.ModuleContact: contacts,
		models.ModuleLead:    leads,
		models.ModuleDeal:    deals,
	}
}

func NewBackupLocalStore(cfg *config.Config) (*backup.LocalStore, error) {
	return backup.NewLocalStore(cfg.BackupPath)
}

// @title           Pocket CRM API
// @version         1.0
// @description     Contacts, leads, deals and follow-ups with custom fields, reminders and backups.

// @host            localhost:8080
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			audit.NewAuditRepository,
			customfield.NewCustomFieldRepository,
			contact.NewContactRepository,
			lead.NewLeadRepository,
			deal.NewDealRepository,
			followup.NewFollowUpRepository,
			notification.NewNotificationRepository,
			backup.NewDataRepository,
			NewBackupLocalStore,
			backup.NewCloudStore,
			NewSlotStores,

			// Initialize Service
			audit.NewAuditService,
			customfield.NewCustomFieldService,
			contact.NewContactService,
			deal.NewDealService,
			lead.NewLeadService,
			notification.NewHub,
			notification.NewNotificationService,
			reminder.NewReminderService,
			followup.NewFollowUpService,
			backup.NewBackupService,
			export.NewExportService,
			file.NewPhotoService,
			search.NewSearchService,
			activity.NewActivityService,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(s customfield.CustomFieldService) contact.SlotValidator { return s },
			func(s customfield.CustomFieldService) lead.SlotValidator { return s },
			func(s customfield.CustomFieldService) deal.SlotValidator { return s },
			func(s customfield.CustomFieldService) export.FieldCatalog { return s },
			func(s contact.ContactService) lead.ContactWriter { return s },
			func(s deal.DealService) lead.DealWriter { return s },
			func(s contact.ContactService) export.ContactCreator { return s },
			func(r contact.ContactRepository) export.ContactStore { return r },
			func(s contact.ContactService) file.ContactStore { return s },
			func(r lead.LeadRepository) export.LeadStore { return r },
			func(r deal.DealRepository) export.DealStore { return r },
			func(s notification.NotificationService) reminder.Notifier { return s },
			func(s reminder.ReminderService) followup.Scheduler { return s },
			func(s reminder.ReminderService) backup.Reloader { return s },
			func(db *database.MongodbDB) system.Pinger { return db },
			func(s contact.ContactService) search.ContactSearcher { return s },
			func(s lead.LeadService) search.LeadSearcher { return s },
			func(s deal.DealService) search.DealSearcher { return s },
			func(r followup.FollowUpRepository) activity.FollowUpSource { return r },

			// Initialize Controller
			audit.NewAuditController,
			customfield.NewCustomFieldController,
			contact.NewContactController,
			lead.NewLeadController,
			deal.NewDealController,
			followup.NewFollowUpController,
			notification.NewNotificationController,
			backup.NewBackupController,
			export.NewExportController,
			file.NewPhotoController,
			search.NewSearchController,
			activity.NewActivityController,
			system.NewHealthController,

			// Initialize API Routes
			AsRoute(audit.NewAuditApi),
			AsRoute(customfield.NewCustomFieldApi),
			AsRoute(contact.NewContactApi),
			AsRoute(lead.NewLeadApi),
			AsRoute(deal.NewDealApi),
			AsRoute(followup.NewFollowUpApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(backup.NewBackupApi),
			AsRoute(export.NewExportApi),
			AsRoute(file.NewPhotoApi),
			AsRoute(search.NewSearchApi),
			AsRoute(activity.NewActivityApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },
			InitializeIndexes,
			RegisterAllRoutesWithAnnotation,
			StartSchedulers,
			StartServer,
		),
	)

	app.Run()
}
