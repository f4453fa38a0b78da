package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/driftbox/driftbox/config"
	redisadapter "github.com/driftbox/driftbox/internal/adapters/redis"
	"github.com/driftbox/driftbox/internal/data"
	"github.com/driftbox/driftbox/internal/service"
)

// ServiceDeps groups the shared dependencies services are built from.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds all constructed application services.
type ServiceContainer struct {
	Auth    *service.AuthService
	Users   *service.UserService
	Uploads *service.UploadService
	Site    *service.SiteService
}

// NewServices constructs the full service graph from shared dependencies.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	provider, err := BuildAuthProvider(deps.Config.Auth)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build auth provider: %w", err)
	}

	userRepo := data.NewUserRepo(deps.DB)
	uploadRepo := data.NewUploadRepo(deps.DB)
	rapSheetRepo := data.NewRapSheetRepo(deps.DB)
	settingsRepo := data.NewSiteSettingsRepo(deps.DB)

	sessions := redisadapter.NewSessionStore(deps.RedisClient)
	states := redisadapter.NewStateStore(deps.RedisClient)

	auth := service.NewAuthService(service.AuthServiceOptions{
		Provider:   provider,
		Sessions:   sessions,
		States:     states,
		Users:      userRepo,
		SessionTTL: deps.Config.Auth.SessionTTL,
	})

	users := service.NewUserService(service.UserServiceOptions{
		Users:     userRepo,
		RapSheets: rapSheetRepo,
	})

	uploads := service.NewUploadService(service.UploadServiceOptions{
		Uploads: uploadRepo,
	})

	site := service.NewSiteService(service.SiteServiceOptions{
		Settings: settingsRepo,
		Users:    userRepo,
		Domain:   deps.Config.SiteDomain,
	})

	return ServiceContainer{
		Auth:    auth,
		Users:   users,
		Uploads: uploads,
		Site:    site,
	}, nil
}
