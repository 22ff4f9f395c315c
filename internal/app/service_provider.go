package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	accountAPI "velvet_bite/internal/api/account"
	dishAPI "velvet_bite/internal/api/dish"
	edgeAPI "velvet_bite/internal/api/edge"
	favouriteAPI "velvet_bite/internal/api/favourite"
	orderAPI "velvet_bite/internal/api/order"
	promoAPI "velvet_bite/internal/api/promo"
	themeAPI "velvet_bite/internal/api/theme"
	"velvet_bite/internal/config"
	"velvet_bite/internal/config/env"
	"velvet_bite/internal/middleware"
	"velvet_bite/internal/model"
	"velvet_bite/internal/repository"
	"velvet_bite/internal/repository/account_repo"
	"velvet_bite/internal/repository/cache_repo"
	"velvet_bite/internal/repository/client_repo"
	"velvet_bite/internal/repository/dish_repo"
	"velvet_bite/internal/repository/favourite_repo"
	"velvet_bite/internal/repository/order_repo"
	"velvet_bite/internal/repository/wheel_state_repo"
	"velvet_bite/internal/service"
	"velvet_bite/internal/service/account"
	"velvet_bite/internal/service/dish"
	"velvet_bite/internal/service/favourite"
	"velvet_bite/internal/service/offline"
	"velvet_bite/internal/service/order"
	"velvet_bite/internal/service/promo"
	"velvet_bite/internal/service/theme"
)

const configPath = "config.yaml"

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Redis. nil, если REDIS_ADDR не задан
	redisClient  *redis.Client
	redisChecked bool

	// Client bits
	clientTokenCfg config.ClientTokenConfig
	clientStore    repository.ClientStore

	// Promo bits
	promoCfg  config.PromoConfig
	wheelRepo repository.WheelStateRepository
	promoServ service.PromoService
	promoHand *promoAPI.Handler
	themeServ service.ThemeService
	themeHand *themeAPI.Handler

	// Catalog bits
	adminCfg  config.AdminConfig
	dishRepo  repository.DishRepository
	dishServ  service.DishService
	dishHand  *dishAPI.Handler
	orderRepo repository.OrderRepository
	orderServ service.OrderService
	orderHand *orderAPI.Handler

	// Favourites and accounts
	favRepo     repository.FavouriteRepository
	favServ     service.FavouriteService
	favHand     *favouriteAPI.Handler
	accountRepo repository.AccountRepository
	accountServ service.AccountService
	accountHand *accountAPI.Handler

	// Offline bits
	offlineCfg    config.OfflineConfig
	cacheStorage  repository.CacheStorage
	offlineWorker service.OfflineWorker
	edgeHand      *edgeAPI.Handler

	// Router and HTTP config
	logCfg     config.LogConfig
	httpCfg    config.HTTPConfig
	edgeCfg    config.HTTPConfig
	router     chi.Router
	edgeRouter chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		sp.logCfg = env.NewLogConfig()
	}
	return sp.logCfg
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		cfg := sp.PgConfig()
		poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
		if err != nil {
			panic("failed to parse pg dsn: " + err.Error())
		}
		poolCfg.MaxConns = cfg.MaxConns()
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout()

		dbc, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

// RedisClient Клиент redis или nil, если redis не настроен
func (sp *ServiceProvider) RedisClient(ctx context.Context) *redis.Client {
	if !sp.redisChecked {
		sp.redisChecked = true

		cfg, err := env.NewRedisConfig()
		if errors.Is(err, env.ErrRedisNotConfigured) {
			log.Warn().Msg("REDIS_ADDR is not set, client state and offline cache are kept in memory")
			return nil
		}
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}

		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Address(),
			Password: cfg.Password(),
			DB:       cfg.DB(),
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			panic("failed to ping redis: " + err.Error())
		}
		sp.redisClient = rdb
	}
	return sp.redisClient
}

func (sp *ServiceProvider) ClientTokenCfg() config.ClientTokenConfig {
	if sp.clientTokenCfg == nil {
		cfg, err := env.NewClientTokenConfig()
		if err != nil {
			panic("failed to get client token config: " + err.Error())
		}
		sp.clientTokenCfg = cfg
	}
	return sp.clientTokenCfg
}

func (sp *ServiceProvider) ClientStore(ctx context.Context) repository.ClientStore {
	if sp.clientStore == nil {
		if rdb := sp.RedisClient(ctx); rdb != nil {
			sp.clientStore = client_repo.NewRedisClientStore(rdb)
		} else {
			sp.clientStore = client_repo.NewMemoryClientStore()
		}
	}
	return sp.clientStore
}

func (sp *ServiceProvider) PromoCfg() config.PromoConfig {
	if sp.promoCfg == nil {
		cfg, err := env.NewPromoConfigFromYAML(configPath)
		if err != nil {
			panic("failed to get promo config: " + err.Error())
		}
		sp.promoCfg = cfg
	}
	return sp.promoCfg
}

func (sp *ServiceProvider) WheelStateRepository() repository.WheelStateRepository {
	if sp.wheelRepo == nil {
		sp.wheelRepo = wheel_state_repo.NewWheelStateRepository()
	}
	return sp.wheelRepo
}

func (sp *ServiceProvider) PromoService(ctx context.Context) service.PromoService {
	if sp.promoServ == nil {
		sp.promoServ = promo.NewPromoService(sp.PromoCfg(), sp.ClientStore(ctx), sp.WheelStateRepository())
	}
	return sp.promoServ
}

func (sp *ServiceProvider) PromoHandler(ctx context.Context) *promoAPI.Handler {
	if sp.promoHand == nil {
		sp.promoHand = promoAPI.NewHandler(promoAPI.HandlerDeps{Serv: sp.PromoService(ctx)})
	}
	return sp.promoHand
}

func (sp *ServiceProvider) ThemeService(ctx context.Context) service.ThemeService {
	if sp.themeServ == nil {
		sp.themeServ = theme.NewThemeService(sp.ClientStore(ctx))
	}
	return sp.themeServ
}

func (sp *ServiceProvider) ThemeHandler(ctx context.Context) *themeAPI.Handler {
	if sp.themeHand == nil {
		sp.themeHand = themeAPI.NewHandler(themeAPI.HandlerDeps{Serv: sp.ThemeService(ctx)})
	}
	return sp.themeHand
}

func (sp *ServiceProvider) AdminCfg() config.AdminConfig {
	if sp.adminCfg == nil {
		cfg, err := env.NewAdminConfig()
		if err != nil {
			panic("failed to get admin config: " + err.Error())
		}
		sp.adminCfg = cfg
	}
	return sp.adminCfg
}

func (sp *ServiceProvider) DishRepository(ctx context.Context) repository.DishRepository {
	if sp.dishRepo == nil {
		sp.dishRepo = dish_repo.NewDishRepository(sp.DBClient(ctx))
	}
	return sp.dishRepo
}

func (sp *ServiceProvider) DishService(ctx context.Context) service.DishService {
	if sp.dishServ == nil {
		sp.dishServ = dish.NewDishService(sp.DishRepository(ctx), sp.TXManager(ctx))
	}
	return sp.dishServ
}

func (sp *ServiceProvider) DishHandler(ctx context.Context) *dishAPI.Handler {
	if sp.dishHand == nil {
		sp.dishHand = dishAPI.NewHandler(dishAPI.HandlerDeps{Serv: sp.DishService(ctx)})
	}
	return sp.dishHand
}

func (sp *ServiceProvider) OrderRepository(ctx context.Context) repository.OrderRepository {
	if sp.orderRepo == nil {
		sp.orderRepo = order_repo.NewOrderRepository(sp.DBClient(ctx))
	}
	return sp.orderRepo
}

func (sp *ServiceProvider) OrderService(ctx context.Context) service.OrderService {
	if sp.orderServ == nil {
		sp.orderServ = order.NewOrderService(
			sp.DishRepository(ctx),
			sp.OrderRepository(ctx),
			sp.ClientStore(ctx),
			sp.TXManager(ctx),
			order.WithAllowedDiscounts(wheelDiscounts(sp.PromoCfg())),
		)
	}
	return sp.orderServ
}

func (sp *ServiceProvider) FavouriteRepository(ctx context.Context) repository.FavouriteRepository {
	if sp.favRepo == nil {
		sp.favRepo = favourite_repo.NewFavouriteRepository(sp.DBClient(ctx))
	}
	return sp.favRepo
}

func (sp *ServiceProvider) FavouriteService(ctx context.Context) service.FavouriteService {
	if sp.favServ == nil {
		sp.favServ = favourite.NewFavouriteService(sp.FavouriteRepository(ctx))
	}
	return sp.favServ
}

func (sp *ServiceProvider) FavouriteHandler(ctx context.Context) *favouriteAPI.Handler {
	if sp.favHand == nil {
		sp.favHand = favouriteAPI.NewHandler(favouriteAPI.HandlerDeps{Serv: sp.FavouriteService(ctx)})
	}
	return sp.favHand
}

func (sp *ServiceProvider) AccountRepository(ctx context.Context) repository.AccountRepository {
	if sp.accountRepo == nil {
		sp.accountRepo = account_repo.NewAccountRepository(sp.DBClient(ctx))
	}
	return sp.accountRepo
}

func (sp *ServiceProvider) AccountService(ctx context.Context) service.AccountService {
	if sp.accountServ == nil {
		sp.accountServ = account.NewAccountService(sp.AccountRepository(ctx))
	}
	return sp.accountServ
}

func (sp *ServiceProvider) AccountHandler(ctx context.Context) *accountAPI.Handler {
	if sp.accountHand == nil {
		sp.accountHand = accountAPI.NewHandler(accountAPI.HandlerDeps{Serv: sp.AccountService(ctx)})
	}
	return sp.accountHand
}

func (sp *ServiceProvider) OrderHandler(ctx context.Context) *orderAPI.Handler {
	if sp.orderHand == nil {
		sp.orderHand = orderAPI.NewHandler(orderAPI.HandlerDeps{Serv: sp.OrderService(ctx)})
	}
	return sp.orderHand
}

func (sp *ServiceProvider) OfflineCfg() config.OfflineConfig {
	if sp.offlineCfg == nil {
		cfg, err := env.NewOfflineConfigFromYAML(configPath)
		if err != nil {
			panic("failed to get offline config: " + err.Error())
		}
		sp.offlineCfg = cfg
	}
	return sp.offlineCfg
}

func (sp *ServiceProvider) CacheStorage(ctx context.Context) repository.CacheStorage {
	if sp.cacheStorage == nil {
		if rdb := sp.RedisClient(ctx); rdb != nil {
			sp.cacheStorage = cache_repo.NewRedisCacheStorage(rdb)
		} else {
			sp.cacheStorage = cache_repo.NewMemoryCacheStorage()
		}
	}
	return sp.cacheStorage
}

func (sp *ServiceProvider) OfflineWorker(ctx context.Context) service.OfflineWorker {
	if sp.offlineWorker == nil {
		w, err := offline.NewOfflineWorker(sp.OfflineCfg(), sp.CacheStorage(ctx))
		if err != nil {
			panic("failed to create offline worker: " + err.Error())
		}
		sp.offlineWorker = w
	}
	return sp.offlineWorker
}

func (sp *ServiceProvider) EdgeHandler(ctx context.Context) *edgeAPI.Handler {
	if sp.edgeHand == nil {
		h, err := edgeAPI.NewHandler(edgeAPI.HandlerDeps{Worker: sp.OfflineWorker(ctx), Cfg: sp.OfflineCfg()})
		if err != nil {
			panic("failed to create edge handler: " + err.Error())
		}
		sp.edgeHand = h
	}
	return sp.edgeHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) EdgeCfg() config.HTTPConfig {
	if sp.edgeCfg == nil {
		cfg, err := env.NewEdgeConfig()
		if err != nil {
			panic("failed to get edge config: " + err.Error())
		}
		sp.edgeCfg = cfg
	}

	return sp.edgeCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(chimw.RequestID)
		r.Use(chimw.Recoverer)
		r.Use(middleware.RequestLogger)

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK"))
		})

		// Client scoped endpoints
		promoHandler := sp.PromoHandler(ctx)
		themeHandler := sp.ThemeHandler(ctx)
		orderHandler := sp.OrderHandler(ctx)
		r.Group(func(rr chi.Router) {
			rr.Use(middleware.ClientIdentity(sp.ClientTokenCfg()))

			rr.Route("/api/promo", func(pr chi.Router) {
				pr.Get("/modal", promoHandler.Modal)
				pr.Post("/spin", promoHandler.Spin)
				pr.Get("/state", promoHandler.State)
				pr.Post("/close", promoHandler.Close)
				pr.Get("/badge", promoHandler.Badge)
				pr.Get("/order-discount", promoHandler.OrderDiscount)
				pr.Get("/wheel.svg", promoHandler.WheelSVG)
			})

			rr.Route("/api/theme", func(tr chi.Router) {
				tr.Get("/", themeHandler.Get)
				tr.Put("/", themeHandler.Set)
				tr.Post("/toggle", themeHandler.Toggle)
			})

			rr.Route("/api/orders", func(or chi.Router) {
				or.Post("/", orderHandler.Create)
				or.With(middleware.AdminOnly(sp.AdminCfg())).Get("/", orderHandler.List)
			})
		})

		// Dish endpoints
		dishHandler := sp.DishHandler(ctx)
		r.Route("/api/dishes", func(rr chi.Router) {
			rr.Get("/", dishHandler.List)
			rr.Get("/{id}", dishHandler.Get)

			rr.Group(func(ar chi.Router) {
				ar.Use(middleware.AdminOnly(sp.AdminCfg()))
				ar.Post("/", dishHandler.Create)
				ar.Put("/{id}", dishHandler.Update)
				ar.Delete("/{id}", dishHandler.Delete)
			})
		})

		// Favourites and accounts
		favHandler := sp.FavouriteHandler(ctx)
		r.Route("/api/favourites", func(rr chi.Router) {
			rr.Get("/{account_id}", favHandler.List)
			rr.Post("/", favHandler.Add)
		})
		r.With(middleware.AdminOnly(sp.AdminCfg())).Get("/api/accounts", sp.AccountHandler(ctx).List)

		sp.router = r
	}

	return sp.router
}

// EdgeRouter Роутер edge: /sw.js, /health, остальное через offline воркер
func (sp *ServiceProvider) EdgeRouter(ctx context.Context) chi.Router {
	if sp.edgeRouter == nil {
		r := chi.NewRouter()

		r.Use(chimw.RequestID)
		r.Use(chimw.Recoverer)
		r.Use(middleware.RequestLogger)

		edgeHandler := sp.EdgeHandler(ctx)
		r.Get("/sw.js", edgeHandler.ServiceWorker)
		r.Get("/health", edgeHandler.Health)
		r.Handle("/*", sp.OfflineWorker(ctx))

		sp.edgeRouter = r
	}

	return sp.edgeRouter
}

// wheelDiscounts Скидки секторов колеса из конфига
func wheelDiscounts(cfg config.PromoConfig) []model.Discount {
	out := make([]model.Discount, 0, len(cfg.Discounts()))
	for _, d := range cfg.Discounts() {
		out = append(out, model.Discount(d))
	}
	return out
}

// traced Оборачивает роутер в otelhttp
func traced(h http.Handler, operation string) http.Handler {
	return otelhttp.NewHandler(h, operation)
}
