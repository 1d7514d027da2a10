package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"retailos/internal/app/domains/entity/etcatalog"
	"retailos/internal/app/domains/modules/mdavailability"
	"retailos/internal/app/domains/modules/mdcommand"
	"retailos/internal/app/domains/modules/mdorder"
	"retailos/internal/app/domains/modules/mdquantity"
	"retailos/internal/app/domains/modules/mdresolve"
	"retailos/internal/app/domains/modules/mdstockcheck"
	"retailos/internal/app/domains/repo/rpcart"
	"retailos/internal/app/domains/repo/rpcatalog"
	"retailos/internal/app/domains/repo/rporder"
	"retailos/internal/app/domains/services/svconversation"
	"retailos/internal/app/domains/services/svorder"
	"retailos/internal/app/infra/persistence/memory"
	"retailos/internal/app/infra/persistence/mysql"
	"retailos/internal/app/infra/persistence/redis"
	"retailos/internal/app/pkg/idgen"
	"retailos/internal/app/pkg/keylock"
	"retailos/internal/app/server/handlers/conversation"
	"retailos/internal/app/server/handlers/order"
	"retailos/internal/app/server/middlewares"
	"retailos/internal/app/server/routers"
	"retailos/pkg/config"
	"retailos/pkg/lmstfy"
	"retailos/pkg/logger"
)

// App everything main needs to serve
type App struct {
	Engine *gin.Engine
}

type stores struct {
	inventory rpcatalog.InventoryRepository
	orders    rporder.OrderRepository
	carts     rpcart.CartRepository
}

// InitializeApp builds the dependency graph; cleanup releases connections
func InitializeApp(cfg *config.Config, log *logger.ZapLogger) (*App, func(), error) {
	st, cleanup, err := openStores(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	if err := seedCatalog(context.Background(), st.inventory, cfg.CatalogSeed, log); err != nil {
		cleanup()
		return nil, nil, err
	}

	var publisher mdstockcheck.Publisher
	if cfg.LmstfyEnabled() {
		publisher = lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
		log.Info("Stock check jobs enabled", "queue", cfg.Lmstfy.StockQueue)
	}

	engine := cfg.Engine
	locker := keylock.New()
	partitioner := mdavailability.NewPartitioner(engine.CurrencyPrecision, engine.MaxAlternatives)
	resolver := mdresolve.NewResolver(engine.MatchThreshold, engine.SuggestFloor, engine.MaxAlternatives)
	evaluator := mdavailability.NewEvaluator(resolver, mdquantity.NewNormalizer(), partitioner)
	committer := mdorder.NewCommitter(st.inventory, partitioner, idgen.NewSnowflakeIDGenerator(1))

	orderService := svorder.NewOrderService(
		locker,
		st.carts,
		st.orders,
		committer,
		mdstockcheck.NewStockCheckModule(publisher, cfg.Lmstfy.StockQueue),
		log,
	)
	conversationService := svconversation.NewConversationService(
		locker,
		st.carts,
		st.inventory,
		evaluator,
		resolver,
		mdcommand.NewParser(mdcommand.DefaultLexicons()...),
		orderService,
		log,
	)

	router := routers.SetupRoutes(
		routers.Options{
			ServiceName: cfg.App.Name,
			CORSOrigins: cfg.Server.CORSOrigins,
			RateLimiter: middlewares.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
			Logger:      log,
		},
		conversation.NewConversationHandler(conversationService, log),
		order.NewOrderHandler(orderService, log),
	)

	return &App{Engine: router}, cleanup, nil
}

func openStores(cfg *config.Config, log *logger.ZapLogger) (*stores, func(), error) {
	if cfg.Storage.Driver == "memory" {
		store := memory.NewStore()
		log.Info("Using in-memory storage")
		return &stores{inventory: store, orders: store, carts: memory.NewCartStore()}, func() {}, nil
	}

	db, err := mysql.Open(cfg.MySQL.DSN, cfg.MySQL.AutoMigrate)
	if err != nil {
		return nil, nil, err
	}
	rdb, err := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		_ = mysql.Close(db)
		return nil, nil, err
	}

	cleanup := func() {
		if err := rdb.Close(); err != nil {
			log.Error("Close redis failed", "error", err)
		}
		if err := mysql.Close(db); err != nil {
			log.Error("Close mysql failed", "error", err)
		}
	}
	return &stores{
		inventory: rpcatalog.NewInventoryRepository(db),
		orders:    rporder.NewOrderRepository(db),
		carts:     redis.NewCartStore(rdb, cfg.Redis.CartTTL),
	}, cleanup, nil
}

// seedCatalog loads configured rows for retailers that have no catalog yet,
// so restarts never reset live stock
func seedCatalog(ctx context.Context, inventory rpcatalog.InventoryRepository, seeds []config.RetailerSeed, log *logger.ZapLogger) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, seed := range seeds {
		snap, err := inventory.GetSnapshot(ctx, seed.RetailerID)
		if err != nil {
			return fmt.Errorf("read catalog of %s failed: %w", seed.RetailerID, err)
		}
		if snap.Len() > 0 {
			continue
		}

		items := make([]*etcatalog.Item, 0, len(seed.Items))
		for _, s := range seed.Items {
			item, err := etcatalog.NewItem(seed.RetailerID, s.Name, s.Unit, s.Category,
				decimal.NewFromFloat(s.StockQty), decimal.NewFromFloat(s.UnitPrice), decimal.NewFromFloat(s.MinStockLevel))
			if err != nil {
				return fmt.Errorf("seed item %q of %s: %w", s.Name, seed.RetailerID, err)
			}
			items = append(items, item)
		}
		if err := inventory.SaveItems(ctx, items); err != nil {
			return fmt.Errorf("seed catalog of %s failed: %w", seed.RetailerID, err)
		}
		log.Info("Catalog seeded", "retailer_id", seed.RetailerID, "items", len(items))
	}
	return nil
}
