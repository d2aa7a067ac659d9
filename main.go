package main

import (
	"fmt"
	"os"

	auction "veilmarket/internal/auctionService"
	register "veilmarket/internal/bidRegister"
	"veilmarket/internal/config"
	"veilmarket/internal/notify"
	"veilmarket/internal/repository"
	"veilmarket/internal/server"
	settlement "veilmarket/internal/settlementService"
	"veilmarket/internal/vault"
	"veilmarket/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	v, err := vault.New(cfg.VaultKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialise identity vault: %v\n", err)
		os.Exit(1)
	}

	repo, err := buildRepo(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to store: %v\n", err)
		os.Exit(1)
	}

	notifier := buildNotifier(cfg)

	auctionSvc := auction.NewAuctionService(repo, v, notifier)
	reg := register.NewRegister(repo, v)
	settlementSvc := settlement.NewSettlementService(repo, v, notifier)

	router := server.SetupRouter(auctionSvc, reg, settlementSvc, cfg.JWTSecret, cfg.CommissionRate)

	addr := ":" + cfg.Port
	fmt.Printf("Starting auction engine on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// buildRepo picks the persistent store when DB_URL is set, the in-memory
// store otherwise.
func buildRepo(cfg *config.Config) (repository.MarketDB, error) {
	if cfg.DBURL == "" {
		utils.Info("using in-memory store", nil)
		return repository.NewMemoryRepo(), nil
	}
	utils.Info("using postgres store", nil)
	return repository.NewGormRepo(cfg.DBURL)
}

// buildNotifier connects to NATS when configured, falling back to the
// log-only notifier so notification failures never block settlement flow.
func buildNotifier(cfg *config.Config) notify.Notifier {
	if cfg.NATSURL == "" {
		return notify.NewLogNotifier()
	}
	n, err := notify.NewNATSNotifier(cfg.NATSURL)
	if err != nil {
		utils.Warn("NATS unreachable, falling back to log notifier", map[string]any{"error": err.Error()})
		return notify.NewLogNotifier()
	}
	return n
}
