// Shieldpool Daemon - hosts the shielded pool instruction dispatcher behind
// a PostgreSQL-backed tree/nullifier store and a libp2p root-gossip node.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ccoin/shieldpool/internal/engine"
	"github.com/ccoin/shieldpool/internal/p2p"
	"github.com/ccoin/shieldpool/internal/storage"
)

const (
	version = "0.1.0"
	banner  = `
   _____ _     _      _     _                    _
  / ____| |   (_)    | |   | |                  | |
 | (___ | |__  _  ___| | __| |_ __   ___   ___ | |
  \___ \| '_ \| |/ _ \ |/ _` + "`" + ` | '_ \ / _ \ / _ \| |
  ____) | | | | |  __/ | (_| | |_) | (_) | (_) | |
 |_____/|_| |_|_|\___|_|\__,_| .__/ \___/ \___/|_|
                              | |
                              |_|
  Shieldpool Daemon v%s
`
)

// Config holds daemon configuration, flag-parsed in the teacher's style
// (cmd/ccoind/main.go) rather than via a config-file library.
type Config struct {
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	ListenAddr string

	Levels        int
	RootsRingSize int
	MinShield     uint64

	VKWithdrawPath       string
	VKUnshieldChangePath string
	VKTransferPath       string

	DataDir string
}

func main() {
	cfg := parseFlags()

	fmt.Printf(banner, version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.DBHost, "db-host", "localhost", "PostgreSQL host")
	flag.IntVar(&cfg.DBPort, "db-port", 5432, "PostgreSQL port")
	flag.StringVar(&cfg.DBUser, "db-user", "shieldpool", "PostgreSQL user")
	flag.StringVar(&cfg.DBPassword, "db-password", "", "PostgreSQL password")
	flag.StringVar(&cfg.DBName, "db-name", "shieldpool", "PostgreSQL database name")

	flag.StringVar(&cfg.ListenAddr, "listen", "/ip4/0.0.0.0/tcp/9000", "P2P listen address")

	flag.IntVar(&cfg.Levels, "levels", 20, "Merkle tree depth L")
	flag.IntVar(&cfg.RootsRingSize, "roots-ring", 30, "historical roots ring size R")
	flag.Uint64Var(&cfg.MinShield, "min-shield", 1_000_000, "minimum shield amount in base units")

	flag.StringVar(&cfg.VKWithdrawPath, "vk-withdraw", "", "path to S1 withdraw_merkle verifying key")
	flag.StringVar(&cfg.VKUnshieldChangePath, "vk-unshield-change", "", "path to S2 unshield_with_change verifying key")
	flag.StringVar(&cfg.VKTransferPath, "vk-transfer", "", "path to S3 private_transfer verifying key")

	flag.StringVar(&cfg.DataDir, "data-dir", "./data", "data directory")

	flag.Parse()

	return cfg
}

func run(ctx context.Context, cfg *Config) error {
	fmt.Println("Initializing shieldpool engine...")

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	fmt.Println("Connecting to database...")
	dbConfig := &storage.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
		SSLMode:  "disable",
		MaxConns: 20,
	}
	store, err := storage.NewPostgresStore(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()
	fmt.Println("Database connected.")

	vkWithdraw, err := os.ReadFile(cfg.VKWithdrawPath)
	if err != nil {
		return fmt.Errorf("read withdraw VK: %w", err)
	}
	vkChange, err := os.ReadFile(cfg.VKUnshieldChangePath)
	if err != nil {
		return fmt.Errorf("read unshield-with-change VK: %w", err)
	}
	vkTransfer, err := os.ReadFile(cfg.VKTransferPath)
	if err != nil {
		return fmt.Errorf("read private-transfer VK: %w", err)
	}

	fmt.Println("Joining root-gossip network...")
	node, err := p2p.NewNode(ctx, &p2p.Config{ListenAddrs: []string{cfg.ListenAddr}})
	if err != nil {
		return fmt.Errorf("start p2p node: %w", err)
	}
	defer node.Close()
	fmt.Printf("Root-gossip node ready: %s\n", node.ID())

	engineInit := engine.New(store, newPlaceholderVault())
	receipt, err := engineInit.Initialise(ctx, store, engine.Config{
		Levels:            uint8(cfg.Levels),
		RootsRingSize:     cfg.RootsRingSize,
		MinShield:         cfg.MinShield,
		VKWithdraw:        vkWithdraw,
		VKUnshieldChange:  vkChange,
		VKPrivateTransfer: vkTransfer,
	})
	if err != nil {
		return fmt.Errorf("initialise engine: %w", err)
	}
	fmt.Printf("Engine initialised. root=%s next_index=%d\n", receipt.NewRoot, engineInit.NextIndex())

	fmt.Println("Shieldpool daemon started successfully!")
	fmt.Println("Press Ctrl+C to stop.")

	<-ctx.Done()

	fmt.Println("Daemon stopped.")
	return nil
}
