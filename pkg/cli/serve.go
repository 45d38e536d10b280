package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/getcalcd/calcd/pkg/calc"
	"github.com/getcalcd/calcd/pkg/config"
	"github.com/getcalcd/calcd/pkg/engine"
	"github.com/getcalcd/calcd/pkg/logging"
)

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

// serveFlags holds all parsed command-line flags for the serve command.
type serveFlags struct {
	host         string
	port         int
	configFile   string
	readTimeout  int
	writeTimeout int
	logLevel     string
	logFormat    string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the calcd server (foreground)",
	Example: `  # Start with defaults on 0.0.0.0:8000
  calcd serve

  # Start on a custom port
  calcd serve --port 3000

  # Start from a config file; flags override file values
  calcd serve --config calcd.yaml --log-format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(&serveFlagVals, cmd.Flags().Changed)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f := &serveFlagVals
	serveCmd.Flags().StringVar(&f.host, "host", config.DefaultHost, "Bind address")
	serveCmd.Flags().IntVarP(&f.port, "port", "p", config.DefaultPort, "HTTP server port")
	serveCmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to configuration file (YAML or JSON)")
	serveCmd.Flags().IntVar(&f.readTimeout, "read-timeout", config.DefaultReadTimeout, "Read timeout in seconds")
	serveCmd.Flags().IntVar(&f.writeTimeout, "write-timeout", config.DefaultWriteTimeout, "Write timeout in seconds")
	serveCmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&f.logFormat, "log-format", "text", "Log format (text, json)")
}

// buildConfig resolves the effective configuration: config file values
// first (when --config is given), then explicitly set flags override.
func buildConfig(f *serveFlags, changed func(string) bool) (*config.Config, error) {
	cfg := config.Default()
	if f.configFile != "" {
		loaded, err := config.LoadFromFile(f.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		cfg = loaded
	}

	if changed("host") {
		cfg.Host = f.host
	}
	if changed("port") {
		cfg.Port = f.port
	}
	if changed("read-timeout") {
		cfg.ReadTimeout = f.readTimeout
	}
	if changed("write-timeout") {
		cfg.WriteTimeout = f.writeTimeout
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("log-format") {
		cfg.Log.Format = f.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runServe is the core serve logic called by the cobra command.
func runServe(f *serveFlags, changed func(string) bool) error {
	cfg, err := buildConfig(f, changed)
	if err != nil {
		return err
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: logging.ParseFormat(cfg.Log.Format),
	})

	srv := engine.NewServer(cfg, engine.WithLogger(log.With("component", "engine")))
	if err := srv.Start(); err != nil {
		if strings.Contains(err.Error(), "address already in use") {
			return fmt.Errorf("port %d is already in use — try a different port with --port or check what's using it: lsof -i :%d", cfg.Port, cfg.Port)
		}
		return fmt.Errorf("failed to start server: %w", err)
	}

	printServeStartupMessage(srv.Port())

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\nShutting down...")

	if err := srv.Stop(); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	fmt.Println("Server stopped")
	return nil
}

// printServeStartupMessage prints the server startup information.
func printServeStartupMessage(port int) {
	fmt.Println("calcd server started")
	fmt.Println()
	fmt.Printf("  API:     http://localhost:%d\n", port)
	fmt.Printf("  Health:  http://localhost:%d/healthz\n", port)
	fmt.Printf("  Metrics: http://localhost:%d/metrics\n", port)
	fmt.Println()
	fmt.Println("Endpoints:")
	fmt.Printf("  GET /                     greeting\n")
	for _, op := range calc.Operations() {
		fmt.Printf("  GET /%s/{num1}/{num2}\n", op.Name)
	}
	fmt.Println()
	fmt.Printf("Try it:  curl http://localhost:%d/add/2/2\n", port)
	fmt.Println("Press Ctrl+C to stop")
}
