package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "quotedesk",
	Short: "Insurance quote desk: product catalog, premium pricing and quote management",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "quotedesk.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	priceCmd.Flags().StringVar(&priceProduct, "product", "", "Product key (required)")
	priceCmd.Flags().StringArrayVar(&priceFields, "field", nil, "Applicant field as name=value")
	priceCmd.Flags().StringArrayVar(&priceTiers, "tier", nil, "Tier selection as category=tier, in order")
	priceCmd.Flags().StringArrayVar(&priceAddOns, "addon", nil, "Add-on id to turn on")
	_ = priceCmd.MarkFlagRequired("product")

	usersListCmd.Flags().StringVar(&usersURL, "url", "http://localhost:8080", "Base URL of a running quotedesk server")
	usersCmd.AddCommand(usersListCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(usersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
