package cmd

import (
	"fmt"
	"os"

	"mpu-janitor/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	profileFlag  string
	providerFlag string
	regionFlag   string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "mpu-janitor",
	Short: "Incomplete multipart upload lifecycle janitor",
	Long: `mpu-janitor makes sure every bucket carries a lifecycle rule that aborts
incomplete multipart uploads, without touching the rules already there.
It runs as a CLI, an HTTP webhook server, or a Lambda function.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding at debug level gives readable ISO8601 timestamps on a terminal
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "Credential profile (required for the aws provider)")
	RootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "Storage provider (aws, minio); overrides STORAGE_PROVIDER")
	RootCmd.PersistentFlags().StringVar(&regionFlag, "region", "", "Storage region; overrides STORAGE_REGION")
}
