package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/acai-travel/global-time-agent/internal/telemetry"
	"github.com/acai-travel/global-time-agent/internal/worldtime"
	"github.com/acai-travel/global-time-agent/internal/worldtime/nominatim"
	"github.com/acai-travel/global-time-agent/internal/worldtime/tzlookup"
	"github.com/spf13/cobra"
)

var (
	timeout      time.Duration
	nominatimURL string
	userAgent    string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "worldtime <location>",
	Short: "Print the current local time anywhere in the world",
	Long: `Resolve a free-text location (country, city, landmark) to coordinates,
find its timezone and print the current local time there as JSON.`,
	Example:      "  worldtime Tokyo\n  worldtime New York",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", worldtime.DefaultGeocodeTimeout, "Geocoding timeout")
	rootCmd.Flags().StringVar(&nominatimURL, "nominatim-url", nominatim.DefaultBaseURL, "Nominatim base URL")
	rootCmd.Flags().StringVar(&userAgent, "user-agent", nominatim.DefaultUserAgent, "User-Agent sent to Nominatim")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := "error"
	if verbose {
		level = "debug"
	}
	slog.SetDefault(telemetry.NewLogger(cmd.ErrOrStderr(), level, "text"))

	resolver := worldtime.NewResolver(
		nominatim.NewClient(nominatim.WithBaseURL(nominatimURL), nominatim.WithUserAgent(userAgent)),
		tzlookup.New(),
		worldtime.NewZoneClock(nil),
		worldtime.WithGeocodeTimeout(timeout),
	)

	res := resolver.Resolve(cmd.Context(), strings.Join(args, " "))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	if !res.OK() {
		return fmt.Errorf("%s", res.Message)
	}
	return nil
}
