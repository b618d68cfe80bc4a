package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/qwikyankit/qwiky-admin-emergent/client"
	"github.com/qwikyankit/qwiky-admin-emergent/internal/config"
	"github.com/qwikyankit/qwiky-admin-emergent/internal/logger"
	"github.com/qwikyankit/qwiky-admin-emergent/pkg/kvstore"
)

const serviceName = "qwiky-admin"

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Debug().Err(err).Msg("command failed")
		fmt.Fprintln(os.Stderr, client.ErrorMessage(err))
		os.Exit(1)
	}
}

// app carries flag values and the per-invocation client.
type app struct {
	envFile     string
	origin      string
	storeDriver string
	storePath   string
	logFormat   string
	debug       bool

	store  kvstore.Store
	client *client.Client
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           serviceName,
		Short:         "Admin client for hood bookings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.store != nil {
				return a.store.Close()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Optional dotenv file loaded before reading QWIKY_ADMIN_* variables")
	rootCmd.PersistentFlags().StringVar(&a.origin, "origin", "", "API origin, e.g. https://admin.example.com (overrides QWIKY_ADMIN_ORIGIN)")
	rootCmd.PersistentFlags().StringVar(&a.storeDriver, "store-driver", "", "Token store: sqlite, bolt or memory (overrides QWIKY_ADMIN_STORE_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&a.storePath, "store-path", "", "Token store file (overrides QWIKY_ADMIN_STORE_PATH)")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log output: console or json (overrides QWIKY_ADMIN_LOG_FORMAT)")
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newBookingsCmd(a))
	rootCmd.AddCommand(newBookingCmd(a))
	rootCmd.AddCommand(newUserCmd(a))
	rootCmd.AddCommand(newTokenCmd(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", a.envFile, err)
		}
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	if a.origin != "" {
		cfg.Origin = a.origin
	}
	if a.storeDriver != "" {
		cfg.StoreDriver = a.storeDriver
	}
	if a.storePath != "" {
		cfg.StorePath = a.storePath
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	if a.debug {
		cfg.Debug = true
		cfg.LogLevel = zerolog.DebugLevel.String()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	zerolog.SetGlobalLevel(cfg.Level())
	if cfg.JSONLogs() {
		log.Logger = logger.New(serviceName, cmd.ErrOrStderr(), cfg.Level())
	} else {
		log.Logger = logger.NewConsole(cmd.ErrOrStderr(), cfg.Level())
	}

	store, err := kvstore.Open(cfg.StoreDriver, cfg.StorePath)
	if err != nil {
		return err
	}
	c, err := client.NewFromConfig(cfg, store)
	if err != nil {
		_ = store.Close()
		return err
	}
	a.store, a.client = store, c

	log.Debug().
		Str("origin", cfg.Origin).
		Str("store_driver", cfg.StoreDriver).
		Str("store_path", cfg.StorePath).
		Msg("client ready")
	return nil
}

func newBookingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Browse the hood's bookings",
	}

	var page, size int
	list := &cobra.Command{
		Use:   "list",
		Short: "List one page of bookings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			resp, err := a.client.FetchBookings(cmd.Context(), page, size)
			if err != nil {
				log.Error().Err(err).Int("page", page).Int("size", size).Dur("elapsed", time.Since(start)).Msg("list bookings failed")
				return err
			}
			log.Debug().Int("items", len(resp.Items)).Dur("elapsed", time.Since(start)).Msg("list bookings completed")
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	list.Flags().IntVar(&page, "page", 0, "Zero-based page number")
	list.Flags().IntVar(&size, "size", 20, "Page size")

	cmd.AddCommand(list)
	return cmd
}

func newBookingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "booking",
		Short: "Act on a single booking",
	}

	type action struct {
		use, short, op string
		run            func(*client.Client, context.Context, string) (any, error)
	}
	actions := []action{
		{"cancel <bookingId>", "Cancel a booking", "cancel booking", (*client.Client).CancelBooking},
		{"settle <bookingId>", "Mark a booking as settled", "settle booking", (*client.Client).SettleBooking},
	}
	for _, act := range actions {
		cmd.AddCommand(&cobra.Command{
			Use:   act.use,
			Short: act.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				rec, err := act.run(a.client, cmd.Context(), args[0])
				if err != nil {
					log.Error().Err(err).Str("booking_id", args[0]).Msg(act.op + " failed")
					return err
				}
				return printJSON(cmd.OutOrStdout(), rec)
			},
		})
	}
	return cmd
}

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Look up users",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get <userId>",
		Short: "Show a user's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.client.FetchUserDetails(cmd.Context(), args[0])
			if err != nil {
				log.Error().Err(err).Str("user_id", args[0]).Msg("get user failed")
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	})
	return cmd
}

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored bearer token",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the token requests will use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.client.GetToken(cmd.Context()))
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <token>",
		Short: "Persist a token for later requests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.SetToken(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "token saved")
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the stored token and fall back to QWIKY_ADMIN_TOKEN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.client.ResetToken(cmd.Context())
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "token reset")
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "inspect",
		Short: "Decode the current token's JWT claims (signature not verified)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := inspectToken(a.client.GetToken(cmd.Context()), time.Now())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), info)
		},
	})
	return cmd
}

// tokenInfo is what `token inspect` prints.
type tokenInfo struct {
	Subject   string     `json:"subject,omitempty"`
	Issuer    string     `json:"issuer,omitempty"`
	IssuedAt  *time.Time `json:"issuedAt,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Expired   bool       `json:"expired"`
}

// inspectToken reads claims without verifying the signature; the server is
// the only party holding the key.
func inspectToken(raw string, now time.Time) (*tokenInfo, error) {
	if raw == "" {
		return nil, errors.New("no token configured")
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("token is not a JWT: %w", err)
	}

	info := &tokenInfo{}
	info.Subject, _ = claims.GetSubject()
	info.Issuer, _ = claims.GetIssuer()
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.UTC()
		info.IssuedAt = &t
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.UTC()
		info.ExpiresAt = &t
		info.Expired = !now.Before(t)
	}
	return info, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
