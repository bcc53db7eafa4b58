package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/hashviz/internal/api"
	"github.com/san-kum/hashviz/internal/config"
	"github.com/san-kum/hashviz/internal/gui"
	"github.com/san-kum/hashviz/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	track      string
	server     string
	algorithm  string
	verbose    bool
	save       bool
	frameIdx   int
	envelope   bool
	asJSON     bool
	outFile    string

	log = zap.NewNop()
)

// main registers the commands and runs the root; with no subcommand the
// landing view opens. It exits with status 1 when a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "hashviz",
		Short:         "hash utility with an audio reactive landing view",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(verbose)
			if err != nil {
				return err
			}
			log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = log.Sync()
		},
		RunE: runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".hashviz", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&server, "server", "", "backend base url (default "+api.DefaultBaseURL+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the landing view",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&track, "track", "", "audio track (.wav or .mp3)")
	guiCmd.Flags().StringVar(&preset, "preset", "", "use preset tuning")
	rootCmd.Flags().AddFlagSet(guiCmd.Flags())

	hashCmd := &cobra.Command{
		Use:   "hash <text>",
		Short: "hash text on the backend",
		Args:  cobra.ExactArgs(1),
		RunE:  runHash,
	}
	hashCmd.Flags().StringVarP(&algorithm, "algorithm", "a", api.DefaultAlgo,
		"one of "+strings.Join(api.Algorithms, ", "))

	matchCmd := &cobra.Command{
		Use:   "match <text> <hash>",
		Short: "find which algorithm produced a hash",
		Args:  cobra.ExactArgs(2),
		RunE:  runMatch,
	}

	subscribeCmd := &cobra.Command{
		Use:   "subscribe <email>",
		Short: "subscribe an email address",
		Args:  cobra.ExactArgs(1),
		RunE:  runSubscribe,
	}

	toolCmd := &cobra.Command{
		Use:   "tool",
		Short: "terminal hash tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return tui.Run(newClient(cfg), cfg.APITimeout(), log)
		},
	}

	spectrumCmd := &cobra.Command{
		Use:   "spectrum <track>",
		Short: "analyse a track offline and plot its bar energy",
		Args:  cobra.ExactArgs(1),
		RunE:  runSpectrum,
	}
	spectrumCmd.Flags().BoolVar(&save, "save", false, "store the capture")
	spectrumCmd.Flags().StringVar(&preset, "preset", "", "use preset tuning")

	capturesCmd := &cobra.Command{
		Use:   "captures",
		Short: "list stored spectrum captures",
		Args:  cobra.NoArgs,
		RunE:  listCaptures,
	}

	exportCmd := &cobra.Command{
		Use:   "export <id>",
		Short: "render a capture as svg or json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCapture,
	}
	exportCmd.Flags().IntVar(&frameIdx, "frame", -1, "frame to render (default: loudest)")
	exportCmd.Flags().BoolVar(&envelope, "envelope", false, "plot mean bar height over time instead")
	exportCmd.Flags().BoolVar(&asJSON, "json", false, "write metadata and every frame as json")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	capturesCmd.AddCommand(exportCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Printf("  %-10s %s\n", name, config.Presets[name].Description)
			}
		},
	}

	rootCmd.AddCommand(guiCmd, hashCmd, matchCmd, subscribeCmd, toolCmd, spectrumCmd, capturesCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// loadConfig reads --config over the defaults, then applies --preset and
// the per-run flags.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}
	if preset != "" {
		p, ok := config.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Apply(p)
	}
	if track != "" {
		cfg.Audio.Track = track
	}
	if server != "" {
		cfg.API.BaseURL = server
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.API.BaseURL, cfg.APITimeout(), log)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gui.Run(cfg, log)
	return nil
}

func requestContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.APITimeout())
}

func runHash(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(cfg)
	defer cancel()

	res, err := newClient(cfg).Hash(ctx, args[0], algorithm)
	if err != nil {
		return failure(err, api.MsgNeedText, api.MsgHashFailed)
	}
	fmt.Println(res.Line())
	if res.Hash == "" {
		return fmt.Errorf("no hash returned")
	}
	return nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(cfg)
	defer cancel()

	res, err := newClient(cfg).Match(ctx, args[0], args[1])
	if err != nil {
		return failure(err, api.MsgNeedTextAndHash, api.MsgMatchFailed)
	}
	fmt.Println(res.Line())
	return nil
}

func runSubscribe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(cfg)
	defer cancel()

	res, err := newClient(cfg).Subscribe(ctx, args[0])
	if err != nil {
		return failure(err, api.MsgInvalidEmail, api.MsgConnectFailed)
	}
	fmt.Println(res.Line())
	if !res.Success {
		return fmt.Errorf("subscription rejected")
	}
	return nil
}

// failure maps a client error to the line a user sees. empty is the prompt
// for missing input, transport the line for an unreachable backend.
func failure(err error, empty, transport string) error {
	var te *api.TransportError
	switch {
	case errors.Is(err, api.ErrInvalidEmail):
		return errors.New(api.MsgInvalidEmail)
	case errors.Is(err, api.ErrEmptyText):
		return errors.New(empty)
	case errors.As(err, &te):
		log.Debug("request failed", zap.String("endpoint", te.Endpoint), zap.Error(te.Err))
		return errors.New(transport)
	}
	return err
}
