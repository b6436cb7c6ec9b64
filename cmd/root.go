package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/iburimskiy/wobble-rings/internal/config"
	"github.com/iburimskiy/wobble-rings/internal/game"
	"github.com/iburimskiy/wobble-rings/internal/observability"
)

// app is the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

// NewRootCmd builds the command tree. Each call gets its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)
	defaults := config.NewDefaultConfig()

	root := &cobra.Command{
		Use:           "wobble-rings",
		Short:         "Three blended rings that wobble and lean toward the pointer.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.logger.Info("Opening window",
				zap.Int("width", a.cfg.Window.Width),
				zap.Int("height", a.cfg.Window.Height),
			)
			return game.Run(a.cfg, a.logger)
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	pf.Int("points", defaults.Scene.Points, "vertices per ring")
	pf.StringSlice("colors", defaults.Scene.Colors, "three ring fill colors")
	pf.String("blend", defaults.Scene.BlendMode, "mix-blend-mode applied to every ring")
	pf.String("background", defaults.Scene.Background, "background color")
	pf.String("log-level", defaults.Logger.Level, "log level")
	bindFlags(a.v, pf.Lookup, map[string]string{
		"scene.points":     "points",
		"scene.colors":     "colors",
		"scene.blend_mode": "blend",
		"scene.background": "background",
		"logger.level":     "log-level",
	})

	root.Flags().Int("width", defaults.Window.Width, "window width")
	root.Flags().Int("height", defaults.Window.Height, "window height")
	bindFlags(a.v, root.Flags().Lookup, map[string]string{
		"window.width":  "width",
		"window.height": "height",
	})

	root.AddCommand(newRenderCmd(a), newVersionCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	observability.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func (a *app) initialize() error {
	if err := initializeConfig(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.NewConfigFromViper(a.v)
	if err != nil {
		observability.InitializeLogger(config.NewDefaultConfig().Logger)
		return err
	}
	a.cfg = cfg
	observability.InitializeLogger(cfg.Logger)
	a.logger = observability.GetLogger().With(zap.String("run_id", uuid.NewString()))
	a.logger.Debug("Configuration loaded", zap.String("version", Version))
	return nil
}

// initializeConfig reads the config file, if any, and binds WOBBLE_* env vars.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("WOBBLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}
