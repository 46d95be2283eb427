// Package cli wires configuration, logging and the window behind cobra
// commands.
package cli

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/iburimskiy/neuralbg/internal/config"
	"github.com/iburimskiy/neuralbg/internal/eventloop"
	"github.com/iburimskiy/neuralbg/internal/game"
	"github.com/iburimskiy/neuralbg/internal/graph"
	"github.com/iburimskiy/neuralbg/internal/logging"
	"github.com/iburimskiy/neuralbg/internal/prefs"
	"github.com/iburimskiy/neuralbg/internal/sound"
	"github.com/iburimskiy/neuralbg/internal/theme"
	"github.com/iburimskiy/neuralbg/internal/toast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version is set at build time.
var Version = "dev"

type app struct {
	v          *viper.Viper
	configFile string
	settings   config.Settings
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	cmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Animated neural-network backdrop with toast notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			noPersist, _ := cmd.Flags().GetBool("no-persist")
			return a.load(noPersist)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (yaml or toml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("prefs", "", "preferences file (default <user config dir>/neuralbg/prefs.yaml)")
	pf.Bool("no-persist", false, "keep the theme preference in memory only")

	f := cmd.Flags()
	f.Int("particles", config.ParticleCount, "number of graph nodes")
	f.Bool("glow", false, "draw a glow around each node")
	f.String("theme", "", "force dark or light for this run")
	f.Bool("desktop", false, "mirror toasts as desktop notifications")
	f.Bool("sound", false, "play a chime for each toast")
	f.Uint64("seed", 0, "random seed for node placement (0 picks one)")

	bind(a.v, "log.level", pf.Lookup("log-level"))
	bind(a.v, "theme.prefs_file", pf.Lookup("prefs"))
	bind(a.v, "graph.particles", f.Lookup("particles"))
	bind(a.v, "graph.glow", f.Lookup("glow"))
	bind(a.v, "graph.seed", f.Lookup("seed"))
	bind(a.v, "theme.force", f.Lookup("theme"))
	bind(a.v, "toast.desktop", f.Lookup("desktop"))
	bind(a.v, "toast.sound", f.Lookup("sound"))

	cmd.AddCommand(newThemeCmd(a), newNotifyCmd(a), newVersionCmd())
	return cmd
}

func bind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) load(noPersist bool) error {
	s, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	if noPersist {
		s.Theme.Persist = false
	}
	a.settings = s
	logging.Init(s.Log.Level, nil)
	return nil
}

func (a *app) openStore() (prefs.Store, error) {
	if !a.settings.Theme.Persist {
		return prefs.NewMemoryStore(), nil
	}

	path := a.settings.Theme.PrefsFile
	if path == "" {
		var err error
		if path, err = prefs.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return prefs.OpenFile(path)
}

// toastSinks builds the enabled mirrors. Both can block on first use (D-Bus,
// audio device), so they run off the frame goroutine.
func (a *app) toastSinks() []toast.Sink {
	var sinks []toast.Sink
	if a.settings.Toast.Desktop {
		sinks = append(sinks, toast.NewAsyncSink(toast.NewDesktopSink()))
	}
	if a.settings.Toast.Sound {
		sinks = append(sinks, toast.NewAsyncSink(sound.NewSpeakerSink()))
	}
	return sinks
}

func (a *app) run() error {
	s := a.settings
	logger := logging.Component("app")

	store, err := a.openStore()
	if err != nil {
		logger.Warn().Err(err).Msg("preferences unavailable, using memory store")
		store = prefs.NewMemoryStore()
	}

	dark := theme.Resolve(store, theme.SystemDark)
	if s.Theme.Force != "" {
		dark, _ = theme.Parse(s.Theme.Force)
	}
	flag := theme.NewFlag(dark)

	var rng *rand.Rand
	if s.Graph.Seed != 0 {
		rng = rand.New(rand.NewPCG(s.Graph.Seed, s.Graph.Seed))
	}
	renderer := graph.NewRenderer(graph.Options{
		Count:            s.Graph.Particles,
		Radius:           s.Graph.Radius,
		Speed:            s.Graph.Speed,
		ConnectionRadius: s.Graph.ConnectionRadius,
		LineAlpha:        s.Graph.LineAlpha,
		LineWidth:        s.Graph.LineWidth,
		Glow:             s.Graph.Glow,
	}, flag, rng)

	loop := eventloop.New(time.Now())
	queue := toast.NewQueue(toast.Options{
		EnterDelay:   s.Toast.EnterDelay,
		Duration:     s.Toast.Duration,
		ExitDuration: s.Toast.ExitDuration,
		MaxToasts:    s.Toast.MaxToasts,
	}, loop, a.toastSinks()...)

	g := game.New(game.Deps{
		Renderer: renderer,
		Queue:    queue,
		Loop:     loop,
		Themes:   theme.NewController(flag, store),
		Welcome:  s.Toast.Welcome,
	})

	logger.Info().
		Str("theme", theme.Name(dark)).
		Int("particles", s.Graph.Particles).
		Msg("opening window")

	ebiten.SetWindowSize(s.Window.Width, s.Window.Height)
	ebiten.SetWindowTitle(s.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	renderer.Stop()
	return nil
}
