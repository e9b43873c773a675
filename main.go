package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/renoua/potato/internal/app"
	"github.com/renoua/potato/internal/config"
	"github.com/renoua/potato/internal/keys"
	"github.com/renoua/potato/internal/pad"
	"github.com/renoua/potato/internal/power"
	"github.com/renoua/potato/internal/sensor"
	"github.com/renoua/potato/internal/status"
)

var (
	flagFTP         float64
	flagDeviceName  string
	flagThreshold   float64
	flagScanTimeout time.Duration
	flagDisableKeys bool
	flagKeyboardDev string
	flagTUI         bool
	flagDemo        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "potato",
		Short: "Bridge a BLE cycling power meter to a virtual gamepad trigger",
		Long: `potato reads instantaneous power from a BLE home trainer (e.g. a Wahoo
KICKR), maps it through a tanh curve calibrated to your FTP, and drives the
right trigger of a virtual gamepad. Keyboard keys are bound to the gamepad
buttons for Zwift Play compatibility.

Settings can also come from potato.yaml or POTATO_* environment variables.
Use --demo to run against a simulated trainer without BLE hardware.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd)
		},
		RunE: run,
	}

	rootCmd.Flags().Float64Var(&flagFTP, "ftp", config.DefaultFTP, "Functional threshold power in watts")
	rootCmd.Flags().StringVar(&flagDeviceName, "device-name", config.DefaultDeviceName, "Partial name of the BLE device")
	rootCmd.Flags().Float64Var(&flagThreshold, "threshold", config.DefaultThreshold, "Ignore power below this wattage")
	rootCmd.Flags().DurationVar(&flagScanTimeout, "scan-timeout", config.DefaultScanTimeout, "Give up device discovery after this long")
	rootCmd.Flags().BoolVar(&flagDisableKeys, "disable-dpad", false, "Disable keyboard-to-button mapping")
	rootCmd.Flags().StringVar(&flagKeyboardDev, "keyboard-device", "", "Keyboard event device path (default: auto-detect)")
	rootCmd.Flags().BoolVar(&flagTUI, "tui", false, "Show the power bar display")
	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Run against a simulated trainer (no hardware needed)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers viper over the cobra flags: an optional potato.yaml and
// POTATO_* environment variables fill in any flag the user did not set.
func loadConfig(cmd *cobra.Command) error {
	viper.SetConfigName("potato")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(dir, "potato"))
	}
	viper.SetEnvPrefix("POTATO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && viper.IsSet(f.Name) {
			if err := cmd.Flags().Set(f.Name, viper.GetString(f.Name)); err != nil && bindErr == nil {
				bindErr = fmt.Errorf("config value for %s: %w", f.Name, err)
			}
		}
	})
	return bindErr
}

func run(cmd *cobra.Command, args []string) error {
	// Reject a degenerate curve before wiring anything.
	curve, err := power.NewCurve(flagFTP, flagThreshold)
	if err != nil {
		return fmt.Errorf("--ftp %g: %w", flagFTP, err)
	}

	var device pad.Device
	if uinput, err := pad.NewUInput(); err != nil {
		if !flagDemo {
			return fmt.Errorf("virtual gamepad: %w", err)
		}
		log.Printf("no virtual gamepad (%v), demo continues without one", err)
		device = pad.Discard{}
	} else {
		device = uinput
	}

	stateSync := pad.NewSync(device)
	defer func() { _ = stateSync.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !flagDisableKeys {
		startKeyboard(ctx, stateSync)
	}

	var transport sensor.Transport
	if flagDemo {
		transport = sensor.NewMockTransport("KICKR SIM")
	} else {
		transport = sensor.NewBLETransport()
	}

	pub := status.NewPublisher(stateSync)

	if flagTUI {
		return runTUI(ctx, cancel, transport, curve, stateSync, pub)
	}
	return runConsole(ctx, transport, curve, stateSync, pub)
}

// startKeyboard attaches the key bindings to the OS hook. A missing
// keyboard is not fatal; the power bridge still runs.
func startKeyboard(ctx context.Context, stateSync *pad.Sync) {
	hook, err := keys.NewEvdevHook(flagKeyboardDev)
	if err != nil {
		log.Printf("keyboard bindings disabled: %v", err)
		return
	}

	keys.NewRouter(stateSync, keys.Bindings()).Attach(hook)
	go func() {
		if err := hook.Run(ctx); err != nil {
			log.Printf("keyboard hook: %v", err)
		}
	}()
}

// runConsole prints one status line per power update and stays alive until
// interrupted. A failed session leaves the bridge inert but keeps the
// keyboard bindings working.
func runConsole(ctx context.Context, transport sensor.Transport, curve power.Curve, stateSync *pad.Sync, pub *status.Publisher) error {
	console := status.NewConsole(pub, os.Stdout)
	session := sensor.NewSession(transport, curve, stateSync, sensor.Config{
		DeviceName:  flagDeviceName,
		ScanTimeout: flagScanTimeout,
		OnUpdate:    func(int, float64) { console.Publish() },
	})

	done := make(chan error, 1)
	go func() { done <- session.Run(ctx) }()

	if err := <-done; err != nil {
		log.Printf("sensor session: %v", err)
		<-ctx.Done()
	}
	return nil
}

// runTUI shows the power bar display; quitting it shuts the bridge down.
func runTUI(ctx context.Context, cancel context.CancelFunc, transport sensor.Transport, curve power.Curve, stateSync *pad.Sync, pub *status.Publisher) error {
	session := sensor.NewSession(transport, curve, stateSync, sensor.Config{
		DeviceName:  flagDeviceName,
		ScanTimeout: flagScanTimeout,
	})

	// Session and hook logging would scribble over the alt screen; errors
	// surface through SessionDoneMsg instead.
	log.SetOutput(io.Discard)

	p := tea.NewProgram(
		app.New(pub, session, cancel),
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)

	go func() {
		if err := session.Run(ctx); err != nil {
			p.Send(app.SessionDoneMsg{Err: err})
		}
	}()

	_, err := p.Run()
	cancel()
	return err
}
