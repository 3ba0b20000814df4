// Package main is rtctl, a diagnostics CLI over the desktop integration
// boundary.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ringotypowriter/ringotrack/internal/backdrop"
	"github.com/ringotypowriter/ringotrack/internal/bridge"
	"github.com/ringotypowriter/ringotrack/internal/policy"
)

var (
	// Version info (set via ldflags)
	Version   = "0.1.0"
	Commit    = "dev"
	BuildTime = "unknown"
)

var (
	configPath string
	verbose    bool
	jsonOutput bool
	holdFor    time.Duration
	watchFor   time.Duration
	hostClass  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "rtctl",
	Short:         "Inspect and drive ringotrack's desktop integration",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Print the current foreground application",
	RunE:  runProbe,
}

var idleCmd = &cobra.Command{
	Use:   "idle",
	Short: "Install the pointer hook and report primary-button activity",
	Long: `Installs the low-level pointer hook, waits for --for (or an interrupt),
then prints the last click time and the current idle duration.`,
	RunE: runIdle,
}

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Pin the foreground window as an overlay, then restore it",
	Long: `Pins the current foreground window to the configured corner of its
work area. The window is restored when --for elapses or on interrupt.`,
	RunE: runPin,
}

var tintCmd = &cobra.Command{
	Use:   "tint <#rrggbb[aa]>",
	Short: "Apply a translucent backdrop tint to the host window",
	Args:  cobra.ExactArgs(1),
	RunE:  runTint,
}

var resetTintCmd = &cobra.Command{
	Use:   "reset-tint",
	Short: "Remove the backdrop tint from the host window",
	RunE:  runResetTint,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run:   runVersion,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr")
	probeCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	idleCmd.Flags().DurationVar(&watchFor, "for", 10*time.Second, "How long to watch")
	idleCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	pinCmd.Flags().DurationVar(&holdFor, "for", 5*time.Second, "How long to stay pinned")
	tintCmd.Flags().StringVar(&hostClass, "class", "", "Window class of the host (default from config)")
	resetTintCmd.Flags().StringVar(&hostClass, "class", "", "Window class of the host (default from config)")
	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	rootCmd.AddCommand(probeCmd, idleCmd, pinCmd, tintCmd, resetTintCmd, versionCmd)
}

func createLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newBridge() (*bridge.Bridge, error) {
	cfg, err := policy.Load(configPath)
	if err != nil {
		return nil, err
	}
	if hostClass != "" {
		cfg.Backdrop.HostClass = hostClass
	}
	return bridge.New(cfg, createLogger()), nil
}

// waitFor returns after d or on interrupt, whichever comes first.
func waitFor(d time.Duration) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runProbe(cmd *cobra.Command, args []string) error {
	b, err := newBridge()
	if err != nil {
		return err
	}
	defer b.Close()

	info := b.ForegroundApp()
	if jsonOutput {
		return printJSON(info)
	}
	fmt.Printf("pid:    %d\n", info.ProcessID)
	fmt.Printf("name:   %s\n", info.Name)
	fmt.Printf("path:   %s\n", info.ExecutablePath)
	fmt.Printf("title:  %s\n", info.Title)
	fmt.Printf("app id: %s\n", info.AppID)
	if info.CommandLine != "" {
		fmt.Printf("cmd:    %s\n", info.CommandLine)
	}
	fmt.Printf("status: %s\n", info.ErrorCode)
	return nil
}

func runIdle(cmd *cobra.Command, args []string) error {
	b, err := newBridge()
	if err != nil {
		return err
	}
	defer b.Close()

	b.InstallActivityHook()
	if !b.Status().HookInstalled {
		return fmt.Errorf("pointer hook could not be installed")
	}
	fmt.Printf("watching primary button for %s...\n", watchFor)
	waitFor(watchFor)

	st := b.Status()
	if jsonOutput {
		return printJSON(map[string]any{
			"lastClickMillis": st.LastClickMillis,
			"buttonDown":      st.ButtonDown,
			"idleForMillis":   st.Idle.Milliseconds(),
		})
	}
	fmt.Printf("last click: %s\n", time.UnixMilli(int64(st.LastClickMillis)).Format(time.RFC3339))
	fmt.Printf("button:     %s\n", map[bool]string{true: "down", false: "up"}[st.ButtonDown])
	fmt.Printf("idle for:   %s\n", st.Idle.Round(time.Millisecond))
	return nil
}

func runPin(cmd *cobra.Command, args []string) error {
	b, err := newBridge()
	if err != nil {
		return err
	}
	defer b.Close()

	if b.EnterPinnedMode() == 0 {
		return fmt.Errorf("could not pin the foreground window")
	}
	fmt.Printf("pinned for %s\n", holdFor)
	waitFor(holdFor)
	if b.ExitPinnedMode() == 0 {
		return fmt.Errorf("could not restore the window")
	}
	fmt.Println("restored")
	return nil
}

func runTint(cmd *cobra.Command, args []string) error {
	b, err := newBridge()
	if err != nil {
		return err
	}
	defer b.Close()

	t, err := backdrop.ParseTint(args[0], b.Config().Backdrop.Alpha)
	if err != nil {
		return err
	}
	if b.ApplyTint(t) == 0 {
		return fmt.Errorf("no %q window accepted the tint", b.Config().Backdrop.HostClass)
	}
	fmt.Printf("applied %s\n", t.Hex())
	return nil
}

func runResetTint(cmd *cobra.Command, args []string) error {
	b, err := newBridge()
	if err != nil {
		return err
	}
	defer b.Close()

	if b.ResetBackdropTint() == 0 {
		return fmt.Errorf("no %q window to reset", b.Config().Backdrop.HostClass)
	}
	fmt.Println("backdrop reset")
	return nil
}

func runVersion(cmd *cobra.Command, args []string) {
	if jsonOutput {
		fmt.Printf(`{"version":"%s","commit":"%s","build_time":"%s"}`+"\n",
			Version, Commit, BuildTime)
	} else {
		fmt.Printf("rtctl %s (commit: %s, built: %s)\n",
			Version, Commit, BuildTime)
	}
}
