// Package cli is the bpplay command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/bpplay/internal/app"
	"github.com/llehouerou/bpplay/internal/config"
	"github.com/llehouerou/bpplay/internal/logging"
	"github.com/llehouerou/bpplay/internal/mpris"
	"github.com/llehouerou/bpplay/internal/notify"
	"github.com/llehouerou/bpplay/internal/playback"
	"github.com/llehouerou/bpplay/internal/player"
	"github.com/llehouerou/bpplay/internal/session"
	"github.com/llehouerou/bpplay/internal/state"
	"github.com/llehouerou/bpplay/internal/stderr"
)

// Version is set at build time.
var Version = "dev"

type options struct {
	configFile string
	debug      bool
}

// NewRootCmd builds the bpplay command.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "bpplay [file]",
		Short: "Play audio and mark breakpoints",
		Long: `bpplay plays an audio file and lets you mark breakpoints on it,
jump between them, and save the audio together with its breakpoints
in a ` + session.SaveExtension + ` file.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeFiles,
		Version:           Version,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return run(opts, path)
		},
	}
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/bpplay/config.toml)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log debug records")
	return cmd
}

var audioMimeTypes = []string{
	"audio/flac", "audio/mpeg", "audio/mp4", "audio/ogg", "audio/opus", "audio/wav",
}

// completeFiles restricts shell completion to files bpplay can open.
func completeFiles(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return openableExtensions(), cobra.ShellCompDirectiveFilterFileExt
}

func openableExtensions() []string {
	exts := append(session.AudioExtensions(), session.SaveExtension)
	for i, e := range exts {
		exts[i] = strings.TrimPrefix(e, ".")
	}
	return exts
}

// checkPath fails early on a file the app could not open.
func checkPath(path string) error {
	if path == "" {
		return nil
	}
	if _, err := session.Categorize(path); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func run(opts *options, path string) error {
	logFile := logging.Setup(opts.debug)
	defer logFile.Close()

	if err := checkPath(path); err != nil {
		return err
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	st, err := state.Open()
	if err != nil {
		return fmt.Errorf("state: %w", err)
	}
	defer st.Close()

	// Capture before the audio output opens so ALSA noise stays off the TUI.
	var lines <-chan string
	capture, err := stderr.Start(0)
	if err != nil {
		slog.Warn("stderr capture unavailable", "err", err)
	} else {
		defer capture.Stop()
		lines = capture.Lines()
	}

	dev := player.NewSpeaker(player.SpeakerOptions{
		MaxBuffered: cfg.GetMaxBuffered(),
		Resample:    cfg.ResampleEnabled(),
	})
	ctrl := playback.New(dev)
	defer ctrl.Close()

	sess := session.New(ctrl, session.Options{
		HistoryCapacity: cfg.GetHistoryCapacity(),
		HintLimit:       cfg.GetHintLimit(),
	})

	var remote app.Remote
	if cfg.MediaControlsEnabled() {
		speeds := cfg.GetSpeeds()
		adapter, err := mpris.New(ctrl, mpris.Options{
			MinRate:   slices.Min(speeds),
			MaxRate:   slices.Max(speeds),
			MimeTypes: audioMimeTypes,
		})
		if err != nil {
			slog.Warn("media controls unavailable", "err", err)
		} else {
			defer adapter.Close()
			remote = adapter
		}
	}

	var notifier notify.Notifier
	if cfg.DesktopNotificationsEnabled() {
		if notifier, err = notify.New(); err != nil {
			slog.Warn("desktop notifications unavailable", "err", err)
			notifier = nil
		}
	}

	model := app.New(app.Options{
		Config:   cfg,
		Session:  sess,
		State:    st,
		Stderr:   lines,
		OpenPath: path,
		Remote:   remote,
		Notifier: notifier,
	})

	slog.Info("starting", "version", Version, "file", path)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return execute(NewRootCmd(), os.Args[1:], os.Stderr)
}

func execute(cmd *cobra.Command, args []string, errOut io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetErr(errOut)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
