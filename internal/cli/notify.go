package cli

import (
	"strings"
	"time"

	"github.com/iburimskiy/neuralbg/internal/sound"
	"github.com/iburimskiy/neuralbg/internal/toast"
	"github.com/spf13/cobra"
)

// newNotifyCmd sends one toast through the desktop sink, and the speaker sink
// with --sound, without opening the window.
func newNotifyCmd(a *app) *cobra.Command {
	var (
		severity  string
		withSound bool
	)

	cmd := &cobra.Command{
		Use:   "notify MESSAGE...",
		Short: "Send a desktop notification",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sev, err := toast.ParseSeverity(severity)
			if err != nil {
				return err
			}

			t := toast.Toast{Message: strings.Join(args, " "), Severity: sev}
			if withSound {
				if err := sound.NewSpeakerSink().Notify(t); err != nil {
					return err
				}
				// speaker.Play is asynchronous; let the chime finish before exit
				defer time.Sleep(sound.ChimeDuration + 100*time.Millisecond)
			}
			return toast.NewDesktopSink().Notify(t)
		},
	}

	cmd.Flags().StringVarP(&severity, "severity", "s", "info", "info, success, warning or error")
	cmd.Flags().BoolVar(&withSound, "sound", false, "also play the severity chime")
	return cmd
}
