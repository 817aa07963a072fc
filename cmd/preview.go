package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cutlist/compiler"
	"cutlist/report"
)

var previewCmd = &cobra.Command{
	Use:   "preview <timeline> [subtitles]",
	Short: "Show where transcript segments land on the timeline",
	Long: `Map every transcript segment onto the timeline and print the rows, with gap rows
for text no clip covers. Without a subtitle file the timeline's clips are listed.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPreview,
}

var previewHTML string

func init() {
	previewCmd.Flags().StringVar(&previewHTML, "html", "", "Also write an HTML sheet to this path")
}

func runPreview(cmd *cobra.Command, args []string) error {
	tl, err := loadTimeline(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Timeline: %d clips at %.3f fps (%dx%d)\n", len(tl.Clips), tl.FrameRate, tl.Width, tl.Height)

	var subtitlePath string
	if len(args) > 1 {
		subtitlePath = args[1]
	}
	segs, err := loadSegments(subtitlePath)
	if err != nil {
		return err
	}

	rows, err := compiler.Preview(tl, segs)
	if err != nil {
		return err
	}
	if err := report.Table(os.Stdout, rows, tl.FrameRate, useColor()); err != nil {
		return err
	}

	if previewHTML != "" {
		if err := writeHTML(previewHTML, "Preview", rows, tl.FrameRate); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", previewHTML)
	}
	return nil
}

func writeHTML(path, title string, cuts []compiler.Cut, frameRate float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", path, err)
	}
	if err := report.HTML(f, title, cuts, frameRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
