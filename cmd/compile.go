package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cutlist/browser"
	"cutlist/compiler"
	"cutlist/export"
	"cutlist/fcp"
	"cutlist/report"
	"cutlist/selection"
	"cutlist/subtitle"
)

var compileCmd = &cobra.Command{
	Use:   "compile <timeline> <subtitles>",
	Short: "Compile selected segments into a cut list",
	Long: `Compile selected transcript segments into a frame-accurate cut list and write it
out. Segments are chosen with --ids, a --selection file, a --saved selection or
--match keywords; all given sources are combined.

Example:
  cutlist compile edit.fcpxml interview.srt --ids 1,4,7-9 --fcpxml selects.fcpxml --edl selects.edl`,
	Args: cobra.ExactArgs(2),
	RunE: runCompile,
}

var compileFlags struct {
	ids       string
	selection string
	saved     string
	match     string
	title     string

	fcpxml string
	srt    string
	vtt    string
	edl    string
	html   string
	png    string

	head      int
	tail      int
	tolerance int
}

func init() {
	f := compileCmd.Flags()
	f.StringVar(&compileFlags.ids, "ids", "", "Segment ids, e.g. 1,4,7-9")
	f.StringVar(&compileFlags.selection, "selection", "", "Selection file (YAML or JSON)")
	f.StringVar(&compileFlags.saved, "saved", "", "Name of a saved selection")
	f.StringVar(&compileFlags.match, "match", "", "Select segments containing any of these words")
	f.StringVar(&compileFlags.title, "title", "", "Project title (default: subtitle file name)")

	f.StringVar(&compileFlags.fcpxml, "fcpxml", "", "Write FCPXML to this path")
	f.StringVar(&compileFlags.srt, "srt", "", "Write SRT captions to this path")
	f.StringVar(&compileFlags.vtt, "vtt", "", "Write WebVTT captions to this path")
	f.StringVar(&compileFlags.edl, "edl", "", "Write a CMX3600 EDL to this path")
	f.StringVar(&compileFlags.html, "html", "", "Write an HTML cut sheet to this path")
	f.StringVar(&compileFlags.png, "png", "", "Render the cut sheet to a PNG (needs Chromium)")

	f.IntVar(&compileFlags.head, "head", compiler.DefaultHeadPadding, "Head padding in frames")
	f.IntVar(&compileFlags.tail, "tail", compiler.DefaultTailPadding, "Tail padding in frames")
	f.IntVar(&compileFlags.tolerance, "tolerance", compiler.DefaultMergeTolerance, "Merge tolerance in frames")
}

func runCompile(cmd *cobra.Command, args []string) error {
	tl, err := loadTimeline(args[0])
	if err != nil {
		return err
	}
	segs, err := loadSegments(args[1])
	if err != nil {
		return err
	}

	ids, err := selectedIDs(cmd.Context(), segs)
	if err != nil {
		return err
	}

	opts := cfg.Options()
	if cmd.Flags().Changed("head") {
		opts.HeadPadding = compileFlags.head
	}
	if cmd.Flags().Changed("tail") {
		opts.TailPadding = compileFlags.tail
	}
	if cmd.Flags().Changed("tolerance") {
		opts.MergeTolerance = compileFlags.tolerance
	}

	res, err := compiler.Compile(tl, segs, ids, opts)
	if err != nil {
		return err
	}
	for _, d := range res.Dropped {
		logger.Debug("segment dropped", zap.Int("segment_id", d.SegmentID), zap.Stringer("reason", d.Reason))
	}

	if err := report.Table(os.Stdout, res.Cuts, tl.FrameRate, useColor()); err != nil {
		return err
	}
	if err := report.Summary(os.Stdout, res, tl.FrameRate); err != nil {
		return err
	}

	title := compileFlags.title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(args[1]), filepath.Ext(args[1]))
	}
	return writeOutputs(cmd.Context(), res.Cuts, tl.FrameRate, tl.Width, tl.Height, title)
}

// selectorFor is one selection source named on the command line.
type selectorFor struct {
	selector selection.Selector
	goal     string
}

func selectors() ([]selectorFor, error) {
	var out []selectorFor
	if compileFlags.ids != "" {
		parsed, err := selection.ParseIDs(compileFlags.ids)
		if err != nil {
			return nil, err
		}
		out = append(out, selectorFor{selector: selection.Static{IDs: parsed}})
	}
	if compileFlags.selection != "" {
		sel, err := selection.Load(compileFlags.selection)
		if err != nil {
			return nil, err
		}
		out = append(out, selectorFor{selector: selection.Static{IDs: sel.IDs}, goal: sel.Goal})
	}
	if compileFlags.saved != "" {
		sel, err := store().Get(compileFlags.saved)
		if err != nil {
			return nil, err
		}
		out = append(out, selectorFor{selector: selection.Static{IDs: sel.IDs}, goal: sel.Goal})
	}
	if compileFlags.match != "" {
		out = append(out, selectorFor{selector: selection.Keyword{}, goal: compileFlags.match})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("nothing selected: use --ids, --selection, --saved or --match")
	}
	return out, nil
}

func selectedIDs(ctx context.Context, segs []subtitle.Segment) ([]int, error) {
	sources, err := selectors()
	if err != nil {
		return nil, err
	}
	var ids []int
	for _, src := range sources {
		picked, err := src.selector.Select(ctx, segs, src.goal)
		if err != nil {
			return nil, err
		}
		if _, ok := src.selector.(selection.Keyword); ok {
			fmt.Printf("Matched %d segments for %q\n", len(picked), src.goal)
		}
		ids = append(ids, picked...)
	}
	return ids, nil
}

func writeOutputs(ctx context.Context, cuts []compiler.Cut, frameRate float64, width, height int, title string) error {
	if compileFlags.fcpxml != "" {
		doc := export.FCPXML(cuts, frameRate, width, height, title)
		if err := fcp.WriteToFile(doc, compileFlags.fcpxml); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", compileFlags.fcpxml)
	}

	texts := []struct {
		path string
		body func() string
	}{
		{compileFlags.srt, func() string { return export.SRT(cuts, frameRate) }},
		{compileFlags.vtt, func() string { return export.VTT(cuts, frameRate) }},
		{compileFlags.edl, func() string { return export.EDL(cuts, title, frameRate) }},
	}
	for _, t := range texts {
		if t.path == "" {
			continue
		}
		if err := os.WriteFile(t.path, []byte(t.body()), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %v", t.path, err)
		}
		fmt.Printf("Wrote %s\n", t.path)
	}

	htmlPath := compileFlags.html
	if htmlPath == "" && compileFlags.png != "" {
		dir, err := os.MkdirTemp("", "cutlist")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)
		htmlPath = filepath.Join(dir, "sheet.html")
	}
	if htmlPath != "" {
		if err := writeHTML(htmlPath, title, cuts, frameRate); err != nil {
			return err
		}
		if compileFlags.html != "" {
			fmt.Printf("Wrote %s\n", htmlPath)
		}
	}
	if compileFlags.png != "" {
		if err := browser.Snapshot(ctx, htmlPath, compileFlags.png); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", compileFlags.png)
	}
	return nil
}
