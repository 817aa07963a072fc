// Package report renders cut lists for people: a terminal table and an HTML cut sheet.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"cutlist/compiler"
	"cutlist/export"
	"cutlist/selection"
)

// Table writes cuts as an aligned table. Gap rows are shown faint with dashes in
// place of source timecodes.
func Table(w io.Writer, cuts []compiler.Cut, frameRate float64, useColor bool) error {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint, color.Italic)
	clip := color.New(color.FgHiCyan)
	for _, c := range []*color.Color{bold, faint, clip} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(
		bold.Sprint("#"), bold.Sprint("REC IN"), bold.Sprint("REC OUT"),
		bold.Sprint("SRC IN"), bold.Sprint("SRC OUT"), bold.Sprint("FRAMES"),
		bold.Sprint("CLIP"), bold.Sprint("TEXT"),
	)
	for _, cut := range cuts {
		recIn := export.FramesToTimecode(cut.TimelineIn, frameRate)
		recOut := export.FramesToTimecode(cut.TimelineOut, frameRate)
		if cut.IsGap() {
			tbl.AddRow(
				faint.Sprint("-"), faint.Sprint(recIn), faint.Sprint(recOut),
				faint.Sprint("--"), faint.Sprint("--"), faint.Sprint(cut.DurationFrames),
				faint.Sprint("(gap)"), faint.Sprint(cut.Text),
			)
			continue
		}
		tbl.AddRow(
			strconv.Itoa(cut.SequenceIndex), recIn, recOut,
			export.FramesToTimecode(cut.SourceIn, frameRate),
			export.FramesToTimecode(cut.SourceOut, frameRate),
			strconv.Itoa(cut.DurationFrames),
			clip.Sprint(cut.ClipName), cut.Text,
		)
	}
	tbl.RightAlign(0)
	tbl.RightAlign(5)

	_, err := fmt.Fprintln(w, tbl)
	return err
}

// Summary writes a one-line total for a compilation result.
func Summary(w io.Writer, res compiler.Result, frameRate float64) error {
	_, err := fmt.Fprintf(w, "%d cuts from %d segments, %d dropped, total %s\n",
		len(res.Cuts), res.Matched, len(res.Dropped),
		export.FramesToTimecode(res.TotalFrames(), frameRate))
	return err
}

// Selections lists saved selections with their ids in compact range form.
func Selections(w io.Writer, sels []selection.Selection, useColor bool) error {
	bold := color.New(color.Bold)
	if useColor {
		bold.EnableColor()
	} else {
		bold.DisableColor()
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("NAME"), bold.Sprint("COUNT"), bold.Sprint("IDS"), bold.Sprint("GOAL"))
	for _, s := range sels {
		tbl.AddRow(s.Name, strconv.Itoa(len(s.IDs)), selection.FormatIDs(s.IDs), s.Goal)
	}
	tbl.RightAlign(1)

	_, err := fmt.Fprintln(w, tbl)
	return err
}
