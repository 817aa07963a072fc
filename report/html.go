package report

import (
	"html/template"
	"io"

	"cutlist/compiler"
	"cutlist/export"
)

var sheetTemplate = template.Must(template.New("sheet").Funcs(template.FuncMap{
	"tc": export.FramesToTimecode,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, Helvetica, sans-serif; margin: 24px; color: #222; }
table { border-collapse: collapse; width: 100%; }
th, td { padding: 6px 10px; border-bottom: 1px solid #ddd; text-align: left; font-size: 13px; }
td.tc { font-family: Menlo, monospace; white-space: nowrap; }
tr.gap td { color: #999; font-style: italic; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{len .Cuts}} rows, {{tc .Total .FrameRate}} at {{.FrameRate}} fps</p>
<table>
<tr><th>#</th><th>Rec In</th><th>Rec Out</th><th>Src In</th><th>Src Out</th><th>Clip</th><th>Text</th></tr>
{{- range .Cuts}}
{{- if .IsGap}}
<tr class="gap"><td></td><td class="tc">{{tc .TimelineIn $.FrameRate}}</td><td class="tc">{{tc .TimelineOut $.FrameRate}}</td><td class="tc">--</td><td class="tc">--</td><td>(gap)</td><td>{{.Text}}</td></tr>
{{- else}}
<tr><td>{{.SequenceIndex}}</td><td class="tc">{{tc .TimelineIn $.FrameRate}}</td><td class="tc">{{tc .TimelineOut $.FrameRate}}</td><td class="tc">{{tc .SourceIn $.FrameRate}}</td><td class="tc">{{tc .SourceOut $.FrameRate}}</td><td>{{.ClipName}}</td><td>{{.Text}}</td></tr>
{{- end}}
{{- end}}
</table>
</body>
</html>
`))

type sheet struct {
	Title     string
	FrameRate float64
	Total     int
	Cuts      []compiler.Cut
}

// HTML writes a printable cut sheet.
func HTML(w io.Writer, title string, cuts []compiler.Cut, frameRate float64) error {
	total := 0
	for _, c := range cuts {
		if c.TimelineOut > total {
			total = c.TimelineOut
		}
	}
	return sheetTemplate.Execute(w, sheet{Title: title, FrameRate: frameRate, Total: total, Cuts: cuts})
}
