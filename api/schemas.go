package api

import (
	"cutlist/compiler"
	"cutlist/subtitle"
	"cutlist/timeline"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type PreviewRequest struct {
	Timeline timeline.Timeline  `json:"timeline"`
	Segments []subtitle.Segment `json:"segments"`
}

type PreviewResponse struct {
	Rows []compiler.Cut `json:"rows"`
}

// CompileRequest selects segments either by id list or by the name of a saved
// selection. Options fall back to the server defaults.
type CompileRequest struct {
	Timeline  timeline.Timeline  `json:"timeline"`
	Segments  []subtitle.Segment `json:"segments"`
	Selected  []int              `json:"selected"`
	Selection string             `json:"selection,omitempty"`
	Options   *compiler.Options  `json:"options,omitempty"`
	Title     string             `json:"title,omitempty"`
}

type CompileResponse struct {
	Cuts        []compiler.Cut  `json:"cuts"`
	Matched     int             `json:"matched"`
	Dropped     []compiler.Drop `json:"dropped"`
	TotalFrames int             `json:"total_frames"`
}

type SelectionsResponse struct {
	Selections []SelectionResponse `json:"selections"`
}

type SelectionResponse struct {
	Name string `json:"name"`
	Goal string `json:"goal,omitempty"`
	IDs  []int  `json:"ids"`
}
