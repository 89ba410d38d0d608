package driver

import (
	"encoding/json"
	"fmt"

	"risp/internal/diag"
	"risp/internal/observ"
	"risp/internal/source"
)

// timingNote is the JSON carried in the note of an OBS6001 diagnostic.
type timingNote struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

func newTimingNote(kind, path string, r observ.Report) timingNote {
	return timingNote{Kind: kind, Path: path, TotalMS: r.TotalMS, Phases: r.Phases}
}

// attach records n in bag as an info diagnostic. A full bag is stretched by
// one: timings are requested explicitly and must not be dropped.
func (n timingNote) attach(bag *diag.Bag, file source.FileID) {
	if bag == nil {
		return
	}
	data, err := json.Marshal(n)
	if err != nil {
		return
	}
	at := source.Info{File: file}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", n.Kind, n.TotalMS)
	if n.Path != "" {
		msg += ": " + n.Path
	}
	entry := diag.New(diag.SevInfo, diag.ObsTimings, at, msg).WithNote(at, string(data))
	if !bag.Add(entry) {
		extra := diag.NewBag(1)
		extra.Add(entry)
		bag.Merge(extra)
	}
}
