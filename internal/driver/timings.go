package driver

import (
	"encoding/json"
	"fmt"

	"named/internal/diag"
	"named/internal/observ"
	"named/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic adds an OBS6001 info entry whose single note is
// the report as JSON. diagfmt.JSON always keeps notes of this code.
func appendTimingDiagnostic(bag *diag.Bag, path string, r observ.Report) {
	if bag == nil {
		return
	}
	payload := timingPayload{Kind: "file", Path: path, TotalMS: r.TotalMS, Phases: r.Phases}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).WithNote(source.Span{}, string(data)))
}
