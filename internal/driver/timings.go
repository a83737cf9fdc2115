package driver

import (
	"encoding/json"
	"fmt"

	"pinecheck/internal/diag"
	"pinecheck/internal/observ"
	"pinecheck/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic attaches an info diagnostic with the timing report as
// a JSON note. It bypasses the cap: timings are requested explicitly.
func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload, file source.FileID) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s, %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  source.Span{File: file},
		Source:   diag.SourceTag,
		Notes: []diag.Note{
			{Span: source.Span{File: file}, Msg: string(data)},
		},
	}

	if !bag.Full() {
		bag.Add(entry)
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
