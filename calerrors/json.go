package calerrors

import "encoding/json"

// jsonDiagnostic is the wire shape for a Diagnostic, separating errors from
// warnings under an overall status.
type jsonDiagnostic struct {
	Message  string         `json:"message"`
	Severity string         `json:"severity"`
	Location SourceLocation `json:"location"`
}

type jsonOutput struct {
	Status   string           `json:"status"`
	Errors   []jsonDiagnostic `json:"errors"`
	Warnings []jsonDiagnostic `json:"warnings"`
	Summary  Summary          `json:"summary"`
}

func toJSONDiagnostic(d Diagnostic) jsonDiagnostic {
	return jsonDiagnostic{Message: d.Message, Severity: d.Severity.String(), Location: d.Location}
}

// FormatAsJSON renders a full Diagnostic list as indented JSON, the shape
// the `parse` CLI subcommand emits with --json instead of terminal text.
func FormatAsJSON(diags []Diagnostic) (string, error) {
	var errs, warns []jsonDiagnostic
	for _, d := range diags {
		jd := toJSONDiagnostic(d)
		if d.IsError() {
			errs = append(errs, jd)
		} else {
			warns = append(warns, jd)
		}
	}
	status := "success"
	if len(errs) > 0 {
		status = "error"
	} else if len(warns) > 0 {
		status = "warning"
	}
	out := jsonOutput{
		Status:   status,
		Errors:   errs,
		Warnings: warns,
		Summary:  Summarize(diags),
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
