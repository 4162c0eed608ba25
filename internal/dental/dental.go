// Package dental implements the experimental COHAT findings extractor. Model
// output is treated as untrusted input: it is parsed against the species
// tooth layout and the enumerated condition set, and anything that does not
// fit degrades to an empty result instead of an error.
package dental

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Extractor is the generation call the package needs; satisfied by ai.Client.
type Extractor interface {
	ExtractDentalFindings(ctx context.Context, notes string) (string, error)
}

// Condition metadata for chart rendering, keyed by condition code.
type ConditionInfo struct {
	Label    string `json:"label"`
	Color    string `json:"color"`
	Priority int    `json:"priority"`
}

// Conditions is the enumerated condition set the extractor accepts.
var Conditions = map[string]ConditionInfo{
	"normal":              {Label: "Normal", Color: "#e5e7eb", Priority: 0},
	"gingivitis_mild":     {Label: "Mild Gingivitis", Color: "#fbbf24", Priority: 1},
	"gingivitis_moderate": {Label: "Moderate Gingivitis", Color: "#f97316", Priority: 2},
	"gingivitis_severe":   {Label: "Severe Gingivitis", Color: "#dc2626", Priority: 3},
	"calculus_light":      {Label: "Light Calculus", Color: "#d1d5db", Priority: 1},
	"calculus_moderate":   {Label: "Moderate Calculus", Color: "#9ca3af", Priority: 2},
	"calculus_heavy":      {Label: "Heavy Calculus", Color: "#4b5563", Priority: 3},
	"pocket_4mm":          {Label: "4mm Pocket", Color: "#3b82f6", Priority: 2},
	"pocket_5mm":          {Label: "5mm Pocket", Color: "#1d4ed8", Priority: 3},
	"pocket_6mm":          {Label: "6+ mm Pocket", Color: "#1e40af", Priority: 4},
	"fracture":            {Label: "Fracture", Color: "#7c2d12", Priority: 4},
	"missing":             {Label: "Missing", Color: "#000000", Priority: 5},
	"extracted":           {Label: "Extracted Today", Color: "#ef4444", Priority: 5},
	"crown":               {Label: "Crown/Restoration", Color: "#ffd700", Priority: 1},
}

// Modified Triadan layouts by quadrant.
var canineTeeth = map[string][]string{
	"upper_right": {"101", "102", "103", "104", "105", "106", "107", "108", "109", "110"},
	"upper_left":  {"201", "202", "203", "204", "205", "206", "207", "208", "209", "210", "211"},
	"lower_right": {"401", "402", "403", "404", "405", "406", "407", "408", "409", "410", "411"},
	"lower_left":  {"301", "302", "303", "304", "305", "306", "307", "308", "309", "310"},
}

var felineTeeth = map[string][]string{
	"upper_right": {"101", "102", "103", "104", "105", "106", "107", "108", "109"},
	"upper_left":  {"201", "202", "203", "204", "205", "206", "207", "208", "209"},
	"lower_right": {"401", "402", "403", "404", "405", "406", "407"},
	"lower_left":  {"301", "302", "303", "304", "305", "306", "307"},
}

// Layout returns the quadrant layout for a species. Only dogs get the canine
// layout; every other species falls back to the feline chart, matching how
// charts were produced historically.
func Layout(species string) map[string][]string {
	if strings.EqualFold(species, "dog") {
		return canineTeeth
	}
	return felineTeeth
}

func validTooth(species, tooth string) bool {
	for _, quadrant := range Layout(species) {
		for _, t := range quadrant {
			if t == tooth {
				return true
			}
		}
	}
	return false
}

// Extract runs the extraction prompt over the notes and returns the validated
// findings. Generation failures and unparseable output both yield an empty
// map: this is a best-effort enhancement layered on top of the core record.
func Extract(ctx context.Context, ex Extractor, notes, species string) map[string]string {
	raw, err := ex.ExtractDentalFindings(ctx, notes)
	if err != nil {
		return map[string]string{}
	}
	return ParseFindings(raw, species)
}

// ParseFindings parses model output as a tooth->condition mapping. The output
// must be a flat JSON object (a Python-dict single-quote variant is
// normalized first); keys must be teeth present in the species layout and
// values must be enumerated conditions. Any mismatch means an empty map.
func ParseFindings(raw, species string) map[string]string {
	candidate := extractObject(raw)
	if candidate == "" {
		return map[string]string{}
	}

	var parsed map[string]string
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		// Models occasionally emit Python dict syntax
		normalized := strings.ReplaceAll(candidate, "'", `"`)
		if err := json.Unmarshal([]byte(normalized), &parsed); err != nil {
			return map[string]string{}
		}
	}

	findings := make(map[string]string, len(parsed))
	for tooth, condition := range parsed {
		tooth = strings.TrimSpace(tooth)
		condition = strings.TrimSpace(condition)
		if !validTooth(species, tooth) {
			return map[string]string{}
		}
		if _, ok := Conditions[condition]; !ok {
			return map[string]string{}
		}
		findings[tooth] = condition
	}
	return findings
}

// extractObject pulls the outermost {...} span out of the response, tolerating
// prose or code fences around it.
func extractObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

// Summary aggregates the findings for display and reporting.
type Summary struct {
	TotalFindings      int      `json:"total_findings"`
	SevereConditions   int      `json:"severe_conditions"`
	AffectedPercentage float64  `json:"affected_percentage"`
	Details            []string `json:"details"`
	Recommendations    []string `json:"recommendations"`
}

// Summarize computes per-chart counts and treatment recommendations from the
// validated findings.
func Summarize(findings map[string]string) Summary {
	var s Summary

	teeth := make([]string, 0, len(findings))
	for tooth := range findings {
		teeth = append(teeth, tooth)
	}
	sort.Strings(teeth)

	var gingivitis, calculus, pockets, fractures, extractions int
	for _, tooth := range teeth {
		condition := findings[tooth]
		if condition == "normal" {
			continue
		}
		info := Conditions[condition]
		s.TotalFindings++
		if info.Priority >= 3 {
			s.SevereConditions++
		}
		s.Details = append(s.Details, fmt.Sprintf("Tooth %s: %s", tooth, info.Label))

		switch {
		case strings.HasPrefix(condition, "gingivitis"):
			gingivitis++
		case strings.HasPrefix(condition, "calculus"):
			calculus++
		case strings.HasPrefix(condition, "pocket"):
			pockets++
		case condition == "fracture":
			fractures++
		case condition == "extracted" || condition == "missing":
			extractions++
		}
	}

	if len(findings) > 0 {
		s.AffectedPercentage = float64(s.TotalFindings) / float64(len(findings)) * 100
	}

	if gingivitis > 0 {
		s.Recommendations = append(s.Recommendations, fmt.Sprintf(
			"Gingivitis management: %d teeth affected - recommend professional cleaning and improved home care", gingivitis))
	}
	if calculus > 0 {
		s.Recommendations = append(s.Recommendations, fmt.Sprintf(
			"Calculus removal: %d teeth with calculus buildup - professional scaling required", calculus))
	}
	if pockets > 0 {
		s.Recommendations = append(s.Recommendations, fmt.Sprintf(
			"Periodontal therapy: %d teeth with deep pockets - may require root planing or surgical treatment", pockets))
	}
	if fractures > 0 {
		s.Recommendations = append(s.Recommendations, fmt.Sprintf(
			"Fracture repair: %d fractured teeth - evaluate for extraction or restoration", fractures))
	}
	if extractions > 0 {
		s.Recommendations = append(s.Recommendations, fmt.Sprintf(
			"Post-extraction care: %d teeth extracted/missing - monitor healing and pain management", extractions))
	}
	if len(s.Recommendations) == 0 {
		s.Recommendations = append(s.Recommendations,
			"Good oral health: no significant dental pathology detected - continue current home care routine")
	}

	return s
}
