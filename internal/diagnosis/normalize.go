package diagnosis

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	FallbackMessage     = "Here's what I found based on your request. Let me know if you need more detail."
	FallbackSummary     = "Possible issue"
	FallbackRationale   = "Likely cause based on common field reports and OEM guidance."
	FallbackPartName    = "Component"
	FallbackDescription = "Replacement component information based on your request."
	FallbackLink        = "#"

	DefaultProbability = 50
	MinProbability     = 1
	MaxProbability     = 99
)

// DiagramPool backs diagnoses that arrive without diagrams.
var DiagramPool = [...]string{
	"/pump-exploded.jpeg",
	"/suspension-diagram.jpg",
	"/chassis-diagram.jpg",
}

var ErrNotObject = errors.New("diagnosis: content is not a JSON object")

// Decode parses provider content and normalizes it. The result is always
// usable; a non-nil error only reports that content was not a JSON object
// and the result is the all-default value.
func Decode(content string) (ChatResult, error) {
	var raw any
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return Normalize(nil), errors.Join(ErrNotObject, err)
	}
	if _, ok := raw.(map[string]any); !ok {
		return Normalize(nil), ErrNotObject
	}
	return Normalize(raw), nil
}

// Normalize turns an arbitrary decoded JSON value into a ChatResult. It is
// total: wrong or missing fields fall back to defaults.
func Normalize(raw any) ChatResult {
	m, _ := raw.(map[string]any)

	return ChatResult{
		Kind:      kindOf(m),
		Message:   textOr(m["message"], FallbackMessage),
		Diagnoses: normalizeDiagnoses(m["diagnoses"]),
		Parts:     normalizeParts(m["parts"]),
	}
}

// kindOf accepts "kind" and the provider-facing "type"; kind wins.
func kindOf(m map[string]any) Kind {
	for _, key := range []string{"kind", "type"} {
		if s, ok := m[key].(string); ok && Kind(s).Valid() {
			return Kind(s)
		}
	}
	return KindText
}

func normalizeDiagnoses(v any) []Diagnosis {
	items, _ := v.([]any)
	out := make([]Diagnosis, 0, len(items))
	ids := newIDSet()

	for i, item := range items {
		d, _ := item.(map[string]any)
		details, _ := d["details"].(map[string]any)

		out = append(out, Diagnosis{
			ID:          ids.assign(d["id"], i),
			Summary:     textOr(d["summary"], FallbackSummary),
			Probability: Probability(d["probability"]),
			Details: Details{
				Steps:     stringList(details["steps"]),
				Specs:     stringList(details["specs"]),
				Parts:     partRefs(details["parts"]),
				Diagrams:  diagrams(details["diagrams"], i),
				Rationale: textOr(details["rationale"], FallbackRationale),
				Sources:   sources(details["sources"]),
			},
		})
	}
	return out
}

func normalizeParts(v any) []PartSpec {
	items, _ := v.([]any)
	out := make([]PartSpec, 0, len(items))
	ids := newIDSet()

	for i, item := range items {
		p, _ := item.(map[string]any)

		out = append(out, PartSpec{
			ID:            ids.assign(p["id"], i),
			Name:          textOr(p["name"], FallbackPartName),
			Description:   textOr(p["description"], FallbackDescription),
			Specs:         stringList(p["specs"]),
			Compatibility: stringList(p["compatibility"]),
			Link:          textOr(p["link"], FallbackLink),
		})
	}
	return out
}

// Probability coerces v to an integer percentage in [1,99]. Non-numeric
// input becomes 50 before rounding; halves round up.
func Probability(v any) int {
	f := number(v)
	if math.IsNaN(f) {
		f = DefaultProbability
	}
	f = math.Floor(f + 0.5)

	switch {
	case f < MinProbability:
		return MinProbability
	case f > MaxProbability:
		return MaxProbability
	}
	return int(f)
}

// number mirrors a lenient numeric read: NaN means "not a number".
func number(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		return numericString(n)
	}
	return math.NaN()
}

// numericString accepts decimal literals and the exact "Infinity" spelling.
// Other inf/nan spellings, hex and underscores are non-numeric; overflow
// keeps its sign as infinity.
func numericString(s string) float64 {
	s = strings.TrimSpace(s)
	body := s
	if strings.HasPrefix(body, "+") || strings.HasPrefix(body, "-") {
		body = body[1:]
	}
	if body == "Infinity" {
		if strings.HasPrefix(s, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	if body == "" || strings.ContainsAny(strings.ToLower(body), "xpni_") {
		return math.NaN()
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

func diagrams(v any, pos int) []string {
	if list := stringList(v); len(list) > 0 {
		return list
	}
	n := len(DiagramPool)
	return []string{DiagramPool[pos%n], DiagramPool[(pos+1)%n]}
}

func partRefs(v any) []PartRef {
	items, _ := v.([]any)
	out := make([]PartRef, 0, len(items))
	for _, item := range items {
		switch p := item.(type) {
		case map[string]any:
			out = append(out, PartRef{
				Name: textOr(p["name"], FallbackPartName),
				Link: textOr(p["link"], FallbackLink),
			})
		case string:
			if strings.TrimSpace(p) != "" {
				out = append(out, PartRef{Name: p, Link: FallbackLink})
			}
		}
	}
	return out
}

func sources(v any) []Source {
	items, _ := v.([]any)
	out := make([]Source, 0, len(items))
	for _, item := range items {
		switch s := item.(type) {
		case map[string]any:
			href := textOr(s["href"], "")
			label := textOr(s["label"], href)
			if label == "" {
				continue
			}
			out = append(out, Source{Label: label, Href: href})
		case string:
			if strings.TrimSpace(s) != "" {
				out = append(out, Source{Label: s})
			}
		}
	}
	return out
}

// stringList keeps scalar entries as strings and drops everything else.
func stringList(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch s := item.(type) {
		case string:
			if strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		case float64:
			out = append(out, strconv.FormatFloat(s, 'f', -1, 64))
		case json.Number:
			out = append(out, s.String())
		case bool:
			out = append(out, strconv.FormatBool(s))
		}
	}
	return out
}

func textOr(v any, def string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return def
}

// idSet hands out positive ids unique within one collection. A provider id
// is kept when it is a positive integer not yet taken; otherwise the
// 1-based position is used, bumped past any collision.
type idSet map[int]bool

func newIDSet() idSet { return idSet{} }

func (s idSet) assign(v any, pos int) int {
	if id, ok := positiveInt(v); ok && !s[id] {
		s[id] = true
		return id
	}
	id := pos + 1
	for s[id] {
		id++
	}
	s[id] = true
	return id
}

func positiveInt(v any) (int, bool) {
	f := number(v)
	if math.IsNaN(f) || f < 1 || f > math.MaxInt32 || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
