// Package diagnosis holds the UI-ready result of one assistant turn and the
// normalizer that builds it from untrusted provider output.
package diagnosis

type Kind string

const (
	KindDiagnosis Kind = "diagnosis"
	KindParts     Kind = "parts"
	KindText      Kind = "text"
)

func (k Kind) Valid() bool {
	switch k {
	case KindDiagnosis, KindParts, KindText:
		return true
	}
	return false
}

// ChatResult is always fully defaulted: collections are never nil.
type ChatResult struct {
	Kind      Kind        `json:"kind"`
	Message   string      `json:"message"`
	Diagnoses []Diagnosis `json:"diagnoses"`
	Parts     []PartSpec  `json:"parts"`
}

type Diagnosis struct {
	ID          int     `json:"id"`
	Summary     string  `json:"summary"`
	Probability int     `json:"probability"`
	Details     Details `json:"details"`
}

type Details struct {
	Steps     []string  `json:"steps"`
	Specs     []string  `json:"specs"`
	Parts     []PartRef `json:"parts"`
	Diagrams  []string  `json:"diagrams"`
	Rationale string    `json:"rationale"`
	Sources   []Source  `json:"sources"`
}

type PartRef struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

type Source struct {
	Label string `json:"label"`
	Href  string `json:"href,omitempty"`
}

type PartSpec struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Specs         []string `json:"specs"`
	Compatibility []string `json:"compatibility"`
	Link          string   `json:"link"`
}

// Body is the kind-discriminated view of a ChatResult.
// Implemented by DiagnosisBody, PartsBody and TextBody only.
type Body interface {
	body()
}

type DiagnosisBody struct {
	Message   string
	Diagnoses []Diagnosis
}

type PartsBody struct {
	Message string
	Parts   []PartSpec
}

type TextBody struct {
	Message string
}

func (DiagnosisBody) body() {}
func (PartsBody) body()     {}
func (TextBody) body()      {}

// Body selects the collection that is meaningful for r.Kind.
func (r ChatResult) Body() Body {
	switch r.Kind {
	case KindDiagnosis:
		return DiagnosisBody{Message: r.Message, Diagnoses: r.Diagnoses}
	case KindParts:
		return PartsBody{Message: r.Message, Parts: r.Parts}
	default:
		return TextBody{Message: r.Message}
	}
}
