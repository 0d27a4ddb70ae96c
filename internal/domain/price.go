package domain

import (
	"encoding/json"
	"strconv"
)

// PriceKind tags the shape the provider used for a match's price field.
type PriceKind int

const (
	// PriceAbsent means the listing carried no price field at all.
	PriceAbsent PriceKind = iota
	// PriceDisplay means the price came as a formatted display string.
	PriceDisplay
	// PriceStructured means the price came as an object with a display
	// value and/or an already-extracted numeric value.
	PriceStructured
)

// PricePayload is the variant-shaped price attached to a visual match.
// The provider sends either a plain string, an object with "value" and
// "extracted_value" fields, or nothing. It is decoded once here so the rest
// of the pipeline never branches on payload shape.
type PricePayload struct {
	Kind         PriceKind
	Display      string
	Extracted    float64
	HasExtracted bool
}

type structuredPrice struct {
	Value          string      `json:"value"`
	ExtractedValue json.Number `json:"extracted_value"`
}

// UnmarshalJSON accepts a string, a structured object, or null.
func (p *PricePayload) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = PricePayload{Kind: PriceAbsent}
		return nil
	}

	var display string
	if err := json.Unmarshal(data, &display); err == nil {
		*p = PricePayload{Kind: PriceDisplay, Display: display}
		return nil
	}

	var structured structuredPrice
	if err := json.Unmarshal(data, &structured); err != nil {
		// Unrecognised shape degrades to "no price", never an error.
		*p = PricePayload{Kind: PriceAbsent}
		return nil
	}

	p.Kind = PriceStructured
	p.Display = structured.Value
	if structured.ExtractedValue != "" {
		if v, err := structured.ExtractedValue.Float64(); err == nil {
			p.Extracted = v
			p.HasExtracted = true
		}
	}
	return nil
}

// MarshalJSON round-trips the payload in the shape it arrived in.
func (p PricePayload) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PriceDisplay:
		return json.Marshal(p.Display)
	case PriceStructured:
		out := map[string]interface{}{"value": p.Display}
		if p.HasExtracted {
			out["extracted_value"] = p.Extracted
		}
		return json.Marshal(out)
	default:
		return []byte("null"), nil
	}
}

// ExtractedString formats the extracted numeric value without trailing
// zeros, e.g. 660 not 660.000000.
func (p PricePayload) ExtractedString() string {
	return strconv.FormatFloat(p.Extracted, 'f', -1, 64)
}
