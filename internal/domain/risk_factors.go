package domain

import "encoding/json"

// RiskFactorSet is an ordered multi-select of risk factors in which RiskNone
// never coexists with any other factor.
type RiskFactorSet struct {
	factors []RiskFactor
}

// NewRiskFactorSet builds a set by selecting each factor in order
func NewRiskFactorSet(factors ...RiskFactor) RiskFactorSet {
	var s RiskFactorSet
	for _, f := range factors {
		s.Select(f)
	}
	return s
}

// Toggle removes f if selected, otherwise selects it
func (s *RiskFactorSet) Toggle(f RiskFactor) {
	if s.Has(f) {
		s.remove(f)
		return
	}
	s.Select(f)
}

// Select adds f. Selecting RiskNone clears every other factor; selecting any
// other factor clears RiskNone.
func (s *RiskFactorSet) Select(f RiskFactor) {
	if f == "" {
		return
	}
	if f == RiskNone {
		s.factors = []RiskFactor{RiskNone}
		return
	}
	s.remove(RiskNone)
	if !s.Has(f) {
		s.factors = append(s.factors, f)
	}
}

func (s *RiskFactorSet) remove(f RiskFactor) {
	kept := s.factors[:0:0]
	for _, existing := range s.factors {
		if existing != f {
			kept = append(kept, existing)
		}
	}
	s.factors = kept
}

// Has reports whether f is selected
func (s RiskFactorSet) Has(f RiskFactor) bool {
	for _, existing := range s.factors {
		if existing == f {
			return true
		}
	}
	return false
}

// HasAny reports whether any of fs is selected
func (s RiskFactorSet) HasAny(fs ...RiskFactor) bool {
	for _, f := range fs {
		if s.Has(f) {
			return true
		}
	}
	return false
}

func (s RiskFactorSet) Len() int {
	return len(s.factors)
}

// List returns the selected factors in selection order
func (s RiskFactorSet) List() []RiskFactor {
	out := make([]RiskFactor, len(s.factors))
	copy(out, s.factors)
	return out
}

func (s RiskFactorSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

func (s *RiskFactorSet) UnmarshalJSON(data []byte) error {
	var raw []RiskFactor
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NewRiskFactorSet(raw...)
	return nil
}
