package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate performs the structural checks the batch boundary enforces:
// field-level tags plus the cross-field leg invariants. Scoring itself
// never fails on content; validation only rejects records that are
// structurally unusable.
func (p *Prop) Validate() error {
	if p == nil {
		return fmt.Errorf("prop is nil")
	}

	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("prop %q failed structural validation: %w", p.ID, err)
	}

	// A ticket's legs array, when present, has length >= 2 (covered by the
	// min=2 tag); single bets never carry legs, and multi-leg bet types
	// must carry them.
	if p.BetType.IsMultiLeg() {
		if len(p.Legs) < 2 {
			return fmt.Errorf("prop %q: bet type %s requires at least 2 legs, got %d", p.ID, p.BetType, len(p.Legs))
		}
	} else if len(p.Legs) > 0 {
		return fmt.Errorf("prop %q: single bets must not carry legs", p.ID)
	}

	return nil
}
