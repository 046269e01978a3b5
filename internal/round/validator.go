package round

import (
	"fmt"

	"github.com/sesigl/ai-coding-arena/internal/errors"
	"github.com/sesigl/ai-coding-arena/internal/participant"
)

// The eligibility checks below are pure and stateless; they take the round's
// current author pointers as input and are consulted before every state
// mutation that involves a participant.

// RequireBaselineAuthor fails unless p is the round's baseline author.
func RequireBaselineAuthor(p, baselineAuthor participant.ID) error {
	if p != baselineAuthor {
		return errors.NewInvalidTransition("requireBaselineAuthor",
			fmt.Sprintf("only the baseline author %s may act here", baselineAuthor)).
			WithParticipant(p.String())
	}
	return nil
}

// RequireNotBaselineAuthor fails when p is the round's baseline author. The
// baseline author can never be the round's bug injector or fixer.
func RequireNotBaselineAuthor(p, baselineAuthor participant.ID) error {
	if p == baselineAuthor {
		return errors.NewInvalidTransition("requireNotBaselineAuthor",
			"the baseline author may not take another role in the same round").
			WithParticipant(p.String())
	}
	return nil
}

// RequireNotBugAuthor fails when p is the round's bug author. The injector can
// never fix its own bug. An empty bugAuthor means no injection succeeded yet,
// in which case every participant passes.
func RequireNotBugAuthor(p, bugAuthor participant.ID) error {
	if bugAuthor != "" && p == bugAuthor {
		return errors.NewInvalidTransition("requireNotBugAuthor",
			"the bug author may not fix its own bug").
			WithParticipant(p.String())
	}
	return nil
}
