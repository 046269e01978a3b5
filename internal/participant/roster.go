package participant

import (
	"github.com/sesigl/ai-coding-arena/internal/errors"
)

// Roster is the ordered list of competition participants. Order is significant:
// the baseline author rotates through the roster by round index, and role
// selection walks the roster front to back.
type Roster struct {
	members []ID
}

// NewRoster builds a roster from raw identifier tokens, validating each one.
// Duplicates are rejected because rotation and role selection assume distinct
// participants.
func NewRoster(raw []string) (*Roster, error) {
	members := make([]ID, 0, len(raw))
	seen := make(map[ID]struct{}, len(raw))
	for _, token := range raw {
		id, err := NewID(token)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			return nil, errors.Wrapf(errors.New("duplicate participant"), "roster entry %q", token)
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}
	return &Roster{members: members}, nil
}

// Size returns the number of participants.
func (r *Roster) Size() int { return len(r.members) }

// Members returns the participants in roster order. The returned slice is a
// copy; mutating it does not affect the roster.
func (r *Roster) Members() []ID {
	out := make([]ID, len(r.members))
	copy(out, r.members)
	return out
}

// BaselineAuthor returns the baseline author for the 1-based round number:
// participants[(round-1) mod N].
func (r *Roster) BaselineAuthor(round int) ID {
	return r.members[(round-1)%len(r.members)]
}

// Rotation returns the members in role-selection order for the 1-based round
// number: the round's baseline author first, then the rest cyclically. Role
// eligibility walks this order, so the injector and fixer rotate with the
// author instead of favoring the front of the roster every round.
func (r *Roster) Rotation(round int) []ID {
	n := len(r.members)
	start := (round - 1) % n
	out := make([]ID, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.members[(start+i)%n])
	}
	return out
}

// FirstExcluding returns the first roster member not contained in exclude, in
// roster order. The boolean is false when every member is excluded.
func (r *Roster) FirstExcluding(exclude ...ID) (ID, bool) {
	return firstExcluding(r.members, exclude)
}

// FirstInRotationExcluding is FirstExcluding over the round's rotation order.
func (r *Roster) FirstInRotationExcluding(round int, exclude ...ID) (ID, bool) {
	return firstExcluding(r.Rotation(round), exclude)
}

func firstExcluding(members []ID, exclude []ID) (ID, bool) {
	for _, m := range members {
		excluded := false
		for _, e := range exclude {
			if m == e {
				excluded = true
				break
			}
		}
		if !excluded {
			return m, true
		}
	}
	return "", false
}
