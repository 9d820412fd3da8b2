package dom

import (
	"fmt"

	"go.uber.org/multierr"
)

// Check verifies sibling ring invariants over the whole document and returns
// every violation found combined into a single error, nil when the document is
// consistent. Each reported problem wraps ErrBrokenRing.
//
// Check walks every slot and every ring, so it is meant for tests and
// troubleshooting rather than for hot paths.
func (d *Document) Check() (err error) {
	claimed := make(map[int32]int32, len(d.slots))

	for i := int32(1); i < int32(len(d.slots)); i++ {
		s := d.slots[i]
		switch s.kind {
		case KindText, KindElement:
			if (s.next == 0) != (s.prev == 0) {
				err = multierr.Append(err, brokenf("node %d has only one of next/prev links", i))
				continue
			}
			if s.next != 0 {
				if d.slots[s.next].prev != i || d.slots[s.prev].next != i {
					err = multierr.Append(err, brokenf("node %d links are not mirrored by its neighbours", i))
				}
			}
			if s.kind == KindText && s.ring != 0 {
				err = multierr.Append(err, brokenf("text node %d owns a ring", i))
			}
			if s.kind == KindElement {
				if r := s.ring; r == 0 || d.slots[r].kind != kindSentinel || d.slots[r].owner != i {
					err = multierr.Append(err, brokenf("element %d is not anchored by its own sentinel", i))
				}
			}
		case kindSentinel:
			if o := s.owner; o == 0 || d.slots[o].kind != KindElement || d.slots[o].ring != i {
				err = multierr.Append(err, brokenf("sentinel %d does not belong to its owner", i))
				continue
			}
			err = multierr.Append(err, d.checkRing(i, claimed))
		default:
			err = multierr.Append(err, brokenf("slot %d has unknown kind %d", i, s.kind))
		}
	}

	for i := int32(1); i < int32(len(d.slots)); i++ {
		s := d.slots[i]
		if s.kind != kindSentinel && s.next != 0 && claimed[i] == 0 {
			err = multierr.Append(err, brokenf("attached node %d is not in any sentinel ring", i))
		}
	}
	return err
}

// checkRing walks ring anchored at sentinel s and records its members.
func (d *Document) checkRing(s int32, claimed map[int32]int32) (err error) {
	prev := s
	i := d.slots[s].next
	for steps := 0; i != s; steps++ {
		if steps >= len(d.slots) || i == 0 {
			return brokenf("ring of sentinel %d does not close", s)
		}
		m := d.slots[i]
		if m.kind == kindSentinel {
			return brokenf("ring of sentinel %d contains another sentinel %d", s, i)
		}
		if m.prev != prev {
			err = multierr.Append(err, brokenf("node %d in ring of sentinel %d has wrong prev link", i, s))
		}
		if other, ok := claimed[i]; ok && other != s {
			err = multierr.Append(err, brokenf("node %d is in rings of sentinels %d and %d", i, other, s))
		}
		claimed[i] = s
		prev, i = i, m.next
	}
	if d.slots[s].prev != prev {
		err = multierr.Append(err, brokenf("sentinel %d has wrong prev link", s))
	}
	return err
}

func brokenf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBrokenRing, fmt.Sprintf(format, args...))
}
