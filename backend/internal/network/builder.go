package network

import (
	"fmt"
	"slices"
	"strings"

	apperrors "suitemate/backend/pkg/errors"
)

// Semantics decides which pairs of a match batch get connected
type Semantics int

const (
	// Star connects the anchor to each member; members stay unconnected
	Star Semantics = iota
	// Clique additionally connects every pair of members
	Clique
)

func (s Semantics) String() string {
	switch s {
	case Star:
		return "star"
	case Clique:
		return "clique"
	default:
		return fmt.Sprintf("semantics(%d)", int(s))
	}
}

// ParseSemantics maps "star" or "clique" to a Semantics. Empty means Star.
func ParseSemantics(s string) (Semantics, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "star":
		return Star, nil
	case "clique":
		return Clique, nil
	default:
		return Star, fmt.Errorf("unknown match semantics %q", s)
	}
}

// MatchBatch maps an anchor identity to the users it matched with
type MatchBatch map[int64][]*User

// CreateNetwork builds a fresh network from batches using star semantics:
// every anchor is connected to each of its members and nothing else.
func CreateNetwork(batches []MatchBatch) (*Network, error) {
	return CreateNetworkWith(batches, Star)
}

// CreateNetworkWith builds a fresh network from batches.
//
// Batches apply in order and anchors inside a batch apply in ascending
// identity order. Every anchor gets a node even when it has no members.
// A member equal to its anchor fails with ErrInvalidConnection and no
// network is returned.
func CreateNetworkWith(batches []MatchBatch, semantics Semantics) (*Network, error) {
	net := New()

	for i, batch := range batches {
		anchors := make([]int64, 0, len(batch))
		for anchor := range batch {
			anchors = append(anchors, anchor)
		}
		slices.Sort(anchors)

		for _, anchor := range anchors {
			if err := net.connectGroup(anchor, batch[anchor], semantics); err != nil {
				return nil, fmt.Errorf("batch %d anchor %d: %w", i, anchor, err)
			}
		}
	}

	return net, nil
}

func (n *Network) connectGroup(anchor int64, members []*User, semantics Semantics) error {
	for _, m := range members {
		if m == nil {
			return apperrors.ErrInvalidUser
		}
		if m.ID == anchor {
			return apperrors.NewInvalidConnection(anchor)
		}
	}

	hub := n.ensure(anchor, nil)
	for _, m := range members {
		n.connect(hub, n.ensure(m.ID, m))
	}

	if semantics != Clique {
		return nil
	}
	for i := range members {
		for j := i + 1; j < len(members); j++ {
			// the same member listed twice is one element of the group
			if members[i].ID == members[j].ID {
				continue
			}
			n.connect(n.nodes[members[i].ID], n.nodes[members[j].ID])
		}
	}
	return nil
}
