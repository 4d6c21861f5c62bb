package network

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	apperrors "suitemate/backend/pkg/errors"
)

// BatchSpec is the wire form of a bulk match import. Members are referenced
// by identity and resolved against Users; identities missing from Users get
// a bare profile.
//
//	users:
//	  - id: 1
//	    name: Ada
//	batches:
//	  - anchor: 1
//	    members: [2, 3]
type BatchSpec struct {
	Users   []User       `json:"users" yaml:"users"`
	Batches []BatchEntry `json:"batches" yaml:"batches"`
}

type BatchEntry struct {
	Anchor  int64   `json:"anchor" yaml:"anchor"`
	Members []int64 `json:"members" yaml:"members"`
}

// DecodeBatchSpec reads a YAML (or JSON, which YAML accepts) batch document
func DecodeBatchSpec(r io.Reader) (*BatchSpec, error) {
	var spec BatchSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("batch document is empty")
		}
		return nil, fmt.Errorf("failed to decode batch document: %w", err)
	}
	return &spec, nil
}

// MatchBatches resolves the spec into one MatchBatch per entry, in order
func (s *BatchSpec) MatchBatches() ([]MatchBatch, error) {
	profiles := make(map[int64]*User, len(s.Users))
	for i := range s.Users {
		u := &s.Users[i]
		if _, dup := profiles[u.ID]; dup {
			return nil, fmt.Errorf("batch users: %w", apperrors.NewDuplicateUser(u.ID))
		}
		profiles[u.ID] = u
	}

	batches := make([]MatchBatch, 0, len(s.Batches))
	for _, entry := range s.Batches {
		members := make([]*User, 0, len(entry.Members))
		for _, id := range entry.Members {
			u, ok := profiles[id]
			if !ok {
				u = &User{ID: id}
				profiles[id] = u
			}
			members = append(members, u)
		}
		batches = append(batches, MatchBatch{entry.Anchor: members})
	}
	return batches, nil
}

// Build creates a network from the spec. Listed users that appear in no
// batch are added without matches, and anchors pick up their listed profile.
func (s *BatchSpec) Build(semantics Semantics) (*Network, error) {
	batches, err := s.MatchBatches()
	if err != nil {
		return nil, err
	}

	net, err := CreateNetworkWith(batches, semantics)
	if err != nil {
		return nil, err
	}

	for i := range s.Users {
		u := &s.Users[i]
		if net.HasUser(u.ID) {
			net.ensure(u.ID, u)
			continue
		}
		if err := net.AddUser(u); err != nil {
			return nil, err
		}
	}
	return net, nil
}
