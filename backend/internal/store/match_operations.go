package store

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"suitemate/backend/internal/network"
	apperrors "suitemate/backend/pkg/errors"
)

// ============================================================================
// Match Operations
// ============================================================================

// RecordMatch stores an undirected MATCHED relationship between two users.
// Missing user nodes are created with only their identity.
func (r *Repository) RecordMatch(ctx context.Context, userID, matchID int64) (err error) {
	defer r.observe("record_match", time.Now(), &err)

	if userID == matchID {
		return apperrors.NewInvalidConnection(userID)
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		MERGE (u1:User {id: $userID})
		MERGE (u2:User {id: $matchID})
		MERGE (u1)-[m:MATCHED]-(u2)
		ON CREATE SET m.matched_at = datetime($now)
	`

	_, err = session.Run(ctx, query, map[string]interface{}{
		"userID":  userID,
		"matchID": matchID,
		"now":     now,
	})
	if err != nil {
		return apperrors.NewStoreQueryFailed("record match", err)
	}

	return nil
}

// LoadMatches returns every stored match once, with Source < Target
func (r *Repository) LoadMatches(ctx context.Context) (matches []network.Edge, err error) {
	defer r.observe("load_matches", time.Now(), &err)

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u1:User)-[:MATCHED]-(u2:User)
		WHERE u1.id < u2.id
		RETURN DISTINCT u1.id AS source, u2.id AS target
		ORDER BY source, target
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("load matches", err)
	}

	matches = []network.Edge{}
	for result.Next(ctx) {
		record := result.Record()
		matches = append(matches, network.Edge{
			Source: getInt64FromRecord(record, "source"),
			Target: getInt64FromRecord(record, "target"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewStoreQueryFailed("load matches", err)
	}

	return matches, nil
}
