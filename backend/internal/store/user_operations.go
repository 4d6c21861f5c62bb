package store

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"suitemate/backend/internal/network"
	apperrors "suitemate/backend/pkg/errors"
)

// ============================================================================
// User Operations
// ============================================================================

// UpsertUser creates the user node or refreshes its profile properties
func (r *Repository) UpsertUser(ctx context.Context, u *network.User) (err error) {
	defer r.observe("upsert_user", time.Now(), &err)

	if u == nil {
		return apperrors.ErrInvalidUser
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		MERGE (u:User {id: $userID})
		ON CREATE SET u.created_at = datetime($now)
		SET u += $props,
		    u.updated_at = datetime($now)
	`

	_, err = session.Run(ctx, query, map[string]interface{}{
		"userID": u.ID,
		"props":  userToProps(u),
		"now":    now,
	})
	if err != nil {
		return apperrors.NewStoreQueryFailed("upsert user", err)
	}

	return nil
}

// FetchUser returns the stored profile for userID
func (r *Repository) FetchUser(ctx context.Context, userID int64) (user *network.User, err error) {
	defer r.observe("fetch_user", time.Now(), &err)

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $userID})
		RETURN properties(u) AS props
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
	})
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("fetch user", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, apperrors.NewStoreQueryFailed("fetch user", err)
		}
		return nil, apperrors.NewUserNotFound(userID)
	}

	return userFromProps(getMapFromRecord(result.Record(), "props")), nil
}

// LoadUsers returns every stored user ordered by identity
func (r *Repository) LoadUsers(ctx context.Context) (users []network.User, err error) {
	defer r.observe("load_users", time.Now(), &err)

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User)
		RETURN properties(u) AS props
		ORDER BY u.id
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("load users", err)
	}

	users = []network.User{}
	for result.Next(ctx) {
		users = append(users, *userFromProps(getMapFromRecord(result.Record(), "props")))
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewStoreQueryFailed("load users", err)
	}

	return users, nil
}

// Reset deletes every user and match
func (r *Repository) Reset(ctx context.Context) (err error) {
	defer r.observe("reset", time.Now(), &err)

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	if _, err := session.Run(ctx, `MATCH (u:User) DETACH DELETE u`, nil); err != nil {
		return apperrors.NewStoreQueryFailed("reset", err)
	}
	return nil
}
