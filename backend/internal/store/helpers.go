package store

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"suitemate/backend/internal/network"
)

// ============================================================================
// Helper Functions
// ============================================================================

func getInt64FromRecord(record *neo4j.Record, key string) int64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	if i, ok := val.(int64); ok {
		return i
	}
	if i, ok := val.(int); ok {
		return int64(i)
	}
	return 0
}

func getMapFromRecord(record *neo4j.Record, key string) map[string]interface{} {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return map[string]interface{}{}
	}
	if m, ok := val.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

func getStringFromMap(m map[string]interface{}, key string) string {
	if str, ok := m[key].(string); ok {
		return str
	}
	return ""
}

func getInt64FromMap(m map[string]interface{}, key string) int64 {
	switch v := m[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func userToProps(u *network.User) map[string]interface{} {
	return map[string]interface{}{
		"username":      u.Username,
		"name":          u.Name,
		"contact":       u.Contact,
		"age":           int64(u.Age),
		"gender":        u.Gender,
		"gender_pref":   u.GenderPref,
		"smoke":         u.Smoke,
		"rent":          int64(u.Rent),
		"pets":          u.Pets,
		"location":      u.Location,
		"noise":         int64(u.Noise),
		"guests":        u.Guests,
		"cleanliness":   int64(u.Cleanliness),
		"num_roommates": int64(u.NumRoommates),
	}
}

func userFromProps(props map[string]interface{}) *network.User {
	return &network.User{
		ID:           getInt64FromMap(props, "id"),
		Username:     getStringFromMap(props, "username"),
		Name:         getStringFromMap(props, "name"),
		Contact:      getStringFromMap(props, "contact"),
		Age:          int(getInt64FromMap(props, "age")),
		Gender:       getStringFromMap(props, "gender"),
		GenderPref:   getBoolFromMap(props, "gender_pref"),
		Smoke:        getBoolFromMap(props, "smoke"),
		Rent:         int(getInt64FromMap(props, "rent")),
		Pets:         getBoolFromMap(props, "pets"),
		Location:     getStringFromMap(props, "location"),
		Noise:        int(getInt64FromMap(props, "noise")),
		Guests:       getBoolFromMap(props, "guests"),
		Cleanliness:  int(getInt64FromMap(props, "cleanliness")),
		NumRoommates: int(getInt64FromMap(props, "num_roommates")),
	}
}
