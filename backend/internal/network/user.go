package network

// User is a registered roommate-seeker as supplied by the persistence layer.
// The network keys nodes by ID and never mutates the profile.
type User struct {
	ID           int64  `json:"id" yaml:"id"`
	Username     string `json:"username,omitempty" yaml:"username,omitempty"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	Contact      string `json:"contact,omitempty" yaml:"contact,omitempty"`
	Age          int    `json:"age,omitempty" yaml:"age,omitempty"`
	Gender       string `json:"gender,omitempty" yaml:"gender,omitempty"`
	GenderPref   bool   `json:"gender_pref,omitempty" yaml:"gender_pref,omitempty"`
	Smoke        bool   `json:"smoke,omitempty" yaml:"smoke,omitempty"`
	Rent         int    `json:"rent,omitempty" yaml:"rent,omitempty"`
	Pets         bool   `json:"pets,omitempty" yaml:"pets,omitempty"`
	Location     string `json:"location,omitempty" yaml:"location,omitempty"`
	Noise        int    `json:"noise,omitempty" yaml:"noise,omitempty"`
	Guests       bool   `json:"guests,omitempty" yaml:"guests,omitempty"`
	Cleanliness  int    `json:"cleanliness,omitempty" yaml:"cleanliness,omitempty"`
	NumRoommates int    `json:"num_roommates,omitempty" yaml:"num_roommates,omitempty"`
}
