package model

import "slices"

// Clan is a named group of players sharing a treasury
type Clan struct {
	Name     string     `json:"name"`
	Owner    PlayerID   `json:"owner"`
	Members  []PlayerID `json:"members"` // excludes the owner
	Treasury int64      `json:"treasury"`
	Licorice int64      `json:"licorice"`
}

// Size returns the number of players in the clan, owner included
func (c *Clan) Size() int {
	return len(c.Members) + 1
}

// HasPlayer reports whether the player is the owner or a member
func (c *Clan) HasPlayer(id PlayerID) bool {
	return c.Owner == id || ContainsSorted(c.Members, id)
}

// AllPlayers returns the owner followed by the members
func (c *Clan) AllPlayers() []PlayerID {
	return append([]PlayerID{c.Owner}, c.Members...)
}

// Clone returns a deep copy of the clan
func (c *Clan) Clone() *Clan {
	cp := *c
	cp.Members = slices.Clone(c.Members)
	if cp.Members == nil {
		cp.Members = []PlayerID{}
	}
	return &cp
}
