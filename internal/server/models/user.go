// Package models holds the persisted entities shared by repositories and services.
package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string
	Name         string
	Email        string
	Avatar       string
	PasswordHash string
	Followers    []Follower
	Date         time.Time
}

// Follower is a relationship record owned by the followed user: User is the
// id of the follower. Followers are kept newest first.
type Follower struct {
	User string
	Date time.Time
}

// HasFollower reports whether userID already follows u.
func (u *User) HasFollower(userID string) bool {
	return u.followerIndex(userID) >= 0
}

func (u *User) followerIndex(userID string) int {
	for i, f := range u.Followers {
		if f.User == userID {
			return i
		}
	}
	return -1
}

// AddFollower prepends a record for userID. It returns false and leaves u
// unchanged when userID is already a follower.
func (u *User) AddFollower(userID string, at time.Time) bool {
	if u.HasFollower(userID) {
		return false
	}
	u.Followers = append([]Follower{{User: userID, Date: at}}, u.Followers...)
	return true
}

// RemoveFollower drops the record for userID, keeping the relative order of
// the others. It returns false when userID is not a follower.
func (u *User) RemoveFollower(userID string) bool {
	i := u.followerIndex(userID)
	if i < 0 {
		return false
	}
	u.Followers = append(u.Followers[:i:i], u.Followers[i+1:]...)
	return true
}

// Clone returns a deep copy so callers cannot alias stored state.
func (u *User) Clone() *User {
	c := *u
	if u.Followers != nil {
		c.Followers = make([]Follower, len(u.Followers))
		copy(c.Followers, u.Followers)
	}
	return &c
}
