package myuuid

import "github.com/google/uuid"

// RealUUIDer issues random (version 4) uuids, used as cart uids.
type RealUUIDer struct{}

func (u RealUUIDer) Create() string {
	return uuid.NewString()
}
