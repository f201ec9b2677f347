//go:build profile

package main

import "github.com/pkg/profile"

// startProfile writes a CPU profile of the whole run to the working
// directory.
func startProfile() (stop func()) {
	return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop
}
