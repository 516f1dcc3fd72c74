package utils

import (
	"os"
	"os/user"
)

// GetUsername returns the current username.
func GetUsername() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// GetHostname returns the system hostname.
func GetHostname() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", err
	}
	return hostname, nil
}

// Identity returns "user@host" for audit entries. Parts that cannot be
// determined are left out.
func Identity() string {
	username, _ := GetUsername()
	hostname, _ := GetHostname()
	switch {
	case username != "" && hostname != "":
		return username + "@" + hostname
	case username != "":
		return username
	default:
		return hostname
	}
}
