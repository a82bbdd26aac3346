// Package config loads and validates application settings from the
// environment, giving the rest of the code typed access to server,
// database, auth, review and scheduler options.
package config
