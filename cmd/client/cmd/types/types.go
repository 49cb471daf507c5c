// Package types holds the context keys shared between the root command and
// the subcommand packages. A dedicated package avoids an import cycle: root
// imports every subcommand package to register it.
package types

type contextKey string

// ClientAppKey is the context key under which the configured *client.App is
// passed from the root command to subcommands.
const ClientAppKey contextKey = "app"
