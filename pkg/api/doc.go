// Package api defines the request and response messages of the hotelbilling
// RPC services. Messages are plain structs carried as JSON; see package
// apiconnect for the procedures that exchange them.
package api
