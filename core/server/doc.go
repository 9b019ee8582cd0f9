// Package server holds the HTTP control surface configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure for server settings such as the listen
// port and the API key protecting the sync endpoints.
package server
