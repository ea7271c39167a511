// Package api contains the HTTP handlers for the application's REST
// surface: authentication, feature screens, synchronous generation, and
// export download.
package api
