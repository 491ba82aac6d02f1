// Package cli is the interactive terminal front end of the payment tracker.
//
// The REPL offers two command sets. Signed out, the session sits in the
// (auth) group and only login, register, help and exit are accepted. Signed
// in, it sits in the (app) group and the dashboard, payment and profile
// commands become available. Every command moves the session to the screen
// it represents, so the session guard decides where the user really lands.
package cli
