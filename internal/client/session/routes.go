package session

import (
	"strconv"
	"strings"
)

// Route groups. A location belongs to the group named by its first segment.
const (
	GroupAuth = "(auth)"
	GroupApp  = "(app)"
)

// Locations reachable in the client.
const (
	LoginRoute        = "/(auth)/login"
	RegisterRoute     = "/(auth)/register"
	HomeRoute         = "/(app)"
	AddPaymentRoute   = "/(app)/add-payment"
	ScannerRoute      = "/(app)/scanner"
	TransactionsRoute = "/(app)/transactions"
	ProfileRoute      = "/(app)/profile"
)

// TransactionRoute is the detail location for one payment.
func TransactionRoute(id uint) string {
	return TransactionsRoute + "/" + strconv.FormatUint(uint64(id), 10)
}

// Group returns the first path segment of location.
func Group(location string) string {
	first, _, _ := strings.Cut(strings.TrimPrefix(location, "/"), "/")
	return first
}

// Redirect is the guard rule. It reports where to send the user, if anywhere:
// signed-out users outside the auth group go to login, signed-in users inside
// the auth group go home. Its targets never redirect again.
func Redirect(authenticated bool, location string) (string, bool) {
	inAuthGroup := Group(location) == GroupAuth
	switch {
	case !authenticated && !inAuthGroup:
		return LoginRoute, true
	case authenticated && inAuthGroup:
		return HomeRoute, true
	}
	return "", false
}
