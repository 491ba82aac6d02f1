package cli

import (
	"bufio"   // Line input
	"context" // Request scoping
	"io"      // Input and output streams
	"os"      // Terminal detection

	"payment_tracker/internal/client/api"     // Server client types
	"payment_tracker/internal/client/session" // Auth state and routes
	"payment_tracker/internal/domain"         // Payment types
)

// Service is the server API the commands use. *api.Client implements it.
type Service interface {
	Register(ctx context.Context, username, password string) (api.Account, error)
	Login(ctx context.Context, username, password string) error
	Profile(ctx context.Context) (api.Account, error)
	CreatePayment(ctx context.Context, in api.PaymentInput) (domain.Payment, error)
	ListPayments(ctx context.Context) ([]domain.Payment, error)
	GetPayment(ctx context.Context, id uint) (domain.Payment, error)
	Stats(ctx context.Context) (domain.PaymentStats, error)
}

// App wires the REPL to a server and a session.
type App struct {
	svc      Service                             // Server API
	sess     *session.Session                    // Auth state and current route
	reader   *bufio.Reader                       // Command and form input
	out      io.Writer                           // Everything the user sees
	password func(prompt string) (string, error) // Hidden input on a terminal
}

// NewApp returns an app reading commands from in and writing to out.
// Passwords are read without echo when in is a terminal.
func NewApp(svc Service, sess *session.Session, in io.Reader, out io.Writer) *App {
	a := &App{
		svc:    svc,
		sess:   sess,
		reader: bufio.NewReader(in),
		out:    out,
	}
	a.password = a.readLine // Piped input echoes nothing anyway
	if f, ok := in.(*os.File); ok && isTerminal(int(f.Fd())) {
		a.password = func(prompt string) (string, error) { return readHidden(f, prompt, out) }
	}
	return a
}
