package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if u := a.session.User(); u != nil {
		s = u.Email + " "
	}
	s = s + string(a.session.Status())
	return fmt.Sprintf("(%s)", s)
}

// Root prints the welcome banner and runs the REPL over stdin.
func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to TripKeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
