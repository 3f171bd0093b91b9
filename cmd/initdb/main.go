// Command initdb loads the database schema script. Run it once before the server starts;
// a non-zero exit status means the schema was not applied.
package main

import (
	"context"
	"os"

	"github.com/cse340/motors/internal/initdb"
)

func main() {
	os.Exit(initdb.Main(context.Background(), os.Args[1:], os.Stdout))
}
