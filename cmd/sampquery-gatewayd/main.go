// Command sampquery-gatewayd runs an HTTP gateway in front of SA-MP server
// queries, for consumers that would rather speak JSON than UDP.
package main

import (
	"fmt"
	"net/http"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/lanikai/sampquery/internal/gateway"
	"github.com/lanikai/sampquery/internal/logging"
)

var (
	flagPort int
	flagHelp bool
)

func init() {
	flag.IntVarP(&flagPort, "port", "p", 8080, "HTTP port to listen on")
	flag.BoolVarP(&flagHelp, "help", "h", false, "Print usage information and exit")
}

const usage = `HTTP gateway for SA-MP server queries

Usage: sampquery-gatewayd [OPTION]...

Options:
  -p, --port=NUM  HTTP port to listen on (default: 8080)
  -h, --help      Print this message and exit

Routes:
  GET  /api/v1/servers/{host}:{port}/info
  GET  /api/v1/servers/{host}:{port}/rules
  GET  /api/v1/servers/{host}:{port}/players
  GET  /api/v1/servers/{host}:{port}/players/detailed
  GET  /api/v1/servers/{host}:{port}/ping
  GET  /api/v1/servers/{host}:{port}/watch  (WebSocket)
`

var log = logging.DefaultLogger.WithTag("gatewayd")

func main() {
	flag.Parse()
	if flagHelp {
		fmt.Print(usage)
		os.Exit(0)
	}

	addr := fmt.Sprintf(":%d", flagPort)
	log.Info("listening on %s", addr)

	server := gateway.NewServer()
	if err := http.ListenAndServe(addr, server); err != nil {
		log.Fatal(err)
	}
}
