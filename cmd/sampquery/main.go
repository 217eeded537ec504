// Command sampquery is a CLI client for the SA-MP server query protocol.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"

	"github.com/lanikai/sampquery"
)

var (
	flagTimeout    time.Duration
	flagRetries    uint32
	flagHelp       bool
	flagNoColor    bool
)

func init() {
	flag.DurationVarP(&flagTimeout, "timeout", "t", time.Second, "Per-attempt response timeout")
	flag.Uint32VarP(&flagRetries, "retries", "r", 3, "Total number of attempts before giving up")
	flag.BoolVarP(&flagHelp, "help", "h", false, "Print usage information and exit")
	flag.BoolVarP(&flagNoColor, "no-color", "", false, "Disable colored output")
}

const usage = `Query SA-MP (San Andreas Multiplayer) game servers

Usage: sampquery [OPTION]... COMMAND HOST:PORT [ARG]...

Commands:
  info                   Server name, player count, gamemode, language
  rules                  Server-defined rule table
  players                Connected player names and scores
  players-detailed       Connected players with id and ping
  ping                   Round-trip time to the server
  rcon PASSWORD COMMAND  Execute an RCON command

Options:
  -t, --timeout=DURATION  Per-attempt response timeout (default: 1s)
  -r, --retries=NUM       Total number of attempts before giving up (default: 3)
      --no-color          Disable colored output
  -h, --help              Print this message and exit
`

func fail(format string, a ...interface{}) {
	red := color.New(color.FgRed)
	red.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

func main() {
	flag.Parse()

	if flagNoColor {
		color.NoColor = true
	}
	if flagHelp {
		fmt.Print(usage)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	command, target := args[0], args[1]

	peer, err := net.ResolveUDPAddr("udp4", target)
	if err != nil {
		fail("invalid address %q: %v", target, err)
	}

	client, err := sampquery.Connect(peer, sampquery.ClientConfig{
		Timeout:    flagTimeout,
		MaxRetries: flagRetries,
	})
	if err != nil {
		fail("connect: %v", exitReason(err))
	}
	defer client.Close()

	ctx := context.Background()

	switch command {
	case "info":
		info, err := client.QueryInfo(ctx)
		if err != nil {
			fail("info: %v", exitReason(err))
		}
		printInfo(info)

	case "rules":
		rules, err := client.QueryRules(ctx)
		if err != nil {
			fail("rules: %v", exitReason(err))
		}
		printRules(rules)

	case "players":
		list, err := client.QueryClientList(ctx)
		if err != nil {
			fail("players: %v", exitReason(err))
		}
		printPlayers(list)

	case "players-detailed":
		list, err := client.QueryDetailedPlayerInfo(ctx)
		if err != nil {
			fail("players-detailed: %v", exitReason(err))
		}
		printDetailedPlayers(list)

	case "ping":
		p, err := client.QueryPing(ctx)
		if err != nil {
			fail("ping: %v", exitReason(err))
		}
		green := color.New(color.FgGreen)
		green.Println(p.String())

	case "rcon":
		if len(args) < 4 {
			fail("rcon requires a password and a command")
		}
		password, rconCommand := args[2], args[3]
		resp, err := client.Rcon(ctx, password, rconCommand)
		if err != nil {
			fail("rcon: %v", exitReason(err))
		}
		fmt.Println(resp.Message)

	default:
		fail("unrecognized command %q", command)
	}
}

// exitReason returns the message printed for a failed command: the Error()
// string of err, which for a *sampquery.Error starts with its Kind.
func exitReason(err error) string {
	if serr, ok := err.(*sampquery.Error); ok {
		return serr.Error()
	}
	return err.Error()
}

func printInfo(info sampquery.ServerInfo) {
	cyan := color.New(color.FgCyan)
	cyan.Println(info.Hostname)
	fmt.Printf("players:  %d/%d\n", info.Players, info.MaxPlayers)
	fmt.Printf("gamemode: %s\n", info.Gamemode)
	fmt.Printf("language: %s\n", info.Language)
	fmt.Printf("password: %v\n", info.Password)
}

func printRules(rules sampquery.ServerRules) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for name, value := range rules.Rules {
		fmt.Fprintf(w, "%s\t%s\n", name, value)
	}
	w.Flush()
}

func printPlayers(list sampquery.PlayerList) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSCORE")
	for _, p := range list.Players {
		fmt.Fprintf(w, "%s\t%d\n", p.Name, p.Score)
	}
	w.Flush()
	fmt.Println(strconv.Itoa(len(list.Players)) + " player(s)")
}

func printDetailedPlayers(list sampquery.DetailedPlayerList) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSCORE\tPING")
	for _, p := range list.Players {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", p.ID, p.Name, p.Score, p.Ping)
	}
	w.Flush()
}
