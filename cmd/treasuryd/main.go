package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/weave-treasury"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".treasuryd")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("treasuryd")
	fmt.Println("          Treasury reward distribution node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize node configuration, admin key and genesis file")
	fmt.Println("start     Produce blocks from transactions found in the mempool directory")
	fmt.Println("tx        Sign an administrative transaction and add it to the mempool")
	fmt.Println("show      Print the treasury state of the last block")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.treasuryd")`)
}

// command is the signature shared by all subcommands.
type command func(logger log.Logger, home string, args []string, out io.Writer) error

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "treasuryd")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	commands := map[string]command{
		"init":  cmdInit,
		"start": cmdStart,
		"tx":    cmdTx,
		"show":  cmdShow,
	}

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "version":
		fmt.Println(weave.Version())
	default:
		run, ok := commands[cmd]
		if !ok {
			err = fmt.Errorf("unknown command: %s", cmd)
			break
		}
		err = run(logger, *varHome, rest, os.Stdout)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
