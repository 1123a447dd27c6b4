package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/rentbook"
	rentald "github.com/iov-one/rentbook/cmd/rentald/app"
	"github.com/iov-one/rentbook/commands"
	"github.com/iov-one/rentbook/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".rentald")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("rentald")
	fmt.Println("          Rental escrow node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("validate  Load genesis files against an empty store")
	fmt.Println("testgen   Write example objects in json and binary form")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.rentald")`)
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "rentald")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(rentald.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(rentald.GenerateApp, logger, *varHome, rest)
	case "validate":
		err = server.ValidateGenesis(rentald.Initializers(), rest)
	case "testgen":
		err = commands.TestGenCmd(rentald.Examples(), rest)
	case "version":
		fmt.Println(rentbook.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
