package server

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/rentbook/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind  = "bind"
	flagDebug = "debug"

	// DefaultBind is where the application listens for tendermint.
	DefaultBind = "tcp://localhost:26658"
)

type startArgs struct {
	bind  string
	debug bool
}

func parseStartArgs(args []string) (startArgs, error) {
	var a startArgs
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&a.bind, flagBind, DefaultBind, "address server listens on")
	startFlags.BoolVar(&a.debug, flagDebug, false, "call stack returned on error")
	if err := startFlags.Parse(args); err != nil {
		return a, errors.Wrap(errors.ErrInput, err.Error())
	}
	return a, nil
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// StartCmd builds the application and serves it over the ABCI socket
// until the process receives SIGINT or SIGTERM.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	a, err := parseStartArgs(args)
	if err != nil {
		return err
	}

	app, err := gen(home, logger, a.debug)
	if err != nil {
		return errors.Wrap(err, "create application")
	}

	logger.Info("Starting ABCI app", "bind", a.bind)
	svr, err := server.NewServer(a.bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrState, "start server: %s", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	s := <-sig
	logger.Info("Stopping ABCI app", "signal", s.String())
	return svr.Stop()
}
