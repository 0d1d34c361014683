package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/jcorbin/ooforth/internal/console"
	"github.com/jcorbin/ooforth/internal/logio"
	"github.com/jcorbin/ooforth/internal/panicerr"
)

func main() {
	var log logio.Logger
	log.SetOutput(os.Stderr)

	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	cfg, err := parseConfig(fs, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	} else if err != nil {
		log.Errorf("%v", err)
		os.Exit(2)
	}

	err = run(context.Background(), cfg, &log)
	if stack := panicerr.Stack(err); stack != "" {
		log.Printf("PANIC", "%s", stack)
	}
	log.ErrorIf(err)
	os.Exit(log.ExitCode())
}

func run(ctx context.Context, cfg config, log *logio.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	if cfg.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout.Duration)
		defer cancel()
	}

	opts := cfg.options()
	if cfg.Trace {
		commonlog.Configure(2, nil)
		opts = append(opts, WithLogf(commonlog.GetLogger("ooforth.vm").Debugf))
	}

	for _, name := range cfg.Preload {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("failed to open preload: %w", err)
		}
		opts = append(opts, WithInput(f))
	}

	var con *console.Console
	if fd := int(os.Stdin.Fd()); cfg.Console && console.IsTerminal(fd) {
		var err error
		con, err = console.Open(fd, os.Stdin, os.Stdout)
		if err != nil {
			return fmt.Errorf("failed to open console: %w", err)
		}
		opts = append(opts, WithInput(con), WithOutput(con), WithPrompt(true))
	} else {
		opts = append(opts, WithInput(os.Stdin), WithOutput(os.Stdout))
	}

	vm := New(opts...)

	done := make(chan error, 1)
	go func() {
		defer close(done)
		err := vm.Run(ctx)
		if cfg.Dump {
			lw := logio.Writer{Logf: log.Leveledf("DUMP")}
			vm.Dump(&lw)
			lw.Close()
		}
		if cerr := vm.Close(); err == nil {
			err = cerr
		}
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		// the VM may be blocked reading input, so don't wait on it; the
		// terminal still needs to be restored
		if con != nil {
			con.Close()
		}
		return ctx.Err()
	}
}
