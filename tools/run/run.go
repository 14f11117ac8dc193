// Package run implements the faultmon run command. It runs a command which
// executes firmware, e.g. an emulator or a probe's SWO viewer, and stops it
// at the first fault report in its output.
package run

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"os/signal"

	pty "github.com/aymanbagabas/go-pty"
	"github.com/buildkite/shellwords"

	"github.com/clktmr/cortexm/fault"
	"github.com/clktmr/cortexm/tools/decode"
)

const usageString = `Run firmware and wait for a fault report.

Usage: %s [flags] <command>

The command is split into arguments like a shell would do. It runs inside a
pseudo terminal, so its output isn't buffered. faultmon exits with status 1
after the first valid fault report, otherwise with the command's status.

`

var (
	flags = flag.NewFlagSet("run", flag.ExitOnError)

	quiet = flags.Bool("q", false, "don't copy the command's output")
)

var errNoCommand = errors.New("empty command")

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "run")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(1)
	}

	argv, err := Command(flags.Arg(0))
	if err != nil {
		log.Fatalln("run:", err)
	}

	p, err := pty.New()
	if err != nil {
		log.Fatalln("open pty:", err)
	}
	defer p.Close()

	cmd := p.Command(argv[0], argv[1:]...)
	if err = cmd.Start(); err != nil {
		log.Fatalln("start command:", err)
	}

	sigintr := make(chan os.Signal, 1)
	signal.Notify(sigintr, os.Interrupt)
	go func() {
		<-sigintr
		if err := processGroupKill(cmd.Process); err != nil {
			log.Println(err)
		}
	}()

	go io.Copy(p, os.Stdin)

	// Reading the pty fails once the command exited and the pty is closed.
	exited := make(chan error, 1)
	go func() {
		exited <- cmd.Wait()
		p.Close()
	}()

	var out io.Writer = os.Stdout
	if *quiet {
		out = io.Discard
	}
	rep, _ := Watch(p, out)
	if rep != nil {
		log.Println(decode.Summary(rep))
		if err := processGroupKill(cmd.Process); err != nil {
			log.Println(err)
		}
		<-exited
		os.Exit(1)
	}

	err = <-exited
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ExitCode())
	}
	if err != nil {
		log.Fatalln(err)
	}
}

// Command splits a command line into its arguments.
func Command(line string) ([]string, error) {
	argv, err := shellwords.Split(line)
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 {
		return nil, errNoCommand
	}
	return argv, nil
}

// Watch copies r to w until the first valid fault report was read, which is
// returned. Corrupted reports are logged and skipped. If r ends before a
// report the reader's error or fault.ErrNoReport is returned.
func Watch(r io.Reader, w io.Writer) (*fault.Report, error) {
	s := fault.NewReportScanner(io.TeeReader(r, w))
	for s.Scan() {
		rep, err := s.Report()
		if err != nil {
			log.Println("skipping report:", err)
			continue
		}
		return &rep, nil
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return nil, fault.ErrNoReport
}
