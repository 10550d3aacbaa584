package main

import (
	"log"
	"os"

	"golang.org/x/term"

	"github.com/trezcool/trackademics/core"
)

func main() {
	logger := log.New(os.Stderr, "CLI : ", log.LstdFlags)
	conf := core.NewConfig()

	cli := commandLine{
		client: newAPIClient(conf.CLI.BaseURL, conf.CLI.Timeout),
		out:    os.Stdout,
		color:  term.IsTerminal(int(os.Stdout.Fd())),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("error: %s\n", err)
		}
		os.Exit(1)
	}
}
