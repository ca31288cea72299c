package main

import (
	"log"
	"os"

	"github.com/AkashQuad/trackqfrontend/core"
	"github.com/AkashQuad/trackqfrontend/core/session"
	logsvc "github.com/AkashQuad/trackqfrontend/services/logger"
	"github.com/AkashQuad/trackqfrontend/services/restapi"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "", 0)

	conf, err := core.NewConfig()
	errAndDie(err)

	store, err := session.NewStore(conf.StorePath)
	errAndDie(err)

	client := restapi.NewClient(conf, logsvc.NewStdLogger(logger))
	client.TokenSource = store.Token

	cli := commandLine{
		conf:   conf,
		store:  store,
		client: client,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
