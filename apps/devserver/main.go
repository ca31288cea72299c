package main

import (
	"log"
	"os"

	"github.com/AkashQuad/trackqfrontend/core"
	"github.com/AkashQuad/trackqfrontend/core/employee"
	emailsvc "github.com/AkashQuad/trackqfrontend/services/email"
	logsvc "github.com/AkashQuad/trackqfrontend/services/logger"
	"github.com/AkashQuad/trackqfrontend/services/stubapi"
)

func main() {
	conf, err := core.NewConfig()
	errAndDie(err)

	std := log.New(os.Stdout, "DEVSERVER : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewStdLogger(std)
	}

	var mailSvc core.EmailService
	if conf.Debug || conf.SendgridAPIKey == "" {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	store := stubapi.NewStore()
	errAndDie(seed(store))

	app := stubapi.NewServer(&stubapi.Options{
		Address:  conf.ServerAddress(),
		Conf:     conf,
		Logger:   logger,
		EmailSvc: mailSvc,
		Store:    store,
	})
	logger.Info("dev API listening on " + conf.ServerAddress())
	app.Start()
}

// seed creates a known admin account so the CLI can log in right away.
func seed(store *stubapi.Store) error {
	_, err := store.CreateEmployee(employee.Employee{
		Username: "admin",
		Email:    "admin@trackq.local",
		RoleID:   employee.RoleAdmin,
	}, "Adm1n$Dev!")
	return err
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
