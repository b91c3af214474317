package main

import (
	"fmt"
	"os"
	"strings"

	"mreyes/kuenta/cmd/batch"
	"mreyes/kuenta/cmd/categorize"
	"mreyes/kuenta/cmd/extract"
	"mreyes/kuenta/cmd/learn"
	"mreyes/kuenta/cmd/mappings"
	"mreyes/kuenta/cmd/root"
	"mreyes/kuenta/cmd/similar"
	"mreyes/kuenta/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// Environment first, quietly; commands log once the level is known.
	loadEnvSilently()

	logLevel := configureLogLevelDirectly()
	logging.SetAllLogLevels(logLevel)

	root.Init()

	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(learn.Cmd)
	root.Cmd.AddCommand(similar.Cmd)
	root.Cmd.AddCommand(mappings.Cmd)
}

func loadEnvSilently() {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return
	}
	_ = godotenv.Load(".env")
}

func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv("KUENTA_LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logrus.SetLevel(logLevel)
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
