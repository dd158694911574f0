package main

import (
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("stegegg")

var leveledLogBackend logging.LeveledBackend

func startLogging() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatter := logging.MustStringFormatter("%{level:8s} %{module:-18s} | %{message}")
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, formatter))
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

// setLogLevel applies a level name such as "debug" or "warning".
func setLogLevel(name string) {
	level, err := logging.LogLevel(name)
	if err != nil {
		log.Warningf("unknown log level %q, keeping %s", name, leveledLogBackend.GetLevel(""))
		return
	}
	leveledLogBackend.SetLevel(level, "")
}
