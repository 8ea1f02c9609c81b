// Command availd runs the product availability editor as a standalone HTTP service.
package main

import (
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"path"

	"github.com/shelfline/avail"
	"github.com/shelfline/avail/db"
	"github.com/shelfline/avail/web"
)

func main() {
	address := flag.String("address", "0.0.0.0", "address to bind the service to")
	port := flag.String("port", "8501", "port to bind the service to")
	configDir := flag.String("config", "", "configuration directory (defaults to the user config dir)")
	flag.Parse()

	if *configDir == "" {
		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			log.Fatalf("resolving user config dir: %v", err)
		}
		*configDir = path.Join(userConfigDir, "avail")
	}

	editor, err := avail.New(
		avail.WithConfigDir(*configDir),
	)
	if err != nil {
		log.Fatalf("configuring editor: %v", err)
	}

	logFile, err := os.OpenFile(path.Join(*configDir, "app.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		log.Fatalf("opening log file: %v", err)
	}
	defer logFile.Close()
	editor.Logger = slog.New(slog.NewTextHandler(io.MultiWriter(os.Stderr, logFile), nil))

	dbConn, err := db.New(path.Join(*configDir, editor.Config.DatabaseFile))
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}

	err = editor.WithOptions(avail.WithRepo(db.NewEditorRepo(dbConn)))
	if err != nil {
		log.Fatalf("attaching repository: %v", err)
	}
	defer editor.Close()

	l, err := editor.GetListener(*address, *port)
	if err != nil {
		log.Fatalf("binding listener: %v", err)
	}

	err = editor.Serve(l, web.NewServer(editor).Handler())
	if err != nil {
		log.Fatalf("serving: %v", err)
	}
}
