package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/joho/godotenv"

	"git.sr.ht/~avafel/tmi"
)

func main() {
	var configPath string
	var debug, anonymous bool
	flag.StringVar(&configPath, "config", "", "path to the configuration file")
	flag.BoolVar(&debug, "debug", false, "log raw protocol data")
	flag.BoolVar(&anonymous, "anonymous", false, "log in as an anonymous viewer")
	flag.Parse()

	if configPath == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			panic(err)
		}
		configPath = path.Join(configDir, "tmi", "config")
	}

	cfg, err := tmi.LoadConfigFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load the required configuration file at %q: %s\n", configPath, err)
		os.Exit(1)
	}
	cfg.Debug = cfg.Debug || debug
	cfg.Anonymous = cfg.Anonymous || anonymous

	// A TMI_TOKEN environment variable, when set, overrides the token of
	// the configuration file; a .env file in the working directory is
	// honored.
	_ = godotenv.Load()
	if token := os.Getenv("TMI_TOKEN"); token != "" {
		cfg.Token = token
	}

	app, err := tmi.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
