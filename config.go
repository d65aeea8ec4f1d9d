package tmi

import (
	"errors"
	"fmt"
	"strconv"

	"git.sr.ht/~emersion/go-scfg"

	"git.sr.ht/~avafel/tmi/twitch"
)

type Config struct {
	Addr string
	TLS  bool

	Nick      string
	Token     string
	Anonymous bool

	Channels []string

	// ChatLog is the path of the SQLite chat log, or "" to disable it.
	ChatLog string

	Debug bool
}

func Defaults() Config {
	return Config{
		Addr: twitch.ServerAddr,
		TLS:  true,
	}
}

// LoadConfigFile reads the configuration from the scfg file at filename.
func LoadConfigFile(filename string) (cfg Config, err error) {
	cfg = Defaults()

	directives, err := scfg.Load(filename)
	if err != nil {
		return cfg, fmt.Errorf("error parsing scfg: %v", err)
	}

	for _, d := range directives {
		switch d.Name {
		case "address":
			if err := d.ParseParams(&cfg.Addr); err != nil {
				return cfg, err
			}
		case "nickname":
			if err := d.ParseParams(&cfg.Nick); err != nil {
				return cfg, err
			}
		case "token":
			if err := d.ParseParams(&cfg.Token); err != nil {
				return cfg, err
			}
		case "channel":
			cfg.Channels = append(cfg.Channels, d.Params...)
		case "chat-log":
			if err := d.ParseParams(&cfg.ChatLog); err != nil {
				return cfg, err
			}
		case "anonymous":
			if cfg.Anonymous, err = parseBoolDirective(d); err != nil {
				return cfg, err
			}
		case "tls":
			if cfg.TLS, err = parseBoolDirective(d); err != nil {
				return cfg, err
			}
		case "debug":
			if cfg.Debug, err = parseBoolDirective(d); err != nil {
				return cfg, err
			}
		default:
			return cfg, fmt.Errorf("unknown directive %q", d.Name)
		}
	}

	if !cfg.Anonymous && cfg.Nick == "" {
		return cfg, errors.New("nickname is required")
	}
	return cfg, nil
}

func parseBoolDirective(d *scfg.Directive) (bool, error) {
	var raw string
	if err := d.ParseParams(&raw); err != nil {
		return false, err
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("directive %q: %v", d.Name, err)
	}
	return value, nil
}
