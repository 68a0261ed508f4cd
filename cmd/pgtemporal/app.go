package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli"

	"github.com/pgtemporal/pgtemporal/pgtype"
)

const (
	flagConfig        = "config"
	flagIntervalStyle = "interval-style"
	flagDateTimeStyle = "datetime-style"
	flagLogLevel      = "log-level"
	flagLogFormat     = "log-format"
	flagStyle         = "style"
	flagJSON          = "json"
)

// BuildCLIOptions returns the pgtemporal command line application.
func BuildCLIOptions() *cli.App {
	app := cli.NewApp()
	app.Name = "pgtemporal"
	app.Usage = "parse and render PostgreSQL interval, timestamp and range values"
	app.Version = "0.1.0"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   flagConfig,
			Usage:  "path to a YAML or JSON config file",
			EnvVar: "PGTEMPORAL_CONFIG",
		},
		cli.StringFlag{
			Name:   flagIntervalStyle,
			Usage:  "default output style for interval values",
			EnvVar: "PGTEMPORAL_INTERVAL_STYLE",
		},
		cli.StringFlag{
			Name:   flagDateTimeStyle,
			Usage:  "default output style for date and time values",
			EnvVar: "PGTEMPORAL_DATETIME_STYLE",
		},
		cli.StringFlag{
			Name:   flagLogLevel,
			Usage:  "decode trace level: trace, debug, info, warn, error or none",
			EnvVar: "PGTEMPORAL_LOG_LEVEL",
		},
		cli.StringFlag{
			Name:   flagLogFormat,
			Usage:  "logging backend: zap, zerolog, logrus, log15 or kitlog",
			EnvVar: "PGTEMPORAL_LOG_FORMAT",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "format",
			Aliases:   []string{"fmt"},
			Usage:     "parse a value of the named type and print it in a style",
			ArgsUsage: "TYPE VALUE",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  flagStyle + ", s",
					Usage: "output style; defaults to the configured style for the type",
				},
				cli.BoolFlag{
					Name:  flagJSON,
					Usage: "print the JSON projection instead of text",
				},
			},
			Action: formatValue,
		},
		{
			Name:      "decode-binary",
			Usage:     "decode a hex encoded binary value of the named type",
			ArgsUsage: "TYPE HEX",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  flagStyle + ", s",
					Usage: "output style; defaults to the configured style for the type",
				},
			},
			Action: decodeBinary,
		},
		{
			Name:      "encode-binary",
			Usage:     "print the hex encoded binary format of a value of the named type",
			ArgsUsage: "TYPE VALUE",
			Action:    encodeBinary,
		},
		{
			Name:   "types",
			Usage:  "list the supported types",
			Action: listTypes,
		},
	}

	return app
}

// loadSettings layers flags and environment over the config file over defaults.
func loadSettings(c *cli.Context) (*Config, error) {
	cfg := DefaultConfig()
	if path := c.GlobalString(flagConfig); path != "" {
		var err error
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if c.GlobalIsSet(flagIntervalStyle) {
		cfg.IntervalStyle = c.GlobalString(flagIntervalStyle)
	}
	if c.GlobalIsSet(flagDateTimeStyle) {
		cfg.DateTimeStyle = c.GlobalString(flagDateTimeStyle)
	}
	if c.GlobalIsSet(flagLogLevel) {
		cfg.Log.Level = c.GlobalString(flagLogLevel)
	}
	if c.GlobalIsSet(flagLogFormat) {
		cfg.Log.Format = c.GlobalString(flagLogFormat)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSession prepares the type map shared by every command.
func newSession(c *cli.Context) (*Config, *pgtype.Map, error) {
	cfg, err := loadSettings(c)
	if err != nil {
		return nil, nil, err
	}
	m := pgtype.NewMap()
	logOut := c.App.ErrWriter
	if logOut == nil {
		logOut = os.Stderr
	}
	tracer, err := newTracer(cfg.Log, logOut)
	if err != nil {
		return nil, nil, err
	}
	m.Tracer = tracer
	return cfg, m, nil
}

func typeArgs(c *cli.Context, m *pgtype.Map) (*pgtype.Type, string, error) {
	if c.NArg() != 2 {
		return nil, "", fmt.Errorf("%s: expected 2 arguments, got %d", c.Command.Name, c.NArg())
	}
	name := strings.ToLower(c.Args().Get(0))
	t, ok := m.TypeForName(name)
	if !ok {
		return nil, "", fmt.Errorf("unknown type %q", name)
	}
	return t, c.Args().Get(1), nil
}

// render prints v in style, falling back to the configured style for its kind.
func render(c *cli.Context, cfg *Config, m *pgtype.Map, v any, style string) error {
	if style == "" {
		switch v.(type) {
		case pgtype.Interval:
			style = cfg.IntervalStyle
		case pgtype.Date, pgtype.Time, pgtype.TimeTZ, pgtype.Timestamp, pgtype.TimestampTZ:
			style = cfg.DateTimeStyle
		}
	}
	s, err := m.EncodeText(v, style)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, s)
	return nil
}

func formatValue(c *cli.Context) error {
	cfg, m, err := newSession(c)
	if err != nil {
		return err
	}
	t, src, err := typeArgs(c, m)
	if err != nil {
		return err
	}

	v, err := m.DecodeText(context.Background(), t.OID, src)
	if err != nil {
		return fmt.Errorf("%s: %w", t.Name, err)
	}

	if c.Bool(flagJSON) {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", t.Name, err)
		}
		fmt.Fprintln(c.App.Writer, string(b))
		return nil
	}
	return render(c, cfg, m, v, c.String(flagStyle))
}

func decodeBinary(c *cli.Context) error {
	cfg, m, err := newSession(c)
	if err != nil {
		return err
	}
	t, src, err := typeArgs(c, m)
	if err != nil {
		return err
	}

	buf, err := hex.DecodeString(strings.TrimPrefix(src, "\\x"))
	if err != nil {
		return fmt.Errorf("decode hex: %w", err)
	}
	v, err := m.DecodeBinary(context.Background(), t.OID, buf)
	if err != nil {
		return fmt.Errorf("%s: %w", t.Name, err)
	}
	return render(c, cfg, m, v, c.String(flagStyle))
}

func encodeBinary(c *cli.Context) error {
	_, m, err := newSession(c)
	if err != nil {
		return err
	}
	t, src, err := typeArgs(c, m)
	if err != nil {
		return err
	}

	v, err := m.DecodeText(context.Background(), t.OID, src)
	if err != nil {
		return fmt.Errorf("%s: %w", t.Name, err)
	}
	buf, err := m.EncodeBinary(v, nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, hex.EncodeToString(buf))
	return nil
}

func listTypes(c *cli.Context) error {
	_, m, err := newSession(c)
	if err != nil {
		return err
	}
	for _, t := range m.Types() {
		fmt.Fprintf(c.App.Writer, "%-12s %d\n", t.Name, t.OID)
	}
	return nil
}
