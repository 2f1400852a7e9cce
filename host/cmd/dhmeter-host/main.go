package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"dhmeter/host/config"
	"dhmeter/host/export"
	"dhmeter/host/meter"
	"dhmeter/host/serial"
)

var (
	configPath = flag.String("config", "", "YAML configuration file")
	device     = flag.String("device", "", "Serial device path (overrides config)")
	baud       = flag.Int("baud", 0, "Baud rate (overrides config, ignored for USB CDC)")
	exportPath = flag.String("export", "", "Write readings to this .xlsx file on exit")
	verbose    = flag.Bool("verbose", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *device != "" {
		cfg.Serial.Device = *device
	}
	if *baud != 0 {
		cfg.Serial.Baud = *baud
	}
	if *exportPath != "" {
		cfg.Export.Path = *exportPath
	}
	if *verbose {
		cfg.LogLevel = zerolog.LevelDebugValue
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
		TimeFormat: time.TimeOnly,
	}).Level(cfg.Level()).With().Timestamp().Logger()

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("dhmeter-host failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	deriver, err := meter.NewDeriver(cfg.Expression)
	if err != nil {
		return err
	}

	var book *export.Workbook
	if cfg.Export.Path != "" {
		book, err = export.NewWorkbook(cfg.Export.Sheet, cfg.Unit)
		if err != nil {
			return err
		}
		defer book.Close()
	}

	port, err := serial.Open(cfg.SerialConfig())
	if err != nil {
		return err
	}
	defer port.Close()
	if err := port.Flush(); err != nil {
		log.Debug().Err(err).Msg("flush")
	}
	log.Info().Str("device", cfg.Serial.Device).Int("baud", cfg.Serial.Baud).Msg("connected")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mon := meter.NewMonitor(port, deriver, log)
	mon.SetTickFreq(cfg.TickFreq)

	err = mon.Run(ctx, func(r meter.Reading) {
		log.Info().
			Uint32("seq", r.Seq).
			Stringer("mode", r.Mode).
			Uint32("hz", r.Hz).
			Uint32("gate_ms", r.GateMillis).
			Float64(cfg.Unit, r.Derived).
			Msg("reading")
		if book != nil {
			if err := book.Add(r); err != nil {
				log.Warn().Err(err).Msg("export")
			}
		}
	})
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	log.Info().
		Uint32("missed", mon.Missed).
		Uint32("dropped", mon.Dropped()).
		Msg("stopped")

	if book != nil {
		if saveErr := book.SaveAs(cfg.Export.Path); saveErr != nil {
			return saveErr
		}
		log.Info().Str("path", cfg.Export.Path).Int("rows", book.Rows()).Msg("exported")
	}
	return err
}
