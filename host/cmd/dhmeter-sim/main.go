// dhmeter-sim runs the meter firmware against simulated counters and a
// text LCD, printing the display after every gate.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"dhmeter/core"
	"dhmeter/sim"
)

type board struct {
	clock      uint32
	tickWidth  uint8
	pulseWidth uint8
}

var boards = map[string]board{
	"nano":   {clock: core.TickFreqNano, tickWidth: 16, pulseWidth: 8},
	"rp2040": {clock: core.TickFreqRP2040, tickWidth: 24, pulseWidth: 32},
}

var (
	boardName = flag.String("board", "nano", "Board to simulate (nano, rp2040)")
	rate      = flag.Uint64("rate", 1000, "Input frequency in Hz")
	clock     = flag.Uint("clock", 0, "Timebase frequency in Hz (0 = board default)")
	gate      = flag.Uint("gate", 1000, "Gate length in milliseconds")
	cost      = flag.Uint64("cost", 20, "Clock ticks per register read")
	count     = flag.Int("count", 5, "Number of gates to run")
	frames    = flag.String("frames", "", "Write report frames to this file")
	verbose   = flag.Bool("verbose", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !term.IsTerminal(int(os.Stderr.Fd())),
	}).Level(level).With().Timestamp().Logger()

	b, ok := boards[*boardName]
	if !ok {
		log.Fatal().Str("board", *boardName).Msg("unknown board")
	}
	if *clock != 0 {
		b.clock = uint32(*clock)
	}

	cfg := core.DefaultConfig()
	cfg.TickFreq = b.clock
	cfg.GateMillis = uint32(*gate)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	core.SetDebugWriter(func(msg string) {
		log.Debug().Msg(msg)
	})
	core.SetDebugEnabled(*verbose)

	clk := sim.NewClock(cfg.TickFreq, *cost)
	ticks := sim.NewTickRegister(clk, b.tickWidth)
	pulses := sim.NewPulseRegister(clk, *rate, b.pulseWidth)
	lcd := sim.NewLCD(cfg.Columns, cfg.Rows)

	var opts []core.Option
	if *frames != "" {
		f, err := os.Create(*frames)
		if err != nil {
			log.Fatal().Err(err).Msg("create frames file")
		}
		defer f.Close()
		opts = append(opts, core.WithReporter(core.NewFrameReporter(f)))
	}

	m := core.NewMeter(cfg, ticks, pulses, lcd, opts...)

	log.Info().
		Str("board", *boardName).
		Uint32("clock", cfg.TickFreq).
		Uint64("rate", *rate).
		Uint32("gate_ticks", cfg.GateTicks()).
		Msg("starting")

	m.Setup()
	fmt.Println(lcd.String())

	for i := 0; i < *count; i++ {
		s := m.Step()
		log.Info().
			Uint32("pulses", s.Pulses).
			Uint32("ticks", s.Ticks).
			Uint32("polls", s.Polls).
			Uint32("hz", s.Frequency(cfg.TickFreq)).
			Dur("elapsed", time.Duration(core.TicksToMicros(m.Timebase().Elapsed(), cfg.TickFreq))*time.Microsecond).
			Msg("gate")
		fmt.Println(lcd.String())
	}

	if *verbose {
		core.DumpSamples()
	}
}
