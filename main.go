package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/silatcha/gboy/internal/gameboy"
	"github.com/silatcha/gboy/internal/ppu"
	"github.com/silatcha/gboy/internal/ppu/lcd"
	"github.com/silatcha/gboy/internal/ppu/palette"
	"github.com/silatcha/gboy/internal/trace"
	"github.com/silatcha/gboy/internal/types"
	"github.com/silatcha/gboy/pkg/display"
	"github.com/silatcha/gboy/pkg/display/snapshot"
	"github.com/silatcha/gboy/pkg/display/timeline"
	"github.com/silatcha/gboy/pkg/display/web"
	"github.com/silatcha/gboy/pkg/log"
	"github.com/silatcha/gboy/pkg/utils"
)

// frameTime is the duration of a single frame when streaming.
var frameTime = time.Second * gameboy.CyclesPerFrame / gameboy.ClockSpeed

func main() {
	traceFile := flag.String("trace", "", "The trace script to replay (.txt, .gz, .br, .zip or .7z)")
	asMode := flag.String("mode", "dmg", "The hardware mode to emulate. Can be dmg or cgb")
	frames := flag.Int("frames", 1, "The number of frames to run after the trace")
	out := flag.String("out", "", "The folder to save frame snapshots to")
	every := flag.Int("every", 1, "Save every nth frame")
	scale := flag.Int("scale", 1, "The scale factor of saved images (1-8)")
	shades := flag.String("palette", "greyscale", "The monochrome shades. Can be greyscale, green, red or yellow")
	expect := flag.String("expect", "", "The expected xxhash of the last frame, in hex")
	serve := flag.String("serve", "", "Stream frames over websocket on this address, e.g. :8080")
	timelinePlot := flag.String("timeline", "", "Plot the LY/mode timeline of the first frame to this file")
	gating := flag.Bool("gating", false, "Block VRAM and OAM access while the PPU is using them")
	tiles := flag.String("tiles", "", "The folder to dump tile data and tile map images to")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	level := log.InfoLevel
	if *verbose {
		level = log.DebugLevel
	}
	logger := log.New(level)

	if err := run(logger, options{
		trace:    *traceFile,
		mode:     types.StringToMode(*asMode),
		frames:   *frames,
		out:      *out,
		every:    *every,
		scale:    utils.Clamp(1, *scale, 8),
		palette:  *shades,
		expect:   *expect,
		serve:    *serve,
		timeline: *timelinePlot,
		gating:   *gating,
		tiles:    *tiles,
	}); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

type options struct {
	trace    string
	mode     types.Mode
	frames   int
	out      string
	every    int
	scale    int
	palette  string
	expect   string
	serve    string
	timeline string
	gating   bool
	tiles    string
}

func run(logger log.Logger, o options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shades, err := palette.ByName(o.palette)
	if err != nil {
		return err
	}

	recorder := &display.Recorder{}
	videos := []ppu.Video{recorder}
	gbOpts := []gameboy.Opt{
		gameboy.AsMode(o.mode),
		gameboy.WithLogger(logger),
		gameboy.WithShades(shades),
	}
	if o.gating {
		gbOpts = append(gbOpts, gameboy.WithAccessGating())
	}

	var snap *snapshot.Writer
	if o.out != "" {
		snap, err = snapshot.New(o.out, snapshot.Every(o.every), snapshot.Scale(o.scale), snapshot.WithLogger(logger))
		if err != nil {
			return err
		}
		videos = append(videos, snap)
	}

	var hub *web.Hub
	if o.serve != "" {
		hub = web.NewHub(web.WithLogger(logger), web.WithCompression(6), web.WithCache(64))
		videos = append(videos, hub)
	}

	var plot *timeline.Recorder
	if o.timeline != "" {
		plot = timeline.New(gameboy.CyclesPerFrame / 4)
		gbOpts = append(gbOpts, gameboy.WithSampler(plot))
	}

	gb := gameboy.New(append(gbOpts, gameboy.WithVideo(display.Multi(videos...)))...)

	// the hub is served for the whole run, so clients see the trace play
	served := make(chan error, 1)
	if hub != nil {
		go func() {
			served <- hub.ListenAndServe(ctx, o.serve)
		}()
	}

	if o.trace != "" {
		script, err := trace.Load(o.trace)
		if err != nil {
			return fmt.Errorf("%s: %w", o.trace, err)
		}
		logger.Infof("replaying %s: %d commands, %d dots", o.trace, len(script), script.Dots())
		if err := script.Run(gb); err != nil {
			return fmt.Errorf("%s: %w", o.trace, err)
		}
	}

	for i := 0; i < o.frames; i++ {
		gb.RunFrame()
	}
	logger.Infof("presented %d frames in %d dots", recorder.Frames(), gb.Cycles())

	if snap != nil {
		if err := snap.Err(); err != nil {
			return err
		}
		logger.Infof("saved %d snapshots to %s", len(snap.Written()), o.out)
	}

	if plot != nil {
		if err := plot.Save(o.timeline); err != nil {
			return err
		}
		logger.Infof("saved timeline to %s", o.timeline)
	}

	if o.tiles != "" {
		if err := dumpTiles(gb.PPU, o.tiles, o.scale); err != nil {
			return err
		}
		logger.Infof("saved tile sheets to %s", o.tiles)
	}

	if recorder.Frames() > 0 {
		last := recorder.Hashes[len(recorder.Hashes)-1]
		logger.Infof("last frame hash %016x", last)
		if o.expect != "" {
			want, err := strconv.ParseUint(strings.TrimPrefix(o.expect, "0x"), 16, 64)
			if err != nil {
				return fmt.Errorf("invalid -expect %q: %w", o.expect, err)
			}
			if last != want {
				return fmt.Errorf("last frame hash %016x, want %016x", last, want)
			}
		}
	} else if o.expect != "" {
		return fmt.Errorf("no frame presented, want hash %s", o.expect)
	}

	if hub == nil {
		return nil
	}

	// keep the display alive for connected clients until interrupted
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()
	for {
		select {
		case err := <-served:
			return err
		case <-ctx.Done():
			return <-served
		case <-ticker.C:
			gb.RunFrame()
		}
	}
}

// dumpTiles saves the tile data of every VRAM bank and both tile maps.
func dumpTiles(p *ppu.PPU, dir string, scale int) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	images := map[string]image.Image{}
	for bank := 0; bank < p.HardwareMode().VRAMBanks(); bank++ {
		images[fmt.Sprintf("tiles_bank%d.png", bank)] = p.TileData(lcd.Data8000, bank)
	}
	data := lcd.Data8800
	if p.Read(types.LCDC)&types.Bit4 != 0 {
		data = lcd.Data8000
	}
	for _, m := range []lcd.TileMapAddr{lcd.Map9800, lcd.Map9C00} {
		images[fmt.Sprintf("map_%04x.png", uint16(m))] = p.TileMap(m, data)
	}

	for name, img := range images {
		if scale > 1 {
			img = display.Scale(img, scale)
		}
		if err := savePNG(filepath.Join(dir, name), img); err != nil {
			return err
		}
	}
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
