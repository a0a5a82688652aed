package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/keepyuppy/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	demo := flag.Bool("demo", false, "let the autopilot script keep the balloon up")
	scriptName := flag.String("script", "autopilot", "contact script in prefabs/scripts (basename, .tengo optional)")
	tuningName := flag.String("tuning", "balloon.yaml", "balloon tuning yaml in prefabs/")
	watch := flag.Bool("watch", false, "hot reload tuning and scripts from prefabs/ when they change")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("keepyuppy")
	ebiten.SetTPS(common.TPS)

	game := NewGame(Options{
		Debug:      *debug,
		Demo:       *demo,
		ScriptName: *scriptName,
		TuningName: *tuningName,
		Watch:      *watch,
	})
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
