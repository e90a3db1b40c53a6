// animtool inspects and samples skeletal animation clips stored in glTF files.
package main

import (
	"fmt"
	gomath "math"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-anim/internal/config"
	"github.com/Faultbox/midgard-anim/internal/logger"
	"github.com/Faultbox/midgard-anim/internal/player"
	"github.com/Faultbox/midgard-anim/pkg/anim"
	"github.com/Faultbox/midgard-anim/pkg/gltfimport"
	"github.com/Faultbox/midgard-anim/pkg/pose"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	if command == "help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fail(err)
	}
	defer logger.Sync()

	if len(args) > 0 {
		cfg.Asset.Path = args[0]
	}

	switch command {
	case "info":
		cmdInfo(cfg)
	case "joints":
		cmdJoints(cfg)
	case "sample":
		cmdSample(cfg)
	case "dump":
		cmdDump(cfg)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`animtool - glTF skeletal animation inspector

Usage:
  animtool [flags] <command> [file.gltf]

Commands:
  info <file>      List clips with their time range and track count
  joints <file>    List joints with their parents
  sample <file>    Play a clip and print animated joints at each step
  dump <file>      Dump a clip's tracks and keyframes

Flags (before the command):
  --config <path>  Config file (default ./animtool.yaml)
  --asset <path>   glTF file when none is given after the command
  --clip <name>    Clip to sample or dump (default: first clip)
  --fps <n>        Sampling rate for sample
  --no-loop        Clamp at the clip end instead of wrapping
  --debug          Enable debug logging

Examples:
  animtool info fox.glb
  animtool --clip Run --fps 10 sample fox.glb
  animtool --clip Walk dump fox.glb`)
}

// fail exits, so deferred calls in main do not run; flush the log here.
func fail(err error) {
	logger.Error("command failed", zap.Error(err))
	logger.Sync()
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exit(1)
}

var exit = os.Exit

// asset is a loaded document with its clips.
type asset struct {
	doc   *gltf.Document
	rest  *pose.Pose
	names []string
	clips []*anim.Clip
}

func loadAsset(cfg *config.Config) *asset {
	if cfg.Asset.Path == "" {
		fail(fmt.Errorf("no glTF file given"))
	}

	doc, err := gltfimport.Load(cfg.Asset.Path)
	if err != nil {
		fail(err)
	}
	clips, err := gltfimport.AnimationClips(doc)
	if err != nil {
		fail(err)
	}

	a := &asset{
		doc:   doc,
		rest:  gltfimport.RestPose(doc),
		names: gltfimport.JointNames(doc),
		clips: clips,
	}
	logger.Info("asset loaded",
		zap.String("path", cfg.Asset.Path),
		zap.Int("joints", a.rest.Len()),
		zap.Int("clips", len(clips)))
	return a
}

func (a *asset) clip(name string) *anim.Clip {
	if len(a.clips) == 0 {
		fail(player.ErrNoClips)
	}
	if name == "" {
		return a.clips[0]
	}
	for _, c := range a.clips {
		if c.Name() == name {
			return c
		}
	}
	fail(fmt.Errorf("%w: %q", player.ErrUnknownClip, name))
	return nil
}

func cmdInfo(cfg *config.Config) {
	a := loadAsset(cfg)

	fmt.Printf("File:    %s\n", cfg.Asset.Path)
	fmt.Printf("Joints:  %d\n", a.rest.Len())
	fmt.Printf("Clips:   %d\n", len(a.clips))
	if len(a.clips) == 0 {
		return
	}

	fmt.Println("\nClips:")
	for i, c := range a.clips {
		fmt.Printf("  %3d  %-24s  %7.3f .. %7.3f  (%6.3fs)  %3d tracks\n",
			i, c.Name(), c.StartTime(), c.EndTime(), c.Duration(), c.Len())
	}
}

func cmdJoints(cfg *config.Config) {
	a := loadAsset(cfg)

	for i, name := range a.names {
		parent := a.rest.Parent(i)
		parentName := "-"
		if parent != pose.Root {
			parentName = a.names[parent]
		}
		t := a.rest.LocalTransform(i)
		fmt.Printf("%4d  %-24s  parent=%-24s  pos=%v\n", i, name, parentName, t.Position.Array())
	}
}

func cmdSample(cfg *config.Config) {
	a := loadAsset(cfg)
	clip := a.clip(cfg.Playback.Clip)

	pb := cfg.Playback
	pb.Clip = clip.Name()
	p, err := player.New(a.clips, a.rest, pb, logger.Named("player"))
	if err != nil {
		fail(err)
	}

	duration := pb.Duration
	if duration == 0 {
		duration = clip.Duration()
	}
	step := pb.StepSeconds()
	steps := int(gomath.Ceil(float64(duration / step)))

	joints := clip.JointIDs()
	for i := 0; i <= steps; i++ {
		dt := step
		if i == 0 {
			dt = 0
		}
		wrapped := p.Update(dt)

		marker := ""
		if wrapped {
			marker = "  (loop)"
		}
		fmt.Printf("t=%.4f%s\n", p.Time(), marker)
		for _, j := range joints {
			local := p.Pose().LocalTransform(j)
			world := p.Pose().GlobalTransform(j)
			fmt.Printf("  %-24s pos=%v rot=%v scale=%v world=%v\n",
				a.names[j], local.Position.Array(), local.Rotation.Array(), local.Scale.Array(), world.Position.Array())
		}
	}
}

func cmdDump(cfg *config.Config) {
	a := loadAsset(cfg)
	clip := a.clip(cfg.Playback.Clip)

	dumper := spew.NewDefaultConfig()
	dumper.DisableCapacities = true
	dumper.DisablePointerAddresses = true

	for _, j := range clip.JointIDs() {
		track, _ := clip.Track(j)
		fmt.Printf("joint %d (%s)\n", j, a.names[j])
		dumper.Dump(track)
	}
}
