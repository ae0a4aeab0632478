// oxy-robot renders the robot scene: a skinned robot on a ground slab under a field of stars,
// walked around with the keyboard and viewed through an orbiting camera.
//
// Controls:
//
//	W/A/S/D     - Walk forward/left/back/right
//	Other keys  - Idle
//	1-6         - Emotes (with --emote-keys)
//	Left drag   - Orbit the camera
//	Right drag  - Pan the camera
//	Scroll      - Zoom
//	Esc         - Quit
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// runOptions holds the flags of the root command.
type runOptions struct {
	model        string
	width        int
	height       int
	title        string
	resting      string
	emoteKeys    bool
	groundNormal string
	stars        int
	seed         uint64
	msaa         int
	vsync        bool
	orbitDamping float64
	profile      bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "oxy-robot",
		Short: "Animated robot scene",
		Long: `oxy-robot - Animated robot scene

Loads a skinned glTF robot in the background and drops it into a fogged scene
once it is ready. Movement keys cross-fade into Walking, releasing a key
returns to Idle, and emotes play once before returning to the resting state.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.model, "model", "./RobotExpressive.glb", "Path to the robot model (GLB/glTF)")
	flags.IntVar(&opts.width, "width", 1280, "Window width in pixels")
	flags.IntVar(&opts.height, "height", 720, "Window height in pixels")
	flags.StringVar(&opts.title, "title", "Oxy Robot", "Window title")
	flags.StringVar(&opts.resting, "resting-state", "Walking", "State an emote returns to when it finishes")
	flags.BoolVar(&opts.emoteKeys, "emote-keys", false, "Bind keys 1-6 to Jump, Yes, No, Wave, Punch and ThumbsUp")
	flags.StringVar(&opts.groundNormal, "ground-normal", "normal.jpg", "Normal map for the ground (empty for flat)")
	flags.IntVar(&opts.stars, "stars", 200, "Number of stars")
	flags.Uint64Var(&opts.seed, "seed", 1, "Seed for star placement")
	flags.IntVar(&opts.msaa, "msaa", 4, "MSAA sample count (1 or 4)")
	flags.BoolVar(&opts.vsync, "vsync", true, "Wait for vertical blank when presenting")
	flags.Float64Var(&opts.orbitDamping, "orbit-damping", 8, "Angular frequency of the camera springs")
	flags.BoolVar(&opts.profile, "profile", false, "Log frame statistics once per second")

	cmd.AddCommand(newInfoCommand())
	return cmd
}

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <model.glb|model.gltf>",
		Short: "Display model information",
		Long:  "Load a model through the async loader and list its meshes, bones and animation clips with their duration and loop mode.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runInfo(cmd.Context(), cmd.OutOrStdout(), args[0]); err != nil {
				return fmt.Errorf("info: %w", err)
			}
			return nil
		},
	}
}
