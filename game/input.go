package game

import (
	"github.com/Carmen-Shannon/oxy-robot/common"
	"github.com/Carmen-Shannon/oxy-robot/engine/game_object"

	"github.com/go-gl/mathgl/mgl32"
)

// move is one movement key's direction and facing.
type move struct {
	direction mgl32.Vec3
	yaw       float32
}

// moves maps movement keys to their step direction and yaw. The yaw values are raw radians
// as the robot scene has always used them.
var moves = map[string]move{
	"w": {direction: mgl32.Vec3{0, 0, 1}, yaw: 0},
	"s": {direction: mgl32.Vec3{0, 0, -1}, yaw: 60},
	"a": {direction: mgl32.Vec3{-1, 0, 0}, yaw: 30},
	"d": {direction: mgl32.Vec3{1, 0, 0}, yaw: 20},
}

// emoteKeys maps number keys to EmoteNames indices.
var emoteKeys = map[uint32]int{
	common.Key1: 0,
	common.Key2: 1,
	common.Key3: 2,
	common.Key4: 3,
	common.Key5: 4,
	common.Key6: 5,
}

// inputHandler is the implementation of the InputHandler interface.
type inputHandler struct {
	controller AnimationController
	player     game_object.GameObject

	speed         float32
	smoothing     float32
	emotesEnabled bool
}

// InputHandler turns key events into player movement and animation state requests.
type InputHandler interface {
	// KeyDown handles a key press. Movement keys step the player and request Walking; any
	// other key requests Idle (or an emote, for bound number keys).
	KeyDown(keyCode uint32)

	// KeyUp handles a key release by requesting Idle with DefaultFade.
	KeyUp(keyCode uint32)

	// SetController sets the controller receiving state requests (nil for none).
	SetController(controller AnimationController)

	// SetPlayer sets the object moved by the movement keys (nil for none).
	SetPlayer(player game_object.GameObject)
}

var _ InputHandler = &inputHandler{}

// NewInputHandler creates an InputHandler with no player and an unloaded controller.
//
// Parameters:
//   - options: functional options to configure the handler
//
// Returns:
//   - InputHandler: the new handler
func NewInputHandler(options ...InputHandlerBuilderOption) InputHandler {
	h := &inputHandler{
		speed:     3,
		smoothing: 0.09,
	}
	for _, option := range options {
		option(h)
	}
	h.SetController(h.controller)
	return h
}

func (h *inputHandler) KeyDown(keyCode uint32) {
	if idx, ok := emoteKeys[keyCode]; ok && h.emotesEnabled {
		if trigger, ok := h.controller.Emotes()[EmoteNames[idx]]; ok {
			trigger()
		}
		return
	}

	m, ok := moves[common.KeyName(keyCode)]
	if !ok {
		h.controller.TransitionTo(StateIdle, TransitionFade)
		return
	}

	if h.player != nil {
		pos := h.player.Position()
		target := pos.Add(m.direction.Mul(h.speed))
		h.player.SetPosition(lerp(pos, target, h.smoothing))

		rot := h.player.Rotation()
		rot[1] = m.yaw
		h.player.SetRotation(rot)
	}
	h.controller.TransitionTo(StateWalking, TransitionFade)
}

func (h *inputHandler) KeyUp(keyCode uint32) {
	if _, ok := emoteKeys[keyCode]; ok && h.emotesEnabled {
		return
	}
	h.controller.TransitionTo(StateIdle, DefaultFade)
}

func (h *inputHandler) SetController(controller AnimationController) {
	if controller == nil {
		controller = NewAnimationController(nil)
	}
	h.controller = controller
}

func (h *inputHandler) SetPlayer(player game_object.GameObject) {
	h.player = player
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
