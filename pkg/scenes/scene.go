package scenes

import (
	"github.com/gonewx/ravelight/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

var (
	_ Scene         = (*LitMapScene)(nil)
	_ game.Saveable = (*LitMapScene)(nil)
)
