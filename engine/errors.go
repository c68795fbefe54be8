// engine/errors.go
package engine

import (
	"errors"
	"strings"
)

// 规则与查找错误定义
var (
	ErrRoundNotFound          = errors.New("round not found")
	ErrPlayerNotFound         = errors.New("player not found")
	ErrGameNotFound           = errors.New("game not found")
	ErrCompanyNotFound        = errors.New("company not found")
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrProjectNotFound        = errors.New("project not found")
	ErrProjectUnavailable     = errors.New("project unavailable")
	ErrPlayerCannotActInRound = errors.New("player cannot act in this round")
	ErrGameFull               = errors.New("game is full")
	ErrGameAlreadyStarted     = errors.New("game already started")
	ErrNotGameOwner           = errors.New("only the first player to join may start the game")
	ErrCannotStartRound       = errors.New("game cannot start a new round")

	// ErrUnsupportedActionKind marks a programming error: an action that
	// passed decoding but has no handler. It must never surface in normal
	// operation.
	ErrUnsupportedActionKind = errors.New("unsupported action kind")
)

// ValidationError accumulates every reason a parameter set was rejected, so
// callers see all problems at once rather than the first.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "invalid parameters: " + strings.Join(e.Reasons, "; ")
}
