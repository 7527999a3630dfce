package game

import "errors"

var (
	ErrGameOver             = errors.New("game is over")
	ErrNotYourTurn          = errors.New("player is not active")
	ErrUnknownMove          = errors.New("unknown move type")
	ErrUnknownRegion        = errors.New("unknown region")
	ErrNotOwner             = errors.New("region is not owned by the active player")
	ErrNoMovesLeft          = errors.New("no moves left this turn")
	ErrNoActiveArmy         = errors.New("region has no active army")
	ErrNotAdjacent          = errors.New("regions are not adjacent")
	ErrInvalidSoldierCount  = errors.New("soldier count must be positive")
	ErrInsufficientSoldiers = errors.New("not enough soldiers in region")
	ErrNoTemple             = errors.New("region has no temple")
	ErrUnknownUpgrade       = errors.New("unknown upgrade")
	ErrUpgradeMaxed         = errors.New("upgrade is already at its highest level")
	ErrInsufficientFunds    = errors.New("not enough faith")
)
