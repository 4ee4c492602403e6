package highscores

import (
	"context"
	"errors"
	"fmt"

	"github.com/cdfisher/osrs-tools/internal/apperr"
)

// IsIronman reports whether player appears on the ironman board. Players absent
// from it are checked against the main board so an unknown name is reported as
// apperr.ErrPlayerNotFound rather than as a regular account.
//
// The ironman board keeps players who have since left the mode, so a de-ironed
// account reports true.
func (c *Client) IsIronman(ctx context.Context, player string) (bool, error) {
	_, err := c.fetchDocument(ctx, player, CategoryIronman)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return false, err
	}

	c.logger.Debug().Str("player", player).Msg("not on the ironman board, checking main board")

	_, err = c.fetchDocument(ctx, player, CategoryDefault)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, apperr.ErrNotFound):
		return false, fmt.Errorf("%w: %q: %w", apperr.ErrPlayerNotFound, player, err)
	default:
		return false, err
	}
}
