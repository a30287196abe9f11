package api

import (
	"errors"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/minithello/internal/middleware"
	"github.com/lk16/minithello/internal/othello"
	"github.com/lk16/minithello/internal/policy"
	"github.com/lk16/minithello/internal/solver"
)

func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api", middleware.AuthOrToken())
	apiGroup.Get("/states/start", GetStartState)
	apiGroup.Get("/states/:key", GetState)
	apiGroup.Get("/states/:key/best-move", GetBestMove)
	apiGroup.Post("/states/:key/moves", PostMove)

	// Serve version info
	versionGroup := app.Group("/version")
	versionGroup.Get("/", Handler)

	// Serve root page
	app.Get("/", rootHandler)
}

func rootHandler(c *fiber.Ctx) error {
	return c.Redirect("/api/states/start")
}

func getPlayer(c *fiber.Ctx) *policy.Player {
	return c.Locals("player").(*policy.Player) // nolint:errcheck
}

// errorResponse maps lookup errors to a status code.
func errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, othello.ErrInvalidKey), errors.Is(err, othello.ErrInvalidMove):
		status = fiber.StatusBadRequest
	case errors.Is(err, solver.ErrUnknownState):
		status = fiber.StatusNotFound
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// parseKey reads the key path parameter and decodes it.
func parseKey(c *fiber.Ctx) (othello.Board, error) {
	key, err := strconv.Atoi(c.Params("key"))
	if err != nil {
		return othello.Board{}, errors.Join(othello.ErrInvalidKey, err)
	}

	return othello.NewBoardFromKey(othello.Key(key))
}

// stateResponse looks up the value of board.
func stateResponse(c *fiber.Ctx, board othello.Board) error {
	value, err := getPlayer(c).Value(board.Key())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(newStateResponse(board, value))
}

// GetStartState returns the starting board.
func GetStartState(c *fiber.Ctx) error {
	return stateResponse(c, othello.NewBoardStart())
}

// GetState returns the board with the requested key.
func GetState(c *fiber.Ctx) error {
	board, err := parseKey(c)
	if err != nil {
		return errorResponse(c, err)
	}

	return stateResponse(c, board)
}

// GetBestMove returns a random optimal move with all optimal moves and action values.
func GetBestMove(c *fiber.Ctx) error {
	board, err := parseKey(c)
	if err != nil {
		return errorResponse(c, err)
	}

	player := getPlayer(c)

	if _, err = player.Value(board.Key()); err != nil {
		return errorResponse(c, err)
	}

	values, err := player.ActionValues(board)
	if err != nil {
		return errorResponse(c, err)
	}

	candidates := policy.GreedyCandidates(board.Turn(), values)
	move := player.Selector().Choose(candidates)

	return c.Status(fiber.StatusOK).JSON(BestMoveResponse{
		Move:         move,
		Field:        othello.MoveToField(move),
		Candidates:   candidates,
		ActionValues: values,
	})
}

// PostMove plays a move and returns the resulting board.
func PostMove(c *fiber.Ctx) error {
	board, err := parseKey(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req MoveRequest
	if err = c.BodyParser(&req); err != nil || req.Move == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if board.IsTerminal() || !board.IsValidMove(*req.Move) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid move",
		})
	}

	return stateResponse(c, board.DoMove(*req.Move))
}

var (
	response     VersionResponse
	responseOnce sync.Once
)

// Handler returns the version of the application.
func Handler(c *fiber.Ctx) error {
	responseOnce.Do(func() {
		output, err := exec.Command("git", "rev-parse", "HEAD").Output()
		if err != nil {
			response.Commit = "unknown"
			return
		}
		response.Commit = strings.TrimSpace(string(output))
	})

	return c.JSON(response)
}
