// Package console plays the game in a terminal.
package console

import (
	"bufio"
	"bytes"
	"ctchen222/N-In-A-Row/internal/bot"
	"ctchen222/N-In-A-Row/internal/game"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode"
)

// Console limits on the board size
const (
	MaxWidth  = 80
	MaxHeight = 30
)

// maxLineLength caps one line of input; the rest of a longer line is dropped.
const maxLineLength = 4096

const (
	numberParseError = "Please give a number."
	difficultyPrompt = "1. Random, 2. Smart"
)

// errInputClosed ends the game when the input runs out.
var errInputClosed = errors.New("input closed")

// Console reads commands and moves from in and writes the game to out.
type Console struct {
	in          *bufio.Scanner
	out         io.Writer
	printer     Printer
	coinToss    func() bool
	selectorFor func(choice int) game.MoveSelector

	engine *game.Engine
	state  game.State
}

// Option configures a Console.
type Option func(*Console)

// WithColor turns ANSI colours on or off.
func WithColor(on bool) Option {
	return func(c *Console) { c.printer.Color = on }
}

// WithCoinToss replaces the coin deciding whether the computer starts.
func WithCoinToss(toss func() bool) Option {
	return func(c *Console) { c.coinToss = toss }
}

// WithSelectorFactory replaces the move selector picked by the difficulty
// menu: choice 1 is random, 2 is smart.
func WithSelectorFactory(f func(choice int) game.MoveSelector) Option {
	return func(c *Console) { c.selectorFor = f }
}

func New(in io.Reader, out io.Writer, opts ...Option) *Console {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, maxLineLength), maxLineLength)
	scanner.Split(splitLines(maxLineLength))

	c := &Console{
		in:          scanner,
		out:         out,
		printer:     Printer{Color: true},
		coinToss:    func() bool { return rand.IntN(2) == 1 },
		selectorFor: defaultSelector,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultSelector(choice int) game.MoveSelector {
	if choice == 1 {
		return bot.NewRandomSelector()
	}
	return bot.NewHeuristicSelector()
}

// Run plays games until the user quits or the input ends.
func (c *Console) Run() error {
	c.printInstructions()
	err := c.createGame()

	for err == nil {
		if err = c.playAGame(); err != nil {
			break
		}
		c.printGameResult()
		if c.state == game.UserQuit {
			return nil
		}

		var again bool
		if again, err = c.confirmAnotherGame(); !again {
			break
		}
	}

	if errors.Is(err, errInputClosed) {
		c.println()
		c.state = game.UserQuit
		c.printGameResult()
		return nil
	}
	return err
}

func (c *Console) printInstructions() {
	c.println("***************************")
	c.println("*       N-in-a-Row        *")
	c.println("***************************")
	c.println("u - Undo the previous move.")
	c.println("r - Reset the game.")
	c.println("c - Change settings.")
	c.println("q - Quit the game.")
	c.println()
}

// createGame asks for the settings and starts a new engine.
func (c *Console) createGame() error {
	width, err := c.readNumberInRange("Set game board width", game.MinWidth, MaxWidth)
	if err != nil {
		return err
	}
	height, err := c.readNumberInRange("Set game board height", game.MinHeight, MaxHeight)
	if err != nil {
		return err
	}

	// Only ask when there is a choice
	winLength := game.MinWinLength(width, height)
	if longest := max(width, height); longest > winLength {
		if winLength, err = c.readNumberInRange("Set the number of O's or X's in a row needed to win", winLength, longest); err != nil {
			return err
		}
	}

	c.printf("Select computer difficulty (%s): ", difficultyPrompt)
	choice, err := c.readInt(1, 2, difficultyPrompt)
	if err != nil {
		return err
	}

	engine, err := game.NewEngine(game.Settings{Width: width, Height: height, WinLength: winLength},
		c.selectorFor(choice), c.tossCoin())
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	c.engine = engine
	c.state = game.ReadyForNextMove
	return nil
}

// tossCoin decides whether the computer starts and tells the user.
func (c *Console) tossCoin() bool {
	computerStarts := c.coinToss()
	c.printf("After a fair coin toss, ")
	if computerStarts {
		c.println("the computer gets to make the first move.")
	} else {
		c.println("you get to make the first move.")
	}
	return computerStarts
}

// playAGame prints the board and plays rounds until the game ends.
func (c *Console) playAGame() error {
	for {
		c.printBoard()
		if err := c.readMoveOrCommand(); err != nil {
			return err
		}
		if c.state != game.ReadyForNextMove {
			break
		}
	}

	if c.state != game.UserQuit {
		c.printBoard()
	}
	return nil
}

func (c *Console) readMoveOrCommand() error {
	for {
		c.printf("Make your move (row column): ")
		line, err := c.readLine()
		if err != nil {
			return err
		}
		if err := c.processInput(line); err != nil {
			return err
		}
		if c.state != game.InvalidPlayerMove {
			return nil
		}
	}
}

func (c *Console) processInput(line string) error {
	if len([]rune(line)) == 1 {
		return c.processCommand([]rune(line)[0])
	}

	c.state = c.engine.PlayARound(ParseCoordinate(line))
	if c.state == game.InvalidPlayerMove {
		c.println("That is not a valid move.")
	}
	return nil
}

func (c *Console) processCommand(cmd rune) error {
	switch unicode.ToLower(cmd) {
	case CommandChangeSettings:
		if err := c.createGame(); err != nil {
			return err
		}
	case CommandQuit:
		c.state = game.UserQuit
	case CommandReset:
		c.println("Game reset.")
		c.engine.Reset(c.tossCoin())
		c.state = game.ReadyForNextMove
	case CommandUndo:
		c.state = c.engine.Undo()
		if c.state == game.InvalidPlayerMove {
			c.println("No undo available.")
		}
	default:
		c.println("Unknown command.")
		c.state = game.InvalidPlayerMove
	}
	return nil
}

// confirmAnotherGame asks whether to go on. Besides yes and no the user may
// change the settings or undo the last round.
func (c *Console) confirmAnotherGame() (bool, error) {
	c.printf("Play another game (c - change settings, u - undo) [y]/n? ")
	answer, err := c.readLine()
	if err != nil {
		return false, err
	}
	if answer == "" {
		answer = "y"
	}

	switch unicode.ToLower([]rune(answer)[0]) {
	case 'y':
		c.engine.Reset(c.tossCoin())
		c.state = game.ReadyForNextMove
		return true, nil
	case CommandChangeSettings:
		return true, c.createGame()
	case CommandUndo:
		c.state = c.engine.Undo()
		return true, nil
	default:
		return false, nil
	}
}

func (c *Console) printGameResult() {
	switch c.state {
	case game.PlayerWon:
		c.println(":D Congratulations, you won!")
	case game.ComputerWon:
		c.println(":( Too bad, the computer beat you!")
	case game.DrawGame:
		c.println(":| The game ended in a draw.")
	case game.UserQuit:
		c.println("Thank you for playing.")
	default:
		c.println("ERROR: Unexpected end state.")
	}
}

func (c *Console) printBoard() {
	c.printer.Print(c.out, c.engine.Board())
}

// readNumberInRange prompts for a number between lo and hi inclusive.
func (c *Console) readNumberInRange(message string, lo, hi int) (int, error) {
	rangeText := fmt.Sprintf("%d-%d", lo, hi)
	c.printf("%s (%s): ", message, rangeText)
	return c.readInt(lo, hi, "Must be in the range "+rangeText+".")
}

// readInt reads lines until one holds a number between lo and hi.
func (c *Console) readInt(lo, hi int, rangeError string) (int, error) {
	for {
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(line)
		if err != nil {
			c.println(numberParseError)
			continue
		}
		if n < lo || n > hi {
			c.println(rangeError)
			continue
		}
		return n, nil
	}
}

// splitLines is bufio.ScanLines that cuts lines at limit bytes instead of
// failing with bufio.ErrTooLong.
func splitLines(limit int) bufio.SplitFunc {
	discarding := false
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if discarding {
			if i := bytes.IndexByte(data, '\n'); i >= 0 {
				discarding = false
				return i + 1, nil, nil
			}
			return len(data), nil, nil
		}
		if len(data) >= limit && bytes.IndexByte(data, '\n') < 0 {
			discarding = true
			return len(data), data[:limit], nil
		}
		return bufio.ScanLines(data, atEOF)
	}
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(args ...any) {
	fmt.Fprintln(c.out, args...)
}
