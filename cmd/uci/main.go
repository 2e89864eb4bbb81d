// Command uci is a minimal UCI front-end around the engine, good
// enough for GUIs and for sparring scripts. Engine settings load from
// an optional config file (engine.yaml in the working directory).
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/chesschat/engine/engine"
	"github.com/chesschat/engine/learnstore"
)

type config struct {
	Level       int
	LearnDBPath string
	LogLevel    string
}

func loadConfig() config {
	v := viper.New()
	v.SetConfigName("engine")
	v.AddConfigPath(".")
	v.SetEnvPrefix("chesschat")
	v.AutomaticEnv()
	v.SetDefault("level", 6)
	v.SetDefault("learndb", "")
	v.SetDefault("loglevel", "warn")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Println("info string config error:", err)
		}
	}
	return config{
		Level:       v.GetInt("level"),
		LearnDBPath: v.GetString("learndb"),
		LogLevel:    v.GetString("loglevel"),
	}
}

func main() {
	cfg := loadConfig()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	eng := engine.New(cfg.Level)
	if cfg.LearnDBPath != "" {
		store, err := learnstore.Open(cfg.LearnDBPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.LearnDBPath).Msg("learn store unavailable")
		} else {
			defer store.Close()
			eng.SetLearningStore(store)
		}
	}

	uciLoop(eng)
}

func uciLoop(eng *engine.Engine) {
	scanner := bufio.NewScanner(os.Stdin)
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	eng.NewGame(&board)

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Println("id name chesschat-engine")
			fmt.Println("id author chesschat")
			fmt.Printf("option name Level type spin default %d min 1 max 8\n", eng.Level().Number)
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			board = dragontoothmg.ParseFen(dragontoothmg.Startpos)
			eng.NewGame(&board)
		case "position":
			handlePosition(eng, &board, tokens[1:])
		case "go":
			handleGo(eng, &board, tokens[1:])
		case "setoption":
			handleSetOption(eng, &board, tokens[1:])
		case "stop":
			// Search is synchronous; by the time stop arrives the
			// bestmove already went out.
		case "quit":
			return
		default:
			fmt.Println("info string Unknown command", tokens[0])
		}
	}
}

func handlePosition(eng *engine.Engine, board *dragontoothmg.Board, args []string) {
	if len(args) == 0 {
		fmt.Println("info string Malformed position command")
		return
	}

	rest := args
	switch strings.ToLower(args[0]) {
	case "startpos":
		*board = dragontoothmg.ParseFen(dragontoothmg.Startpos)
		eng.NewGame(board)
		rest = args[1:]
	case "fen":
		fenEnd := len(args)
		for i, tok := range args {
			if strings.ToLower(tok) == "moves" {
				fenEnd = i
				break
			}
		}
		if fenEnd == 1 {
			fmt.Println("info string Invalid fen position")
			return
		}
		*board = dragontoothmg.ParseFen(strings.Join(args[1:fenEnd], " "))
		eng.NewGame(board)
		rest = args[fenEnd:]
	default:
		fmt.Println("info string Invalid position subcommand")
		return
	}

	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, moveStr := range rest[1:] {
			move, err := dragontoothmg.ParseMove(moveStr)
			if err != nil {
				fmt.Println("info string Unparseable move", moveStr)
				return
			}
			if err := eng.ApplyMove(board, move); err != nil {
				fmt.Println("info string Illegal move", moveStr)
				return
			}
		}
	}
}

func handleGo(eng *engine.Engine, board *dragontoothmg.Board, args []string) {
	depth := 0
	movetime := 0
	for i := 0; i+1 < len(args); i += 2 {
		switch strings.ToLower(args[i]) {
		case "depth":
			depth, _ = strconv.Atoi(args[i+1])
		case "movetime":
			movetime, _ = strconv.Atoi(args[i+1])
		}
	}

	var result *engine.SearchResult
	var err error
	switch {
	case depth > 0:
		opts := engine.Options{UseQuiescence: true, QuiescenceDepth: 8}
		result, err = eng.ComputeMove(board, int8(depth), int64(movetime), opts)
	case movetime > 0:
		result, err = eng.ComputeMoveIterative(board, engine.IterativeOptions{
			MinDepth:    1,
			MaxDepth:    eng.Level().MaxDepth,
			TimeLimitMs: int64(movetime),
		})
	default:
		result, err = eng.SelectMove(board)
	}
	if err != nil {
		fmt.Println("info string search error:", err)
		return
	}

	fmt.Printf("info depth %d score cp %d nodes %d time %d pv %s\n",
		result.Depth, result.Evaluation, result.Nodes,
		result.Elapsed.Milliseconds(), pvString(result.PV))
	fmt.Println("bestmove", result.Move.String())
}

func handleSetOption(eng *engine.Engine, board *dragontoothmg.Board, args []string) {
	// setoption name Level value N
	for i := 0; i+1 < len(args); i++ {
		if strings.ToLower(args[i]) == "name" && strings.ToLower(args[i+1]) == "level" {
			for j := i + 2; j+1 < len(args); j++ {
				if strings.ToLower(args[j]) == "value" {
					if lvl, err := strconv.Atoi(args[j+1]); err == nil {
						*eng = *engine.New(lvl)
						eng.NewGame(board)
					}
					return
				}
			}
		}
	}
}

func pvString(pv []dragontoothmg.Move) string {
	parts := make([]string, len(pv))
	for i, m := range pv {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
