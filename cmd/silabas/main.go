package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"silabas/internal/app"
	"silabas/internal/config"
	"silabas/internal/game"
	"silabas/internal/service"
	"silabas/internal/storage"
	"silabas/internal/words"
	"silabas/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	store, err := storage.OpenSQLite(cfg.StoragePath)
	if err != nil {
		slog.Error("failed to open storage", "path", cfg.StoragePath, "error", err)
		os.Exit(1)
	}

	a := app.New(cfg, store)
	ctx := context.Background()
	if err := a.Startup(ctx); err != nil {
		slog.Error("startup failed", "error", err)
		store.Close()
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		fmt.Println("\n¡Hasta luego!")
		a.Close()
		os.Exit(0)
	}()

	runREPL(ctx, a)
	a.Close()
}

func runREPL(ctx context.Context, a *app.App) {
	in := bufio.NewScanner(os.Stdin)
	fmt.Println("Sílabas Divertidas — escribe 'help' para ver los comandos")

	for {
		if current := a.CurrentUser(); current != nil {
			fmt.Printf("[%s] > ", current.Username)
		} else {
			fmt.Print("> ")
		}
		if !in.Scan() {
			return
		}

		switch strings.ToLower(strings.TrimSpace(in.Text())) {
		case "help":
			printHelp()
		case "register":
			register(ctx, a, in)
		case "login":
			login(ctx, a, in)
		case "logout":
			if err := a.Logout(ctx); err != nil {
				fmt.Println("Error:", err)
			}
		case "play":
			playSyllables(a, in)
		case "search":
			playWordSearch(ctx, a, in)
		case "stats":
			showStats(a)
		case "history":
			showHistory(ctx, a)
		case "storage":
			showStorage(ctx, a)
		case "clear":
			clearStorage(ctx, a, in)
		case "exit", "quit":
			return
		case "":
		default:
			fmt.Println("Comando desconocido; escribe 'help'")
		}
	}
}

func printHelp() {
	fmt.Println("  register   Crear una cuenta nueva")
	fmt.Println("  login      Iniciar sesión")
	fmt.Println("  logout     Cerrar sesión")
	fmt.Println("  play       Jugar al juego de sílabas")
	fmt.Println("  search     Jugar a la sopa de letras")
	fmt.Println("  stats      Ver tus estadísticas")
	fmt.Println("  history    Ver partidas recientes")
	fmt.Println("  storage    Ver información de almacenamiento")
	fmt.Println("  clear      Borrar todos los datos")
	fmt.Println("  exit       Salir")
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func register(ctx context.Context, a *app.App, in *bufio.Scanner) {
	form := service.RegisterForm{
		Username:        prompt(in, "Usuario: "),
		Email:           prompt(in, "Email: "),
		Password:        prompt(in, "Contraseña: "),
		ConfirmPassword: prompt(in, "Confirmar contraseña: "),
	}
	if _, err := a.Register(ctx, form); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Cuenta creada, ya puedes iniciar sesión")
}

func login(ctx context.Context, a *app.App, in *bufio.Scanner) {
	username := prompt(in, "Usuario: ")
	password := prompt(in, "Contraseña: ")
	record, err := a.Login(ctx, username, password)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("¡Hola %s! Mejor puntuación: %d\n", record.Username, record.BestScore)
}

func playSyllables(a *app.App, in *bufio.Scanner) {
	session, err := a.StartSyllableGame()
	if err != nil {
		if errors.Is(err, app.ErrNotLoggedIn) {
			fmt.Println("Inicia sesión primero")
			return
		}
		fmt.Println("Error:", err)
		return
	}
	defer session.Close()

	fmt.Println("Elige la sílaba que falta (1-4), 's' para oír la palabra, 'q' para salir")
	for {
		state := session.Snapshot()
		renderGame(state)
		if state.Phase.Terminal() {
			if prompt(in, "¿Jugar otra vez? (s/n): ") == "s" {
				session.Restart()
				continue
			}
			return
		}

		input := prompt(in, "? ")
		switch input {
		case "q":
			return
		case "s":
			session.SpeakWord()
		default:
			choice, err := strconv.Atoi(input)
			if err == nil && choice >= 1 && choice <= len(state.Options) {
				session.SubmitAnswer(state.Options[choice-1])
				// Give the reveal a moment so the next render shows the outcome.
				time.Sleep(100 * time.Millisecond)
			}
		}
	}
}

func renderGame(state game.State) {
	fmt.Printf("\n%s  %s   palabra %d/%d\n", state.Word.Image, state.Display, state.WordIndex+1, state.TotalWords)
	fmt.Printf("Puntos: %d  Vidas: %d  Racha: %d  Tiempo: %ds\n", state.Score, state.Lives, state.Streak, state.TimeLeft)

	switch state.Phase {
	case game.PhasePlaying:
		for i, option := range state.Options {
			fmt.Printf("  %d) %s\n", i+1, option)
		}
	case game.PhaseCorrect:
		fmt.Println("¡Correcto! 🎉")
	case game.PhaseWrong:
		fmt.Println("Inténtalo de nuevo 💪")
	case game.PhaseCompleted:
		fmt.Printf("¡Completado! Puntuación final: %d (precisión %d%%)\n", state.Score, state.Accuracy)
	case game.PhaseGameOver:
		fmt.Printf("Fin del juego. Puntuación: %d\n", state.Score)
	}
}

func playWordSearch(ctx context.Context, a *app.App, in *bufio.Scanner) {
	if a.CurrentUser() == nil {
		fmt.Println("Inicia sesión primero")
		return
	}

	grid := words.WordSearchGrid()
	targets := words.WordSearchWords()
	fmt.Println("\nSopa de letras — encuentra:", strings.Join(targets, ", "))
	for _, row := range grid {
		fmt.Println(" " + strings.Join(row, " "))
	}
	fmt.Println("Escribe cada palabra que encuentres; 'fin' para terminar")

	started := time.Now()
	found := make(map[string]bool)
	for len(found) < len(targets) {
		input := strings.ToUpper(prompt(in, "? "))
		if input == "FIN" {
			break
		}
		if found[input] {
			fmt.Println("Ya la tienes")
			continue
		}
		valid := false
		for _, target := range targets {
			if input == target {
				valid = true
				break
			}
		}
		if !valid {
			fmt.Println("Esa no está en la lista")
			continue
		}
		found[input] = true
		fmt.Printf("¡Bien! %d/%d\n", len(found), len(targets))
	}

	record, err := a.SubmitWordSearch(ctx, len(found), time.Since(started))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Puntuación: %d  Partidas jugadas: %d\n", len(found)*10, record.GamesPlayed)
}

func showStats(a *app.App) {
	record := a.CurrentUser()
	if record == nil {
		fmt.Println("Inicia sesión primero")
		return
	}
	fmt.Printf("Usuario: %s\n", record.Username)
	fmt.Printf("Partidas jugadas: %d\n", record.GamesPlayed)
	fmt.Printf("Mejor puntuación: %d\n", record.BestScore)
	fmt.Printf("Tiempo total: %ds\n", record.TotalTimeSpent)
	if record.LastPlayed != nil {
		fmt.Printf("Última partida: %s\n", record.LastPlayed.Format("02/01/2006 15:04"))
	}
}

func showHistory(ctx context.Context, a *app.App) {
	sessions, err := a.RecentSessions(ctx, 10)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(sessions) == 0 {
		fmt.Println("Sin partidas todavía")
		return
	}
	for _, s := range sessions {
		fmt.Printf("  %s  %-10s  %3d puntos  %d palabras\n",
			s.Date.Format("02/01 15:04"), s.GameType, s.Score, s.WordsCompleted)
	}
}

func showStorage(ctx context.Context, a *app.App) {
	overview, err := a.Overview(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Claves: %d  Usuarios: %d  Partidas: %d\n",
		overview.TotalKeys, overview.UserCount, overview.SessionCount)
	for _, key := range overview.Keys {
		fmt.Println("  -", key)
	}
}

func clearStorage(ctx context.Context, a *app.App, in *bufio.Scanner) {
	if prompt(in, "Esto borra TODOS los datos. Escribe 'si' para confirmar: ") != "si" {
		fmt.Println("Cancelado")
		return
	}
	if err := a.ClearAll(ctx); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Almacenamiento vacío")
}
