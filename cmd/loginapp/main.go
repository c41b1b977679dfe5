package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"loginapp/internal/loginapp/adapters/httpapi"
	"loginapp/internal/loginapp/adapters/tokenfile"
	"loginapp/internal/loginapp/app/flow"
	"loginapp/internal/loginapp/config"
	"loginapp/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "LOGINAPP_LOGGER_MODE"
	EnvLoggerLevel = "LOGINAPP_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
)

const (
	cmdBack = "back"
	cmdQuit = "quit"

	birthDateLayout = "2006-01-02"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		os.Exit(1)
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		os.Exit(1)
	}
	logger.SetGlobalLogger(finalLogger)

	client := httpapi.NewClient(&cfg.API)
	tokens := tokenfile.NewStore(&cfg.Token)
	authFlow := flow.New(client, tokens)

	if err := run(ctx, authFlow); err != nil {
		os.Exit(1)
	}
}

// run ведет диалог с пользователем до завершения авторизации или выхода.
func run(ctx context.Context, authFlow *flow.Flow) error {
	reader := bufio.NewScanner(os.Stdin)

	fmt.Println("Sign in or create an account. Type 'quit' to exit.")

	for {
		state := authFlow.State()

		if state.ErrorMessage != "" {
			fmt.Println("! " + state.ErrorMessage)
		}

		switch state.Screen {
		case flow.ScreenPhone:
			input, ok := prompt(reader, "Phone number: ")
			if !ok || input == cmdQuit {
				return nil
			}
			authFlow.SetPhone(input)
			authFlow.SubmitPhone(ctx)

		case flow.ScreenPassword:
			input, ok := prompt(reader, "Password (or 'back'): ")
			if !ok || input == cmdQuit {
				return nil
			}
			if input == cmdBack {
				authFlow.Back()
				continue
			}
			authFlow.SetPassword(input)
			authFlow.SubmitPassword(ctx)

		case flow.ScreenRegister:
			if done := registerDialog(ctx, reader, authFlow); done {
				return nil
			}

		case flow.ScreenAuthenticated:
			fmt.Printf("Welcome, %s!\n", state.Session.User.FullName)
			return nil
		}
	}
}

// registerDialog собирает данные нового пользователя. Возвращает true,
// если пользователь запросил выход.
func registerDialog(ctx context.Context, reader *bufio.Scanner, authFlow *flow.Flow) bool {
	fmt.Println("New user registration (type 'back' to change phone number).")

	fullName, ok := prompt(reader, "Full name: ")
	if !ok || fullName == cmdQuit {
		return true
	}
	if fullName == cmdBack {
		authFlow.Back()
		return false
	}

	email, ok := prompt(reader, "Email: ")
	if !ok || email == cmdQuit {
		return true
	}

	var birthDate time.Time
	for {
		input, ok := prompt(reader, "Birth date (YYYY-MM-DD): ")
		if !ok || input == cmdQuit {
			return true
		}
		parsed, err := time.Parse(birthDateLayout, input)
		if err != nil {
			fmt.Println("! Please use the YYYY-MM-DD format.")
			continue
		}
		birthDate = parsed
		break
	}

	password, ok := prompt(reader, "Password: ")
	if !ok || password == cmdQuit {
		return true
	}

	authFlow.SetFullName(fullName)
	authFlow.SetEmail(email)
	authFlow.SetBirthDate(birthDate)
	authFlow.SetPassword(password)
	authFlow.SubmitRegistration(ctx)

	return false
}

func prompt(reader *bufio.Scanner, label string) (string, bool) {
	fmt.Print(label)
	if !reader.Scan() {
		return "", false
	}
	return strings.TrimSpace(reader.Text()), true
}
