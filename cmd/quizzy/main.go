package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/internal/server"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/internal/store"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/client"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/fill"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/importer"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/questionnaire"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/render"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/stats"
)

const usage = `usage: quizzy <command> [flags]

commands:
  render   render a questionnaire to an HTML page
  fill     answer a questionnaire in the terminal and submit
  serve    run the answer-persistence service
  stats    print the statistics table for a question
  import   build a questionnaire definition from an OpenAPI document
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "render":
		err = runRender(ctx, os.Args[2:])
	case "fill":
		err = runFill(ctx, os.Args[2:])
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "stats":
		err = runStats(ctx, os.Args[2:])
	case "import":
		err = runImport(ctx, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("quizzy %s: %v", os.Args[1], err)
	}
}

func runRender(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	source := fs.String("source", "questionnaire.json", "questionnaire definition path")
	modeName := fs.String("mode", "preview", "render mode: design | preview | answer")
	action := fs.String("action", "/api/answer", "form action for answer mode")
	output := fs.String("output", "", "output file (stdout if empty)")
	_ = fs.Parse(args)

	q, err := questionnaire.LoadFile(*source)
	if err != nil {
		return err
	}
	mode, err := render.ParseMode(*modeName)
	if err != nil {
		return err
	}

	page, err := render.NewPageRenderer(nil, render.WithSubmitAction(*action))
	if err != nil {
		return err
	}
	html, err := page.Render(ctx, q, mode, render.Config{}, nil)
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, html, 0o644); err != nil {
			return err
		}
		fmt.Printf("Page written to %s\n", *output)
		return nil
	}
	fmt.Println(string(html))
	return nil
}

func runFill(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fill", flag.ExitOnError)
	source := fs.String("source", "questionnaire.json", "questionnaire definition path")
	serverURL := fs.String("server", "http://localhost:8080", "answer service base URL")
	_ = fs.Parse(args)

	q, err := questionnaire.LoadFile(*source)
	if err != nil {
		return err
	}

	session := fill.NewSession(nil, q)
	if err := session.Run(ctx); err != nil {
		if errors.Is(err, fill.ErrAborted) {
			fmt.Println("aborted")
			return nil
		}
		return err
	}

	sink, err := client.New(*serverURL)
	if err != nil {
		return err
	}
	record, err := session.Submit(ctx, sink)
	if err != nil {
		return err
	}
	fmt.Printf("Submitted %d answers for %s\n", len(record.Entries), record.QuestionID)
	return nil
}

func runServe(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", "", "listen address (defaults to QUIZZY_ADDR or :8080)")
	dbPath := fs.String("db", "", "SQLite database path (defaults to QUIZZY_DB or quizzy.db)")
	source := fs.String("source", "", "questionnaire definition to host at /question")
	_ = fs.Parse(args)

	// Missing .env files are fine; environment wins over flag defaults only
	// when the flag is unset.
	_ = godotenv.Load()

	listen := firstNonEmpty(*addr, os.Getenv("QUIZZY_ADDR"), ":8080")
	database := firstNonEmpty(*dbPath, os.Getenv("QUIZZY_DB"), "quizzy.db")

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	st, err := store.Open(database)
	if err != nil {
		return err
	}
	defer st.Close()

	options := []server.Option{server.WithLogger(logger)}
	if *source != "" {
		q, err := questionnaire.LoadFile(*source)
		if err != nil {
			return err
		}
		page, err := render.NewPageRenderer(nil, render.WithSubmitAction("/api/answer"))
		if err != nil {
			return err
		}
		options = append(options, server.WithQuestionnaire(q, page))
	}

	srv := &http.Server{
		Addr:    listen,
		Handler: server.New(st, options...).Routes(),
	}

	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		_ = srv.Close()
	}()

	logger.Info("listening", "addr", listen, "db", database)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runStats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	source := fs.String("source", "questionnaire.json", "questionnaire definition path")
	serverURL := fs.String("server", "http://localhost:8080", "answer service base URL")
	page := fs.Int("page", 1, "page number")
	pageSize := fs.Int("pageSize", 10, "rows per page")
	_ = fs.Parse(args)

	q, err := questionnaire.LoadFile(*source)
	if err != nil {
		return err
	}

	c, err := client.New(*serverURL)
	if err != nil {
		return err
	}
	result, err := c.QueryStats(ctx, q.ID, *page, *pageSize)
	if err != nil {
		return err
	}

	table := stats.BuildTable(nil, q, result.Total, result.List)
	printTable(table)
	return nil
}

func runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	source := fs.String("source", "openapi.json", "OpenAPI document path")
	operation := fs.String("operation", "", "operationId to import (first body-carrying operation if empty)")
	output := fs.String("output", "questionnaire.json", "questionnaire definition output path")
	_ = fs.Parse(args)

	data, err := os.ReadFile(*source)
	if err != nil {
		return err
	}

	var options []importer.Option
	if *operation != "" {
		options = append(options, importer.WithOperation(*operation))
	}
	q, err := importer.New(options...).Import(ctx, data)
	if err != nil {
		return err
	}

	encoded, err := questionnaire.Save(q)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*output, encoded, 0o644); err != nil {
		return err
	}
	fmt.Printf("Questionnaire %q with %d instances written to %s\n", q.ID, len(q.Instances), *output)
	return nil
}

func printTable(table stats.Table) {
	titles := make([]string, 0, len(table.Columns))
	for _, column := range table.Columns {
		titles = append(titles, column.Title)
	}
	fmt.Printf("total: %d\n", table.Total)
	fmt.Println(strings.Join(titles, " | "))
	for _, row := range table.Rows {
		fmt.Println(strings.Join(row.Cells, " | "))
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
