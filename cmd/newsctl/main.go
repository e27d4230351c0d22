// Command newsctl is a terminal client for the news API. It exercises the
// full client stack: durable SQLite storage, the reducer-backed state store,
// the staleness-driven fetch policy, and the per-domain managers.
//
// Usage:
//
//	newsctl login <email> <password>
//	newsctl register <username> <email> <password>
//	newsctl logout
//	newsctl whoami
//	newsctl articles [search]
//	newsctl article <id|slug>
//	newsctl tags
//	newsctl categories
//	newsctl languages
//	newsctl lang <code>
//	newsctl theme [on|off]
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-news-client/internal/api"
	"github.com/tbourn/go-news-client/internal/config"
	"github.com/tbourn/go-news-client/internal/domain"
	"github.com/tbourn/go-news-client/internal/observability"
	"github.com/tbourn/go-news-client/internal/services"
	"github.com/tbourn/go-news-client/internal/session"
	"github.com/tbourn/go-news-client/internal/storage"
	"github.com/tbourn/go-news-client/internal/store"
)

const version = "0.1.0"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command, see the file header for usage")
	}

	_ = godotenv.Load()
	cfg := config.MustLoad()
	setupLogging(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownOTel(context.Background()) }()

	kv, err := storage.Open(cfg.StoragePath, cfg.OTEL.Enabled)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer kv.Close()

	client := api.New(api.Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
		Tokens:    storage.TokenSource{KV: kv},
		RPS:       cfg.Rate.RPS,
		Burst:     cfg.Rate.Burst,
		Logger:    log.Logger,
	})
	st := store.New(store.Options{
		Config: store.Config{
			ArticlesTTL:     cfg.Cache.ArticlesTTL,
			TaxonomyTTL:     cfg.Cache.TaxonomyTTL,
			DefaultLanguage: cfg.DefaultLanguage,
			DefaultDarkMode: cfg.DefaultDarkMode,
		},
		Storage: kv,
		Logger:  log.Logger,
	})
	sess := session.New(st, client, log.Logger)

	if err := sess.Auth.Bootstrap(ctx); err != nil {
		log.Warn().Err(err).Msg("session bootstrap")
	}

	err = dispatch(ctx, sess, args)
	printAlerts(sess)
	return err
}

func dispatch(ctx context.Context, sess *session.Session, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		if len(rest) != 2 {
			return fmt.Errorf("usage: newsctl login <email> <password>")
		}
		user, err := sess.Auth.Login(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		fmt.Printf("signed in as %s (%s)\n", user.Username, user.Role)
		return nil

	case "register":
		if len(rest) != 3 {
			return fmt.Errorf("usage: newsctl register <username> <email> <password>")
		}
		reg := domain.Registration{Username: rest[0], Email: rest[1], Password: rest[2]}
		user, err := sess.Auth.Register(ctx, reg, rest[2])
		if err != nil {
			return err
		}
		fmt.Printf("account %s created, you can sign in now\n", user.Username)
		return nil

	case "logout":
		sess.Auth.Logout()
		fmt.Println("signed out")
		return nil

	case "whoami":
		auth := sess.Store.State().Auth
		if !auth.IsAuthenticated || auth.User == nil {
			fmt.Println("not signed in")
			return nil
		}
		u := auth.User
		fmt.Printf("%s <%s> role=%s\n", u.Username, u.Email, u.Role)
		return nil

	case "articles":
		params := services.ArticleListParams{Lang: sess.Languages.Current()}
		if len(rest) > 0 {
			params.Search = rest[0]
		}
		page, err := sess.Articles.Fetch(ctx, params)
		if err != nil {
			return err
		}
		lang := sess.Languages.Current()
		for _, a := range page.Data {
			tr, _ := a.Translation(lang)
			fmt.Printf("%4d  %-40s  %s\n", a.ID, tr.Title, tr.Slug)
		}
		fmt.Printf("page %d/%d, %d total\n", page.Page, page.TotalPages, page.Total)
		return nil

	case "article":
		if len(rest) != 1 {
			return fmt.Errorf("usage: newsctl article <id|slug>")
		}
		var art domain.Article
		var err error
		if id, convErr := strconv.ParseUint(rest[0], 10, 32); convErr == nil {
			art, err = sess.Articles.FetchByID(ctx, uint(id))
		} else {
			art, err = sess.Articles.FetchBySlug(ctx, rest[0])
		}
		if err != nil {
			return err
		}
		tr, _ := art.Translation(sess.Languages.Current())
		fmt.Printf("# %s\n\n%s\n", tr.Title, tr.Content)
		return nil

	case "tags":
		if err := sess.Tags.EnsureFresh(ctx); err != nil {
			return err
		}
		lang := sess.Languages.Current()
		for _, t := range sess.Store.State().Tags.Items {
			tr, _ := t.Translation(lang)
			fmt.Printf("%4d  %s\n", t.ID, tr.Name)
		}
		return nil

	case "categories":
		if err := sess.Categories.EnsureFresh(ctx); err != nil {
			return err
		}
		lang := sess.Languages.Current()
		for _, c := range sess.Store.State().Categories.Items {
			tr, _ := c.Translation(lang)
			fmt.Printf("%4d  %s\n", c.ID, tr.Name)
		}
		return nil

	case "languages":
		if err := sess.Languages.EnsureFresh(ctx); err != nil {
			return err
		}
		current := sess.Languages.Current()
		for _, l := range sess.Store.State().Languages.List {
			marker := " "
			if l.Code == current {
				marker = "*"
			}
			fmt.Printf("%s %-5s %s\n", marker, l.Code, l.NativeName)
		}
		return nil

	case "lang":
		if len(rest) != 1 {
			return fmt.Errorf("usage: newsctl lang <code>")
		}
		sess.Languages.Set(rest[0])
		fmt.Println("language set to", sess.Languages.Current())
		return nil

	case "theme":
		var force *bool
		if len(rest) > 0 {
			v := rest[0] == "on"
			force = &v
		}
		sess.UI.ToggleDarkMode(force)
		if sess.Store.State().UI.DarkMode {
			fmt.Println("dark mode on")
		} else {
			fmt.Println("dark mode off")
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// printAlerts flushes the session's queued alerts to stderr.
func printAlerts(sess *session.Session) {
	for _, a := range sess.UI.ActiveAlerts() {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", a.Kind, a.Message)
		sess.UI.DismissAlert(a.ID)
	}
}

// setupLogging applies the configured level and optional pretty console
// output to the global zerolog logger.
func setupLogging(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
