package main

import (
	"context"
	"embed"
	"html/template"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/tdewolff/minify"
	"github.com/tdewolff/minify/css"
	"github.com/tdewolff/minify/html"
	"github.com/tdewolff/minify/js"
	"github.com/urfave/negroni/v2"
	"go.etcd.io/bbolt"

	"fknsrs.biz/p/ytstats/handlers"
	"fknsrs.biz/p/ytstats/internal/config"
	"fknsrs.biz/p/ytstats/internal/configreader"
	"fknsrs.biz/p/ytstats/internal/ctxclock"
	"fknsrs.biz/p/ytstats/internal/ctxdataset"
	"fknsrs.biz/p/ytstats/internal/ctxlogger"
	"fknsrs.biz/p/ytstats/internal/ctxtemplate"
	"fknsrs.biz/p/ytstats/internal/ctxyoutube"
	"fknsrs.biz/p/ytstats/internal/httpcache"
	"fknsrs.biz/p/ytstats/internal/logrusstackhook"
	"fknsrs.biz/p/ytstats/internal/templatecollection"
	"fknsrs.biz/p/ytstats/internal/ytapi"
)

var cfg = config.Config{
	LogLevel:        logrus.InfoLevel,
	LogDebugLevels:  config.LevelList{logrus.DebugLevel, logrus.TraceLevel},
	Addr:            ":8080",
	CachePath:       "cache.db",
	CacheMaxAge:     config.Duration(time.Hour * 24),
	Minify:          true,
	DefaultChannels: "UCttspZesZIDEwwpVIgoZtWQ, UCRWFSbif-RFENbBrSiez1DA",
}

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

func init() {
	for _, configPath := range []string{"config.toml", "config.yaml", "config.yml"} {
		if st, err := os.Stat(configPath); err == nil && st != nil && !st.IsDir() {
			cfg.Config = configPath
		}
	}
}

func main() {
	ctx := context.Background()

	if err := configreader.Read(os.Args[0], os.Args[1:], os.Environ(), &cfg); err != nil {
		panic(err)
	}

	logger := logrus.New()

	logger.SetLevel(cfg.LogLevel)
	if len(cfg.LogDebugLevels) > 0 {
		logger.AddHook(logrusstackhook.NewStackHook(cfg.LogDebugLevels))
	}

	logger.WithFields(logrus.Fields{
		"config.config":           cfg.Config,
		"config.log_level":        cfg.LogLevel,
		"config.log_debug_levels": cfg.LogDebugLevels,
		"config.addr":             cfg.Addr,
		"config.cache_path":       cfg.CachePath,
		"config.cache_max_age":    time.Duration(cfg.CacheMaxAge),
		"config.minify":           cfg.Minify,
		"config.default_channels": cfg.DefaultChannels,
	}).Info("program starting")

	if cfg.APIKey == "" {
		logger.Fatal("api_key must be set; get one from the platform's developer console")
	}

	ctx = ctxlogger.WithLogger(ctx, logger)
	ctx = ctxclock.WithClock(ctx, ctxclock.NewRealClock())

	cacheDB, err := bbolt.Open(cfg.CachePath, 0600, nil)
	if err != nil {
		panic(err)
	}
	defer cacheDB.Close()

	httpClient := &http.Client{
		Transport: httpcache.NewTransport(nil, httpcache.NewBBoltStorage(cacheDB), time.Duration(cfg.CacheMaxAge)),
	}

	client := ytapi.New(ytapi.Config{
		APIKey:     cfg.APIKey,
		HTTPClient: httpClient,
	})

	store := ctxdataset.NewStore()

	if err := runServer(ctx, logger, client, store); err != nil {
		panic(err)
	}
}

func directoryExists(name string) bool {
	st, err := os.Stat(name)
	if err != nil {
		return false
	}
	return st.IsDir()
}

func runServer(ctx context.Context, logger *logrus.Logger, client *ytapi.Client, store *ctxdataset.Store) error {
	templateFuncs := template.FuncMap{
		"format_time": func(t time.Time) string {
			return t.Format(time.RFC3339)
		},
		"format_date": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"format_count": func(n int64) string {
			s := strconv.FormatInt(n, 10)

			var b strings.Builder
			for i, c := range s {
				if i > 0 && (len(s)-i)%3 == 0 {
					b.WriteByte(',')
				}
				b.WriteRune(c)
			}

			return b.String()
		},
	}

	var templates templatecollection.Collection

	if directoryExists("templates") {
		logger.Info("using live filesystem for templates")
		c, err := templatecollection.NewLive(os.DirFS("templates"), templateFuncs)
		if err != nil {
			return err
		}
		templates = c
	} else {
		logger.Info("using embedded filesystem for templates")
		c, err := templatecollection.NewCached(templateFS, templateFuncs)
		if err != nil {
			return err
		}
		templates = c
	}

	m := mux.NewRouter()

	m.Methods(http.MethodGet).Path("/").HandlerFunc(handlers.Index)
	m.Methods(http.MethodPost).Path("/analyze").HandlerFunc(handlers.AnalyzeAction)
	m.Methods(http.MethodGet).Path("/dashboard").HandlerFunc(handlers.Dashboard)
	m.Methods(http.MethodGet).Path("/export.csv").HandlerFunc(handlers.ExportCSV)

	if directoryExists("static") {
		logger.Info("using live filesystem for static files")
		m.Methods(http.MethodGet).PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	} else {
		logger.Info("using embedded filesystem for static files")
		m.Methods(http.MethodGet).PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	min := minify.New()
	min.Add("text/html", html.DefaultMinifier)
	min.Add("text/css", css.DefaultMinifier)
	min.Add("application/javascript", js.DefaultMinifier)

	n := negroni.New()
	n.Use(negroni.NewRecovery())
	n.UseFunc(ctxlogger.Register(logger))
	n.UseFunc(ctxclock.Register(ctxclock.GetClock(ctx)))
	n.UseFunc(ctxtemplate.Register(templates))
	n.UseFunc(ctxdataset.Register(store))
	n.UseFunc(ctxyoutube.Register(client))
	n.UseFunc(ctxlogger.Log())

	n.UseFunc(func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		next(rw, r.WithContext(ctxtemplate.WithData(r.Context(), map[string]interface{}{
			"DefaultChannels": cfg.DefaultChannels,
			"Messages": struct{ Error, Success, Information string }{
				r.URL.Query().Get("error"),
				r.URL.Query().Get("success"),
				r.URL.Query().Get("information"),
			},
		})))
	})

	if cfg.Minify {
		n.UseFunc(func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
			if strings.ToLower(r.Header.Get("connection")) != "upgrade" {
				mw := min.ResponseWriter(rw, r)
				defer mw.Close()
				rw = mw
			}

			next(rw, r)
		})
	}

	n.UseHandler(m)

	s := &http.Server{
		Addr:        cfg.Addr,
		Handler:     n,
		BaseContext: func(l net.Listener) context.Context { return ctx },
	}

	errs := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Addr).Info("starting server")
		errs <- s.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		return s.Shutdown(ctx)
	}
}
