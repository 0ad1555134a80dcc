// Command engine is the CLI front-end: it wires the crawler, the file
// builder, and the query processor to a shared index per the flags given
// on the command line, writes any requested JSON exports, and starts the
// metrics server when a port is requested.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/riverrun/contextual-search/internal/crawler"
	"github.com/riverrun/contextual-search/internal/events"
	"github.com/riverrun/contextual-search/internal/filebuild"
	"github.com/riverrun/contextual-search/internal/index"
	"github.com/riverrun/contextual-search/internal/jsonio"
	"github.com/riverrun/contextual-search/internal/query"
	"github.com/riverrun/contextual-search/internal/workqueue"
	"github.com/riverrun/contextual-search/pkg/apperr"
	"github.com/riverrun/contextual-search/pkg/config"
	"github.com/riverrun/contextual-search/pkg/logger"
	"github.com/riverrun/contextual-search/pkg/metrics"
	pkgredis "github.com/riverrun/contextual-search/pkg/redis"
)

// optionalValueNames lists the flags that take an optional trailing
// value: bare "-index", "-index P", and "-index=P" must all parse, and
// a following token that itself looks like a flag (e.g. "-counts" in
// "-index -counts out.json") must never be swallowed as index's value.
// The stdlib flag package has no such mode, so these are pulled out of
// the argument list before flag.Parse ever sees them.
var optionalValueNames = map[string]bool{"index": true, "counts": true, "results": true}

func main() {
	optFlags, remainingArgs := extractOptionalValueFlags(os.Args[1:], optionalValueNames)

	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		path       = flag.String("path", "", "build the index from text files under this path")
		seedURL    = flag.String("url", "", "crawl from this seed URL")
		limit      = flag.Int("limit", 0, "maximum locations to index via crawl (default 50)")
		threads    = flag.Int("threads", 0, "worker pool size (default 5 when multithreaded)")
		port       = flag.Int("port", 0, "start the metrics server on this port (no server when unset; there is no default port)")
		queryFile  = flag.String("query", "", "process queries line-by-line from this file")
		exact      = flag.Bool("exact", false, "use exact search instead of prefix search")
	)
	flag.CommandLine.Parse(remainingArgs)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "input error:", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.WithComponent("engine")

	if *limit > 0 {
		cfg.Crawl.Limit = *limit
	}
	if *threads > 0 {
		cfg.Crawl.Threads = *threads
	}
	multithreaded := *threads > 0 || *port > 0
	if multithreaded && cfg.Crawl.Threads <= 0 {
		cfg.Crawl.Threads = 5
	}
	if *port > 0 {
		cfg.Metrics.Port = *port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sharedIndex := index.NewThreadSafe()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	var queue *workqueue.Queue
	if multithreaded {
		queue = workqueue.New(cfg.Crawl.Threads, m, log)
		defer queue.Shutdown()
	}

	if *port > 0 && cfg.Metrics.Enabled {
		shutdownMetrics := metrics.StartServer(cfg.Metrics.Port)
		defer shutdownMetrics(context.Background())
	}

	if *path != "" {
		builder := filebuild.New(sharedIndex, queue, m, log)
		if err := builder.Build(ctx, *path); err != nil {
			log.Error("file indexing failed", "path", *path, "error", err)
		}
	}

	if *seedURL != "" {
		if queue == nil {
			queue = workqueue.New(cfg.Crawl.Threads, m, log)
			defer queue.Shutdown()
		}
		publisher := events.New(cfg.Kafka)
		if publisher != nil {
			defer publisher.Close()
		}
		c := crawler.New(sharedIndex, queue, cfg.Crawl.Limit, publisher, m, log)
		if err := c.Crawl(ctx, *seedURL); err != nil {
			log.Error("crawl failed", "url", *seedURL, "error", apperr.Newf(apperr.ErrInput, "%v", err))
		}
	}

	if indexFlag, ok := optFlags["index"]; ok {
		dest := indexFlag.value
		if dest == "" {
			dest = cfg.Index.IndexPath
		}
		if err := jsonio.WriteIndex(sharedIndex.Snapshot(), dest); err != nil {
			log.Error("writing index JSON failed", "path", dest, "error", err)
		}
	}
	if countsFlag, ok := optFlags["counts"]; ok {
		dest := countsFlag.value
		if dest == "" {
			dest = cfg.Index.CountsPath
		}
		if err := jsonio.WriteCounts(sharedIndex.Snapshot(), dest); err != nil {
			log.Error("writing counts JSON failed", "path", dest, "error", err)
		}
	}

	if *queryFile != "" {
		var cache *query.Cache
		if cfg.Redis.Addr != "" {
			if client, err := pkgredis.NewClient(cfg.Redis); err != nil {
				log.Warn("redis unavailable, running without query cache", "error", err)
			} else {
				defer client.Close()
				cache = query.NewCache(client, cfg.Redis.CacheTTL, m)
			}
		}

		processor := query.New(sharedIndex, queue, cache, m, log)
		lines, err := readLines(*queryFile)
		if err != nil {
			log.Error("reading query file failed", "path", *queryFile, "error", err)
		} else if queue != nil {
			processor.ProcessQueriesAsync(ctx, lines, *exact)
		} else {
			processor.ProcessQueries(ctx, lines, *exact)
		}

		if resultsFlag, ok := optFlags["results"]; ok {
			dest := resultsFlag.value
			if dest == "" {
				dest = cfg.Index.ResultsPath
			}
			if err := jsonio.WriteResults(processor.Results(), dest); err != nil {
				log.Error("writing results JSON failed", "path", dest, "error", err)
			}
		}
	}

	if queue != nil {
		queue.Finish()
	}
}

// optionalValueFlag records whether one of optionalValueNames was passed
// and what explicit value (if any) followed it.
type optionalValueFlag struct {
	value string
}

// extractOptionalValueFlags pulls flags named in names out of args,
// supporting "-name", "-name=value", and "-name value" (the last only
// when the following token does not itself start with "-", so a
// following flag is never swallowed as this flag's value). Every other
// argument is returned untouched in order, for flag.Parse to handle.
func extractOptionalValueFlags(args []string, names map[string]bool) (map[string]*optionalValueFlag, []string) {
	flags := make(map[string]*optionalValueFlag, len(names))
	remaining := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		trimmed := strings.TrimLeft(arg, "-")
		if trimmed == arg {
			remaining = append(remaining, arg)
			continue
		}

		name, value, hasEquals := trimmed, "", false
		if eq := strings.IndexByte(trimmed, '='); eq >= 0 {
			name, value, hasEquals = trimmed[:eq], trimmed[eq+1:], true
		}
		if !names[name] {
			remaining = append(remaining, arg)
			continue
		}

		f := &optionalValueFlag{}
		if hasEquals {
			f.value = value
		} else if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			f.value = args[i+1]
			i++
		}
		flags[name] = f
	}
	return flags, remaining
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
