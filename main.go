package main

import (
	"flag"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"
	"time"

	// Expose profiling info at /debug/pprof/
	_ "net/http/pprof"

	"github.com/golang/glog"

	"github.com/microcosm-cc/registry/cache"
	conf "github.com/microcosm-cc/registry/config"
	"github.com/microcosm-cc/registry/controller"
	h "github.com/microcosm-cc/registry/helpers"
	"github.com/microcosm-cc/registry/models"
	"github.com/microcosm-cc/registry/server"
)

var (
	configPath = flag.String("config", conf.ConfigFilePath, "path to the config file")
	memprof    = flag.String("memprof", "", "write memory profile to file")
)

func main() {

	// Go as fast as we can
	runtime.GOMAXPROCS(runtime.NumCPU())

	// Parse flags and start memory profiling
	// Usage: -memprof=registry.mprof
	// Also used to init glog
	flag.Parse()

	// 100 megabytes max before rolling the log files
	glog.MaxSize = 1024 * 1024 * 100

	if *memprof != "" {
		// Reference time is used for formatting.
		// See http://golang.org/pkg/time for details.
		fname := *memprof + "-" + time.Now().Format("2006-01-02_15-04-05-MST")
		f, err := os.Create(fname)
		if err != nil {
			glog.Fatal(err)
		}

		// Catch SIGINT and write heap profile
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT)
		go func() {
			for sig := range c {
				glog.Warningf("Caught %v, stopping profiler and exiting..", sig)
				// Heap profiler is run on GC, so make sure it GCs before exiting.
				runtime.GC()
				pprof.WriteHeapProfile(f)
				f.Close()
				glog.Flush()
				os.Exit(1)
			}
		}()
	} else {
		// Catch closing signal and flush logs
		sigc := make(chan os.Signal, 1)
		signal.Notify(
			sigc,
			syscall.SIGHUP,
			syscall.SIGINT,
			syscall.SIGTERM,
			syscall.SIGQUIT,
		)
		go func() {
			<-sigc
			glog.Flush()
			os.Exit(1)
		}()
	}

	if err := conf.Init(*configPath); err != nil {
		glog.Fatal(err)
	}

	// It's our responsibility to set up the database connection and memcache
	// before we start the server
	if glog.V(2) {
		glog.Info("Initialising DB connection")
	}
	h.InitDBConnection(h.DBConfig{
		Host:     conf.ConfigStrings[conf.DatabaseHost],
		Port:     conf.ConfigInt64s[conf.DatabasePort],
		Database: conf.ConfigStrings[conf.DatabaseName],
		Username: conf.ConfigStrings[conf.DatabaseUsername],
		Password: conf.ConfigStrings[conf.DatabasePassword],
	})

	packages, err := models.NewPGPackageStore()
	if err != nil {
		glog.Fatal(err)
	}
	downloads, err := models.NewPGDownloadStore()
	if err != nil {
		glog.Fatal(err)
	}

	if glog.V(2) {
		glog.Info("Initialising cache connection")
	}
	store := cache.NewMemcacheStore(
		conf.ConfigStrings[conf.MemcachedHost],
		conf.ConfigInt64s[conf.MemcachedPort],
	)

	reg := &controller.Registry{
		Views:    models.NewPackageViews(packages, downloads, models.GlogMetricSink{}),
		Packages: packages,
		Sessions: models.NewSessions(store),
	}

	if glog.V(2) {
		glog.Infof(
			"Starting server on port %d",
			conf.ConfigInt64s[conf.ListenPort],
		)
	}
	server.StartServer(conf.ConfigInt64s[conf.ListenPort], reg)
}
