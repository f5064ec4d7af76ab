package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/pprof"
	"strings"

	_ "github.com/lintang-b-s/wanderoute/docs"
	"github.com/lintang-b-s/wanderoute/pkg/graph"
	"github.com/lintang-b-s/wanderoute/pkg/server/rest"
	"github.com/lintang-b-s/wanderoute/pkg/server/rest/service"
	"github.com/lintang-b-s/wanderoute/pkg/walkhistory"

	"github.com/dgraph-io/badger/v4"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "net/http/pprof"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	mymiddleware "github.com/lintang-b-s/wanderoute/pkg/server/middleware"
)

var (
	listenAddr   = flag.String("listenaddr", ":5000", "server listen address")
	graphFile    = flag.String("f", "city.csrg", "compact CSR graph file to serve routes from")
	kdtreeCache  = flag.String("kdtree-cache", "./city.kdtr", "path to the persisted KD-tree spatial index cache")
	walkedDBPath = flag.String("walked-db", "./wanderoute-walked.db", "path to the badger database storing walked-edge history")
	cpuprofile   = flag.String("cpuprofile", "", "not used: the server writes no cpu profile")
	memprofile   = flag.String("memprofile", "", "write memory profile to this file")
	useRateLimit = flag.Bool("ratelimit", false, "use rate limit")
)

//	@title			wanderoute API
//	@version		1.0
//	@description	pedestrian walking-route engine

//	@contact.name	wanderoute maintainers
//	@description 	serves route snapping, shortest-path, penalty-avoiding, and novelty-seeking walking routes over a compact street graph

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	flag.Parse()

	g, err := graph.Load(*graphFile, graph.LoadOptions{CachePath: *kdtreeCache})
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	recordMemProfile(memprofile, "load_compact_graph")

	db, err := badger.Open(badger.DefaultOptions(*walkedDBPath))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	walked := walkhistory.NewStore(db)
	defer walked.Close()

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if *useRateLimit {
		r.Use(mymiddleware.Limit)
	}

	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:5000/swagger/doc.json"),
	))

	navigatorSvc := service.NewNavigationService(g, walked)
	recordMemProfile(memprofile, "service_init")

	rest.NavigatorRouter(r, navigatorSvc, m)

	fmt.Printf("\nwanderoute: %d nodes, %d directed edges loaded", g.NumNodes(), g.NumDirectedEdges())
	fmt.Printf("\nserver started at %s\n", *listenAddr)

	log.Fatal(http.ListenAndServe(*listenAddr, r))
}

func recordMemProfile(memprofile *string, name string) {
	if *memprofile != "" {
		*memprofile = strings.Replace(*memprofile, ".mprof", fmt.Sprintf("%s.mprof", name), -1)
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
