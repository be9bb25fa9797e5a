package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/meshwave/planner/lib"
)

// raster is the on-disk JSON mirror of lib.Raster: a plain field-for-
// field encoding of the exported struct, not a DSM/GeoTIFF parser --
// that parsing stays outside lib (spec.md 1 Non-goals), and here it is
// nothing more than encoding/json against already-exported fields, the
// same trick the teacher's config loader uses for its own JSON inputs.
func loadRaster(path string) (*lib.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r lib.Raster
	if err := json.NewDecoder(f).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

func main() {
	var (
		configPath string
		dsmPath    string
		dbPath     string
		outDir     string
		runID      string
		lpDump     bool
	)
	flag.StringVar(&configPath, "config", "", "planner configuration (JSON)")
	flag.StringVar(&dsmPath, "dsm", "", "digital surface model raster (JSON)")
	flag.StringVar(&dbPath, "db", "", "result database for per-phase snapshots (optional)")
	flag.StringVar(&outDir, "out", "./out", "output directory")
	flag.StringVar(&runID, "run", "run1", "run identifier for snapshot persistence")
	flag.BoolVar(&lpDump, "lp-dump", false, "dump every solver call's LP formulation into -out")
	flag.Parse()

	if configPath == "" {
		flag.Usage()
		log.Fatal("missing -config")
	}
	if dsmPath == "" {
		flag.Usage()
		log.Fatal("missing -dsm")
	}

	f, err := os.Open(configPath)
	if err != nil {
		log.Fatalf("open config: %v", err)
	}
	cfg, err := lib.LoadConfig(f)
	f.Close()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	raster, err := loadRaster(dsmPath)
	if err != nil {
		log.Fatalf("load dsm: %v", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	userSites := make([]*lib.Site, 0, len(cfg.Sites))
	for i := range cfg.Sites {
		userSites = append(userSites, &cfg.Sites[i])
	}
	buildings := cfg.ResolveBuildings(raster)

	graph, err := lib.BuildCandidateGraph(userSites, buildings, raster, cfg.Boundary, cfg.BuildConfig())
	if err != nil {
		log.Fatalf("build candidate graph: %v", err)
	}
	log.Printf("candidate graph: %d sites, %d sectors, %d links, %d demand sites",
		len(graph.Sites()), len(graph.Sectors()), len(graph.Links()), len(graph.Demands()))

	pipeline := lib.NewPipeline(graph, cfg, &lib.BranchAndBoundSolver{})

	if cfg.LinkWeightScript != "" {
		scorer, err := lib.NewScriptedScorer(cfg.LinkWeightScript)
		if err != nil {
			log.Fatalf("link weight script: %v", err)
		}
		pipeline.Weight = scorer.Weight
	}
	if cfg.AdversarialRankScript != "" {
		scorer, err := lib.NewScriptedScorer(cfg.AdversarialRankScript)
		if err != nil {
			log.Fatalf("adversarial rank script: %v", err)
		}
		pipeline.Rank = scorer.AdversarialRank
	}

	if dbPath != "" {
		db, err := lib.OpenDatabase(dbPath)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()
		pipeline.DB = db
		pipeline.RunID = runID
	}

	if lpDump {
		lpFile, err := os.Create(outDir + "/solver.lp.log")
		if err != nil {
			log.Fatalf("create lp dump: %v", err)
		}
		defer lpFile.Close()
		cfg.DebugLPDump = true
		pipeline.LPDump = lpFile
	}

	topology, analysis, err := pipeline.Run()
	if err != nil {
		log.Fatalf("pipeline: %v", err)
	}

	log.Printf("selected %d sites, %d links; max-min beta %.3f Gbps",
		len(topology.SelectedSites()), len(topology.SelectedLinks()), analysis.Beta)

	svgFile, err := os.Create(outDir + "/topology.svg")
	if err != nil {
		log.Fatalf("create topology.svg: %v", err)
	}
	if err := lib.RenderTopology(svgFile, topology); err != nil {
		svgFile.Close()
		log.Fatalf("render topology: %v", err)
	}
	svgFile.Close()

	planFile, err := os.Create(outDir + "/site-plan.svg")
	if err != nil {
		log.Fatalf("create site-plan.svg: %v", err)
	}
	sites := topology.SelectedSites()
	if len(sites) == 0 {
		sites = graph.Sites()
	}
	const mmPerDegree = 50000.0
	if err := lib.RenderSitePlan(planFile, cfg.Boundary, buildings, sites, mmPerDegree); err != nil {
		planFile.Close()
		log.Fatalf("render site plan: %v", err)
	}
	planFile.Close()

	summaryFile, err := os.Create(outDir + "/summary.json")
	if err != nil {
		log.Fatalf("create summary.json: %v", err)
	}
	defer summaryFile.Close()
	enc := json.NewEncoder(summaryFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(analysis); err != nil {
		log.Fatalf("write summary: %v", err)
	}

	fmt.Printf("wrote %s/topology.svg and %s/summary.json\n", outDir, outDir)
}
