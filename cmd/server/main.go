package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/crmstack/contact-data-service/internal/system/bootstrap"
	"github.com/crmstack/contact-data-service/internal/system/config"
	"github.com/crmstack/contact-data-service/internal/system/constants"
	"github.com/crmstack/contact-data-service/internal/system/database/provider"
	"github.com/crmstack/contact-data-service/internal/system/log"
	"github.com/crmstack/contact-data-service/internal/system/managers"
	templateservice "github.com/crmstack/contact-data-service/internal/template/service"
)

const configFile = "config/deployment.yaml"
const schemaFile = "config/schema.sql"

func main() {
	cdsHome := getCDSHome()

	envFiles, _ := filepath.Glob(filepath.Join(cdsHome, "config", "*.env"))
	_ = godotenv.Load(envFiles...)

	cdsConfig, err := config.LoadConfig(cdsHome, configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitializeCDSRuntime(cdsHome, cdsConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize runtime: %v\n", err)
		os.Exit(1)
	}

	if err := log.Init(cdsConfig.Log.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := log.GetLogger()

	initDatabase(cdsHome)
	seedTemplates(cdsConfig)

	serverAddr := fmt.Sprintf("%s:%d", cdsConfig.Addr.Host, cdsConfig.Addr.Port)
	mux := enableCORS(initMultiplexer())

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.Error(err))
	}
	logger.Info("Contact data service started", log.String("addr", serverAddr))

	server := &http.Server{Handler: mux}
	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// initDatabase applies the bundled schema. All statements are idempotent, so
// this runs on every startup.
func initDatabase(cdsHome string) {

	logger := log.GetLogger()
	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		logger.Fatal("Failed to connect to database", log.Error(err))
	}
	defer func() { _ = dbClient.Close() }()

	if err := dbClient.InitDatabase(cdsHome, schemaFile); err != nil {
		logger.Fatal("Failed to initialize database schema", log.Error(err))
	}
	logger.Info("Database schema initialized")
}

// seedTemplates installs the bundled built-in templates.
func seedTemplates(cdsConfig *config.Config) {

	templateDir := cdsConfig.Seed.TemplateDir
	if templateDir == "" {
		templateDir = filepath.Join(config.GetCDSRuntime().CDSHome, "config", "templates")
	}
	if err := bootstrap.SeedBuiltinTemplates(templateDir, templateservice.GetTemplateService()); err != nil {
		log.GetLogger().Fatal("Failed to seed built-in templates", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Fatal("Failed to register the services", log.Error(err))
	}
	return mux
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getCDSHome() string {

	projectHome := ""
	projectHomeFlag := flag.String("cdsHome", "", "Path to the contact data service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		projectHome = *projectHomeFlag
	} else {
		dir, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to get current working directory: %v\n", err)
			os.Exit(1)
		}
		projectHome = dir
	}
	return projectHome
}
