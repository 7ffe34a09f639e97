package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Daskott/contactbook/server/auth"
	"github.com/Daskott/contactbook/server/auth/key"
	"github.com/Daskott/contactbook/server/gstorage"
	"github.com/Daskott/contactbook/server/logger"
	"github.com/Daskott/contactbook/server/models"
	"github.com/Daskott/contactbook/server/work"
	"github.com/Daskott/contactbook/shared"
	"github.com/gorilla/mux"
	"github.com/spf13/viper"
)

const DEFAULT_REQUEST_TIMEOUT = 10 * time.Second

type serverSettings struct {
	timeZone       *time.Location
	tokenTTL       time.Duration
	requestTimeout time.Duration
}

var (
	logg        = logger.NewLogger()
	authKeyPair *key.KeyPair
	timeNow     = time.Now

	settings = serverSettings{
		timeZone:       time.UTC,
		tokenTTL:       auth.DEFAULT_TOKEN_TTL,
		requestTimeout: DEFAULT_REQUEST_TIMEOUT,
	}
)

func Start(configValues *viper.Viper, devMode bool) {
	config, err := shared.LoadServerConfig(configValues)
	fatalOnError(err)

	settings, err = newServerSettings(config)
	fatalOnError(err)

	authKeyPair, err = key.NewKeyPairFromRSAPrivateKeyPem([]byte(config.Contactbook.PrivateKeyPem))
	fatalOnError(err)

	configDir, err := ConfigDirectory(devMode, config.Contactbook.DataDir)
	fatalOnError(err)

	var backup *sqliteBackup
	if config.Google.Storage.EnableSqliteBackupAndSync && config.Database.Driver != models.POSTGRES_DRIVER {
		storage, err := gstorage.NewGStorage(context.Background(), config.Google.ApplicationCredentials)
		fatalOnError(err)
		defer storage.Close()

		backup = newSqliteBackup(storage, config.Google.Storage, configDir)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		fatalOnError(backup.restoreIfMissing(ctx))
		cancel()
	}

	fatalOnError(InitStore(config, configDir))

	workerPool, err := work.NewWorkerAdapter(settings.timeZone.String())
	fatalOnError(err)
	fatalOnError(registerJobHandlers(workerPool, backup))
	fatalOnError(enqueueJobs(workerPool, backup))
	workerPool.Start()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%v", config.Contactbook.Listener.Port),
		Handler:      newRouter(),
		ReadTimeout:  settings.requestTimeout + 5*time.Second,
		WriteTimeout: settings.requestTimeout + 5*time.Second,
	}

	go serve(server)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	cleanup(workerPool, server, backup)
}

func newRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)
	router.NotFoundHandler = loggingMiddleware(http.HandlerFunc(routeNotFound))

	api := router.PathPrefix("/api").Subrouter()
	api.Use(initialContextMiddleware)

	api.HandleFunc("/login", logIn).Methods("POST")
	api.HandleFunc("/jwks", jwks).Methods("GET")

	protected := api.NewRoute().Subrouter()
	protected.Use(protectedRouteMiddleware)

	protected.HandleFunc("/user", currentUser).Methods("GET")
	protected.HandleFunc("/dashboard/stats", dashboardStats).Methods("GET")

	protected.HandleFunc("/contacts", listContacts).Methods("GET")
	protected.HandleFunc("/contacts", createContact).Methods("POST")
	protected.HandleFunc("/contacts/{id}", findContact).Methods("GET")
	protected.HandleFunc("/contacts/{id}", updateContact).Methods("PUT")
	protected.HandleFunc("/contacts/{id}", deleteContact).Methods("DELETE")
	protected.HandleFunc("/contacts/{id}/restore", restoreContact).Methods("PUT")

	return router
}

// InitStore opens & migrates the db configured in 'config', sqlite
// files are kept under 'configDir'
func InitStore(config *shared.ServerConfig, configDir string) error {
	return models.AutoMigrate(models.DBConfig{
		Driver:     config.Database.Driver,
		DSN:        config.Database.DSN,
		PassPhrase: config.Sqlite.PassPhrase,
		RootDir:    configDir,
	})
}

func newServerSettings(config *shared.ServerConfig) (serverSettings, error) {
	timeZone := time.UTC
	if config.Contactbook.TimeZone != "" {
		var err error
		timeZone, err = time.LoadLocation(config.Contactbook.TimeZone)
		if err != nil {
			return serverSettings{}, fmt.Errorf("invalid time zone %q: %v", config.Contactbook.TimeZone, err)
		}
	}

	serverConfigSettings := serverSettings{
		timeZone:       timeZone,
		tokenTTL:       auth.DEFAULT_TOKEN_TTL,
		requestTimeout: DEFAULT_REQUEST_TIMEOUT,
	}

	if config.Contactbook.TokenTTLMinutes > 0 {
		serverConfigSettings.tokenTTL = time.Duration(config.Contactbook.TokenTTLMinutes) * time.Minute
	}

	if config.Contactbook.Listener.RequestTimeoutSeconds > 0 {
		serverConfigSettings.requestTimeout = time.Duration(config.Contactbook.Listener.RequestTimeoutSeconds) * time.Second
	}

	return serverConfigSettings, nil
}
