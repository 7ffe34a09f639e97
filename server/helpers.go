package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Daskott/contactbook/server/auth"
	"github.com/Daskott/contactbook/server/models"
	"github.com/Daskott/contactbook/server/work"
	"github.com/Daskott/contactbook/utils"
	"gorm.io/gorm"
)

// ---------------------------------------------------------------------------------//
// Handler Helper functions
// --------------------------------------------------------------------------------//

func writeResponse(rw http.ResponseWriter, payLoad ResponsePayload, statusCode int) {
	if statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError {
		logg.Info(payLoad.Message, payLoad.Errors)
	}

	writeJSON(rw, payLoad, statusCode)
}

func writeJSON(rw http.ResponseWriter, body interface{}, statusCode int) {
	rw.WriteHeader(statusCode)
	if err := json.NewEncoder(rw).Encode(body); err != nil {
		logg.Errorf("writeJSON: %v", err)
	}
}

func writeNoContent(rw http.ResponseWriter) {
	rw.Header().Del("Content-Type")
	rw.WriteHeader(http.StatusNoContent)
}

func writeValidationErrors(rw http.ResponseWriter, fieldErrs map[string][]string) {
	writeResponse(rw, ResponsePayload{Message: VALIDATION_FAILED_MSG, Errors: fieldErrs}, http.StatusUnprocessableEntity)
}

func writeNotFound(rw http.ResponseWriter) {
	writeResponse(rw, ResponsePayload{Message: "Not Found."}, http.StatusNotFound)
}

// writeError maps a store error to a response, a missing record is a 404
// and anything else is a 500
func writeError(rw http.ResponseWriter, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeNotFound(rw)
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		logg.Warn(err)
		writeResponse(rw, ResponsePayload{Message: "Request timed out."}, http.StatusServiceUnavailable)
		return
	}

	logg.Error(err)
	writeResponse(rw, ResponsePayload{Message: "Server Error."}, http.StatusInternalServerError)
}

// parseID reads the {id} path value, ok is false when it isn't a valid id
func parseID(value string) (id uint, ok bool) {
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}

func claimsFromContext(ctx context.Context) *auth.TokenClaims {
	decodedJWT, _ := ctx.Value(DECODED_JWT_KEY).(DecodedJWT)
	return decodedJWT.Claims
}

// ---------------------------------------------------------------------------------//
// Middleware Helper functions
// --------------------------------------------------------------------------------//

func decodeAndVerifyAuthHeader(ctx context.Context, authHeaderValue string) DecodedJWT {
	authHeaderList := strings.SplitN(authHeaderValue, "Bearer ", 2)
	if len(authHeaderList) < 2 || strings.TrimSpace(authHeaderList[1]) == "" {
		return DecodedJWT{ErrorMsg: "no token provided"}
	}

	tokenClaims, err := auth.DecodeJWT(strings.TrimSpace(authHeaderList[1]), authKeyPair)
	if err != nil {
		return DecodedJWT{ErrorMsg: "invalid token provided"}
	}

	// validate that the user still exists & still belongs to the account
	user, err := models.FindUserBy(ctx, "id", tokenClaims.Subject)
	if err != nil || user.AccountID != tokenClaims.AccountID {
		return DecodedJWT{ErrorMsg: "invalid token provided"}
	}

	return DecodedJWT{Claims: tokenClaims}
}

// ---------------------------------------------------------------------------------//
// Server Helper functions
// --------------------------------------------------------------------------------//

func serve(server *http.Server) {
	logg.Infof("Contactbook server is listening on port%v", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func cleanup(workerPool *work.WorkerPoolAdapter, server *http.Server, backup *sqliteBackup) {
	workerPool.Stop()

	if backup != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := backup.run(ctx, nil); err != nil {
			logg.Error(err)
		}
	}

	// Shutdown server gracefully
	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Fatalf("Contactbook server shutdown failed:%+s", err)
	}

	logg.Infof("Contactbook server stopped properly")
}

// ConfigDirectory returns the directory contactbook keeps its data in,
// 'dataDir' when it's set, else 'dev' in the current directory for dev mode
// or 'contactbook' in the home directory
func ConfigDirectory(devMode bool, dataDir string) (string, error) {
	configDir := dataDir

	if configDir == "" {
		rootDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(rootDir, "contactbook")

		if devMode {
			rootDir, err = os.Getwd()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(rootDir, "dev")
		}
	}

	err := utils.CreateDirIfNotExist(configDir)
	if err != nil {
		return "", err
	}

	return configDir, nil
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
