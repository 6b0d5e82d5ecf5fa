// Package for API middleware

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"spotify-gateway/internal/api/handlers"
	gatewayEnv "spotify-gateway/internal/env"
	gatewayJWT "spotify-gateway/internal/jwt"
	"spotify-gateway/internal/logging"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ctxKey string

const jwtKey ctxKey = "jwt"

// Custom ResponseWriter that captures the status code
type logResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *logResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func environment(r *http.Request) *gatewayEnv.Env {
	env, ok := r.Context().Value(gatewayEnv.Key).(*gatewayEnv.Env)
	if !ok {
		env = gatewayEnv.Null()
	}
	return env
}

// Handles panic recovery
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		environment := environment(r)

		defer func() {
			if err := recover(); err != nil {
				environment.Logger.ErrorContext(r.Context(), "Panic occurred", slog.Any("panic", err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// Injects the environment object
func InjectEnvironment(env *gatewayEnv.Env) func(http.Handler) http.Handler {
	if env == nil {
		env = gatewayEnv.Null()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(context.WithValue(r.Context(), gatewayEnv.Key, env))
			next.ServeHTTP(w, r)
		})
	}
}

func LogRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		environment := environment(r)

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		r = r.WithContext(logging.AppendCtx(r.Context(), slog.String("request_id", requestID)))
		r = r.WithContext(logging.AppendCtx(r.Context(), slog.String("method", r.Method)))
		r = r.WithContext(logging.AppendCtx(r.Context(), slog.String("path", r.URL.RequestURI())))
		lrw := &logResponseWriter{w, http.StatusOK}
		environment.Logger.InfoContext(r.Context(), "Request received")
		next.ServeHTTP(lrw, r)
		environment.Logger.LogAttrs(
			r.Context(),
			slog.LevelInfo,
			"Request completed",
			slog.Duration("duration", time.Since(start)),
			slog.Int("status", lrw.statusCode),
		)
	})
}

// Validates the bearer JWT against the JWKS. Authentication is disabled when
// no JWKS is configured.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		environment := environment(r)

		jwksPath := environment.Config.JWKSPath
		if jwksPath == "" {
			next.ServeHTTP(w, r)
			return
		}

		environment.Logger.DebugContext(ctx, "Validating JWT")
		rawToken, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || rawToken == "" {
			http.Error(w, "Missing bearer token", http.StatusUnauthorized)
			return
		}
		token, err := gatewayJWT.ValidateJWT(rawToken, jwksPath)
		if err != nil {
			environment.Logger.ErrorContext(ctx, "Invalid JWT", slog.Any("error", err))
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		if sub, err := token.Claims.GetSubject(); err == nil {
			ctx = logging.AppendCtx(ctx, slog.String("subject", sub))
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, jwtKey, token)))
	})
}

// Rejects requests whose token lacks the admin claim
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := r.Context().Value(jwtKey).(*jwt.Token)
		if !ok || !gatewayJWT.IsAdmin(token) {
			environment(r).Logger.WarnContext(r.Context(), "Admin access denied")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func AddRoutes(router *mux.Router, env *gatewayEnv.Env, gatherer prometheus.Gatherer) {
	router.Use(InjectEnvironment(env), LogRequest, RecoverMiddleware)

	router.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	if gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api").Subrouter()
	api.Use(Authenticate)
	api.HandleFunc("/tracks/{id}", handlers.GetTrack).Methods(http.MethodGet)
	api.HandleFunc("/artists/{id}", handlers.GetArtist).Methods(http.MethodGet)
	api.HandleFunc("/artists/{id}/albums", handlers.GetArtistAlbums).Methods(http.MethodGet)
	api.HandleFunc("/albums/{id}", handlers.GetAlbum).Methods(http.MethodGet)
	api.HandleFunc("/albums/{id}/tracks", handlers.GetAlbumTracks).Methods(http.MethodGet)
	api.HandleFunc("/shows/{id}", handlers.GetShow).Methods(http.MethodGet)
	api.HandleFunc("/episodes/{id}", handlers.GetEpisode).Methods(http.MethodGet)
	api.HandleFunc("/playlists/{id}/tracks", handlers.GetPlaylistItems).Methods(http.MethodGet)
	api.HandleFunc("/playlists/{id}/tracks", handlers.AddPlaylistItems).Methods(http.MethodPost)
	api.HandleFunc("/me/player/play", handlers.StartPlayback).Methods(http.MethodPut)
	api.HandleFunc("/me/player/pause", handlers.PausePlayback).Methods(http.MethodPut)
	api.HandleFunc("/search", handlers.Search).Methods(http.MethodGet)
	api.Handle("/failures", RequireAdmin(http.HandlerFunc(handlers.ListFailures))).Methods(http.MethodGet)
}
