package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/kollega-game/kollega/internal/adapters/catalog"
	"github.com/kollega-game/kollega/internal/adapters/http/api"
	"github.com/kollega-game/kollega/internal/adapters/http/swagger"
	"github.com/kollega-game/kollega/internal/adapters/repository"
	app "github.com/kollega-game/kollega/internal/app"
	"github.com/kollega-game/kollega/internal/config"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("KOLLEGA_ADDR", ":9090")
			_ = os.Setenv("KOLLEGA_MAX_GUESSES", "8")
			_ = os.Setenv("KOLLEGA_STORE_ENGINE", "memory")
			defer func() {
				_ = os.Unsetenv("KOLLEGA_ADDR")
				_ = os.Unsetenv("KOLLEGA_MAX_GUESSES")
				_ = os.Unsetenv("KOLLEGA_STORE_ENGINE")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.MaxGuesses, convey.ShouldEqual, 8)
				convey.So(cfg.StoreEngine, convey.ShouldEqual, "memory")
			})
		})

		convey.Convey("When testing component factories", func() {
			ctx := context.Background()

			convey.Convey("Then the memory store should be constructable", func() {
				store, err := repository.NewByEngine(ctx, "memory", "")
				convey.So(err, convey.ShouldBeNil)
				convey.So(store, convey.ShouldNotBeNil)
				convey.So(store.Close(), convey.ShouldBeNil)
			})

			convey.Convey("And an unknown engine should be rejected", func() {
				_, err := repository.NewByEngine(ctx, "cassandra", "")
				convey.So(err, convey.ShouldNotBeNil)
			})

			convey.Convey("And the mock catalog should be constructable", func() {
				provider, err := catalog.NewBySource("mock", "", "")
				convey.So(err, convey.ShouldBeNil)
				convey.So(provider, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithMaxGuesses(8),
					app.WithLeaderboardLimit(10),
					app.WithSessionTTL(time.Hour),
					app.WithAuthorizer(app.TokenGate{Token: "secret"}),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When wiring the HTTP mux", func() {
			ctx := context.Background()
			svc := app.New()
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			mux := http.NewServeMux()
			swagger.Register(ctx, mux)
			api.NewServer(svc, svc).Register(ctx, mux)

			convey.Convey("Then the health route should answer", func() {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			})

			convey.Convey("And the game route should answer", func() {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/game", nil))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			})

			convey.Convey("And the docs route should answer", func() {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest("GET", "/api-docs", nil))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			})
		})
	})
}
