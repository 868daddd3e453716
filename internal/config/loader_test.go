package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kollega-game/kollega/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		Convey("Given no file and no environment overrides", t, func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
				So(cfg.MaxGuesses, ShouldEqual, 6)
				So(cfg.LeaderboardLimit, ShouldEqual, 100)
				So(cfg.StoreEngine, ShouldEqual, "memory")
				So(cfg.CatalogSource, ShouldEqual, "mock")
				So(cfg.SubmitAuthMode, ShouldEqual, "open")
			})
		})
	})

	t.Run("env overrides", func(t *testing.T) {
		Convey("Given environment overrides", t, func() {
			t.Setenv("KOLLEGA_ADDR", ":9999")
			t.Setenv("KOLLEGA_MAX_GUESSES", "8")
			t.Setenv("KOLLEGA_STORE_ENGINE", "sqlite")

			cfg, err := config.Load(context.Background())

			Convey("Then env values take precedence over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9999")
				So(cfg.MaxGuesses, ShouldEqual, 8)
				So(cfg.StoreEngine, ShouldEqual, "sqlite")
			})
		})
	})

	t.Run("yaml file", func(t *testing.T) {
		Convey("Given a YAML config file", t, func() {
			path := filepath.Join(t.TempDir(), "kollega.yaml")
			yaml := "addr: \":7070\"\nleaderboard_limit: 25\ndaily_salt: pepper\n"
			So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
			t.Setenv("KOLLEGA_CONFIG", path)

			Convey("When only the file overrides", func() {
				cfg, err := config.Load(context.Background())

				Convey("Then file values layer over defaults", func() {
					So(err, ShouldBeNil)
					So(cfg.Addr, ShouldEqual, ":7070")
					So(cfg.LeaderboardLimit, ShouldEqual, 25)
					So(cfg.DailySalt, ShouldEqual, "pepper")
					So(cfg.MaxGuesses, ShouldEqual, 6)
				})
			})

			Convey("When env overrides the file", func() {
				t.Setenv("KOLLEGA_ADDR", ":6060")
				cfg, err := config.Load(context.Background())

				Convey("Then env wins", func() {
					So(err, ShouldBeNil)
					So(cfg.Addr, ShouldEqual, ":6060")
					So(cfg.LeaderboardLimit, ShouldEqual, 25)
				})
			})
		})
	})

	t.Run("missing file", func(t *testing.T) {
		Convey("Given a missing config file", t, func() {
			t.Setenv("KOLLEGA_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
			_, err := config.Load(context.Background())

			Convey("Then loading fails with ErrLoadConfig", func() {
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})
	})

	t.Run("invalid combinations", func(t *testing.T) {
		Convey("Given invalid combinations", t, func() {
			Convey("An empty addr is rejected", func() {
				t.Setenv("KOLLEGA_ADDR", "")
				_, err := config.Load(context.Background())
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})

			Convey("A live catalog without a directory URL is rejected", func() {
				t.Setenv("KOLLEGA_CATALOG_SOURCE", "live")
				_, err := config.Load(context.Background())
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})

			Convey("Token auth without a token is rejected", func() {
				t.Setenv("KOLLEGA_SUBMIT_AUTH_MODE", "token")
				_, err := config.Load(context.Background())
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})

			Convey("A non-positive guess cap is rejected", func() {
				t.Setenv("KOLLEGA_MAX_GUESSES", "0")
				_, err := config.Load(context.Background())
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}
