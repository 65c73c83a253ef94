package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	v1 "odditor/api/v1"
	"odditor/internal/live"
	"odditor/internal/poll"
	"odditor/pkg/async"
	"odditor/pkg/logger"
	"odditor/pkg/server"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp/reuseport"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("加载 .env 文件失败，请检查是否存在", err)
		os.Exit(1)
	}
	logger.Configure(zerolog.DebugLevel)

	app := server.NewFiber()
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Second * 60,
	}))

	store := poll.NewStore()
	hub := live.NewHub(store)
	v1.SetupRoutes(app, store, hub)

	run(app)
}

func run(app *fiber.App) {
	port := os.Getenv("APP_PORT")
	if os.Getenv("APP_BUILD_MODE") == "dev" {
		log.Info().Msg("开发模式已启用")
		log.Fatal().Err(app.Listen(port)).Send()
	}

	ln, err := reuseport.Listen("tcp4", port)
	if err != nil {
		log.Panic().Err(err).Msg("无法监听")
	}

	errCh := async.ErrAble(func() error {
		return app.Listener(ln)
	})

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGHUP)

	select {
	case err = <-errCh:
		log.Fatal().Err(err).Msg("服务异常退出")
	case <-c:
	}

	log.Info().Msg("正在热更新服务端...")
	exe, _ := os.Executable()
	cmd := exec.Command(exe)
	if err = cmd.Start(); err != nil {
		log.Error().Err(err).Msg("启动新端失败>_<")
		return
	}
	_ = app.Shutdown()
	log.Info().Msg("内存里的投票随旧进程一起退场")
}
